package db

// RepairSQL creates or completes the hosted task_logs table and opens the
// row-level policies the client needs for select, insert and delete.
// It is shown to the operator when the store reports a missing schema or a
// denied write, and can be applied directly on a postgres backend.
const RepairSQL = `-- 1. Create the table if it does not exist
create table if not exists task_logs (
  id bigint primary key generated always as identity,
  created_at timestamp with time zone default timezone('utc'::text, now()) not null
);

-- 2. Add any missing columns
alter table task_logs add column if not exists date date;
alter table task_logs add column if not exists "user" text;
alter table task_logs add column if not exists role text;
alter table task_logs add column if not exists tasks jsonb;
alter table task_logs add column if not exists "productivityScore" numeric default 100;

-- 3. Enable row level security
alter table task_logs enable row level security;

-- 4. Public policies for the anon key
drop policy if exists "Permitir Leitura Anonima" on task_logs;
drop policy if exists "Permitir Insercao Anonima" on task_logs;
drop policy if exists "Permitir Exclusao Anonima" on task_logs;

create policy "Permitir Leitura Anonima"
on task_logs for select
to anon
using (true);

create policy "Permitir Insercao Anonima"
on task_logs for insert
to anon
with check (true);

create policy "Permitir Exclusao Anonima"
on task_logs for delete
to anon
using (true);
`
