package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/renato-web/Profluxo/internal/db"
	"github.com/renato-web/Profluxo/internal/domain"
	"github.com/renato-web/Profluxo/internal/repository"
	"github.com/renato-web/Profluxo/internal/service"
	"github.com/renato-web/Profluxo/internal/session"
	"github.com/renato-web/Profluxo/internal/summary"
	"github.com/renato-web/Profluxo/internal/testutil"
)

var cliNow = time.Date(2026, 10, 17, 9, 15, 0, 0, time.Local)

// testEnv is one installation: a store, a session directory and a language
// model. Each App built from it behaves like a fresh process.
type testEnv struct {
	t          *testing.T
	store      repository.RowStore
	sessionDir string
	llm        *testutil.FakeLLMClient
	hash       []byte
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	return &testEnv{
		t:          t,
		store:      testutil.NewTestStore(t),
		sessionDir: t.TempDir(),
		llm:        &testutil.FakeLLMClient{Text: "## Diagnóstico\n\nEquipe produtiva."},
		hash:       hash,
	}
}

// app builds an App over the environment, restoring the persisted session.
func (e *testEnv) app(input string) *App {
	e.t.Helper()
	ctrl := service.NewController(e.store, session.NewFileStore(e.sessionDir), e.hash,
		service.WithClock(func() time.Time { return cliNow }))
	require.NoError(e.t, ctrl.Restore())
	return &App{
		Controller:    ctrl,
		Summary:       summary.NewService(e.llm),
		RepairSQL:     db.RepairSQL,
		IsInteractive: func() bool { return false },
		In:            strings.NewReader(input),
	}
}

// run executes one command in a fresh App and returns combined output.
func (e *testEnv) run(args ...string) (string, error) {
	e.t.Helper()
	return executeCmd(e.t, e.app(""), args...)
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func seedEntry(t *testing.T, store repository.RowStore, user string, job domain.JobTitle, date string, tasks ...string) {
	t.Helper()
	require.NoError(t, store.InsertOne(context.Background(), domain.NewTaskLog{
		Date: date, User: user, Role: job, Tasks: tasks, ProductivityScore: domain.DefaultProductivityScore,
	}))
}

func storeIDs(t *testing.T, store repository.RowStore) []string {
	t.Helper()
	logs, err := store.SelectAll(context.Background())
	require.NoError(t, err)
	ids := make([]string, 0, len(logs))
	for _, l := range logs {
		ids = append(ids, l.ID)
	}
	return ids
}

// --- root ---

func TestRootCmd_NoArgsShowsHelp(t *testing.T) {
	out, err := newTestEnv(t).run()
	require.NoError(t, err)
	assert.Contains(t, out, "profluxo")
	assert.Contains(t, out, "dashboard")
}

// --- login / logout / whoami ---

func TestLoginCollaborator_PersistsAcrossInvocations(t *testing.T) {
	env := newTestEnv(t)

	out, err := env.run("login", "collaborator", "Renato")
	require.NoError(t, err)
	assert.Contains(t, out, "Bem-vindo(a), Renato!")

	out, err = env.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Renato")
	assert.Contains(t, out, "Web Designer")
	assert.Contains(t, out, "Hoje, 17/10/2026")
}

func TestLogin_BareNameIsCollaborator(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("login", "jéssyca")
	require.NoError(t, err)

	out, err := env.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Jéssyca")
	assert.Contains(t, out, "Designer")
}

func TestLogin_UnknownCollaborator(t *testing.T) {
	_, err := newTestEnv(t).run("login", "Fulano")
	assert.ErrorIs(t, err, service.ErrUnknownCollaborator)
}

func TestLogin_WhenAlreadyLoggedIn(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("login", "Renato")
	require.NoError(t, err)

	_, err = env.run("login", "Brena")
	assert.ErrorIs(t, err, service.ErrAlreadyLoggedIn)
}

func TestLoginManager_PasswordFlagAndPrompt(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.run("login", "manager", "--password", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidPassword)

	out, err := executeCmd(t, env.app("admin123\n"), "login", "manager")
	require.NoError(t, err)
	assert.Contains(t, out, "Senha de Acesso: ")
	assert.Contains(t, out, "Diretoria Executiva")
}

func TestLogin_NoArgsNonInteractive(t *testing.T) {
	_, err := newTestEnv(t).run("login")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manager")
}

func TestLogout_IsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("login", "Renato")
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		out, err := env.run("logout")
		require.NoError(t, err)
		assert.Contains(t, out, "Sessão encerrada.")
	}

	out, err := env.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "Nenhuma sessão ativa")
}

// --- form ---

func TestRenatoScenario_ToggleSubmitAndSeeRecent(t *testing.T) {
	env := newTestEnv(t)
	tasks := domain.DefaultCatalog().TasksFor(domain.JobWebDesigner)

	_, err := env.run("login", "Renato")
	require.NoError(t, err)

	out, err := env.run("tasks")
	require.NoError(t, err)
	assert.Contains(t, out, " 1 [ ] "+tasks[0])

	out, err = env.run("toggle", "1", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "[x] "+tasks[0])
	assert.Contains(t, out, "[x] "+tasks[1])

	out, err = env.run("submit")
	require.NoError(t, err)
	assert.Contains(t, out, "Registro Recebido!")
	assert.Contains(t, out, "Suas 2 atividades foram salvas com segurança no banco de dados.")
	assert.Contains(t, out, "MEUS REGISTROS RECENTES")
	assert.Contains(t, out, "Hoje, 17/10/2026  2 tarefas")

	logs, err := env.store.SelectAll(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "Renato", logs[0].User)
	assert.Equal(t, domain.JobWebDesigner, logs[0].Role)
	assert.Equal(t, tasks[:2], logs[0].Tasks)
	assert.Equal(t, "2026-10-17", logs[0].Date)

	_, err = env.run("submit")
	assert.ErrorIs(t, err, service.ErrAlreadySubmitted)

	_, err = env.run("new")
	require.NoError(t, err)
	out, err = env.run("whoami")
	require.NoError(t, err)
	assert.Contains(t, out, "0 tarefas selecionada(s)")
}

func TestToggle_ByNameAndUntoggle(t *testing.T) {
	env := newTestEnv(t)
	task := domain.DefaultCatalog().TasksFor(domain.JobWebDesigner)[4]
	_, err := env.run("login", "Renato")
	require.NoError(t, err)

	out, err := env.run(append([]string{"toggle"}, strings.Fields(task)...)...)
	require.NoError(t, err)
	assert.Contains(t, out, "[x] "+task)

	out, err = env.run("toggle", task)
	require.NoError(t, err)
	assert.Contains(t, out, "[ ] "+task)
}

func TestToggle_MixesNumbersAndQuotedNames(t *testing.T) {
	env := newTestEnv(t)
	tasks := domain.DefaultCatalog().TasksFor(domain.JobWebDesigner)
	_, err := env.run("login", "Renato")
	require.NoError(t, err)

	out, err := env.run("toggle", "1", tasks[4])
	require.NoError(t, err)
	assert.Contains(t, out, "[x] "+tasks[0])
	assert.Contains(t, out, "[x] "+tasks[4])

	out, err = env.run("toggle", tasks[0], tasks[4])
	require.NoError(t, err)
	assert.Contains(t, out, "[ ] "+tasks[0])
	assert.Contains(t, out, "[ ] "+tasks[4])
}

func TestToggle_TaskFromAnotherJob(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("login", "Renato")
	require.NoError(t, err)

	_, err = env.run("toggle", "Redação de matérias para blog/site")
	assert.ErrorIs(t, err, service.ErrTaskNotInCatalog)
}

func TestSubmit_EmptyDraftNeverReachesStore(t *testing.T) {
	env := newTestEnv(t)
	failing := &testutil.FailingStore{RowStore: env.store}
	env.store = failing

	_, err := env.run("login", "Renato")
	require.NoError(t, err)
	_, err = env.run("submit")
	assert.ErrorIs(t, err, service.ErrEmptyDraft)
	assert.Zero(t, failing.Inserts.Load())
}

func TestSubmit_WithoutSession(t *testing.T) {
	_, err := newTestEnv(t).run("submit")
	assert.ErrorIs(t, err, service.ErrNoSession)
}

func TestSubmit_SchemaMissingPrintsRepairSQL(t *testing.T) {
	env := newTestEnv(t)
	env.store = &testutil.FailingStore{
		RowStore:  env.store,
		InsertErr: repository.Classify("insert", "PGRST205", "Could not find the table 'public.task_logs' in the schema cache"),
	}
	_, err := env.run("login", "Renato")
	require.NoError(t, err)
	_, err = env.run("toggle", "1")
	require.NoError(t, err)

	out, err := env.run("submit")
	assert.ErrorIs(t, err, repository.ErrSchemaMissing)
	assert.Contains(t, out, "Erro de Conexão com Banco de Dados")
	assert.Contains(t, out, "create table if not exists")
}

func TestSubmit_NotConfiguredStore(t *testing.T) {
	env := newTestEnv(t)
	env.store = &testutil.FailingStore{
		RowStore:  env.store,
		InsertErr: errors.Join(repository.ErrNotConfigured),
	}
	_, err := env.run("login", "Renato")
	require.NoError(t, err)
	_, err = env.run("toggle", "1")
	require.NoError(t, err)

	out, err := env.run("submit")
	assert.ErrorIs(t, err, repository.ErrNotConfigured)
	assert.Contains(t, out, "Ajuste de Segurança Necessário")
}

func TestDate_SetAndReject(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("date")
	assert.ErrorIs(t, err, service.ErrNoSession)

	_, err = env.run("login", "Renato")
	require.NoError(t, err)

	out, err := env.run("date", "2026-10-15")
	require.NoError(t, err)
	assert.Contains(t, out, "15/10/2026")

	_, err = env.run("date", "2026-10-18")
	assert.ErrorIs(t, err, service.ErrInvalidDate)

	_, err = env.run("date", "15/10/2026")
	assert.ErrorIs(t, err, service.ErrInvalidDate)
}

func TestLog_SelectsAndSubmitsInOneStep(t *testing.T) {
	env := newTestEnv(t)
	tasks := domain.DefaultCatalog().TasksFor(domain.JobWebDesigner)
	_, err := env.run("login", "Renato")
	require.NoError(t, err)

	out, err := env.run("log", "--task", "3", "--task", tasks[0], "--date", "2026-10-16")
	require.NoError(t, err)
	assert.Contains(t, out, "Suas 2 atividades")

	// A second log after submission starts a new record automatically.
	_, err = env.run("log", "--task", "1")
	require.NoError(t, err)

	logs, err := env.store.SelectAll(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, []string{tasks[0]}, logs[0].Tasks)
	assert.Equal(t, "2026-10-16", logs[0].Date)
	assert.Equal(t, []string{tasks[2], tasks[0]}, logs[1].Tasks)
}

func TestLog_RequiresTask(t *testing.T) {
	_, err := newTestEnv(t).run("log")
	assert.Error(t, err)
}

func TestMine_ShowsOnlyOwnEntries(t *testing.T) {
	env := newTestEnv(t)
	seedEntry(t, env.store, "Renato", domain.JobWebDesigner, "2026-10-16", "a")
	seedEntry(t, env.store, "Brena", domain.JobTrafficManager, "2026-10-16", "b", "c")

	_, err := env.run("login", "Renato")
	require.NoError(t, err)
	out, err := env.run("mine")
	require.NoError(t, err)
	assert.Contains(t, out, "16/10/2026  1 tarefa")
	assert.NotContains(t, out, "2 tarefas")
}

// --- delete ---

func TestDelete_ManagerWithConfirmationFlag(t *testing.T) {
	env := newTestEnv(t)
	seedEntry(t, env.store, "Renato", domain.JobWebDesigner, "2026-10-17", "a")
	id := storeIDs(t, env.store)[0]

	_, err := env.run("login", "manager", "--password", "admin123")
	require.NoError(t, err)

	out, err := env.run("delete", id, "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "excluído")
	assert.Empty(t, storeIDs(t, env.store))
}

func TestDelete_PromptDeclinedKeepsEntry(t *testing.T) {
	env := newTestEnv(t)
	seedEntry(t, env.store, "Renato", domain.JobWebDesigner, "2026-10-17", "a")
	id := storeIDs(t, env.store)[0]
	_, err := env.run("login", "Renato")
	require.NoError(t, err)

	out, err := executeCmd(t, env.app("n\n"), "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, service.DeleteConfirmPrompt+" [s/N]: ")
	assert.Contains(t, out, "Exclusão cancelada.")
	assert.Len(t, storeIDs(t, env.store), 1)

	out, err = executeCmd(t, env.app("sim\n"), "delete", id)
	require.NoError(t, err)
	assert.Contains(t, out, "excluído")
	assert.Empty(t, storeIDs(t, env.store))
}

func TestDelete_CollaboratorCannotDeleteOthers(t *testing.T) {
	env := newTestEnv(t)
	seedEntry(t, env.store, "Brena", domain.JobTrafficManager, "2026-10-17", "b")
	id := storeIDs(t, env.store)[0]
	_, err := env.run("login", "Renato")
	require.NoError(t, err)

	_, err = env.run("delete", id, "--yes")
	assert.ErrorIs(t, err, service.ErrNotOwner)
	assert.Len(t, storeIDs(t, env.store), 1)
}

func TestDelete_PermissionDeniedPrintsRepairSQL(t *testing.T) {
	env := newTestEnv(t)
	seedEntry(t, env.store, "Renato", domain.JobWebDesigner, "2026-10-17", "a")
	id := storeIDs(t, env.store)[0]
	env.store = &testutil.FailingStore{
		RowStore:  env.store,
		DeleteErr: repository.Classify("delete", "42501", "permission denied for table task_logs"),
	}
	_, err := env.run("login", "manager", "--password", "admin123")
	require.NoError(t, err)

	out, err := env.run("delete", id, "--yes")
	assert.ErrorIs(t, err, repository.ErrPermissionDenied)
	assert.Contains(t, out, "Atualização de Permissões")
	assert.Contains(t, out, "create policy")
}

func TestDelete_UnknownID(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("login", "manager", "--password", "admin123")
	require.NoError(t, err)
	_, err = env.run("delete", "999", "--yes")
	assert.ErrorIs(t, err, service.ErrEntryNotFound)
}

// --- dashboard / summary ---

func seedTeam(t *testing.T, store repository.RowStore) {
	t.Helper()
	seedEntry(t, store, "Renato", domain.JobWebDesigner, "2026-10-16", "a", "b")
	seedEntry(t, store, "Nayanne", domain.JobJournalist, "2026-10-17", "c")
	seedEntry(t, store, "Renato", domain.JobWebDesigner, "2026-10-17", "d", "e", "f", "g")
}

func TestDashboard_RequiresManager(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("dashboard")
	assert.ErrorIs(t, err, service.ErrNoSession)

	_, err = env.run("login", "Renato")
	require.NoError(t, err)
	_, err = env.run("dashboard")
	assert.ErrorIs(t, err, service.ErrNotManager)
}

func TestDashboard_ChartsAndTable(t *testing.T) {
	env := newTestEnv(t)
	seedTeam(t, env.store)
	_, err := env.run("login", "manager", "--password", "admin123")
	require.NoError(t, err)

	out, err := env.run("dashboard")
	require.NoError(t, err)
	assert.Contains(t, out, "PAINEL DE CONTROLE ESTRATÉGICO")
	assert.Contains(t, out, "Todo o período")
	assert.Contains(t, out, "PRODUTIVIDADE INDIVIDUAL")

	out, err = env.run("dashboard", "--view", "table", "--period", "today", "--sort", "asc")
	require.NoError(t, err)
	assert.Contains(t, out, "REGISTROS DETALHADOS")
	assert.Contains(t, out, "Período: Hoje · Ordem: Mais antigos · 2 registros")
	assert.Contains(t, out, "4 Entregas: d, e, f +1 outras")
	assert.NotContains(t, out, "16/10/2026")
}

func TestDashboard_InvalidFlags(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("dashboard", "--period", "week")
	assert.ErrorContains(t, err, "invalid period")
	_, err = env.run("dashboard", "--view", "pie")
	assert.ErrorContains(t, err, "invalid view")
}

func TestSummary_SendsFilteredSample(t *testing.T) {
	env := newTestEnv(t)
	seedTeam(t, env.store)
	_, err := env.run("login", "manager", "--password", "admin123")
	require.NoError(t, err)

	out, err := env.run("summary", "--period", "today")
	require.NoError(t, err)
	assert.Contains(t, out, "RELATÓRIO DE INTELIGÊNCIA")
	assert.Contains(t, out, "Diagnóstico")
	assert.Contains(t, out, "modelo: fake")

	reqs := env.llm.Requests()
	require.Len(t, reqs, 1)
	assert.Contains(t, reqs[0].UserPrompt, `"taskCount":4`)
	assert.NotContains(t, reqs[0].UserPrompt, "2026-10-16")
}

func TestSummary_FallbackOnFailure(t *testing.T) {
	env := newTestEnv(t)
	env.llm.Err = errors.New("boom")
	_, err := env.run("login", "manager", "--password", "admin123")
	require.NoError(t, err)

	out, err := env.run("summary")
	require.NoError(t, err)
	assert.Contains(t, out, "indisponível")
}

// --- schema / hash-password ---

func TestSchema_PrintsRepairSQL(t *testing.T) {
	out, err := newTestEnv(t).run("schema")
	require.NoError(t, err)
	assert.Contains(t, out, "create table if not exists")
}

func TestSchema_ApplyNeedsBackend(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("schema", "--apply")
	assert.ErrorContains(t, err, "postgres")

	app := env.app("")
	applied := false
	app.ApplyRepair = func(context.Context) error { applied = true; return nil }
	out, err := executeCmd(t, app, "schema", "--apply")
	require.NoError(t, err)
	assert.True(t, applied)
	assert.Contains(t, out, "Esquema atualizado.")
}

func TestHashPassword(t *testing.T) {
	env := newTestEnv(t)
	out, err := executeCmd(t, env.app("segredo\n"), "hash-password")
	require.NoError(t, err)
	hash := strings.TrimSpace(out)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("segredo")))

	_, err = executeCmd(t, env.app(""), "hash-password")
	assert.Error(t, err)
}

func TestTUI_RequiresManagerAndTerminal(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.run("tui")
	assert.ErrorIs(t, err, service.ErrNoSession)

	_, err = env.run("login", "manager", "--password", "admin123")
	require.NoError(t, err)
	_, err = env.run("tui")
	assert.ErrorContains(t, err, "terminal")
}

func TestSelectionToggles(t *testing.T) {
	catalog := []string{"a", "b", "c", "d"}
	assert.Equal(t, []string{"a", "d"}, selectionToggles(catalog, []string{"b", "d"}, []string{"a", "b"}))
	assert.Nil(t, selectionToggles(catalog, []string{"c"}, []string{"c"}))
}
