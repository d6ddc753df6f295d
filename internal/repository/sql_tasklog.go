package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/renato-web/Profluxo/internal/domain"
)

// SQLTaskLogRepo implements RowStore over a SQL database. The same queries
// serve the local SQLite file and a hosted Postgres; only the bind style and
// the jsonb cast differ.
type SQLTaskLogRepo struct {
	db          *sqlx.DB
	selectQuery string
	insertQuery string
	deleteQuery string
}

// NewSQLiteTaskLogRepo creates a repo over a database opened by db.OpenDB.
func NewSQLiteTaskLogRepo(db *sql.DB) *SQLTaskLogRepo {
	return newSQLTaskLogRepo(sqlx.NewDb(db, "sqlite"), DefaultTable, "?")
}

// NewPostgresTaskLogRepo creates a repo over a database opened by db.OpenPostgres.
func NewPostgresTaskLogRepo(db *sqlx.DB, table string) *SQLTaskLogRepo {
	if table == "" {
		table = DefaultTable
	}
	return newSQLTaskLogRepo(db, table, "CAST(? AS jsonb)")
}

func newSQLTaskLogRepo(db *sqlx.DB, table, tasksExpr string) *SQLTaskLogRepo {
	t := pq.QuoteIdentifier(table)
	return &SQLTaskLogRepo{
		db: db,
		selectQuery: db.Rebind(`SELECT id, date, "user", role, tasks, "productivityScore"
			FROM ` + t + ` ORDER BY created_at DESC, id DESC`),
		insertQuery: db.Rebind(`INSERT INTO ` + t + ` (date, "user", role, tasks, "productivityScore")
			VALUES (?, ?, ?, ` + tasksExpr + `, ?)`),
		deleteQuery: db.Rebind(`DELETE FROM ` + t + ` WHERE id = ?`),
	}
}

type taskLogRow struct {
	ID                int64           `db:"id"`
	Date              dayValue        `db:"date"`
	User              sql.NullString  `db:"user"`
	Role              sql.NullString  `db:"role"`
	Tasks             []byte          `db:"tasks"`
	ProductivityScore sql.NullFloat64 `db:"productivityScore"`
}

func (r *SQLTaskLogRepo) SelectAll(ctx context.Context) ([]domain.TaskLog, error) {
	var rows []taskLogRow
	if err := r.db.SelectContext(ctx, &rows, r.selectQuery); err != nil {
		return nil, classifySQL("selecting task logs", err)
	}

	logs := make([]domain.TaskLog, 0, len(rows))
	for _, row := range rows {
		l, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	return logs, nil
}

func (r *SQLTaskLogRepo) InsertOne(ctx context.Context, entry domain.NewTaskLog) error {
	tasks, err := json.Marshal(entry.Tasks)
	if err != nil {
		return fmt.Errorf("encoding tasks: %w", err)
	}
	_, err = r.db.ExecContext(ctx, r.insertQuery,
		entry.Date,
		entry.User,
		string(entry.Role),
		string(tasks),
		entry.ProductivityScore,
	)
	if err != nil {
		return classifySQL("inserting task log", err)
	}
	return nil
}

// DeleteOne removes the row with the given id. Deleting a row that is
// already gone succeeds, matching the hosted REST behavior.
func (r *SQLTaskLogRepo) DeleteOne(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, r.deleteQuery, id); err != nil {
		return classifySQL("deleting task log", err)
	}
	return nil
}

func (row taskLogRow) toDomain() (domain.TaskLog, error) {
	l := domain.TaskLog{
		ID:                strconv.FormatInt(row.ID, 10),
		Date:              string(row.Date),
		User:              row.User.String,
		Role:              domain.JobTitle(row.Role.String),
		ProductivityScore: domain.DefaultProductivityScore,
	}
	if row.ProductivityScore.Valid {
		l.ProductivityScore = int(row.ProductivityScore.Float64)
	}
	if len(row.Tasks) > 0 {
		if err := json.Unmarshal(row.Tasks, &l.Tasks); err != nil {
			return domain.TaskLog{}, fmt.Errorf("decoding tasks of task log %d: %w", row.ID, err)
		}
	}
	return l, nil
}

// dayValue scans a calendar date stored as text (SQLite) or as a date
// column (Postgres, which the driver returns as time.Time).
type dayValue string

func (d *dayValue) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = ""
	case time.Time:
		*d = dayValue(v.Format(domain.DateLayout))
	case string:
		*d = dayValue(trimDay(v))
	case []byte:
		*d = dayValue(trimDay(string(v)))
	default:
		return fmt.Errorf("unsupported date value %T", src)
	}
	return nil
}

func trimDay(s string) string {
	if len(s) > len(domain.DateLayout) {
		return s[:len(domain.DateLayout)]
	}
	return s
}

func classifySQL(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return Classify(op, string(pqErr.Code), pqErr.Message)
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return Classify(op, "", err.Error())
}
