package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	apperrors "taskpanel/internal/errors"
	"taskpanel/internal/service"
	"taskpanel/internal/task"
)

const (
	DriverSQLite = "sqlite"
	DriverMySQL  = "mysql"

	// fixed width so created_at sorts lexically
	timestampLayout = "2006-01-02T15:04:05.000000000Z"
)

var _ service.Service = (*Store)(nil)

type Store struct {
	db     *sql.DB
	driver string
	now    func() time.Time
}

// Open connects to a sqlite file path or a mysql DSN and migrates the schema.
func Open(driver, source string) (*Store, error) {
	if source == "" {
		return nil, errors.New("database source is empty")
	}
	var dsn string
	switch driver {
	case DriverSQLite, "":
		driver = DriverSQLite
		if !strings.HasPrefix(source, "file:") {
			if err := os.MkdirAll(filepath.Dir(source), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
				return nil, err
			}
		}
		dsn = sqliteDSN(source)
	case DriverMySQL:
		dsn = source
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	s := &Store{db: db, driver: driver, now: time.Now}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) ensureSchema(ctx context.Context) error {
	if s.driver == DriverMySQL {
		const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id VARCHAR(36) PRIMARY KEY,
	title VARCHAR(255) NOT NULL,
	description VARCHAR(1024) NULL,
	due_date VARCHAR(10) NULL,
	status VARCHAR(50) NOT NULL DEFAULT 'pending',
	priority VARCHAR(50) NOT NULL DEFAULT 'medium',
	created_at VARCHAR(32) NOT NULL,
	INDEX idx_tasks_created (created_at)
)`
		_, err := s.db.ExecContext(ctx, ddl)
		return err
	}

	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	description TEXT DEFAULT NULL,
	due_date TEXT DEFAULT NULL,
	status TEXT NOT NULL DEFAULT 'pending',
	priority TEXT NOT NULL DEFAULT 'medium',
	created_at TEXT NOT NULL
);`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return err
	}
	return s.ensureTaskColumns(ctx)
}

// ensureTaskColumns upgrades sqlite files created before description, status
// and priority existed.
func (s *Store) ensureTaskColumns(ctx context.Context) error {
	required := map[string]string{
		"description": "ALTER TABLE tasks ADD COLUMN description TEXT DEFAULT NULL;",
		"due_date":    "ALTER TABLE tasks ADD COLUMN due_date TEXT DEFAULT NULL;",
		"status":      "ALTER TABLE tasks ADD COLUMN status TEXT NOT NULL DEFAULT 'pending';",
		"priority":    "ALTER TABLE tasks ADD COLUMN priority TEXT NOT NULL DEFAULT 'medium';",
	}
	existing := map[string]struct{}{}
	rows, err := s.db.QueryContext(ctx, `PRAGMA table_info(tasks);`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var cid int
		var name, ctype string
		var notnull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &ctype, &notnull, &dflt, &pk); err != nil {
			rows.Close()
			return err
		}
		existing[name] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	for col, alter := range required {
		if _, ok := existing[col]; ok {
			continue
		}
		if _, err := s.db.ExecContext(ctx, alter); err != nil {
			return err
		}
	}
	return nil
}

const taskColumns = `id, title, description, due_date, status, priority, created_at`

func (s *Store) ListTasks(ctx context.Context, skip, limit int) (task.Page, error) {
	skip, limit = service.NormalizeWindow(skip, limit)

	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks;`).Scan(&count); err != nil {
		return task.Page{}, apperrors.NewStorageError("count tasks", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY created_at, id LIMIT ? OFFSET ?;`, limit, skip)
	if err != nil {
		return task.Page{}, apperrors.NewStorageError("list tasks", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return task.Page{}, apperrors.NewStorageError("list tasks", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return task.Page{}, apperrors.NewStorageError("list tasks", err)
	}
	return task.Page{Data: tasks, Count: count}, nil
}

func (s *Store) GetTask(ctx context.Context, id string) (task.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?;`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, apperrors.NewNotFoundError(id, "get task")
	}
	if err != nil {
		return task.Task{}, apperrors.NewStorageError("get task", err)
	}
	return t, nil
}

func (s *Store) CreateTask(ctx context.Context, in task.CreateInput) (task.Task, error) {
	in, err := in.Validate()
	if err != nil {
		return task.Task{}, err
	}
	t := task.Task{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Status:      in.Status,
		Priority:    in.Priority,
		CreatedAt:   s.now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO tasks (`+taskColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?);`,
		t.ID, t.Title, nullString(t.Description), nullDate(t.DueDate),
		string(t.Status), string(t.Priority), t.CreatedAt.Format(timestampLayout))
	if err != nil {
		return task.Task{}, apperrors.NewStorageError("insert task", err)
	}
	return t, nil
}

func (s *Store) UpdateTask(ctx context.Context, id string, in task.UpdateInput) (task.Task, error) {
	in, err := in.Validate()
	if err != nil {
		return task.Task{}, err
	}
	current, err := s.GetTask(ctx, id)
	if err != nil {
		return task.Task{}, err
	}
	t := in.Apply(current)
	_, err = s.db.ExecContext(ctx,
		`UPDATE tasks SET title = ?, description = ?, due_date = ?, status = ?, priority = ? WHERE id = ?;`,
		t.Title, nullString(t.Description), nullDate(t.DueDate), string(t.Status), string(t.Priority), id)
	if err != nil {
		return task.Task{}, apperrors.NewStorageError("update task", err)
	}
	return t, nil
}

func (s *Store) DeleteTask(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?;`, id)
	if err != nil {
		return apperrors.NewStorageError("delete task", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.NewStorageError("delete task", err)
	}
	if n == 0 {
		return apperrors.NewNotFoundError(id, "delete task")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(r rowScanner) (task.Task, error) {
	var t task.Task
	var desc, due sql.NullString
	var status, priority, createdStr string
	if err := r.Scan(&t.ID, &t.Title, &desc, &due, &status, &priority, &createdStr); err != nil {
		return task.Task{}, err
	}
	if desc.Valid {
		v := desc.String
		t.Description = &v
	}
	if due.Valid {
		if parsed, err := task.ParseDate(due.String); err == nil {
			t.DueDate = &parsed
		}
	}
	t.Status = task.DefaultStatus
	if st, ok := task.ParseStatus(status); ok {
		t.Status = st
	}
	t.Priority = task.DefaultPriority
	if p, ok := task.ParsePriority(priority); ok {
		t.Priority = p
	}
	if created, err := time.Parse(timestampLayout, createdStr); err == nil {
		t.CreatedAt = created
	}
	return t, nil
}

func nullString(v *string) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *v, Valid: true}
}

func nullDate(v *time.Time) sql.NullString {
	if v == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: v.Format(task.DateLayout), Valid: true}
}

func sqliteDSN(path string) string {
	if strings.HasPrefix(path, "file:") {
		return path
	}
	abs, err := filepath.Abs(path)
	if err == nil {
		path = abs
	}
	u := url.URL{
		Scheme: "file",
		Path:   path,
	}
	q := u.Query()
	q.Set("mode", "rwc")
	q.Set("_pragma", "busy_timeout(5000)")
	u.RawQuery = q.Encode()
	return u.String()
}
