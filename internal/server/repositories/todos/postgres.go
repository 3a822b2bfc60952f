package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/todoapp/internal/common"
	"github.com/dmitrijs2005/todoapp/internal/dbx"
	"github.com/dmitrijs2005/todoapp/internal/server/models"
)

const todoColumns = `id, title, description, completed, user_id, created_at, updated_at`

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTodo(row rowScanner) (*models.Todo, error) {
	t := &models.Todo{}
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, nil
}

func wrapRowErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrorNotFound
	}
	return fmt.Errorf("db error: %w", err)
}

func (r *PostgresRepository) List(ctx context.Context, userID int) ([]models.Todo, error) {
	query :=
		`SELECT ` + todoColumns + ` FROM todos
		 WHERE user_id = $1
		 ORDER BY seq
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]models.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, *t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, id int) (*models.Todo, error) {
	query :=
		`SELECT ` + todoColumns + ` FROM todos
		 WHERE user_id = $1 AND id = $2
		 `

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, wrapRowErr(err)
	}
	return t, nil
}

// Create locks the table for the duration of the transaction so that
// concurrent inserts see each other's ids.
func (r *PostgresRepository) Create(ctx context.Context, todo *models.Todo) (*models.Todo, error) {
	var created *models.Todo

	err := dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `LOCK TABLE todos IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("db error: %w", err)
		}

		query :=
			`INSERT INTO todos (` + todoColumns + `)
			 SELECT COALESCE(MAX(id), 0) + 1, $1::text, $2::text, $3::boolean, $4::integer, $5::timestamptz, $6::timestamptz FROM todos
			 RETURNING ` + todoColumns

		t, err := scanTodo(tx.QueryRowContext(ctx, query,
			todo.Title, todo.Description, todo.Completed, todo.UserID, todo.CreatedAt, todo.UpdatedAt))
		if err != nil {
			return fmt.Errorf("db error: %w", err)
		}
		created = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (r *PostgresRepository) Update(ctx context.Context, userID, id int, patch models.TodoPatch, now time.Time) (*models.Todo, error) {
	query :=
		`UPDATE todos
		 SET title = COALESCE($3, title),
		     description = COALESCE($4, description),
		     completed = COALESCE($5, completed),
		     updated_at = $6
		 WHERE user_id = $1 AND id = $2
		 RETURNING ` + todoColumns

	t, err := scanTodo(r.db.QueryRowContext(ctx, query,
		userID, id, patch.Title, patch.Description, patch.Completed, now))
	if err != nil {
		return nil, wrapRowErr(err)
	}
	return t, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID, id int) (*models.Todo, error) {
	query :=
		`DELETE FROM todos
		 WHERE user_id = $1 AND id = $2
		 RETURNING ` + todoColumns

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, userID, id))
	if err != nil {
		return nil, wrapRowErr(err)
	}
	return t, nil
}

func (r *PostgresRepository) Toggle(ctx context.Context, userID, id int, now time.Time) (*models.Todo, error) {
	query :=
		`UPDATE todos
		 SET completed = NOT completed, updated_at = $3
		 WHERE user_id = $1 AND id = $2
		 RETURNING ` + todoColumns

	t, err := scanTodo(r.db.QueryRowContext(ctx, query, userID, id, now))
	if err != nil {
		return nil, wrapRowErr(err)
	}
	return t, nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM todos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}
	return n, nil
}
