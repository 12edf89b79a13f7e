package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hr-department-requests/internal/core/department"
	pgdb "github.com/ogurasousui/hr-department-requests/internal/platform/db/postgres"
)

// DepartmentRepository は PostgreSQL を利用した部署参照の実装です。
type DepartmentRepository struct {
	pool pgdb.Queryer
}

// NewDepartmentRepository は DepartmentRepository を生成します。
func NewDepartmentRepository(pool pgdb.Queryer) *DepartmentRepository {
	return &DepartmentRepository{pool: pool}
}

// FindByID は ID で部署を取得します。
func (r *DepartmentRepository) FindByID(ctx context.Context, id string) (*department.Department, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, code, description, created_at, updated_at
          FROM departments
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanDepartment(row)
	if err != nil {
		return nil, translateDepartmentPgError(err)
	}
	return found, nil
}

func scanDepartment(row pgx.Row) (*department.Department, error) {
	var (
		id          string
		name        string
		code        string
		description sql.NullString
		createdAt   time.Time
		updatedAt   time.Time
	)

	if err := row.Scan(&id, &name, &code, &description, &createdAt, &updatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, department.ErrDepartmentNotFound
		}
		return nil, err
	}

	return &department.Department{
		ID:          id,
		Name:        name,
		Code:        code,
		Description: stringPointer(description),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func translateDepartmentPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return department.ErrDepartmentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentCode {
		return department.ErrInvalidID
	}
	return err
}
