package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hr-department-requests/internal/core/employee"
	pgdb "github.com/ogurasousui/hr-department-requests/internal/platform/db/postgres"
)

// EmployeeRepository は PostgreSQL を利用した社員参照・配属更新の実装です。
type EmployeeRepository struct {
	pool pgdb.Queryer
}

// NewEmployeeRepository は EmployeeRepository を生成します。
func NewEmployeeRepository(pool pgdb.Queryer) *EmployeeRepository {
	return &EmployeeRepository{pool: pool}
}

// FindByID は ID で社員を取得します。
func (r *EmployeeRepository) FindByID(ctx context.Context, id string) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, email, department_id, job_title, created_at, updated_at
          FROM employees
         WHERE id = $1
         LIMIT 1
    `, id)

	found, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return found, nil
}

// UpdateAssignment は社員の部署を更新します。patch.JobTitle が nil の場合、職位は変更しません。
func (r *EmployeeRepository) UpdateAssignment(ctx context.Context, id string, patch employee.AssignmentPatch) (*employee.Employee, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        UPDATE employees
           SET department_id = $1,
               job_title = COALESCE($2, job_title),
               updated_at = $3
         WHERE id = $4
        RETURNING id, name, email, department_id, job_title, created_at, updated_at
    `,
		patch.DepartmentID,
		nullableString(patch.JobTitle),
		patch.UpdatedAt,
		id,
	)

	updated, err := scanEmployee(row)
	if err != nil {
		return nil, translateEmployeePgError(err)
	}
	return updated, nil
}

func scanEmployee(row pgx.Row) (*employee.Employee, error) {
	var (
		id           string
		name         string
		email        string
		departmentID sql.NullString
		jobTitle     sql.NullString
		createdAt    time.Time
		updatedAt    time.Time
	)

	if err := row.Scan(
		&id,
		&name,
		&email,
		&departmentID,
		&jobTitle,
		&createdAt,
		&updatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrEmployeeNotFound
		}
		return nil, err
	}

	return &employee.Employee{
		ID:           id,
		Name:         name,
		Email:        email,
		DepartmentID: stringPointer(departmentID),
		JobTitle:     stringPointer(jobTitle),
		CreatedAt:    createdAt,
		UpdatedAt:    updatedAt,
	}, nil
}

func translateEmployeePgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return employee.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolationCode:
			return employee.ErrDepartmentNotFound
		case invalidTextRepresentCode:
			return employee.ErrInvalidID
		}
	}

	return err
}
