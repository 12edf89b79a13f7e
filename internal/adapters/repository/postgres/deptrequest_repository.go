package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ogurasousui/hr-department-requests/internal/core/deptrequest"
	pgdb "github.com/ogurasousui/hr-department-requests/internal/platform/db/postgres"
)

const (
	foreignKeyViolationCode  = "23503"
	checkViolationCode       = "23514"
	invalidTextRepresentCode = "22P02"
)

const (
	requestRequesterFKey   = "department_update_requests_requester_id_fkey"
	requestDepartmentFKey  = "department_update_requests_requested_department_id_fkey"
	requestProcessedByFKey = "department_update_requests_processed_by_id_fkey"
)

const requestReturningColumns = `id, requester_id, requested_department_id, requested_job_title, current_job_title, reason, status,
                      admin_notes, processed_at, processed_by_id, created_at, updated_at`

// requestProjection は申請者の現在の部署名と申請先部署名、決裁者名を結合した読み取り列です。
// 職位は申請時点の値 (r.current_job_title) を返します。
const requestProjection = `
        SELECT r.id, r.requester_id, r.requested_department_id, r.requested_job_title, r.reason, r.status,
               r.admin_notes, r.processed_at, r.processed_by_id, r.created_at, r.updated_at,
               e.name, e.email, e.department_id, cd.name, r.current_job_title,
               rd.name,
               p.name`

func requestJoins(source string) string {
	return `
          FROM ` + source + ` r
          JOIN employees e ON e.id = r.requester_id
          LEFT JOIN departments cd ON cd.id = e.department_id
          JOIN departments rd ON rd.id = r.requested_department_id
          LEFT JOIN employees p ON p.id = r.processed_by_id`
}

// DeptRequestRepository は PostgreSQL を利用した部署異動申請永続化の実装です。
type DeptRequestRepository struct {
	pool pgdb.Queryer
}

// NewDeptRequestRepository は DeptRequestRepository を生成します。
func NewDeptRequestRepository(pool pgdb.Queryer) *DeptRequestRepository {
	return &DeptRequestRepository{pool: pool}
}

// Create は申請を新規作成します。状態は常に PENDING で保存されます。
func (r *DeptRequestRepository) Create(ctx context.Context, req *deptrequest.Request) (*deptrequest.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH inserted AS (
            INSERT INTO department_update_requests (id, requester_id, requested_department_id, requested_job_title, current_job_title, reason, status, created_at, updated_at)
            VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
            RETURNING `+requestReturningColumns+`
        )`+requestProjection+requestJoins("inserted"),
		req.ID,
		req.RequesterID,
		req.RequestedDepartmentID,
		nullableString(req.RequestedJobTitle),
		nullableString(req.CurrentJobTitle),
		req.Reason,
		string(deptrequest.StatusPending),
		req.CreatedAt,
		req.UpdatedAt,
	)

	created, err := scanRequest(row)
	if err != nil {
		return nil, translateRequestPgError(err)
	}
	return created, nil
}

// FindByID は ID で申請を取得します。
func (r *DeptRequestRepository) FindByID(ctx context.Context, id string) (*deptrequest.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, requestProjection+requestJoins("department_update_requests")+`
         WHERE r.id = $1
         LIMIT 1
    `, id)

	found, err := scanRequest(row)
	if err != nil {
		return nil, translateRequestPgError(err)
	}
	return found, nil
}

// UpdateDecision は status が PENDING の行に限り決裁結果を書き込みます。
// 更新対象がなく行自体は存在する場合、他の決裁が先行したとみなし ErrConflict を返します。
func (r *DeptRequestRepository) UpdateDecision(ctx context.Context, req *deptrequest.Request) (*deptrequest.Request, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        WITH updated AS (
            UPDATE department_update_requests
               SET status = $1,
                   admin_notes = $2,
                   processed_at = $3,
                   processed_by_id = $4,
                   updated_at = $5
             WHERE id = $6 AND status = $7
            RETURNING `+requestReturningColumns+`
        )`+requestProjection+requestJoins("updated"),
		string(req.Status),
		nullableString(req.AdminNotes),
		nullableTimestamp(req.ProcessedAt),
		nullableString(req.ProcessedByID),
		req.UpdatedAt,
		req.ID,
		string(deptrequest.StatusPending),
	)

	updated, err := scanRequest(row)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, deptrequest.ErrRequestNotFound) {
		return nil, translateRequestPgError(err)
	}

	var exists bool
	if err := exec.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM department_update_requests WHERE id = $1)`, req.ID).Scan(&exists); err != nil {
		return nil, translateRequestPgError(err)
	}
	if exists {
		return nil, deptrequest.ErrConflict
	}
	return nil, deptrequest.ErrRequestNotFound
}

// Delete は申請を削除します。
func (r *DeptRequestRepository) Delete(ctx context.Context, id string) error {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM department_update_requests WHERE id = $1`, id)
	if err != nil {
		return translateRequestPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return deptrequest.ErrRequestNotFound
	}
	return nil
}

// List は申請の一覧を新しい順に取得します。
func (r *DeptRequestRepository) List(ctx context.Context, filter deptrequest.ListRequestsFilter) ([]*deptrequest.Request, string, error) {
	if filter.Limit <= 0 {
		return nil, "", deptrequest.ErrInvalidPageSize
	}
	if filter.Offset < 0 {
		return nil, "", deptrequest.ErrInvalidPageToken
	}

	limitWithBuffer := filter.Limit + 1

	args := make([]any, 0, 4)
	conditions := make([]string, 0, 2)

	if filter.RequesterID != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "r.requester_id = "+placeholder)
		args = append(args, *filter.RequesterID)
	}

	if filter.Status != nil {
		placeholder := "$" + strconv.Itoa(len(args)+1)
		conditions = append(conditions, "r.status = "+placeholder)
		args = append(args, string(*filter.Status))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "\n         WHERE " + strings.Join(conditions, " AND ")
	}

	limitPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, limitWithBuffer)
	offsetPlaceholder := "$" + strconv.Itoa(len(args)+1)
	args = append(args, filter.Offset)

	query := requestProjection + requestJoins("department_update_requests") + whereClause + `
         ORDER BY r.created_at DESC, r.id DESC
         LIMIT ` + limitPlaceholder + `
        OFFSET ` + offsetPlaceholder + `
    `

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, "", translateRequestPgError(err)
	}
	defer rows.Close()

	requests := make([]*deptrequest.Request, 0, filter.Limit)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, "", translateRequestPgError(err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, "", translateRequestPgError(err)
	}

	var nextToken string
	if len(requests) == limitWithBuffer {
		requests = requests[:filter.Limit]
		nextToken = strconv.Itoa(filter.Offset + filter.Limit)
	}

	return requests, nextToken, nil
}

func scanRequest(row pgx.Row) (*deptrequest.Request, error) {
	var (
		id                string
		requesterID       string
		departmentID      string
		jobTitle          sql.NullString
		reason            string
		status            string
		adminNotes        sql.NullString
		processedAt       sql.NullTime
		processedByID     sql.NullString
		createdAt         time.Time
		updatedAt         time.Time
		requesterName     string
		requesterEmail    string
		currentDeptID     sql.NullString
		currentDeptName   sql.NullString
		currentJobTitle   sql.NullString
		requestedDeptName string
		processedByName   sql.NullString
	)

	if err := row.Scan(
		&id,
		&requesterID,
		&departmentID,
		&jobTitle,
		&reason,
		&status,
		&adminNotes,
		&processedAt,
		&processedByID,
		&createdAt,
		&updatedAt,
		&requesterName,
		&requesterEmail,
		&currentDeptID,
		&currentDeptName,
		&currentJobTitle,
		&requestedDeptName,
		&processedByName,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, deptrequest.ErrRequestNotFound
		}
		return nil, err
	}

	var processedPtr *time.Time
	if processedAt.Valid {
		t := processedAt.Time.UTC()
		processedPtr = &t
	}

	return &deptrequest.Request{
		ID:                    id,
		RequesterID:           requesterID,
		RequestedDepartmentID: departmentID,
		RequestedJobTitle:     stringPointer(jobTitle),
		CurrentJobTitle:       stringPointer(currentJobTitle),
		Reason:                reason,
		Status:                deptrequest.Status(status),
		AdminNotes:            stringPointer(adminNotes),
		ProcessedAt:           processedPtr,
		ProcessedByID:         stringPointer(processedByID),
		CreatedAt:             createdAt,
		UpdatedAt:             updatedAt,
		Requester: &deptrequest.RequesterSnapshot{
			ID:             requesterID,
			Name:           requesterName,
			Email:          requesterEmail,
			DepartmentID:   stringPointer(currentDeptID),
			DepartmentName: stringPointer(currentDeptName),
		},
		RequestedDepartmentName: requestedDeptName,
		ProcessedByName:         stringPointer(processedByName),
	}, nil
}

func translateRequestPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return deptrequest.ErrRequestNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case foreignKeyViolationCode:
			switch pgErr.ConstraintName {
			case requestDepartmentFKey:
				return deptrequest.ErrDepartmentNotFound
			case requestRequesterFKey:
				return deptrequest.ErrRequesterNotFound
			case requestProcessedByFKey:
				return deptrequest.ErrInvalidID
			default:
				return err
			}
		case checkViolationCode:
			return deptrequest.ErrInvalidStatus
		case invalidTextRepresentCode:
			return deptrequest.ErrInvalidID
		}
	}

	return err
}

func stringPointer(value sql.NullString) *string {
	if !value.Valid {
		return nil
	}
	v := value.String
	return &v
}

func nullableString(value *string) any {
	if value == nil {
		return nil
	}
	return *value
}

func nullableTimestamp(value *time.Time) any {
	if value == nil {
		return nil
	}
	return value.UTC()
}
