package postgres

import (
	"context"
	"fmt"

	"github.com/ogurasousui/hr-department-requests/internal/core/deptrequest"
	pgdb "github.com/ogurasousui/hr-department-requests/internal/platform/db/postgres"
)

// AuditLogRepository は監査ログを audit_logs テーブルへ追記します。
type AuditLogRepository struct {
	pool pgdb.Queryer
}

// NewAuditLogRepository は AuditLogRepository を生成します。
func NewAuditLogRepository(pool pgdb.Queryer) *AuditLogRepository {
	return &AuditLogRepository{pool: pool}
}

// Append は監査ログを 1 件追記します。
func (r *AuditLogRepository) Append(ctx context.Context, entry *deptrequest.AuditEntry) error {
	if entry == nil {
		return nil
	}

	exec := pgdb.QueryerFromContext(ctx, r.pool)
	if _, err := exec.Exec(ctx, `
        INSERT INTO audit_logs (id, subject_id, action, description, performed_by_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `,
		entry.ID,
		entry.SubjectID,
		entry.Action,
		entry.Description,
		entry.PerformedByID,
		entry.CreatedAt,
	); err != nil {
		return fmt.Errorf("postgres: insert audit log: %w", err)
	}
	return nil
}
