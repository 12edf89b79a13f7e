package deptrequest

import (
	"context"

	"github.com/ogurasousui/hr-department-requests/internal/core/department"
	"github.com/ogurasousui/hr-department-requests/internal/core/employee"
)

// Repository は部署異動申請の永続化を行うインターフェースです。
// 読み取り結果には申請者の現在の部署名と申請先部署名が結合されます。
type Repository interface {
	Create(ctx context.Context, request *Request) (*Request, error)
	FindByID(ctx context.Context, id string) (*Request, error)
	List(ctx context.Context, filter ListRequestsFilter) ([]*Request, string, error)
	// UpdateDecision は保存済みの状態が PENDING の場合に限り決裁結果を書き込みます。
	// 既に処理済みの場合は ErrConflict を返します。
	UpdateDecision(ctx context.Context, request *Request) (*Request, error)
	Delete(ctx context.Context, id string) error
}

// ListRequestsFilter は一覧取得時の検索条件を表します。
type ListRequestsFilter struct {
	RequesterID *string
	Status      *Status
	Limit       int
	Offset      int
}

// EmployeeDirectory は社員情報の参照と配属更新を提供します。
type EmployeeDirectory interface {
	FindByID(ctx context.Context, id string) (*employee.Employee, error)
	UpdateAssignment(ctx context.Context, id string, patch employee.AssignmentPatch) (*employee.Employee, error)
}

// DepartmentDirectory は部署の参照を提供します。
type DepartmentDirectory interface {
	FindByID(ctx context.Context, id string) (*department.Department, error)
}

// AuditSink は監査ログの追記先です。
type AuditSink interface {
	Append(ctx context.Context, entry *AuditEntry) error
}
