package deptrequest

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ogurasousui/hr-department-requests/internal/core/department"
	"github.com/ogurasousui/hr-department-requests/internal/core/employee"
	"go.uber.org/zap"
)

const noDepartmentLabel = "None"

// MutationApplier は承認済みの申請を社員の配属情報に反映し、監査ログを残します。
type MutationApplier struct {
	employees   EmployeeDirectory
	departments DepartmentDirectory
	audit       AuditSink
	clock       Clock
	logger      *zap.Logger
}

// NewMutationApplier は MutationApplier を生成します。
func NewMutationApplier(employees EmployeeDirectory, departments DepartmentDirectory, audit AuditSink, clock Clock, logger *zap.Logger) *MutationApplier {
	if clock == nil {
		clock = realClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MutationApplier{
		employees:   employees,
		departments: departments,
		audit:       audit,
		clock:       clock,
		logger:      logger,
	}
}

// Apply は申請者の部署を申請先に変更します。職位は RequestedJobTitle が指定されている場合のみ更新します。
// 戻り値は Record に渡す監査ログです。approved が APPROVED でない場合は何も変更しません。
func (a *MutationApplier) Apply(ctx context.Context, approved *Request) (*AuditEntry, error) {
	if approved == nil || approved.Status != StatusApproved {
		return nil, ErrInvalidTransition
	}
	if approved.ProcessedByID == nil {
		return nil, ErrInvalidTransition
	}

	current, err := a.employees.FindByID(ctx, approved.RequesterID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, fmt.Errorf("requester %s: %w", approved.RequesterID, ErrRequesterNotFound)
		}
		return nil, fmt.Errorf("load requester: %w", err)
	}

	fromName, err := a.departmentName(ctx, current.DepartmentID)
	if err != nil {
		return nil, err
	}

	toName := approved.RequestedDepartmentName
	if toName == "" {
		target := approved.RequestedDepartmentID
		toName, err = a.departmentName(ctx, &target)
		if err != nil {
			return nil, err
		}
	}

	now := a.clock.Now()
	patch := employee.AssignmentPatch{
		DepartmentID: approved.RequestedDepartmentID,
		UpdatedAt:    now,
	}
	if approved.RequestedJobTitle != nil {
		patch.JobTitle = cloneString(approved.RequestedJobTitle)
	}

	if _, err := a.employees.UpdateAssignment(ctx, approved.RequesterID, patch); err != nil {
		switch {
		case errors.Is(err, employee.ErrEmployeeNotFound):
			return nil, fmt.Errorf("requester %s: %w", approved.RequesterID, ErrRequesterNotFound)
		case errors.Is(err, employee.ErrDepartmentNotFound):
			return nil, fmt.Errorf("department %s: %w", approved.RequestedDepartmentID, ErrDepartmentNotFound)
		default:
			return nil, fmt.Errorf("update requester assignment: %w", err)
		}
	}

	return &AuditEntry{
		ID:            uuid.NewString(),
		SubjectID:     approved.RequesterID,
		Action:        ActionDepartmentChanged,
		Description:   fmt.Sprintf("Department changed from %s to %s", fromName, toName),
		PerformedByID: *approved.ProcessedByID,
		CreatedAt:     now,
	}, nil
}

// Record は監査ログを追記します。失敗した場合はログに記録した上でエラーを返します。
func (a *MutationApplier) Record(ctx context.Context, entry *AuditEntry) error {
	if entry == nil {
		return nil
	}
	if a.audit == nil {
		return nil
	}
	if err := a.audit.Append(ctx, entry); err != nil {
		recordAuditFailure(entry.Action)
		a.logger.Error("failed to append audit log",
			zap.String("action", entry.Action),
			zap.String("subject_id", entry.SubjectID),
			zap.String("performed_by_id", entry.PerformedByID),
			zap.Error(err),
		)
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}

func (a *MutationApplier) departmentName(ctx context.Context, id *string) (string, error) {
	if id == nil || *id == "" {
		return noDepartmentLabel, nil
	}
	dept, err := a.departments.FindByID(ctx, *id)
	if err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return noDepartmentLabel, nil
		}
		return "", fmt.Errorf("load department %s: %w", *id, err)
	}
	return dept.Name, nil
}
