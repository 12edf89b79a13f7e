package employee

import "context"

// Repository は社員永続化の抽象です。
type Repository interface {
	FindByID(ctx context.Context, id string) (*Employee, error)
	UpdateAssignment(ctx context.Context, id string, patch AssignmentPatch) (*Employee, error)
}
