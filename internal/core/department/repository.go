package department

import "context"

// Repository は部署の参照を行うインターフェースです。
type Repository interface {
	FindByID(ctx context.Context, id string) (*Department, error)
}
