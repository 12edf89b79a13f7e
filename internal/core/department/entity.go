package department

import "time"

// Department は部署エンティティです。
type Department struct {
	ID          string
	Name        string
	Code        string
	Description *string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
