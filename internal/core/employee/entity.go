package employee

import "time"

// Employee は社員エンティティです。
// 部署と職位は部署異動申請の承認時に更新されます。
type Employee struct {
	ID           string
	Name         string
	Email        string
	DepartmentID *string
	JobTitle     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AssignmentPatch は社員の配属情報に対する部分更新です。
// JobTitle が nil の場合は既存の職位を維持します。
type AssignmentPatch struct {
	DepartmentID string
	JobTitle     *string
	UpdatedAt    time.Time
}
