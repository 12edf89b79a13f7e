package deptrequest

import (
	"strings"
	"time"
)

// Status は部署異動申請の状態を表します。
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// IsTerminal は以降の状態遷移が許可されない状態かを返します。
func (s Status) IsTerminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ParseStatus は文字列を Status に変換します。大文字小文字は区別しません。
func ParseStatus(raw string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	if !isValidStatus(status) {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func isValidStatus(status Status) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

// Request は部署異動申請エンティティです。
// RequesterID と RequestedDepartmentID は作成後に変更されません。
// CurrentJobTitle は申請時点の申請者の職位で、承認後も更新されません。
type Request struct {
	ID                    string
	RequesterID           string
	RequestedDepartmentID string
	RequestedJobTitle     *string
	CurrentJobTitle       *string
	Reason                string
	Status                Status
	AdminNotes            *string
	ProcessedAt           *time.Time
	ProcessedByID         *string
	CreatedAt             time.Time
	UpdatedAt             time.Time

	// 以下は読み取り時の結合結果です。
	Requester               *RequesterSnapshot
	RequestedDepartmentName string
	ProcessedByName         *string
}

// RequesterSnapshot は申請者の現在の所属情報のスナップショットです。
type RequesterSnapshot struct {
	ID             string
	Name           string
	Email          string
	DepartmentID   *string
	DepartmentName *string
}

// CurrentDepartmentName は申請者の現在の部署名を返します。未所属の場合は空文字です。
func (r *Request) CurrentDepartmentName() string {
	if r == nil || r.Requester == nil || r.Requester.DepartmentName == nil {
		return ""
	}
	return *r.Requester.DepartmentName
}

// Clone は Request のディープコピーを返します。
func (r *Request) Clone() *Request {
	if r == nil {
		return nil
	}
	clone := *r
	clone.RequestedJobTitle = cloneString(r.RequestedJobTitle)
	clone.CurrentJobTitle = cloneString(r.CurrentJobTitle)
	clone.AdminNotes = cloneString(r.AdminNotes)
	clone.ProcessedAt = cloneTime(r.ProcessedAt)
	clone.ProcessedByID = cloneString(r.ProcessedByID)
	clone.ProcessedByName = cloneString(r.ProcessedByName)
	if r.Requester != nil {
		snapshot := *r.Requester
		snapshot.DepartmentID = cloneString(r.Requester.DepartmentID)
		snapshot.DepartmentName = cloneString(r.Requester.DepartmentName)
		clone.Requester = &snapshot
	}
	return &clone
}

// ActionDepartmentChanged は部署異動を記録する監査ログのアクション名です。
const ActionDepartmentChanged = "DEPARTMENT_CHANGED"

// AuditEntry は追記専用の監査ログレコードです。
type AuditEntry struct {
	ID            string
	SubjectID     string
	Action        string
	Description   string
	PerformedByID string
	CreatedAt     time.Time
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
