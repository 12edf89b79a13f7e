package deptrequest

import (
	"strings"
	"time"
)

// Transition は PENDING の申請に決裁結果を適用した新しい Request を返します。
// 引数の request は変更しません。社員情報には一切触れず、決裁の記録のみを行います。
//
// decision が APPROVED / REJECTED 以外の場合、または request が PENDING でない場合は
// ErrInvalidTransition を返します。adminNotes が nil の場合は既存のメモを維持します。
func Transition(request *Request, decision Status, adminNotes *string, reviewerID string, now time.Time) (*Request, error) {
	if request == nil {
		return nil, ErrRequestNotFound
	}
	if !isValidStatus(decision) {
		return nil, ErrInvalidStatus
	}

	reviewer := strings.TrimSpace(reviewerID)
	if reviewer == "" {
		return nil, ErrUnauthenticated
	}

	if request.Status != StatusPending {
		return nil, ErrInvalidTransition
	}
	if !decision.IsTerminal() {
		return nil, ErrInvalidTransition
	}

	next := request.Clone()
	next.Status = decision
	if adminNotes != nil {
		next.AdminNotes = cloneString(adminNotes)
	}

	processedAt := now
	next.ProcessedAt = &processedAt
	next.ProcessedByID = &reviewer
	next.ProcessedByName = nil
	next.UpdatedAt = now

	return next, nil
}
