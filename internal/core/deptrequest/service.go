package deptrequest

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/ogurasousui/hr-department-requests/internal/core/department"
	"github.com/ogurasousui/hr-department-requests/internal/core/employee"
	"go.uber.org/zap"
)

// Clock は現在時刻を提供します。
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

// TransactionManager はトランザクション制御の抽象化です。
type TransactionManager interface {
	WithinReadOnly(ctx context.Context, fn func(context.Context) error) error
	WithinReadWrite(ctx context.Context, fn func(context.Context) error) error
}

type noopTransactionManager struct{}

func (noopTransactionManager) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

func (noopTransactionManager) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

const (
	defaultListPageSize = 50
	maxListPageSize     = 200

	maxJobTitleLength   = 200
	maxReasonLength     = 2000
	maxAdminNotesLength = 2000
)

// UseCase は部署異動申請ユースケースの公開インターフェースです。
type UseCase interface {
	RequestChange(ctx context.Context, in RequestChangeInput) (*Request, error)
	Decide(ctx context.Context, in DecideInput) (*Request, error)
	View(ctx context.Context, in ViewInput) (*Request, error)
	List(ctx context.Context, in ListInput) (*ListResult, error)
	Withdraw(ctx context.Context, in WithdrawInput) error
}

// Dependencies は Service の依存関係です。Clock / Tx / Logger は省略可能です。
type Dependencies struct {
	Repo        Repository
	Employees   EmployeeDirectory
	Departments DepartmentDirectory
	Applier     *MutationApplier
	Policy      *Policy
	Clock       Clock
	Tx          TransactionManager
	Logger      *zap.Logger
	// StrictAudit が true の場合、監査ログの追記を決裁と同じトランザクションで行い、
	// 失敗時は承認自体を失敗させます。
	StrictAudit bool
}

// Service は部署異動申請のワークフローをまとめます。
type Service struct {
	repo        Repository
	employees   EmployeeDirectory
	departments DepartmentDirectory
	applier     *MutationApplier
	policy      *Policy
	clock       Clock
	tx          TransactionManager
	logger      *zap.Logger
	strictAudit bool
}

// NewService は Service を生成します。
func NewService(deps Dependencies) *Service {
	clock := deps.Clock
	if clock == nil {
		clock = realClock{}
	}
	tx := deps.Tx
	if tx == nil {
		tx = noopTransactionManager{}
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:        deps.Repo,
		employees:   deps.Employees,
		departments: deps.Departments,
		applier:     deps.Applier,
		policy:      deps.Policy,
		clock:       clock,
		tx:          tx,
		logger:      logger,
		strictAudit: deps.StrictAudit,
	}
}

// RequestChangeInput は申請作成時の入力です。
type RequestChangeInput struct {
	Actor                 Actor
	RequestedDepartmentID string
	RequestedJobTitle     *string
	Reason                string
}

// DecideInput は決裁時の入力です。
type DecideInput struct {
	Actor      Actor
	RequestID  string
	Decision   Status
	AdminNotes *string
}

// ViewInput は申請取得時の入力です。
type ViewInput struct {
	Actor     Actor
	RequestID string
}

// WithdrawInput は申請削除時の入力です。
type WithdrawInput struct {
	Actor     Actor
	RequestID string
}

// ListInput は一覧取得時の入力です。
type ListInput struct {
	Actor     Actor
	PageSize  int
	PageToken string
	Status    *Status
}

// ListResult は一覧取得結果を表します。
type ListResult struct {
	Requests      []*Request
	NextPageToken string
}

// RequestChange は操作者本人を申請者とする部署異動申請を作成します。
func (s *Service) RequestChange(ctx context.Context, in RequestChangeInput) (*Request, error) {
	if !in.Actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	departmentID, err := normalizeUUID(in.RequestedDepartmentID, ErrInvalidDepartmentID)
	if err != nil {
		return nil, err
	}

	jobTitle, err := normalizeOptionalText(in.RequestedJobTitle, maxJobTitleLength, ErrInvalidJobTitle)
	if err != nil {
		return nil, err
	}

	reason := strings.TrimSpace(in.Reason)
	if utf8.RuneCountInString(reason) > maxReasonLength {
		return nil, ErrInvalidReason
	}

	var created *Request
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		if _, err := s.departments.FindByID(txCtx, departmentID); err != nil {
			if errors.Is(err, department.ErrDepartmentNotFound) {
				return ErrDepartmentNotFound
			}
			return err
		}

		requester, err := s.employees.FindByID(txCtx, in.Actor.ID)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return ErrRequesterNotFound
			}
			return err
		}

		now := s.clock.Now()
		result, err := s.repo.Create(txCtx, &Request{
			ID:                    uuid.NewString(),
			RequesterID:           in.Actor.ID,
			RequestedDepartmentID: departmentID,
			RequestedJobTitle:     jobTitle,
			CurrentJobTitle:       cloneString(requester.JobTitle),
			Reason:                reason,
			Status:                StatusPending,
			CreatedAt:             now,
			UpdatedAt:             now,
		})
		if err != nil {
			return err
		}
		created = result
		return nil
	}); err != nil {
		return nil, err
	}

	s.logger.Info("department request created",
		zap.String("request_id", created.ID),
		zap.String("requester_id", created.RequesterID),
		zap.String("requested_department_id", created.RequestedDepartmentID),
	)
	return created, nil
}

// Decide は申請を承認または却下します。
//
// 申請の読み込み、認可、状態遷移、条件付き更新、承認時の配属更新は単一のトランザクションで実行されます。
// 監査ログは既定ではコミット後にベストエフォートで追記され、失敗はログに記録されるのみです。
func (s *Service) Decide(ctx context.Context, in DecideInput) (*Request, error) {
	if !in.Actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	id, err := normalizeUUID(in.RequestID, ErrInvalidID)
	if err != nil {
		return nil, err
	}

	if !isValidStatus(in.Decision) {
		return nil, ErrInvalidStatus
	}

	notes, err := normalizeOptionalText(in.AdminNotes, maxAdminNotesLength, ErrInvalidAdminNotes)
	if err != nil {
		return nil, err
	}

	var (
		decided *Request
		entry   *AuditEntry
	)
	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if !s.policy.CanTransition(in.Actor, existing) {
			return ErrUnauthorized
		}

		next, err := Transition(existing, in.Decision, notes, in.Actor.ID, s.clock.Now())
		if err != nil {
			return err
		}

		saved, err := s.repo.UpdateDecision(txCtx, next)
		if err != nil {
			return err
		}

		if saved.Status == StatusApproved {
			applied, err := s.applier.Apply(txCtx, saved)
			if err != nil {
				return fmt.Errorf("apply department change: %w", err)
			}
			entry = applied

			if s.strictAudit {
				if err := s.applier.Record(txCtx, entry); err != nil {
					return err
				}
				entry = nil
			}
		}

		decided = saved
		return nil
	}); err != nil {
		recordDecision(in.Decision, err)
		return nil, err
	}
	recordDecision(in.Decision, nil)

	if entry != nil {
		// 監査ログの失敗は確定済みの配属変更を取り消さない。
		_ = s.applier.Record(ctx, entry)
	}

	s.logger.Info("department request decided",
		zap.String("request_id", decided.ID),
		zap.String("status", string(decided.Status)),
		zap.String("processed_by_id", in.Actor.ID),
	)
	return decided, nil
}

// View は閲覧権限を確認した上で申請を取得します。
func (s *Service) View(ctx context.Context, in ViewInput) (*Request, error) {
	if !in.Actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	id, err := normalizeUUID(in.RequestID, ErrInvalidID)
	if err != nil {
		return nil, err
	}

	var found *Request
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}
		found = result
		return nil
	}); err != nil {
		return nil, err
	}

	if !s.policy.CanView(in.Actor, found) {
		return nil, ErrUnauthorized
	}
	return found, nil
}

// List は申請の一覧を取得します。人事系ロール以外は自身の申請のみが対象です。
func (s *Service) List(ctx context.Context, in ListInput) (*ListResult, error) {
	if !in.Actor.Authenticated() {
		return nil, ErrUnauthenticated
	}

	limit, err := normalizePageSize(in.PageSize)
	if err != nil {
		return nil, err
	}

	offset, err := parsePageToken(in.PageToken)
	if err != nil {
		return nil, err
	}

	filter := ListRequestsFilter{Limit: limit, Offset: offset}
	if in.Status != nil {
		if !isValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		status := *in.Status
		filter.Status = &status
	}
	if !s.policy.CanViewAll(in.Actor) {
		requesterID := in.Actor.ID
		filter.RequesterID = &requesterID
	}

	var (
		requests  []*Request
		nextToken string
	)
	if err := s.tx.WithinReadOnly(ctx, func(txCtx context.Context) error {
		result, token, err := s.repo.List(txCtx, filter)
		if err != nil {
			return err
		}
		requests = result
		nextToken = token
		return nil
	}); err != nil {
		return nil, err
	}

	return &ListResult{Requests: requests, NextPageToken: nextToken}, nil
}

// Withdraw は申請を削除します。申請者本人と人事系ロールは状態に関わらず削除できます。
func (s *Service) Withdraw(ctx context.Context, in WithdrawInput) error {
	if !in.Actor.Authenticated() {
		return ErrUnauthenticated
	}

	id, err := normalizeUUID(in.RequestID, ErrInvalidID)
	if err != nil {
		return err
	}

	if err := s.tx.WithinReadWrite(ctx, func(txCtx context.Context) error {
		existing, err := s.repo.FindByID(txCtx, id)
		if err != nil {
			return err
		}

		if !s.policy.CanDelete(in.Actor, existing) {
			return ErrUnauthorized
		}

		return s.repo.Delete(txCtx, id)
	}); err != nil {
		return err
	}

	s.logger.Info("department request deleted",
		zap.String("request_id", id),
		zap.String("actor_id", in.Actor.ID),
	)
	return nil
}

func normalizeUUID(raw string, invalid error) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", invalid
	}
	parsed, err := uuid.Parse(trimmed)
	if err != nil {
		return "", invalid
	}
	return parsed.String(), nil
}

func normalizeOptionalText(raw *string, maxLength int, invalid error) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*raw)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxLength {
		return nil, invalid
	}
	return &trimmed, nil
}

func normalizePageSize(pageSize int) (int, error) {
	if pageSize <= 0 {
		return defaultListPageSize, nil
	}
	if pageSize > maxListPageSize {
		return 0, ErrInvalidPageSize
	}
	return pageSize, nil
}

func parsePageToken(token string) (int, error) {
	if strings.TrimSpace(token) == "" {
		return 0, nil
	}

	offset, err := strconv.Atoi(token)
	if err != nil || offset < 0 {
		return 0, ErrInvalidPageToken
	}

	return offset, nil
}
