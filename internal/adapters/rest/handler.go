package rest

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogurasousui/hr-department-requests/internal/core/deptrequest"
)

type handler struct {
	svc deptrequest.UseCase
}

func newHandler(svc deptrequest.UseCase) *handler {
	return &handler{svc: svc}
}

type createRequestBody struct {
	RequestedDepartmentID string  `json:"requestedDepartmentId" binding:"required"`
	RequestedJobTitle     *string `json:"requestedJobTitle" binding:"omitempty,max=200"`
	Reason                string  `json:"reason" binding:"max=2000"`
}

type decideRequestBody struct {
	Status     string  `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED"`
	AdminNotes *string `json:"adminNotes" binding:"omitempty,max=2000"`
}

type actionRequestBody struct {
	AdminNotes *string `json:"adminNotes" binding:"omitempty,max=2000"`
}

type listQuery struct {
	Status    string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	PageSize  int    `form:"page_size" binding:"omitempty,min=1,max=200"`
	PageToken string `form:"page_token"`
}

type requestView struct {
	ID                      string  `json:"id"`
	RequesterID             string  `json:"requesterId"`
	UserName                string  `json:"userName"`
	UserEmail               string  `json:"userEmail"`
	CurrentDepartmentID     *string `json:"currentDepartmentId"`
	CurrentDepartmentName   string  `json:"currentDepartmentName"`
	CurrentJobTitle         *string `json:"currentJobTitle"`
	RequestedDepartmentID   string  `json:"requestedDepartmentId"`
	RequestedDepartmentName string  `json:"requestedDepartmentName"`
	RequestedJobTitle       *string `json:"requestedJobTitle"`
	Reason                  string  `json:"reason"`
	Status                  string  `json:"status"`
	AdminNotes              *string `json:"adminNotes"`
	ProcessedAt             *string `json:"processedAt"`
	ProcessedByID           *string `json:"processedById"`
	ProcessedByName         *string `json:"processedByName"`
	CreatedAt               string  `json:"createdAt"`
	UpdatedAt               string  `json:"updatedAt"`
}

type listResponse struct {
	Requests      []requestView `json:"requests"`
	NextPageToken string        `json:"nextPageToken"`
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) list(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindingError(c, err)
		return
	}

	in := deptrequest.ListInput{
		Actor:     actorFrom(c),
		PageSize:  q.PageSize,
		PageToken: q.PageToken,
	}
	if q.Status != "" {
		s := deptrequest.Status(q.Status)
		in.Status = &s
	}

	result, err := h.svc.List(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}

	resp := listResponse{
		Requests:      make([]requestView, 0, len(result.Requests)),
		NextPageToken: result.NextPageToken,
	}
	for _, r := range result.Requests {
		resp.Requests = append(resp.Requests, toView(r))
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) create(c *gin.Context) {
	var body createRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindingError(c, err)
		return
	}

	created, err := h.svc.RequestChange(c.Request.Context(), deptrequest.RequestChangeInput{
		Actor:                 actorFrom(c),
		RequestedDepartmentID: body.RequestedDepartmentID,
		RequestedJobTitle:     body.RequestedJobTitle,
		Reason:                body.Reason,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toView(created))
}

func (h *handler) get(c *gin.Context) {
	found, err := h.svc.View(c.Request.Context(), deptrequest.ViewInput{
		Actor:     actorFrom(c),
		RequestID: c.Param("id"),
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toView(found))
}

func (h *handler) decide(c *gin.Context) {
	var body decideRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		writeBindingError(c, err)
		return
	}

	h.respondDecision(c, deptrequest.Status(body.Status), body.AdminNotes)
}

// action は approve / reject エンドポイント用のハンドラーを返します。ボディは省略できます。
func (h *handler) action(decision deptrequest.Status) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body actionRequestBody
		if c.Request.Body != nil && c.Request.Body != http.NoBody {
			// 本文は省略可能。空の本文は adminNotes なしとして扱う。
			if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
				writeBindingError(c, err)
				return
			}
		}

		h.respondDecision(c, decision, body.AdminNotes)
	}
}

func (h *handler) respondDecision(c *gin.Context, decision deptrequest.Status, notes *string) {
	decided, err := h.svc.Decide(c.Request.Context(), deptrequest.DecideInput{
		Actor:      actorFrom(c),
		RequestID:  c.Param("id"),
		Decision:   decision,
		AdminNotes: notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toView(decided))
}

func (h *handler) delete(c *gin.Context) {
	id := c.Param("id")
	if err := h.svc.Withdraw(c.Request.Context(), deptrequest.WithdrawInput{
		Actor:     actorFrom(c),
		RequestID: id,
	}); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "deleted": true})
}

func toView(r *deptrequest.Request) requestView {
	v := requestView{
		ID:                      r.ID,
		RequesterID:             r.RequesterID,
		CurrentDepartmentName:   r.CurrentDepartmentName(),
		RequestedDepartmentID:   r.RequestedDepartmentID,
		RequestedDepartmentName: r.RequestedDepartmentName,
		RequestedJobTitle:       r.RequestedJobTitle,
		CurrentJobTitle:         r.CurrentJobTitle,
		Reason:                  r.Reason,
		Status:                  string(r.Status),
		AdminNotes:              r.AdminNotes,
		ProcessedByID:           r.ProcessedByID,
		ProcessedByName:         r.ProcessedByName,
		CreatedAt:               r.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:               r.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if r.Requester != nil {
		v.UserName = r.Requester.Name
		v.UserEmail = r.Requester.Email
		v.CurrentDepartmentID = r.Requester.DepartmentID
	}
	if r.ProcessedAt != nil {
		processed := r.ProcessedAt.UTC().Format(time.RFC3339Nano)
		v.ProcessedAt = &processed
	}
	return v
}
