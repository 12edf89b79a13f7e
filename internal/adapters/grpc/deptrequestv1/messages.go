package deptrequestv1

// DepartmentRequest は部署異動申請の表示用射影です。
type DepartmentRequest struct {
	ID                      string  `json:"id"`
	RequesterID             string  `json:"requesterId"`
	UserName                string  `json:"userName"`
	UserEmail               string  `json:"userEmail"`
	CurrentDepartmentID     *string `json:"currentDepartmentId,omitempty"`
	CurrentDepartmentName   string  `json:"currentDepartmentName"`
	CurrentJobTitle         *string `json:"currentJobTitle,omitempty"`
	RequestedDepartmentID   string  `json:"requestedDepartmentId"`
	RequestedDepartmentName string  `json:"requestedDepartmentName"`
	RequestedJobTitle       *string `json:"requestedJobTitle,omitempty"`
	Reason                  string  `json:"reason"`
	Status                  string  `json:"status"`
	AdminNotes              *string `json:"adminNotes,omitempty"`
	ProcessedAt             *string `json:"processedAt,omitempty"`
	ProcessedByID           *string `json:"processedById,omitempty"`
	ProcessedByName         *string `json:"processedByName,omitempty"`
	CreatedAt               string  `json:"createdAt"`
	UpdatedAt               string  `json:"updatedAt"`
}

type CreateDepartmentRequestRequest struct {
	RequestedDepartmentID string  `json:"requestedDepartmentId"`
	RequestedJobTitle     *string `json:"requestedJobTitle,omitempty"`
	Reason                string  `json:"reason"`
}

type CreateDepartmentRequestResponse struct {
	Request *DepartmentRequest `json:"request"`
}

type GetDepartmentRequestRequest struct {
	ID string `json:"id"`
}

type GetDepartmentRequestResponse struct {
	Request *DepartmentRequest `json:"request"`
}

type ListDepartmentRequestsRequest struct {
	PageSize  int32  `json:"pageSize,omitempty"`
	PageToken string `json:"pageToken,omitempty"`
	Status    string `json:"status,omitempty"`
}

type ListDepartmentRequestsResponse struct {
	Requests      []*DepartmentRequest `json:"requests"`
	NextPageToken string               `json:"nextPageToken,omitempty"`
}

// DecideDepartmentRequestRequest の Status は APPROVED / REJECTED を受け付けます。
type DecideDepartmentRequestRequest struct {
	ID         string  `json:"id"`
	Status     string  `json:"status"`
	AdminNotes *string `json:"adminNotes,omitempty"`
}

type DecideDepartmentRequestResponse struct {
	Request *DepartmentRequest `json:"request"`
}

type DeleteDepartmentRequestRequest struct {
	ID string `json:"id"`
}

type DeleteDepartmentRequestResponse struct{}
