package deptrequest

import (
	"context"
	"errors"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/ogurasousui/hr-department-requests/internal/core/department"
	"github.com/ogurasousui/hr-department-requests/internal/core/employee"
)

const (
	deptSales       = "00000000-0000-0000-0000-0000000000d1"
	deptEngineering = "00000000-0000-0000-0000-0000000000d2"
	deptUnknown     = "00000000-0000-0000-0000-0000000000ff"

	employeeE = "employee-e"
	hrH       = "hr-h"
	managerM  = "manager-m"
)

type stubClock struct {
	mu  sync.Mutex
	now time.Time
}

func (s *stubClock) Now() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

type fakeRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*Request
	order    []string
	names    map[string]string

	updateErr   error
	decideCalls int
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{
		requests: make(map[string]*Request),
		names: map[string]string{
			deptSales:       "Sales",
			deptEngineering: "Engineering",
		},
	}
}

func (r *fakeRequestRepo) Create(_ context.Context, req *Request) (*Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clone := req.Clone()
	clone.RequestedDepartmentName = r.names[clone.RequestedDepartmentID]
	r.requests[clone.ID] = clone
	r.order = append(r.order, clone.ID)
	return clone.Clone(), nil
}

func (r *fakeRequestRepo) FindByID(_ context.Context, id string) (*Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	req, ok := r.requests[id]
	if !ok {
		return nil, ErrRequestNotFound
	}
	return req.Clone(), nil
}

func (r *fakeRequestRepo) List(_ context.Context, filter ListRequestsFilter) ([]*Request, string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var filtered []*Request
	for i := len(r.order) - 1; i >= 0; i-- {
		req := r.requests[r.order[i]]
		if filter.RequesterID != nil && req.RequesterID != *filter.RequesterID {
			continue
		}
		if filter.Status != nil && req.Status != *filter.Status {
			continue
		}
		filtered = append(filtered, req.Clone())
	}

	if filter.Offset > len(filtered) {
		return []*Request{}, "", nil
	}
	end := filter.Offset + filter.Limit
	if end > len(filtered) {
		end = len(filtered)
	}
	next := ""
	if end < len(filtered) {
		next = strconv.Itoa(end)
	}
	return filtered[filter.Offset:end], next, nil
}

func (r *fakeRequestRepo) UpdateDecision(_ context.Context, req *Request) (*Request, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.decideCalls++
	if r.updateErr != nil {
		return nil, r.updateErr
	}

	stored, ok := r.requests[req.ID]
	if !ok {
		return nil, ErrRequestNotFound
	}
	if stored.Status != StatusPending {
		return nil, ErrConflict
	}

	clone := req.Clone()
	r.requests[req.ID] = clone
	return clone.Clone(), nil
}

func (r *fakeRequestRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.requests[id]; !ok {
		return ErrRequestNotFound
	}
	delete(r.requests, id)
	for idx, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:idx], r.order[idx+1:]...)
			break
		}
	}
	return nil
}

func (r *fakeRequestRepo) stored(id string) *Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.requests[id].Clone()
}

type fakeEmployeeDirectory struct {
	mu        sync.Mutex
	employees map[string]*employee.Employee
	updates   int
	updateErr error
}

func newFakeEmployeeDirectory() *fakeEmployeeDirectory {
	sales := deptSales
	title := "Account Executive"
	return &fakeEmployeeDirectory{employees: map[string]*employee.Employee{
		employeeE: {ID: employeeE, Name: "Erin", Email: "erin@example.com", DepartmentID: &sales, JobTitle: &title},
		hrH:       {ID: hrH, Name: "Hana", Email: "hana@example.com"},
	}}
}

func (d *fakeEmployeeDirectory) FindByID(_ context.Context, id string) (*employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	emp, ok := d.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	clone := *emp
	return &clone, nil
}

func (d *fakeEmployeeDirectory) UpdateAssignment(_ context.Context, id string, patch employee.AssignmentPatch) (*employee.Employee, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.updateErr != nil {
		return nil, d.updateErr
	}
	emp, ok := d.employees[id]
	if !ok {
		return nil, employee.ErrEmployeeNotFound
	}
	d.updates++
	deptID := patch.DepartmentID
	emp.DepartmentID = &deptID
	if patch.JobTitle != nil {
		title := *patch.JobTitle
		emp.JobTitle = &title
	}
	emp.UpdatedAt = patch.UpdatedAt
	clone := *emp
	return &clone, nil
}

func (d *fakeEmployeeDirectory) snapshot(id string) employee.Employee {
	d.mu.Lock()
	defer d.mu.Unlock()
	return *d.employees[id]
}

type fakeDepartmentDirectory struct {
	departments map[string]*department.Department
}

func newFakeDepartmentDirectory() *fakeDepartmentDirectory {
	return &fakeDepartmentDirectory{departments: map[string]*department.Department{
		deptSales:       {ID: deptSales, Name: "Sales", Code: "sales"},
		deptEngineering: {ID: deptEngineering, Name: "Engineering", Code: "eng"},
	}}
}

func (d *fakeDepartmentDirectory) FindByID(_ context.Context, id string) (*department.Department, error) {
	dept, ok := d.departments[id]
	if !ok {
		return nil, department.ErrDepartmentNotFound
	}
	clone := *dept
	return &clone, nil
}

type fakeAuditSink struct {
	mu      sync.Mutex
	entries []*AuditEntry
	err     error
}

func (s *fakeAuditSink) Append(_ context.Context, entry *AuditEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	clone := *entry
	s.entries = append(s.entries, &clone)
	return nil
}

func (s *fakeAuditSink) all() []*AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*AuditEntry, len(s.entries))
	copy(out, s.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// recordingTx は WithinReadWrite の失敗時にロールバックを模倣せず、呼び出し回数のみを記録します。
type recordingTx struct {
	mu         sync.Mutex
	readWrite  int
	readOnly   int
	lastErrors []error
}

func (t *recordingTx) WithinReadOnly(ctx context.Context, fn func(context.Context) error) error {
	t.mu.Lock()
	t.readOnly++
	t.mu.Unlock()
	return fn(ctx)
}

func (t *recordingTx) WithinReadWrite(ctx context.Context, fn func(context.Context) error) error {
	t.mu.Lock()
	t.readWrite++
	t.mu.Unlock()
	err := fn(ctx)
	if err != nil {
		t.mu.Lock()
		t.lastErrors = append(t.lastErrors, err)
		t.mu.Unlock()
	}
	return err
}

var errStoreDown = errors.New("store unavailable")
