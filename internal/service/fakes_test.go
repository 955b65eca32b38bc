package service

import (
	"context"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/resource-hub/internal/database"
	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
	"github.com/Shivanand-hulikatti/resource-hub/internal/repository"
)

// fakeBlogStore is an in-memory BlogStore.
type fakeBlogStore struct {
	mu     sync.Mutex
	nextID int64
	blogs  map[int64]*model.Blog

	lastFilter model.BlogFilter
}

func newFakeBlogStore() *fakeBlogStore {
	return &fakeBlogStore{blogs: make(map[int64]*model.Blog)}
}

func (f *fakeBlogStore) Create(_ context.Context, req model.CreateBlogRequest) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	b := &model.Blog{
		ID:         f.nextID,
		Title:      req.Title,
		Content:    req.Content,
		AuthorName: req.AuthorName,
		DomainName: req.DomainName,
		Status:     model.BlogPending,
		CreatedAt:  time.Now(),
	}
	f.blogs[b.ID] = b
	cp := *b
	return &cp, nil
}

func (f *fakeBlogStore) GetByID(_ context.Context, id int64) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBlogStore) list(match func(*model.Blog) bool) []model.Blog {
	var out []model.Blog
	for id := int64(1); id <= f.nextID; id++ {
		if b, ok := f.blogs[id]; ok && match(b) {
			out = append(out, *b)
		}
	}
	return out
}

func (f *fakeBlogStore) ListApproved(_ context.Context, filter model.BlogFilter) ([]model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	return f.list(func(b *model.Blog) bool { return b.Status == model.BlogApproved }), nil
}

func (f *fakeBlogStore) ListPending(_ context.Context) ([]model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.list(func(b *model.Blog) bool { return b.Status == model.BlogPending }), nil
}

func (f *fakeBlogStore) Search(_ context.Context, filter model.BlogFilter) ([]model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	return f.list(func(b *model.Blog) bool { return filter.Status == "" || b.Status == filter.Status }), nil
}

func (f *fakeBlogStore) Update(_ context.Context, id int64, patch model.BlogPatch) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok || b.Status != model.BlogPending {
		return nil, repository.ErrNotEligible
	}
	if patch.Title != nil {
		b.Title = *patch.Title
	}
	if patch.Content != nil {
		b.Content = *patch.Content
	}
	if patch.DomainName != nil {
		b.DomainName = *patch.DomainName
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBlogStore) transition(id int64, to model.BlogStatus, reason *string) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok || b.Status != model.BlogPending {
		return nil, repository.ErrNotEligible
	}
	b.Status = to
	b.RejectionReason = reason
	cp := *b
	return &cp, nil
}

func (f *fakeBlogStore) Approve(_ context.Context, id int64) (*model.Blog, error) {
	return f.transition(id, model.BlogApproved, nil)
}

func (f *fakeBlogStore) Reject(_ context.Context, id int64, reason string) (*model.Blog, error) {
	return f.transition(id, model.BlogRejected, &reason)
}

func (f *fakeBlogStore) Delete(_ context.Context, id int64) (*model.Blog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.blogs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(f.blogs, id)
	return b, nil
}

// fakeDomainStore is an in-memory DomainStore.
type fakeDomainStore struct {
	nextID  int64
	domains map[int64]*model.Domain
	// inUse maps a domain id to the number of dependents blocking its deletion.
	inUse map[int64]int64
}

func newFakeDomainStore() *fakeDomainStore {
	return &fakeDomainStore{domains: make(map[int64]*model.Domain), inUse: make(map[int64]int64)}
}

func (f *fakeDomainStore) List(context.Context) ([]model.Domain, error) {
	var out []model.Domain
	for _, d := range f.domains {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDomainStore) GetByID(_ context.Context, id int64) (*model.Domain, error) {
	d, ok := f.domains[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return d, nil
}

func (f *fakeDomainStore) Create(_ context.Context, name string) (*model.Domain, error) {
	for _, d := range f.domains {
		if d.Name == name {
			return nil, repository.ErrDuplicateDomain
		}
	}
	f.nextID++
	d := &model.Domain{ID: f.nextID, Name: name}
	f.domains[d.ID] = d
	return d, nil
}

func (f *fakeDomainStore) Update(_ context.Context, id int64, name string) (*model.Domain, error) {
	d, ok := f.domains[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	d.Name = name
	return d, nil
}

func (f *fakeDomainStore) Delete(_ context.Context, id int64) (*model.Domain, error) {
	d, ok := f.domains[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if n := f.inUse[id]; n > 0 {
		return nil, &repository.ConflictError{DomainID: id, Blogs: n}
	}
	delete(f.domains, id)
	return d, nil
}

// fakeEventStore is an in-memory EventStore and RegistrationStore.
type fakeEventStore struct {
	nextID        int64
	events        map[int64]*model.Event
	registrations map[int64][]model.Registration

	lastCreate model.CreateEventRequest
	lastPatch  model.EventPatch
	lastReg    model.RegisterRequest
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: make(map[int64]*model.Event), registrations: make(map[int64][]model.Registration)}
}

func (f *fakeEventStore) Create(_ context.Context, req model.CreateEventRequest) (*model.Event, error) {
	f.lastCreate = req
	f.nextID++
	e := &model.Event{ID: f.nextID, Title: req.Title, Description: req.Description, EventType: req.EventType, EventDate: req.EventDate}
	if req.DomainName != nil {
		e.DomainName = *req.DomainName
	}
	f.events[e.ID] = e
	return e, nil
}

func (f *fakeEventStore) List(context.Context, model.EventFilter) ([]model.Event, error) {
	var out []model.Event
	for _, e := range f.events {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id int64) (*model.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return e, nil
}

func (f *fakeEventStore) Update(_ context.Context, id int64, patch model.EventPatch) (*model.Event, error) {
	f.lastPatch = patch
	e, ok := f.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Title != nil {
		e.Title = *patch.Title
	}
	return e, nil
}

func (f *fakeEventStore) Delete(_ context.Context, id int64) (*model.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	delete(f.events, id)
	delete(f.registrations, id)
	return e, nil
}

func (f *fakeEventStore) Exists(_ context.Context, id int64) (bool, error) {
	_, ok := f.events[id]
	return ok, nil
}

func (f *fakeEventStore) Register(_ context.Context, eventID int64, req model.RegisterRequest) (*model.Registration, error) {
	f.lastReg = req
	e, ok := f.events[eventID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	for _, r := range f.registrations[eventID] {
		if r.Email != nil && *r.Email == req.Email {
			return nil, repository.ErrDuplicateRegistration
		}
	}
	reg := model.Registration{
		ID:         int64(len(f.registrations[eventID]) + 1),
		EventID:    eventID,
		EventTitle: e.Title,
		UserID:     req.UserID,
		Status:     model.RegistrationRegistered,
	}
	if req.Email != "" {
		email := req.Email
		reg.Email = &email
	}
	f.registrations[eventID] = append(f.registrations[eventID], reg)
	return &reg, nil
}

func (f *fakeEventStore) ListByEvent(_ context.Context, eventID int64) ([]model.Registration, error) {
	return f.registrations[eventID], nil
}

// fakeAdminStore returns canned diagnostics.
type fakeAdminStore struct {
	stats    model.DashboardStats
	report   database.HealthReport
	repairOK bool
}

func (f *fakeAdminStore) DashboardStats(context.Context) (*model.DashboardStats, error) {
	s := f.stats
	return &s, nil
}

func (f *fakeAdminStore) DatabaseHealth(context.Context) *database.HealthReport {
	r := f.report
	return &r
}

func (f *fakeAdminStore) Repair(context.Context) bool {
	return f.repairOK
}
