package service

import (
	"context"
	"strings"

	"github.com/Shivanand-hulikatti/resource-hub/internal/model"
)

const maxDomainNameLen = 100

// DomainService orchestrates domain CRUD.
type DomainService struct {
	domains DomainStore
}

// NewDomainService constructs a DomainService.
func NewDomainService(domains DomainStore) *DomainService {
	return &DomainService{domains: domains}
}

func validDomainName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name is required")
	}
	if len(name) > maxDomainNameLen {
		return "", invalid("name cannot exceed %d characters", maxDomainNameLen)
	}
	return name, nil
}

// List returns every domain ordered by name.
func (s *DomainService) List(ctx context.Context) ([]model.Domain, error) {
	return s.domains.List(ctx)
}

// Get returns a domain by id.
func (s *DomainService) Get(ctx context.Context, id int64) (*model.Domain, error) {
	if err := validID(id, "domain"); err != nil {
		return nil, err
	}
	return s.domains.GetByID(ctx, id)
}

// Create adds a domain. Names are trimmed and must be unique.
func (s *DomainService) Create(ctx context.Context, req model.DomainRequest) (*model.Domain, error) {
	name, err := validDomainName(req.Name)
	if err != nil {
		return nil, err
	}
	return s.domains.Create(ctx, name)
}

// Rename changes a domain's name.
func (s *DomainService) Rename(ctx context.Context, id int64, req model.DomainRequest) (*model.Domain, error) {
	if err := validID(id, "domain"); err != nil {
		return nil, err
	}
	name, err := validDomainName(req.Name)
	if err != nil {
		return nil, err
	}
	return s.domains.Update(ctx, id, name)
}

// Delete removes a domain. It fails with a repository.ConflictError while
// blogs or events still reference it.
func (s *DomainService) Delete(ctx context.Context, id int64) (*model.Domain, error) {
	if err := validID(id, "domain"); err != nil {
		return nil, err
	}
	return s.domains.Delete(ctx, id)
}
