package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/voltdesk/services/catalog/domain/models"
	"github.com/ghuser/voltdesk/services/catalog/domain/repositories"
)

// ClientService manages the professional's clients.
type ClientService struct {
	repo repositories.ClientRepository
	now  func() time.Time
}

// NewClientService returns a ClientService backed by repo.
func NewClientService(repo repositories.ClientRepository) *ClientService {
	return &ClientService{repo: repo, now: time.Now}
}

func (s *ClientService) Create(ctx context.Context, professionalID uuid.UUID, f models.ClientFields) (*models.Client, error) {
	c, err := models.NewClient(professionalID, f, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, c); err != nil {
		return nil, fmt.Errorf("save client: %w", err)
	}
	return c, nil
}

func (s *ClientService) Get(ctx context.Context, professionalID, id uuid.UUID) (*models.Client, error) {
	return s.repo.GetByID(ctx, professionalID, id)
}

func (s *ClientService) List(ctx context.Context, professionalID uuid.UUID, opts repositories.QueryOpts) ([]*models.Client, int, error) {
	cs, total, err := s.repo.List(ctx, professionalID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list clients: %w", err)
	}
	return cs, total, nil
}

// Update replaces every editable field of the client.
func (s *ClientService) Update(ctx context.Context, professionalID, id uuid.UUID, f models.ClientFields) (*models.Client, error) {
	c, err := s.repo.GetByID(ctx, professionalID, id)
	if err != nil {
		return nil, err
	}
	if err := c.Replace(f, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return c, nil
}

// Delete fails with ErrClientInUse while a budget or material list points at the client.
func (s *ClientService) Delete(ctx context.Context, professionalID, id uuid.UUID) error {
	return s.repo.Delete(ctx, professionalID, id)
}

// ServiceService manages the professional's catalog of services. Items
// snapshot an entry when added, so edits here never touch existing budgets.
type ServiceService struct {
	repo repositories.ServiceRepository
	now  func() time.Time
}

// NewServiceService returns a ServiceService backed by repo.
func NewServiceService(repo repositories.ServiceRepository) *ServiceService {
	return &ServiceService{repo: repo, now: time.Now}
}

func (s *ServiceService) Create(ctx context.Context, professionalID uuid.UUID, f models.OfferingFields) (*models.Service, error) {
	svc, err := models.NewService(professionalID, f, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, svc); err != nil {
		return nil, fmt.Errorf("save service: %w", err)
	}
	return svc, nil
}

func (s *ServiceService) Get(ctx context.Context, professionalID, id uuid.UUID) (*models.Service, error) {
	return s.repo.GetByID(ctx, professionalID, id)
}

func (s *ServiceService) List(ctx context.Context, professionalID uuid.UUID, opts repositories.QueryOpts) ([]*models.Service, int, error) {
	out, total, err := s.repo.List(ctx, professionalID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list services: %w", err)
	}
	return out, total, nil
}

func (s *ServiceService) Update(ctx context.Context, professionalID, id uuid.UUID, f models.OfferingFields) (*models.Service, error) {
	svc, err := s.repo.GetByID(ctx, professionalID, id)
	if err != nil {
		return nil, err
	}
	if err := svc.Replace(f, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("update service: %w", err)
	}
	return svc, nil
}

// Delete removes the service. Items that referenced it keep their snapshot.
func (s *ServiceService) Delete(ctx context.Context, professionalID, id uuid.UUID) error {
	return s.repo.Delete(ctx, professionalID, id)
}

// MaterialService manages the professional's catalog of materials.
type MaterialService struct {
	repo repositories.MaterialRepository
	now  func() time.Time
}

// NewMaterialService returns a MaterialService backed by repo.
func NewMaterialService(repo repositories.MaterialRepository) *MaterialService {
	return &MaterialService{repo: repo, now: time.Now}
}

func (s *MaterialService) Create(ctx context.Context, professionalID uuid.UUID, f models.OfferingFields, brand *string) (*models.Material, error) {
	m, err := models.NewMaterial(professionalID, f, brand, s.now())
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, m); err != nil {
		return nil, fmt.Errorf("save material: %w", err)
	}
	return m, nil
}

func (s *MaterialService) Get(ctx context.Context, professionalID, id uuid.UUID) (*models.Material, error) {
	return s.repo.GetByID(ctx, professionalID, id)
}

func (s *MaterialService) List(ctx context.Context, professionalID uuid.UUID, opts repositories.QueryOpts) ([]*models.Material, int, error) {
	out, total, err := s.repo.List(ctx, professionalID, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list materials: %w", err)
	}
	return out, total, nil
}

func (s *MaterialService) Update(ctx context.Context, professionalID, id uuid.UUID, f models.OfferingFields, brand *string) (*models.Material, error) {
	m, err := s.repo.GetByID(ctx, professionalID, id)
	if err != nil {
		return nil, err
	}
	if err := m.Replace(f, brand, s.now()); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, fmt.Errorf("update material: %w", err)
	}
	return m, nil
}

// Delete removes the material. Items that referenced it keep their snapshot.
func (s *MaterialService) Delete(ctx context.Context, professionalID, id uuid.UUID) error {
	return s.repo.Delete(ctx, professionalID, id)
}
