package catalog

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"vue-estate/internal/storage"
)

const maxNameLen = 20

type TemplateStorage interface {
	ListTemplates(ctx context.Context) ([]*storage.ExpenseTemplate, error)
	GetTemplate(ctx context.Context, id int64) (*storage.ExpenseTemplate, error)
	InsertTemplate(ctx context.Context, tmpl storage.ExpenseTemplate) (int64, error)
	UpdateTemplate(ctx context.Context, id int64, update storage.TemplateUpdate) error
	DeleteTemplate(ctx context.Context, id int64) error
	CountLineItemsByTemplate(ctx context.Context, templateID int64) (int64, error)
}

// CatalogService is the admin surface over expense templates. Name and
// description are trimmed before storage and comparison.
type CatalogService struct {
	storage TemplateStorage
}

func NewCatalogService(storage TemplateStorage) *CatalogService {
	return &CatalogService{storage: storage}
}

// List returns all templates ordered by name.
func (s *CatalogService) List(ctx context.Context) ([]*storage.ExpenseTemplate, error) {
	const op = "service.catalog.List"

	templates, err := s.storage.ListTemplates(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return templates, nil
}

func (s *CatalogService) Get(ctx context.Context, id int64) (*storage.ExpenseTemplate, error) {
	const op = "service.catalog.Get"

	tmpl, err := s.storage.GetTemplate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tmpl, nil
}

// Create validates and inserts a new template.
func (s *CatalogService) Create(ctx context.Context, tmpl storage.ExpenseTemplate) (int64, error) {
	const op = "service.catalog.Create"

	tmpl.Name = strings.TrimSpace(tmpl.Name)
	tmpl.Description = strings.TrimSpace(tmpl.Description)
	if tmpl.Kind == "" {
		tmpl.Kind = storage.KindStandard
	}

	if err := validateName(tmpl.Name); err != nil {
		return 0, err
	}
	if err := validateKind(tmpl.Kind); err != nil {
		return 0, err
	}
	if err := s.checkDuplicateName(ctx, tmpl.Name, 0); err != nil {
		return 0, err
	}

	id, err := s.storage.InsertTemplate(ctx, tmpl)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return id, nil
}

// Update applies a partial change; the duplicate-name check excludes the
// record itself.
func (s *CatalogService) Update(ctx context.Context, id int64, update storage.TemplateUpdate) error {
	const op = "service.catalog.Update"

	if _, err := s.storage.GetTemplate(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		update.Name = &name
		if err := validateName(name); err != nil {
			return err
		}
		if err := s.checkDuplicateName(ctx, name, id); err != nil {
			return err
		}
	}
	if update.Description != nil {
		desc := strings.TrimSpace(*update.Description)
		update.Description = &desc
	}
	if update.Kind != nil {
		if err := validateKind(*update.Kind); err != nil {
			return err
		}
	}

	if err := s.storage.UpdateTemplate(ctx, id, update); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Delete removes a template unless a line item still references it.
func (s *CatalogService) Delete(ctx context.Context, id int64) error {
	const op = "service.catalog.Delete"

	if _, err := s.storage.GetTemplate(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	refs, err := s.storage.CountLineItemsByTemplate(ctx, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if refs > 0 {
		return fmt.Errorf("%s: template %d is referenced by %d line items: %w", op, id, refs, storage.ErrConflict)
	}

	if err := s.storage.DeleteTemplate(ctx, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func validateKind(kind storage.TemplateKind) error {
	switch kind {
	case storage.KindStandard, storage.KindRentBased, storage.KindFlatPlusSurcharge:
		return nil
	default:
		return storage.NewValidationError("kind", "must be standard, rent_based or flat_plus_surcharge")
	}
}

func validateName(name string) error {
	if name == "" {
		return storage.NewValidationError("name", "must not be empty")
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return storage.NewValidationError("name", fmt.Sprintf("must be at most %d characters", maxNameLen))
	}
	return nil
}

// checkDuplicateName is case-sensitive over trimmed names; excludeID skips
// the record being updated.
func (s *CatalogService) checkDuplicateName(ctx context.Context, name string, excludeID int64) error {
	templates, err := s.storage.ListTemplates(ctx)
	if err != nil {
		return fmt.Errorf("duplicate check: %w", err)
	}
	for _, tmpl := range templates {
		if tmpl.ID != excludeID && strings.TrimSpace(tmpl.Name) == name {
			return storage.NewValidationError("name", "a template with this name already exists")
		}
	}
	return nil
}
