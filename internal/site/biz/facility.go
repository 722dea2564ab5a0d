package biz

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/edukit/campus/internal/model"
	"github.com/edukit/campus/internal/site/store"
	apperrors "github.com/edukit/campus/pkg/errors"
	"github.com/edukit/campus/pkg/validator"
)

// FacilityService handles facility business logic.
type FacilityService struct {
	store store.Factory
}

// NewFacilityService creates a new FacilityService.
func NewFacilityService(store store.Factory) *FacilityService {
	return &FacilityService{store: store}
}

func (s *FacilityService) facilityRules(ctx context.Context, excludeID uint) *validator.RuleSet {
	return validator.NewRuleSet().
		Field("name", validator.Required(), validator.MaxLen(255)).
		Field("slug",
			validator.Required(),
			validator.MaxLen(255),
			validator.Slug(),
			validator.Unique(func(slug string) (bool, error) {
				return s.store.Facilities().SlugTaken(ctx, slug, excludeID)
			}),
		).
		Field("description", validator.MaxLen(5000)).
		Field("image", validator.URL()).
		Field("capacity", validator.Integer(), validator.IntBetween(1, model.FacilityMaxCapacity)).
		Field("active", validator.Bool())
}

// Create validates the payload and persists the facility.
func (s *FacilityService) Create(ctx context.Context, payload map[string]any) (*model.Facility, *validator.ValidationErrors, error) {
	if verrs := s.facilityRules(ctx, 0).Apply(payload); verrs != nil {
		return nil, verrs, nil
	}

	facility := model.NewFacilityCreate(payload).Model()
	if err := s.store.Facilities().Create(ctx, facility); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}
	return facility, nil, nil
}

// Update validates the supplied fields and merges the sparse patch.
func (s *FacilityService) Update(ctx context.Context, id uint, payload map[string]any) (*model.Facility, *validator.ValidationErrors, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, nil, err
	}

	if verrs := s.facilityRules(ctx, id).ApplyPresent(payload); verrs != nil {
		return nil, verrs, nil
	}

	patch := model.NewFacilityPatch(payload)
	if err := s.store.Facilities().Update(ctx, id, patch.Changes()); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// Delete removes a facility.
func (s *FacilityService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Facilities().Delete(ctx, id); err != nil {
		return apperrors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves a facility by id.
func (s *FacilityService) Get(ctx context.Context, id uint) (*model.Facility, error) {
	facility, err := s.store.Facilities().Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return facility, nil
}

// GetBySlug retrieves a facility by slug, for the public site.
func (s *FacilityService) GetBySlug(ctx context.Context, slug string) (*model.Facility, error) {
	facility, err := s.store.Facilities().GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return facility, nil
}

// List lists facilities with pagination.
func (s *FacilityService) List(ctx context.Context, offset, limit int) (*model.FacilityList, error) {
	count, items, err := s.store.Facilities().List(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return &model.FacilityList{TotalCount: count, Items: items}, nil
}
