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

// AnnouncementService handles announcement business logic.
type AnnouncementService struct {
	store store.Factory
}

// NewAnnouncementService creates a new AnnouncementService.
func NewAnnouncementService(store store.Factory) *AnnouncementService {
	return &AnnouncementService{store: store}
}

func announcementRules() *validator.RuleSet {
	return validator.NewRuleSet().
		Field("title", validator.Required(), validator.MaxLen(255)).
		Field("body", validator.Required()).
		Field("pinned", validator.Bool()).
		Field("published_at", validator.DateTime()).
		// The ordering violation lands on expires_at, the later field.
		Field("expires_at", validator.DateTime(), validator.After("published_at"))
}

// Create validates the payload and persists the announcement.
func (s *AnnouncementService) Create(ctx context.Context, payload map[string]any) (*model.Announcement, *validator.ValidationErrors, error) {
	if verrs := announcementRules().Apply(payload); verrs != nil {
		return nil, verrs, nil
	}

	announcement := model.NewAnnouncementCreate(payload).Model()
	if err := s.store.Announcements().Create(ctx, announcement); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}
	return announcement, nil, nil
}

// Update validates the supplied fields and merges the sparse patch. The
// cross-field ordering check runs against the merged view so a patch cannot
// move the expiry before the stored publish time.
func (s *AnnouncementService) Update(ctx context.Context, id uint, payload map[string]any) (*model.Announcement, *validator.ValidationErrors, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	merged := mergedTimestamps(payload, existing)
	if verrs := announcementRules().ApplyPresent(merged); verrs != nil {
		return nil, verrs, nil
	}

	patch := model.NewAnnouncementPatch(payload)
	if err := s.store.Announcements().Update(ctx, id, patch.Changes()); err != nil {
		return nil, nil, apperrors.ErrDatabase.WithCause(err)
	}

	updated, err := s.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return updated, nil, nil
}

// mergedTimestamps overlays the patch onto the stored timestamps so the
// After rule sees both sides even when only one was supplied.
func mergedTimestamps(payload map[string]any, existing *model.Announcement) map[string]any {
	merged := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		merged[k] = v
	}
	_, hasExpiry := payload["expires_at"]
	_, hasPublish := payload["published_at"]
	if hasExpiry && !hasPublish && existing.PublishedAt != nil {
		merged["published_at"] = existing.PublishedAt.Format("2006-01-02 15:04:05")
	}
	if hasPublish && !hasExpiry && existing.ExpiresAt != nil {
		merged["expires_at"] = existing.ExpiresAt.Format("2006-01-02 15:04:05")
	}
	return merged
}

// Delete removes an announcement.
func (s *AnnouncementService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.store.Announcements().Delete(ctx, id); err != nil {
		return apperrors.ErrDatabase.WithCause(err)
	}
	return nil
}

// Get retrieves an announcement by id.
func (s *AnnouncementService) Get(ctx context.Context, id uint) (*model.Announcement, error) {
	announcement, err := s.store.Announcements().Get(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return announcement, nil
}

// List lists announcements with pagination.
func (s *AnnouncementService) List(ctx context.Context, offset, limit int) (*model.AnnouncementList, error) {
	count, items, err := s.store.Announcements().List(ctx, offset, limit)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return &model.AnnouncementList{TotalCount: count, Items: items}, nil
}

// ListCurrent lists live announcements for the public site.
func (s *AnnouncementService) ListCurrent(ctx context.Context) ([]*model.Announcement, error) {
	items, err := s.store.Announcements().ListCurrent(ctx)
	if err != nil {
		return nil, apperrors.ErrDatabase.WithCause(err)
	}
	return items, nil
}
