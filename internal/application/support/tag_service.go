package support

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/marketplace/backend/internal/domain/customer"
	"github.com/marketplace/backend/internal/domain/shared"
)

// TagService manages tags and their assignment to customers. Tag
// memberships are cached; every write invalidates the customer's entry.
type TagService struct {
	tags   customer.TagRepository
	cache  TagCache
	logger *zap.Logger
}

// NewTagService creates a new tag service
func NewTagService(tags customer.TagRepository, cache TagCache, logger *zap.Logger) *TagService {
	return &TagService{
		tags:   tags,
		cache:  cache,
		logger: logger,
	}
}

// CreateTag defines a new tag for the tenant
func (s *TagService) CreateTag(ctx context.Context, tenantID uuid.UUID, name, color string) (*TagView, error) {
	tag, err := customer.NewTag(tenantID, name, color)
	if err != nil {
		return nil, err
	}
	if existing, err := s.tags.FindByName(ctx, tenantID, tag.Name); err == nil && existing != nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "A tag with this name already exists")
	}
	if err := s.tags.Save(ctx, tag); err != nil {
		return nil, err
	}
	return &TagView{ID: tag.ID, Name: tag.Name, Color: tag.Color}, nil
}

// ListTags returns every tag defined for the tenant
func (s *TagService) ListTags(ctx context.Context, tenantID uuid.UUID) ([]TagView, error) {
	tags, err := s.tags.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	views := make([]TagView, len(tags))
	for i, t := range tags {
		views[i] = TagView{ID: t.ID, Name: t.Name, Color: t.Color}
	}
	return views, nil
}

// DeleteTag removes a tag definition
func (s *TagService) DeleteTag(ctx context.Context, tenantID, tagID uuid.UUID) error {
	return s.tags.Delete(ctx, tenantID, tagID)
}

// Assign links a tag to a customer. Assigning the same pair twice is a
// conflict.
func (s *TagService) Assign(ctx context.Context, tenantID, customerID, tagID, actorID uuid.UUID) error {
	if _, err := s.tags.FindByID(ctx, tenantID, tagID); err != nil {
		return err
	}

	exists, err := s.tags.AssignmentExists(ctx, tenantID, customerID, tagID)
	if err != nil {
		return err
	}
	if exists {
		return shared.NewDomainError("CONFLICT", "Tag is already assigned to this customer")
	}

	assignment := customer.NewTagAssignment(tenantID, customerID, tagID, actorID)
	if err := s.tags.SaveAssignment(ctx, assignment); err != nil {
		return err
	}
	s.invalidate(ctx, tenantID, customerID)
	return nil
}

// Unassign removes a tag from a customer
func (s *TagService) Unassign(ctx context.Context, tenantID, customerID, tagID uuid.UUID) error {
	if err := s.tags.DeleteAssignment(ctx, tenantID, customerID, tagID); err != nil {
		return err
	}
	s.invalidate(ctx, tenantID, customerID)
	return nil
}

// CustomerTags returns the tags assigned to a customer, cache-first
func (s *TagService) CustomerTags(ctx context.Context, tenantID, customerID uuid.UUID) ([]TagView, error) {
	cached, hit, err := s.cache.Get(ctx, tenantID, customerID)
	if err != nil {
		s.logger.Warn("Tag cache read failed", zap.Error(err))
	} else if hit {
		return cached, nil
	}

	assignments, err := s.tags.FindAssignments(ctx, tenantID, customerID)
	if err != nil {
		return nil, err
	}
	views := make([]TagView, 0, len(assignments))
	for _, a := range assignments {
		tag, err := s.tags.FindByID(ctx, tenantID, a.TagID)
		if err != nil {
			continue
		}
		views = append(views, TagView{ID: tag.ID, Name: tag.Name, Color: tag.Color})
	}

	if err := s.cache.Set(ctx, tenantID, customerID, views); err != nil {
		s.logger.Warn("Tag cache write failed", zap.Error(err))
	}
	return views, nil
}

func (s *TagService) invalidate(ctx context.Context, tenantID, customerID uuid.UUID) {
	if err := s.cache.Invalidate(ctx, tenantID, customerID); err != nil {
		s.logger.Warn("Tag cache invalidation failed",
			zap.String("customer_id", customerID.String()),
			zap.Error(err))
	}
}
