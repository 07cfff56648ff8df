// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package tag manages the shared tag vocabulary.

Drills and concepts never insert tags themselves. They hand the requested
names to [Service.SetDrillTags] or [Service.SetConceptTags], which resolve
the names with get-or-create semantics and replace the owner's whole set.
*/
package tag

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/dugoutlab/dugout/internal/platform/cache"
	"github.com/dugoutlab/dugout/internal/platform/constants"
	"github.com/dugoutlab/dugout/internal/platform/ctxutil"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
	"github.com/dugoutlab/dugout/internal/platform/validate"
	"github.com/dugoutlab/dugout/pkg/uuid"
)

// Service orchestrates tag reads and writes.
type Service struct {
	repo     Repository
	tx       postgres.Transactor
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, tx postgres.Transactor, readCache cache.Cache, cacheTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		tx:       tx,
		cache:    readCache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// ListTags returns every tag, served from the read cache when warm.
func (service *Service) ListTags(context context.Context) ([]*Tag, error) {
	return cache.Remember(context, service.cache, constants.CacheKeyTags, service.cacheTTL, service.loadTags)
}

// ListNames returns every tag name in alphabetical order.
func (service *Service) ListNames(context context.Context) ([]string, error) {
	tags, err := service.ListTags(context)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names, nil
}

func (service *Service) loadTags(context context.Context) ([]*Tag, error) {
	var tags []*Tag
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		var err error
		tags, err = service.repo.List(context, q)
		return err
	})
	return tags, err
}

/*
CreateTag registers a new tag name.

Returns:
  - *Tag: The stored tag
  - error: VALIDATION_ERROR for a blank name, CONFLICT when the name exists
*/
func (service *Service) CreateTag(context context.Context, name string) (*Tag, error) {
	cleaned := CleanNames([]string{name})

	validator := &validate.Validator{}
	validator.Custom(FieldName, len(cleaned) == 0, "This field is required")
	if len(cleaned) == 1 {
		validator.MaxLen(FieldName, cleaned[0], MaxNameLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tag := &Tag{ID: uuid.New(), Name: cleaned[0]}
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		return service.repo.Create(context, q, tag)
	})
	if err != nil {
		return nil, err
	}

	cache.Invalidate(context, service.cache, constants.CacheKeyTags)
	ctxutil.GetLogger(context).InfoContext(context, "tag_created",
		slog.String("tag_id", tag.ID),
		slog.String("name", tag.Name),
	)
	return tag, nil
}

// InvalidateTags drops the cached vocabulary. Callers of [Service.SetDrillTags]
// and [Service.SetConceptTags] invoke it once their transaction has committed.
func (service *Service) InvalidateTags(context context.Context) {
	cache.Invalidate(context, service.cache, constants.CacheKeyTags)
}

// SetDrillTags replaces the tags of a drill inside the caller's transaction.
func (service *Service) SetDrillTags(context context.Context, q postgres.DBTX, drillID string, names []string) ([]string, error) {
	return service.replace(context, q, OwnerDrill, drillID, names)
}

// SetConceptTags replaces the tags of a concept inside the caller's transaction.
func (service *Service) SetConceptTags(context context.Context, q postgres.DBTX, conceptID string, names []string) ([]string, error) {
	return service.replace(context, q, OwnerConcept, conceptID, names)
}

// replace resolves names and swaps the owner's tag set. The returned names
// are sorted the way stores read them back.
func (service *Service) replace(context context.Context, q postgres.DBTX, owner Owner, ownerID string, names []string) ([]string, error) {
	cleaned := CleanNames(names)

	validator := &validate.Validator{}
	for _, name := range cleaned {
		validator.MaxLen(FieldTags, name, MaxNameLength)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	tags, err := service.repo.Resolve(context, q, cleaned)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(tags))
	for _, t := range tags {
		ids = append(ids, t.ID)
	}
	if err := service.repo.Replace(context, q, owner, ownerID, ids); err != nil {
		return nil, err
	}

	sort.Strings(cleaned)
	return cleaned, nil
}
