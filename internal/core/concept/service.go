// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package concept manages the coaching encyclopedia.

A concept accrues an append-only version trail: one version when it is
created and one more every time an update changes its body. Versions are
kept after the concept itself is deleted.
*/
package concept

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/cache"
	"github.com/dugoutlab/dugout/internal/platform/constants"
	"github.com/dugoutlab/dugout/internal/platform/ctxutil"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
	"github.com/dugoutlab/dugout/internal/platform/storage"
	"github.com/dugoutlab/dugout/internal/platform/validate"
	"github.com/dugoutlab/dugout/pkg/pagination"
	"github.com/dugoutlab/dugout/pkg/pointer"
	"github.com/dugoutlab/dugout/pkg/query"
	"github.com/dugoutlab/dugout/pkg/slice"
	"github.com/dugoutlab/dugout/pkg/uuid"
)

const initialChangeSummary = "Initial version"

// Tagger replaces a concept's tag set and lists the shared vocabulary.
type Tagger interface {
	SetConceptTags(context context.Context, q postgres.DBTX, conceptID string, names []string) ([]string, error)
	ListNames(context context.Context) ([]string, error)
	InvalidateTags(context context.Context)
}

// MediaStore persists uploads and resolves stored references to URLs.
type MediaStore interface {
	Save(context context.Context, originalName string, r io.Reader) (storage.File, error)
	URLs(refs []string) []string
	Relative(ref string) string
}

// Service orchestrates concepts, their versions, links and relations.
type Service struct {
	repo     Repository
	tags     Tagger
	media    MediaStore
	tx       postgres.Transactor
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, tags Tagger, media MediaStore, tx postgres.Transactor, readCache cache.Cache, cacheTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		tags:     tags,
		media:    media,
		tx:       tx,
		cache:    readCache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// # Lookups

// ListConcepts returns a page of concepts ordered by title.
func (service *Service) ListConcepts(context context.Context, includeArchived bool, page pagination.Params) ([]*Concept, int, error) {
	var (
		concepts []*Concept
		total    int
	)
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		var err error
		concepts, total, err = service.repo.List(context, q, includeArchived, page.Limit, page.Offset())
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	for _, concept := range concepts {
		service.present(concept)
	}
	return concepts, total, nil
}

// SearchConcepts matches title, summary and body case-insensitively.
// An empty query matches every concept.
func (service *Service) SearchConcepts(context context.Context, filter Filter) ([]*Concept, error) {
	var concepts []*Concept
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		var err error
		concepts, err = service.repo.Search(context, q, filter)
		return err
	})
	if err != nil {
		return nil, err
	}
	for _, concept := range concepts {
		service.present(concept)
	}
	return concepts, nil
}

// GetConcept returns a concept with its relations in both directions and its links.
func (service *Service) GetConcept(context context.Context, id string) (*Detail, error) {
	var detail *Detail
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		concept, err := service.repo.FindByID(context, q, id)
		if err != nil {
			return err
		}
		detail, err = service.assemble(context, q, concept)
		return err
	})
	return detail, err
}

func (service *Service) assemble(context context.Context, q postgres.DBTX, concept *Concept) (*Detail, error) {
	relations, err := service.repo.ListRelations(context, q, concept.ID)
	if err != nil {
		return nil, err
	}
	links, err := service.repo.ListLinks(context, q, concept.ID)
	if err != nil {
		return nil, err
	}
	return &Detail{Concept: service.present(concept), Relations: relations, Links: links}, nil
}

// Categories returns the distinct non-empty categories, served from the read cache when warm.
func (service *Service) Categories(context context.Context) ([]string, error) {
	return cache.Remember(context, service.cache, constants.CacheKeyConceptCategories, service.cacheTTL, service.loadCategories)
}

func (service *Service) loadCategories(context context.Context) ([]string, error) {
	var categories []string
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		var err error
		categories, err = service.repo.Categories(context, q)
		return err
	})
	return categories, err
}

// TagNames returns the whole tag vocabulary.
func (service *Service) TagNames(context context.Context) ([]string, error) {
	return service.tags.ListNames(context)
}

func (service *Service) present(concept *Concept) *Concept {
	concept.MediaFiles = service.media.URLs(concept.MediaFiles)
	if concept.Tags == nil {
		concept.Tags = []string{}
	}
	if concept.History == nil {
		concept.History = []json.RawMessage{}
	}
	return concept
}

// # Management

/*
CreateConcept stores a concept with its tags and the initial version.

created_by defaults to the authenticated caller.

Returns:
  - *Detail: The stored concept with empty relation and link lists
  - error: VALIDATION_ERROR for a missing title or an oversized field
*/
func (service *Service) CreateConcept(context context.Context, input CreateInput) (*Detail, error) {
	concept := &Concept{
		ID:         uuid.New(),
		Title:      strings.TrimSpace(input.Title),
		Summary:    strings.TrimSpace(input.Summary),
		Body:       input.Body,
		Category:   strings.TrimSpace(input.Category),
		Level:      optional(input.Level),
		CreatedBy:  optional(input.CreatedBy),
		Archived:   input.Archived,
		MediaFiles: service.relativeAll(input.MediaFiles),
		History:    append([]json.RawMessage{}, input.History...),
	}
	if concept.CreatedBy == nil {
		concept.CreatedBy = optional(pointer.To(ctxutil.Actor(context)))
	}

	if err := validateConcept(concept); err != nil {
		return nil, err
	}

	summary := pointer.To(pointer.Fallback(optional(input.ChangeSummary), initialChangeSummary))

	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		if err := service.repo.Create(context, q, concept); err != nil {
			return err
		}
		names, err := service.tags.SetConceptTags(context, q, concept.ID, input.Tags)
		if err != nil {
			return err
		}
		concept.Tags = names

		return service.repo.AddVersion(context, q, &Version{
			ID:            uuid.New(),
			ConceptID:     concept.ID,
			Body:          concept.Body,
			UpdatedBy:     concept.CreatedBy,
			ChangeSummary: summary,
		})
	})
	if err != nil {
		return nil, err
	}

	cache.Invalidate(context, service.cache, constants.CacheKeyConceptCategories)
	service.tags.InvalidateTags(context)
	ctxutil.GetLogger(context).InfoContext(context, "concept_created",
		slog.String("concept_id", concept.ID),
		slog.String("category", concept.Category),
		slog.Int("tags", len(concept.Tags)),
	)

	return &Detail{Concept: service.present(concept), Relations: []*Relation{}, Links: []*Link{}}, nil
}

/*
UpdateConcept applies a partial update.

Tags are replaced wholesale when present. A changed body appends a version
attributed to updated_by, or to the authenticated caller.
*/
func (service *Service) UpdateConcept(context context.Context, id string, input UpdateInput) (*Detail, error) {
	var (
		detail      *Detail
		bodyChanged bool
	)
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		concept, err := service.repo.FindByID(context, q, id)
		if err != nil {
			return err
		}

		previousBody := concept.Body
		service.apply(concept, input)
		bodyChanged = concept.Body != previousBody

		if err := validateConcept(concept); err != nil {
			return err
		}
		if err := service.repo.Update(context, q, concept); err != nil {
			return err
		}

		if input.Tags != nil {
			concept.Tags, err = service.tags.SetConceptTags(context, q, id, *input.Tags)
			if err != nil {
				return err
			}
		}

		if bodyChanged {
			updatedBy := optional(input.UpdatedBy)
			if updatedBy == nil {
				updatedBy = optional(pointer.To(ctxutil.Actor(context)))
			}
			err := service.repo.AddVersion(context, q, &Version{
				ID:            uuid.New(),
				ConceptID:     id,
				Body:          concept.Body,
				UpdatedBy:     updatedBy,
				ChangeSummary: optional(input.ChangeSummary),
			})
			if err != nil {
				return err
			}
		}

		detail, err = service.assemble(context, q, concept)
		return err
	})
	if err != nil {
		return nil, err
	}

	cache.Invalidate(context, service.cache, constants.CacheKeyConceptCategories)
	if input.Tags != nil {
		service.tags.InvalidateTags(context)
	}
	ctxutil.GetLogger(context).InfoContext(context, "concept_updated",
		slog.String("concept_id", id),
		slog.Bool("new_version", bodyChanged),
	)
	return detail, nil
}

func (service *Service) apply(concept *Concept, input UpdateInput) {
	if input.Title != nil {
		concept.Title = strings.TrimSpace(*input.Title)
	}
	if input.Summary != nil {
		concept.Summary = strings.TrimSpace(*input.Summary)
	}
	if input.Body != nil {
		concept.Body = *input.Body
	}
	if input.Category != nil {
		concept.Category = strings.TrimSpace(*input.Category)
	}
	if input.Level != nil {
		concept.Level = optional(input.Level)
	}
	if input.Archived != nil {
		concept.Archived = *input.Archived
	}
	if input.MediaFiles != nil {
		concept.MediaFiles = service.relativeAll(*input.MediaFiles)
	}
	if input.History != nil {
		concept.History = append([]json.RawMessage{}, *input.History...)
	}
}

// DeleteConcept removes the concept with its tags, links and relations.
// Its versions remain.
func (service *Service) DeleteConcept(context context.Context, id string) error {
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		deleted, err := service.repo.Delete(context, q, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound(resource)
		}
		return nil
	})
	if err != nil {
		return err
	}

	cache.Invalidate(context, service.cache, constants.CacheKeyConceptCategories)
	ctxutil.GetLogger(context).InfoContext(context, "concept_deleted", slog.String("concept_id", id))
	return nil
}

// Upload stores a media file for later use in a concept's media list.
func (service *Service) Upload(context context.Context, originalName string, r io.Reader) (storage.File, error) {
	return service.media.Save(context, originalName, r)
}

// # Versions

// ListVersions returns the version trail newest first. The trail of a deleted
// concept stays readable.
func (service *Service) ListVersions(context context.Context, id string) ([]*Version, error) {
	var versions []*Version
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		var err error
		versions, err = service.repo.ListVersions(context, q, id)
		if err != nil || len(versions) > 0 {
			return err
		}
		_, err = service.repo.FindByID(context, q, id)
		return err
	})
	return versions, err
}

// # Links

// ListLinks returns the objects a concept is attached to.
func (service *Service) ListLinks(context context.Context, id string) ([]*Link, error) {
	var links []*Link
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		if _, err := service.repo.FindByID(context, q, id); err != nil {
			return err
		}
		var err error
		links, err = service.repo.ListLinks(context, q, id)
		return err
	})
	return links, err
}

// AddLink attaches the concept to an object. Adding an existing link is a no-op.
func (service *Service) AddLink(context context.Context, id string, input LinkInput) (*Link, error) {
	link := &Link{
		ConceptID:  id,
		ObjectType: strings.TrimSpace(input.ObjectType),
		ObjectID:   strings.TrimSpace(input.ObjectID),
	}

	validator := &validate.Validator{}
	validator.Required(FieldObjectType, link.ObjectType).OptionalOneOf(FieldObjectType, link.ObjectType, ObjectTypes...)
	validator.Required(FieldObjectID, link.ObjectID).MaxLen(FieldObjectID, link.ObjectID, 200)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var created bool
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		if _, err := service.repo.FindByID(context, q, id); err != nil {
			return err
		}
		var err error
		created, err = service.repo.AddLink(context, q, link)
		return err
	})
	if err != nil {
		return nil, err
	}

	if created {
		ctxutil.GetLogger(context).InfoContext(context, "concept_linked",
			slog.String("concept_id", id),
			slog.String("object_type", link.ObjectType),
			slog.String("object_id", link.ObjectID),
		)
	}
	return link, nil
}

// DeleteLink detaches the concept from an object.
func (service *Service) DeleteLink(context context.Context, id, objectType, objectID string) error {
	return service.tx.InTx(context, func(q postgres.DBTX) error {
		deleted, err := service.repo.DeleteLink(context, q, id, objectType, objectID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound(resourceLink)
		}
		return nil
	})
}

// # Relations

// ListRelations returns outgoing and incoming relations of a concept.
func (service *Service) ListRelations(context context.Context, id string) ([]*Relation, error) {
	var relations []*Relation
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		if _, err := service.repo.FindByID(context, q, id); err != nil {
			return err
		}
		var err error
		relations, err = service.repo.ListRelations(context, q, id)
		return err
	})
	return relations, err
}

/*
AddRelation records a directed relation from the concept to another one.

Relating the same pair again overwrites the relation type.

Returns:
  - []*Relation: The concept's relations after the change
  - error: VALIDATION_ERROR for a self relation or an unknown type,
    NOT_FOUND when either concept is missing
*/
func (service *Service) AddRelation(context context.Context, id string, input RelationInput) ([]*Relation, error) {
	toID := strings.ToLower(strings.TrimSpace(input.ToConceptID))
	relationType := strings.TrimSpace(input.RelationType)
	if relationType == "" {
		relationType = RelationRelated
	}

	validator := &validate.Validator{}
	validator.Required(FieldToConceptID, toID).UUID(FieldToConceptID, toID)
	validator.OneOf(FieldRelationType, relationType, RelationTypes...)
	validator.Custom(FieldToConceptID, toID == id, "A concept cannot relate to itself")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var relations []*Relation
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		for _, conceptID := range []string{id, toID} {
			if _, err := service.repo.FindByID(context, q, conceptID); err != nil {
				return err
			}
		}
		if err := service.repo.SaveRelation(context, q, id, toID, relationType); err != nil {
			return err
		}
		var err error
		relations, err = service.repo.ListRelations(context, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "concept_related",
		slog.String("from_concept_id", id),
		slog.String("to_concept_id", toID),
		slog.String("relation_type", relationType),
	)
	return relations, nil
}

// DeleteRelation removes the relation from the concept to toID.
func (service *Service) DeleteRelation(context context.Context, id, toID string) error {
	return service.tx.InTx(context, func(q postgres.DBTX) error {
		deleted, err := service.repo.DeleteRelation(context, q, id, toID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound(resourceRelation)
		}
		return nil
	})
}

// # Helpers

func validateConcept(concept *Concept) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, concept.Title).MaxLen(FieldTitle, concept.Title, 200)
	validator.MaxLen(FieldCategory, concept.Category, 100)
	if concept.Level != nil {
		validator.MaxLen(FieldLevel, *concept.Level, 50)
	}
	return validator.Err()
}

// relativeAll maps URLs back to stored references and drops blanks.
func (service *Service) relativeAll(refs []string) []string {
	return slice.Filter(slice.Map(refs, service.media.Relative), func(ref string) bool { return ref != "" })
}

func optional(value *string) *string {
	return query.Trimmed(pointer.Val(value))
}
