// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package drill manages the drill library.

Drills carry an ordered media list and a free-form change history, both
stored as serialized lists. Uploaded videos are written to the media store
before the row is inserted and removed again when the insert fails.
*/
package drill

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"

	"github.com/dugoutlab/dugout/internal/core/tag"
	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/ctxutil"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
	"github.com/dugoutlab/dugout/internal/platform/storage"
	"github.com/dugoutlab/dugout/internal/platform/validate"
	"github.com/dugoutlab/dugout/pkg/query"
	"github.com/dugoutlab/dugout/pkg/slice"
	"github.com/dugoutlab/dugout/pkg/uuid"
)

// Tagger replaces a drill's tag set inside the caller's transaction.
type Tagger interface {
	SetDrillTags(context context.Context, q postgres.DBTX, drillID string, names []string) ([]string, error)
	InvalidateTags(context context.Context)
}

// MediaStore persists uploads and resolves stored references to URLs.
type MediaStore interface {
	SaveReadable(context context.Context, originalName string, r io.Reader) (storage.File, error)
	Remove(ref string) error
	URL(ref string) string
	URLs(refs []string) []string
	Relative(ref string) string
}

// Service orchestrates the drill library.
type Service struct {
	repo   Repository
	tags   Tagger
	media  MediaStore
	tx     postgres.Transactor
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(repo Repository, tags Tagger, media MediaStore, tx postgres.Transactor, logger *slog.Logger) *Service {
	return &Service{repo: repo, tags: tags, media: media, tx: tx, logger: logger}
}

// # Lookups

// ListDrills returns the drills matching filter, ordered by title.
func (service *Service) ListDrills(context context.Context, filter Filter) ([]*Drill, error) {
	var drills []*Drill
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		var err error
		drills, err = service.repo.List(context, q, filter)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, drill := range drills {
		service.present(drill)
	}
	return drills, nil
}

// GetDrill returns one drill with resolved media URLs.
func (service *Service) GetDrill(context context.Context, id string) (*Drill, error) {
	var drill *Drill
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		var err error
		drill, err = service.repo.FindByID(context, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return service.present(drill), nil
}

// present rewrites stored references into download URLs and derives AllMedia.
func (service *Service) present(drill *Drill) *Drill {
	drill.AllMedia = service.media.URLs(drill.CombinedMedia())
	drill.MediaFiles = service.media.URLs(drill.MediaFiles)
	if drill.VideoURL != nil {
		resolved := service.media.URL(*drill.VideoURL)
		drill.VideoURL = &resolved
	}
	if drill.Tags == nil {
		drill.Tags = []string{}
	}
	if drill.History == nil {
		drill.History = []json.RawMessage{}
	}
	return drill
}

// # Management

/*
CreateDrill stores a drill submitted as a multipart form.

The uploaded file, when present, becomes video_url; otherwise the link
does. Both end up in media_files, file first.

Returns:
  - *Drill: The stored drill
  - error: VALIDATION_ERROR for a missing title or a malformed link,
    PAYLOAD_TOO_LARGE for an oversized upload
*/
func (service *Service) CreateDrill(context context.Context, input CreateInput) (*Drill, error) {
	drill := &Drill{
		ID:          uuid.New(),
		Title:       strings.TrimSpace(input.Title),
		Description: optional(input.Description),
		Category:    optional(input.Category),
		MediaFiles:  []string{},
		History:     []json.RawMessage{},
	}
	link := strings.TrimSpace(input.VideoLink)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, drill.Title).MaxLen(FieldTitle, drill.Title, 200)
	validator.URL(FieldVideoLink, link)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// 1. Store the upload before touching the database
	var stored *storage.File
	if input.Video != nil {
		file, err := service.media.SaveReadable(context, input.Video.Name, input.Video.Reader)
		if err != nil {
			return nil, err
		}
		stored = &file
		drill.VideoURL = &file.Path
		drill.MediaFiles = append(drill.MediaFiles, file.Path)
	}
	if link != "" {
		if drill.VideoURL == nil {
			drill.VideoURL = &link
		}
		drill.MediaFiles = append(drill.MediaFiles, link)
	}

	// 2. Row and tags commit together
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		if err := service.repo.Create(context, q, drill); err != nil {
			return err
		}
		names, err := service.tags.SetDrillTags(context, q, drill.ID, tag.ParseNames(input.TagNames))
		if err != nil {
			return err
		}
		drill.Tags = names
		return nil
	})
	if err != nil {
		if stored != nil {
			service.removeMedia(context, []string{stored.Path})
		}
		return nil, err
	}
	service.tags.InvalidateTags(context)

	ctxutil.GetLogger(context).InfoContext(context, "drill_created",
		slog.String("drill_id", drill.ID),
		slog.Bool("uploaded_video", stored != nil),
		slog.Int("tags", len(drill.Tags)),
	)
	return service.present(drill), nil
}

// ReplaceTags swaps the whole tag set of a drill.
func (service *Service) ReplaceTags(context context.Context, id string, names []string) (*Drill, error) {
	var drill *Drill
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		if err := service.repo.Touch(context, q, id); err != nil {
			return err
		}
		if _, err := service.tags.SetDrillTags(context, q, id, names); err != nil {
			return err
		}
		var err error
		drill, err = service.repo.FindByID(context, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	service.tags.InvalidateTags(context)

	ctxutil.GetLogger(context).InfoContext(context, "drill_tags_replaced",
		slog.String("drill_id", id),
		slog.Int("tags", len(drill.Tags)),
	)
	return service.present(drill), nil
}

// UpdateDrill applies a partial update. Present lists replace stored ones.
func (service *Service) UpdateDrill(context context.Context, id string, input UpdateInput) (*Drill, error) {
	var drill *Drill
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		var err error
		drill, err = service.repo.FindByID(context, q, id)
		if err != nil {
			return err
		}

		service.apply(drill, input)

		validator := &validate.Validator{}
		validator.Required(FieldTitle, drill.Title).MaxLen(FieldTitle, drill.Title, 200)
		if err := validator.Err(); err != nil {
			return err
		}

		if err := service.repo.Update(context, q, drill); err != nil {
			return err
		}

		if input.Tags != nil {
			drill.Tags, err = service.tags.SetDrillTags(context, q, id, *input.Tags)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if input.Tags != nil {
		service.tags.InvalidateTags(context)
	}

	ctxutil.GetLogger(context).InfoContext(context, "drill_updated", slog.String("drill_id", id))
	return service.present(drill), nil
}

func (service *Service) apply(drill *Drill, input UpdateInput) {
	if input.Title != nil {
		drill.Title = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		drill.Description = optional(*input.Description)
	}
	if input.Category != nil {
		drill.Category = optional(*input.Category)
	}
	if input.VideoURL != nil {
		if ref := service.media.Relative(*input.VideoURL); ref != "" {
			drill.VideoURL = &ref
		} else {
			drill.VideoURL = nil
		}
	}
	if input.MediaFiles != nil {
		drill.MediaFiles = service.relativeAll(*input.MediaFiles)
	}
	if input.History != nil {
		drill.History = append([]json.RawMessage{}, *input.History...)
	}
}

// DeleteDrill removes the drill, its tag links and its assignments.
//
// Uploaded files stay on disk: media references are free-form and the same
// file may be listed by other drills, concepts or sessions.
func (service *Service) DeleteDrill(context context.Context, id string) error {
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

	ctxutil.GetLogger(context).InfoContext(context, "drill_deleted", slog.String("drill_id", id))
	return nil
}

func (service *Service) removeMedia(context context.Context, refs []string) {
	for _, ref := range refs {
		if err := service.media.Remove(ref); err != nil {
			ctxutil.GetLogger(context).WarnContext(context, "drill_media_remove_failed",
				slog.String("ref", ref),
				slog.Any("error", err),
			)
		}
	}
}

// relativeAll maps URLs back to stored references and drops blanks.
func (service *Service) relativeAll(refs []string) []string {
	return slice.Filter(slice.Map(refs, service.media.Relative), func(ref string) bool { return ref != "" })
}

func optional(value string) *string {
	return query.Trimmed(value)
}
