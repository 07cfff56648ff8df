// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package session records training sessions with their metrics and media.

Metrics travel grouped by (source, pitch type) and are stored one row per
metric. Replacing metrics or media always rewrites the whole set.
*/
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/ctxutil"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
	"github.com/dugoutlab/dugout/internal/platform/validate"
	"github.com/dugoutlab/dugout/pkg/calendar"
	"github.com/dugoutlab/dugout/pkg/pointer"
	"github.com/dugoutlab/dugout/pkg/query"
	"github.com/dugoutlab/dugout/pkg/uuid"
)

// MediaStore converts between stored references and download URLs.
type MediaStore interface {
	URL(ref string) string
	Relative(ref string) string
}

// Service orchestrates session reads and writes.
type Service struct {
	repo   Repository
	media  MediaStore
	tx     postgres.Transactor
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new [Service].
func NewService(repo Repository, media MediaStore, tx postgres.Transactor, logger *slog.Logger) *Service {
	return &Service{repo: repo, media: media, tx: tx, logger: logger, now: time.Now}
}

// # Lookups

// ListForPlayer returns a player's sessions, newest first.
func (service *Service) ListForPlayer(context context.Context, playerID string) ([]*Session, error) {
	var sessions []*Session
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		exists, err := service.repo.PlayerExists(context, q, playerID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("Player")
		}

		sessions, err = service.repo.ListByPlayer(context, q, playerID)
		if err != nil {
			return err
		}
		return service.attach(context, q, sessions...)
	})
	return sessions, err
}

// GetSession returns one session with grouped metrics and media.
func (service *Service) GetSession(context context.Context, id string) (*Session, error) {
	var session *Session
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		var err error
		session, err = service.load(context, q, id)
		return err
	})
	return session, err
}

func (service *Service) load(context context.Context, q postgres.DBTX, id string) (*Session, error) {
	session, err := service.repo.FindByID(context, q, id)
	if err != nil {
		return nil, err
	}
	if err := service.attach(context, q, session); err != nil {
		return nil, err
	}
	return session, nil
}

// attach loads metrics and media for every session in one query each.
func (service *Service) attach(context context.Context, q postgres.DBTX, sessions ...*Session) error {
	if len(sessions) == 0 {
		return nil
	}
	ids := make([]string, 0, len(sessions))
	for _, s := range sessions {
		ids = append(ids, s.ID)
	}

	metrics, err := service.repo.Metrics(context, q, ids)
	if err != nil {
		return err
	}
	media, err := service.repo.Media(context, q, ids)
	if err != nil {
		return err
	}

	for _, s := range sessions {
		s.Metrics = Group(metrics[s.ID])
		s.Media = make([]*Media, 0, len(media[s.ID]))
		for _, item := range media[s.ID] {
			item.FileURL = service.media.URL(item.FileURL)
			s.Media = append(s.Media, item)
		}
	}
	return nil
}

// # Management

/*
CreateSession stores a session with its metrics and media.

An absent date means now.

Returns:
  - *Session: The stored session as it reads back
  - error: VALIDATION_ERROR for a bad date, type or metric, NOT_FOUND for an unknown player
*/
func (service *Service) CreateSession(context context.Context, input CreateInput) (*Session, error) {
	session := &Session{
		ID:          uuid.New(),
		PlayerID:    strings.ToLower(strings.TrimSpace(input.PlayerID)),
		SessionType: strings.TrimSpace(input.SessionType),
		Notes:       optional(input.Notes),
	}

	validator := &validate.Validator{}
	validator.Required(FieldPlayerID, session.PlayerID).UUID(FieldPlayerID, session.PlayerID)
	validator.Required(FieldSessionType, session.SessionType).MaxLen(FieldSessionType, session.SessionType, 100)
	date, err := calendar.Parse(input.Date, service.now().UTC())
	validator.Custom(FieldDate, err != nil, "Invalid date format. Use YYYY-MM-DD.")
	validateGroups(validator, input.Metrics)
	validateMedia(validator, input.Media)
	if err := validator.Err(); err != nil {
		return nil, err
	}
	session.Date = date

	err = service.tx.InTx(context, func(q postgres.DBTX) error {
		exists, err := service.repo.PlayerExists(context, q, session.PlayerID)
		if err != nil {
			return err
		}
		if !exists {
			return apperr.NotFound("Player")
		}

		if err := service.repo.Create(context, q, session); err != nil {
			return err
		}
		if err := service.repo.ReplaceMetrics(context, q, session.ID, Flatten(input.Metrics)); err != nil {
			return err
		}
		if err := service.repo.ReplaceMedia(context, q, session.ID, service.relativeMedia(input.Media)); err != nil {
			return err
		}

		session, err = service.load(context, q, session.ID)
		return err
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "session_created",
		slog.String("session_id", session.ID),
		slog.String("player_id", session.PlayerID),
		slog.Int("metric_groups", len(session.Metrics)),
	)
	return session, nil
}

/*
UpdateSession applies a partial update.

Metrics are replaced only when the metrics key is present, media only
when the media key is present. Both replacements are wholesale.
*/
func (service *Service) UpdateSession(context context.Context, id string, input UpdateInput) (*Session, error) {
	validator := &validate.Validator{}
	if input.SessionType != nil {
		sessionType := strings.TrimSpace(*input.SessionType)
		validator.Required(FieldSessionType, sessionType).MaxLen(FieldSessionType, sessionType, 100)
	}
	var date time.Time
	if input.Date != nil {
		var err error
		date, err = calendar.Parse(*input.Date, service.now().UTC())
		validator.Custom(FieldDate, err != nil, "Invalid date format. Use YYYY-MM-DD.")
	}
	if input.Metrics != nil {
		validateGroups(validator, *input.Metrics)
	}
	if input.Media != nil {
		validateMedia(validator, *input.Media)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var session *Session
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		current, err := service.repo.FindByID(context, q, id)
		if err != nil {
			return err
		}

		if input.Date != nil {
			current.Date = date
		}
		if input.SessionType != nil {
			current.SessionType = strings.TrimSpace(*input.SessionType)
		}
		if input.Notes != nil {
			current.Notes = optional(input.Notes)
		}
		if err := service.repo.Update(context, q, current); err != nil {
			return err
		}

		if input.Metrics != nil {
			if err := service.repo.ReplaceMetrics(context, q, id, Flatten(*input.Metrics)); err != nil {
				return err
			}
		}
		if input.Media != nil {
			if err := service.repo.ReplaceMedia(context, q, id, service.relativeMedia(*input.Media)); err != nil {
				return err
			}
		}

		session, err = service.load(context, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "session_updated",
		slog.String("session_id", id),
		slog.Bool("metrics_replaced", input.Metrics != nil),
		slog.Bool("media_replaced", input.Media != nil),
	)
	return session, nil
}

// DeleteSession removes the session with its metrics and media.
func (service *Service) DeleteSession(context context.Context, id string) error {
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

	ctxutil.GetLogger(context).InfoContext(context, "session_deleted", slog.String("session_id", id))
	return nil
}

/*
ImportRapsodo averages a Rapsodo export per pitch type and stores the result
as the session's rapsodo metrics. Metrics from other sources are kept.
*/
func (service *Service) ImportRapsodo(context context.Context, id string, export io.Reader) (*Session, error) {
	groups, err := ParseRapsodo(export)
	if err != nil {
		return nil, err
	}

	var session *Session
	err = service.tx.InTx(context, func(q postgres.DBTX) error {
		current, err := service.load(context, q, id)
		if err != nil {
			return err
		}

		merged := ReplaceSource(current.Metrics, SourceRapsodo, groups)
		if err := service.repo.ReplaceMetrics(context, q, id, Flatten(merged)); err != nil {
			return err
		}

		session, err = service.load(context, q, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "session_metrics_imported",
		slog.String("session_id", id),
		slog.String("source", SourceRapsodo),
		slog.Int("pitch_types", len(groups)),
	)
	return session, nil
}

// # Helpers

func validateGroups(validator *validate.Validator, groups []*MetricGroup) {
	for i, group := range groups {
		field := fmt.Sprintf("%s[%d]", FieldMetrics, i)
		if group == nil {
			validator.Custom(field, true, "Must be an object")
			continue
		}
		validator.Required(field+".source", group.Source)
		for j, metric := range group.Metrics {
			name := fmt.Sprintf("%s.metrics[%d].metric_name", field, j)
			if metric == nil {
				validator.Custom(name, true, "This field is required")
				continue
			}
			validator.Required(name, metric.MetricName)
		}
	}
}

func validateMedia(validator *validate.Validator, media []*Media) {
	for i, item := range media {
		field := fmt.Sprintf("%s[%d].file_url", FieldMedia, i)
		if item == nil {
			validator.Custom(field, true, "This field is required")
			continue
		}
		validator.Required(field, item.FileURL)
	}
}

// relativeMedia stores URLs served by the media store as relative references.
func (service *Service) relativeMedia(media []*Media) []*Media {
	out := make([]*Media, 0, len(media))
	for _, item := range media {
		out = append(out, &Media{FileURL: service.media.Relative(item.FileURL), MediaType: optional(item.MediaType)})
	}
	return out
}

func optional(value *string) *string {
	return query.Trimmed(pointer.Val(value))
}
