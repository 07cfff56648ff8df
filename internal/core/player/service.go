// Copyright (c) 2026 Dugout. All rights reserved.

/*
Package player manages athlete profiles and their development timeline.

The detail view of a player is assembled from three sources inside one
transaction: the profile row, the history entries and the drill
assignments owned by the assignment package.
*/
package player

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dugoutlab/dugout/internal/core/assignment"
	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/ctxutil"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
	"github.com/dugoutlab/dugout/internal/platform/validate"
	"github.com/dugoutlab/dugout/pkg/calendar"
	"github.com/dugoutlab/dugout/pkg/pagination"
	"github.com/dugoutlab/dugout/pkg/pointer"
	"github.com/dugoutlab/dugout/pkg/query"
	"github.com/dugoutlab/dugout/pkg/uuid"
)

// DrillLister reads a player's assigned drills inside a transaction.
type DrillLister interface {
	DrillsForPlayer(context context.Context, q postgres.DBTX, playerID string) ([]*assignment.AssignedDrill, error)
}

// Service orchestrates the player profile lifecycle.
type Service struct {
	repo   Repository
	drills DrillLister
	tx     postgres.Transactor
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new [Service].
func NewService(repo Repository, drills DrillLister, tx postgres.Transactor, logger *slog.Logger) *Service {
	return &Service{repo: repo, drills: drills, tx: tx, logger: logger, now: time.Now}
}

// # Lookups

// ListPlayers returns a page of profiles and the total count.
func (service *Service) ListPlayers(context context.Context, page pagination.Params) ([]*Player, int, error) {
	var (
		players []*Player
		total   int
	)
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		var err error
		players, total, err = service.repo.List(context, q, page.Limit, page.Offset())
		return err
	})
	return players, total, err
}

// GetPlayer returns the assembled detail view.
func (service *Service) GetPlayer(context context.Context, id string) (*Detail, error) {
	var detail *Detail
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		player, err := service.repo.FindByID(context, q, id)
		if err != nil {
			return err
		}
		detail, err = service.assemble(context, q, player)
		return err
	})
	return detail, err
}

func (service *Service) assemble(context context.Context, q postgres.DBTX, player *Player) (*Detail, error) {
	history, err := service.repo.ListHistory(context, q, player.ID)
	if err != nil {
		return nil, err
	}
	drills, err := service.drills.DrillsForPlayer(context, q, player.ID)
	if err != nil {
		return nil, err
	}
	return Assemble(player, history, drills), nil
}

// # Management

/*
CreatePlayer stores a profile together with its initial history entries.

Either the profile and every entry are stored, or nothing is.

Returns:
  - *Detail: The stored player with history and an empty drill list
  - error: VALIDATION_ERROR for bad fields in the profile or any entry
*/
func (service *Service) CreatePlayer(context context.Context, input CreateInput) (*Detail, error) {
	now := service.now().UTC()

	player := &Player{
		ID:        uuid.New(),
		FirstName: strings.TrimSpace(input.FirstName),
		LastName:  strings.TrimSpace(input.LastName),
		DOB:       optional(input.DOB),
		Position:  optional(input.Position),
		Team:      optional(input.Team),
		HeightFt:  input.HeightFt,
		HeightIn:  input.HeightIn,
		WeightLbs: input.WeightLbs,
		Bats:      upper(input.Bats),
		Throws:    upper(input.Throws),
		Notes:     optional(input.Notes),
	}
	if player.Notes != nil {
		player.NotesUpdatedAt = &now
	}

	validator := &validate.Validator{}
	validatePlayer(validator, player)

	entries := make([]*HistoryEntry, 0, len(input.History))
	for _, h := range input.History {
		entry := service.newEntry(player.ID, h, now)
		validateEntry(validator, entry)
		entries = append(entries, entry)
	}
	if err := validator.Err(); err != nil {
		return nil, err
	}

	var detail *Detail
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		if err := service.repo.Create(context, q, player); err != nil {
			return err
		}
		for _, entry := range entries {
			if err := service.repo.AddHistory(context, q, entry); err != nil {
				return err
			}
		}
		var err error
		detail, err = service.assemble(context, q, player)
		return err
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "player_created",
		slog.String("player_id", player.ID),
		slog.Int("history_entries", len(entries)),
	)
	return detail, nil
}

/*
UpdatePlayer applies a partial update.

When the notes change, notes_updated_at moves to now unless the caller
supplied a timestamp.
*/
func (service *Service) UpdatePlayer(context context.Context, id string, input UpdateInput) (*Detail, error) {
	var detail *Detail
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		player, err := service.repo.FindByID(context, q, id)
		if err != nil {
			return err
		}

		previousNotes := pointer.Val(player.Notes)
		service.apply(player, input)

		validator := &validate.Validator{}
		validatePlayer(validator, player)
		if err := validator.Err(); err != nil {
			return err
		}

		if err := service.repo.Update(context, q, player); err != nil {
			return err
		}

		if pointer.Val(player.Notes) != previousNotes {
			ctxutil.GetLogger(context).InfoContext(context, "player_notes_updated", slog.String("player_id", id))
		}

		detail, err = service.assemble(context, q, player)
		return err
	})
	return detail, err
}

func (service *Service) apply(player *Player, input UpdateInput) {
	if input.FirstName != nil {
		player.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		player.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.DOB != nil {
		player.DOB = optional(input.DOB)
	}
	if input.Position != nil {
		player.Position = optional(input.Position)
	}
	if input.Team != nil {
		player.Team = optional(input.Team)
	}
	pointer.Replace(&player.HeightFt, input.HeightFt)
	pointer.Replace(&player.HeightIn, input.HeightIn)
	pointer.Replace(&player.WeightLbs, input.WeightLbs)
	if input.Bats != nil {
		player.Bats = upper(input.Bats)
	}
	if input.Throws != nil {
		player.Throws = upper(input.Throws)
	}

	if input.Notes != nil {
		notes := optional(input.Notes)
		if pointer.Val(notes) != pointer.Val(player.Notes) && input.NotesUpdatedAt == nil {
			now := service.now().UTC()
			player.NotesUpdatedAt = &now
		}
		player.Notes = notes
	}
	pointer.Replace(&player.NotesUpdatedAt, input.NotesUpdatedAt)
}

// DeletePlayer removes the player with its history, assignments and sessions.
func (service *Service) DeletePlayer(context context.Context, id string) error {
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		deleted, err := service.repo.Delete(context, q, id)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound(resourcePlayer)
		}
		return nil
	})
	if err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "player_deleted", slog.String("player_id", id))
	return nil
}

// # History

// ListHistory returns a player's entries, oldest first.
func (service *Service) ListHistory(context context.Context, playerID string) ([]*HistoryEntry, error) {
	var entries []*HistoryEntry
	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		if _, err := service.repo.FindByID(context, q, playerID); err != nil {
			return err
		}
		var err error
		entries, err = service.repo.ListHistory(context, q, playerID)
		return err
	})
	return entries, err
}

// AddHistory appends an entry. The date defaults to today.
func (service *Service) AddHistory(context context.Context, playerID string, input HistoryInput) (*HistoryEntry, error) {
	entry := service.newEntry(playerID, input, service.now().UTC())

	validator := &validate.Validator{}
	validateEntry(validator, entry)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	err := service.tx.InTx(context, func(q postgres.DBTX) error {
		if _, err := service.repo.FindByID(context, q, playerID); err != nil {
			return err
		}
		return service.repo.AddHistory(context, q, entry)
	})
	if err != nil {
		return nil, err
	}

	ctxutil.GetLogger(context).InfoContext(context, "player_history_added",
		slog.String("player_id", playerID),
		slog.String("change_type", entry.ChangeType),
	)
	return entry, nil
}

// DeleteHistory removes one entry of the player.
func (service *Service) DeleteHistory(context context.Context, playerID, historyID string) error {
	return service.tx.InTx(context, func(q postgres.DBTX) error {
		deleted, err := service.repo.DeleteHistory(context, q, playerID, historyID)
		if err != nil {
			return err
		}
		if !deleted {
			return apperr.NotFound(resourceHistory)
		}
		return nil
	})
}

func (service *Service) newEntry(playerID string, input HistoryInput, now time.Time) *HistoryEntry {
	date := strings.TrimSpace(input.Date)
	if date == "" {
		date = calendar.Today(now)
	}
	return &HistoryEntry{
		ID:         uuid.New(),
		PlayerID:   playerID,
		Date:       date,
		ChangeType: strings.TrimSpace(input.ChangeType),
		Notes:      optional(input.Notes),
	}
}

// # Validation

func validatePlayer(validator *validate.Validator, player *Player) {
	validator.Required(FieldFirstName, player.FirstName).MaxLen(FieldFirstName, player.FirstName, 100)
	validator.Required(FieldLastName, player.LastName).MaxLen(FieldLastName, player.LastName, 100)
	validator.Date(FieldDOB, pointer.Val(player.DOB))
	validator.OptionalRange(FieldHeightFt, player.HeightFt, 0, 8)
	validator.OptionalRange(FieldHeightIn, player.HeightIn, 0, 11)
	validator.OptionalRange(FieldWeightLbs, player.WeightLbs, 0, 600)
	validator.OptionalOneOf(FieldBats, pointer.Val(player.Bats), SideRight, SideLeft, SideSwitch)
	validator.OptionalOneOf(FieldThrows, pointer.Val(player.Throws), SideRight, SideLeft)
}

func validateEntry(validator *validate.Validator, entry *HistoryEntry) {
	validator.Required(FieldChangeType, entry.ChangeType).MaxLen(FieldChangeType, entry.ChangeType, 200)
	validator.Date(FieldDate, entry.Date)
}

// optional trims a nullable string and maps blank to nil.
func optional(value *string) *string {
	return query.Trimmed(pointer.Val(value))
}

func upper(value *string) *string {
	trimmed := optional(value)
	if trimmed == nil {
		return nil
	}
	normalized := strings.ToUpper(*trimmed)
	return &normalized
}
