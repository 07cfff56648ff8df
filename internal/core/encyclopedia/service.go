// Copyright (c) 2026 Dugout. All rights reserved.

// Package encyclopedia is the read-only view over concepts and drills.
package encyclopedia

import (
	"context"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/dugoutlab/dugout/internal/core/concept"
	"github.com/dugoutlab/dugout/internal/core/drill"
	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/validate"
	"github.com/dugoutlab/dugout/pkg/slice"
)

const resource = "Entry"

// ConceptSource reads concepts with resolved media.
type ConceptSource interface {
	SearchConcepts(context context.Context, filter concept.Filter) ([]*concept.Concept, error)
	GetConcept(context context.Context, id string) (*concept.Detail, error)
}

// DrillSource reads drills with resolved media.
type DrillSource interface {
	ListDrills(context context.Context, filter drill.Filter) ([]*drill.Drill, error)
	GetDrill(context context.Context, id string) (*drill.Drill, error)
}

// Service merges concepts and drills into one collection.
type Service struct {
	concepts ConceptSource
	drills   DrillSource
}

// NewService constructs a new [Service].
func NewService(concepts ConceptSource, drills DrillSource) *Service {
	return &Service{concepts: concepts, drills: drills}
}

/*
Search returns concepts followed by drills whose title or body contains query
case-insensitively, narrowed by an exact category. Empty arguments match
everything, archived concepts included.
*/
func (service *Service) Search(context context.Context, query, category string) ([]*Entry, error) {
	query, category = strings.TrimSpace(query), strings.TrimSpace(category)

	var (
		concepts []*concept.Concept
		drills   []*drill.Drill
	)
	group, groupContext := errgroup.WithContext(context)
	group.Go(func() error {
		var err error
		concepts, err = service.concepts.SearchConcepts(groupContext, concept.Filter{
			Query:           query,
			Category:        category,
			IncludeArchived: true,
		})
		return err
	})
	group.Go(func() error {
		var err error
		drills, err = service.drills.ListDrills(groupContext, drill.Filter{Query: query, Category: category})
		return err
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	return append(slice.Map(concepts, FromConcept), slice.Map(drills, FromDrill)...), nil
}

/*
Get returns one entry by id.

With an explicit entryType only that table is read. Without one the concept
table is checked first and the drill table second.

Returns:
  - *Entry: The matching concept or drill
  - error: VALIDATION_ERROR for an unknown type, NOT_FOUND when no table has the id
*/
func (service *Service) Get(context context.Context, id, entryType string) (*Entry, error) {
	entryType = strings.TrimSpace(entryType)

	validator := &validate.Validator{}
	validator.OptionalOneOf("type", entryType, TypeConcept, TypeDrill)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if entryType != TypeDrill {
		detail, err := service.concepts.GetConcept(context, id)
		if err == nil {
			return FromConcept(detail.Concept), nil
		}
		if !apperr.IsNotFound(err) {
			return nil, err
		}
		if entryType == TypeConcept {
			return nil, apperr.NotFound(resource)
		}
	}

	d, err := service.drills.GetDrill(context, id)
	if apperr.IsNotFound(err) {
		return nil, apperr.NotFound(resource)
	}
	if err != nil {
		return nil, err
	}
	return FromDrill(d), nil
}
