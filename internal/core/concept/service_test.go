// Copyright (c) 2026 Dugout. All rights reserved.

package concept_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugoutlab/dugout/internal/core/concept"
	"github.com/dugoutlab/dugout/internal/core/tag"
	"github.com/dugoutlab/dugout/internal/platform/apperr"
	"github.com/dugoutlab/dugout/internal/platform/ctxutil"
	"github.com/dugoutlab/dugout/internal/platform/postgres"
	"github.com/dugoutlab/dugout/internal/platform/sec"
	"github.com/dugoutlab/dugout/internal/platform/storage"
	"github.com/dugoutlab/dugout/pkg/pagination"
	"github.com/dugoutlab/dugout/pkg/pointer"
	"github.com/dugoutlab/dugout/pkg/uuid"
)

const baseURL = "http://api.test"

var fixedNow = time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)

type relationKey struct{ from, to string }

// memoryRepository is an in-memory [concept.Repository].
type memoryRepository struct {
	concepts   map[string]*concept.Concept
	versions   []*concept.Version
	links      []*concept.Link
	relations  map[relationKey]string
	tags       *stubTagger
	categories int
}

func newMemoryRepository(tags *stubTagger) *memoryRepository {
	return &memoryRepository{
		concepts:  make(map[string]*concept.Concept),
		relations: make(map[relationKey]string),
		tags:      tags,
	}
}

func (m *memoryRepository) load(c *concept.Concept) *concept.Concept {
	copied := *c
	copied.MediaFiles = append([]string{}, c.MediaFiles...)
	copied.Tags = append([]string{}, m.tags.sets[c.ID]...)
	return &copied
}

func (m *memoryRepository) sorted(keep func(*concept.Concept) bool) []*concept.Concept {
	out := make([]*concept.Concept, 0, len(m.concepts))
	for _, c := range m.concepts {
		if keep(c) {
			out = append(out, m.load(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (m *memoryRepository) List(_ context.Context, _ postgres.DBTX, includeArchived bool, limit, offset int) ([]*concept.Concept, int, error) {
	all := m.sorted(func(c *concept.Concept) bool { return includeArchived || !c.Archived })
	if offset > len(all) {
		offset = len(all)
	}
	return all[offset:min(offset+limit, len(all))], len(all), nil
}

func (m *memoryRepository) Search(_ context.Context, _ postgres.DBTX, filter concept.Filter) ([]*concept.Concept, error) {
	term := strings.ToLower(filter.Query)
	return m.sorted(func(c *concept.Concept) bool {
		if c.Archived && !filter.IncludeArchived {
			return false
		}
		if filter.Category != "" && c.Category != filter.Category {
			return false
		}
		text := strings.ToLower(c.Title + "\n" + c.Summary + "\n" + c.Body)
		return term == "" || strings.Contains(text, term)
	}), nil
}

func (m *memoryRepository) FindByID(_ context.Context, _ postgres.DBTX, id string) (*concept.Concept, error) {
	c, ok := m.concepts[id]
	if !ok {
		return nil, apperr.NotFound("Concept")
	}
	return m.load(c), nil
}

func (m *memoryRepository) Create(_ context.Context, _ postgres.DBTX, c *concept.Concept) error {
	c.CreatedAt, c.UpdatedAt = fixedNow, fixedNow
	copied := *c
	m.concepts[c.ID] = &copied
	return nil
}

func (m *memoryRepository) Update(_ context.Context, _ postgres.DBTX, c *concept.Concept) error {
	copied := *c
	m.concepts[c.ID] = &copied
	return nil
}

func (m *memoryRepository) Delete(_ context.Context, _ postgres.DBTX, id string) (bool, error) {
	if _, ok := m.concepts[id]; !ok {
		return false, nil
	}
	delete(m.concepts, id)
	delete(m.tags.sets, id)
	for key := range m.relations {
		if key.from == id || key.to == id {
			delete(m.relations, key)
		}
	}
	kept := m.links[:0]
	for _, l := range m.links {
		if l.ConceptID != id {
			kept = append(kept, l)
		}
	}
	m.links = kept
	return true, nil
}

func (m *memoryRepository) Categories(_ context.Context, _ postgres.DBTX) ([]string, error) {
	m.categories++
	seen := map[string]bool{}
	out := make([]string, 0)
	for _, c := range m.concepts {
		if c.Category != "" && !seen[c.Category] {
			seen[c.Category] = true
			out = append(out, c.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memoryRepository) AddVersion(_ context.Context, _ postgres.DBTX, v *concept.Version) error {
	v.UpdatedAt = fixedNow.Add(time.Duration(len(m.versions)) * time.Minute)
	m.versions = append(m.versions, v)
	return nil
}

func (m *memoryRepository) ListVersions(_ context.Context, _ postgres.DBTX, conceptID string) ([]*concept.Version, error) {
	out := make([]*concept.Version, 0)
	for i := len(m.versions) - 1; i >= 0; i-- {
		if m.versions[i].ConceptID == conceptID {
			out = append(out, m.versions[i])
		}
	}
	return out, nil
}

func (m *memoryRepository) ListLinks(_ context.Context, _ postgres.DBTX, conceptID string) ([]*concept.Link, error) {
	out := make([]*concept.Link, 0)
	for _, l := range m.links {
		if l.ConceptID == conceptID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (m *memoryRepository) AddLink(_ context.Context, _ postgres.DBTX, link *concept.Link) (bool, error) {
	for _, l := range m.links {
		if l.ConceptID == link.ConceptID && l.ObjectType == link.ObjectType && l.ObjectID == link.ObjectID {
			return false, nil
		}
	}
	link.CreatedAt = fixedNow
	copied := *link
	m.links = append(m.links, &copied)
	return true, nil
}

func (m *memoryRepository) DeleteLink(_ context.Context, _ postgres.DBTX, conceptID, objectType, objectID string) (bool, error) {
	for i, l := range m.links {
		if l.ConceptID == conceptID && l.ObjectType == objectType && l.ObjectID == objectID {
			m.links = append(m.links[:i], m.links[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryRepository) ListRelations(_ context.Context, _ postgres.DBTX, conceptID string) ([]*concept.Relation, error) {
	out := make([]*concept.Relation, 0)
	for key, kind := range m.relations {
		switch conceptID {
		case key.from:
			out = append(out, &concept.Relation{FromConceptID: key.from, ToConceptID: key.to, RelationType: kind,
				Direction: concept.DirectionOutgoing, OtherID: key.to, OtherTitle: m.concepts[key.to].Title})
		case key.to:
			out = append(out, &concept.Relation{FromConceptID: key.from, ToConceptID: key.to, RelationType: kind,
				Direction: concept.DirectionIncoming, OtherID: key.from, OtherTitle: m.concepts[key.from].Title})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Direction != out[j].Direction {
			return out[i].Direction > out[j].Direction
		}
		return out[i].OtherTitle < out[j].OtherTitle
	})
	return out, nil
}

func (m *memoryRepository) SaveRelation(_ context.Context, _ postgres.DBTX, fromID, toID, relationType string) error {
	m.relations[relationKey{fromID, toID}] = relationType
	return nil
}

func (m *memoryRepository) DeleteRelation(_ context.Context, _ postgres.DBTX, fromID, toID string) (bool, error) {
	key := relationKey{fromID, toID}
	if _, ok := m.relations[key]; !ok {
		return false, nil
	}
	delete(m.relations, key)
	return true, nil
}

// stubTagger records tag sets per concept the way tag.Service cleans them.
type stubTagger struct {
	sets          map[string][]string
	invalidations int
}

func (s *stubTagger) InvalidateTags(context.Context) { s.invalidations++ }

func (s *stubTagger) SetConceptTags(_ context.Context, _ postgres.DBTX, conceptID string, names []string) ([]string, error) {
	cleaned := tag.CleanNames(names)
	sort.Strings(cleaned)
	s.sets[conceptID] = cleaned
	return append([]string{}, cleaned...), nil
}

func (s *stubTagger) ListNames(context.Context) ([]string, error) {
	seen := map[string]bool{}
	names := make([]string, 0)
	for _, set := range s.sets {
		for _, name := range set {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names, nil
}

// memoryCache is a JSON round-tripping cache.Cache.
type memoryCache struct {
	entries map[string][]byte
}

func (c *memoryCache) GetJSON(_ context.Context, key string, dst any) (bool, error) {
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

func newFixture(t *testing.T) (*concept.Service, *memoryRepository) {
	t.Helper()
	media, err := storage.NewLocal(t.TempDir(), "/uploads", baseURL, 1<<20)
	require.NoError(t, err)

	repo := newMemoryRepository(&stubTagger{sets: make(map[string][]string)})
	service := concept.NewService(repo, repo.tags, media, postgres.Direct{},
		&memoryCache{entries: make(map[string][]byte)}, time.Minute,
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return service, repo
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	ae := apperr.As(err)
	require.NotNil(t, ae, "expected an AppError, got %v", err)
	return ae.HTTPStatus
}

func create(t *testing.T, service *concept.Service, title, category, body string) *concept.Detail {
	t.Helper()
	detail, err := service.CreateConcept(context.Background(), concept.CreateInput{
		Title:    title,
		Category: category,
		Body:     body,
	})
	require.NoError(t, err)
	return detail
}

func TestService_CreateConcept(t *testing.T) {
	service, repo := newFixture(t)
	ctx := ctxutil.WithAuthUser(context.Background(), &sec.Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "coach-1"},
		Email:            "coach@example.com",
	})

	detail, err := service.CreateConcept(ctx, concept.CreateInput{
		Title:      " Hip Lead ",
		Summary:    "Lead with the hips",
		Body:       "Start the swing from the ground up.",
		Category:   "Hitting",
		Level:      pointer.To("Intermediate"),
		MediaFiles: []string{baseURL + "/uploads/a.png", "https://youtu.be/x"},
		Tags:       []string{"mechanics", "hitting", "mechanics"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Hip Lead", detail.Title)
	assert.Equal(t, []string{"hitting", "mechanics"}, detail.Tags)
	assert.Equal(t, []string{baseURL + "/uploads/a.png", "https://youtu.be/x"}, detail.MediaFiles)
	assert.Equal(t, []string{"/uploads/a.png", "https://youtu.be/x"}, repo.concepts[detail.ID].MediaFiles)
	require.NotNil(t, detail.CreatedBy)
	assert.Equal(t, "coach@example.com", *detail.CreatedBy)
	assert.NotNil(t, detail.Relations)
	assert.NotNil(t, detail.Links)

	versions, err := service.ListVersions(ctx, detail.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
	assert.Equal(t, "Start the swing from the ground up.", versions[0].Body)
	assert.Equal(t, "Initial version", *versions[0].ChangeSummary)
	assert.Equal(t, "coach@example.com", *versions[0].UpdatedBy)

	_, err = service.CreateConcept(ctx, concept.CreateInput{Title: " "})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

func TestService_UpdateConcept_VersionsOnBodyChange(t *testing.T) {
	service, repo := newFixture(t)
	ctx := context.Background()
	created := create(t, service, "Hip Lead", "Hitting", "v1")

	// Unchanged body does not add a version.
	_, err := service.UpdateConcept(ctx, created.ID, concept.UpdateInput{Summary: pointer.To("short"), Body: pointer.To("v1")})
	require.NoError(t, err)
	assert.Len(t, repo.versions, 1)
	assert.Equal(t, 1, repo.tags.invalidations, "untouched tags keep the cached vocabulary")

	updated, err := service.UpdateConcept(ctx, created.ID, concept.UpdateInput{
		Body:          pointer.To("v2"),
		UpdatedBy:     pointer.To("assistant"),
		ChangeSummary: pointer.To("Clarified"),
		Tags:          &[]string{"approach"},
	})
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Body)
	assert.Equal(t, "short", updated.Summary)
	assert.Equal(t, []string{"approach"}, updated.Tags)

	versions, err := service.ListVersions(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, "v2", versions[0].Body, "newest first")
	assert.Equal(t, "assistant", *versions[0].UpdatedBy)
	assert.Equal(t, "v1", versions[1].Body)

	_, err = service.UpdateConcept(ctx, created.ID, concept.UpdateInput{Title: pointer.To("")})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = service.UpdateConcept(ctx, uuid.New(), concept.UpdateInput{})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
	assert.Equal(t, 2, repo.tags.invalidations)
}

func TestService_DeleteConcept_KeepsVersions(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()
	doomed := create(t, service, "Doomed", "", "body")
	kept := create(t, service, "Kept", "", "body")

	_, err := service.AddRelation(ctx, kept.ID, concept.RelationInput{ToConceptID: doomed.ID})
	require.NoError(t, err)

	require.NoError(t, service.DeleteConcept(ctx, doomed.ID))

	versions, err := service.ListVersions(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 1)

	detail, err := service.GetConcept(ctx, kept.ID)
	require.NoError(t, err)
	assert.Empty(t, detail.Relations)

	assert.Equal(t, http.StatusNotFound, statusOf(t, service.DeleteConcept(ctx, doomed.ID)))

	_, err = service.ListVersions(ctx, uuid.New())
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))
}

func TestService_Relations(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()
	a := create(t, service, "Alpha", "", "")
	b := create(t, service, "Bravo", "", "")

	relations, err := service.AddRelation(ctx, a.ID, concept.RelationInput{ToConceptID: b.ID, RelationType: concept.RelationPrerequisite})
	require.NoError(t, err)
	require.Len(t, relations, 1)
	assert.Equal(t, concept.DirectionOutgoing, relations[0].Direction)
	assert.Equal(t, "Bravo", relations[0].OtherTitle)

	incoming, err := service.ListRelations(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	assert.Equal(t, concept.DirectionIncoming, incoming[0].Direction)
	assert.Equal(t, a.ID, incoming[0].OtherID)

	// Relating again overwrites the type.
	relations, err = service.AddRelation(ctx, a.ID, concept.RelationInput{ToConceptID: b.ID, RelationType: concept.RelationBuildsOn})
	require.NoError(t, err)
	require.Len(t, relations, 1)
	assert.Equal(t, concept.RelationBuildsOn, relations[0].RelationType)

	_, err = service.AddRelation(ctx, a.ID, concept.RelationInput{ToConceptID: a.ID})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = service.AddRelation(ctx, a.ID, concept.RelationInput{ToConceptID: b.ID, RelationType: "rival"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = service.AddRelation(ctx, a.ID, concept.RelationInput{ToConceptID: uuid.New()})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	require.NoError(t, service.DeleteRelation(ctx, a.ID, b.ID))
	assert.Equal(t, http.StatusNotFound, statusOf(t, service.DeleteRelation(ctx, a.ID, b.ID)))
}

func TestService_Links(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()
	c := create(t, service, "Alpha", "", "")

	_, err := service.AddLink(ctx, c.ID, concept.LinkInput{ObjectType: concept.ObjectDrill, ObjectID: "drill-42"})
	require.NoError(t, err)
	_, err = service.AddLink(ctx, c.ID, concept.LinkInput{ObjectType: concept.ObjectDrill, ObjectID: "drill-42"})
	require.NoError(t, err)

	links, err := service.ListLinks(ctx, c.ID)
	require.NoError(t, err)
	assert.Len(t, links, 1)

	_, err = service.AddLink(ctx, c.ID, concept.LinkInput{ObjectType: "video", ObjectID: "x"})
	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))

	_, err = service.AddLink(ctx, uuid.New(), concept.LinkInput{ObjectType: concept.ObjectAssessment, ObjectID: "x"})
	assert.Equal(t, http.StatusNotFound, statusOf(t, err))

	require.NoError(t, service.DeleteLink(ctx, c.ID, concept.ObjectDrill, "drill-42"))
	assert.Equal(t, http.StatusNotFound, statusOf(t, service.DeleteLink(ctx, c.ID, concept.ObjectDrill, "drill-42")))
}

func TestService_SearchAndList(t *testing.T) {
	service, _ := newFixture(t)
	ctx := context.Background()
	create(t, service, "Hip Lead", "Hitting", "Ground up")
	create(t, service, "Long Toss", "Throwing", "Arm strength")
	archived, err := service.CreateConcept(ctx, concept.CreateInput{Title: "Old Cue", Category: "Hitting", Archived: true})
	require.NoError(t, err)

	all, err := service.SearchConcepts(ctx, concept.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	hits, err := service.SearchConcepts(ctx, concept.Filter{Query: "GROUND"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Hip Lead", hits[0].Title)

	hitting, err := service.SearchConcepts(ctx, concept.Filter{Category: "Hitting", IncludeArchived: true})
	require.NoError(t, err)
	assert.Len(t, hitting, 2)

	page, total, err := service.ListConcepts(ctx, false, pagination.Params{Page: 1, Limit: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, page, 1)

	_, total, err = service.ListConcepts(ctx, true, pagination.Params{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.True(t, archived.Archived)
}

func TestService_Categories_CachedUntilWrite(t *testing.T) {
	service, repo := newFixture(t)
	ctx := context.Background()
	create(t, service, "Hip Lead", "Hitting", "")
	create(t, service, "Long Toss", "Throwing", "")
	create(t, service, "No Category", "", "")

	for range 2 {
		categories, err := service.Categories(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"Hitting", "Throwing"}, categories)
	}
	assert.Equal(t, 1, repo.categories)

	create(t, service, "Lead Off", "Baserunning", "")
	categories, err := service.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Baserunning", "Hitting", "Throwing"}, categories)
	assert.Equal(t, 2, repo.categories)
}
