package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-priem/admissions-api/internal/models"
	appErrors "github.com/edu-priem/admissions-api/pkg/errors"
)

type listReaderStub struct {
	entries []models.ListEntry
	calls   int
}

func (s *listReaderStub) List(ctx context.Context, programCode, listDate string) ([]models.ListEntry, error) {
	s.calls++
	filtered := make([]models.ListEntry, 0, len(s.entries))
	for _, e := range s.entries {
		if programCode != "" && e.ProgramCode != programCode {
			continue
		}
		if listDate != "" && e.ListDate != listDate {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered, nil
}

type admissionCacheStub struct {
	sets int
	hit  bool
}

func (s *admissionCacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	if s.hit {
		return nil
	}
	return appErrors.ErrCacheMiss
}

func (s *admissionCacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	s.sets++
	return nil
}

func listEntry(program string, id int64, consent bool, priority, total int) models.ListEntry {
	return models.ListEntry{
		ApplicantID: id,
		ProgramCode: program,
		ListDate:    "2026-08-01",
		Consent:     consent,
		Priority:    priority,
		TotalScore:  total,
	}
}

func passingByCode(t *testing.T, scores []models.PassingScore, code string) models.PassingScore {
	t.Helper()
	for _, s := range scores {
		if s.ProgramCode == code {
			return s
		}
	}
	t.Fatalf("program %s missing from result", code)
	return models.PassingScore{}
}

func TestAdmissionServicePassingScoreCutoff(t *testing.T) {
	// Three budget places for a pool of four consenting applicants puts the
	// cutoff at the third-ranked total.
	lists := &listReaderStub{}
	for i, total := range []int{290, 275, 260, 240} {
		lists.entries = append(lists.entries, listEntry("ПМ", int64(i+1), true, 1, total))
	}
	lists.entries = append(lists.entries, listEntry("ПМ", 99, false, 1, 300))

	service := NewAdmissionService(lists, smallCatalogStub{code: "ПМ", places: 3}, nil, time.Minute, nil, nil)
	scores, err := service.PassingScores(context.Background(), "2026-08-01")
	require.NoError(t, err)

	score := passingByCode(t, scores, "ПМ")
	require.NotNil(t, score.Score)
	assert.Equal(t, 260, *score.Score)
	assert.False(t, score.Undersubscribed)
	assert.Equal(t, 3, score.EnrolledCount)
	assert.Equal(t, "260", score.Display())
}

func TestAdmissionServicePassingScoreUndersubscribed(t *testing.T) {
	lists := &listReaderStub{entries: []models.ListEntry{
		listEntry("ПМ", 1, true, 1, 290),
		listEntry("ПМ", 2, true, 1, 250),
	}}

	service := NewAdmissionService(lists, smallCatalogStub{code: "ПМ", places: 40}, nil, time.Minute, nil, nil)
	scores, err := service.PassingScores(context.Background(), "2026-08-01")
	require.NoError(t, err)

	score := passingByCode(t, scores, "ПМ")
	assert.Nil(t, score.Score)
	assert.True(t, score.Undersubscribed)
	assert.Equal(t, 2, score.EnrolledCount)
	assert.Equal(t, models.UndersubscribedLabel, score.Display())
}

func TestAdmissionServiceRankedOrder(t *testing.T) {
	lists := &listReaderStub{entries: []models.ListEntry{
		listEntry("ПМ", 4, true, 2, 300),
		listEntry("ПМ", 3, true, 1, 250),
		listEntry("ПМ", 2, true, 1, 250),
		listEntry("ПМ", 1, true, 1, 280),
		listEntry("ПМ", 9, false, 1, 400),
	}}
	service := NewAdmissionService(lists, smallCatalogStub{code: "ПМ", places: 3}, nil, time.Minute, nil, nil)

	ranked, err := service.Ranked(context.Background(), "ПМ", "2026-08-01")
	require.NoError(t, err)
	require.Len(t, ranked, 4)

	// Priority 1 before priority 2; within a priority higher total first;
	// equal totals break ties on applicant id.
	ids := make([]int64, len(ranked))
	for i, e := range ranked {
		ids[i] = e.ApplicantID
	}
	assert.Equal(t, []int64{1, 2, 3, 4}, ids)
}

func TestAdmissionServicePassingScoresDefaultDate(t *testing.T) {
	lists := &listReaderStub{}
	service := NewAdmissionService(lists, smallCatalogStub{code: "ПМ", places: 1}, nil, time.Minute, nil, nil)

	scores, err := service.PassingScores(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, scores, 1)
	assert.True(t, scores[0].Undersubscribed)

	_, err = service.PassingScores(context.Background(), "2026-12-31")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAdmissionServicePassingScoresWritesCache(t *testing.T) {
	lists := &listReaderStub{}
	cache := &admissionCacheStub{}
	service := NewAdmissionService(lists, smallCatalogStub{code: "ПМ", places: 1}, cache, time.Minute, nil, nil)

	_, err := service.PassingScores(context.Background(), "2026-08-01")
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets)
}

type cacheObserverStub struct {
	hits   int
	misses int
}

func (s *cacheObserverStub) RecordCacheOperation(hit bool) {
	if hit {
		s.hits++
	} else {
		s.misses++
	}
}

func TestAdmissionServiceRecordsCacheOperations(t *testing.T) {
	lists := &listReaderStub{}
	cache := &admissionCacheStub{}
	observer := &cacheObserverStub{}
	service := NewAdmissionService(lists, smallCatalogStub{code: "ПМ", places: 1}, cache, time.Minute, observer, nil)

	_, err := service.PassingScores(context.Background(), "2026-08-01")
	require.NoError(t, err)
	assert.Equal(t, 1, observer.misses)

	cache.hit = true
	_, err = service.PassingScores(context.Background(), "2026-08-01")
	require.NoError(t, err)
	assert.Equal(t, 1, observer.hits)
	// The hit short-circuits the list read.
	assert.Equal(t, 1, lists.calls)
}

type smallCatalogStub struct {
	code   string
	places int
}

func (s smallCatalogStub) List(ctx context.Context) ([]models.Program, error) {
	return []models.Program{{ID: 1, Code: s.code, Name: s.code, BudgetPlaces: s.places}}, nil
}

func (s smallCatalogStub) FindByCode(ctx context.Context, code string) (*models.Program, error) {
	if code != s.code {
		return nil, nil
	}
	p := models.Program{ID: 1, Code: s.code, Name: s.code, BudgetPlaces: s.places}
	return &p, nil
}
