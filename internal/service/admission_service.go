package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/edu-priem/admissions-api/internal/models"
	appErrors "github.com/edu-priem/admissions-api/pkg/errors"
)

const (
	passingScoreCacheKey     = "admission:passing:%s"
	passingScoreCachePattern = "admission:passing:*"
)

type admissionCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type cacheObserver interface {
	RecordCacheOperation(hit bool)
}

type listReader interface {
	List(ctx context.Context, programCode, listDate string) ([]models.ListEntry, error)
}

// AdmissionService derives passing scores from the competitive lists. The
// cutoff for a program is the total score of the applicant occupying the
// last budget place among consenting applicants; fewer consenting applicants
// than places means the program is undersubscribed.
type AdmissionService struct {
	lists    listReader
	programs programCatalog
	cache    admissionCache
	cacheTTL time.Duration
	metrics  cacheObserver
	logger   *zap.Logger
}

// NewAdmissionService constructs an AdmissionService. metrics may be nil.
func NewAdmissionService(lists listReader, programs programCatalog, cache admissionCache, cacheTTL time.Duration, metrics cacheObserver, logger *zap.Logger) *AdmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdmissionService{lists: lists, programs: programs, cache: cache, cacheTTL: cacheTTL, metrics: metrics, logger: logger}
}

// PassingScores computes the cutoff for every program on one admission date.
// An empty date defaults to the last date of the cycle.
func (s *AdmissionService) PassingScores(ctx context.Context, listDate string) ([]models.PassingScore, error) {
	if listDate == "" {
		dates := models.ListDates()
		listDate = dates[len(dates)-1]
	}
	if !validListDate(listDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown list date %q", listDate))
	}

	cacheKey := fmt.Sprintf(passingScoreCacheKey, listDate)
	if s.cache != nil {
		var cached []models.PassingScore
		switch err := s.cache.Get(ctx, cacheKey, &cached); {
		case err == nil:
			s.recordCache(true)
			return cached, nil
		case err == appErrors.ErrCacheMiss:
			s.recordCache(false)
		default:
			s.logger.Warn("passing-score cache read failed", zap.Error(err))
		}
	}

	programs, err := s.programs.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program catalog")
	}
	entries, err := s.lists.List(ctx, "", listDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load list entries")
	}

	byProgram := make(map[string][]models.ListEntry, len(programs))
	for _, entry := range entries {
		byProgram[entry.ProgramCode] = append(byProgram[entry.ProgramCode], entry)
	}

	scores := make([]models.PassingScore, 0, len(programs))
	for _, program := range programs {
		scores = append(scores, passingScore(program, byProgram[program.Code]))
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, scores, s.cacheTTL); err != nil {
			s.logger.Warn("passing-score cache write failed", zap.Error(err))
		}
	}
	return scores, nil
}

// Ranked returns one program's list on one date in competitive order:
// consenting applicants only, priority ascending, then total descending,
// then applicant id as the stable tie-break.
func (s *AdmissionService) Ranked(ctx context.Context, programCode, listDate string) ([]models.ListEntry, error) {
	entries, err := s.lists.List(ctx, programCode, listDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load list entries")
	}
	return rankEntries(entries), nil
}

func (s *AdmissionService) recordCache(hit bool) {
	if s.metrics != nil {
		s.metrics.RecordCacheOperation(hit)
	}
}

func passingScore(program models.Program, entries []models.ListEntry) models.PassingScore {
	ranked := rankEntries(entries)

	score := models.PassingScore{
		ProgramCode:  program.Code,
		ProgramName:  program.Name,
		BudgetPlaces: program.BudgetPlaces,
	}
	if len(ranked) < program.BudgetPlaces {
		score.Undersubscribed = true
		score.EnrolledCount = len(ranked)
		return score
	}
	cutoff := ranked[program.BudgetPlaces-1].TotalScore
	score.Score = &cutoff
	score.EnrolledCount = program.BudgetPlaces
	return score
}

func rankEntries(entries []models.ListEntry) []models.ListEntry {
	ranked := make([]models.ListEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.Consent {
			ranked = append(ranked, entry)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Priority != ranked[j].Priority {
			return ranked[i].Priority < ranked[j].Priority
		}
		if ranked[i].TotalScore != ranked[j].TotalScore {
			return ranked[i].TotalScore > ranked[j].TotalScore
		}
		return ranked[i].ApplicantID < ranked[j].ApplicantID
	})
	return ranked
}
