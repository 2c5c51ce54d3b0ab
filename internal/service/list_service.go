package service

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/edu-priem/admissions-api/internal/ingest"
	"github.com/edu-priem/admissions-api/internal/models"
	appErrors "github.com/edu-priem/admissions-api/pkg/errors"
)

type listRepository interface {
	ExistingIDs(ctx context.Context, programID int64, listDate string) ([]int64, error)
	DeleteEntries(ctx context.Context, programID int64, listDate string, ids []int64) (int, error)
	UpsertEntry(ctx context.Context, programID int64, listDate string, in models.ListEntryInput) error
	UpsertDisplayName(ctx context.Context, applicantID int64, fullName string) error
	List(ctx context.Context, programCode, listDate string) ([]models.ListEntry, error)
	Clear(ctx context.Context) error
}

type programCatalog interface {
	List(ctx context.Context) ([]models.Program, error)
	FindByCode(ctx context.Context, code string) (*models.Program, error)
}

type cacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// ListService reconciles competitive-list slices against uploaded snapshots.
// Every upload is authoritative for its (program, date): entries absent from
// the snapshot are deleted, the rest are upserted.
type ListService struct {
	repo     listRepository
	programs programCatalog
	cache    cacheInvalidator
	logger   *zap.Logger
}

// NewListService constructs a ListService.
func NewListService(repo listRepository, programs programCatalog, cache cacheInvalidator, logger *zap.Logger) *ListService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListService{repo: repo, programs: programs, cache: cache, logger: logger}
}

// Reconcile replaces one (program, date) slice with the given snapshot and
// reports deleted/added/updated counts. Rows that fail to persist are
// collected without aborting the rest.
func (s *ListService) Reconcile(ctx context.Context, programCode, listDate string, entries []models.ListEntryInput) (*models.LoadResult, error) {
	program, err := s.programs.FindByCode(ctx, programCode)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve program")
	}
	if program == nil {
		return nil, appErrors.Clone(appErrors.ErrUnknownProgram, fmt.Sprintf("unknown program %q", programCode))
	}
	if !validListDate(listDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown list date %q", listDate))
	}

	existing, err := s.repo.ExistingIDs(ctx, program.ID, listDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load current entries")
	}
	existingSet := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	result := &models.LoadResult{ProgramCode: program.Code, ListDate: listDate}

	incoming := make(map[int64]struct{}, len(entries))
	canonical := make([]models.ListEntryInput, 0, len(entries))
	for _, entry := range entries {
		entry = entry.Canonical()
		if entry.ApplicantID <= 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("entry without applicant id on %s", listDate))
			continue
		}
		incoming[entry.ApplicantID] = struct{}{}
		canonical = append(canonical, entry)
	}

	stale := make([]int64, 0)
	for _, id := range existing {
		if _, keep := incoming[id]; !keep {
			stale = append(stale, id)
		}
	}
	deleted, err := s.repo.DeleteEntries(ctx, program.ID, listDate, stale)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete stale entries")
	}
	result.Deleted = deleted

	for _, entry := range canonical {
		if err := s.repo.UpsertEntry(ctx, program.ID, listDate, entry); err != nil {
			s.logger.Warn("entry upsert failed",
				zap.String("program", program.Code),
				zap.Int64("applicant_id", entry.ApplicantID),
				zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("applicant %d: %v", entry.ApplicantID, err))
			continue
		}
		if entry.FullName != "" {
			if err := s.repo.UpsertDisplayName(ctx, entry.ApplicantID, entry.FullName); err != nil {
				s.logger.Warn("display name upsert failed", zap.Int64("applicant_id", entry.ApplicantID), zap.Error(err))
			}
		}
		// A repeated id within one snapshot is an add followed by updates.
		if _, known := existingSet[entry.ApplicantID]; known {
			result.Updated++
		} else {
			existingSet[entry.ApplicantID] = struct{}{}
			result.Added++
		}
	}

	s.invalidate(ctx)
	return result, nil
}

// ImportWorkbook parses an uploaded XLSX workbook and reconciles every
// recognised sheet. A sheet that failed structurally surfaces its errors in
// place of counts; the rest still load.
func (s *ListService) ImportWorkbook(ctx context.Context, r io.Reader) ([]models.LoadResult, error) {
	programs, err := s.programs.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program catalog")
	}

	sheets, err := ingest.ParseListWorkbook(r, programs)
	if err != nil {
		return nil, err
	}
	if len(sheets) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNoData, "workbook contains no recognisable list sheets")
	}

	results := make([]models.LoadResult, 0, len(sheets))
	for _, sheet := range sheets {
		if sheet.Failed() {
			results = append(results, models.LoadResult{
				ProgramCode: sheet.ProgramCode,
				ListDate:    sheet.ListDate,
				Errors:      sheet.Errors,
			})
			continue
		}
		if len(sheet.Entries) == 0 {
			// A sheet that yielded no rows is not an authoritative snapshot
			// and never reconciles its slice.
			continue
		}
		result, err := s.Reconcile(ctx, sheet.ProgramCode, sheet.ListDate, sheet.Entries)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return results, nil
}

// List returns entries filtered by optional program code and date.
func (s *ListService) List(ctx context.Context, programCode, listDate string) ([]models.ListEntry, error) {
	if programCode != "" {
		program, err := s.programs.FindByCode(ctx, programCode)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve program")
		}
		if program == nil {
			return nil, appErrors.Clone(appErrors.ErrUnknownProgram, fmt.Sprintf("unknown program %q", programCode))
		}
	}
	if listDate != "" && !validListDate(listDate) {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown list date %q", listDate))
	}
	entries, err := s.repo.List(ctx, programCode, listDate)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list entries")
	}
	if entries == nil {
		entries = []models.ListEntry{}
	}
	return entries, nil
}

// Programs returns the catalog.
func (s *ListService) Programs(ctx context.Context) ([]models.Program, error) {
	programs, err := s.programs.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load program catalog")
	}
	return programs, nil
}

// Clear removes every competitive-list entry.
func (s *ListService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear lists")
	}
	s.invalidate(ctx)
	return nil
}

func (s *ListService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, passingScoreCachePattern); err != nil {
		s.logger.Warn("failed to invalidate passing-score cache", zap.Error(err))
	}
}

func validListDate(date string) bool {
	for _, d := range models.ListDates() {
		if d == date {
			return true
		}
	}
	return false
}
