package service

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edu-priem/admissions-api/internal/models"
	appErrors "github.com/edu-priem/admissions-api/pkg/errors"
)

type applicantRepository interface {
	List(ctx context.Context) ([]models.Applicant, error)
	FindByKey(ctx context.Context, key models.IdentityKey) (*models.Applicant, error)
	Keys(ctx context.Context) ([]models.IdentityKey, error)
	Insert(ctx context.Context, in models.ApplicantInput) (*models.Applicant, error)
	Update(ctx context.Context, id int64, upd models.ApplicantUpdate) error
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
	Stats(ctx context.Context) (*models.ApplicantStats, error)
}

// BulkAddOptions tunes a bulk merge.
type BulkAddOptions struct {
	// AutoPriority reassigns priorities 1..N by descending total before
	// insertion, ignoring whatever the rows carried.
	AutoPriority bool
	// Replace clears the pool before merging.
	Replace bool
}

// ApplicantService orchestrates the applicant aggregate: single and bulk
// intake with identity deduplication, mutation of the two mutable fields,
// and pool statistics.
type ApplicantService struct {
	repo      applicantRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewApplicantService constructs an ApplicantService.
func NewApplicantService(repo applicantRepository, validate *validator.Validate, logger *zap.Logger) *ApplicantService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicantService{repo: repo, validator: validate, logger: logger}
}

// List returns the pool ordered by total score descending.
func (s *ApplicantService) List(ctx context.Context) ([]models.Applicant, error) {
	applicants, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list applicants")
	}
	if applicants == nil {
		applicants = []models.Applicant{}
	}
	return applicants, nil
}

// Add inserts one applicant. An input whose identity triple already exists
// returns the stored record untouched; the bool reports whether a row was
// created.
func (s *ApplicantService) Add(ctx context.Context, in models.ApplicantInput) (*models.Applicant, bool, error) {
	in = in.Canonical()
	if err := s.validator.Struct(in); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid applicant payload")
	}

	existing, err := s.repo.FindByKey(ctx, in.Key())
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check applicant identity")
	}
	if existing != nil {
		return existing, false, nil
	}

	record, err := s.repo.Insert(ctx, in)
	if err != nil {
		// A concurrent writer may have landed the same identity between the
		// lookup and the insert; the unique index turns that into an error,
		// and the stored row wins.
		if existing, lookupErr := s.repo.FindByKey(ctx, in.Key()); lookupErr == nil && existing != nil {
			return existing, false, nil
		}
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to insert applicant")
	}
	return record, true, nil
}

// BulkAdd merges many rows into the pool. Rows with an empty name are
// dropped, duplicate identities keep their first occurrence, and per-row
// insert failures are collected without aborting the merge.
func (s *ApplicantService) BulkAdd(ctx context.Context, rows []models.ApplicantInput, opts BulkAddOptions) (*models.BulkResult, error) {
	valid := make([]models.ApplicantInput, 0, len(rows))
	for _, row := range rows {
		row = row.Canonical()
		if row.FullName == "" {
			continue
		}
		valid = append(valid, row)
	}
	if len(valid) == 0 {
		// An empty or fully-invalid batch is not a failure: report zero
		// added with an explanatory message.
		return &models.BulkResult{Errors: []string{"no valid applicant rows to add (full name is required)"}}, nil
	}

	if opts.Replace {
		if err := s.repo.Clear(ctx); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear applicants")
		}
	}

	seen := make(map[models.IdentityKey]struct{})
	if !opts.Replace {
		keys, err := s.repo.Keys(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load applicant identities")
		}
		for _, key := range keys {
			seen[key] = struct{}{}
		}
	}

	deduped := make([]models.ApplicantInput, 0, len(valid))
	for _, row := range valid {
		key := row.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, row)
	}

	if opts.AutoPriority {
		sort.SliceStable(deduped, func(i, j int) bool {
			return deduped[i].Total() > deduped[j].Total()
		})
		for i := range deduped {
			deduped[i].Priority = models.Clamp(i+1, models.ApplicantPriorityMin, models.ApplicantPriorityMax)
		}
	}

	result := &models.BulkResult{}
	for _, row := range deduped {
		if _, err := s.repo.Insert(ctx, row); err != nil {
			s.logger.Warn("bulk insert row failed", zap.String("full_name", row.FullName), zap.Error(err))
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", row.FullName, err))
			continue
		}
		result.Added++
	}
	return result, nil
}

// Update mutates consent and/or priority of one applicant.
func (s *ApplicantService) Update(ctx context.Context, id int64, upd models.ApplicantUpdate) error {
	if id <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "invalid applicant id")
	}
	if err := s.validator.Struct(upd); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload")
	}
	if upd.Priority != nil {
		clamped := models.Clamp(*upd.Priority, models.ApplicantPriorityMin, models.ApplicantPriorityMax)
		upd.Priority = &clamped
	}
	if err := s.repo.Update(ctx, id, upd); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update applicant")
	}
	return nil
}

// Delete removes one applicant.
func (s *ApplicantService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return appErrors.Clone(appErrors.ErrValidation, "invalid applicant id")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete applicant")
	}
	return nil
}

// Clear removes the entire pool.
func (s *ApplicantService) Clear(ctx context.Context) error {
	if err := s.repo.Clear(ctx); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear applicants")
	}
	return nil
}

// Stats aggregates the pool.
func (s *ApplicantService) Stats(ctx context.Context) (*models.ApplicantStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to aggregate applicants")
	}
	return stats, nil
}
