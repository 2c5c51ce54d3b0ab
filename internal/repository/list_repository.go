package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edu-priem/admissions-api/internal/models"
)

// ListRepository manages competitive-list entries and their denormalized
// display names.
type ListRepository struct {
	db *sqlx.DB
}

// NewListRepository constructs a ListRepository.
func NewListRepository(db *sqlx.DB) *ListRepository {
	return &ListRepository{db: db}
}

// ExistingIDs returns the applicant ids currently stored for one
// (program, date) slice.
func (r *ListRepository) ExistingIDs(ctx context.Context, programID int64, listDate string) ([]int64, error) {
	var ids []int64
	const query = "SELECT applicant_id FROM competitive_list_entries WHERE program_id = $1 AND list_date = $2"
	if err := r.db.SelectContext(ctx, &ids, query, programID, listDate); err != nil {
		return nil, fmt.Errorf("list existing entry ids: %w", err)
	}
	return ids, nil
}

// DeleteEntries removes the given applicant ids from one (program, date)
// slice and reports how many rows went away.
func (r *ListRepository) DeleteEntries(ctx context.Context, programID int64, listDate string, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]interface{}, 0, len(ids)+2)
	args = append(args, programID, listDate)
	for i, id := range ids {
		placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
		args = append(args, id)
	}
	query := fmt.Sprintf(
		"DELETE FROM competitive_list_entries WHERE program_id = $1 AND list_date = $2 AND applicant_id IN (%s)",
		strings.Join(placeholders, ","),
	)
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete entries: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return len(ids), nil
	}
	return int(affected), nil
}

// UpsertEntry writes one entry for a (program, date) slice, inserting or
// replacing on the composite identity.
func (r *ListRepository) UpsertEntry(ctx context.Context, programID int64, listDate string, in models.ListEntryInput) error {
	const query = `INSERT INTO competitive_list_entries
		(applicant_id, program_id, list_date, consent, priority,
		 physics_ict_score, russian_score, math_score, achievements_score, total_score, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (program_id, list_date, applicant_id) DO UPDATE SET
			consent = excluded.consent,
			priority = excluded.priority,
			physics_ict_score = excluded.physics_ict_score,
			russian_score = excluded.russian_score,
			math_score = excluded.math_score,
			achievements_score = excluded.achievements_score,
			total_score = excluded.total_score,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		in.ApplicantID, programID, listDate, in.Consent, in.Priority,
		in.PhysicsICTScore, in.RussianScore, in.MathScore, in.AchievementsScore, in.TotalScore,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upsert entry %d: %w", in.ApplicantID, err)
	}
	return nil
}

// UpsertDisplayName stores the denormalized applicant name used by list
// reporting.
func (r *ListRepository) UpsertDisplayName(ctx context.Context, applicantID int64, fullName string) error {
	const query = `INSERT INTO list_applicants (applicant_id, full_name)
		VALUES ($1, $2)
		ON CONFLICT (applicant_id) DO UPDATE SET full_name = excluded.full_name`
	if _, err := r.db.ExecContext(ctx, query, applicantID, fullName); err != nil {
		return fmt.Errorf("upsert display name %d: %w", applicantID, err)
	}
	return nil
}

// List returns entries joined with program and display-name data, filtered
// by optional program code and date. No sort order is applied beyond a
// stable listing; consumers order as needed.
func (r *ListRepository) List(ctx context.Context, programCode, listDate string) ([]models.ListEntry, error) {
	query := `SELECT e.applicant_id, a.full_name AS full_name, p.code AS program_code, p.name AS program_name,
		e.list_date, e.consent, e.priority,
		e.physics_ict_score, e.russian_score, e.math_score, e.achievements_score, e.total_score
		FROM competitive_list_entries e
		JOIN programs p ON e.program_id = p.id
		LEFT JOIN list_applicants a ON e.applicant_id = a.applicant_id
		WHERE 1=1`
	args := []interface{}{}
	if programCode != "" {
		args = append(args, programCode)
		query += fmt.Sprintf(" AND p.code = $%d", len(args))
	}
	if listDate != "" {
		args = append(args, listDate)
		query += fmt.Sprintf(" AND e.list_date = $%d", len(args))
	}
	query += " ORDER BY e.list_date ASC, p.code ASC, e.applicant_id ASC"

	var entries []models.ListEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	return entries, nil
}

// Clear removes every competitive-list entry.
func (r *ListRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM competitive_list_entries"); err != nil {
		return fmt.Errorf("clear lists: %w", err)
	}
	return nil
}
