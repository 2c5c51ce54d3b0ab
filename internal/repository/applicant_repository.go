package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/edu-priem/admissions-api/internal/models"
)

// ApplicantRepository manages persistence for applicant records.
type ApplicantRepository struct {
	db *sqlx.DB
}

// NewApplicantRepository constructs an ApplicantRepository.
func NewApplicantRepository(db *sqlx.DB) *ApplicantRepository {
	return &ApplicantRepository{db: db}
}

const applicantColumns = "id, full_name, math_score, russian_score, informatics_score, total_score, priority, consent, program, created_at"

// List returns all applicants ordered by total score descending then id
// ascending.
func (r *ApplicantRepository) List(ctx context.Context) ([]models.Applicant, error) {
	query := fmt.Sprintf("SELECT %s FROM applicants ORDER BY total_score DESC, id ASC", applicantColumns)
	var applicants []models.Applicant
	if err := r.db.SelectContext(ctx, &applicants, query); err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	return applicants, nil
}

// FindByKey fetches an applicant by its deduplication identity.
func (r *ApplicantRepository) FindByKey(ctx context.Context, key models.IdentityKey) (*models.Applicant, error) {
	query := fmt.Sprintf("SELECT %s FROM applicants WHERE full_name = $1 AND total_score = $2 AND program = $3 LIMIT 1", applicantColumns)
	var applicant models.Applicant
	if err := r.db.GetContext(ctx, &applicant, query, key.FullName, key.Total, key.Program); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find applicant by key: %w", err)
	}
	return &applicant, nil
}

// Keys returns the identity keys of every stored applicant.
func (r *ApplicantRepository) Keys(ctx context.Context) ([]models.IdentityKey, error) {
	rows := []struct {
		FullName string `db:"full_name"`
		Total    int    `db:"total_score"`
		Program  string `db:"program"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, "SELECT full_name, total_score, program FROM applicants"); err != nil {
		return nil, fmt.Errorf("list applicant keys: %w", err)
	}
	keys := make([]models.IdentityKey, len(rows))
	for i, row := range rows {
		keys[i] = models.IdentityKey{FullName: row.FullName, Total: row.Total, Program: row.Program}
	}
	return keys, nil
}

// Insert stores one canonical applicant input and returns the stored record.
func (r *ApplicantRepository) Insert(ctx context.Context, in models.ApplicantInput) (*models.Applicant, error) {
	record := models.Applicant{
		FullName:         in.FullName,
		MathScore:        in.MathScore,
		RussianScore:     in.RussianScore,
		InformaticsScore: in.InformaticsScore,
		TotalScore:       in.Total(),
		Priority:         in.Priority,
		Consent:          in.Consent,
		Program:          in.Program,
		CreatedAt:        time.Now().UTC().Format("2006-01-02"),
	}
	const query = `INSERT INTO applicants
		(full_name, math_score, russian_score, informatics_score, total_score, priority, consent, program, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	if err := r.db.GetContext(ctx, &record.ID, query,
		record.FullName, record.MathScore, record.RussianScore, record.InformaticsScore,
		record.TotalScore, record.Priority, record.Consent, record.Program, record.CreatedAt,
	); err != nil {
		return nil, fmt.Errorf("insert applicant: %w", err)
	}
	return &record, nil
}

// Update modifies the mutable fields of an applicant.
func (r *ApplicantRepository) Update(ctx context.Context, id int64, upd models.ApplicantUpdate) error {
	sets := make([]string, 0, 2)
	args := make([]interface{}, 0, 3)
	if upd.Consent != nil {
		sets = append(sets, fmt.Sprintf("consent = $%d", len(args)+1))
		args = append(args, *upd.Consent)
	}
	if upd.Priority != nil {
		sets = append(sets, fmt.Sprintf("priority = $%d", len(args)+1))
		args = append(args, *upd.Priority)
	}
	if len(sets) == 0 {
		return nil
	}
	args = append(args, id)
	query := fmt.Sprintf("UPDATE applicants SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update applicant: %w", err)
	}
	return nil
}

// Delete removes one applicant.
func (r *ApplicantRepository) Delete(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM applicants WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete applicant: %w", err)
	}
	return nil
}

// Clear removes every applicant.
func (r *ApplicantRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM applicants"); err != nil {
		return fmt.Errorf("clear applicants: %w", err)
	}
	return nil
}

// Stats aggregates the applicant pool.
func (r *ApplicantRepository) Stats(ctx context.Context) (*models.ApplicantStats, error) {
	var agg struct {
		Total       int `db:"total"`
		WithConsent int `db:"with_consent"`
		Average     int `db:"average_score"`
		Max         int `db:"max_score"`
		Min         int `db:"min_score"`
	}
	const aggQuery = `SELECT
		COUNT(*) AS total,
		COALESCE(SUM(CASE WHEN consent THEN 1 ELSE 0 END), 0) AS with_consent,
		COALESCE(CAST(ROUND(AVG(total_score)) AS INTEGER), 0) AS average_score,
		COALESCE(MAX(total_score), 0) AS max_score,
		COALESCE(MIN(total_score), 0) AS min_score
		FROM applicants`
	if err := r.db.GetContext(ctx, &agg, aggQuery); err != nil {
		return nil, fmt.Errorf("applicant stats: %w", err)
	}

	priorities := []struct {
		Priority int `db:"priority"`
		Count    int `db:"cnt"`
	}{}
	if err := r.db.SelectContext(ctx, &priorities, "SELECT priority, COUNT(*) AS cnt FROM applicants GROUP BY priority"); err != nil {
		return nil, fmt.Errorf("applicant priority stats: %w", err)
	}

	stats := &models.ApplicantStats{
		Total:        agg.Total,
		WithConsent:  agg.WithConsent,
		AverageScore: agg.Average,
		MaxScore:     agg.Max,
		MinScore:     agg.Min,
	}
	for _, p := range priorities {
		switch p.Priority {
		case 1:
			stats.Priority1 = p.Count
		case 2:
			stats.Priority2 = p.Count
		case 3:
			stats.Priority3 = p.Count
		}
	}
	return stats, nil
}
