package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/edu-priem/admissions-api/internal/models"
)

// ProgramRepository serves the fixed program catalog.
type ProgramRepository struct {
	db *sqlx.DB
}

// NewProgramRepository constructs a ProgramRepository.
func NewProgramRepository(db *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// Seed writes the catalog into the store, updating rows that drifted from
// configuration. Programs are configuration, not user data.
func (r *ProgramRepository) Seed(ctx context.Context, programs []models.Program) error {
	const query = `INSERT INTO programs (code, name, budget_places, commission_date)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (code) DO UPDATE SET
			name = excluded.name,
			budget_places = excluded.budget_places,
			commission_date = excluded.commission_date`
	for _, p := range programs {
		if _, err := r.db.ExecContext(ctx, query, p.Code, p.Name, p.BudgetPlaces, p.CommissionDate); err != nil {
			return fmt.Errorf("seed program %s: %w", p.Code, err)
		}
	}
	return nil
}

// List returns the catalog ordered by code.
func (r *ProgramRepository) List(ctx context.Context) ([]models.Program, error) {
	var programs []models.Program
	const query = "SELECT id, code, name, budget_places, commission_date FROM programs ORDER BY code ASC"
	if err := r.db.SelectContext(ctx, &programs, query); err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return programs, nil
}

// FindByCode fetches one catalog entry, nil when the code is unknown.
func (r *ProgramRepository) FindByCode(ctx context.Context, code string) (*models.Program, error) {
	var program models.Program
	const query = "SELECT id, code, name, budget_places, commission_date FROM programs WHERE code = $1"
	if err := r.db.GetContext(ctx, &program, query, code); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find program %s: %w", code, err)
	}
	return &program, nil
}
