package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-priem/admissions-api/internal/models"
)

func TestListRepositoryExistingIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewListRepository(db)
	rows := sqlmock.NewRows([]string{"applicant_id"}).AddRow(1).AddRow(2).AddRow(3)
	mock.ExpectQuery("SELECT applicant_id FROM competitive_list_entries").
		WithArgs(int64(10), "2026-08-01").
		WillReturnRows(rows)

	ids, err := repo.ExistingIDs(context.Background(), 10, "2026-08-01")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestListRepositoryDeleteEntries(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewListRepository(db)
	mock.ExpectExec("DELETE FROM competitive_list_entries WHERE program_id").
		WithArgs(int64(10), "2026-08-01", int64(1), int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := repo.DeleteEntries(context.Background(), 10, "2026-08-01", []int64{1, 4})
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
}

func TestListRepositoryDeleteEntriesEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewListRepository(db)
	deleted, err := repo.DeleteEntries(context.Background(), 10, "2026-08-01", nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListRepositoryUpsertEntry(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewListRepository(db)
	mock.ExpectExec("INSERT INTO competitive_list_entries").
		WithArgs(int64(5), int64(10), "2026-08-01", true, 1, 80, 70, 75, 10, 235, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	in := models.ListEntryInput{
		ApplicantID:       5,
		Consent:           true,
		Priority:          1,
		PhysicsICTScore:   80,
		RussianScore:      70,
		MathScore:         75,
		AchievementsScore: 10,
		TotalScore:        235,
	}
	require.NoError(t, repo.UpsertEntry(context.Background(), 10, "2026-08-01", in))
}

func TestListRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewListRepository(db)
	name := "Иванов"
	rows := sqlmock.NewRows([]string{"applicant_id", "full_name", "program_code", "program_name", "list_date", "consent", "priority", "physics_ict_score", "russian_score", "math_score", "achievements_score", "total_score"}).
		AddRow(5, name, "ПМ", "Прикладная математика", "2026-08-01", true, 1, 80, 70, 75, 10, 235)
	mock.ExpectQuery("SELECT e.applicant_id").
		WithArgs("ПМ", "2026-08-01").
		WillReturnRows(rows)

	entries, err := repo.List(context.Background(), "ПМ", "2026-08-01")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.NotNil(t, entries[0].FullName)
	assert.Equal(t, "Иванов", *entries[0].FullName)
	assert.Equal(t, 235, entries[0].TotalScore)
}

func TestProgramRepositorySeed(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewProgramRepository(db)
	for _, p := range models.DefaultPrograms() {
		mock.ExpectExec("INSERT INTO programs").
			WithArgs(p.Code, p.Name, p.BudgetPlaces, p.CommissionDate).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}

	require.NoError(t, repo.Seed(context.Background(), models.DefaultPrograms()))
	require.NoError(t, mock.ExpectationsWereMet())
}
