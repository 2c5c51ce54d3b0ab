package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-priem/admissions-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	sqlxDB := sqlx.NewDb(db, "postgres")
	return sqlxDB, mock, func() {
		sqlxDB.Close()
		db.Close()
	}
}

func TestApplicantRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApplicantRepository(db)
	rows := sqlmock.NewRows([]string{"id", "full_name", "math_score", "russian_score", "informatics_score", "total_score", "priority", "consent", "program", "created_at"}).
		AddRow(1, "Иванов Иван", 90, 85, 95, 270, 1, true, "ПМ", "2026-08-01").
		AddRow(2, "Петрова Анна", 75, 80, 70, 225, 2, false, "ИВТ", "2026-08-01")
	mock.ExpectQuery("SELECT (.+) FROM applicants ORDER BY total_score DESC").
		WillReturnRows(rows)

	result, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Иванов Иван", result[0].FullName)
	assert.Equal(t, 270, result[0].TotalScore)
}

func TestApplicantRepositoryFindByKeyNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApplicantRepository(db)
	mock.ExpectQuery("SELECT (.+) FROM applicants WHERE full_name").
		WithArgs("Иванов", 270, "ПМ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	result, err := repo.FindByKey(context.Background(), models.IdentityKey{FullName: "Иванов", Total: 270, Program: "ПМ"})
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestApplicantRepositoryInsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApplicantRepository(db)
	mock.ExpectQuery("INSERT INTO applicants").
		WithArgs("Иванов", 90, 85, 95, 270, 1, true, "ПМ", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	record, err := repo.Insert(context.Background(), models.ApplicantInput{
		FullName:         "Иванов",
		MathScore:        90,
		RussianScore:     85,
		InformaticsScore: 95,
		Priority:         1,
		Consent:          true,
		Program:          "ПМ",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), record.ID)
	assert.Equal(t, 270, record.TotalScore)
}

func TestApplicantRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApplicantRepository(db)
	consent := true
	priority := 3
	mock.ExpectExec("UPDATE applicants SET consent").
		WithArgs(true, 3, int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), 5, models.ApplicantUpdate{Consent: &consent, Priority: &priority}))
}

func TestApplicantRepositoryUpdateNoFields(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApplicantRepository(db)
	require.NoError(t, repo.Update(context.Background(), 5, models.ApplicantUpdate{}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplicantRepositoryStats(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewApplicantRepository(db)
	agg := sqlmock.NewRows([]string{"total", "with_consent", "average_score", "max_score", "min_score"}).
		AddRow(3, 2, 250, 290, 210)
	mock.ExpectQuery("SELECT(.+)COUNT\\(\\*\\) AS total").WillReturnRows(agg)
	priorities := sqlmock.NewRows([]string{"priority", "cnt"}).
		AddRow(1, 2).
		AddRow(2, 1)
	mock.ExpectQuery("SELECT priority, COUNT").WillReturnRows(priorities)

	stats, err := repo.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.Equal(t, 2, stats.WithConsent)
	assert.Equal(t, 250, stats.AverageScore)
	assert.Equal(t, 2, stats.Priority1)
	assert.Equal(t, 1, stats.Priority2)
}
