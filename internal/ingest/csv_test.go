package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/edu-priem/admissions-api/pkg/errors"
)

const applicantsCSV = "ФИО;Матем.;Русский;Информатика;Приоритет;Согласие;ОП\n" +
	"Иванов Иван;90;85;95;1;да;ПМ\n" +
	"Петрова Анна;75;80;70;2;нет;ИВТ\n"

func TestParseApplicantsCSVSemicolon(t *testing.T) {
	rows, warnings, err := ParseApplicantsCSV(applicantsCSV)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, rows, 2)

	assert.Equal(t, "Иванов Иван", rows[0].FullName)
	assert.Equal(t, 270, rows[0].Total())
	assert.True(t, rows[0].Consent)
	assert.Equal(t, "ИВТ", rows[1].Program)
	assert.False(t, rows[1].Consent)
}

func TestParseApplicantsCSVComma(t *testing.T) {
	text := "fio,math,russian,info\nИванов,60,70,80\n"
	rows, _, err := ParseApplicantsCSV(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 210, rows[0].Total())
}

func TestParseApplicantsCSVHeaderDelimiterDecides(t *testing.T) {
	// A semicolon in the header binds the whole input to ";" even when data
	// lines carry commas inside fields.
	text := "ФИО;Математика;Русский;Информатика\n\"Иванов, Иван\";60;70;80\n"
	rows, _, err := ParseApplicantsCSV(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Иванов, Иван", rows[0].FullName)
}

func TestParseApplicantsCSVStripsBOMAndQuotes(t *testing.T) {
	text := "\ufeff\"ФИО\";\"Математика\";\"Русский\";\"Информатика\"\n\"Иванов\";\"60\";\"70\";\"80\"\n"
	rows, _, err := ParseApplicantsCSV(text)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Иванов", rows[0].FullName)
	assert.Equal(t, 60, rows[0].MathScore)
}

func TestParseApplicantsCSVSkipsEmptyName(t *testing.T) {
	text := applicantsCSV + ";100;100;100;1;да;ПМ\n"
	rows, _, err := ParseApplicantsCSV(text)
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestParseApplicantsCSVNoData(t *testing.T) {
	for _, text := range []string{"", "ФИО;Математика;Русский;Информатика\n", "\n\n"} {
		_, _, err := ParseApplicantsCSV(text)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrNoData.Code, appErrors.FromError(err).Code)
	}
}

func TestParseApplicantsCSVMissingRequiredColumns(t *testing.T) {
	_, _, err := ParseApplicantsCSV("XYZ;ABC\n1;2\n")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, _, err = ParseApplicantsCSV("ФИО;XYZ\nИванов;2\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Математика")
}

func TestParseApplicantRowsTable(t *testing.T) {
	table := [][]string{
		{"ФИО", "Математика", "Русский", "Информатика"},
		{"Иванов", "60", "70", "80"},
		{"", "1", "2", "3"},
	}
	rows, _, err := ParseApplicantRows(table)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Иванов", rows[0].FullName)
}
