package ingest

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/edu-priem/admissions-api/internal/models"
)

func buildWorkbook(t *testing.T, sheets map[string][][]string) *bytes.Reader {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	first := true
	for name, rows := range sheets {
		if first {
			require.NoError(t, f.SetSheetName("Sheet1", name))
			first = false
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			values := make([]interface{}, len(row))
			for j, v := range row {
				values[j] = v
			}
			require.NoError(t, f.SetSheetRow(name, cell, &values))
		}
	}

	buf := &bytes.Buffer{}
	require.NoError(t, f.Write(buf))
	return bytes.NewReader(buf.Bytes())
}

func TestParseListWorkbook(t *testing.T) {
	r := buildWorkbook(t, map[string][][]string{
		"ПМ_01.08": {
			{"ID", "ФИО", "Согласие", "Приоритет", "Физика/ИКТ", "Русский язык", "Математика", "Достиж", "Сумма"},
			{"1", "Иванов", "да", "1", "80", "70", "75", "10", "0"},
			{"abc", "Без идентификатора", "да", "1", "1", "1", "1", "1", "4"},
			{"2", "Петрова", "нет", "2", "60", "65", "70", "0", "195"},
		},
	})

	sheets, err := ParseListWorkbook(r, models.DefaultPrograms())
	require.NoError(t, err)
	require.Len(t, sheets, 1)

	sheet := sheets[0]
	assert.Equal(t, "ПМ", sheet.ProgramCode)
	assert.Equal(t, "2026-08-01", sheet.ListDate)
	assert.False(t, sheet.Failed())
	require.Len(t, sheet.Entries, 2)
	assert.Equal(t, int64(1), sheet.Entries[0].ApplicantID)
	assert.Equal(t, 235, sheet.Entries[0].TotalScore)
	assert.Equal(t, 195, sheet.Entries[1].TotalScore)
}

func TestParseListWorkbookIgnoresUnknownSheets(t *testing.T) {
	r := buildWorkbook(t, map[string][][]string{
		"Sostav":   {{"ID"}, {"1"}},
		"ПМ_31.12": {{"ID"}, {"1"}},
		"ЯЯ_01.08": {{"ID"}, {"1"}},
	})

	sheets, err := ParseListWorkbook(r, models.DefaultPrograms())
	require.NoError(t, err)
	assert.Empty(t, sheets)
}

func TestParseListWorkbookMissingIDColumn(t *testing.T) {
	r := buildWorkbook(t, map[string][][]string{
		"ИБ_04.08": {
			{"ФИО", "Согласие"},
			{"Иванов", "да"},
		},
	})

	sheets, err := ParseListWorkbook(r, models.DefaultPrograms())
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.True(t, sheets[0].Failed())
	assert.Contains(t, sheets[0].Errors[0], "ИБ_04.08")
	assert.Empty(t, sheets[0].Entries)
}

func TestParseListWorkbookHeaderOnlySheet(t *testing.T) {
	r := buildWorkbook(t, map[string][][]string{
		"ИТСС_03.08": {{"ID", "ФИО"}},
	})

	sheets, err := ParseListWorkbook(r, models.DefaultPrograms())
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.False(t, sheets[0].Failed())
	assert.Empty(t, sheets[0].Entries)
}

func TestParseListWorkbookBlankSheetFails(t *testing.T) {
	r := buildWorkbook(t, map[string][][]string{
		"ПМ_01.08": {},
	})

	sheets, err := ParseListWorkbook(r, models.DefaultPrograms())
	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.True(t, sheets[0].Failed())
	assert.Contains(t, sheets[0].Errors[0], "ПМ_01.08")
}

func TestParseApplicantsWorkbook(t *testing.T) {
	r := buildWorkbook(t, map[string][][]string{
		"Лист1": {
			{"ФИО", "Математика", "Русский", "Информатика", "Согласие"},
			{"Иванов Иван", "90", "85", "95", "да"},
		},
	})

	rows, _, err := ParseApplicantsWorkbook(r)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 270, rows[0].Total())
	assert.True(t, rows[0].Consent)
}
