package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edu-priem/admissions-api/internal/models"
)

func TestParseBoolTokens(t *testing.T) {
	for _, token := range []string{"да", "ДА", "1", "true", "TRUE", "yes", "+", " да "} {
		assert.True(t, ParseBool(token), token)
	}
	for _, token := range []string{"", "нет", "0", "false", "-", "2"} {
		assert.False(t, ParseBool(token), token)
	}
}

func TestParseIntTolerant(t *testing.T) {
	tests := map[string]int{
		"95":    95,
		" 95 ":  95,
		"95.5":  95,
		"95б":   95,
		"-3":    -3,
		"+7":    7,
		"abc":   0,
		"":      0,
		"- 5":   0,
		"12 34": 12,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseInt(in), in)
	}
}

func applicantCols() map[Field]int {
	return ResolveColumns(
		[]string{"ФИО", "Математика", "Русский", "Информатика", "Приоритет", "Согласие", "ОП"},
		ApplicantSynonyms,
	)
}

func TestNormalizeApplicantRowTotals(t *testing.T) {
	in, ok := NormalizeApplicantRow(applicantCols(), []string{"Иванов Иван", "90", "85", "95", "2", "да", "ПМ"})
	require.True(t, ok)

	assert.Equal(t, "Иванов Иван", in.FullName)
	assert.Equal(t, 90, in.MathScore)
	assert.Equal(t, 85, in.RussianScore)
	assert.Equal(t, 95, in.InformaticsScore)
	assert.Equal(t, 270, in.Total())
	assert.Equal(t, 2, in.Priority)
	assert.True(t, in.Consent)
	assert.Equal(t, "ПМ", in.Program)
}

func TestNormalizeApplicantRowClamps(t *testing.T) {
	in, ok := NormalizeApplicantRow(applicantCols(), []string{"Петров", "150", "-20", "abc", "99", "нет", ""})
	require.True(t, ok)

	assert.Equal(t, 100, in.MathScore)
	assert.Equal(t, 0, in.RussianScore)
	assert.Equal(t, 0, in.InformaticsScore)
	assert.Equal(t, 100, in.Total())
	assert.Equal(t, models.ApplicantPriorityMax, in.Priority)
	assert.False(t, in.Consent)
}

func TestNormalizeApplicantRowResolvesProgram(t *testing.T) {
	tests := map[string]string{
		"ПМ": "ПМ",
		"09.03.03 Прикладная информатика": "ПМ",
		"что-то неизвестное":              models.DefaultProgramCode,
		"":                                "",
	}
	for raw, want := range tests {
		in, ok := NormalizeApplicantRow(applicantCols(), []string{"Иванов", "60", "70", "80", "1", "да", raw})
		require.True(t, ok, raw)
		assert.Equal(t, want, in.Program, raw)
	}
}

func TestNormalizeApplicantRowSkipsEmptyName(t *testing.T) {
	_, ok := NormalizeApplicantRow(applicantCols(), []string{"   ", "90", "85", "95", "1", "да", "ПМ"})
	assert.False(t, ok)
}

func listCols() map[Field]int {
	return ResolveColumns(
		[]string{"ID", "ФИО", "Согласие", "Приоритет", "Физика/ИКТ", "Русский язык", "Математика", "Достиж", "Сумма"},
		ListSynonyms,
	)
}

func TestNormalizeListRowComputedTotal(t *testing.T) {
	in, ok := NormalizeListRow(listCols(), []string{"7", "Сидорова", "да", "2", "80", "70", "75", "10", "0"})
	require.True(t, ok)

	assert.Equal(t, int64(7), in.ApplicantID)
	assert.Equal(t, 235, in.TotalScore)
	assert.Equal(t, 2, in.Priority)
	assert.True(t, in.Consent)
}

func TestNormalizeListRowTrustsPositiveTotal(t *testing.T) {
	in, ok := NormalizeListRow(listCols(), []string{"7", "", "нет", "1", "80", "70", "75", "10", "300"})
	require.True(t, ok)
	assert.Equal(t, 300, in.TotalScore)
}

func TestNormalizeListRowClampsRanges(t *testing.T) {
	in, ok := NormalizeListRow(listCols(), []string{"7", "", "", "9", "120", "70", "75", "50", "-1"})
	require.True(t, ok)

	assert.Equal(t, models.ListPriorityMax, in.Priority)
	assert.Equal(t, 100, in.PhysicsICTScore)
	assert.Equal(t, models.AchievementsMax, in.AchievementsScore)
	assert.Equal(t, 100+70+75+30, in.TotalScore)
}

func TestNormalizeListRowSkipsMissingID(t *testing.T) {
	for _, id := range []string{"", "0", "-4", "abc"} {
		_, ok := NormalizeListRow(listCols(), []string{id, "Имя", "да", "1", "1", "1", "1", "1", "4"})
		assert.False(t, ok, id)
	}
}
