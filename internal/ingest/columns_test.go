package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindColumnFuzzyMatch(t *testing.T) {
	headers := []string{"№", "ФИО абитуриента", "Матем.", "Русский язык", "Информатика"}

	tests := []struct {
		name     string
		synonyms []string
		want     int
	}{
		{"exact", []string{"Информатика"}, 4},
		{"header contains synonym", []string{"Русский"}, 3},
		{"abbreviated header", []string{"Математика", "мат"}, 2},
		{"case insensitive", []string{"фио"}, 1},
		{"no match", []string{"XYZ"}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FindColumn(headers, tt.synonyms))
		})
	}
}

func TestFindColumnEmptyHeaderMatches(t *testing.T) {
	// "" is contained by every synonym, so an empty header resolves before
	// a later exact hit.
	assert.Equal(t, 0, FindColumn([]string{"", "ФИО"}, []string{"ФИО"}))
}

func TestFindColumnSynonymOrderWins(t *testing.T) {
	headers := []string{"Приоритет", "Согласие"}
	// First synonym hitting any header decides, even when a later synonym
	// would match an earlier column.
	assert.Equal(t, 1, FindColumn(headers, []string{"Согл", "Приор"}))
}

func TestResolveColumnsAppicantTable(t *testing.T) {
	headers := []string{"ФИО", "Математика", "Русский", "Информатика", "Приоритет", "Согласие", "ОП"}
	cols := ResolveColumns(headers, ApplicantSynonyms)

	assert.Equal(t, 0, cols[FieldFullName])
	assert.Equal(t, 1, cols[FieldMath])
	assert.Equal(t, 2, cols[FieldRussian])
	assert.Equal(t, 3, cols[FieldInformatics])
	assert.Equal(t, 4, cols[FieldPriority])
	assert.Equal(t, 5, cols[FieldConsent])
	assert.Equal(t, 6, cols[FieldProgram])
}

func TestResolveColumnsMissingOptional(t *testing.T) {
	cols := ResolveColumns([]string{"ФИО", "Математика", "Русский", "Информатика"}, ApplicantSynonyms)
	assert.Equal(t, -1, cols[FieldPriority])
	assert.Equal(t, -1, cols[FieldConsent])
	assert.Equal(t, -1, cols[FieldProgram])
}
