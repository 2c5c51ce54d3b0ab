package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveProgramCode(t *testing.T) {
	programs := DefaultPrograms()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"short code", "ПМ", "ПМ"},
		{"full name", "Информационная безопасность", "ИБ"},
		{"name inside longer reference", "09.03.01 Информатика и вычислительная техника", "ИВТ"},
		{"official label differing from catalog name", "09.03.03 Прикладная информатика", "ПМ"},
		{"official label for software engineering", "09.03.04 Программная инженерия", "ИБ"},
		{"official label for information systems", "09.03.02 Информационные системы и технологии", "ИТСС"},
		{"unmatched falls back", "Филология", DefaultProgramCode},
		{"empty falls back", "  ", DefaultProgramCode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveProgramCode(tt.raw, programs))
		})
	}
}

func TestDateTokenRoundTrip(t *testing.T) {
	for _, date := range ListDates() {
		assert.Equal(t, date, DateByToken(DateToken(date)))
	}
	assert.Equal(t, "", DateByToken("31.12"))
}
