package ingest

import (
	"net/http"
	"strings"

	"github.com/edu-priem/admissions-api/internal/models"
	appErrors "github.com/edu-priem/admissions-api/pkg/errors"
)

// ParseApplicantsCSV ingests delimited text. The first non-empty line is
// the header row; its delimiter (";" when present, "," otherwise) applies to
// the whole input. Rows with an empty name are skipped silently; structural
// problems abort before any row is processed.
func ParseApplicantsCSV(text string) ([]models.ApplicantInput, []string, error) {
	raw := strings.TrimPrefix(text, "\ufeff")
	raw = strings.ReplaceAll(raw, "\r\n", "\n")
	raw = strings.ReplaceAll(raw, "\r", "\n")
	raw = strings.TrimSpace(raw)

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) < 2 {
		return nil, nil, appErrors.Clone(appErrors.ErrNoData, "need a header line and at least one data line")
	}

	sep := ","
	if strings.Contains(lines[0], ";") {
		sep = ";"
	}

	headers := splitFields(lines[0], sep)
	cols, err := resolveApplicantColumns(headers)
	if err != nil {
		return nil, nil, err
	}

	rows := make([]models.ApplicantInput, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if in, ok := NormalizeApplicantRow(cols, splitFields(line, sep)); ok {
			rows = append(rows, in)
		}
	}
	return rows, nil, nil
}

// ParseApplicantRows ingests a pre-split table, e.g. the first sheet of a
// workbook.
func ParseApplicantRows(table [][]string) ([]models.ApplicantInput, []string, error) {
	if len(table) < 2 {
		return nil, nil, appErrors.Clone(appErrors.ErrNoData, "need a header line and at least one data line")
	}

	cols, err := resolveApplicantColumns(table[0])
	if err != nil {
		return nil, nil, err
	}

	rows := make([]models.ApplicantInput, 0, len(table)-1)
	for _, cells := range table[1:] {
		if in, ok := NormalizeApplicantRow(cols, cells); ok {
			rows = append(rows, in)
		}
	}
	return rows, nil, nil
}

// Required applicant columns: name plus all three subject scores. A missing
// one is structural and aborts the whole input.
func resolveApplicantColumns(headers []string) (map[Field]int, error) {
	cols := ResolveColumns(headers, ApplicantSynonyms)
	if cols[FieldFullName] < 0 {
		return nil, appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest, "column not found: ФИО")
	}
	if cols[FieldMath] < 0 || cols[FieldRussian] < 0 || cols[FieldInformatics] < 0 {
		return nil, appErrors.New(appErrors.ErrValidation.Code, http.StatusBadRequest,
			"columns not found: Математика, Русский язык, Информатика")
	}
	return cols, nil
}

func splitFields(line, sep string) []string {
	parts := strings.Split(line, sep)
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = strings.Trim(strings.TrimSpace(p), `"`)
	}
	return out
}
