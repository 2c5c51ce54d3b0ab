package ingest

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/edu-priem/admissions-api/internal/models"
)

// ListSheet is one parsed competitive-list sheet. A sheet with a structural
// problem carries diagnostics in Errors and must not be reconciled.
type ListSheet struct {
	ProgramCode string
	ListDate    string
	Entries     []models.ListEntryInput
	Errors      []string
}

// Failed reports whether the sheet hit a structural error.
func (s ListSheet) Failed() bool {
	return len(s.Errors) > 0
}

// ParseListWorkbook reads every sheet named {ProgramCode}_{DD.MM} from an
// XLSX workbook. Sheets whose name does not resolve to a known program and
// date are ignored.
func ParseListWorkbook(r io.Reader, programs []models.Program) ([]ListSheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	codes := make(map[string]struct{}, len(programs))
	for _, p := range programs {
		codes[p.Code] = struct{}{}
	}

	var sheets []ListSheet
	for _, name := range f.GetSheetList() {
		code, date, ok := parseSheetName(name, codes)
		if !ok {
			continue
		}

		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", name, err)
		}
		sheets = append(sheets, normalizeListSheet(code, date, name, rows))
	}
	return sheets, nil
}

// ParseApplicantsWorkbook ingests the first sheet of a workbook with the
// applicant column set.
func ParseApplicantsWorkbook(r io.Reader) ([]models.ApplicantInput, []string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	names := f.GetSheetList()
	if len(names) == 0 {
		return nil, nil, fmt.Errorf("workbook has no sheets")
	}
	rows, err := f.GetRows(names[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read sheet %s: %w", names[0], err)
	}
	return ParseApplicantRows(rows)
}

func parseSheetName(name string, codes map[string]struct{}) (code, date string, ok bool) {
	parts := strings.SplitN(name, "_", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	code = strings.TrimSpace(parts[0])
	token := strings.TrimSpace(parts[1])
	if _, known := codes[code]; !known {
		return "", "", false
	}
	date = models.DateByToken(token)
	if date == "" {
		return "", "", false
	}
	return code, date, true
}

func normalizeListSheet(code, date, name string, rows [][]string) ListSheet {
	sheet := ListSheet{ProgramCode: code, ListDate: date}

	// A blank sheet has no ID column either; it reports the same diagnostic
	// instead of passing as an empty list.
	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	cols := ResolveColumns(header, ListSynonyms)
	if cols[FieldApplicantID] < 0 {
		sheet.Errors = append(sheet.Errors, fmt.Sprintf("column «ID» not found on sheet %s", name))
		return sheet
	}

	for _, cells := range rows[1:] {
		if in, ok := NormalizeListRow(cols, cells); ok {
			sheet.Entries = append(sheet.Entries, in)
		}
	}
	return sheet
}
