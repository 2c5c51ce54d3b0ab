package ingest

import (
	"strings"

	"github.com/edu-priem/admissions-api/internal/models"
)

// Boolean-like cell tokens recognized as true, case-insensitive, trimmed.
var truthyTokens = map[string]struct{}{
	"да":   {},
	"1":    {},
	"true": {},
	"yes":  {},
	"+":    {},
}

// ParseBool reports whether a cell value is an affirmative token. Anything
// else, including empty, is false.
func ParseBool(raw string) bool {
	_, ok := truthyTokens[norm(raw)]
	return ok
}

// ParseInt extracts a leading integer from a human-entered cell, tolerating
// trailing junk and decimal tails. Non-numeric input yields 0.
func ParseInt(raw string) int {
	s := strings.TrimSpace(raw)
	i := 0
	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}
	v := 0
	digits := 0
	for ; i < len(s) && s[i] >= '0' && s[i] <= '9'; i++ {
		v = v*10 + int(s[i]-'0')
		digits++
	}
	if digits == 0 {
		return 0
	}
	if neg {
		return -v
	}
	return v
}

func cell(cells []string, idx int) string {
	if idx < 0 || idx >= len(cells) {
		return ""
	}
	return strings.Trim(strings.TrimSpace(cells[idx]), `"`)
}

// NormalizeApplicantRow converts one raw row into a canonical applicant
// input. A row with an empty name is skipped silently; the second return is
// false for skipped rows.
func NormalizeApplicantRow(cols map[Field]int, cells []string) (models.ApplicantInput, bool) {
	fullName := cell(cells, cols[FieldFullName])
	if fullName == "" {
		return models.ApplicantInput{}, false
	}

	in := models.ApplicantInput{
		FullName:         fullName,
		MathScore:        ParseInt(cell(cells, cols[FieldMath])),
		RussianScore:     ParseInt(cell(cells, cols[FieldRussian])),
		InformaticsScore: ParseInt(cell(cells, cols[FieldInformatics])),
		Priority:         1,
	}
	if idx, ok := cols[FieldPriority]; ok && idx >= 0 {
		if v := ParseInt(cell(cells, idx)); v > 1 {
			in.Priority = v
		}
	}
	if idx, ok := cols[FieldConsent]; ok && idx >= 0 {
		in.Consent = ParseBool(cell(cells, idx))
	}
	if idx, ok := cols[FieldProgram]; ok && idx >= 0 {
		// A non-empty program reference resolves to a catalog code; absent
		// references stay empty.
		if raw := cell(cells, idx); raw != "" {
			in.Program = models.ResolveProgramCode(raw, models.DefaultPrograms())
		}
	}
	return in.Canonical(), true
}

// NormalizeListRow converts one raw row into a canonical list entry. A row
// without a parseable positive integer id is skipped silently.
func NormalizeListRow(cols map[Field]int, cells []string) (models.ListEntryInput, bool) {
	id := ParseInt(cell(cells, cols[FieldApplicantID]))
	if id <= 0 {
		return models.ListEntryInput{}, false
	}

	in := models.ListEntryInput{
		ApplicantID:       int64(id),
		FullName:          cell(cells, cols[FieldFullName]),
		Consent:           ParseBool(cell(cells, cols[FieldConsent])),
		Priority:          1,
		PhysicsICTScore:   ParseInt(cell(cells, cols[FieldPhysicsICT])),
		RussianScore:      ParseInt(cell(cells, cols[FieldRussian])),
		MathScore:         ParseInt(cell(cells, cols[FieldMath])),
		AchievementsScore: ParseInt(cell(cells, cols[FieldAchievements])),
		TotalScore:        ParseInt(cell(cells, cols[FieldTotal])),
	}
	if idx, ok := cols[FieldPriority]; ok && idx >= 0 {
		if v := ParseInt(cell(cells, idx)); v > 1 {
			in.Priority = v
		}
	}
	return in.Canonical(), true
}
