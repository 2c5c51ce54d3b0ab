package models

import "strings"

// Program is a fixed catalog entry. Programs are configuration, not
// user-mutable at runtime; the catalog is seeded into the store at startup.
type Program struct {
	ID             int64  `db:"id" json:"id"`
	Code           string `db:"code" json:"code"`
	Name           string `db:"name" json:"name"`
	BudgetPlaces   int    `db:"budget_places" json:"budget_places"`
	CommissionDate string `db:"commission_date" json:"commission_date"`
}

// DefaultProgramCode receives entries whose program reference matches
// nothing in the catalog.
const DefaultProgramCode = "ИВТ"

// DefaultPrograms returns the admission-cycle catalog.
func DefaultPrograms() []Program {
	return []Program{
		{Code: "ПМ", Name: "Прикладная математика", BudgetPlaces: 40, CommissionDate: "2026-08-01"},
		{Code: "ИВТ", Name: "Информатика и вычислительная техника", BudgetPlaces: 50, CommissionDate: "2026-08-02"},
		{Code: "ИТСС", Name: "Инфокоммуникационные технологии и системы связи", BudgetPlaces: 30, CommissionDate: "2026-08-03"},
		{Code: "ИБ", Name: "Информационная безопасность", BudgetPlaces: 20, CommissionDate: "2026-08-04"},
	}
}

// ListDates returns the four fixed admission dates.
func ListDates() []string {
	return []string{"2026-08-01", "2026-08-02", "2026-08-03", "2026-08-04"}
}

// DateByToken maps a DD.MM sheet token to its admission date, or "" when the
// token names no known date.
func DateByToken(token string) string {
	for _, date := range ListDates() {
		if DateToken(date) == token {
			return date
		}
	}
	return ""
}

// DateToken renders YYYY-MM-DD as the DD.MM token used in sheet names.
func DateToken(date string) string {
	if len(date) != 10 {
		return date
	}
	return date[8:10] + "." + date[5:7]
}

// Official long labels whose catalog entry substring matching cannot reach
// ("Прикладная информатика" is not a substring of "Прикладная математика").
var programLabels = map[string]string{
	"09.03.01 информатика и вычислительная техника": "ИВТ",
	"09.03.02 информационные системы и технологии":  "ИТСС",
	"09.03.03 прикладная информатика":               "ПМ",
	"09.03.04 программная инженерия":                "ИБ",
}

// ResolveProgramCode matches a free-text program reference against the
// catalog: known official label, exact code, exact full name, exact
// "code name" concatenation, or substring containment in either direction.
// No match falls back to the default program.
func ResolveProgramCode(raw string, programs []Program) string {
	ref := strings.ToLower(strings.TrimSpace(raw))
	if ref != "" {
		if code, ok := programLabels[ref]; ok {
			return code
		}
		for _, p := range programs {
			code := strings.ToLower(p.Code)
			name := strings.ToLower(p.Name)
			switch {
			case ref == code, ref == name, ref == code+" "+name:
				return p.Code
			case strings.Contains(ref, name), strings.Contains(name, ref):
				return p.Code
			}
		}
	}
	return DefaultProgramCode
}
