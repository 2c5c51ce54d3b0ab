package ingest

import "strings"

// Field names a canonical column of an ingested table.
type Field string

const (
	FieldFullName     Field = "full_name"
	FieldMath         Field = "math"
	FieldRussian      Field = "russian"
	FieldInformatics  Field = "informatics"
	FieldPriority     Field = "priority"
	FieldConsent      Field = "consent"
	FieldProgram      Field = "program"
	FieldApplicantID  Field = "applicant_id"
	FieldPhysicsICT   Field = "physics_ict"
	FieldAchievements Field = "achievements"
	FieldTotal        Field = "total"
)

// FieldSynonyms pairs a canonical field with its ordered candidate labels.
// Synonyms are tried in priority order; the first header satisfying any
// synonym wins.
type FieldSynonyms struct {
	Field    Field
	Synonyms []string
}

// ApplicantSynonyms maps human-entered applicant sheet headers to fields.
var ApplicantSynonyms = []FieldSynonyms{
	{FieldFullName, []string{"ФИО", "фио", "fio"}},
	{FieldMath, []string{"Математика", "мат", "математика", "math"}},
	{FieldRussian, []string{"Русский", "рус", "русский", "russian", "Русский язык"}},
	{FieldInformatics, []string{"Информатика", "инф", "информатика", "info"}},
	{FieldPriority, []string{"Приоритет", "приор", "prioritet"}},
	{FieldConsent, []string{"Согласие", "согласие", "soglasie", "Согл"}},
	{FieldProgram, []string{"Образовательная программа", "ОП", "оп", "программа", "Программа"}},
}

// ListSynonyms maps competitive-list sheet headers to fields.
var ListSynonyms = []FieldSynonyms{
	{FieldApplicantID, []string{"ID", "id", "Идентификатор", "идентификатор"}},
	{FieldFullName, []string{"ФИО", "fio", "Фамилия", "Имя", "ФИО абитуриента"}},
	{FieldConsent, []string{"Согласие", "согласие", "consent", "Согл"}},
	{FieldPriority, []string{"Приоритет", "приоритет", "priority", "Приор"}},
	{FieldPhysicsICT, []string{"Физика/ИКТ", "Физика", "ИКТ", "physics"}},
	{FieldRussian, []string{"Русский язык", "Русский", "русский", "russian", "Рус"}},
	{FieldMath, []string{"Математика", "математика", "math", "Мат"}},
	{FieldAchievements, []string{"Индивидуальные достижения", "ИД достижения", "achievements", "Достиж"}},
	{FieldTotal, []string{"Сумма баллов", "Сумма", "сумма", "sum"}},
}

func norm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// FindColumn returns the index of the first header that contains a synonym
// or is contained by one, case-insensitively, or -1 when no header matches.
// Pure function; matching is order-dependent on the synonym list.
func FindColumn(headers []string, synonyms []string) int {
	lower := make([]string, len(headers))
	for i, h := range headers {
		lower[i] = norm(h)
	}
	for _, s := range synonyms {
		ns := norm(s)
		if ns == "" {
			continue
		}
		for i, h := range lower {
			// An empty header is contained by every synonym and matches.
			if strings.Contains(h, ns) || strings.Contains(ns, h) {
				return i
			}
		}
	}
	return -1
}

// ResolveColumns maps every field of the table to a header index, -1 when
// absent.
func ResolveColumns(headers []string, table []FieldSynonyms) map[Field]int {
	out := make(map[Field]int, len(table))
	for _, fs := range table {
		out[fs.Field] = FindColumn(headers, fs.Synonyms)
	}
	return out
}
