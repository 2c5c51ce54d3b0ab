package models

import "strings"

// Score and priority ranges. Applicant and list-entry priorities are two
// independent policies and are never reconciled against each other.
const (
	ScoreMin = 0
	ScoreMax = 100

	AchievementsMax = 30

	ApplicantPriorityMin = 1
	ApplicantPriorityMax = 10

	ListPriorityMin = 1
	ListPriorityMax = 4
)

// Applicant is a candidate's aggregate academic record.
type Applicant struct {
	ID               int64  `db:"id" json:"id"`
	FullName         string `db:"full_name" json:"full_name"`
	MathScore        int    `db:"math_score" json:"math_score"`
	RussianScore     int    `db:"russian_score" json:"russian_score"`
	InformaticsScore int    `db:"informatics_score" json:"informatics_score"`
	TotalScore       int    `db:"total_score" json:"total_score"`
	Priority         int    `db:"priority" json:"priority"`
	Consent          bool   `db:"consent" json:"consent"`
	Program          string `db:"program" json:"program"`
	CreatedAt        string `db:"created_at" json:"created_at"`
}

// ApplicantInput is a normalized row ready for persistence. TotalScore is
// derived, never supplied.
type ApplicantInput struct {
	FullName         string `json:"full_name" validate:"required"`
	MathScore        int    `json:"math_score"`
	RussianScore     int    `json:"russian_score"`
	InformaticsScore int    `json:"informatics_score"`
	Priority         int    `json:"priority"`
	Consent          bool   `json:"consent"`
	Program          string `json:"program"`
}

// Canonical clamps every field into its declared range and recomputes
// nothing else; the total is always the sum of the clamped subject scores.
func (in ApplicantInput) Canonical() ApplicantInput {
	out := in
	out.FullName = strings.TrimSpace(in.FullName)
	out.Program = strings.TrimSpace(in.Program)
	out.MathScore = Clamp(in.MathScore, ScoreMin, ScoreMax)
	out.RussianScore = Clamp(in.RussianScore, ScoreMin, ScoreMax)
	out.InformaticsScore = Clamp(in.InformaticsScore, ScoreMin, ScoreMax)
	out.Priority = Clamp(in.Priority, ApplicantPriorityMin, ApplicantPriorityMax)
	return out
}

// Total returns the derived total score of a canonical input.
func (in ApplicantInput) Total() int {
	return in.MathScore + in.RussianScore + in.InformaticsScore
}

// IdentityKey is the deduplication identity of an applicant. Two records
// sharing the triple are the same applicant and are not re-inserted.
type IdentityKey struct {
	FullName string
	Total    int
	Program  string
}

// Key returns the identity key of a canonical input.
func (in ApplicantInput) Key() IdentityKey {
	return IdentityKey{FullName: in.FullName, Total: in.Total(), Program: in.Program}
}

// ApplicantUpdate carries the only fields mutable after creation.
type ApplicantUpdate struct {
	Consent  *bool `json:"consent"`
	Priority *int  `json:"priority" validate:"omitempty,min=1,max=10"`
}

// ApplicantStats summarises the applicant pool.
type ApplicantStats struct {
	Total        int `json:"total"`
	WithConsent  int `json:"with_consent"`
	AverageScore int `json:"average_score"`
	MaxScore     int `json:"max_score"`
	MinScore     int `json:"min_score"`
	Priority1    int `json:"priority_1"`
	Priority2    int `json:"priority_2"`
	Priority3    int `json:"priority_3"`
}

// BulkResult reports the outcome of a bulk merge.
type BulkResult struct {
	Added  int      `json:"added"`
	Errors []string `json:"errors,omitempty"`
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
