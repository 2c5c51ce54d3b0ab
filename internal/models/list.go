package models

import (
	"strconv"
	"strings"
)

// ListEntry is one applicant's standing within one program's competitive
// list on one admission date. The display name is denormalized and may be
// absent: list data can originate from an import channel independent of the
// Applicant aggregate.
type ListEntry struct {
	ApplicantID       int64   `db:"applicant_id" json:"applicant_id"`
	FullName          *string `db:"full_name" json:"full_name,omitempty"`
	ProgramCode       string  `db:"program_code" json:"program_code"`
	ProgramName       string  `db:"program_name" json:"program_name"`
	ListDate          string  `db:"list_date" json:"list_date"`
	Consent           bool    `db:"consent" json:"consent"`
	Priority          int     `db:"priority" json:"priority"`
	PhysicsICTScore   int     `db:"physics_ict_score" json:"physics_ict_score"`
	RussianScore      int     `db:"russian_score" json:"russian_score"`
	MathScore         int     `db:"math_score" json:"math_score"`
	AchievementsScore int     `db:"achievements_score" json:"achievements_score"`
	TotalScore        int     `db:"total_score" json:"total_score"`
}

// ListEntryInput is a normalized competitive-list row ready for
// reconciliation.
type ListEntryInput struct {
	ApplicantID       int64  `json:"applicant_id" validate:"required,gt=0"`
	FullName          string `json:"full_name"`
	Consent           bool   `json:"consent"`
	Priority          int    `json:"priority"`
	PhysicsICTScore   int    `json:"physics_ict_score"`
	RussianScore      int    `json:"russian_score"`
	MathScore         int    `json:"math_score"`
	AchievementsScore int    `json:"achievements_score"`
	TotalScore        int    `json:"total_score"`
}

// Canonical clamps component scores and priority. A non-positive supplied
// total is replaced by the sum of the clamped components; a positive one is
// trusted verbatim.
func (in ListEntryInput) Canonical() ListEntryInput {
	out := in
	out.FullName = strings.TrimSpace(in.FullName)
	out.Priority = Clamp(in.Priority, ListPriorityMin, ListPriorityMax)
	out.PhysicsICTScore = Clamp(in.PhysicsICTScore, ScoreMin, ScoreMax)
	out.RussianScore = Clamp(in.RussianScore, ScoreMin, ScoreMax)
	out.MathScore = Clamp(in.MathScore, ScoreMin, ScoreMax)
	out.AchievementsScore = Clamp(in.AchievementsScore, ScoreMin, AchievementsMax)
	if in.TotalScore <= 0 {
		out.TotalScore = out.PhysicsICTScore + out.RussianScore + out.MathScore + out.AchievementsScore
	}
	return out
}

// LoadResult reports the reconciliation outcome for one (program, date)
// slice.
type LoadResult struct {
	ProgramCode string   `json:"program_code"`
	ListDate    string   `json:"list_date"`
	Deleted     int      `json:"deleted"`
	Added       int      `json:"added"`
	Updated     int      `json:"updated"`
	Errors      []string `json:"errors,omitempty"`
}

// UndersubscribedLabel is the sentinel rendered when fewer consenting
// applicants exist than budget places.
const UndersubscribedLabel = "НЕДОБОР"

// PassingScore is the derived admission cutoff for one program and date.
type PassingScore struct {
	ProgramCode     string `json:"program_code"`
	ProgramName     string `json:"program_name"`
	Score           *int   `json:"passing_score,omitempty"`
	Undersubscribed bool   `json:"undersubscribed"`
	EnrolledCount   int    `json:"enrolled_count"`
	BudgetPlaces    int    `json:"budget_places"`
}

// Display renders the cutoff or the undersubscribed sentinel.
func (p PassingScore) Display() string {
	if p.Undersubscribed || p.Score == nil {
		return UndersubscribedLabel
	}
	return strconv.Itoa(*p.Score)
}
