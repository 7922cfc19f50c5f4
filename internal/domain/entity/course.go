package entity

import "time"

// Skill levels accepted for a course.
const (
	SkillBeginner     = "beginner"
	SkillIntermediate = "intermediate"
	SkillAdvanced     = "advanced"
)

// Course belongs to a bootcamp; ownership checks are made against the
// parent bootcamp's owner, which is denormalized into UserID on create.
type Course struct {
	ID                   string    `json:"id"`
	BootcampID           string    `json:"bootcamp_id"`
	UserID               string    `json:"user_id"`
	Title                string    `json:"title"`
	Description          string    `json:"description"`
	Weeks                int       `json:"weeks"`
	Tuition              int       `json:"tuition"`
	MinimumSkill         string    `json:"minimum_skill"`
	ScholarshipAvailable bool      `json:"scholarship_available"`
	CreatedAt            time.Time `json:"created_at"`

	// Parent summary, set when a detail request populates the bootcamp.
	Bootcamp *BootcampSummary `json:"bootcamp,omitempty"`
}

// BootcampSummary is the slice of the parent embedded into populated courses.
type BootcampSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ValidSkill reports whether s is a recognized minimum skill level.
func ValidSkill(s string) bool {
	return s == SkillBeginner || s == SkillIntermediate || s == SkillAdvanced
}
