package entity

import "time"

// Careers a bootcamp may offer.
var Careers = []string{
	"Web Development",
	"Mobile Development",
	"UI/UX",
	"Data Science",
	"Business",
	"Other",
}

// Bootcamp is an owned resource: UserID is the owning identity and every
// mutation goes through an ownership check against it.
type Bootcamp struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	Slug          string    `json:"slug"`
	Description   string    `json:"description"`
	Website       string    `json:"website,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	Email         string    `json:"email,omitempty"`
	Address       string    `json:"address"`
	Latitude      *float64  `json:"latitude,omitempty"`
	Longitude     *float64  `json:"longitude,omitempty"`
	Careers       []string  `json:"careers"`
	AverageRating *float64  `json:"average_rating,omitempty"`
	AverageCost   *int      `json:"average_cost,omitempty"`
	Photo         string    `json:"photo"`
	Housing       bool      `json:"housing"`
	JobAssistance bool      `json:"job_assistance"`
	JobGuarantee  bool      `json:"job_guarantee"`
	AcceptGI      bool      `json:"accept_gi"`
	CreatedAt     time.Time `json:"created_at"`

	// Courses is only set when a list request asks to populate them.
	Courses []Course `json:"courses,omitempty"`
}

// ValidCareer reports whether c is one of the known career tracks.
func ValidCareer(c string) bool {
	for _, k := range Careers {
		if k == c {
			return true
		}
	}
	return false
}
