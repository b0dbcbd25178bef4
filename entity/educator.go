package entity

import (
	"fmt"
	"strings"
	"time"
)

// Educator is a school staff member whose platform access is monitored.
type Educator struct {
	ID           int64     `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	CollegeID    int64     `json:"college_id,omitempty"`
	Management   string    `json:"management,omitempty"`
	LastAccessAt time.Time `json:"last_access_at,omitempty"`
}

func (e *Educator) FullName() string {
	name := strings.TrimSpace(e.FirstName + " " + e.LastName)
	if name == "" {
		return fmt.Sprintf("Educator #%d", e.ID)
	}
	return name
}
