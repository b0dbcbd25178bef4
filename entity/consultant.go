package entity

import (
	"fmt"
	"strings"
)

// Consultant is a field staff member who visits schools.
type Consultant struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Management   string `json:"management,omitempty"`
	IsActive     bool   `json:"is_active"`
	IsBlocked    bool   `json:"is_blocked"`
	VacationMode bool   `json:"vacation_mode"`
}

// IsAvailable reports whether the consultant counts as active.
func (c *Consultant) IsAvailable() bool {
	return c.IsActive && !c.IsBlocked
}

func (c *Consultant) FullName() string {
	name := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if name == "" {
		return fmt.Sprintf("Consultant #%d", c.ID)
	}
	return name
}
