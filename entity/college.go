package entity

import "fmt"

// College is a school served by the consultancy program.
type College struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Management string `json:"management,omitempty"`
}

func (c *College) DisplayName() string {
	if c.Name == "" {
		return fmt.Sprintf("School #%d", c.ID)
	}
	return c.Name
}
