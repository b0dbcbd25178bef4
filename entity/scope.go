package entity

import (
	"fmt"
	"strconv"
	"strings"
)

const ScopeAll = "all"

// Scope restricts the collections to one management (region) and optionally
// to a single consultant. Empty management and zero consultant mean "all".
type Scope struct {
	Management   string `json:"management"`
	ConsultantID int64  `json:"consultant_id,omitempty"`
}

func (s Scope) AllManagements() bool {
	m := strings.TrimSpace(s.Management)
	return m == "" || strings.EqualFold(m, ScopeAll)
}

func (s Scope) AllConsultants() bool {
	return s.ConsultantID <= 0
}

func (s Scope) String() string {
	management := ScopeAll
	if !s.AllManagements() {
		management = s.Management
	}
	consultant := ScopeAll
	if !s.AllConsultants() {
		consultant = strconv.FormatInt(s.ConsultantID, 10)
	}
	return fmt.Sprintf("management=%s consultant=%s", management, consultant)
}
