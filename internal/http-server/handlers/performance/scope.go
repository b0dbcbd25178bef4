package performance

import (
	"PerfDash/entity"
	"PerfDash/internal/lib/validate"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ScopeRequest is the management/consultant filter of the query string.
type ScopeRequest struct {
	Management   string `validate:"max=64"`
	ConsultantID int64  `validate:"gte=0"`
}

func (s *ScopeRequest) Bind(r *http.Request) error {
	query := r.URL.Query()
	s.Management = strings.TrimSpace(query.Get("management"))

	consultant := strings.TrimSpace(query.Get("consultant"))
	if consultant != "" && !strings.EqualFold(consultant, entity.ScopeAll) {
		id, err := strconv.ParseInt(consultant, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid consultant %q", consultant)
		}
		s.ConsultantID = id
	}

	return validate.Struct(s)
}

func (s *ScopeRequest) Scope() entity.Scope {
	return entity.Scope{
		Management:   s.Management,
		ConsultantID: s.ConsultantID,
	}
}
