package performance

import (
	"strings"

	"PerfDash/entity"
)

// FilterByScope restricts the collections to one management and optionally to
// one consultant. The input is not modified.
//
// A visit stays in a management scope when either its consultant or its
// school belongs to the scope. Entities without a management never pass a
// specific management scope; educators without one are placed through their
// college instead.
func FilterByScope(in entity.Collections, scope entity.Scope) entity.Collections {
	out := in

	if !scope.AllManagements() {
		management := strings.TrimSpace(scope.Management)

		out.Consultants = filter(in.Consultants, func(c *entity.Consultant) bool {
			return sameManagement(c.Management, management)
		})
		out.Colleges = filter(in.Colleges, func(c *entity.College) bool {
			return sameManagement(c.Management, management)
		})

		consultants := make(map[int64]bool, len(out.Consultants))
		for _, c := range out.Consultants {
			if c.ID > 0 {
				consultants[c.ID] = true
			}
		}
		schools := collegeSet(out.Colleges)

		out.Educators = filter(in.Educators, func(e *entity.Educator) bool {
			if strings.TrimSpace(e.Management) != "" {
				return sameManagement(e.Management, management)
			}
			return e.CollegeID > 0 && schools[e.CollegeID]
		})

		touches := func(v *entity.Visit) bool {
			return (v.ConsultantID > 0 && consultants[v.ConsultantID]) ||
				(v.SchoolID > 0 && schools[v.SchoolID])
		}
		out.Visits30 = filter(in.Visits30, touches)
		out.VisitsMonth = filter(in.VisitsMonth, touches)
		out.VisitsWeek = filter(in.VisitsWeek, touches)
	}

	if !scope.AllConsultants() {
		byConsultant := func(v *entity.Visit) bool {
			return v.ConsultantID == scope.ConsultantID
		}
		out.Visits30 = filter(out.Visits30, byConsultant)
		out.VisitsMonth = filter(out.VisitsMonth, byConsultant)
		out.VisitsWeek = filter(out.VisitsWeek, byConsultant)
	}

	return out
}

func sameManagement(value, management string) bool {
	value = strings.TrimSpace(value)
	return value != "" && value == management
}

func collegeSet(colleges []entity.College) map[int64]bool {
	set := make(map[int64]bool, len(colleges))
	for _, c := range colleges {
		if c.ID > 0 {
			set[c.ID] = true
		}
	}
	return set
}

func filter[T any](in []T, keep func(*T) bool) []T {
	out := make([]T, 0, len(in))
	for i := range in {
		if keep(&in[i]) {
			out = append(out, in[i])
		}
	}
	return out
}
