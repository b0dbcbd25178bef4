package performance

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"PerfDash/entity"
)

var ErrUnknownEnvelope = errors.New("response is neither a list nor an items/data envelope")

// envelopeKeys is the lookup order for wrapped list responses.
var envelopeKeys = []string{"items", "data"}

// largest integer a JSON number can carry without loss
const maxSafeID = 1<<53 - 1

// DecodeEnvelope accepts a bare JSON array, {"items": [...]} or {"data": [...]}
// and returns the object elements of the list. Non-object elements are skipped.
func DecodeEnvelope(body []byte) ([]map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}

	switch v := raw.(type) {
	case []any:
		return objects(v), nil
	case map[string]any:
		for _, key := range envelopeKeys {
			if list, ok := v[key].([]any); ok {
				return objects(list), nil
			}
		}
	}
	return nil, ErrUnknownEnvelope
}

func objects(list []any) []map[string]any {
	records := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if m, ok := item.(map[string]any); ok {
			records = append(records, m)
		}
	}
	return records
}

// ParseIDOrDefault converts a loosely typed identifier into a positive integer.
// Anything that is not a positive whole number (NaN, fractions, negatives,
// empty strings, booleans) yields 0, which callers treat as "absent".
func ParseIDOrDefault(v any) int64 {
	var f float64
	switch n := v.(type) {
	case nil:
		return 0
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return positive(i)
		}
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		return positive(int64(n))
	case int64:
		return positive(n)
	case int32:
		return positive(int64(n))
	case string:
		s := strings.TrimSpace(n)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return positive(i)
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		f = parsed
	case map[string]any:
		return ParseIDOrDefault(n["id"])
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > maxSafeID {
		return 0
	}
	return positive(int64(f))
}

func positive(i int64) int64 {
	if i <= 0 {
		return 0
	}
	return i
}

// NormalizeStatus lower-cases a visit status and maps it onto the known set.
func NormalizeStatus(v any) entity.VisitStatus {
	status := strings.ToLower(toString(v))
	switch status {
	case "scheduled", "completed", "cancelled", "rescheduled":
		return entity.VisitStatus(status)
	case "canceled":
		return entity.VisitCancelled
	default:
		return entity.VisitUnknown
	}
}

// Normalizer turns raw feed records into canonical entities. Timestamps that
// carry no zone are read in the normalizer's location.
type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc}
}

func (n *Normalizer) Visit(raw map[string]any) entity.Visit {
	return entity.Visit{
		ID:           ParseIDOrDefault(field(raw, "id", "visitId", "visit_id")),
		ConsultantID: ParseIDOrDefault(field(raw, "consultantId", "consultant_id", "consultorId", "consultor_id", "consultant")),
		SchoolID:     ParseIDOrDefault(field(raw, "schoolId", "school_id", "collegeId", "college_id", "school", "college")),
		Status:       NormalizeStatus(field(raw, "status", "visitStatus", "visit_status")),
		VisitDate:    n.timestamp(field(raw, "visitDate", "visit_date", "scheduledAt", "scheduled_at", "date")),
		CreatedAt:    n.timestamp(field(raw, "createdAt", "created_at")),
		UpdatedAt:    n.timestamp(field(raw, "updatedAt", "updated_at")),
	}
}

func (n *Normalizer) Consultant(raw map[string]any) entity.Consultant {
	c := entity.Consultant{
		ID:           ParseIDOrDefault(field(raw, "id", "consultantId", "consultant_id")),
		FirstName:    toString(field(raw, "firstName", "first_name")),
		LastName:     toString(field(raw, "lastName", "last_name")),
		Management:   toString(field(raw, "management", "managementCode", "management_code")),
		IsActive:     toBool(field(raw, "isActive", "is_active", "active")),
		IsBlocked:    toBool(field(raw, "isBlocked", "is_blocked", "blocked")),
		VacationMode: toBool(field(raw, "vacationMode", "vacation_mode", "onVacation", "on_vacation")),
	}
	if c.FirstName == "" && c.LastName == "" {
		c.FirstName = toString(field(raw, "name", "fullName", "full_name"))
	}
	return c
}

func (n *Normalizer) Educator(raw map[string]any) entity.Educator {
	e := entity.Educator{
		ID:           ParseIDOrDefault(field(raw, "id", "educatorId", "educator_id")),
		FirstName:    toString(field(raw, "firstName", "first_name")),
		LastName:     toString(field(raw, "lastName", "last_name")),
		CollegeID:    ParseIDOrDefault(field(raw, "collegeId", "college_id", "schoolId", "school_id", "college", "school")),
		Management:   toString(field(raw, "management", "managementCode", "management_code")),
		LastAccessAt: n.timestamp(field(raw, "lastAccessAt", "last_access_at", "lastLoginAt", "last_login_at")),
	}
	if e.FirstName == "" && e.LastName == "" {
		e.FirstName = toString(field(raw, "name", "fullName", "full_name"))
	}
	return e
}

func (n *Normalizer) College(raw map[string]any) entity.College {
	return entity.College{
		ID:         ParseIDOrDefault(field(raw, "id", "collegeId", "college_id")),
		Name:       toString(field(raw, "name", "collegeName", "college_name")),
		Management: toString(field(raw, "management", "managementCode", "management_code")),
	}
}

func (n *Normalizer) AuditEntry(raw map[string]any) entity.AuditEntry {
	return entity.AuditEntry{
		ID:        ParseIDOrDefault(field(raw, "id")),
		Action:    toString(field(raw, "action", "description", "message")),
		Entity:    toString(field(raw, "entity", "entityType", "entity_type")),
		User:      toString(field(raw, "user", "userName", "user_name", "username")),
		CreatedAt: n.timestamp(field(raw, "createdAt", "created_at")),
	}
}

func (n *Normalizer) Visits(raw []map[string]any) []entity.Visit {
	return normalizeAll(raw, n.Visit)
}

func (n *Normalizer) Consultants(raw []map[string]any) []entity.Consultant {
	return normalizeAll(raw, n.Consultant)
}

func (n *Normalizer) Educators(raw []map[string]any) []entity.Educator {
	return normalizeAll(raw, n.Educator)
}

func (n *Normalizer) Colleges(raw []map[string]any) []entity.College {
	return normalizeAll(raw, n.College)
}

func (n *Normalizer) AuditEntries(raw []map[string]any) []entity.AuditEntry {
	return normalizeAll(raw, n.AuditEntry)
}

func normalizeAll[T any](raw []map[string]any, fn func(map[string]any) T) []T {
	out := make([]T, 0, len(raw))
	for _, r := range raw {
		out = append(out, fn(r))
	}
	return out
}

// field returns the first non-null value among the given keys.
func field(raw map[string]any, keys ...string) any {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return v
		}
	}
	return nil
}

func toString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case json.Number:
		return s.String()
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(s)
	default:
		return ""
	}
}

func toBool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "true", "1", "yes", "y", "t":
			return true
		}
		return false
	case json.Number:
		f, err := b.Float64()
		return err == nil && f != 0
	case float64:
		return b != 0
	default:
		return false
	}
}

var zonedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z0700",
	"2006-01-02 15:04:05Z07",
}

var localLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
}

// timestamp parses ISO-like strings and unix epoch numbers. Unparsable input
// yields the zero time.
func (n *Normalizer) timestamp(v any) time.Time {
	switch t := v.(type) {
	case string:
		return n.parseTime(t)
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return epoch(i)
		}
		// exponent forms such as 1.7604e12
		if f, err := t.Float64(); err == nil && f == math.Trunc(f) && f < math.MaxInt64 {
			return epoch(int64(f))
		}
	case float64:
		if t == math.Trunc(t) {
			return epoch(int64(t))
		}
	}
	return time.Time{}
}

func (n *Normalizer) parseTime(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}
	}
	for _, layout := range zonedLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	for _, layout := range localLayouts {
		if parsed, err := time.ParseInLocation(layout, value, n.loc); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// epoch reads values above 1e11 as milliseconds, smaller ones as seconds.
func epoch(v int64) time.Time {
	if v <= 0 {
		return time.Time{}
	}
	if v > 1e11 {
		return time.UnixMilli(v)
	}
	return time.Unix(v, 0)
}
