package performance

import (
	"reflect"
	"testing"

	"PerfDash/entity"
)

func scopeFixture() entity.Collections {
	return entity.Collections{
		Consultants: []entity.Consultant{
			{ID: 1, FirstName: "Ana", Management: "SUL"},
			{ID: 2, FirstName: "Bruno", Management: "NORTE"},
			{ID: 3, FirstName: "Caio"},
		},
		Colleges: []entity.College{
			{ID: 10, Name: "Escola Sul", Management: "SUL"},
			{ID: 20, Name: "Escola Norte", Management: "NORTE"},
			{ID: 30, Name: "Escola Sem Regiao"},
		},
		Educators: []entity.Educator{
			{ID: 100, Management: "SUL", CollegeID: 20},
			{ID: 101, CollegeID: 10},
			{ID: 102, CollegeID: 20},
			{ID: 103},
			{ID: 104, Management: "NORTE", CollegeID: 10},
		},
		Visits30: []entity.Visit{
			{ID: 1, ConsultantID: 1, SchoolID: 10},
			{ID: 2, ConsultantID: 2, SchoolID: 10},
			{ID: 3, ConsultantID: 1, SchoolID: 20},
			{ID: 4, ConsultantID: 2, SchoolID: 20},
			{ID: 5, ConsultantID: 0, SchoolID: 10},
			{ID: 6, ConsultantID: 3, SchoolID: 30},
		},
		VisitsWeek:  []entity.Visit{{ID: 1, ConsultantID: 1, SchoolID: 10}, {ID: 4, ConsultantID: 2, SchoolID: 20}},
		VisitsMonth: []entity.Visit{{ID: 2, ConsultantID: 2, SchoolID: 10}},
	}
}

func ids[T any](items []T, id func(T) int64) []int64 {
	out := make([]int64, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}
	return out
}

func visitIDs(v []entity.Visit) []int64 {
	return ids(v, func(v entity.Visit) int64 { return v.ID })
}

func TestFilterByScope_AllIsIdentity(t *testing.T) {
	in := scopeFixture()
	for _, scope := range []entity.Scope{{}, {Management: "all"}, {Management: " ALL "}} {
		out := FilterByScope(in, scope)
		if !reflect.DeepEqual(in, out) {
			t.Fatalf("scope %v should not change the collections", scope)
		}
	}
}

func TestFilterByScope_Management(t *testing.T) {
	out := FilterByScope(scopeFixture(), entity.Scope{Management: "SUL"})

	if got := ids(out.Consultants, func(c entity.Consultant) int64 { return c.ID }); !reflect.DeepEqual(got, []int64{1}) {
		t.Fatalf("consultants: got %v", got)
	}
	if got := ids(out.Colleges, func(c entity.College) int64 { return c.ID }); !reflect.DeepEqual(got, []int64{10}) {
		t.Fatalf("colleges: got %v", got)
	}
	// own management wins; management-less educators follow their college
	if got := ids(out.Educators, func(e entity.Educator) int64 { return e.ID }); !reflect.DeepEqual(got, []int64{100, 101}) {
		t.Fatalf("educators: got %v", got)
	}
	// consultant OR school in scope
	if got := visitIDs(out.Visits30); !reflect.DeepEqual(got, []int64{1, 2, 3, 5}) {
		t.Fatalf("visits30: got %v", got)
	}
	if got := visitIDs(out.VisitsWeek); !reflect.DeepEqual(got, []int64{1}) {
		t.Fatalf("visits week: got %v", got)
	}
	if got := visitIDs(out.VisitsMonth); !reflect.DeepEqual(got, []int64{2}) {
		t.Fatalf("visits month: got %v", got)
	}
}

func TestFilterByScope_MissingManagementNeverMatches(t *testing.T) {
	out := FilterByScope(scopeFixture(), entity.Scope{Management: ""})
	if len(out.Consultants) != 3 {
		t.Fatalf("empty scope management means all")
	}

	out = FilterByScope(scopeFixture(), entity.Scope{Management: "CENTRO"})
	if len(out.Consultants) != 0 || len(out.Colleges) != 0 || len(out.Educators) != 0 || len(out.Visits30) != 0 {
		t.Fatalf("unknown management should select nothing, got %+v", out)
	}
}

func TestFilterByScope_Consultant(t *testing.T) {
	out := FilterByScope(scopeFixture(), entity.Scope{Management: "SUL", ConsultantID: 2})
	if got := visitIDs(out.Visits30); !reflect.DeepEqual(got, []int64{2}) {
		t.Fatalf("visits30: got %v", got)
	}
	if len(out.VisitsWeek) != 0 {
		t.Fatalf("visits week: expected none, got %v", visitIDs(out.VisitsWeek))
	}

	all := FilterByScope(scopeFixture(), entity.Scope{ConsultantID: 1})
	if got := visitIDs(all.Visits30); !reflect.DeepEqual(got, []int64{1, 3}) {
		t.Fatalf("consultant filter under all managements: got %v", got)
	}
	if len(all.Consultants) != 3 {
		t.Fatalf("consultant filter applies to visits only")
	}
}

func TestFilterByScope_Idempotent(t *testing.T) {
	scopes := []entity.Scope{
		{},
		{Management: "SUL"},
		{Management: "NORTE", ConsultantID: 2},
		{ConsultantID: 3},
		{Management: "CENTRO"},
	}
	for _, scope := range scopes {
		once := FilterByScope(scopeFixture(), scope)
		twice := FilterByScope(once, scope)
		if !reflect.DeepEqual(once, twice) {
			t.Fatalf("scope %v is not idempotent:\nonce  %+v\ntwice %+v", scope, once, twice)
		}
	}
}

func TestFilterByScope_DoesNotMutateInput(t *testing.T) {
	in := scopeFixture()
	before := scopeFixture()
	_ = FilterByScope(in, entity.Scope{Management: "SUL", ConsultantID: 1})
	if !reflect.DeepEqual(in, before) {
		t.Fatalf("input collections were modified")
	}
}
