package performance

import (
	"PerfDash/entity"
	"PerfDash/impl/core"
	"PerfDash/internal/lib/api/cont"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

type fakeCore struct {
	scope   entity.Scope
	limit   int
	user    string
	err     error
	report  *entity.Report
	history []entity.PerformanceRun
}

func (f *fakeCore) Performance(scope entity.Scope) (*entity.Report, error) {
	f.scope = scope
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func (f *fakeCore) ExportCSV(scope entity.Scope) ([]byte, string, error) {
	f.scope = scope
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("secao;chave;valor\n"), "performance-rede-20261015.csv", nil
}

func (f *fakeCore) Refresh(_ context.Context, trigger, user string) (*entity.PerformanceRun, error) {
	f.user = user
	if f.err != nil {
		return nil, f.err
	}
	return &entity.PerformanceRun{ID: "run-1", Trigger: trigger, User: user}, nil
}

func (f *fakeCore) History(limit int) ([]entity.PerformanceRun, error) {
	f.limit = limit
	return f.history, f.err
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

func TestGetPerformance_Scope(t *testing.T) {
	fc := &fakeCore{report: &entity.Report{Alerts: []string{"ok"}}}
	cases := []struct {
		query string
		code  int
		scope entity.Scope
	}{
		{"", http.StatusOK, entity.Scope{}},
		{"?management=SUL&consultant=7", http.StatusOK, entity.Scope{Management: "SUL", ConsultantID: 7}},
		{"?management=all&consultant=all", http.StatusOK, entity.Scope{Management: "all"}},
		{"?consultant=abc", http.StatusBadRequest, entity.Scope{}},
		{"?consultant=-3", http.StatusBadRequest, entity.Scope{}},
	}
	for _, tc := range cases {
		fc.scope = entity.Scope{}
		rec := httptest.NewRecorder()
		GetPerformance(discard, fc)(rec, httptest.NewRequest(http.MethodGet, "/api/v1/performance"+tc.query, nil))
		if rec.Code != tc.code {
			t.Fatalf("%q: got status %d want %d", tc.query, rec.Code, tc.code)
		}
		env := decode(t, rec)
		if env.Success != (tc.code == http.StatusOK) {
			t.Fatalf("%q: unexpected envelope %+v", tc.query, env)
		}
		if tc.code == http.StatusOK && fc.scope != tc.scope {
			t.Fatalf("%q: got scope %+v want %+v", tc.query, fc.scope, tc.scope)
		}
	}
}

func TestGetPerformance_Errors(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{core.ErrNoSnapshot, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		GetPerformance(discard, &fakeCore{err: tc.err})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != tc.code {
			t.Fatalf("%v: got %d want %d", tc.err, rec.Code, tc.code)
		}
	}

	rec := httptest.NewRecorder()
	GetPerformance(discard, nil)(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("nil core: got %d", rec.Code)
	}
}

func TestExport(t *testing.T) {
	fc := &fakeCore{}
	rec := httptest.NewRecorder()
	Export(discard, fc)(rec, httptest.NewRequest(http.MethodGet, "/api/v1/performance/export?management=SUL", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv;charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); cd != `attachment; filename="performance-rede-20261015.csv"` {
		t.Fatalf("unexpected disposition %q", cd)
	}
	if rec.Body.String() != "secao;chave;valor\n" || fc.scope.Management != "SUL" {
		t.Fatalf("unexpected body %q or scope %+v", rec.Body.String(), fc.scope)
	}

	rec = httptest.NewRecorder()
	Export(discard, &fakeCore{err: core.ErrNoSnapshot})(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestRefresh(t *testing.T) {
	fc := &fakeCore{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/performance/refresh", nil)
	req = req.WithContext(cont.PutUser(req.Context(), &entity.UserAuth{Username: "ana", Token: "k"}))

	rec := httptest.NewRecorder()
	Refresh(discard, fc)(rec, req)
	if rec.Code != http.StatusOK || fc.user != "ana" {
		t.Fatalf("unexpected status %d user %q", rec.Code, fc.user)
	}
	var run entity.PerformanceRun
	if err := json.Unmarshal(decode(t, rec).Data, &run); err != nil || run.Trigger != entity.TriggerManual {
		t.Fatalf("unexpected run %+v %v", run, err)
	}

	rec = httptest.NewRecorder()
	Refresh(discard, &fakeCore{err: core.ErrStaleSnapshot})(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestHistory(t *testing.T) {
	fc := &fakeCore{history: []entity.PerformanceRun{{ID: "a"}, {ID: "b"}}}
	rec := httptest.NewRecorder()
	History(discard, fc)(rec, httptest.NewRequest(http.MethodGet, "/?limit=2", nil))
	if rec.Code != http.StatusOK || fc.limit != 2 {
		t.Fatalf("unexpected status %d limit %d", rec.Code, fc.limit)
	}
	var runs []entity.PerformanceRun
	if err := json.Unmarshal(decode(t, rec).Data, &runs); err != nil || len(runs) != 2 {
		t.Fatalf("unexpected runs %+v %v", runs, err)
	}

	rec = httptest.NewRecorder()
	History(discard, fc)(rec, httptest.NewRequest(http.MethodGet, "/?limit=x", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
