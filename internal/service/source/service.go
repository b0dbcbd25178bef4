package source

import (
	"PerfDash/entity"
	"PerfDash/internal/config"
	"PerfDash/internal/lib/sl"
	"PerfDash/internal/performance"
	"context"
	"fmt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/errgroup"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	periodLast30 = "last30"
	periodMonth  = "month"
	periodWeek   = "week"

	maxBodySize = 32 << 20
)

type Service struct {
	baseURL    *url.URL
	paths      paths
	auditLimit int
	client     *http.Client
	transport  *http.Transport
	normalizer *performance.Normalizer
	log        *slog.Logger
}

type paths struct {
	visits      string
	consultants string
	educators   string
	colleges    string
	audit       string
}

// NewSourceService builds the upstream client. With source.client_id set the
// requests use OAuth2 client credentials; otherwise source.token is sent as a
// static bearer token.
func NewSourceService(conf *config.Config, logger *slog.Logger) (*Service, error) {
	if conf.Source.BaseURL == "" {
		return nil, fmt.Errorf("source base url is not set")
	}
	base, err := url.Parse(conf.Source.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse source base url: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	plain := &http.Client{Transport: transport, Timeout: conf.Source.Timeout}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, plain)

	client := plain
	switch {
	case conf.Source.ClientID != "":
		cc := clientcredentials.Config{
			ClientID:     conf.Source.ClientID,
			ClientSecret: conf.Source.ClientSecret,
			TokenURL:     conf.Source.TokenURL,
		}
		client = cc.Client(ctx)
		client.Timeout = conf.Source.Timeout
	case conf.Source.Token != "":
		client = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: conf.Source.Token}))
		client.Timeout = conf.Source.Timeout
	}

	return &Service{
		baseURL: base,
		paths: paths{
			visits:      conf.Source.Paths.Visits,
			consultants: conf.Source.Paths.Consultants,
			educators:   conf.Source.Paths.Educators,
			colleges:    conf.Source.Paths.Colleges,
			audit:       conf.Source.Paths.Audit,
		},
		auditLimit: conf.Source.AuditLimit,
		client:     client,
		transport:  transport,
		normalizer: performance.NewNormalizer(conf.Location()),
		log:        logger.With(sl.Module("source")),
	}, nil
}

// Close drops the idle upstream connections.
func (s *Service) Close() {
	s.transport.CloseIdleConnections()
}

type job struct {
	name  string
	path  string
	query url.Values
	apply func(records []map[string]any)
}

// Fetch loads every collection concurrently. A failing source leaves its
// collection empty and is listed in Snapshot.Failed; the returned error is
// set only when ctx ends before the fetch completes.
func (s *Service) Fetch(ctx context.Context) (*entity.Snapshot, error) {
	snap := &entity.Snapshot{}
	n := s.normalizer

	jobs := []job{
		{entity.SourceVisits30, s.paths.visits, period(periodLast30), func(r []map[string]any) { snap.Visits30 = n.Visits(r) }},
		{entity.SourceVisitsMonth, s.paths.visits, period(periodMonth), func(r []map[string]any) { snap.VisitsMonth = n.Visits(r) }},
		{entity.SourceVisitsWeek, s.paths.visits, period(periodWeek), func(r []map[string]any) { snap.VisitsWeek = n.Visits(r) }},
		{entity.SourceConsultants, s.paths.consultants, nil, func(r []map[string]any) { snap.Consultants = n.Consultants(r) }},
		{entity.SourceEducators, s.paths.educators, nil, func(r []map[string]any) { snap.Educators = n.Educators(r) }},
		{entity.SourceColleges, s.paths.colleges, nil, func(r []map[string]any) { snap.Colleges = n.Colleges(r) }},
		{entity.SourceAudit, s.paths.audit, url.Values{"limit": {strconv.Itoa(s.auditLimit)}}, func(r []map[string]any) { snap.Audit = n.AuditEntries(r) }},
	}

	failed := make([]bool, len(jobs))
	var g errgroup.Group
	for i, j := range jobs {
		i, j := i, j // per-iteration copies (go.mod targets go 1.21)
		g.Go(func() error {
			records, err := s.get(ctx, j.name, j.path, j.query)
			if err != nil {
				s.log.With(
					slog.String("source", j.name),
					sl.Err(err),
				).Warn("fetch source")
				failed[i] = true
				return nil
			}
			j.apply(records)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch cancelled: %w", err)
	}

	for i, f := range failed {
		if f {
			snap.Failed = append(snap.Failed, jobs[i].name)
		}
	}
	snap.FetchedAt = time.Now()
	return snap, nil
}

func period(p string) url.Values {
	return url.Values{"period": {p}}
}

func (s *Service) get(ctx context.Context, name, path string, query url.Values) ([]map[string]any, error) {
	u := s.baseURL.JoinPath(path)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	status := 0
	size := 0
	t := time.Now()
	defer func() {
		s.log.With(
			slog.String("source", name),
			slog.String("url", u.String()),
			slog.Int("status", status),
			slog.Int("size", size),
			slog.Duration("duration", time.Since(t)),
		).Debug("upstream request")
	}()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)
	status = resp.StatusCode

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	size = len(body)

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status: %d", resp.StatusCode)
	}

	records, err := performance.DecodeEnvelope(body)
	if err != nil {
		return nil, err
	}
	return records, nil
}
