// Package jobstore adapts the Supabase record store to the catalog's needs:
// exact-count paged windows over scraped_jobs, the unpaged export fetch, and
// the pre-aggregated metric rows computed by stored procedures. All
// aggregation happens in the database; this package only fetches and decodes.
package jobstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	postgrest "github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"jobradar/api-gateway/models"
)

const jobsTable = "scraped_jobs"

// Stored procedures backing the derived-metrics endpoints.
const (
	rpcTotalJobCount         = "get_total_job_count"
	rpcTotalCompleteJobCount = "get_total_complete_job_count"
	rpcBudgetAnalysis        = "get_budget_analysis"
	rpcSkillsDemand          = "get_skills_demand"
	rpcClientCountries       = "get_client_countries"
	rpcJobsOverTime          = "get_jobs_over_time"
	rpcOverallStats          = "get_overall_stats"
)

// SkillDemandRow is one row of the skill-demand histogram.
type SkillDemandRow struct {
	Skill       string `json:"skill"`
	DemandCount int64  `json:"demand_count"`
}

// CountryRow is one row of the client-geography histogram.
type CountryRow struct {
	Country  string `json:"country"`
	JobCount int64  `json:"job_count"`
}

// Store wraps the two Supabase clients: the full client for table queries and
// a bare PostgREST client for the aggregate RPCs.
type Store struct {
	db  *supa.Client
	rpc *postgrest.Client
}

// New builds a Store from already-initialized clients.
func New(db *supa.Client, rpc *postgrest.Client) *Store {
	return &Store{db: db, rpc: rpc}
}

// FetchPage returns one bounded window of jobs ordered by extraction time
// descending, together with the exact total count from the same round trip.
// This satisfies paging.Fetcher.
func (s *Store) FetchPage(ctx context.Context, offset, limit int) ([]models.ScrapedJob, int64, error) {
	body, count, err := s.db.From(jobsTable).
		Select("*", "exact", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Range(offset, offset+limit-1, "").
		Execute()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch job page at offset %d: %w", offset, err)
	}

	var jobs []models.ScrapedJob
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, 0, fmt.Errorf("failed to decode job page: %w", err)
	}
	if jobs == nil {
		jobs = []models.ScrapedJob{}
	}
	return jobs, count, nil
}

// FetchAllRaw returns the full ordered result set as the store's raw JSON
// body, optionally capped at limit rows. The export formatter consumes the
// body as-is so the store's column order survives into the CSV header.
func (s *Store) FetchAllRaw(ctx context.Context, limit int) ([]byte, error) {
	query := s.db.From(jobsTable).
		Select("*", "", false).
		Order("created_at", &postgrest.OrderOpts{Ascending: false})
	if limit > 0 {
		query = query.Limit(limit, "")
	}

	body, _, err := query.Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch jobs for export: %w", err)
	}
	return body, nil
}

// FetchClientActivity returns the jobs carrying both client activity signals,
// the input set for tier classification.
func (s *Store) FetchClientActivity(ctx context.Context) ([]models.ScrapedJob, error) {
	body, _, err := s.db.From(jobsTable).
		Select("*", "", false).
		Filter("client_jobs_posted", "not.is", "null").
		Filter("client_total_spent", "not.is", "null").
		Order("created_at", &postgrest.OrderOpts{Ascending: false}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to fetch client activity rows: %w", err)
	}

	var jobs []models.ScrapedJob
	if err := json.Unmarshal(body, &jobs); err != nil {
		return nil, fmt.Errorf("failed to decode client activity rows: %w", err)
	}
	return jobs, nil
}

// TotalCounts returns the overall and complete job counts from their RPCs.
func (s *Store) TotalCounts(ctx context.Context) (total, complete int64, err error) {
	if total, err = s.scalarRPC(rpcTotalJobCount); err != nil {
		return 0, 0, err
	}
	if complete, err = s.scalarRPC(rpcTotalCompleteJobCount); err != nil {
		return 0, 0, err
	}
	return total, complete, nil
}

// BudgetAnalysis returns the budget-range histogram rows untouched.
func (s *Store) BudgetAnalysis(ctx context.Context) (json.RawMessage, error) {
	return s.rowsRPC(rpcBudgetAnalysis)
}

// JobsOverTime returns the postings-over-time series rows untouched.
func (s *Store) JobsOverTime(ctx context.Context) (json.RawMessage, error) {
	return s.rowsRPC(rpcJobsOverTime)
}

// OverallStats returns the summary-count rows untouched.
func (s *Store) OverallStats(ctx context.Context) (json.RawMessage, error) {
	return s.rowsRPC(rpcOverallStats)
}

// SkillsDemand returns the skill-demand histogram, already sorted by the
// database.
func (s *Store) SkillsDemand(ctx context.Context) ([]SkillDemandRow, error) {
	raw, err := s.rowsRPC(rpcSkillsDemand)
	if err != nil {
		return nil, err
	}
	var rows []SkillDemandRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s rows: %w", rpcSkillsDemand, err)
	}
	return rows, nil
}

// ClientCountries returns the client-geography histogram, already sorted by
// the database.
func (s *Store) ClientCountries(ctx context.Context) ([]CountryRow, error) {
	raw, err := s.rowsRPC(rpcClientCountries)
	if err != nil {
		return nil, err
	}
	var rows []CountryRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode %s rows: %w", rpcClientCountries, err)
	}
	return rows, nil
}

// rowsRPC invokes a set-returning stored procedure and hands back the raw row
// array. A null result normalizes to an empty array.
func (s *Store) rowsRPC(name string) (json.RawMessage, error) {
	result := s.rpc.Rpc(name, "", nil)
	if s.rpc.ClientError != nil {
		return nil, fmt.Errorf("rpc %s failed: %w", name, s.rpc.ClientError)
	}
	trimmed := strings.TrimSpace(result)
	if trimmed == "" || trimmed == "null" {
		return json.RawMessage("[]"), nil
	}
	if !json.Valid([]byte(trimmed)) {
		return nil, fmt.Errorf("rpc %s returned invalid JSON", name)
	}
	return json.RawMessage(trimmed), nil
}

// scalarRPC invokes a stored procedure returning a single integer.
func (s *Store) scalarRPC(name string) (int64, error) {
	result := s.rpc.Rpc(name, "", nil)
	if s.rpc.ClientError != nil {
		return 0, fmt.Errorf("rpc %s failed: %w", name, s.rpc.ClientError)
	}
	n, err := strconv.ParseInt(strings.TrimSpace(result), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("rpc %s returned non-integer %q: %w", name, result, err)
	}
	return n, nil
}
