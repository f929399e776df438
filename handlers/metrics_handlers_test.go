package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobradar/api-gateway/internal/jobstore"
	"jobradar/api-gateway/internal/tiers"
	"jobradar/api-gateway/models"
)

func strPtr(s string) *string { return &s }

// stubStore serves canned rows so handler tests exercise the re-labeling
// without a live store.
type stubStore struct {
	total, complete int64
	budget          json.RawMessage
	skills          []jobstore.SkillDemandRow
	skillsErr       error
	countries       []jobstore.CountryRow
	activity        []models.ScrapedJob
}

func (s *stubStore) FetchPage(ctx context.Context, offset, limit int) ([]models.ScrapedJob, int64, error) {
	return []models.ScrapedJob{}, 0, nil
}

func (s *stubStore) FetchAllRaw(ctx context.Context, limit int) ([]byte, error) {
	return []byte("[]"), nil
}

func (s *stubStore) FetchClientActivity(ctx context.Context) ([]models.ScrapedJob, error) {
	return s.activity, nil
}

func (s *stubStore) TotalCounts(ctx context.Context) (int64, int64, error) {
	return s.total, s.complete, nil
}

func (s *stubStore) BudgetAnalysis(ctx context.Context) (json.RawMessage, error) {
	return s.budget, nil
}

func (s *stubStore) JobsOverTime(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage("[]"), nil
}

func (s *stubStore) OverallStats(ctx context.Context) (json.RawMessage, error) {
	return json.RawMessage("[]"), nil
}

func (s *stubStore) SkillsDemand(ctx context.Context) ([]jobstore.SkillDemandRow, error) {
	return s.skills, s.skillsErr
}

func (s *stubStore) ClientCountries(ctx context.Context) ([]jobstore.CountryRow, error) {
	return s.countries, nil
}

func metricsApp(store JobStore) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	h := NewApplicationHandler(store, nil, logger)

	app := fiber.New()
	metrics := app.Group("/api/v1/metrics")
	metrics.Get("/total-count", h.GetTotalCount)
	metrics.Get("/budget-analysis", h.GetBudgetAnalysis)
	metrics.Get("/skills-demand", h.GetSkillsDemand)
	metrics.Get("/client-countries", h.GetClientCountries)
	metrics.Get("/client-activity", h.GetClientActivity)
	return app
}

func performGet(t *testing.T, app *fiber.App, path string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestGetTotalCount(t *testing.T) {
	app := metricsApp(&stubStore{total: 1234, complete: 987})

	status, body := performGet(t, app, "/api/v1/metrics/total-count")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"total": 1234, "complete": 987}`, string(body))
}

func TestGetBudgetAnalysis_PassesRowsThrough(t *testing.T) {
	rows := `[{"budget_range": "$0-$100", "job_count": 4}, {"budget_range": "$100-$500", "job_count": 9}]`
	app := metricsApp(&stubStore{budget: json.RawMessage(rows)})

	status, body := performGet(t, app, "/api/v1/metrics/budget-analysis")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, fmt.Sprintf(`{"data": %s}`, rows), string(body))
}

func TestGetSkillsDemand_RelabelsRows(t *testing.T) {
	app := metricsApp(&stubStore{skills: []jobstore.SkillDemandRow{
		{Skill: "Python", DemandCount: 60},
		{Skill: "", DemandCount: 30},
		{Skill: "Stale", DemandCount: 0},
		{Skill: "Go", DemandCount: 10},
	}})

	status, body := performGet(t, app, "/api/v1/metrics/skills-demand")
	assert.Equal(t, http.StatusOK, status)

	var got struct {
		Data []SkillShare `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &got))

	require.Len(t, got.Data, 3, "zero-count rows are dropped")
	assert.Equal(t, SkillShare{Skill: "Python", Count: 60, Percentage: "60.0"}, got.Data[0])
	assert.Equal(t, SkillShare{Skill: "Unknown", Count: 30, Percentage: "30.0"}, got.Data[1])
	assert.Equal(t, SkillShare{Skill: "Go", Count: 10, Percentage: "10.0"}, got.Data[2])
}

func TestGetSkillsDemand_TruncatesToTopFifteen(t *testing.T) {
	rows := make([]jobstore.SkillDemandRow, 0, 20)
	for i := 0; i < 20; i++ {
		rows = append(rows, jobstore.SkillDemandRow{
			Skill:       fmt.Sprintf("Skill%02d", i),
			DemandCount: 5,
		})
	}
	app := metricsApp(&stubStore{skills: rows})

	status, body := performGet(t, app, "/api/v1/metrics/skills-demand")
	assert.Equal(t, http.StatusOK, status)

	var got struct {
		Data []SkillShare `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &got))

	require.Len(t, got.Data, 15)
	assert.Equal(t, "Skill00", got.Data[0].Skill)
	for _, share := range got.Data {
		// Shares are relative to all 20 rows, not just the 15 shown.
		assert.Equal(t, "5.0", share.Percentage)
	}
}

func TestGetSkillsDemand_StoreErrorYields500(t *testing.T) {
	app := metricsApp(&stubStore{skillsErr: fmt.Errorf("rpc get_skills_demand failed")})

	status, body := performGet(t, app, "/api/v1/metrics/skills-demand")
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.JSONEq(t, `{"status": "error", "message": "Failed to fetch skills demand metrics"}`, string(body))
}

func TestGetClientCountries_TruncatesToTopTwelve(t *testing.T) {
	rows := make([]jobstore.CountryRow, 0, 14)
	for i := 0; i < 14; i++ {
		rows = append(rows, jobstore.CountryRow{
			Country:  fmt.Sprintf("Country%02d", i),
			JobCount: 5,
		})
	}
	app := metricsApp(&stubStore{countries: rows})

	status, body := performGet(t, app, "/api/v1/metrics/client-countries")
	assert.Equal(t, http.StatusOK, status)

	var got struct {
		Data []CountryShare `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &got))

	require.Len(t, got.Data, 12)
	assert.Equal(t, "Country00", got.Data[0].Country)
	for _, share := range got.Data {
		assert.Equal(t, "7.1", share.Percentage, "share of all 14 rows")
	}
}

func TestGetClientActivity_ClassifiesAndExcludes(t *testing.T) {
	app := metricsApp(&stubStore{activity: []models.ScrapedJob{
		{
			ID:               1,
			ClientJobsPosted: strPtr("20"),
			ClientTotalSpent: strPtr("$10,000+"),
			ClientLocation:   strPtr("United States"),
		},
		{
			ID:               2,
			ClientJobsPosted: strPtr("2 jobs posted"),
			ClientTotalSpent: strPtr("$500"),
		},
		{
			ID:               3,
			ClientTotalSpent: strPtr("$900"),
		},
		{
			ID:               4,
			ClientJobsPosted: strPtr("5"),
			ClientTotalSpent: strPtr("No spend yet"),
		},
	}})

	status, body := performGet(t, app, "/api/v1/metrics/client-activity")
	assert.Equal(t, http.StatusOK, status)

	var got struct {
		Data []tiers.Classified `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &got))

	// Row 3 has no jobs-posted signal and row 4 parses to zero spend; both are
	// excluded rather than reported as low activity.
	require.Len(t, got.Data, 2)

	assert.Equal(t, "1", got.Data[0].ClientID)
	assert.Equal(t, "United States", got.Data[0].Location)
	assert.Equal(t, tiers.TierHighValue, got.Data[0].Category)

	assert.Equal(t, "2", got.Data[1].ClientID)
	assert.Equal(t, "Unknown", got.Data[1].Location, "missing location is labeled, not dropped")
	assert.Equal(t, tiers.TierLow, got.Data[1].Category)
}
