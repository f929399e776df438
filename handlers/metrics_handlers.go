package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"jobradar/api-gateway/internal/normalize"
	"jobradar/api-gateway/internal/tiers"
	"jobradar/api-gateway/utils"
)

// The metrics endpoints never compute aggregates themselves; the database's
// stored procedures do. Handlers here fetch the pre-aggregated rows and, for
// the chart-shaped endpoints, re-label them into presentation rows.

// GetTotalCount serves the exact catalog totals.
// GET /api/v1/metrics/total-count
func (h *ApplicationHandler) GetTotalCount(c *fiber.Ctx) error {
	total, complete, err := h.Store.TotalCounts(c.Context())
	if err != nil {
		h.Logger.WithField("error", err.Error()).Error("Failed to fetch job counts")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to fetch job counts")
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"total":    total,
		"complete": complete,
	})
}

// GetOverallStats passes the summary rows through untouched.
// GET /api/v1/metrics/overall-stats
func (h *ApplicationHandler) GetOverallStats(c *fiber.Ctx) error {
	return h.passthroughMetric(c, "overall stats", h.Store.OverallStats)
}

// GetBudgetAnalysis passes the budget-range histogram through untouched.
// GET /api/v1/metrics/budget-analysis
func (h *ApplicationHandler) GetBudgetAnalysis(c *fiber.Ctx) error {
	return h.passthroughMetric(c, "budget analysis", h.Store.BudgetAnalysis)
}

// GetJobsOverTime passes the postings-over-time series through untouched.
// GET /api/v1/metrics/jobs-over-time
func (h *ApplicationHandler) GetJobsOverTime(c *fiber.Ctx) error {
	return h.passthroughMetric(c, "jobs over time", h.Store.JobsOverTime)
}

func (h *ApplicationHandler) passthroughMetric(c *fiber.Ctx, name string, fetch func(context.Context) (json.RawMessage, error)) error {
	rows, err := fetch(c.Context())
	if err != nil {
		h.Logger.WithFields(map[string]interface{}{
			"metric": name,
			"error":  err.Error(),
		}).Error("Failed to fetch metric rows")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, fmt.Sprintf("Failed to fetch %s metrics", name))
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": rows})
}

// SkillShare is a skill-demand histogram row re-labeled for rendering:
// demand count plus share of the total demand across all returned rows.
type SkillShare struct {
	Skill      string `json:"skill"`
	Count      int64  `json:"count"`
	Percentage string `json:"percentage"`
}

// GetSkillsDemand serves the top 15 in-demand skills with their share of
// total demand. Rows arrive pre-sorted from the store.
// GET /api/v1/metrics/skills-demand
func (h *ApplicationHandler) GetSkillsDemand(c *fiber.Ctx) error {
	rows, err := h.Store.SkillsDemand(c.Context())
	if err != nil {
		h.Logger.WithField("error", err.Error()).Error("Failed to fetch skills demand")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to fetch skills demand metrics")
	}

	var total int64
	for _, row := range rows {
		total += row.DemandCount
	}

	top := rows
	if len(top) > 15 {
		top = top[:15]
	}

	shares := make([]SkillShare, 0, len(top))
	for _, row := range top {
		if row.DemandCount <= 0 {
			continue
		}
		skill := row.Skill
		if skill == "" {
			skill = "Unknown"
		}
		shares = append(shares, SkillShare{
			Skill:      skill,
			Count:      row.DemandCount,
			Percentage: percentage(row.DemandCount, total),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": shares})
}

// CountryShare is a client-geography histogram row re-labeled for rendering.
type CountryShare struct {
	Country    string `json:"country"`
	Count      int64  `json:"count"`
	Percentage string `json:"percentage"`
}

// GetClientCountries serves the top 12 client countries with their share of
// all located jobs.
// GET /api/v1/metrics/client-countries
func (h *ApplicationHandler) GetClientCountries(c *fiber.Ctx) error {
	rows, err := h.Store.ClientCountries(c.Context())
	if err != nil {
		h.Logger.WithField("error", err.Error()).Error("Failed to fetch client countries")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to fetch client country metrics")
	}

	var total int64
	for _, row := range rows {
		total += row.JobCount
	}

	top := rows
	if len(top) > 12 {
		top = top[:12]
	}

	shares := make([]CountryShare, 0, len(top))
	for _, row := range top {
		shares = append(shares, CountryShare{
			Country:    row.Country,
			Count:      row.JobCount,
			Percentage: percentage(row.JobCount, total),
		})
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": shares})
}

// GetClientActivity classifies client activity into relative tiers: each
// record's jobs-posted and parsed total-spend magnitudes are measured against
// the maxima observed in this snapshot. Records missing either signal are
// excluded rather than reported as low activity.
// GET /api/v1/metrics/client-activity
func (h *ApplicationHandler) GetClientActivity(c *fiber.Ctx) error {
	jobs, err := h.Store.FetchClientActivity(c.Context())
	if err != nil {
		h.Logger.WithField("error", err.Error()).Error("Failed to fetch client activity rows")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Failed to fetch client activity metrics")
	}

	points := make([]tiers.Point, 0, len(jobs))
	for _, job := range jobs {
		if job.ClientJobsPosted == nil || job.ClientTotalSpent == nil {
			continue
		}
		location := "Unknown"
		if job.ClientLocation != nil && *job.ClientLocation != "" {
			location = *job.ClientLocation
		}
		points = append(points, tiers.Point{
			ClientID:   strconv.FormatInt(job.ID, 10),
			Location:   location,
			JobsPosted: normalize.LeadingInt(*job.ClientJobsPosted),
			TotalSpent: normalize.CurrencyMagnitude(*job.ClientTotalSpent),
		})
	}

	classified := tiers.Classify(points)

	h.Logger.WithFields(map[string]interface{}{
		"fetched":    len(jobs),
		"classified": len(classified),
	}).Info("Served client activity tiers")

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"data": classified})
}

func percentage(part, total int64) string {
	if total <= 0 {
		return "0.0"
	}
	return fmt.Sprintf("%.1f", float64(part)/float64(total)*100)
}
