package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"jobradar/api-gateway/internal/filter"
	"jobradar/api-gateway/internal/normalize"
	"jobradar/api-gateway/models"
	"jobradar/api-gateway/utils"
)

// JobView is one presentation row of the catalog: the raw record plus the
// normalized fields the view renders directly.
type JobView struct {
	models.ScrapedJob
	SkillsList   []string `json:"skills_list"`
	ExtractedAgo string   `json:"extracted_ago"`
}

// JobsPage is the catalog response body. TotalCount is the store's exact
// count; FilteredCount refines PageRecordCount and only describes this page,
// never the whole set.
type JobsPage struct {
	Jobs            []JobView `json:"jobs"`
	Page            int       `json:"page"`
	PageSize        int       `json:"page_size"`
	PageCount       int       `json:"page_count"`
	TotalCount      int64     `json:"total_count"`
	PageRecordCount int       `json:"page_record_count"`
	FilteredCount   int       `json:"filtered_count"`
	ShowingFrom     int64     `json:"showing_from"`
	ShowingTo       int64     `json:"showing_to"`
	HasPrev         bool      `json:"has_prev"`
	HasNext         bool      `json:"has_next"`
	SearchTerm      string    `json:"search_term"`
	Category        string    `json:"category"`
}

// GetJobs serves one catalog page.
// GET /api/v1/jobs?page=&search=&experience_level=
//
// The page is fetched with an exact total count, then narrowed in memory by
// the search/category predicate. Filtering refines the fetched window only;
// the response reports the filtered count separately from the page total.
func (h *ApplicationHandler) GetJobs(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	state := filter.NewState(c.Query("search"), c.Query("experience_level"))

	records, window, err := h.Catalog.FetchPage(c.Context(), page)
	if err != nil {
		h.Logger.WithFields(map[string]interface{}{
			"page":  page,
			"error": err.Error(),
		}).Error("Failed to fetch job page")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not retrieve jobs")
	}

	filtered := filter.Apply(records, state)

	now := time.Now()
	views := make([]JobView, 0, len(filtered))
	for _, job := range filtered {
		views = append(views, JobView{
			ScrapedJob:   job,
			SkillsList:   normalize.Skills(job.Skills),
			ExtractedAgo: normalize.RelativeTime(job.CreatedAt, now),
		})
	}

	h.Logger.WithFields(map[string]interface{}{
		"page":           window.Page,
		"page_count":     window.PageCount(),
		"total_count":    window.TotalCount,
		"filtered_count": len(filtered),
	}).Info("Served job catalog page")

	return utils.RespondWithJSON(c, fiber.StatusOK, JobsPage{
		Jobs:            views,
		Page:            window.Page,
		PageSize:        window.PageSize,
		PageCount:       window.PageCount(),
		TotalCount:      window.TotalCount,
		PageRecordCount: len(records),
		FilteredCount:   len(filtered),
		ShowingFrom:     window.ShowingFrom(),
		ShowingTo:       window.ShowingTo(),
		HasPrev:         window.HasPrev(),
		HasNext:         window.HasNext(),
		SearchTerm:      state.SearchTerm,
		Category:        state.Category,
	})
}
