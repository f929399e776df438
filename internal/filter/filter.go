package filter

import (
	"strings"

	"jobradar/api-gateway/internal/normalize"
	"jobradar/api-gateway/models"
)

// CategoryAll disables the experience-level filter.
const CategoryAll = "all"

// State holds one view session's filter inputs. It is pure client intent and
// carries no store state.
type State struct {
	SearchTerm string `json:"search_term"`
	Category   string `json:"category"`
}

// NewState normalizes raw query input into a State. An empty category means
// "all".
func NewState(searchTerm, category string) State {
	if category == "" {
		category = CategoryAll
	}
	return State{SearchTerm: searchTerm, Category: category}
}

// Matches evaluates a record against the filter state.
//
// An empty search term is vacuously true, so a present-but-empty search shows
// every record, including ones with null titles. A non-empty term matches if
// its lowercase form is a substring of the lowercased title, description,
// client location, or any normalized skill; a null field simply never matches,
// it does not disqualify the record.
//
// The category predicate is an exact, case-sensitive match against the
// record's experience level; "all" passes everything.
func Matches(job models.ScrapedJob, state State) bool {
	return matchesSearch(job, state.SearchTerm) && matchesCategory(job, state.Category)
}

// Apply narrows a fetched page to records matching state. This is a
// refinement of the visible window only, never a server-side re-query, so the
// caller must report the filtered count separately from the page total.
func Apply(jobs []models.ScrapedJob, state State) []models.ScrapedJob {
	filtered := make([]models.ScrapedJob, 0, len(jobs))
	for _, job := range jobs {
		if Matches(job, state) {
			filtered = append(filtered, job)
		}
	}
	return filtered
}

func matchesSearch(job models.ScrapedJob, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)

	if containsFold(job.Title, needle) ||
		containsFold(job.Description, needle) ||
		containsFold(job.ClientLocation, needle) {
		return true
	}
	for _, skill := range normalize.Skills(job.Skills) {
		if strings.Contains(strings.ToLower(skill), needle) {
			return true
		}
	}
	return false
}

func matchesCategory(job models.ScrapedJob, category string) bool {
	if category == CategoryAll {
		return true
	}
	return job.ExperienceLevel != nil && *job.ExperienceLevel == category
}

func containsFold(field *string, needle string) bool {
	return field != nil && strings.Contains(strings.ToLower(*field), needle)
}
