package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	"jobradar/api-gateway/models"
)

func strPtr(s string) *string { return &s }

func sampleJob() models.ScrapedJob {
	return models.ScrapedJob{
		ID:              1,
		Title:           strPtr("Senior React Developer"),
		Description:     strPtr("Build a dashboard with charts"),
		ClientLocation:  strPtr("United States"),
		ExperienceLevel: strPtr("Expert"),
		Skills:          json.RawMessage(`["React","Node.js"]`),
	}
}

func TestMatches_EmptyFilterMatchesEverything(t *testing.T) {
	state := NewState("", "")
	assert.Equal(t, CategoryAll, state.Category)

	assert.True(t, Matches(sampleJob(), state))

	// A record that is null almost everywhere still matches the empty filter.
	bare := models.ScrapedJob{ID: 2}
	assert.True(t, Matches(bare, state))
}

func TestMatches_SearchAcrossFields(t *testing.T) {
	job := sampleJob()

	assert.True(t, Matches(job, NewState("react", "")), "title, case-insensitive")
	assert.True(t, Matches(job, NewState("DASHBOARD", "")), "description")
	assert.True(t, Matches(job, NewState("united", "")), "client location")
	assert.True(t, Matches(job, NewState("node", "")), "normalized skill")
	assert.False(t, Matches(job, NewState("kubernetes", "")))
}

func TestMatches_SearchSkillsFromCommaList(t *testing.T) {
	job := sampleJob()
	job.Skills = json.RawMessage(`"Python, Django"`)
	assert.True(t, Matches(job, NewState("django", "")))
}

func TestMatches_NullFieldsNeverMatchButNeverExclude(t *testing.T) {
	job := sampleJob()
	job.Title = nil
	job.Description = nil
	job.Skills = nil
	// Term still matches via location even though the other fields are null.
	assert.True(t, Matches(job, NewState("states", "")))
	// And a non-matching term is simply a non-match, not an error.
	assert.False(t, Matches(job, NewState("react", "")))
}

func TestMatches_CategoryIsExactAndCaseSensitive(t *testing.T) {
	job := sampleJob()

	assert.True(t, Matches(job, NewState("", "Expert")))
	assert.False(t, Matches(job, NewState("", "expert")), "category match is case-sensitive")
	assert.False(t, Matches(job, NewState("", "Entry level")))

	job.ExperienceLevel = nil
	assert.False(t, Matches(job, NewState("", "Expert")))
	assert.True(t, Matches(job, NewState("", CategoryAll)))
}

func TestMatches_SearchAndCategoryAreANDed(t *testing.T) {
	job := sampleJob()
	assert.True(t, Matches(job, NewState("react", "Expert")))
	assert.False(t, Matches(job, NewState("react", "Intermediate")))
	assert.False(t, Matches(job, NewState("kubernetes", "Expert")))
}

func TestApply_RefinesPage(t *testing.T) {
	jobs := []models.ScrapedJob{
		sampleJob(),
		{ID: 2, Title: strPtr("Go backend engineer"), ExperienceLevel: strPtr("Intermediate")},
		{ID: 3},
	}

	all := Apply(jobs, NewState("", ""))
	assert.Len(t, all, 3)

	experts := Apply(jobs, NewState("", "Expert"))
	assert.Len(t, experts, 1)
	assert.Equal(t, int64(1), experts[0].ID)

	goJobs := Apply(jobs, NewState("go", ""))
	assert.Len(t, goJobs, 1)
	assert.Equal(t, int64(2), goJobs[0].ID)
}
