package models

import (
	"encoding/json"
)

// ScrapedJob represents one scraped marketplace posting in the scraped_jobs table.
// Almost every column is nullable in the store, so pointer fields are used
// throughout, and Skills/ClientReviews are JSONB columns whose shape varies
// between rows (array, JSON-encoded string, plain comma list). They are kept as
// json.RawMessage here and only decoded by the normalize package.
//
// Note that CreatedAt is the extraction timestamp, not the original posting
// date; PostedDate carries the latter and is unreliable. All ordering uses
// CreatedAt. Timestamps stay raw strings: the store has carried malformed
// values, and decoding a page must never fail over one of them. The normalize
// package turns them into relative labels.
type ScrapedJob struct {
	ID                     int64           `json:"id"`
	JobURL                 string          `json:"job_url"`
	JobID                  *string         `json:"job_id,omitempty"`
	CreatedAt              string          `json:"created_at"`
	UpdatedAt              *string         `json:"updated_at,omitempty"`
	Title                  *string         `json:"title,omitempty"`
	PostedDate             *string         `json:"posted_date,omitempty"`
	Location               *string         `json:"location,omitempty"`
	Description            *string         `json:"description,omitempty"`
	BudgetAmount           *string         `json:"budget_amount,omitempty"` // Free-form currency text
	BudgetType             *string         `json:"budget_type,omitempty"`   // e.g. "Fixed-price", "Hourly"
	ExperienceLevel        *string         `json:"experience_level,omitempty"`
	ProjectType            *string         `json:"project_type,omitempty"`
	Skills                 json.RawMessage `json:"skills,omitempty"` // JSONB, shape varies
	ProposalsCount         *string         `json:"proposals_count,omitempty"`
	LastViewedByClient     *string         `json:"last_viewed_by_client,omitempty"`
	InterviewingCount      *string         `json:"interviewing_count,omitempty"`
	InvitesSent            *string         `json:"invites_sent,omitempty"`
	UnansweredInvites      *string         `json:"unanswered_invites,omitempty"`
	ConnectsRequired       *string         `json:"connects_required,omitempty"`
	PaymentMethodVerified  *bool           `json:"payment_method_verified,omitempty"`
	ClientRating           *float64        `json:"client_rating,omitempty"` // 0-5
	ClientReviewsScore     *float64        `json:"client_reviews_score,omitempty"`
	ClientReviewsCount     *int            `json:"client_reviews_count,omitempty"`
	ClientLocation         *string         `json:"client_location,omitempty"`
	ClientJobsPosted       *string         `json:"client_jobs_posted,omitempty"`
	ClientTotalSpent       *string         `json:"client_total_spent,omitempty"` // e.g. "$5,000+"
	ClientTotalHires       *string         `json:"client_total_hires,omitempty"`
	ClientActiveHires      *string         `json:"client_active_hires,omitempty"`
	ClientMemberSince      *string         `json:"client_member_since,omitempty"`
	ClientHireRate         *string         `json:"client_hire_rate,omitempty"`
	ClientOpenJobs         *string         `json:"client_open_jobs,omitempty"`
	ClientAvgHourlyRate    *string         `json:"client_avg_hourly_rate,omitempty"`
	ClientTotalHours       *string         `json:"client_total_hours,omitempty"`
	ClientIndustry         *string         `json:"client_industry,omitempty"`
	ClientCompanySize      *string         `json:"client_company_size,omitempty"`
	ClientReviews          json.RawMessage `json:"client_reviews,omitempty"`          // JSONB
	ClientReviewJobLinks   json.RawMessage `json:"client_review_job_links,omitempty"` // JSONB
}
