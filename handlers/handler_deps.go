package handlers

import (
	"context"
	"encoding/json"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"jobradar/api-gateway/internal/jobstore"
	"jobradar/api-gateway/internal/paging"
	"jobradar/api-gateway/internal/proposal"
	"jobradar/api-gateway/models"
)

// JobStore is the record-store surface the handlers consume: paged windows,
// the export and activity fetches, and the pre-aggregated metric rows.
type JobStore interface {
	paging.Fetcher
	FetchAllRaw(ctx context.Context, limit int) ([]byte, error)
	FetchClientActivity(ctx context.Context) ([]models.ScrapedJob, error)
	TotalCounts(ctx context.Context) (total, complete int64, err error)
	BudgetAnalysis(ctx context.Context) (json.RawMessage, error)
	JobsOverTime(ctx context.Context) (json.RawMessage, error)
	OverallStats(ctx context.Context) (json.RawMessage, error)
	SkillsDemand(ctx context.Context) ([]jobstore.SkillDemandRow, error)
	ClientCountries(ctx context.Context) ([]jobstore.CountryRow, error)
}

var _ JobStore = (*jobstore.Store)(nil)

// ApplicationHandler holds the shared dependencies for all route handlers:
// the record store adapter, the page coordinator for the catalog view, the
// proposal orchestrator, and the ambient logger/validator.
type ApplicationHandler struct {
	Store     JobStore
	Catalog   *paging.Coordinator
	Proposals *proposal.Orchestrator
	Logger    *logrus.Logger
	Validate  *validator.Validate
}

// NewApplicationHandler wires an ApplicationHandler. The catalog coordinator
// is built here so it always fetches through the given store.
func NewApplicationHandler(store JobStore, proposals *proposal.Orchestrator, logger *logrus.Logger) *ApplicationHandler {
	return &ApplicationHandler{
		Store:     store,
		Catalog:   paging.NewCoordinator(store),
		Proposals: proposals,
		Logger:    logger,
		Validate:  validator.New(),
	}
}
