package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"jobradar/api-gateway/internal/proposal"
	"jobradar/api-gateway/utils"
)

// GenerateProposalRequest is the expected body for a proposal generation
// call: the details of exactly one job record.
type GenerateProposalRequest struct {
	JobDetails *proposal.Details `json:"job_details" validate:"required"`
}

// GenerateProposal runs one generation call against the external text
// generator and returns the drafted proposal.
// POST /api/v1/generate-proposal
//
// Missing job fields are embedded in the prompt as "N/A" rather than omitted.
// Upstream failures surface the upstream message when there is one; nothing
// is retried here.
func (h *ApplicationHandler) GenerateProposal(c *fiber.Ctx) error {
	if h.Proposals == nil {
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Proposal generation is not configured")
	}

	req := new(GenerateProposalRequest)
	if err := c.BodyParser(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Cannot parse proposal request JSON")
	}
	if err := h.Validate.Struct(req); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), "; "))
	}

	text, err := h.Proposals.Generate(c.Context(), *req.JobDetails)
	if err != nil {
		h.Logger.WithField("error", err.Error()).Error("Proposal generation failed")
		message := err.Error()
		if message == "" {
			message = proposal.FallbackError
		}
		return utils.RespondWithError(c, fiber.StatusBadGateway, message)
	}

	h.Logger.WithField("proposal_len", len(text)).Info("Generated proposal")
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{"proposal": text})
}
