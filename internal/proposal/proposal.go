// Package proposal builds the structured generation prompt for one job record
// and manages the lifecycle of the external generation call.
package proposal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"jobradar/api-gateway/internal/normalize"
)

// Details is the slice of a job record the prompt embeds. Every field may be
// absent; the prompt renders missing values as an explicit "N/A" token so the
// generator always sees a complete, uniformly shaped prompt.
type Details struct {
	Title           *string         `json:"title"`
	Description     *string         `json:"description"`
	BudgetAmount    *string         `json:"budget_amount"`
	BudgetType      *string         `json:"budget_type"`
	ExperienceLevel *string         `json:"experience_level"`
	Skills          json.RawMessage `json:"skills"`
	Location        *string         `json:"location"`
	ClientLocation  *string         `json:"client_location"`
}

// BuildPrompt renders the generation prompt. The layout is fixed; only the
// job fields vary.
func BuildPrompt(d Details) string {
	budgetType := ""
	if d.BudgetType != nil {
		budgetType = *d.BudgetType
	}

	skills := "N/A"
	if normalized := normalize.Skills(d.Skills); len(normalized) > 0 {
		skills = strings.Join(normalized, ", ")
	}

	return fmt.Sprintf(`You are an expert freelancer writing a compelling proposal for an Upwork job. Based on the following job details, write a professional, personalized proposal that:

1. Addresses the client's specific needs
2. Highlights relevant skills and experience
3. Shows understanding of the project
4. Is concise but comprehensive (2-3 paragraphs)
5. Includes a clear call to action

Job Details:
Title: %s
Description: %s
Budget: %s %s
Experience Level Required: %s
Skills Required: %s
Location: %s
Client Location: %s

Write a compelling proposal that stands out:`,
		orNA(d.Title),
		orNA(d.Description),
		orNA(d.BudgetAmount),
		budgetType,
		orNA(d.ExperienceLevel),
		skills,
		orNA(d.Location),
		orNA(d.ClientLocation),
	)
}

func orNA(field *string) string {
	if field == nil || *field == "" {
		return "N/A"
	}
	return *field
}

// State is the orchestrator's lifecycle position.
type State string

const (
	StateIdle    State = "idle"
	StatePending State = "pending"
	StateSuccess State = "success"
	StateError   State = "error"
)

// FallbackError is surfaced when the upstream failure carries no message of
// its own.
const FallbackError = "Failed to generate proposal. Please try again."

// Generator is the external text-generation collaborator.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Orchestrator runs one generation at a time. A fresh invocation supersedes
// any in-flight one: the earlier call still completes and returns to its own
// caller, but only the latest invocation may write the shared state
// (last-write-wins, no hard cancellation). Failed generations are reported,
// never retried.
type Orchestrator struct {
	gen Generator

	mu     sync.Mutex
	seq    uint64
	state  State
	text   string
	errMsg string
}

// NewOrchestrator returns an idle orchestrator.
func NewOrchestrator(gen Generator) *Orchestrator {
	return &Orchestrator{gen: gen, state: StateIdle}
}

// Generate builds the prompt for d and runs the generation call, tracking
// pending/success/error state across it.
func (o *Orchestrator) Generate(ctx context.Context, d Details) (string, error) {
	o.mu.Lock()
	o.seq++
	ticket := o.seq
	o.state = StatePending
	o.text = ""
	o.errMsg = ""
	o.mu.Unlock()

	text, err := o.gen.GenerateText(ctx, BuildPrompt(d))

	o.mu.Lock()
	defer o.mu.Unlock()
	if ticket == o.seq {
		if err != nil {
			o.state = StateError
			o.errMsg = err.Error()
			if o.errMsg == "" {
				o.errMsg = FallbackError
			}
		} else {
			o.state = StateSuccess
			o.text = text
		}
	}

	if err != nil {
		return "", err
	}
	return text, nil
}

// Snapshot returns the current state plus the result or error message that
// goes with it.
func (o *Orchestrator) Snapshot() (State, string, string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state, o.text, o.errMsg
}
