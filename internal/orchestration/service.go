// Package orchestration turns natural-language requests into project
// management operations. Requests flow through a deterministic keyword
// classifier first; unmatched text goes to a language-model pipeline
// (intent classification, entity extraction, action planning) whose
// every failure mode falls back to the deterministic path within the
// same request.
package orchestration

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/nhle/workspace-management/internal/ai"
	"github.com/nhle/workspace-management/internal/model"
	"github.com/nhle/workspace-management/internal/store"
)

// Options carries the pipeline tunables.
type Options struct {
	// ConfidenceThreshold is the minimum classification confidence the
	// language-model path needs before its intent is trusted.
	ConfidenceThreshold float64

	// ListLimit caps rendered list length before truncation.
	ListLimit int

	// HistoryLimit caps retained conversation turns per conversation.
	HistoryLimit int

	// ContextHistory is how many recent turns go into prompts.
	ContextHistory int
}

// DefaultOptions returns the standard tunables.
func DefaultOptions() Options {
	return Options{
		ConfidenceThreshold: 0.5,
		ListLimit:           10,
		HistoryLimit:        10,
		ContextHistory:      5,
	}
}

// OptionsFromConfig maps the application configuration onto pipeline
// options.
func OptionsFromConfig(cfg model.OrchestrationConfig) Options {
	return Options{
		ConfidenceThreshold: cfg.ConfidenceThreshold,
		ListLimit:           cfg.ListLimit,
		HistoryLimit:        cfg.HistoryLimit,
		ContextHistory:      cfg.ContextHistory,
	}
}

// Request is one orchestration call, already resolved to a workspace
// and requesting user by the boundary layer.
type Request struct {
	Workspace     model.Workspace
	User          model.User
	TextInput     string
	SelectedModel string
}

// Orchestrator drives the pipeline. The ai client may be nil when no
// provider is configured; every path then degrades to deterministic
// handling.
type Orchestrator struct {
	store  store.Store
	ai     ai.Client
	cache  *ConversationCache
	opts   Options
	logger zerolog.Logger
}

// New returns an Orchestrator. Zero-valued options fields are replaced
// with defaults, and a nil cache gets a fresh one sized to the history
// limit.
func New(st store.Store, client ai.Client, cache *ConversationCache, opts Options, logger zerolog.Logger) *Orchestrator {
	defaults := DefaultOptions()
	if opts.ConfidenceThreshold <= 0 {
		opts.ConfidenceThreshold = defaults.ConfidenceThreshold
	}
	if opts.ListLimit <= 0 {
		opts.ListLimit = defaults.ListLimit
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = defaults.HistoryLimit
	}
	if opts.ContextHistory <= 0 {
		opts.ContextHistory = defaults.ContextHistory
	}
	if cache == nil {
		cache = NewConversationCache(opts.HistoryLimit)
	}
	return &Orchestrator{
		store:  st,
		ai:     client,
		cache:  cache,
		opts:   opts,
		logger: logger,
	}
}

// Cache exposes the conversation cache, mainly for the boundary layer
// and tests.
func (o *Orchestrator) Cache() *ConversationCache {
	return o.cache
}

// Process runs one request to a terminal result. The selected model
// routes it: "orchestrator" (or empty) drives the full pipeline, any
// other value goes straight to that model's advisory fallback. Every
// terminal appends a turn to the conversation cache.
func (o *Orchestrator) Process(ctx context.Context, req Request) FormattedResponse {
	if req.SelectedModel == "" {
		req.SelectedModel = ModelOrchestrator
	}

	o.logger.Info().
		Str("workspace", req.Workspace.Slug).
		Str("model", req.SelectedModel).
		Msg("processing orchestration request")

	var result string
	if req.SelectedModel == ModelOrchestrator {
		result = o.handleOrchestration(ctx, req)
	} else {
		result = o.fallbackOrchestration(ctx, req, req.SelectedModel)
	}

	o.cache.Append(req.Workspace.ID, req.User.ID, Turn{
		UserInput:  req.TextInput,
		AIResponse: result,
		Timestamp:  time.Now(),
	})

	return FormatResponse(result)
}

// handleOrchestration is the dispatcher state machine: a keyword match
// is terminal; otherwise the language-model path runs, returning to
// keyword-driven handling on low confidence, extraction failure, or an
// invalid plan.
func (o *Orchestrator) handleOrchestration(ctx context.Context, req Request) string {
	if intent, ok := ClassifyKeywords(req.TextInput); ok {
		o.logger.Debug().Str("intent", string(intent)).Msg("keyword match")
		return o.executeKeywordIntent(ctx, req, intent)
	}

	history := o.cache.Recent(req.Workspace.ID, req.User.ID, o.opts.ContextHistory)
	workspaceCtx := o.workspaceContext(ctx, req, history)

	intentResult, err := o.classifyIntent(ctx, req.TextInput, workspaceCtx)
	if err != nil {
		o.logger.Debug().Err(err).Msg("intent classification failed")
		return o.keywordOrchestration(ctx, req)
	}

	o.logger.Debug().
		Str("intent", string(intentResult.Intent)).
		Float64("confidence", intentResult.Confidence).
		Msg("classified intent")

	if intentResult.Confidence < o.opts.ConfidenceThreshold && intentResult.Intent != IntentUnknown {
		o.logger.Debug().Msg("low confidence, deferring to keywords")
		return o.keywordOrchestration(ctx, req)
	}

	entities, err := o.extractEntities(ctx, req.TextInput, intentResult.Intent, workspaceCtx)
	if err != nil {
		o.logger.Debug().Err(err).Msg("entity extraction failed")
		return o.keywordOrchestration(ctx, req)
	}

	plan := o.planAction(intentResult.Intent, entities, req.TextInput)
	if !plan.Valid {
		o.logger.Debug().Strs("errors", plan.ValidationErrors).Msg("invalid action plan")
		return o.keywordOrchestration(ctx, req)
	}

	return o.execute(ctx, req, plan)
}
