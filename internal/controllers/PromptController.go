package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"dbpd/internal/models"
	"dbpd/internal/prompt"
	"dbpd/internal/providers"
	"dbpd/internal/services"

	json "github.com/goccy/go-json"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type PromptController struct {
	logger  providers.Logger
	service services.PromptServiceInterface
	cache   providers.CacheProviderInterface
}

func NewPromptController(logger providers.Logger, service services.PromptServiceInterface, cache providers.CacheProviderInterface) *PromptController {
	return &PromptController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (pc *PromptController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := pc.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	pc.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

type tickRequest struct {
	At time.Time `json:"at"`
}

type tickResponse struct {
	ActiveDays    int       `json:"active_days"`
	LastActiveDay time.Time `json:"last_active_day"`
}

// Tick records one "application became active" signal. The optional body
// carries the signal time for replayed events; an empty body means now.
func (pc *PromptController) Tick(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	at := time.Now()
	var payload tickRequest
	err := json.NewDecoder(r.Body).Decode(&payload)
	switch {
	case err == nil:
		if !payload.At.IsZero() {
			at = payload.At
		}
	case errors.Is(err, io.EOF):
		// no body
	default:
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	activity, err := pc.service.RecordTick(at)
	if err != nil {
		pc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Tick not persisted: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(tickResponse{
		ActiveDays:    activity.ActiveDays,
		LastActiveDay: activity.LastActiveDay,
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

type evaluateResponse struct {
	EvaluationID string `json:"evaluation_id"`
}

// Evaluate starts one evaluation cycle and answers immediately; the host
// follows up on GET /prompt to see whether a presentation came out of it.
func (pc *PromptController) Evaluate(w http.ResponseWriter, r *http.Request) {
	id, err := pc.service.TriggerEvaluation(time.Now())
	if err != nil {
		if errors.Is(err, prompt.ErrEvaluationInProgress) {
			http.Error(w, "Conflict", http.StatusConflict)
			return
		}
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(evaluateResponse{EvaluationID: id})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write(gson)
}

// GetPrompt exposes the presentation currently waiting for the host UI.
func (pc *PromptController) GetPrompt(w http.ResponseWriter, r *http.Request) {
	pending, ok := pc.service.PendingPrompt()
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	gson, err := json.Marshal(pending)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

type outcomeRequest struct {
	ID      string `json:"id"`
	Outcome string `json:"outcome"`
}

// ResolvePrompt delivers the user's terminal reaction to the pending
// presentation and releases the parked evaluation cycle.
func (pc *PromptController) ResolvePrompt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)

	var payload outcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	outcome, err := models.ParseOutcome(payload.Outcome)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	switch err := pc.service.ResolvePrompt(payload.ID, outcome); {
	case err == nil:
		w.WriteHeader(http.StatusNoContent)
	case errors.Is(err, providers.ErrUnknownPrompt):
		http.Error(w, "Not Found", http.StatusNotFound)
	case errors.Is(err, providers.ErrNoPendingPrompt):
		http.Error(w, "Conflict", http.StatusConflict)
	default:
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}

// Status serves the engine snapshot. The cache key carries the counters
// that move interactively, so a cached entry can only be stale in the
// slow-moving inputs covered by the cache TTL.
func (pc *PromptController) Status(w http.ResponseWriter, r *http.Request) {
	key := fmt.Sprintf("status:%d:%d:%s", pc.service.ActiveDays(), pc.service.TimesShown(), pc.service.CoordinatorState())
	pc.serveFromCacheOrCompute(w, key, func() (any, error) {
		return pc.service.Snapshot(), nil
	})
}

// Reset clears the activity counter. Administrative endpoint.
func (pc *PromptController) Reset(w http.ResponseWriter, r *http.Request) {
	if err := pc.service.ResetActivity(); err != nil {
		pc.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Activity reset failed: %v", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
