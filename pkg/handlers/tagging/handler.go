package tagging

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/de-tools/apn-tagger/pkg/adapters"
	"github.com/de-tools/apn-tagger/pkg/models/api"
	"github.com/de-tools/apn-tagger/pkg/models/domain"
	"github.com/rs/zerolog"
)

// Runner executes one tagging pass. It always produces a summary; partial
// failures surface in the statistics, not as errors.
type Runner interface {
	Run(ctx context.Context, req domain.RunRequest) domain.RunSummary
}

type Handler struct {
	runner   Runner
	services []string
}

func NewHandler(runner Runner, services []string) *Handler {
	return &Handler{
		runner:   runner,
		services: services,
	}
}

// StartRun triggers a tagging pass. The request body is optional; an empty
// body runs with process-wide defaults. The response is always 200 with
// the aggregated summary, even when every resource failed to tag.
func (h *Handler) StartRun(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	var req api.RunRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error().Err(err).Msg("failed to decode run request")
			http.Error(w, "invalid request body", http.StatusBadRequest)
			return
		}
	}

	summary := h.runner.Run(ctx, adapters.MapRunRequestApiToDomain(req))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(adapters.MapRunSummaryDomainToApi(summary)); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode run summary")
	}
}

func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	logger := zerolog.Ctx(r.Context())

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(api.ServiceList{Services: h.services}); err != nil {
		logger.Error().
			Err(err).
			Msg("failed to encode service list")
	}
}
