package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stargate/internal/duty/models"
	"stargate/internal/platform/middleware"
	dErrors "stargate/pkg/domain-errors"
	"stargate/pkg/platform/httputil"
)

// Service defines the duty operations the handler needs.
type Service interface {
	RecordDuty(ctx context.Context, req *models.RecordDutyRequest) (*models.RecordDutyResult, error)
	ListByName(ctx context.Context, name string) (*models.PersonDuties, error)
}

// Handler serves the /astronautduty routes.
type Handler struct {
	logger *slog.Logger
	duties Service
}

func New(duties Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, duties: duties}
}

// Register mounts the duty routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/astronautduty/{name}", h.handleListByName)
	r.Post("/astronautduty", h.handleRecordDuty)
}

func (h *Handler) handleListByName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	result, err := h.duties.ListByName(ctx, chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(ctx, w, "failed to list astronaut duties", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, DutiesByNameResponse{
		Envelope:        httputil.OK(http.StatusOK, ""),
		Person:          toPersonResponse(result.Person),
		AstronautDuties: toDutyResponses(result.Duties),
	})
}

func (h *Handler) handleRecordDuty(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.RecordDutyRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	result, err := h.duties.RecordDuty(ctx, req)
	if err != nil {
		h.writeError(ctx, w, "failed to record astronaut duty", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, RecordDutyResponse{
		Envelope: httputil.OK(http.StatusOK, result.Message),
		ID:       result.ID,
	})
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
			"error_type", "internal",
		)
	} else {
		h.logger.WarnContext(ctx, msg,
			"request_id", middleware.GetRequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
