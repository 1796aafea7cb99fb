package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"stargate/internal/person/models"
	"stargate/internal/platform/middleware"
	dErrors "stargate/pkg/domain-errors"
	"stargate/pkg/platform/httputil"
)

// Service defines the person operations the handler needs.
type Service interface {
	Create(ctx context.Context, name string) (*models.Person, error)
	Rename(ctx context.Context, name, newName string) (*models.Person, error)
	List(ctx context.Context, names ...string) ([]models.PersonAstronaut, error)
	GetByName(ctx context.Context, name string) (*models.PersonAstronaut, error)
}

// Handler serves the /person routes.
type Handler struct {
	logger *slog.Logger
	people Service
}

func New(people Service, logger *slog.Logger) *Handler {
	return &Handler{logger: logger, people: people}
}

// Register mounts the person routes on r.
func (h *Handler) Register(r chi.Router) {
	r.Get("/person", h.handleList)
	r.Get("/person/{name}", h.handleGetByName)
	r.Post("/person", h.handleCreate)
	r.Put("/person/{name}", h.handleRename)
}

// handleList returns all people. Repeating ?name= narrows the result.
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	people, err := h.people.List(ctx, r.URL.Query()["name"]...)
	if err != nil {
		h.writeError(ctx, w, "failed to list people", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PeopleResponse{
		Envelope: httputil.OK(http.StatusOK, ""),
		People:   toPeopleResponse(people),
	})
}

func (h *Handler) handleGetByName(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := h.people.GetByName(ctx, chi.URLParam(r, "name"))
	if err != nil {
		h.writeError(ctx, w, "failed to get person", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, GetPersonResponse{
		Envelope: httputil.OK(http.StatusOK, ""),
		Person:   toPersonResponse(*p),
	})
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreatePersonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	p, err := h.people.Create(ctx, req.Name)
	if err != nil {
		h.writeError(ctx, w, "failed to create person", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CreatePersonResponse{
		Envelope: httputil.OK(http.StatusOK, "Person successfully saved in the system"),
		ID:       p.ID,
	})
}

func (h *Handler) handleRename(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.RenamePersonRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	p, err := h.people.Rename(ctx, chi.URLParam(r, "name"), req.NewName)
	if err != nil {
		h.writeError(ctx, w, "failed to rename person", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CreatePersonResponse{
		Envelope: httputil.OK(http.StatusOK, "Person successfully updated"),
		ID:       p.ID,
	})
}

// writeError logs internal failures in full and writes the safe response.
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
