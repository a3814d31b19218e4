package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/tournio/tournaments-api/query"
	"github.com/tournio/tournaments-api/services"
)

type TournamentHandler struct {
	service services.TournamentService
	logger  *slog.Logger
}

func NewTournamentHandler(service services.TournamentService, logger *slog.Logger) *TournamentHandler {
	return &TournamentHandler{service: service, logger: logger}
}

// List resolves the query parameters against the tournament collection.
// An empty result is 204 with no body; a non-empty one carries the
// pagination headers derived from the same parameters.
func (h *TournamentHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := query.ParseParams(r.URL.Query())
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournaments, err := h.service.List(r.Context(), params)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if len(tournaments) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	headers := http.Header{}
	for key, value := range query.PaginationHeaders(params) {
		headers.Set(key, value)
	}
	if err := writeJSON(w, http.StatusOK, tournaments, headers); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *TournamentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	includeChildren := r.URL.Query().Get("includeChildren") == "true"

	tournament, err := h.service.GetByID(r.Context(), id, includeChildren)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, tournament, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *TournamentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.TournamentCreateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.service.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, tournament, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *TournamentHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var inputs []services.TournamentCreateInput
	if err := readJSON(w, r, &inputs); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournaments, err := h.service.CreateBatch(r.Context(), inputs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, tournaments, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *TournamentHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input services.TournamentEditInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.service.Update(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, tournament, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *TournamentHandler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	var inputs []services.TournamentEditInput
	if err := readJSON(w, r, &inputs); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournaments, err := h.service.UpdateBatch(r.Context(), inputs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, tournaments, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *TournamentHandler) Patch(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	doc, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1_048_576))
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.service.Patch(r.Context(), id, doc)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, tournament, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *TournamentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	tournament, err := h.service.Delete(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, tournament, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}
