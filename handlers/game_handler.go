package handlers

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/tournio/tournaments-api/query"
	"github.com/tournio/tournaments-api/services"
)

type GameHandler struct {
	service services.GameService
	logger  *slog.Logger
}

func NewGameHandler(service services.GameService, logger *slog.Logger) *GameHandler {
	return &GameHandler{service: service, logger: logger}
}

func (h *GameHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := query.ParseParams(r.URL.Query())
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	games, err := h.service.List(r.Context(), params)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if len(games) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	headers := http.Header{}
	for key, value := range query.PaginationHeaders(params) {
		headers.Set(key, value)
	}
	if err := writeJSON(w, http.StatusOK, games, headers); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *GameHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, game, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input services.GameCreateInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.service.Create(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, game, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *GameHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	var inputs []services.GameCreateInput
	if err := readJSON(w, r, &inputs); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	games, err := h.service.CreateBatch(r.Context(), inputs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, games, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *GameHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input services.GameEditInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.service.Update(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, game, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *GameHandler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	var inputs []services.GameEditInput
	if err := readJSON(w, r, &inputs); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	games, err := h.service.UpdateBatch(r.Context(), inputs)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, games, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *GameHandler) Patch(w http.ResponseWriter, r *http.Request) {
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

	game, err := h.service.Patch(r.Context(), id, doc)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, game, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}

func (h *GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	game, err := h.service.Delete(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, game, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}
