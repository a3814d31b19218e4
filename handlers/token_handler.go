package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/tournio/tournaments-api/services"
)

type TokenHandler struct {
	service services.TokenService
	logger  *slog.Logger
}

func NewTokenHandler(service services.TokenService, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{service: service, logger: logger}
}

// Token implements the client-credentials grant. Credentials arrive as
// form fields, per the OAuth2 token endpoint convention.
func (h *TokenHandler) Token(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	grantType := r.PostForm.Get("grant_type")
	if grantType != "client_credentials" {
		badRequestResponse(w, r, errors.New("unsupported grant_type"))
		return
	}

	clientID := r.PostForm.Get("client_id")
	clientSecret := r.PostForm.Get("client_secret")

	resp, err := h.service.IssueClientCredentials(r.Context(), clientID, clientSecret)
	if err != nil {
		mapServiceErrorToHTTP(w, r, h.logger, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, resp, nil); err != nil {
		serverErrorResponse(w, r, h.logger, err)
	}
}
