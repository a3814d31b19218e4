package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/tournio/tournaments-api/models"
	"github.com/tournio/tournaments-api/query"
	"github.com/tournio/tournaments-api/services"
)

func newTournamentRouter(svc services.TournamentService) http.Handler {
	h := NewTournamentHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Get("/Tournaments", h.List)
	r.Get("/Tournaments/{id}", h.GetByID)
	r.Post("/Tournaments", h.Create)
	r.Post("/Tournaments/collection", h.CreateCollection)
	r.Put("/Tournaments", h.Update)
	r.Patch("/Tournaments/{id}", h.Patch)
	r.Delete("/Tournaments/{id}", h.Delete)
	return r
}

func TestTournamentList_EmptyIsNoContent(t *testing.T) {
	router := newTournamentRouter(&mockTournamentService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Tournaments", nil))

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("204 must carry no body, got %q", rec.Body.String())
	}
}

func TestTournamentList_KeysetHeaders(t *testing.T) {
	svc := &mockTournamentService{
		ListFunc: func(ctx context.Context, params query.Params) ([]models.Tournament, error) {
			return []models.Tournament{{ID: 6, Title: "Tournament-6"}}, nil
		},
	}
	router := newTournamentRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Tournaments?pageSize=5&lastId=5", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Page-Size"); got != "5" {
		t.Errorf("Page-Size = %q, want 5", got)
	}
	if got := rec.Header().Get("Last-Id"); got != "5" {
		t.Errorf("Last-Id = %q, want 5", got)
	}
	if got := rec.Header().Get("Current-Page"); got != "" {
		t.Errorf("Current-Page must be absent in keyset mode, got %q", got)
	}
}

func TestTournamentList_OffsetHeaders(t *testing.T) {
	svc := &mockTournamentService{
		ListFunc: func(ctx context.Context, params query.Params) ([]models.Tournament, error) {
			return []models.Tournament{{ID: 11, Title: "Tournament-11"}}, nil
		},
	}
	router := newTournamentRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Tournaments?pageSize=5&currentPage=2", nil))

	if got := rec.Header().Get("Current-Page"); got != "2" {
		t.Errorf("Current-Page = %q, want 2", got)
	}
	if got := rec.Header().Get("Last-Id"); got != "" {
		t.Errorf("Last-Id must be absent in offset mode, got %q", got)
	}
}

func TestTournamentList_MalformedPageSize(t *testing.T) {
	router := newTournamentRouter(&mockTournamentService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Tournaments?pageSize=abc", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTournamentGetByID_MissingHasEmptyBody(t *testing.T) {
	router := newTournamentRouter(&mockTournamentService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Tournaments/999", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("404 must carry no body, got %q", rec.Body.String())
	}
}

func TestTournamentGetByID_PassesIncludeChildren(t *testing.T) {
	var gotInclude bool
	svc := &mockTournamentService{
		GetByIDFunc: func(ctx context.Context, id int, includeGames bool) (*models.Tournament, error) {
			gotInclude = includeGames
			return &models.Tournament{ID: id, Title: "Tournament-1"}, nil
		},
	}
	router := newTournamentRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Tournaments/1?includeChildren=true", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !gotInclude {
		t.Error("includeChildren=true should request eager loading")
	}
}

func TestTournamentCreate_ValidationFailureListsFields(t *testing.T) {
	svc := &mockTournamentService{
		CreateFunc: func(ctx context.Context, input services.TournamentCreateInput) (*models.Tournament, error) {
			return nil, &services.ValidationError{Fields: map[string]string{
				"title": "Title must be at least 5 characters",
			}}
		},
	}
	router := newTournamentRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/Tournaments", strings.NewReader(`{"title":"T-1"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "at least 5") {
		t.Errorf("body should name the failing rule, got %q", rec.Body.String())
	}
}

func TestTournamentCreate_DuplicateIdentityConflicts(t *testing.T) {
	svc := &mockTournamentService{
		CreateFunc: func(ctx context.Context, input services.TournamentCreateInput) (*models.Tournament, error) {
			return nil, services.ErrTournamentIDConflict
		},
	}
	router := newTournamentRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/Tournaments", strings.NewReader(`{"id":1,"title":"Tournament-1"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestTournamentCreate_DuplicateTitleIsBadRequest(t *testing.T) {
	svc := &mockTournamentService{
		CreateFunc: func(ctx context.Context, input services.TournamentCreateInput) (*models.Tournament, error) {
			return nil, services.ErrTournamentTitleTaken
		},
	}
	router := newTournamentRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/Tournaments", strings.NewReader(`{"title":"Tournament-1"}`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTournamentCreateCollection_AbortIsGeneric(t *testing.T) {
	svc := &mockTournamentService{
		CreateBatchFunc: func(ctx context.Context, inputs []services.TournamentCreateInput) ([]models.Tournament, error) {
			return nil, services.ErrBatchAborted
		},
	}
	router := newTournamentRouter(svc)

	rec := httptest.NewRecorder()
	body := `[{"title":"Tournament-1"},{"title":"Tournament-1"}]`
	req := httptest.NewRequest(http.MethodPost, "/Tournaments/collection", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "one or more items in the collection are invalid") {
		t.Errorf("expected the generic batch message, got %q", rec.Body.String())
	}
}

func TestTournamentPatch_InvalidDocument(t *testing.T) {
	svc := &mockTournamentService{
		PatchFunc: func(ctx context.Context, id int, doc []byte) (*models.Tournament, error) {
			return nil, services.ErrInvalidPatchDocument
		},
	}
	router := newTournamentRouter(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, "/Tournaments/1", strings.NewReader(`not json`))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestTournamentDelete_MissingHasEmptyBody(t *testing.T) {
	router := newTournamentRouter(&mockTournamentService{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/Tournaments/999", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("404 must carry no body, got %q", rec.Body.String())
	}
}

func TestTournamentDelete_ReturnsRemovedEntity(t *testing.T) {
	svc := &mockTournamentService{
		DeleteFunc: func(ctx context.Context, id int) (*models.Tournament, error) {
			return &models.Tournament{ID: id, Title: "Tournament-2"}, nil
		},
	}
	router := newTournamentRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/Tournaments/2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var got models.Tournament
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("response is not a tournament: %v", err)
	}
	if got.ID != 2 || got.Title != "Tournament-2" {
		t.Errorf("unexpected body: %+v", got)
	}
}

func TestTournamentList_UnknownFieldIsServerError(t *testing.T) {
	svc := &mockTournamentService{
		ListFunc: func(ctx context.Context, params query.Params) ([]models.Tournament, error) {
			return nil, query.ErrUnknownField
		},
	}
	router := newTournamentRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/Tournaments?filter[bogus]=x", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "bogus") {
		t.Errorf("internal detail must not leak, got %q", rec.Body.String())
	}
}
