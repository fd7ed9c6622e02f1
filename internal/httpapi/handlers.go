package httpapi

import (
	"encoding/json/v2"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/igdb-mirror/catalog-service/internal/domain"
	"github.com/igdb-mirror/catalog-service/internal/response"
)

// handleGetGame serves GET /igdb/game/{id}.
func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	idParam := chi.URLParam(r, "id")
	id, _ := strconv.ParseUint(idParam, 10, 64) // non-numeric id behaves the same as id==0 (§4.6)

	game, err := s.facade.GetGame(r.Context(), id)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, game, s.logger)
}

// handleSearch serves POST /igdb/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req *domain.SearchRequest
	if err := decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	if req != nil {
		if err := s.validator.Validate(*req); err != nil {
			response.HandleError(w, err, s.logger)
			return
		}
	}

	games, err := s.facade.Search(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, games, s.logger)
}

// handleGetMetadata serves POST /igdb/metadata.
func (s *Server) handleGetMetadata(w http.ResponseWriter, r *http.Request) {
	var req *domain.MetadataRequest
	if err := decodeBody(r, &req); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	game, err := s.facade.GetMetadata(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Data(w, game, s.logger)
}

// handleWebhook serves POST /igdb/webhooks/{entity}/{method}.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	entity := chi.URLParam(r, "entity")
	method := chi.URLParam(r, "method")
	secret := r.Header.Get("X-Secret")

	payload, err := readBody(r)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	if err := s.ingress.Handle(r.Context(), entity, method, secret, payload); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// decodeBody decodes a JSON request body into dst. An empty body decodes
// to a nil *T, matching §4.6's "null body" cases rather than erroring.
func decodeBody[T any](r *http.Request, dst **T) error {
	if r.Body == nil || r.ContentLength == 0 {
		*dst = nil
		return nil
	}
	var value T
	if err := json.UnmarshalRead(r.Body, &value); err != nil {
		*dst = nil
		return nil
	}
	*dst = &value
	return nil
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, nil
	}
	defer r.Body.Close()
	return io.ReadAll(r.Body)
}
