package handler

import (
	"net/http"

	"frontdesk/internal/passes/service"
	"frontdesk/internal/passes/validator"
	httputil "frontdesk/pkg/http"
	"frontdesk/pkg/logger"
	"frontdesk/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PassHandler struct {
	service   service.PassService
	validator *validator.RequestValidator
	log       *logger.Logger
}

func NewPassHandler(svc service.PassService, rv *validator.RequestValidator, log *logger.Logger) *PassHandler {
	return &PassHandler{
		service:   svc,
		validator: rv,
		log:       log,
	}
}

func (h *PassHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/passes", h.GetPass)
	router.GET("/api/v1/people/search", h.SearchPeople)
}

type passResponse struct {
	Source  string      `json:"source"`
	Pass    *model.Pass `json:"pass"`
	Matches int         `json:"matches,omitempty"`
}

type searchResponse struct {
	Results []model.SearchResult `json:"results"`
}

func (h *PassHandler) GetPass(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	kind, ident, err := h.validator.ParsePassQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, "GetPass", err)
		return
	}

	pass, matches, err := h.service.ResolvePass(r.Context(), kind, ident)
	if err != nil {
		h.writeError(w, "GetPass", err)
		return
	}

	resp := passResponse{Source: model.SourceNone, Pass: pass, Matches: matches}
	if pass != nil {
		resp.Source = pass.Source
	}
	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write pass response", "handler", "GetPass", "error", err)
	}
}

func (h *PassHandler) SearchPeople(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	kind, name, err := h.validator.ParseSearchQuery(r.URL.Query())
	if err != nil {
		h.writeError(w, "SearchPeople", err)
		return
	}

	results, err := h.service.SearchPeople(r.Context(), kind, name)
	if err != nil {
		h.writeError(w, "SearchPeople", err)
		return
	}
	if results == nil {
		results = []model.SearchResult{}
	}

	if err := httputil.WriteSuccess(w, searchResponse{Results: results}); err != nil {
		h.log.Error("failed to write search response", "handler", "SearchPeople", "error", err)
	}
}

func (h *PassHandler) writeError(w http.ResponseWriter, op string, err error) {
	if writeErr := httputil.WriteError(w, err); writeErr != nil {
		h.log.Error("failed to write error response", "handler", op, "error", writeErr)
	}
}
