package handler

import (
	"net/http"

	"frontdesk/internal/passes/service"
	httputil "frontdesk/pkg/http"
	"frontdesk/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type HealthHandler struct {
	service service.PassService
	log     *logger.Logger
}

func NewHealthHandler(svc service.PassService, log *logger.Logger) *HealthHandler {
	return &HealthHandler{service: svc, log: log}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}

func (h *HealthHandler) Health(w http.ResponseWriter, _ *http.Request, _ httprouter.Params) {
	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Ready reports whether the upstream record API answers a minimal query.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := h.service.Ready(r.Context()); err != nil {
		h.log.Warn("Readiness probe failed", "error", err)
		_ = httputil.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	_ = httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
