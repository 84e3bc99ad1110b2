package controllers

import (
	"net/http"

	"gestor/gestor/utils/jsonutils"
	"gestor/gestor/utils/types"
)

const (
	ServiceName    = "Gestor Familiar API"
	ServiceVersion = "1.0.0"
)

// HealthController answers liveness probes. It never touches the agent runtime.
type HealthController struct{}

func NewHealthController() *HealthController {
	return &HealthController{}
}

func (h *HealthController) Root(w http.ResponseWriter, r *http.Request) {
	jsonutils.WriteJSON(w, http.StatusOK, types.ServiceInfo{
		Status:  types.StatusHealthy,
		Service: ServiceName,
		Version: ServiceVersion,
	})
}

func (h *HealthController) HealthCheck(w http.ResponseWriter, r *http.Request) {
	jsonutils.WriteJSON(w, http.StatusOK, types.HealthStatus{Status: types.StatusHealthy})
}
