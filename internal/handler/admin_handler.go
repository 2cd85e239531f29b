package handler

import (
	"net/http"

	"librosrec/internal/service"

	"github.com/go-chi/chi/v5"
)

// AdminMaintenanceHandler expone endpoints de mantenimiento.
type AdminMaintenanceHandler struct {
	svc *service.AdminService
}

func NewAdminMaintenanceHandler(svc *service.AdminService) *AdminMaintenanceHandler {
	return &AdminMaintenanceHandler{svc: svc}
}

// MountAdminMaintenanceRoutes cuelga las rutas de mantenimiento en el router
// (ya protegido con JWT + AdminOnly).
func MountAdminMaintenanceRoutes(r chi.Router, h *AdminMaintenanceHandler) {
	r.Get("/admin/maintenance/dataset/summary", h.GetDatasetSummary)
	r.Post("/admin/maintenance/cache/flush", h.FlushCache)
}

// @Summary Resumen del dataset en memoria
// @Description Tamaños de catálogos, dimensiones de matrices, tablas por usuario y pools de popularidad.
// @Tags admin-maintenance
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.AdminDatasetSummary
// @Router /admin/maintenance/dataset/summary [get]
func (h *AdminMaintenanceHandler) GetDatasetSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.GetDatasetSummary())
}

// @Summary Invalida el cache de recomendaciones en Redis
// @Tags admin-maintenance
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.AdminCacheFlushResult
// @Failure 500 {string} string "error interno"
// @Router /admin/maintenance/cache/flush [post]
func (h *AdminMaintenanceHandler) FlushCache(w http.ResponseWriter, r *http.Request) {
	res, err := h.svc.FlushCache(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
