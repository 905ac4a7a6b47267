package admin

import (
	"net/http"

	"github.com/Rakhulsr/go-cosmetics/app/helpers"
	"github.com/Rakhulsr/go-cosmetics/app/services"
)

// AdminHandler serves /api/admin and the admin-only catalog writes. Every
// route is mounted behind AuthMiddleware and AdminAuthMiddleware.
type AdminHandler struct {
	admin   *services.AdminService
	catalog *services.CatalogService
	orders  *services.OrderService
}

func NewAdminHandler(admin *services.AdminService, catalog *services.CatalogService, orders *services.OrderService) *AdminHandler {
	return &AdminHandler{admin: admin, catalog: catalog, orders: orders}
}

func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.Stats(r.Context())
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, stats)
}

func (h *AdminHandler) ProductAnalytics(w http.ResponseWriter, r *http.Request) {
	rows, err := h.admin.ProductAnalytics(r.Context())
	if err != nil {
		helpers.RespondError(w, r, err)
		return
	}
	helpers.RespondJSON(w, http.StatusOK, rows)
}
