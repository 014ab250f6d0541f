package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elegance/jewelry-catalog/internal/api/metrics"
	"github.com/elegance/jewelry-catalog/internal/core/ports"
)

// AdminHandler serves the main-admin account management routes.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// ListPending handles GET /api/admin/pending.
//
// @Summary      List admins awaiting approval
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Admin
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/pending [get]
func (h *AdminHandler) ListPending(c echo.Context) error {
	admins, err := h.service.ListPending(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admins)
}

// ListAll handles GET /api/admin/all.
//
// @Summary      List every admin
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Admin
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/all [get]
func (h *AdminHandler) ListAll(c echo.Context) error {
	admins, err := h.service.ListAll(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, admins)
}

// Approve handles PUT /api/admin/approve/:id.
//
// @Summary      Approve a pending admin
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Admin id"
// @Success      200  {object}  approveResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/approve/{id} [put]
func (h *AdminHandler) Approve(c echo.Context) error {
	admin, err := h.service.Approve(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}

	metrics.AdminDecisionsTotal.WithLabelValues("approve").Inc()
	return c.JSON(http.StatusOK, approveResponse{Message: "Admin approved successfully", Admin: admin})
}

// Reject handles DELETE /api/admin/reject/:id.
//
// @Summary      Reject a pending registration
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Admin id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/reject/{id} [delete]
func (h *AdminHandler) Reject(c echo.Context) error {
	if err := h.service.Reject(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}

	metrics.AdminDecisionsTotal.WithLabelValues("reject").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Admin registration rejected and removed"})
}

// Delete handles DELETE /api/admin/:id.
//
// @Summary      Delete an admin
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Admin id"
// @Success      200  {object}  messageResponse
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/{id} [delete]
func (h *AdminHandler) Delete(c echo.Context) error {
	actor, err := ctxClaims(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), *actor, c.Param("id")); err != nil {
		return err
	}

	metrics.AdminDecisionsTotal.WithLabelValues("delete").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Admin deleted successfully"})
}
