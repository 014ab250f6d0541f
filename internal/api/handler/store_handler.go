package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/elegance/jewelry-catalog/internal/api/metrics"
	"github.com/elegance/jewelry-catalog/internal/core/domain"
	"github.com/elegance/jewelry-catalog/internal/core/ports"
)

// StoreHandler exposes the global online/offline flag.
type StoreHandler struct {
	service ports.StoreService
}

func NewStoreHandler(service ports.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

// Status handles GET /api/store/status.
//
// @Summary      Current store status
// @Tags         store
// @Produce      json
// @Success      200  {object}  storeStatusResponse
// @Router       /store/status [get]
func (h *StoreHandler) Status(c echo.Context) error {
	status, err := h.service.Status(c.Request().Context())
	if err != nil {
		return err
	}

	metrics.SetStoreOnline(status.Online())
	return c.JSON(http.StatusOK, toStoreStatusResponse(status))
}

// SetStatus handles PUT /api/store/status.
//
// @Summary      Set the store status
// @Tags         store
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      storeStatusRequest  true  "online or offline"
// @Success      200   {object}  storeStatusUpdatedResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /store/status [put]
func (h *StoreHandler) SetStatus(c echo.Context) error {
	var req storeStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	status, err := h.service.SetStatus(c.Request().Context(), domain.StoreState(req.Status))
	if err != nil {
		return err
	}

	metrics.SetStoreOnline(status.Online())
	return c.JSON(http.StatusOK, storeStatusUpdatedResponse{
		Message: "Store status updated successfully",
		Status:  status.Status,
	})
}
