package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vivubot/internal/models/request_models"
	"vivubot/internal/services"
	"vivubot/pkg/utils"
)

type RouteController struct {
	routeService services.RouteServiceInterface
}

func NewRouteController(routeService services.RouteServiceInterface) *RouteController {
	return &RouteController{routeService: routeService}
}

// CalculateRoute godoc
// @Summary Driving route through the given points
// @Description Coordinates are [lng, lat]. Falls back to straight segments when routing is unavailable.
// @Tags Routes
// @Accept json
// @Produce json
// @Param body body request_models.RouteRequest true "Coordinates"
// @Success 200 {object} response_models.FeatureCollection
// @Failure 400 {object} utils.APIResponse
// @Router /api/route [post]
func (h *RouteController) CalculateRoute(c *gin.Context) {
	var req request_models.RouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid coordinates. Need at least 2 points.")
		return
	}

	fc, err := h.routeService.CalculateRoute(c.Request.Context(), req.Coordinates)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, fc, "Route calculated")
}
