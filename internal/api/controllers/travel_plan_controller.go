package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vivubot/internal/models/request_models"
	"vivubot/internal/services"
	"vivubot/pkg/utils"
)

type TravelPlanController struct {
	planService services.TravelPlanServiceInterface
}

func NewTravelPlanController(planService services.TravelPlanServiceInterface) *TravelPlanController {
	return &TravelPlanController{planService: planService}
}

// ListPlans godoc
// @Summary List travel plans
// @Tags TravelPlans
// @Produce json
// @Success 200 {array} response_models.TravelPlanResponse
// @Router /api/travel-plans [get]
func (h *TravelPlanController) ListPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context(), c.GetString(utils.UserIDKey))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plans, "Plans fetched successfully")
}

// GetPlan godoc
// @Summary Get one travel plan
// @Tags TravelPlans
// @Produce json
// @Param id path string true "Plan ID"
// @Success 200 {object} response_models.TravelPlanResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/travel-plans/{id} [get]
func (h *TravelPlanController) GetPlan(c *gin.Context) {
	plan, err := h.planService.GetPlan(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Plan fetched successfully")
}

// CreatePlan godoc
// @Summary Create a travel plan
// @Tags TravelPlans
// @Accept json
// @Produce json
// @Param body body request_models.TravelPlanRequest true "Plan"
// @Success 201 {object} response_models.TravelPlanResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/travel-plans [post]
func (h *TravelPlanController) CreatePlan(c *gin.Context) {
	var req request_models.TravelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), c.GetString(utils.UserIDKey), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondWithStatus(c, http.StatusCreated, plan, "Plan created successfully")
}

// UpdatePlan godoc
// @Summary Update the supplied fields of a travel plan
// @Tags TravelPlans
// @Accept json
// @Produce json
// @Param id path string true "Plan ID"
// @Param body body request_models.TravelPlanRequest true "Fields to change"
// @Success 200 {object} response_models.TravelPlanResponse
// @Router /api/travel-plans/{id} [put]
func (h *TravelPlanController) UpdatePlan(c *gin.Context) {
	var req request_models.TravelPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, plan, "Plan updated successfully")
}

// DeletePlan godoc
// @Summary Delete a travel plan
// @Tags TravelPlans
// @Param id path string true "Plan ID"
// @Success 200 {object} utils.APIResponse
// @Router /api/travel-plans/{id} [delete]
func (h *TravelPlanController) DeletePlan(c *gin.Context) {
	if err := h.planService.DeletePlan(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, nil, "Plan deleted successfully")
}
