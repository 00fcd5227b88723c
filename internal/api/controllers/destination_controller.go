package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vivubot/internal/models/request_models"
	"vivubot/internal/services"
	"vivubot/pkg/utils"
)

type DestinationController struct {
	destinationService services.DestinationServiceInterface
}

func NewDestinationController(destinationService services.DestinationServiceInterface) *DestinationController {
	return &DestinationController{destinationService: destinationService}
}

// GetDestination godoc
// @Summary Look up a destination
// @Description Thumbnail and intro come from Vietnamese Wikipedia and may be empty.
// @Tags Destinations
// @Accept json
// @Produce json
// @Param body body request_models.DestinationRequest true "Place"
// @Success 200 {object} response_models.DestinationResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/destination [post]
func (h *DestinationController) GetDestination(c *gin.Context) {
	var req request_models.DestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if req.PlaceName == "" {
		utils.RespondError(c, http.StatusBadRequest, "placeName parameter is required")
		return
	}

	dest, err := h.destinationService.GetDestination(c.Request.Context(), req.PlaceName, req.Type)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, dest, "Destination fetched successfully")
}

// ExtractDestinations godoc
// @Summary Extract and look up every destination mentioned in a text
// @Tags Destinations
// @Accept json
// @Produce json
// @Param body body request_models.MultiDestinationRequest true "Text"
// @Success 200 {array} response_models.DestinationResponse
// @Failure 502 {object} utils.APIResponse
// @Router /api/destination/multi [post]
func (h *DestinationController) ExtractDestinations(c *gin.Context) {
	var req request_models.MultiDestinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	dests, err := h.destinationService.ExtractDestinations(c.Request.Context(), req.Text)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, dests, "Destinations fetched successfully")
}
