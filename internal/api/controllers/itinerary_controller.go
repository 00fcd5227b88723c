package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vivubot/internal/models/request_models"
	"vivubot/internal/services"
	"vivubot/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface) *ItineraryController {
	return &ItineraryController{itineraryService: itineraryService}
}

// GenerateItinerary godoc
// @Summary Generate an itinerary reply
// @Description The output is prose followed by a fenced json block holding the day-keyed route.
// @Tags Itinerary
// @Accept json
// @Produce json
// @Param body body request_models.GenerateItineraryRequest true "Prompt"
// @Success 200 {object} response_models.GenerateItineraryResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 502 {object} utils.APIResponse
// @Router /generate-itinerary [post]
func (h *ItineraryController) GenerateItinerary(c *gin.Context) {
	var req request_models.GenerateItineraryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	if id := c.GetString(utils.UserIDKey); id != "" {
		req.UserID = id
	}

	out, err := h.itineraryService.Generate(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, out, "Itinerary generated")
}
