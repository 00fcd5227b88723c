package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vivubot/internal/models/request_models"
	"vivubot/internal/services"
	"vivubot/pkg/utils"
)

type PreferencesController struct {
	preferencesService services.PreferencesServiceInterface
}

func NewPreferencesController(preferencesService services.PreferencesServiceInterface) *PreferencesController {
	return &PreferencesController{preferencesService: preferencesService}
}

// GetPreferences godoc
// @Summary Get the caller's travel preferences
// @Tags Preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response_models.PreferencesResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/auth/preferences [get]
func (h *PreferencesController) GetPreferences(c *gin.Context) {
	prefs, err := h.preferencesService.GetPreferences(c.Request.Context(), c.GetString(utils.UserIDKey))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, prefs, "Preferences fetched successfully")
}

// UpdatePreferences godoc
// @Summary Update the supplied preference fields
// @Tags Preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body request_models.UpdatePreferencesRequest true "Preferences"
// @Success 200 {object} response_models.PreferencesResponse
// @Router /api/auth/preferences [put]
func (h *PreferencesController) UpdatePreferences(c *gin.Context) {
	var req request_models.UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	prefs, err := h.preferencesService.UpdatePreferences(c.Request.Context(), c.GetString(utils.UserIDKey), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, prefs, "Preferences updated successfully")
}
