package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"vivubot/internal/notify"
	"vivubot/pkg/utils"
)

type NotifyController struct {
	hub      *notify.Hub
	upgrader *websocket.Upgrader
}

func NewNotifyController(hub *notify.Hub, upgrader *websocket.Upgrader) *NotifyController {
	return &NotifyController{hub: hub, upgrader: upgrader}
}

// WatchDestinations godoc
// @Summary Stream destination events for an owner over a websocket
// @Tags Destinations
// @Param owner path string true "Owner"
// @Router /ws/destinations/{owner} [get]
func (h *NotifyController) WatchDestinations(c *gin.Context) {
	owner := c.Param("owner")
	if err := h.hub.Serve(c.Request.Context(), h.upgrader, c.Writer, c.Request, owner); err != nil {
		// the upgrader already wrote the HTTP error
		utils.LoggerFrom(c).Debug("websocket closed", zap.String("owner", owner), zap.Error(err))
	}
}
