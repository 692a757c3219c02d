package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	statusOK = "ok"

	errListCampaigns = "failed to load campaigns"
	errListActivity  = "failed to load activity"
)

// Centralized error logging and JSON response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": statusOK,
	})
}

// @Summary      List campaigns
// @Description  All campaigns, most recently modified first.
// @Tags         campaigns
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, campaigns"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/campaigns [get]
// @Security     BearerAuth
func (h *Handler) apiListCampaigns(c *gin.Context) {
	campaigns, err := h.services.Campaigns.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListCampaigns, "api_campaign_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":     len(campaigns),
		"campaigns": campaigns,
	})
}
