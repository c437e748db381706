package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/service"
)

type PreferenceHandler struct {
	preferenceService service.IPreferenceService
}

func NewPreferenceHandler(preferenceService service.IPreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

func (h *PreferenceHandler) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	router.GET("/preference-summary", h.GetSummary)
	router.POST("/preference-summary", limit, h.Summarize)
}

// SummaryResponse carries the summary, or a message when there is none
type SummaryResponse struct {
	Summary *models.PreferenceSummary `json:"summary"`
	Message string                    `json:"message,omitempty"`
}

func (h *PreferenceHandler) GetSummary(c *gin.Context) {
	summary, err := h.preferenceService.Current(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	if summary == nil {
		c.JSON(http.StatusOK, SummaryResponse{Message: service.MessageNoSummaryYet})
		return
	}
	c.JSON(http.StatusOK, SummaryResponse{Summary: summary})
}

// Summarize recomputes the summary from recent feedback
func (h *PreferenceHandler) Summarize(c *gin.Context) {
	result, err := h.preferenceService.Summarize(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SummaryResponse{Summary: result.Summary, Message: result.Message})
}
