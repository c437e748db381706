package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealmind/backend/internal/service"
	"github.com/pageza/mealmind/backend/internal/types"
)

type FeedbackHandler struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackHandler(feedbackService service.IFeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/feedback", h.SubmitFeedback)
}

// SubmitFeedback records or replaces the decision for an option
func (h *FeedbackHandler) SubmitFeedback(c *gin.Context) {
	var req types.SubmitFeedbackRequest
	if !bindJSON(c, &req) {
		return
	}

	feedback, err := h.feedbackService.SubmitFeedback(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}
