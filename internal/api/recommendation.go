package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealmind/backend/internal/apperr"
	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/service"
	"github.com/pageza/mealmind/backend/internal/types"
)

type RecommendationHandler struct {
	recommendationService service.IRecommendationService
}

func NewRecommendationHandler(recommendationService service.IRecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

func (h *RecommendationHandler) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	router.POST("/recommendations", limit, h.Generate)
	router.POST("/chat", limit, h.Chat)
}

// ChatResponse is the new session and its options
type ChatResponse struct {
	SessionID uuid.UUID           `json:"sessionId"`
	Options   []models.OptionItem `json:"options"`
}

// Generate runs the pipeline for an existing session
func (h *RecommendationHandler) Generate(c *gin.Context) {
	var req types.GenerateRecommendationsRequest
	if !bindJSON(c, &req) {
		return
	}
	sessionID, err := uuid.Parse(req.SessionID)
	if err != nil {
		respondError(c, apperr.InvalidInput("invalid sessionId"))
		return
	}

	set, err := h.recommendationService.Generate(c.Request.Context(), sessionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, set)
}

// Chat generates options from a free-text message
func (h *RecommendationHandler) Chat(c *gin.Context) {
	var req types.ChatRequest
	if !bindJSON(c, &req) {
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		respondError(c, apperr.InvalidInput("Message is required"))
		return
	}

	session, err := h.recommendationService.Chat(c.Request.Context(), message)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := ChatResponse{SessionID: session.ID}
	if len(session.RecommendationSets) > 0 {
		resp.Options = session.RecommendationSets[0].Options
	}
	c.JSON(http.StatusCreated, resp)
}
