package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealmind/backend/internal/apperr"
	"github.com/pageza/mealmind/backend/internal/service"
	"github.com/pageza/mealmind/backend/internal/types"
)

type SavedMealHandler struct {
	savedMealService service.ISavedMealService
}

func NewSavedMealHandler(savedMealService service.ISavedMealService) *SavedMealHandler {
	return &SavedMealHandler{savedMealService: savedMealService}
}

func (h *SavedMealHandler) RegisterRoutes(router *gin.RouterGroup) {
	saved := router.Group("/saved-meals")
	{
		saved.GET("", h.ListSavedMeals)
		saved.POST("", h.SaveMeal)
		saved.DELETE("/:optionItemId", h.DeleteSavedMeal)
	}
}

func (h *SavedMealHandler) ListSavedMeals(c *gin.Context) {
	meals, err := h.savedMealService.ListSavedMeals(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meals)
}

func (h *SavedMealHandler) SaveMeal(c *gin.Context) {
	var req types.SaveMealRequest
	if !bindJSON(c, &req) {
		return
	}
	optionID, err := uuid.Parse(req.OptionItemID)
	if err != nil {
		respondError(c, apperr.InvalidInput("invalid optionItemId"))
		return
	}

	meal, err := h.savedMealService.SaveMeal(c.Request.Context(), optionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, meal)
}

func (h *SavedMealHandler) DeleteSavedMeal(c *gin.Context) {
	optionID, ok := paramID(c, "optionItemId")
	if !ok {
		return
	}

	if err := h.savedMealService.DeleteSavedMeal(c.Request.Context(), optionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
