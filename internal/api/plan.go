package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/mealmind/backend/internal/models"
	"github.com/pageza/mealmind/backend/internal/schema"
	"github.com/pageza/mealmind/backend/internal/service"
	"github.com/pageza/mealmind/backend/internal/types"
)

type PlanHandler struct {
	planService service.IPlanService
}

func NewPlanHandler(planService service.IPlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

func (h *PlanHandler) RegisterRoutes(router *gin.RouterGroup, limit gin.HandlerFunc) {
	plans := router.Group("/plans")
	{
		plans.GET("", h.ListPlans)
		plans.POST("", limit, h.CreatePlan)
		plans.GET("/:id", h.GetPlan)
		plans.DELETE("/:id", h.DeletePlan)
		plans.POST("/:id/swap", limit, h.SwapDay)
		plans.GET("/:id/shopping-list", h.GetShoppingList)
		plans.POST("/:id/shopping-list", limit, h.GenerateShoppingList)
	}
}

// CreatePlanResponse is the stored plan with its reuse strategy
type CreatePlanResponse struct {
	Plan          *models.Plan         `json:"plan"`
	ReuseStrategy schema.ReuseStrategy `json:"reuseStrategy"`
}

func (h *PlanHandler) ListPlans(c *gin.Context) {
	plans, err := h.planService.ListPlans(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req types.PlanInputs
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, CreatePlanResponse{Plan: plan, ReuseStrategy: plan.ReuseStrategy})
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// SwapDay replaces one day's recipe
func (h *PlanHandler) SwapDay(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req types.SwapDayRequest
	if !bindJSON(c, &req) {
		return
	}

	day, err := h.planService.SwapDay(c.Request.Context(), id, *req.DayIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"day": day})
}

func (h *PlanHandler) GetShoppingList(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	list, err := h.planService.GetShoppingList(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *PlanHandler) GenerateShoppingList(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	list, err := h.planService.GenerateShoppingList(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
