// Package api holds the gin handlers of the HTTP surface.
package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/mealmind/backend/internal/apperr"
	"github.com/pageza/mealmind/backend/internal/middleware"
	"github.com/pageza/mealmind/backend/internal/service"
)

// Services bundles the services the handlers call
type Services struct {
	Profiles        service.IProfileService
	Sessions        service.ISessionService
	Recommendations service.IRecommendationService
	Feedback        service.IFeedbackService
	SavedMeals      service.ISavedMealService
	Preferences     service.IPreferenceService
	Plans           service.IPlanService
}

// RegisterRoutes registers every resource route on v1. generationLimit guards
// the routes that call the meal provider; nil leaves them unguarded.
func RegisterRoutes(v1 *gin.RouterGroup, svc Services, generationLimit gin.HandlerFunc) {
	if generationLimit == nil {
		generationLimit = func(c *gin.Context) { c.Next() }
	}

	NewProfileHandler(svc.Profiles).RegisterRoutes(v1)
	NewSessionHandler(svc.Sessions).RegisterRoutes(v1)
	NewRecommendationHandler(svc.Recommendations).RegisterRoutes(v1, generationLimit)
	NewFeedbackHandler(svc.Feedback).RegisterRoutes(v1)
	NewSavedMealHandler(svc.SavedMeals).RegisterRoutes(v1)
	NewPreferenceHandler(svc.Preferences).RegisterRoutes(v1, generationLimit)
	NewPlanHandler(svc.Plans).RegisterRoutes(v1, generationLimit)
}

func respondError(c *gin.Context, err error) {
	middleware.AbortWithError(c, err)
}

// bindJSON decodes and validates the body, answering 400 on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid request body", err.Error()))
		return false
	}
	return true
}

// paramID parses a UUID path parameter, answering 400 when malformed
func paramID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, apperr.New(apperr.CodeInvalidInput, "invalid "+name, err.Error()))
		return uuid.Nil, false
	}
	return id, true
}
