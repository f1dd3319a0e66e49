package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/grindboard/practice-service/internal/services"
	"github.com/grindboard/practice-service/internal/utils"
)

type HandlerManager struct {
	questionHandler *QuestionHandler
	attemptHandler  *AttemptHandler
	statsHandler    *StatsHandler
	serviceManager  services.ServiceManager
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		questionHandler: NewQuestionHandler(serviceManager.Question(), logger),
		attemptHandler:  NewAttemptHandler(serviceManager.Attempt(), serviceManager.Export(), logger),
		statsHandler:    NewStatsHandler(serviceManager.Stats(), logger),
		serviceManager:  serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	v1 := router.Group("/api/v1")
	{
		questions := v1.Group("/questions")
		{
			questions.POST("", hm.questionHandler.CreateQuestion)
			questions.GET("", hm.questionHandler.ListQuestions)
			questions.GET("/:id", hm.questionHandler.GetQuestion)
			questions.PUT("/:id", hm.questionHandler.UpdateQuestion)
			questions.DELETE("/:id", hm.questionHandler.DeleteQuestion)
			questions.GET("/:id/history", hm.questionHandler.GetQuestionHistory)
		}

		attempts := v1.Group("/attempts")
		{
			attempts.POST("", hm.attemptHandler.LogAttempt)
			attempts.GET("", hm.attemptHandler.ListAttempts)
			attempts.GET("/export", hm.attemptHandler.ExportAttempts)
			attempts.GET("/:id", hm.attemptHandler.GetAttempt)
			attempts.PUT("/:id", hm.attemptHandler.UpdateAttempt)
			attempts.DELETE("/:id", hm.attemptHandler.DeleteAttempt)
		}

		v1.GET("/stats", hm.statsHandler.GetGlobalStats)
	}

	router.GET("/health", hm.healthCheck)
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	status, code := "healthy", http.StatusOK
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		status, code = "unhealthy", http.StatusServiceUnavailable
	}

	c.JSON(code, gin.H{
		"status":    status,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "practice-service",
	})
}
