package handler

import (
	"net/http"

	"github.com/feedbackwall/feedback-service/internal/feedback"
	"github.com/feedbackwall/feedback-service/internal/feedback/service"
	"github.com/feedbackwall/feedback-service/pkg/logger"
	"github.com/gin-gonic/gin"
)

type submitRequest struct {
	Name     string `json:"name"`
	Feedback string `json:"feedback"`
}

// RegisterFeedbackRoutes mounts POST and GET /feedback on r.
func RegisterFeedbackRoutes(r gin.IRouter, svc service.Service) {
	r.POST("/feedback", submitHandler(svc))
	r.GET("/feedback", listHandler(svc))
}

func submitHandler(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req submitRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
			return
		}
		rec, err := svc.Submit(c.Request.Context(), req.Name, req.Feedback)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, rec)
	}
}

func listHandler(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.List(c.Request.Context())
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, list)
	}
}

func writeError(c *gin.Context, err error) {
	switch {
	case feedback.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case feedback.IsStorage(err):
		logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		logger.Errorf("%s %s: unexpected error: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
