package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"analogygen/internal/app"
	"analogygen/internal/transport/http/middleware"
	"analogygen/internal/transport/http/response"
)

type AnalogyHandler struct {
	analogyService *app.AnalogyService
}

type GenerateRequest struct {
	Concept string `json:"concept" binding:"required,max=256"`
	Level   string `json:"level" binding:"required,max=64"`
}

type QuizRequest struct {
	Concept string             `json:"concept" binding:"required,max=256"`
	Result  *app.AnalogyResult `json:"result" binding:"required"`
}

func NewAnalogyHandler(analogyService *app.AnalogyService) *AnalogyHandler {
	return &AnalogyHandler{analogyService: analogyService}
}

func (h *AnalogyHandler) Generate(c *gin.Context) {
	email, ok := getOwnerEmailFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "invalid token payload")
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.analogyService.Generate(c.Request.Context(), email, req.Concept, req.Level)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrConceptEmpty):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			// Upstream failures surface with the underlying message.
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.OK(c, result)
}

func (h *AnalogyHandler) Quiz(c *gin.Context) {
	if _, ok := getOwnerEmailFromContext(c); !ok {
		response.Error(c, http.StatusUnauthorized, "invalid token payload")
		return
	}

	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "concept and analogy result are required")
		return
	}

	quiz, err := h.analogyService.BuildQuiz(c.Request.Context(), req.Concept, *req.Result)
	if err != nil {
		switch {
		case errors.Is(err, app.ErrConceptEmpty):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.OK(c, quiz)
}

func getOwnerEmailFromContext(c *gin.Context) (string, bool) {
	emailAny, exists := c.Get(middleware.ContextEmailKey)
	if !exists {
		return "", false
	}
	email, ok := emailAny.(string)
	if !ok || email == "" {
		return "", false
	}
	return email, true
}
