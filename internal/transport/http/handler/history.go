package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"analogygen/internal/app"
	"analogygen/internal/model"
	"analogygen/internal/transport/http/response"
)

type HistoryHandler struct {
	historyService *app.HistoryService
}

func NewHistoryHandler(historyService *app.HistoryService) *HistoryHandler {
	return &HistoryHandler{historyService: historyService}
}

func (h *HistoryHandler) List(c *gin.Context) {
	email, ok := getOwnerEmailFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "invalid token payload")
		return
	}

	entries, err := h.historyService.List(c.Request.Context(), email)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []model.HistoryEntry{}
	}

	response.OK(c, gin.H{"history": entries})
}

func (h *HistoryHandler) Delete(c *gin.Context) {
	email, ok := getOwnerEmailFromContext(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "invalid token payload")
		return
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid entry id")
		return
	}

	if err := h.historyService.Delete(c.Request.Context(), email, id); err != nil {
		switch {
		case errors.Is(err, app.ErrEntryNotFound):
			response.Error(c, http.StatusNotFound, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.OK(c, gin.H{"deleted_entry_id": id})
}
