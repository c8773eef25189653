package handlers

import (
	"authors-api/helper"
	"authors-api/middleware"
	"authors-api/models"
	"authors-api/services"

	"github.com/gin-gonic/gin"
)

type EngagementHandler struct {
	engagementService services.EngagementService
	Helper            *helper.HTTPHelper
}

func NewEngagementHandler(engagementService services.EngagementService, h *helper.HTTPHelper) *EngagementHandler {
	return &EngagementHandler{engagementService: engagementService, Helper: h}
}

func (h *EngagementHandler) Rate(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.RatingRequest
	if !decodeJSON(c, h.Helper, &req) {
		return
	}

	h.send(c)(h.engagementService.Rate(middleware.CurrentUser(c), id, req))
}

func (h *EngagementHandler) Bookmark(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	h.send(c)(h.engagementService.Bookmark(middleware.CurrentUser(c), id))
}

func (h *EngagementHandler) Clap(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	h.send(c)(h.engagementService.Clap(middleware.CurrentUser(c), id))
}

func (h *EngagementHandler) Comment(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.CommentRequest
	if !decodeJSON(c, h.Helper, &req) {
		return
	}

	h.send(c)(h.engagementService.Comment(middleware.CurrentUser(c), id, req))
}

func (h *EngagementHandler) send(c *gin.Context) func(*services.EngagementResult, error) {
	return func(result *services.EngagementResult, err error) {
		if err != nil {
			h.Helper.SendServiceError(c, err)
			return
		}
		h.Helper.SendCreated(c, result.Message, result.Data)
	}
}
