package handlers

import (
	"errors"
	"io"

	"authors-api/helper"
	"authors-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gopkg.in/go-playground/validator.v9"
)

// bindJSON decodes and validates the body into req, writing the 400 itself on failure.
func bindJSON(c *gin.Context, h *helper.HTTPHelper, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		h.SendBadRequest(c, "Malformed JSON body", h.EmptyJsonMap())
		return false
	}

	if err := h.ValidateStruct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			h.SendValidationError(c, validationErrors)
			return false
		}
		h.SendBadRequest(c, err.Error(), h.EmptyJsonMap())
		return false
	}
	return true
}

// decodeJSON only decodes the body; an empty body leaves req zero-valued. The
// caller's service validates the fields once the target is resolved.
func decodeJSON(c *gin.Context, h *helper.HTTPHelper, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		h.SendBadRequest(c, "Malformed JSON body", h.EmptyJsonMap())
		return false
	}
	return true
}

// paramID parses a public identifier from the path. Malformed ids are reported as not found.
func paramID(c *gin.Context, h *helper.HTTPHelper, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		h.SendNotFoundError(c, models.MsgNotFound, h.EmptyJsonMap())
		return uuid.Nil, false
	}
	return id, true
}
