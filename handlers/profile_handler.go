package handlers

import (
	"authors-api/helper"
	"authors-api/middleware"
	"authors-api/models"
	"authors-api/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService services.ProfileService
	Helper         *helper.HTTPHelper
}

func NewProfileHandler(profileService services.ProfileService, h *helper.HTTPHelper) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, Helper: h}
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	profile, err := h.profileService.GetMyProfile(middleware.CurrentUser(c))
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", profile)
}

// UpdateMe serves PUT and PATCH; omitted fields keep their value.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	var req models.ProfileUpdateRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	profile, err := h.profileService.UpdateMyProfile(middleware.CurrentUser(c), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Profile updated", profile)
}

func (h *ProfileHandler) DeleteMe(c *gin.Context) {
	if err := h.profileService.DeleteAccount(middleware.CurrentUser(c)); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}

func (h *ProfileHandler) GetAll(c *gin.Context) {
	page, err := helper.ParsePage(c, helper.ProfilePageSize, helper.ProfileMaxPageSize)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	profiles, total, err := h.profileService.ListProfiles(page.Offset(), page.Size)
	h.sendProfiles(c, page, profiles, total, err)
}

func (h *ProfileHandler) GetFollowers(c *gin.Context) {
	page, err := helper.ParsePage(c, helper.ProfilePageSize, helper.ProfileMaxPageSize)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	profiles, total, err := h.profileService.Followers(middleware.CurrentUser(c), page.Offset(), page.Size)
	h.sendProfiles(c, page, profiles, total, err)
}

func (h *ProfileHandler) GetFollowings(c *gin.Context) {
	page, err := helper.ParsePage(c, helper.ProfilePageSize, helper.ProfileMaxPageSize)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	profiles, total, err := h.profileService.Followings(middleware.CurrentUser(c), page.Offset(), page.Size)
	h.sendProfiles(c, page, profiles, total, err)
}

func (h *ProfileHandler) sendProfiles(c *gin.Context, page helper.Page, profiles []models.ProfileResponse, total int64, err error) {
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	if err := helper.CheckPage(page, total); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendPage(c, "Success", profiles, page, total)
}

func (h *ProfileHandler) Follow(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	message, err := h.profileService.Follow(middleware.CurrentUser(c), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, message, models.MessageResponse{Message: message})
}

func (h *ProfileHandler) Unfollow(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	message, err := h.profileService.Unfollow(middleware.CurrentUser(c), id)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, message, models.MessageResponse{Message: message})
}
