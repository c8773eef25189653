package handlers

import (
	"authors-api/helper"
	"authors-api/middleware"
	"authors-api/models"
	"authors-api/services"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	articleService services.ArticleService
	Helper         *helper.HTTPHelper
}

func NewArticleHandler(articleService services.ArticleService, h *helper.HTTPHelper) *ArticleHandler {
	return &ArticleHandler{articleService: articleService, Helper: h}
}

func (h *ArticleHandler) CreateArticle(c *gin.Context) {
	var req models.ArticleRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	article, err := h.articleService.CreateArticle(middleware.CurrentUser(c), req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendCreated(c, "Article created", article)
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	page, err := helper.ParsePage(c, helper.ArticlePageSize, helper.ArticleMaxPageSize)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	params := models.ArticleListParams{
		Author:   c.Query("author"),
		Title:    c.Query("title"),
		Search:   c.Query("search"),
		Ordering: c.Query("ordering"),
		Page:     page.Number,
		Size:     page.Size,
	}

	articles, total, err := h.articleService.GetArticles(params, page.Offset(), page.Size)
	h.sendArticles(c, page, articles, total, err)
}

func (h *ArticleHandler) GetBookmarked(c *gin.Context) {
	page, err := helper.ParsePage(c, helper.ArticlePageSize, helper.ArticleMaxPageSize)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	articles, total, err := h.articleService.GetBookmarked(middleware.CurrentUser(c), page.Offset(), page.Size)
	h.sendArticles(c, page, articles, total, err)
}

func (h *ArticleHandler) sendArticles(c *gin.Context, page helper.Page, articles []models.ArticleResponse, total int64, err error) {
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}
	if err := helper.CheckPage(page, total); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendPage(c, "Success", articles, page, total)
}

// GetArticle is open to anonymous readers; the view is recorded against the caller if any.
func (h *ArticleHandler) GetArticle(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	article, err := h.articleService.GetArticle(id, middleware.CurrentUser(c), c.ClientIP())
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", article)
}

func (h *ArticleHandler) UpdateArticle(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		h.Helper.SendUnauthorizedError(c, models.MsgNotAuthenticated, h.Helper.EmptyJsonMap())
		return
	}
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.ArticleRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	article, err := h.articleService.UpdateArticle(user, id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article updated", article)
}

func (h *ArticleHandler) PatchArticle(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		h.Helper.SendUnauthorizedError(c, models.MsgNotAuthenticated, h.Helper.EmptyJsonMap())
		return
	}
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	var req models.ArticlePatchRequest
	if !bindJSON(c, h.Helper, &req) {
		return
	}

	article, err := h.articleService.PatchArticle(user, id, req)
	if err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Article updated", article)
}

func (h *ArticleHandler) DeleteArticle(c *gin.Context) {
	id, ok := paramID(c, h.Helper, "id")
	if !ok {
		return
	}

	if err := h.articleService.DeleteArticle(middleware.CurrentUser(c), id); err != nil {
		h.Helper.SendServiceError(c, err)
		return
	}

	h.Helper.SendNoContent(c)
}
