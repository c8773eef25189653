package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"authors-api/logger"
	"authors-api/models"
	"authors-api/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// maxSlugRaces bounds retries when a concurrent insert claims the slug we picked.
const maxSlugRaces = 5

type ArticleService interface {
	CreateArticle(user *models.User, req models.ArticleRequest) (*models.ArticleResponse, error)
	GetArticle(id uuid.UUID, viewer *models.User, viewerIP string) (*models.ArticleResponse, error)
	GetArticles(params models.ArticleListParams, offset, limit int) ([]models.ArticleResponse, int64, error)
	GetBookmarked(user *models.User, offset, limit int) ([]models.ArticleResponse, int64, error)
	UpdateArticle(user *models.User, id uuid.UUID, req models.ArticleRequest) (*models.ArticleResponse, error)
	PatchArticle(user *models.User, id uuid.UUID, req models.ArticlePatchRequest) (*models.ArticleResponse, error)
	DeleteArticle(user *models.User, id uuid.UUID) error
}

type articleService struct {
	articleRepo    repositories.ArticleRepository
	tagRepo        repositories.TagRepository
	engagementRepo repositories.EngagementRepository
}

func NewArticleService(articleRepo repositories.ArticleRepository, tagRepo repositories.TagRepository, engagementRepo repositories.EngagementRepository) ArticleService {
	return &articleService{
		articleRepo:    articleRepo,
		tagRepo:        tagRepo,
		engagementRepo: engagementRepo,
	}
}

func (s *articleService) CreateArticle(user *models.User, req models.ArticleRequest) (*models.ArticleResponse, error) {
	if user == nil {
		return nil, models.ErrorUnauthorized{Message: models.MsgNotAuthenticated}
	}
	if err := requireText("title", req.Title); err != nil {
		return nil, err
	}
	if err := requireText("body", req.Body); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(req.Tags)
	if err != nil {
		return nil, err
	}

	article := &models.Article{
		AuthorID: user.PkID,
		Author:   *user,
		Title:    strings.TrimSpace(req.Title),
		Body:     SanitizeBody(req.Body),
		Image:    strings.TrimSpace(req.Image),
		Tags:     tags,
	}

	if err := s.createWithUniqueSlug(article); err != nil {
		return nil, err
	}

	logger.Log.Info("article created",
		zap.String("article_id", article.ID.String()),
		zap.String("slug", article.Slug),
		zap.String("author_id", user.ID.String()),
		zap.Int("tags", len(tags)),
	)

	out := s.toResponse(article, 0)
	return &out, nil
}

// createWithUniqueSlug stores the article under the first free slug of base,
// base-1, base-2, ... A unique violation on insert moves on to the next candidate.
func (s *articleService) createWithUniqueSlug(article *models.Article) error {
	base := Slugify(article.Title)
	races := 0
	for n := 0; ; n++ {
		candidate := base
		if n > 0 {
			candidate = fmt.Sprintf("%s-%d", base, n)
		}

		taken, err := s.articleRepo.SlugExists(candidate)
		if err != nil {
			return err
		}
		if taken {
			continue
		}

		article.Slug = candidate
		err = s.articleRepo.Create(article)
		if errors.Is(err, gorm.ErrDuplicatedKey) && races < maxSlugRaces {
			races++
			logger.Log.Warn("slug taken concurrently, retrying", zap.String("slug", candidate))
			continue
		}
		return err
	}
}

// GetArticle records the view before loading the payload, so views_count includes it.
func (s *articleService) GetArticle(id uuid.UUID, viewer *models.User, viewerIP string) (*models.ArticleResponse, error) {
	article, err := s.findArticle(id)
	if err != nil {
		return nil, err
	}

	var viewerID *uint
	if viewer != nil {
		viewerID = &viewer.PkID
	}
	if _, err := s.engagementRepo.RecordView(article.PkID, viewerID, viewerIP); err != nil {
		logger.Log.Error("record view failed",
			zap.String("article_id", article.ID.String()),
			zap.Error(err),
		)
	}

	out, err := s.toResponses([]models.Article{*article})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *articleService) GetArticles(params models.ArticleListParams, offset, limit int) ([]models.ArticleResponse, int64, error) {
	articles, total, err := s.articleRepo.GetList(params, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.toResponses(articles)
	return out, total, err
}

func (s *articleService) GetBookmarked(user *models.User, offset, limit int) ([]models.ArticleResponse, int64, error) {
	articles, total, err := s.articleRepo.GetBookmarked(user.PkID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.toResponses(articles)
	return out, total, err
}

func (s *articleService) UpdateArticle(user *models.User, id uuid.UUID, req models.ArticleRequest) (*models.ArticleResponse, error) {
	title, body, image := req.Title, req.Body, req.Image
	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}
	return s.applyUpdate(user, id, models.ArticlePatchRequest{
		Title: &title,
		Body:  &body,
		Image: &image,
		Tags:  &tags,
	})
}

func (s *articleService) PatchArticle(user *models.User, id uuid.UUID, req models.ArticlePatchRequest) (*models.ArticleResponse, error) {
	return s.applyUpdate(user, id, req)
}

func (s *articleService) applyUpdate(user *models.User, id uuid.UUID, req models.ArticlePatchRequest) (*models.ArticleResponse, error) {
	article, err := s.ownedArticle(user, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := requireText("title", *req.Title); err != nil {
			return nil, err
		}
		article.Title = strings.TrimSpace(*req.Title)
	}
	if req.Body != nil {
		if err := requireText("body", *req.Body); err != nil {
			return nil, err
		}
		article.Body = SanitizeBody(*req.Body)
	}
	if req.Image != nil {
		article.Image = strings.TrimSpace(*req.Image)
	}
	if req.Tags != nil {
		tags, err := s.resolveTags(*req.Tags)
		if err != nil {
			return nil, err
		}
		article.Tags = tags
	}

	if err := s.articleRepo.Update(article, req.Tags != nil); err != nil {
		return nil, err
	}

	logger.Log.Info("article updated",
		zap.String("article_id", article.ID.String()),
		zap.String("author_id", user.ID.String()),
	)

	updated, err := s.findArticle(id)
	if err != nil {
		return nil, err
	}
	out, err := s.toResponses([]models.Article{*updated})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *articleService) DeleteArticle(user *models.User, id uuid.UUID) error {
	article, err := s.ownedArticle(user, id)
	if err != nil {
		return err
	}

	if err := s.articleRepo.Delete(article.PkID); err != nil {
		return err
	}

	logger.Log.Info("article deleted",
		zap.String("article_id", article.ID.String()),
		zap.String("author_id", user.ID.String()),
	)
	return nil
}

// ownedArticle loads the article for a mutation: 401 without a caller, 404 when
// missing, 403 when the caller is not the author.
func (s *articleService) ownedArticle(user *models.User, id uuid.UUID) (*models.Article, error) {
	if user == nil {
		return nil, AuthorOrReadOnly(nil, false, 0)
	}

	article, err := s.findArticle(id)
	if err != nil {
		return nil, err
	}

	if err := AuthorOrReadOnly(user, false, article.AuthorID); err != nil {
		return nil, err
	}
	return article, nil
}

func (s *articleService) findArticle(id uuid.UUID) (*models.Article, error) {
	article, err := s.articleRepo.GetByPublicID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: models.MsgNotFound}
		}
		return nil, err
	}
	return article, nil
}

func (s *articleService) resolveTags(names []string) ([]models.Tag, error) {
	names = normalizeTags(names)
	if len(names) == 0 {
		return nil, nil
	}

	existing, err := s.tagRepo.GetByNames(names)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]models.Tag, len(existing))
	for _, t := range existing {
		byName[t.Name] = t
	}

	tags := make([]models.Tag, 0, len(names))
	for _, name := range names {
		if t, ok := byName[name]; ok {
			tags = append(tags, t)
			continue
		}
		t, err := s.tagRepo.FirstOrCreate(name)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *t)
	}

	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	return tags, nil
}

func (s *articleService) toResponses(articles []models.Article) ([]models.ArticleResponse, error) {
	ids := make([]uint, 0, len(articles))
	for _, a := range articles {
		ids = append(ids, a.PkID)
	}

	views, err := s.articleRepo.CountViews(ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.ArticleResponse, 0, len(articles))
	for i := range articles {
		out = append(out, s.toResponse(&articles[i], views[articles[i].PkID]))
	}
	return out, nil
}

func (s *articleService) toResponse(a *models.Article, views int64) models.ArticleResponse {
	return models.ArticleResponse{
		ID:          a.ID.String(),
		Slug:        a.Slug,
		Title:       a.Title,
		Body:        a.Body,
		Image:       a.Image,
		Tags:        a.TagNames(),
		Author:      a.Author.ID.String(),
		Username:    a.Author.FirstName,
		ViewsCount:  views,
		TimeReading: ReadingTime(a.Body),
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return models.NewFieldError(field, "This field may not be blank.")
	}
	return nil
}
