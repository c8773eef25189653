package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"authors-api/logger"
	"authors-api/models"
	"authors-api/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgCantRateOwn    = "You cannot rate your own article."
	msgCantClapOwn    = "You cannot clap for your own article."
	msgCantCommentOwn = "You cannot comment on your own article."

	maxReviewLength       = 200
	maxCommentTitleLength = 110
)

// EngagementResult pairs the confirmation message with the created record.
type EngagementResult struct {
	Message string
	Data    models.EngagementResponse
}

type EngagementService interface {
	Rate(user *models.User, articleID uuid.UUID, req models.RatingRequest) (*EngagementResult, error)
	Bookmark(user *models.User, articleID uuid.UUID) (*EngagementResult, error)
	Clap(user *models.User, articleID uuid.UUID) (*EngagementResult, error)
	Comment(user *models.User, articleID uuid.UUID, req models.CommentRequest) (*EngagementResult, error)
}

type engagementService struct {
	articleRepo    repositories.ArticleRepository
	engagementRepo repositories.EngagementRepository
}

func NewEngagementService(articleRepo repositories.ArticleRepository, engagementRepo repositories.EngagementRepository) EngagementService {
	return &engagementService{
		articleRepo:    articleRepo,
		engagementRepo: engagementRepo,
	}
}

func (s *engagementService) Rate(user *models.User, articleID uuid.UUID, req models.RatingRequest) (*EngagementResult, error) {
	article, err := s.target(user, articleID, msgCantRateOwn)
	if err != nil {
		return nil, err
	}

	duplicate := models.ErrorConflict{Message: fmt.Sprintf("You already rated this article %s", article.Title)}
	rated, err := s.engagementRepo.HasRated(user.PkID, article.PkID)
	if err != nil {
		return nil, err
	}
	if rated {
		return nil, duplicate
	}
	if err := validateRating(req); err != nil {
		return nil, err
	}

	rating := &models.Rating{
		ArticleID: article.PkID,
		UserID:    user.PkID,
		Value:     req.Rating,
		Review:    strings.TrimSpace(req.Review),
	}
	if err := s.engagementRepo.CreateRating(rating); err != nil {
		return nil, conflictOr(err, duplicate)
	}

	logger.Log.Info("article rated",
		zap.String("article_id", article.ID.String()),
		zap.String("user_id", user.ID.String()),
		zap.Int("rating", rating.Value),
	)

	data := baseResponse(rating.Base, article, user)
	data.Rating = rating.Value
	data.RatingLabel = models.RatingLabel(rating.Value)
	data.Review = rating.Review
	return &EngagementResult{
		Message: fmt.Sprintf("You rated this article %s", article.Title),
		Data:    data,
	}, nil
}

func (s *engagementService) Bookmark(user *models.User, articleID uuid.UUID) (*EngagementResult, error) {
	article, err := s.target(user, articleID, "")
	if err != nil {
		return nil, err
	}

	duplicate := models.ErrorConflict{Message: fmt.Sprintf("You already bookmarked this article %s", article.Title)}
	bookmarked, err := s.engagementRepo.HasBookmarked(user.PkID, article.PkID)
	if err != nil {
		return nil, err
	}
	if bookmarked {
		return nil, duplicate
	}

	bookmark := &models.Bookmark{ArticleID: article.PkID, UserID: user.PkID}
	if err := s.engagementRepo.CreateBookmark(bookmark); err != nil {
		return nil, conflictOr(err, duplicate)
	}

	count, err := s.engagementRepo.CountBookmarks(article.PkID)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("article bookmarked",
		zap.String("article_id", article.ID.String()),
		zap.String("user_id", user.ID.String()),
	)

	data := baseResponse(bookmark.Base, article, user)
	data.BookmarksCount = &count
	return &EngagementResult{
		Message: fmt.Sprintf("You bookmarked this article %s", article.Title),
		Data:    data,
	}, nil
}

func (s *engagementService) Clap(user *models.User, articleID uuid.UUID) (*EngagementResult, error) {
	article, err := s.target(user, articleID, msgCantClapOwn)
	if err != nil {
		return nil, err
	}

	duplicate := models.ErrorConflict{Message: fmt.Sprintf("You already clapped on this article %s", article.Title)}
	clapped, err := s.engagementRepo.HasClapped(user.PkID, article.PkID)
	if err != nil {
		return nil, err
	}
	if clapped {
		return nil, duplicate
	}

	clap := &models.Clap{ArticleID: article.PkID, UserID: user.PkID}
	if err := s.engagementRepo.CreateClap(clap); err != nil {
		return nil, conflictOr(err, duplicate)
	}

	count, err := s.engagementRepo.CountClaps(article.PkID)
	if err != nil {
		return nil, err
	}

	logger.Log.Info("article clapped",
		zap.String("article_id", article.ID.String()),
		zap.String("user_id", user.ID.String()),
	)

	data := baseResponse(clap.Base, article, user)
	data.ClapsCount = &count
	return &EngagementResult{
		Message: fmt.Sprintf("You clapped on this article %s", article.Title),
		Data:    data,
	}, nil
}

func (s *engagementService) Comment(user *models.User, articleID uuid.UUID, req models.CommentRequest) (*EngagementResult, error) {
	article, err := s.target(user, articleID, msgCantCommentOwn)
	if err != nil {
		return nil, err
	}
	if err := validateComment(req); err != nil {
		return nil, err
	}

	comment := &models.Comment{
		ArticleID: article.PkID,
		UserID:    user.PkID,
		Title:     strings.TrimSpace(req.Title),
		Content:   SanitizeBody(req.Content),
	}
	if err := s.engagementRepo.CreateComment(comment); err != nil {
		return nil, err
	}

	logger.Log.Info("article commented",
		zap.String("article_id", article.ID.String()),
		zap.String("user_id", user.ID.String()),
	)

	data := baseResponse(comment.Base, article, user)
	data.CommentTitle = comment.Title
	data.Content = comment.Content
	return &EngagementResult{
		Message: fmt.Sprintf("You commented on this article %s", article.Title),
		Data:    data,
	}, nil
}

// target resolves the article and, when ownMessage is set, forbids acting on one's own article.
func (s *engagementService) target(user *models.User, articleID uuid.UUID, ownMessage string) (*models.Article, error) {
	if user == nil {
		return nil, models.ErrorUnauthorized{Message: models.MsgNotAuthenticated}
	}

	article, err := s.articleRepo.GetByPublicID(articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: models.MsgNotFound}
		}
		return nil, err
	}

	if ownMessage != "" && article.AuthorID == user.PkID {
		return nil, models.ErrorForbidden{Message: ownMessage}
	}
	return article, nil
}

// validateRating runs after the target and duplicate checks.
func validateRating(req models.RatingRequest) error {
	if req.Rating < models.RatingMin || req.Rating > models.RatingMax {
		return models.NewFieldError("rating", fmt.Sprintf("Ensure this value is between %d and %d.", models.RatingMin, models.RatingMax))
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Review)) > maxReviewLength {
		return models.NewFieldError("review", fmt.Sprintf("Ensure this field has no more than %d characters.", maxReviewLength))
	}
	return nil
}

func validateComment(req models.CommentRequest) error {
	if err := requireText("title", req.Title); err != nil {
		return err
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Title)) > maxCommentTitleLength {
		return models.NewFieldError("title", fmt.Sprintf("Ensure this field has no more than %d characters.", maxCommentTitleLength))
	}
	return requireText("content", req.Content)
}

// conflictOr maps a unique violation to the duplicate error the pre-check would have returned.
func conflictOr(err error, duplicate models.ErrorConflict) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return duplicate
	}
	return err
}

func baseResponse(b models.Base, article *models.Article, user *models.User) models.EngagementResponse {
	return models.EngagementResponse{
		ID:           b.ID.String(),
		Article:      article.ID.String(),
		ArticleTitle: article.Title,
		User:         user.ID.String(),
		CreatedAt:    b.CreatedAt,
	}
}
