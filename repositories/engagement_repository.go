package repositories

import (
	"errors"

	"authors-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EngagementRepository interface {
	RecordView(articleID uint, userID *uint, viewerIP string) (bool, error)
	HasRated(userID, articleID uint) (bool, error)
	CreateRating(rating *models.Rating) error
	HasBookmarked(userID, articleID uint) (bool, error)
	CreateBookmark(bookmark *models.Bookmark) error
	CountBookmarks(articleID uint) (int64, error)
	HasClapped(userID, articleID uint) (bool, error)
	CreateClap(clap *models.Clap) error
	CountClaps(articleID uint) (int64, error)
	CreateComment(comment *models.Comment) error
}

type engagementRepository struct {
	db *gorm.DB
}

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// RecordView gets or creates the (article, user, ip) view. It reports whether a row was created.
func (r *engagementRepository) RecordView(articleID uint, userID *uint, viewerIP string) (bool, error) {
	query := r.db.Model(&models.ArticleView{}).Where("article_id = ? AND viewer_ip = ?", articleID, viewerIP)
	if userID == nil {
		query = query.Where("user_id IS NULL")
	} else {
		query = query.Where("user_id = ?", *userID)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	view := &models.ArticleView{ArticleID: articleID, UserID: userID, ViewerIP: viewerIP}
	err := r.db.Omit(clause.Associations).Create(view).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	return err == nil, err
}

func (r *engagementRepository) HasRated(userID, articleID uint) (bool, error) {
	return r.exists(&models.Rating{}, userID, articleID)
}

func (r *engagementRepository) CreateRating(rating *models.Rating) error {
	return r.db.Omit(clause.Associations).Create(rating).Error
}

func (r *engagementRepository) HasBookmarked(userID, articleID uint) (bool, error) {
	return r.exists(&models.Bookmark{}, userID, articleID)
}

func (r *engagementRepository) CreateBookmark(bookmark *models.Bookmark) error {
	return r.db.Omit(clause.Associations).Create(bookmark).Error
}

func (r *engagementRepository) CountBookmarks(articleID uint) (int64, error) {
	return r.count(&models.Bookmark{}, articleID)
}

func (r *engagementRepository) HasClapped(userID, articleID uint) (bool, error) {
	return r.exists(&models.Clap{}, userID, articleID)
}

func (r *engagementRepository) CreateClap(clap *models.Clap) error {
	return r.db.Omit(clause.Associations).Create(clap).Error
}

func (r *engagementRepository) CountClaps(articleID uint) (int64, error) {
	return r.count(&models.Clap{}, articleID)
}

func (r *engagementRepository) CreateComment(comment *models.Comment) error {
	return r.db.Omit(clause.Associations).Create(comment).Error
}

func (r *engagementRepository) exists(model interface{}, userID, articleID uint) (bool, error) {
	var count int64
	err := r.db.Model(model).Where("user_id = ? AND article_id = ?", userID, articleID).Count(&count).Error
	return count > 0, err
}

func (r *engagementRepository) count(model interface{}, articleID uint) (int64, error) {
	var count int64
	err := r.db.Model(model).Where("article_id = ?", articleID).Count(&count).Error
	return count, err
}
