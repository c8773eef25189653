package repositories

import (
	"strings"

	"authors-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArticleRepository interface {
	Create(article *models.Article) error
	GetByPublicID(id uuid.UUID) (*models.Article, error)
	GetList(params models.ArticleListParams, offset, limit int) ([]models.Article, int64, error)
	GetBookmarked(userID uint, offset, limit int) ([]models.Article, int64, error)
	Update(article *models.Article, replaceTags bool) error
	Delete(id uint) error
	SlugExists(slug string) (bool, error)
	CountViews(articleIDs []uint) (map[uint]int64, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

// Create inserts the article and links its already persisted tags.
func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(article).Error; err != nil {
			return err
		}
		return linkTags(tx, article.PkID, article.Tags)
	})
}

func (r *articleRepository) GetByPublicID(id uuid.UUID) (*models.Article, error) {
	var article models.Article
	err := r.db.Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name") }).
		Where("articles.id = ?", id).
		First(&article).Error
	return &article, err
}

func (r *articleRepository) GetList(params models.ArticleListParams, offset, limit int) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	if err := r.filtered(params).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := models.NewestFirst("articles")
	switch params.Ordering {
	case "pkid":
		order = "articles.pkid asc"
	case "-pkid":
		order = "articles.pkid desc"
	}

	err := r.filtered(params).
		Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name") }).
		Order(order).
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, total, err
}

func (r *articleRepository) filtered(params models.ArticleListParams) *gorm.DB {
	query := r.db.Model(&models.Article{})

	if author := strings.TrimSpace(params.Author); author != "" {
		query = query.Joins("JOIN users ON users.pkid = articles.author_id").
			Where("LOWER(users.first_name) LIKE ?", likePattern(author))
	}

	if title := strings.TrimSpace(params.Title); title != "" {
		query = query.Where("LOWER(articles.title) LIKE ?", likePattern(title))
	}

	for _, term := range strings.Fields(params.Search) {
		query = query.Where("LOWER(articles.body) LIKE ?", likePattern(term))
	}

	return query
}

func likePattern(s string) string {
	return "%" + strings.ToLower(s) + "%"
}

// GetBookmarked lists the articles userID bookmarked, newest bookmark first.
func (r *articleRepository) GetBookmarked(userID uint, offset, limit int) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	if err := r.db.Model(&models.Bookmark{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("Author").
		Preload("Tags", func(db *gorm.DB) *gorm.DB { return db.Order("tags.name") }).
		Joins("JOIN bookmarks ON bookmarks.article_id = articles.pkid").
		Where("bookmarks.user_id = ?", userID).
		Order(models.NewestFirst("bookmarks")).
		Offset(offset).Limit(limit).
		Find(&articles).Error
	return articles, total, err
}

// Update saves the scalar fields; when replaceTags is set the tag links are rewritten from article.Tags.
func (r *articleRepository) Update(article *models.Article, replaceTags bool) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(article).Omit(clause.Associations).Updates(map[string]interface{}{
			"title": article.Title,
			"body":  article.Body,
			"image": article.Image,
		}).Error; err != nil {
			return err
		}
		if !replaceTags {
			return nil
		}
		if err := tx.Exec("DELETE FROM article_tags WHERE article_id = ?", article.PkID).Error; err != nil {
			return err
		}
		return linkTags(tx, article.PkID, article.Tags)
	})
}

// Delete removes the article together with every record that depends on it.
func (r *articleRepository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := deleteArticleDependents(tx, []uint{id}); err != nil {
			return err
		}
		return tx.Where("pkid = ?", id).Delete(&models.Article{}).Error
	})
}

func (r *articleRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Article{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

func (r *articleRepository) CountViews(articleIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(articleIDs))
	if len(articleIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		ArticleID uint
		Total     int64
	}
	err := r.db.Model(&models.ArticleView{}).
		Select("article_id, COUNT(*) AS total").
		Where("article_id IN ?", articleIDs).
		Group("article_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		counts[row.ArticleID] = row.Total
	}
	return counts, nil
}

func linkTags(tx *gorm.DB, articleID uint, tags []models.Tag) error {
	if len(tags) == 0 {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(tags))
	for _, t := range tags {
		rows = append(rows, map[string]interface{}{"article_id": articleID, "tag_id": t.PkID})
	}
	return tx.Table("article_tags").Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

func deleteArticleDependents(tx *gorm.DB, articleIDs []uint) error {
	if len(articleIDs) == 0 {
		return nil
	}
	for _, m := range []interface{}{&models.ArticleView{}, &models.Rating{}, &models.Bookmark{}, &models.Clap{}, &models.Comment{}} {
		if err := tx.Where("article_id IN ?", articleIDs).Delete(m).Error; err != nil {
			return err
		}
	}
	return tx.Exec("DELETE FROM article_tags WHERE article_id IN ?", articleIDs).Error
}
