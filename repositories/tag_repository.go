package repositories

import (
	"errors"

	"authors-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TagRepository interface {
	Create(tag *models.Tag) error
	GetByName(name string) (*models.Tag, error)
	GetByNames(names []string) ([]models.Tag, error)
	FirstOrCreate(name string) (*models.Tag, error)
	GetAllWithCounts() ([]models.TagResponse, error)
}

type tagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(tag *models.Tag) error {
	return r.db.Create(tag).Error
}

func (r *tagRepository) GetByName(name string) (*models.Tag, error) {
	var tag models.Tag
	err := r.db.Where("name = ?", name).First(&tag).Error
	return &tag, err
}

func (r *tagRepository) GetByNames(names []string) ([]models.Tag, error) {
	var tags []models.Tag
	err := r.db.Where("name IN ?", names).Find(&tags).Error
	return tags, err
}

// FirstOrCreate returns the tag named name, creating it when absent. A concurrent
// insert of the same name resolves to the stored row.
func (r *tagRepository) FirstOrCreate(name string) (*models.Tag, error) {
	tag, err := r.GetByName(name)
	if err == nil {
		return tag, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag = &models.Tag{Name: name}
	if err := r.db.Create(tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.GetByName(name)
		}
		return nil, err
	}
	return tag, nil
}

// GetAllWithCounts lists every tag with the number of articles using it, most used first.
func (r *tagRepository) GetAllWithCounts() ([]models.TagResponse, error) {
	var rows []struct {
		ID           uuid.UUID
		Name         string
		ArticleCount int64
	}
	err := r.db.Table("tags").
		Select("tags.id, tags.name, COUNT(article_tags.article_id) AS article_count").
		Joins("LEFT JOIN article_tags ON article_tags.tag_id = tags.pkid").
		Group("tags.pkid, tags.id, tags.name").
		Order("article_count desc, tags.name asc").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	tags := make([]models.TagResponse, 0, len(rows))
	for _, row := range rows {
		tags = append(tags, models.TagResponse{ID: row.ID.String(), Name: row.Name, ArticleCount: row.ArticleCount})
	}
	return tags, nil
}
