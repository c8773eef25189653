package services

import (
	"errors"
	"strings"

	"authors-api/logger"
	"authors-api/models"
	"authors-api/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TagService interface {
	CreateTag(user *models.User, req models.CreateTagRequest) (*models.Tag, error)
	GetTags() ([]models.TagResponse, error)
}

type tagService struct {
	tagRepo repositories.TagRepository
}

func NewTagService(tagRepo repositories.TagRepository) TagService {
	return &tagService{tagRepo: tagRepo}
}

// CreateTag is limited to staff.
func (s *tagService) CreateTag(user *models.User, req models.CreateTagRequest) (*models.Tag, error) {
	if err := RequireStaff(user); err != nil {
		return nil, err
	}

	name := strings.ToLower(strings.TrimSpace(req.Name))
	if name == "" {
		return nil, models.NewFieldError("name", "This field may not be blank.")
	}

	duplicate := models.ErrorConflict{Message: "tag already exists"}
	_, err := s.tagRepo.GetByName(name)
	if err == nil {
		return nil, duplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tag := &models.Tag{Name: name}
	if err := s.tagRepo.Create(tag); err != nil {
		return nil, conflictOr(err, duplicate)
	}

	logger.Log.Info("tag created", zap.String("name", tag.Name))
	return tag, nil
}

func (s *tagService) GetTags() ([]models.TagResponse, error) {
	return s.tagRepo.GetAllWithCounts()
}
