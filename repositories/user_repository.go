package repositories

import (
	"errors"

	"authors-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	CreateWithProfile(user *models.User, profile *models.Profile) error
	GetByEmail(email string) (*models.User, error)
	GetByPublicID(id uuid.UUID) (*models.User, error)
	DeleteAccount(userID uint) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// CreateWithProfile inserts the account and its profile atomically.
func (r *userRepository) CreateWithProfile(user *models.User, profile *models.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(user).Error; err != nil {
			return err
		}
		profile.UserID = user.PkID
		if err := tx.Omit(clause.Associations).Create(profile).Error; err != nil {
			return err
		}
		profile.User = *user
		return nil
	})
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *userRepository) GetByPublicID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := r.db.Where("id = ?", id).First(&user).Error
	return &user, err
}

// DeleteAccount removes the user with its profile, follow edges, engagement rows
// and authored articles (including engagement on those articles).
func (r *userRepository) DeleteAccount(userID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var profile models.Profile
		err := tx.Where("user_id = ?", userID).First(&profile).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err == nil {
			if err := tx.Where("follower_id = ? OR following_id = ?", profile.PkID, profile.PkID).
				Delete(&models.ProfileFollow{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&profile).Error; err != nil {
				return err
			}
		}

		var articleIDs []uint
		if err := tx.Model(&models.Article{}).Where("author_id = ?", userID).Pluck("pkid", &articleIDs).Error; err != nil {
			return err
		}
		if err := deleteArticleDependents(tx, articleIDs); err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", userID).Delete(&models.Article{}).Error; err != nil {
			return err
		}

		for _, m := range []interface{}{&models.ArticleView{}, &models.Rating{}, &models.Bookmark{}, &models.Clap{}, &models.Comment{}} {
			if err := tx.Where("user_id = ?", userID).Delete(m).Error; err != nil {
				return err
			}
		}

		return tx.Where("pkid = ?", userID).Delete(&models.User{}).Error
	})
}
