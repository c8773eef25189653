package repositories

import (
	"authors-api/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FollowCounts holds follower and following totals per profile pkid.
type FollowCounts struct {
	Followers map[uint]int64
	Following map[uint]int64
}

type ProfileRepository interface {
	GetByUserID(userID uint) (*models.Profile, error)
	GetByPublicID(id uuid.UUID) (*models.Profile, error)
	Update(profile *models.Profile) error
	List(offset, limit int) ([]models.Profile, int64, error)
	ListFollowers(profileID uint, offset, limit int) ([]models.Profile, int64, error)
	ListFollowing(profileID uint, offset, limit int) ([]models.Profile, int64, error)
	Follow(followerID, followingID uint) (bool, error)
	Unfollow(followerID, followingID uint) (bool, error)
	IsFollowing(followerID, followingID uint) (bool, error)
	CountFollows(profileIDs []uint) (FollowCounts, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByUserID(userID uint) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	return &profile, err
}

func (r *profileRepository) GetByPublicID(id uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := r.db.Preload("User").Where("id = ?", id).First(&profile).Error
	return &profile, err
}

// Update saves the profile and the name fields of its user together.
func (r *profileRepository) Update(profile *models.Profile) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(profile).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Where("pkid = ?", profile.UserID).Updates(map[string]interface{}{
			"first_name": profile.User.FirstName,
			"last_name":  profile.User.LastName,
		}).Error
	})
}

func (r *profileRepository) List(offset, limit int) ([]models.Profile, int64, error) {
	var profiles []models.Profile
	var total int64

	if err := r.db.Model(&models.Profile{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("User").
		Order(models.NewestFirst("profiles")).
		Offset(offset).Limit(limit).
		Find(&profiles).Error
	return profiles, total, err
}

// ListFollowers returns profiles that follow profileID, most recent edge first.
func (r *profileRepository) ListFollowers(profileID uint, offset, limit int) ([]models.Profile, int64, error) {
	return r.listByEdge("profile_follows.follower_id", "profile_follows.following_id", profileID, offset, limit)
}

// ListFollowing returns profiles that profileID follows, most recent edge first.
func (r *profileRepository) ListFollowing(profileID uint, offset, limit int) ([]models.Profile, int64, error) {
	return r.listByEdge("profile_follows.following_id", "profile_follows.follower_id", profileID, offset, limit)
}

func (r *profileRepository) listByEdge(joinCol, filterCol string, profileID uint, offset, limit int) ([]models.Profile, int64, error) {
	var profiles []models.Profile
	var total int64

	if err := r.db.Model(&models.ProfileFollow{}).Where(filterCol+" = ?", profileID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Preload("User").
		Joins("JOIN profile_follows ON profiles.pkid = "+joinCol).
		Where(filterCol+" = ?", profileID).
		Order("profile_follows.created_at desc, profiles.pkid desc").
		Offset(offset).Limit(limit).
		Find(&profiles).Error
	return profiles, total, err
}

// Follow inserts the edge; false means it already existed.
func (r *profileRepository) Follow(followerID, followingID uint) (bool, error) {
	res := r.db.Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.ProfileFollow{FollowerID: followerID, FollowingID: followingID})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Unfollow removes the edge; false means there was none.
func (r *profileRepository) Unfollow(followerID, followingID uint) (bool, error) {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.ProfileFollow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *profileRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.ProfileFollow{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *profileRepository) CountFollows(profileIDs []uint) (FollowCounts, error) {
	counts := FollowCounts{
		Followers: make(map[uint]int64, len(profileIDs)),
		Following: make(map[uint]int64, len(profileIDs)),
	}
	if len(profileIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ProfileID uint
		Total     int64
	}

	var followers []row
	if err := r.db.Model(&models.ProfileFollow{}).
		Select("following_id AS profile_id, COUNT(*) AS total").
		Where("following_id IN ?", profileIDs).
		Group("following_id").
		Scan(&followers).Error; err != nil {
		return counts, err
	}
	for _, f := range followers {
		counts.Followers[f.ProfileID] = f.Total
	}

	var following []row
	if err := r.db.Model(&models.ProfileFollow{}).
		Select("follower_id AS profile_id, COUNT(*) AS total").
		Where("follower_id IN ?", profileIDs).
		Group("follower_id").
		Scan(&following).Error; err != nil {
		return counts, err
	}
	for _, f := range following {
		counts.Following[f.ProfileID] = f.Total
	}

	return counts, nil
}
