package services

import (
	"errors"
	"fmt"
	"strings"

	"authors-api/logger"
	"authors-api/models"
	"authors-api/repositories"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	msgFollowSelf    = "You can't follow your own account."
	msgPhoneTaken    = "A profile with this phone number already exists."
	msgCityNoCountry = "Selected city is not in the chosen country."
)

type ProfileService interface {
	GetMyProfile(user *models.User) (*models.ProfileResponse, error)
	UpdateMyProfile(user *models.User, req models.ProfileUpdateRequest) (*models.ProfileResponse, error)
	DeleteAccount(user *models.User) error
	ListProfiles(offset, limit int) ([]models.ProfileResponse, int64, error)
	Followers(user *models.User, offset, limit int) ([]models.ProfileResponse, int64, error)
	Followings(user *models.User, offset, limit int) ([]models.ProfileResponse, int64, error)
	Follow(user *models.User, profileID uuid.UUID) (string, error)
	Unfollow(user *models.User, profileID uuid.UUID) (string, error)
}

type profileService struct {
	profileRepo repositories.ProfileRepository
	userRepo    repositories.UserRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository, userRepo repositories.UserRepository) ProfileService {
	return &profileService{
		profileRepo: profileRepo,
		userRepo:    userRepo,
	}
}

func (s *profileService) GetMyProfile(user *models.User) (*models.ProfileResponse, error) {
	profile, err := s.ownProfile(user)
	if err != nil {
		return nil, err
	}

	out, err := s.toResponses([]models.Profile{*profile})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (s *profileService) UpdateMyProfile(user *models.User, req models.ProfileUpdateRequest) (*models.ProfileResponse, error) {
	profile, err := s.ownProfile(user)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		if strings.TrimSpace(*req.FirstName) == "" {
			return nil, models.NewFieldError("first_name", "This field may not be blank.")
		}
		profile.User.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		if strings.TrimSpace(*req.LastName) == "" {
			return nil, models.NewFieldError("last_name", "This field may not be blank.")
		}
		profile.User.LastName = strings.TrimSpace(*req.LastName)
	}
	if req.Country != nil {
		profile.Country = strings.ToUpper(strings.TrimSpace(*req.Country))
	}
	if req.City != nil {
		profile.City = strings.TrimSpace(*req.City)
	}
	if req.ProfilePic != nil {
		profile.ProfilePic = *req.ProfilePic
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.Gender != nil {
		profile.Gender = *req.Gender
	}
	if req.PhoneNumber != nil {
		if phone := strings.TrimSpace(*req.PhoneNumber); phone == "" {
			profile.PhoneNumber = nil
		} else {
			profile.PhoneNumber = &phone
		}
	}

	if profile.City != "" && profile.Country == "" {
		return nil, models.NewFieldError("city", msgCityNoCountry)
	}

	if err := s.profileRepo.Update(profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewFieldError("phone_number", msgPhoneTaken)
		}
		return nil, err
	}

	logger.Log.Info("profile updated", zap.String("profile_id", profile.ID.String()))
	return s.GetMyProfile(user)
}

// DeleteAccount removes the caller's profile along with the account itself.
func (s *profileService) DeleteAccount(user *models.User) error {
	if err := s.userRepo.DeleteAccount(user.PkID); err != nil {
		return err
	}
	logger.Log.Info("account deleted", zap.String("user_id", user.ID.String()))
	return nil
}

func (s *profileService) ListProfiles(offset, limit int) ([]models.ProfileResponse, int64, error) {
	profiles, total, err := s.profileRepo.List(offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.toResponses(profiles)
	return out, total, err
}

func (s *profileService) Followers(user *models.User, offset, limit int) ([]models.ProfileResponse, int64, error) {
	own, err := s.ownProfile(user)
	if err != nil {
		return nil, 0, err
	}
	profiles, total, err := s.profileRepo.ListFollowers(own.PkID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.toResponses(profiles)
	return out, total, err
}

func (s *profileService) Followings(user *models.User, offset, limit int) ([]models.ProfileResponse, int64, error) {
	own, err := s.ownProfile(user)
	if err != nil {
		return nil, 0, err
	}
	profiles, total, err := s.profileRepo.ListFollowing(own.PkID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	out, err := s.toResponses(profiles)
	return out, total, err
}

func (s *profileService) Follow(user *models.User, profileID uuid.UUID) (string, error) {
	own, target, err := s.followPair(user, profileID)
	if err != nil {
		return "", err
	}

	alreadyFollowing := models.ErrorForbidden{Message: fmt.Sprintf("You are already following %s", target.User.FullName())}
	following, err := s.profileRepo.IsFollowing(own.PkID, target.PkID)
	if err != nil {
		return "", err
	}
	if following {
		return "", alreadyFollowing
	}

	// The insert is authoritative when two follows race past the check above.
	created, err := s.profileRepo.Follow(own.PkID, target.PkID)
	if err != nil {
		return "", err
	}
	if !created {
		return "", alreadyFollowing
	}

	logger.Log.Info("profile followed",
		zap.String("follower", own.ID.String()),
		zap.String("following", target.ID.String()),
	)
	return fmt.Sprintf("You are now following %s", target.User.FullName()), nil
}

func (s *profileService) Unfollow(user *models.User, profileID uuid.UUID) (string, error) {
	own, target, err := s.followPair(user, profileID)
	if err != nil {
		return "", err
	}

	notFollowing := models.ErrorForbidden{Message: fmt.Sprintf(
		"You can't unfollow %s because you weren't following them in the first place", target.User.FullName())}
	following, err := s.profileRepo.IsFollowing(own.PkID, target.PkID)
	if err != nil {
		return "", err
	}
	if !following {
		return "", notFollowing
	}

	removed, err := s.profileRepo.Unfollow(own.PkID, target.PkID)
	if err != nil {
		return "", err
	}
	if !removed {
		return "", notFollowing
	}

	logger.Log.Info("profile unfollowed",
		zap.String("follower", own.ID.String()),
		zap.String("following", target.ID.String()),
	)
	return fmt.Sprintf("You are now unfollowing %s", target.User.FullName()), nil
}

func (s *profileService) followPair(user *models.User, profileID uuid.UUID) (*models.Profile, *models.Profile, error) {
	own, err := s.ownProfile(user)
	if err != nil {
		return nil, nil, err
	}

	target, err := s.profileRepo.GetByPublicID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, models.ErrorNotFound{Message: models.MsgNotFound}
		}
		return nil, nil, err
	}

	if own.PkID == target.PkID {
		return nil, nil, models.ErrorForbidden{Message: msgFollowSelf}
	}
	return own, target, nil
}

func (s *profileService) ownProfile(user *models.User) (*models.Profile, error) {
	profile, err := s.profileRepo.GetByUserID(user.PkID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: models.MsgNotFound}
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) toResponses(profiles []models.Profile) ([]models.ProfileResponse, error) {
	ids := make([]uint, 0, len(profiles))
	for _, p := range profiles {
		ids = append(ids, p.PkID)
	}

	counts, err := s.profileRepo.CountFollows(ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.ProfileResponse, 0, len(profiles))
	for i := range profiles {
		p := &profiles[i]
		out = append(out, models.NewProfileResponse(p, counts.Followers[p.PkID], counts.Following[p.PkID]))
	}
	return out, nil
}
