package models

import (
	"time"
)

const (
	GenderMale   = "m"
	GenderFemale = "f"
)

type Profile struct {
	Base
	UserID      uint    `json:"-" gorm:"uniqueIndex;not null"`
	User        User    `json:"-" gorm:"foreignKey:UserID;references:PkID;constraint:OnDelete:CASCADE"`
	Country     string  `json:"country" gorm:"size:2"`
	City        string  `json:"city" gorm:"size:120"`
	ProfilePic  string  `json:"profile_pic"`
	Bio         string  `json:"bio"`
	Gender      string  `json:"gender" gorm:"size:1"`
	PhoneNumber *string `json:"phone_number" gorm:"uniqueIndex;size:20"`
}

// ProfileFollow is a directed edge: FollowerID follows FollowingID.
type ProfileFollow struct {
	FollowerID  uint      `gorm:"primaryKey;autoIncrement:false"`
	FollowingID uint      `gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt   time.Time `gorm:"index"`

	Follower  Profile `gorm:"foreignKey:FollowerID;references:PkID;constraint:OnDelete:CASCADE"`
	Following Profile `gorm:"foreignKey:FollowingID;references:PkID;constraint:OnDelete:CASCADE"`
}

// ProfileResponse is the read shape of a profile joined with its account.
type ProfileResponse struct {
	ID             string  `json:"id"`
	Email          string  `json:"email"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	FullName       string  `json:"full_name"`
	Country        string  `json:"country"`
	City           string  `json:"city"`
	PhoneNumber    *string `json:"phone_number"`
	ProfilePic     string  `json:"profile_pic"`
	Gender         string  `json:"gender"`
	Bio            string  `json:"bio"`
	FollowersCount int64   `json:"followers_count"`
	FollowingCount int64   `json:"following_count"`
}

func NewProfileResponse(p *Profile, followers, following int64) ProfileResponse {
	return ProfileResponse{
		ID:             p.ID.String(),
		Email:          p.User.Email,
		FirstName:      p.User.FirstName,
		LastName:       p.User.LastName,
		FullName:       p.User.FullName(),
		Country:        p.Country,
		City:           p.City,
		PhoneNumber:    p.PhoneNumber,
		ProfilePic:     p.ProfilePic,
		Gender:         p.Gender,
		Bio:            p.Bio,
		FollowersCount: followers,
		FollowingCount: following,
	}
}
