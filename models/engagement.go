package models

import (
	"time"
)

// ArticleView records one (article, viewer, ip) triple. UserID is nil for anonymous readers.
type ArticleView struct {
	Base
	ArticleID uint    `json:"-" gorm:"not null;uniqueIndex:idx_article_view_unique"`
	Article   Article `json:"-" gorm:"foreignKey:ArticleID;references:PkID;constraint:OnDelete:CASCADE"`
	UserID    *uint   `json:"-" gorm:"uniqueIndex:idx_article_view_unique"`
	User      *User   `json:"-" gorm:"foreignKey:UserID;references:PkID;constraint:OnDelete:CASCADE"`
	ViewerIP  string  `json:"viewer_ip" gorm:"size:45;uniqueIndex:idx_article_view_unique"`
}

const (
	RatingMin = 1
	RatingMax = 5
)

var ratingLabels = map[int]string{
	1: "Poor",
	2: "Fair",
	3: "Good",
	4: "Very Good",
	5: "Excellent",
}

// RatingLabel returns the display label of a rating value, or "" when out of range.
func RatingLabel(value int) string {
	return ratingLabels[value]
}

type Rating struct {
	Base
	ArticleID uint    `json:"-" gorm:"not null;uniqueIndex:idx_rating_user_article"`
	Article   Article `json:"-" gorm:"foreignKey:ArticleID;references:PkID;constraint:OnDelete:CASCADE"`
	UserID    uint    `json:"-" gorm:"not null;uniqueIndex:idx_rating_user_article"`
	User      User    `json:"-" gorm:"foreignKey:UserID;references:PkID;constraint:OnDelete:CASCADE"`
	Value     int     `json:"rating" gorm:"column:rating;not null"`
	Review    string  `json:"review" gorm:"size:200"`
}

type Bookmark struct {
	Base
	ArticleID uint    `json:"-" gorm:"not null;uniqueIndex:idx_bookmark_user_article"`
	Article   Article `json:"-" gorm:"foreignKey:ArticleID;references:PkID;constraint:OnDelete:CASCADE"`
	UserID    uint    `json:"-" gorm:"not null;uniqueIndex:idx_bookmark_user_article"`
	User      User    `json:"-" gorm:"foreignKey:UserID;references:PkID;constraint:OnDelete:CASCADE"`
}

type Clap struct {
	Base
	ArticleID uint    `json:"-" gorm:"not null;uniqueIndex:idx_clap_user_article"`
	Article   Article `json:"-" gorm:"foreignKey:ArticleID;references:PkID;constraint:OnDelete:CASCADE"`
	UserID    uint    `json:"-" gorm:"not null;uniqueIndex:idx_clap_user_article"`
	User      User    `json:"-" gorm:"foreignKey:UserID;references:PkID;constraint:OnDelete:CASCADE"`
}

type Comment struct {
	Base
	ArticleID uint    `json:"-" gorm:"not null;index"`
	Article   Article `json:"-" gorm:"foreignKey:ArticleID;references:PkID;constraint:OnDelete:CASCADE"`
	UserID    uint    `json:"-" gorm:"not null;index"`
	User      User    `json:"-" gorm:"foreignKey:UserID;references:PkID;constraint:OnDelete:CASCADE"`
	Title     string  `json:"title" gorm:"size:110;not null"`
	Content   string  `json:"content" gorm:"type:text;not null"`
}

// EngagementResponse is returned by every engagement write.
type EngagementResponse struct {
	ID             string    `json:"id"`
	Article        string    `json:"article"`
	ArticleTitle   string    `json:"title"`
	User           string    `json:"user"`
	Rating         int       `json:"rating,omitempty"`
	RatingLabel    string    `json:"rating_label,omitempty"`
	Review         string    `json:"review,omitempty"`
	CommentTitle   string    `json:"comment_title,omitempty"`
	Content        string    `json:"content,omitempty"`
	BookmarksCount *int64    `json:"bookmarks_count,omitempty"`
	ClapsCount     *int64    `json:"claps_count,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}
