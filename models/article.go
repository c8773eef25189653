package models

import (
	"time"
)

type Article struct {
	Base
	AuthorID uint   `json:"-" gorm:"not null;index"`
	Author   User   `json:"-" gorm:"foreignKey:AuthorID;references:PkID;constraint:OnDelete:CASCADE"`
	Title    string `json:"title" gorm:"not null;size:110"`
	Slug     string `json:"slug" gorm:"uniqueIndex;not null;size:255"`
	Body     string `json:"body" gorm:"type:text;not null"`
	Image    string `json:"image"`
	Tags     []Tag  `json:"tags" gorm:"many2many:article_tags;joinForeignKey:ArticleID;joinReferences:TagID;constraint:OnDelete:CASCADE"`
}

// ArticleResponse is the read shape of an article.
type ArticleResponse struct {
	ID          string    `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Image       string    `json:"image"`
	Tags        []string  `json:"tags"`
	Author      string    `json:"author"`
	Username    string    `json:"username"`
	ViewsCount  int64     `json:"views_count"`
	TimeReading int       `json:"time_reading"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (a *Article) TagNames() []string {
	names := make([]string, 0, len(a.Tags))
	for _, t := range a.Tags {
		names = append(names, t.Name)
	}
	return names
}
