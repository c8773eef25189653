package models

type Tag struct {
	Base
	Name string `json:"name" gorm:"uniqueIndex;not null;size:50"`
}

type TagResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ArticleCount int64  `json:"article_count"`
}
