package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base is embedded by every persisted entity. PkID stays internal; ID is the public identifier.
type Base struct {
	PkID      uint      `json:"-" gorm:"column:pkid;primaryKey;autoIncrement"`
	ID        uuid.UUID `json:"id" gorm:"type:uuid;uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Base) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// NewestFirst is the default list order of table: newest created first, pkid breaking ties.
func NewestFirst(table string) string {
	return table + ".created_at desc, " + table + ".pkid desc"
}

// All returns every model in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Profile{},
		&ProfileFollow{},
		&Tag{},
		&Article{},
		&ArticleView{},
		&Rating{},
		&Bookmark{},
		&Clap{},
		&Comment{},
	}
}
