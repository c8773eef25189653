package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewestFirst(t *testing.T) {
	assert.Equal(t, "articles.created_at desc, articles.pkid desc", NewestFirst("articles"))
	assert.Equal(t, "bookmarks.created_at desc, bookmarks.pkid desc", NewestFirst("bookmarks"))
}

func TestBeforeCreateKeepsExistingID(t *testing.T) {
	var b Base
	assert.NoError(t, b.BeforeCreate(nil))
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", b.ID.String())

	id := b.ID
	assert.NoError(t, b.BeforeCreate(nil))
	assert.Equal(t, id, b.ID)
}
