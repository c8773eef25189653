package helper

import (
	"strconv"

	"authors-api/models"

	"github.com/gin-gonic/gin"
)

const (
	ArticlePageSize    = 2
	ArticleMaxPageSize = 10
	ProfilePageSize    = 10
	ProfileMaxPageSize = 20
)

// Page is a requested 1-based page number and its size.
type Page struct {
	Number int
	Size   int
}

func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// ParsePage reads "page" and "size" from the query string. A malformed page is an
// error; a malformed size falls back to the default and an oversized one is capped.
func ParsePage(c *gin.Context, defaultSize, maxSize int) (Page, error) {
	p := Page{Number: 1, Size: defaultSize}

	if raw := c.Query("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return p, models.ErrorNotFound{Message: models.MsgInvalidPage}
		}
		p.Number = n
	}

	if raw := c.Query("size"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			p.Size = n
		}
	}
	if p.Size > maxSize {
		p.Size = maxSize
	}

	return p, nil
}

// CheckPage rejects a page past the last one. An empty result set still has page 1.
func CheckPage(p Page, total int64) error {
	lastPage := int((total + int64(p.Size) - 1) / int64(p.Size))
	if lastPage < 1 {
		lastPage = 1
	}
	if p.Number > lastPage {
		return models.ErrorNotFound{Message: models.MsgInvalidPage}
	}
	return nil
}
