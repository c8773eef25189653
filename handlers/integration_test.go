package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"authors-api/config"
	"authors-api/handlers"
	"authors-api/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type envelope struct {
	Code     int             `json:"code"`
	CodeType string          `json:"code_type"`
	Message  string          `json:"message"`
	Data     json.RawMessage `json:"data"`
}

type articlePage struct {
	Results    []models.ArticleResponse `json:"results"`
	Pagination struct {
		TotalRecords int `json:"total_records"`
		TotalPages   int `json:"total_pages"`
	} `json:"pagination"`
}

type profilePage struct {
	Results []models.ProfileResponse `json:"results"`
}

type IntegrationTestSuite struct {
	suite.Suite
	db     *gorm.DB
	cfg    *config.Config
	router *gin.Engine
}

const defaultRemoteAddr = "192.0.2.1:41000"

func (suite *IntegrationTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		DBDriver:      "sqlite",
		SQLitePath:    ":memory:",
		JWTSecret:     "test-secret",
		JWTExpiration: time.Hour,
		CORSOrigins:   []string{"*"},
	}
	db, err := config.InitDB(cfg)
	suite.Require().NoError(err)

	suite.db = db
	suite.cfg = cfg
	suite.router = handlers.NewRouter(db, cfg)
}

func (suite *IntegrationTestSuite) TearDownTest() {
	if sqlDB, err := suite.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (suite *IntegrationTestSuite) request(method, path, token string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	return suite.requestFrom(suite.router, defaultRemoteAddr, method, path, token, body, headers...)
}

// requestFrom sends the request through router as if it arrived on a socket from remoteAddr.
func (suite *IntegrationTestSuite) requestFrom(router *gin.Engine, remoteAddr, method, path, token string, body interface{}, headers ...string) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = remoteAddr
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func (suite *IntegrationTestSuite) decode(env envelope, out interface{}) {
	suite.Require().NoError(json.Unmarshal(env.Data, out), string(env.Data))
}

func (suite *IntegrationTestSuite) register(email, first, last string) models.AuthResponse {
	w, env := suite.request(http.MethodPost, "/api/v1/auth/registration", "", gin.H{
		"email":      email,
		"first_name": first,
		"last_name":  last,
		"password1":  "password123",
		"password2":  "password123",
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp models.AuthResponse
	suite.decode(env, &resp)
	suite.Require().NotEmpty(resp.Token)
	return resp
}

func (suite *IntegrationTestSuite) createArticle(token, title, body string, tags ...string) models.ArticleResponse {
	w, env := suite.request(http.MethodPost, "/api/v1/articles", token, gin.H{
		"title": title,
		"body":  body,
		"tags":  tags,
	})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var article models.ArticleResponse
	suite.decode(env, &article)
	return article
}

func (suite *IntegrationTestSuite) myProfile(token string) models.ProfileResponse {
	w, env := suite.request(http.MethodGet, "/api/v1/profiles/me", token, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var profile models.ProfileResponse
	suite.decode(env, &profile)
	return profile
}

func (suite *IntegrationTestSuite) countRows(model interface{}) int64 {
	var n int64
	suite.Require().NoError(suite.db.Model(model).Count(&n).Error)
	return n
}

func (suite *IntegrationTestSuite) TestHealth() {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusOK, w.Code)
}

func (suite *IntegrationTestSuite) TestRegisterLoginAndCurrentUser() {
	registered := suite.register("jane@Example.com", "Jane", "Doe")
	suite.Equal("jane@example.com", registered.User.Email)
	suite.Equal("Jane Doe", registered.User.FullName)

	w, env := suite.request(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "jane@example.com",
		"password": "password123",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var login models.AuthResponse
	suite.decode(env, &login)

	w, env = suite.request(http.MethodGet, "/api/v1/auth/user", login.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var user models.UserResponse
	suite.decode(env, &user)
	suite.Equal(registered.User.ID, user.ID)

	w, env = suite.request(http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    "jane@example.com",
		"password": "nope-nope",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(models.MsgInvalidCredential, env.Message)

	w, env = suite.request(http.MethodGet, "/api/v1/auth/user", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(models.MsgNotAuthenticated, env.Message)

	w, _ = suite.request(http.MethodGet, "/api/v1/auth/user", "garbage", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestRegisterCreatesProfile() {
	auth := suite.register("jane@example.com", "Jane", "Doe")

	profile := suite.myProfile(auth.Token)
	suite.Equal("jane@example.com", profile.Email)
	suite.Equal("Jane Doe", profile.FullName)
	suite.Equal(int64(0), profile.FollowersCount)
	suite.Equal(int64(1), suite.countRows(&models.Profile{}))
}

func (suite *IntegrationTestSuite) TestRegisterPasswordMismatch() {
	w, env := suite.request(http.MethodPost, "/api/v1/auth/registration", "", gin.H{
		"email":      "jane@example.com",
		"first_name": "Jane",
		"last_name":  "Doe",
		"password1":  "password123",
		"password2":  "password321",
	})
	suite.Require().Equal(http.StatusBadRequest, w.Code)

	var fields map[string][]string
	suite.decode(env, &fields)
	suite.Equal([]string{"The two password fields didn't match."}, fields["password2"])
	suite.Equal(int64(0), suite.countRows(&models.User{}))
}

func (suite *IntegrationTestSuite) TestRegisterDuplicateEmail() {
	suite.register("jane@example.com", "Jane", "Doe")

	w, env := suite.request(http.MethodPost, "/api/v1/auth/registration", "", gin.H{
		"email":      "jane@EXAMPLE.com",
		"first_name": "Janet",
		"last_name":  "Doe",
		"password1":  "password123",
		"password2":  "password123",
	})
	suite.Require().Equal(http.StatusBadRequest, w.Code)

	var fields map[string][]string
	suite.decode(env, &fields)
	suite.Equal([]string{"This email is already taken"}, fields["email"])
	suite.Equal(int64(1), suite.countRows(&models.User{}))
}

func (suite *IntegrationTestSuite) TestRegisterValidation() {
	w, env := suite.request(http.MethodPost, "/api/v1/auth/registration", "", gin.H{
		"email":     "not-an-email",
		"password1": "short",
		"password2": "short",
	})
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	suite.Equal("validationError", env.CodeType)

	var fields map[string][]string
	suite.decode(env, &fields)
	suite.Contains(fields, "email")
	suite.Contains(fields, "first_name")
	suite.Contains(fields, "last_name")
	suite.Contains(fields, "password1")
}

func (suite *IntegrationTestSuite) TestCreateArticleRequiresAuth() {
	w, env := suite.request(http.MethodPost, "/api/v1/articles", "", gin.H{"title": "Hello", "body": "World"})
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.Equal(models.MsgNotAuthenticated, env.Message)
	suite.Equal(int64(0), suite.countRows(&models.Article{}))
}

func (suite *IntegrationTestSuite) TestCreateArticleSlugAndReadingTime() {
	auth := suite.register("writer@example.com", "Wren", "Writer")

	first := suite.createArticle(auth.Token, "Hello World", "Some words here", "Go", "testing")
	suite.Equal("hello-world", first.Slug)
	suite.Equal(1, first.TimeReading)
	suite.Equal([]string{"go", "testing"}, first.Tags)
	suite.Equal(auth.User.ID, first.Author)
	suite.Equal("Wren", first.Username)

	second := suite.createArticle(auth.Token, "Hello World", "Other body")
	suite.Equal("hello-world-1", second.Slug)
	suite.NotEqual(first.ID, second.ID)

	w, env := suite.request(http.MethodPost, "/api/v1/articles", auth.Token, gin.H{"title": "No body"})
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	var fields map[string][]string
	suite.decode(env, &fields)
	suite.Contains(fields, "body")
}

func (suite *IntegrationTestSuite) TestArticleViewsAreRecordedOncePerViewer() {
	author := suite.register("writer@example.com", "Wren", "Writer")
	reader := suite.register("reader@example.com", "Reed", "Reader")
	article := suite.createArticle(author.Token, "Viewed", "body")
	path := "/api/v1/articles/" + article.ID

	view := func(remoteAddr, token string) int64 {
		w, env := suite.requestFrom(suite.router, remoteAddr, http.MethodGet, path, token, nil)
		suite.Require().Equal(http.StatusOK, w.Code)
		var got models.ArticleResponse
		suite.decode(env, &got)
		return got.ViewsCount
	}

	for i := 0; i < 3; i++ {
		suite.Equal(int64(1), view("10.0.0.1:5000", ""))
	}
	suite.Equal(int64(1), view("10.0.0.1:6000", ""), "another port on the same host is the same viewer")
	suite.Equal(int64(2), view("10.0.0.1:5000", reader.Token))
	suite.Equal(int64(3), view("10.0.0.2:5000", ""))
	suite.Equal(int64(3), view("10.0.0.1:5000", reader.Token))
}

func (suite *IntegrationTestSuite) TestForwardedForIsIgnoredWithoutTrustedProxies() {
	author := suite.register("writer@example.com", "Wren", "Writer")
	article := suite.createArticle(author.Token, "Spoofed", "body")
	path := "/api/v1/articles/" + article.ID

	var got models.ArticleResponse
	for i := 1; i <= 5; i++ {
		w, env := suite.request(http.MethodGet, path, "", nil, "X-Forwarded-For", fmt.Sprintf("1.2.3.%d", i))
		suite.Require().Equal(http.StatusOK, w.Code)
		suite.decode(env, &got)
	}
	suite.Equal(int64(1), got.ViewsCount)

	var view models.ArticleView
	suite.Require().NoError(suite.db.First(&view).Error)
	suite.Equal("192.0.2.1", view.ViewerIP)
}

func (suite *IntegrationTestSuite) TestForwardedForFromTrustedProxy() {
	author := suite.register("writer@example.com", "Wren", "Writer")
	article := suite.createArticle(author.Token, "Proxied", "body")
	path := "/api/v1/articles/" + article.ID

	cfg := *suite.cfg
	cfg.TrustedProxies = []string{"10.1.0.0/16"}
	router := handlers.NewRouter(suite.db, &cfg)

	var got models.ArticleResponse
	for _, client := range []string{"203.0.113.7", "203.0.113.8", "203.0.113.7"} {
		w, env := suite.requestFrom(router, "10.1.0.5:443", http.MethodGet, path, "", nil, "X-Forwarded-For", client)
		suite.Require().Equal(http.StatusOK, w.Code)
		suite.decode(env, &got)
	}
	suite.Equal(int64(2), got.ViewsCount)

	w, env := suite.requestFrom(router, "198.51.100.9:443", http.MethodGet, path, "", nil, "X-Forwarded-For", "203.0.113.9")
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(env, &got)
	suite.Equal(int64(3), got.ViewsCount)

	var count int64
	suite.Require().NoError(suite.db.Model(&models.ArticleView{}).Where("viewer_ip = ?", "198.51.100.9").Count(&count).Error)
	suite.Equal(int64(1), count, "an untrusted peer is recorded by its socket address")
}

func (suite *IntegrationTestSuite) TestArticleNotFound() {
	auth := suite.register("writer@example.com", "Wren", "Writer")

	w, env := suite.request(http.MethodGet, "/api/v1/articles/not-a-uuid", "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal(models.MsgNotFound, env.Message)

	w, _ = suite.request(http.MethodGet, "/api/v1/articles/5f0c7a5e-4a44-4d8a-9b3e-2d0b9d1e2f11", auth.Token, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestUpdateArticlePermissions() {
	author := suite.register("writer@example.com", "Wren", "Writer")
	other := suite.register("other@example.com", "Otto", "Other")
	article := suite.createArticle(author.Token, "Original", "original body", "go")
	path := "/api/v1/articles/" + article.ID

	w, env := suite.request(http.MethodPut, path, other.Token, gin.H{"title": "Hijacked", "body": "x"})
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal(models.MsgPermissionDenied, env.Message)

	w, _ = suite.request(http.MethodPut, path, "", gin.H{"title": "Hijacked", "body": "x"})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w, _ = suite.request(http.MethodDelete, path, other.Token, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	var stored models.Article
	suite.Require().NoError(suite.db.Where("slug = ?", "original").First(&stored).Error)
	suite.Equal("Original", stored.Title)
	suite.Equal("original body", stored.Body)

	w, env = suite.request(http.MethodPut, path, author.Token, gin.H{"title": "Rewritten", "body": "new body"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var updated models.ArticleResponse
	suite.decode(env, &updated)
	suite.Equal("Rewritten", updated.Title)
	suite.Equal("original", updated.Slug)
	suite.Empty(updated.Tags)

	w, env = suite.request(http.MethodPatch, path, author.Token, gin.H{"tags": []string{"Rust"}})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.decode(env, &updated)
	suite.Equal("Rewritten", updated.Title)
	suite.Equal("new body", updated.Body)
	suite.Equal([]string{"rust"}, updated.Tags)
}

func (suite *IntegrationTestSuite) TestDeleteArticleCascades() {
	author := suite.register("writer@example.com", "Wren", "Writer")
	reader := suite.register("reader@example.com", "Reed", "Reader")
	article := suite.createArticle(author.Token, "Doomed", "body", "go")
	path := "/api/v1/articles/" + article.ID

	suite.request(http.MethodGet, path, reader.Token, nil)
	w, _ := suite.request(http.MethodPost, path+"/rate", reader.Token, gin.H{"rating": 5})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	w, _ = suite.request(http.MethodPost, path+"/bookmark", reader.Token, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w, _ = suite.request(http.MethodDelete, path, author.Token, nil)
	suite.Require().Equal(http.StatusNoContent, w.Code)
	suite.Zero(w.Body.Len())

	w, _ = suite.request(http.MethodGet, path, "", nil)
	suite.Equal(http.StatusNotFound, w.Code)

	suite.Equal(int64(0), suite.countRows(&models.ArticleView{}))
	suite.Equal(int64(0), suite.countRows(&models.Rating{}))
	suite.Equal(int64(0), suite.countRows(&models.Bookmark{}))
}

func (suite *IntegrationTestSuite) TestRating() {
	author := suite.register("writer@example.com", "Wren", "Writer")
	reader := suite.register("reader@example.com", "Reed", "Reader")
	article := suite.createArticle(author.Token, "Rated", "body")
	path := "/api/v1/articles/" + article.ID + "/rate"

	w, env := suite.request(http.MethodPost, path, author.Token, gin.H{"rating": 5})
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("You cannot rate your own article.", env.Message)

	w, _ = suite.request(http.MethodPost, path, reader.Token, gin.H{"rating": 6})
	suite.Equal(http.StatusBadRequest, w.Code)

	w, env = suite.request(http.MethodPost, path, reader.Token, gin.H{"rating": 4, "review": "Solid"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var rating models.EngagementResponse
	suite.decode(env, &rating)
	suite.Equal(4, rating.Rating)
	suite.Equal("Very Good", rating.RatingLabel)
	suite.Equal("Solid", rating.Review)

	w, env = suite.request(http.MethodPost, path, reader.Token, gin.H{"rating": 2})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("You already rated this article Rated", env.Message)
	suite.Equal(int64(1), suite.countRows(&models.Rating{}))

	w, _ = suite.request(http.MethodPost, path, "", gin.H{"rating": 3})
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestEngagementChecksTargetBeforePayload() {
	author := suite.register("writer@example.com", "Wren", "Writer")
	reader := suite.register("reader@example.com", "Reed", "Reader")
	article := suite.createArticle(author.Token, "Guarded", "body")
	base := "/api/v1/articles/" + article.ID

	for _, body := range []interface{}{gin.H{"rating": 0}, gin.H{"rating": 9}, gin.H{}, nil} {
		w, env := suite.request(http.MethodPost, base+"/rate", author.Token, body)
		suite.Equal(http.StatusForbidden, w.Code, "%v", body)
		suite.Equal("You cannot rate your own article.", env.Message)
	}

	for _, body := range []interface{}{gin.H{"title": "", "content": ""}, gin.H{}, nil} {
		w, env := suite.request(http.MethodPost, base+"/comment", author.Token, body)
		suite.Equal(http.StatusForbidden, w.Code, "%v", body)
		suite.Equal("You cannot comment on your own article.", env.Message)
	}

	w, _ := suite.request(http.MethodPost, "/api/v1/articles/5f0c7a5e-4a44-4d8a-9b3e-2d0b9d1e2f11/rate", reader.Token, gin.H{"rating": 0})
	suite.Equal(http.StatusNotFound, w.Code)

	w, _ = suite.request(http.MethodPost, base+"/rate", reader.Token, gin.H{"rating": 3})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w, env := suite.request(http.MethodPost, base+"/rate", reader.Token, gin.H{"rating": 0})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("You already rated this article Guarded", env.Message)

	other := suite.register("other@example.com", "Otto", "Other")
	w, env = suite.request(http.MethodPost, base+"/rate", other.Token, gin.H{"rating": 0})
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	var fields map[string][]string
	suite.decode(env, &fields)
	suite.Contains(fields, "rating")
	suite.Equal(int64(1), suite.countRows(&models.Rating{}))

	w, _ = suite.request(http.MethodPost, base+"/rate", other.Token, gin.H{"rating": "five"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *IntegrationTestSuite) TestBookmarkTwice() {
	author := suite.register("writer@example.com", "Wren", "Writer")
	reader := suite.register("reader@example.com", "Reed", "Reader")
	article := suite.createArticle(author.Token, "Saved", "body")
	path := "/api/v1/articles/" + article.ID + "/bookmark"

	w, env := suite.request(http.MethodPost, path, reader.Token, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var bookmark models.EngagementResponse
	suite.decode(env, &bookmark)
	suite.Require().NotNil(bookmark.BookmarksCount)
	suite.Equal(int64(1), *bookmark.BookmarksCount)

	w, env = suite.request(http.MethodPost, path, reader.Token, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Contains(env.Message, "already bookmarked")
	suite.Equal(int64(1), suite.countRows(&models.Bookmark{}))

	w, env = suite.request(http.MethodGet, "/api/v1/articles/bookmarked", reader.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page articlePage
	suite.decode(env, &page)
	suite.Require().Len(page.Results, 1)
	suite.Equal(article.ID, page.Results[0].ID)

	w, env = suite.request(http.MethodGet, "/api/v1/articles/bookmarked", author.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(env, &page)
	suite.Empty(page.Results)
}

func (suite *IntegrationTestSuite) TestClapAndComment() {
	author := suite.register("writer@example.com", "Wren", "Writer")
	reader := suite.register("reader@example.com", "Reed", "Reader")
	article := suite.createArticle(author.Token, "Loud", "body")
	base := "/api/v1/articles/" + article.ID

	w, env := suite.request(http.MethodPost, base+"/clap", author.Token, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("You cannot clap for your own article.", env.Message)

	w, env = suite.request(http.MethodPost, base+"/clap", reader.Token, nil)
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var clap models.EngagementResponse
	suite.decode(env, &clap)
	suite.Require().NotNil(clap.ClapsCount)
	suite.Equal(int64(1), *clap.ClapsCount)

	w, env = suite.request(http.MethodPost, base+"/clap", reader.Token, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("You already clapped on this article Loud", env.Message)

	w, env = suite.request(http.MethodPost, base+"/comment", author.Token, gin.H{"title": "Me", "content": "Self"})
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("You cannot comment on your own article.", env.Message)

	for i := 0; i < 2; i++ {
		w, _ = suite.request(http.MethodPost, base+"/comment", reader.Token, gin.H{"title": "Nice", "content": "Great read"})
		suite.Equal(http.StatusCreated, w.Code)
	}
	suite.Equal(int64(2), suite.countRows(&models.Comment{}))

	w, _ = suite.request(http.MethodPost, base+"/comment", reader.Token, gin.H{"title": "Empty"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *IntegrationTestSuite) TestArticlePagination() {
	auth := suite.register("writer@example.com", "Wren", "Writer")
	for i := 1; i <= 5; i++ {
		suite.createArticle(auth.Token, fmt.Sprintf("Article %d", i), "body")
	}

	w, env := suite.request(http.MethodGet, "/api/v1/articles", auth.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page articlePage
	suite.decode(env, &page)
	suite.Len(page.Results, 2)
	suite.Equal(5, page.Pagination.TotalRecords)
	suite.Equal(3, page.Pagination.TotalPages)

	w, env = suite.request(http.MethodGet, "/api/v1/articles?page=3", auth.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(env, &page)
	suite.Len(page.Results, 1)

	w, env = suite.request(http.MethodGet, "/api/v1/articles?page=4", auth.Token, nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal(models.MsgInvalidPage, env.Message)

	w, env = suite.request(http.MethodGet, "/api/v1/articles?size=50", auth.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(env, &page)
	suite.Len(page.Results, 5)
}

func (suite *IntegrationTestSuite) TestArticleFilters() {
	wren := suite.register("writer@example.com", "Wren", "Writer")
	otto := suite.register("other@example.com", "Otto", "Other")
	suite.createArticle(wren.Token, "Learning Go", "channels and goroutines")
	suite.createArticle(wren.Token, "Cooking", "pasta with garlic")
	suite.createArticle(otto.Token, "Go tooling", "vet and fmt with goroutines")

	list := func(query string) []models.ArticleResponse {
		w, env := suite.request(http.MethodGet, "/api/v1/articles?size=10&"+query, wren.Token, nil)
		suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
		var page articlePage
		suite.decode(env, &page)
		return page.Results
	}

	suite.Len(list("author=wren"), 2)
	suite.Len(list("title=go"), 2)
	suite.Len(list("search=goroutines"), 2)
	suite.Len(list("search=goroutines+vet"), 1)
	suite.Len(list("author=otto&title=cooking"), 0)

	ascending := list("ordering=pkid")
	suite.Require().Len(ascending, 3)
	suite.Equal("Learning Go", ascending[0].Title)

	descending := list("ordering=-pkid")
	suite.Require().Len(descending, 3)
	suite.Equal("Go tooling", descending[0].Title)
}

func (suite *IntegrationTestSuite) TestFollowFlow() {
	alice := suite.register("alice@example.com", "Alice", "Smith")
	bob := suite.register("bob@example.com", "Bob", "Stone")
	aliceProfile := suite.myProfile(alice.Token)
	bobProfile := suite.myProfile(bob.Token)

	w, env := suite.request(http.MethodPost, "/api/v1/profiles/"+aliceProfile.ID+"/follow", alice.Token, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("You can't follow your own account.", env.Message)

	w, env = suite.request(http.MethodPost, "/api/v1/profiles/"+bobProfile.ID+"/follow", alice.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	suite.Equal("You are now following Bob Stone", env.Message)

	w, env = suite.request(http.MethodPost, "/api/v1/profiles/"+bobProfile.ID+"/follow", alice.Token, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("You are already following Bob Stone", env.Message)

	suite.Equal(int64(1), suite.myProfile(bob.Token).FollowersCount)
	suite.Equal(int64(0), suite.myProfile(bob.Token).FollowingCount)
	suite.Equal(int64(1), suite.myProfile(alice.Token).FollowingCount)

	w, env = suite.request(http.MethodGet, "/api/v1/profiles/me/followers", bob.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var followers profilePage
	suite.decode(env, &followers)
	suite.Require().Len(followers.Results, 1)
	suite.Equal(aliceProfile.ID, followers.Results[0].ID)

	w, env = suite.request(http.MethodGet, "/api/v1/profiles/me/followers", alice.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(env, &followers)
	suite.Empty(followers.Results)

	w, env = suite.request(http.MethodGet, "/api/v1/profiles/me/followings", alice.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var following profilePage
	suite.decode(env, &following)
	suite.Require().Len(following.Results, 1)
	suite.Equal(bobProfile.ID, following.Results[0].ID)

	w, env = suite.request(http.MethodPost, "/api/v1/profiles/"+bobProfile.ID+"/unfollow", alice.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.Equal("You are now unfollowing Bob Stone", env.Message)

	w, _ = suite.request(http.MethodPost, "/api/v1/profiles/"+bobProfile.ID+"/unfollow", alice.Token, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w, _ = suite.request(http.MethodPost, "/api/v1/profiles/5f0c7a5e-4a44-4d8a-9b3e-2d0b9d1e2f11/follow", alice.Token, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestListProfiles() {
	alice := suite.register("alice@example.com", "Alice", "Smith")
	suite.register("bob@example.com", "Bob", "Stone")

	w, env := suite.request(http.MethodGet, "/api/v1/profiles/all", alice.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var page profilePage
	suite.decode(env, &page)
	suite.Len(page.Results, 2)

	w, _ = suite.request(http.MethodGet, "/api/v1/profiles/all", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *IntegrationTestSuite) TestUpdateProfile() {
	auth := suite.register("alice@example.com", "Alice", "Smith")

	w, env := suite.request(http.MethodPatch, "/api/v1/profiles/me", auth.Token, gin.H{"gender": "x"})
	suite.Require().Equal(http.StatusBadRequest, w.Code)
	var fields map[string][]string
	suite.decode(env, &fields)
	suite.Contains(fields, "gender")

	w, env = suite.request(http.MethodPatch, "/api/v1/profiles/me", auth.Token, gin.H{
		"first_name": "Alicia",
		"country":    "NG",
		"city":       "Lagos",
		"bio":        "Writes about Go",
	})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var profile models.ProfileResponse
	suite.decode(env, &profile)
	suite.Equal("Alicia", profile.FirstName)
	suite.Equal("Alicia Smith", profile.FullName)
	suite.Equal("NG", profile.Country)
	suite.Equal("Lagos", profile.City)
	suite.Equal("Writes about Go", profile.Bio)

	w, env = suite.request(http.MethodPatch, "/api/v1/profiles/me", auth.Token, gin.H{"bio": "Updated"})
	suite.Require().Equal(http.StatusOK, w.Code)
	suite.decode(env, &profile)
	suite.Equal("Updated", profile.Bio)
	suite.Equal("Lagos", profile.City)
}

func (suite *IntegrationTestSuite) TestDeleteAccount() {
	auth := suite.register("alice@example.com", "Alice", "Smith")
	suite.createArticle(auth.Token, "Soon gone", "body")

	w, _ := suite.request(http.MethodDelete, "/api/v1/profiles/me", auth.Token, nil)
	suite.Require().Equal(http.StatusNoContent, w.Code)

	w, _ = suite.request(http.MethodGet, "/api/v1/auth/user", auth.Token, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)

	suite.Equal(int64(0), suite.countRows(&models.User{}))
	suite.Equal(int64(0), suite.countRows(&models.Profile{}))
	suite.Equal(int64(0), suite.countRows(&models.Article{}))
}

func (suite *IntegrationTestSuite) TestTags() {
	auth := suite.register("alice@example.com", "Alice", "Smith")
	suite.createArticle(auth.Token, "One", "body", "go", "web")
	suite.createArticle(auth.Token, "Two", "body", "go")

	w, _ := suite.request(http.MethodPost, "/api/v1/tags", auth.Token, gin.H{"name": "rust"})
	suite.Equal(http.StatusForbidden, w.Code)

	suite.Require().NoError(suite.db.Model(&models.User{}).Where("email = ?", "alice@example.com").Update("is_staff", true).Error)

	w, env := suite.request(http.MethodPost, "/api/v1/tags", auth.Token, gin.H{"name": "Rust"})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var tag models.TagResponse
	suite.decode(env, &tag)
	suite.Equal("rust", tag.Name)

	w, _ = suite.request(http.MethodPost, "/api/v1/tags", auth.Token, gin.H{"name": "rust"})
	suite.Equal(http.StatusBadRequest, w.Code)

	w, env = suite.request(http.MethodGet, "/api/v1/tags", auth.Token, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var tags []models.TagResponse
	suite.decode(env, &tags)
	suite.Require().Len(tags, 3)
	suite.Equal("go", tags[0].Name)
	suite.Equal(int64(2), tags[0].ArticleCount)
	suite.Equal("rust", tags[2].Name)
	suite.Equal(int64(0), tags[2].ArticleCount)
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
