package models

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	FirstName string `json:"first_name" validate:"required,max=110"`
	LastName  string `json:"last_name" validate:"required,max=110"`
	Password1 string `json:"password1" validate:"required,min=8,max=128"`
	Password2 string `json:"password2" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserParams is the input of account creation, independent of the HTTP shape.
type CreateUserParams struct {
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// ProfileUpdateRequest serves both PUT and PATCH; nil fields are left unchanged.
type ProfileUpdateRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,max=110"`
	LastName    *string `json:"last_name" validate:"omitempty,max=110"`
	Country     *string `json:"country" validate:"omitempty,len=2,alpha"`
	City        *string `json:"city" validate:"omitempty,max=120"`
	ProfilePic  *string `json:"profile_pic" validate:"omitempty,max=255"`
	Bio         *string `json:"bio" validate:"omitempty,max=1000"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=m f"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,e164"`
}

type ArticleRequest struct {
	Title string   `json:"title" validate:"required,max=110"`
	Body  string   `json:"body" validate:"required"`
	Image string   `json:"image" validate:"omitempty,max=255"`
	Tags  []string `json:"tags" validate:"omitempty,max=10,dive,max=50"`
}

type ArticlePatchRequest struct {
	Title *string   `json:"title" validate:"omitempty,max=110"`
	Body  *string   `json:"body"`
	Image *string   `json:"image" validate:"omitempty,max=255"`
	Tags  *[]string `json:"tags" validate:"omitempty,max=10,dive,max=50"`
}

type ArticleListParams struct {
	Author   string
	Title    string
	Search   string
	Ordering string
	Page     int
	Size     int
}

// RatingRequest and CommentRequest are checked by the engagement service, after
// the article and ownership checks.
type RatingRequest struct {
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

type CommentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CreateTagRequest struct {
	Name string `json:"name" validate:"required,max=50"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
