package services

import (
	"errors"
	"strings"
	"time"

	"authors-api/config"
	"authors-api/logger"
	"authors-api/models"
	"authors-api/repositories"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/go-playground/validator.v9"
	"gorm.io/gorm"
)

const msgEmailTaken = "This email is already taken"

var emailValidator = validator.New()

// Claims is the payload of an access token. UserID is the public user id.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	CreateUser(params models.CreateUserParams) (*models.User, error)
	CreateSuperuser(params models.CreateUserParams) (*models.User, error)
	Authenticate(token string) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	jwt      config.JWT
}

func NewAuthService(userRepo repositories.UserRepository, jwtCfg config.JWT) AuthService {
	return &authService{userRepo: userRepo, jwt: jwtCfg}
}

func (s *authService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	if req.Password1 != req.Password2 {
		return nil, models.NewFieldError("password2", "The two password fields didn't match.")
	}

	user, err := s.CreateUser(models.CreateUserParams{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password1,
	})
	if err != nil {
		return nil, err
	}

	return s.authResponse(user)
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorUnauthorized{Message: models.MsgInvalidCredential}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrorUnauthorized{Message: models.MsgInvalidCredential}
	}
	if !user.IsActive {
		return nil, models.ErrorUnauthorized{Message: models.MsgInvalidCredential}
	}

	logger.Log.Info("user logged in", zap.String("user_id", user.ID.String()))
	return s.authResponse(user)
}

// CreateUser validates and normalizes the account fields, then stores the user
// together with an empty profile.
func (s *authService) CreateUser(params models.CreateUserParams) (*models.User, error) {
	return s.createUser(params, false)
}

func (s *authService) CreateSuperuser(params models.CreateUserParams) (*models.User, error) {
	return s.createUser(params, true)
}

func (s *authService) createUser(params models.CreateUserParams, superuser bool) (*models.User, error) {
	email := strings.TrimSpace(params.Email)
	firstName := strings.TrimSpace(params.FirstName)
	lastName := strings.TrimSpace(params.LastName)

	if email == "" {
		return nil, models.NewFieldError("email", "email must be set")
	}
	if firstName == "" {
		return nil, models.NewFieldError("first_name", "first name must be set")
	}
	if lastName == "" {
		return nil, models.NewFieldError("last_name", "last name must be set")
	}
	if err := emailValidator.Var(email, "email"); err != nil {
		return nil, models.NewFieldError("email", "Email is not valid")
	}
	email = NormalizeEmail(email)

	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, models.NewFieldError("email", msgEmailTaken)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:       email,
		FirstName:   firstName,
		LastName:    lastName,
		Password:    string(hashedPassword),
		IsActive:    true,
		IsStaff:     superuser,
		IsSuperuser: superuser,
		DateJoined:  time.Now(),
	}
	profile := &models.Profile{}

	if err := s.userRepo.CreateWithProfile(user, profile); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewFieldError("email", msgEmailTaken)
		}
		return nil, err
	}

	logger.Log.Info("user created",
		zap.String("user_id", user.ID.String()),
		zap.Bool("superuser", superuser),
	)
	return user, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *authService) Authenticate(tokenString string) (*models.User, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.jwt.Secret, nil
	})
	if err != nil || !token.Valid {
		return nil, models.ErrorUnauthorized{Message: "Given token not valid for any token type"}
	}

	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, models.ErrorUnauthorized{Message: "Token contained no recognizable user identification"}
	}

	user, err := s.userRepo.GetByPublicID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorUnauthorized{Message: "User not found"}
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, models.ErrorUnauthorized{Message: "User is inactive"}
	}
	return user, nil
}

func (s *authService) authResponse(user *models.User) (*models.AuthResponse, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{
		Token: token,
		User:  models.NewUserResponse(user),
	}, nil
}

func (s *authService) generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := Claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwt.Expiration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(s.jwt.Secret)
}

// NormalizeEmail lower-cases the domain part of an address; the local part is kept.
func NormalizeEmail(email string) string {
	email = strings.TrimSpace(email)
	at := strings.LastIndex(email, "@")
	if at < 0 {
		return email
	}
	return email[:at] + strings.ToLower(email[at:])
}
