package services

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	"github.com/sajibdev/chirpnet/backend/internal/errs"
	"github.com/sajibdev/chirpnet/backend/internal/models"
	"github.com/sajibdev/chirpnet/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the fixed validity window of a session token.
const TokenTTL = 15 * 24 * time.Hour

const minPasswordLen = 6

// SessionClaims are the custom claims carried by a session token.
type SessionClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// AuthService implements signup, login and session-token resolution.
type AuthService struct {
	users     repositories.UserRepository
	jwtSecret []byte
	validate  *validator.Validate
}

// NewAuthService creates a new AuthService signing tokens with secret.
func NewAuthService(users repositories.UserRepository, secret string) *AuthService {
	return &AuthService{
		users:     users,
		jwtSecret: []byte(secret),
		validate:  validator.New(),
	}
}

// Signup validates and persists a new account. The password is stored
// only as a bcrypt hash.
func (s *AuthService) Signup(ctx context.Context, req models.SignupRequest) (*models.User, error) {
	if err := s.validate.Var(req.Email, "required,email"); err != nil {
		return nil, errs.ErrInvalidEmail
	}
	if len(req.Password) < minPasswordLen {
		return nil, errs.ErrPasswordTooShort
	}

	if _, err := s.users.GetByUsername(ctx, req.Username); err == nil {
		return nil, errs.ErrUsernameTaken
	} else if !errors.Is(err, errs.ErrUserNotFound) {
		return nil, err
	}
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, errs.ErrEmailTaken
	} else if !errors.Is(err, errs.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &models.User{
		FullName:   req.FullName,
		Username:   req.Username,
		Email:      req.Email,
		Password:   string(hashed),
		Followers:  []primitive.ObjectID{},
		Following:  []primitive.ObjectID{},
		LikedPosts: []primitive.ObjectID{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns the user. The error value is
// identical whether the username is unknown or the password is wrong, so
// responses never reveal whether an account exists.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, errs.ErrUserNotFound) {
		return nil, err
	}

	// Run the comparison even for an unknown username so both failure
	// paths do the same work and return the same error.
	hashed := ""
	if user != nil {
		hashed = user.Password
	}
	if cmpErr := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)); cmpErr != nil || user == nil {
		return nil, errs.ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken signs a fresh session token bound to the user id.
func (s *AuthService) IssueToken(userID primitive.ObjectID) (string, error) {
	claims := &SessionClaims{
		UserID: userID.Hex(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// Authenticate resolves a session token to its user record. Absent,
// malformed, expired or badly signed tokens fail with ErrUnauthenticated;
// a valid token whose subject no longer exists fails with ErrUserNotFound.
func (s *AuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, error) {
	if tokenString == "" {
		return nil, errs.ErrUnauthenticated
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.ErrUnauthenticated
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errs.ErrUnauthenticated
	}

	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, errs.ErrUnauthenticated
	}
	return s.users.GetByID(ctx, userID)
}
