package services

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/yungbote/commerce-admin-backend/internal/platform/apierr"
	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/repos"
	"github.com/yungbote/commerce-admin-backend/internal/types"
)

// TokenClaims is the JWT payload issued on login.
type TokenClaims struct {
	UserID  uuid.UUID `json:"user_id"`
	IsStaff bool      `json:"is_staff"`
	jwt.RegisteredClaims
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, *types.User, error)
	ParseToken(tokenString string) (*TokenClaims, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(db *gorm.DB, baseLog *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:           db,
		log:          serviceLog,
		userRepo:     userRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

// Login verifies the credentials and returns a signed access token. Invalid
// email and invalid password produce the same error so the response does not
// leak which accounts exist.
func (as *authService) Login(ctx context.Context, email, password string) (string, *types.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return "", nil, apierr.ValidationField("detail", "Email and password are required.")
	}
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", nil, err
	}
	if user == nil || user.IsDeleted {
		return "", nil, apierr.Unauthorized("Invalid credentials.")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apierr.Unauthorized("Invalid credentials.")
	}

	now := time.Now().UTC()
	claims := TokenClaims{
		UserID:  user.ID,
		IsStaff: user.IsStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(as.accessTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", nil, err
	}
	as.log.Info("user logged in", "user_id", user.ID)
	return signed, user, nil
}

func (as *authService) ParseToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apierr.Unauthorized("Invalid or expired token.")
	}
	return claims, nil
}
