package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"

	"github.com/daniluce/portfolio-backend/internal/platform/ctxutil"
	"github.com/daniluce/portfolio-backend/internal/platform/logger"
)

// AuthService verifies bearer tokens issued elsewhere. Issuance, refresh
// and user accounts are not this backend's concern: the token is treated
// as an opaque credential that either resolves to an identity or rejects.
type AuthService interface {
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
}

// JWTClaims mirrors the payload the external issuer signs.
type JWTClaims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type authService struct {
	log          *logger.Logger
	jwtSecretKey string
}

func NewAuthService(baseLog *logger.Logger, jwtSecretKey string) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{log: serviceLog, jwtSecretKey: jwtSecretKey}
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, fmt.Errorf("missing token")
	}
	parsedToken, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("failed to parse token: %w", err)
	}
	claims, ok := parsedToken.Claims.(*JWTClaims)
	if !ok || !parsedToken.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}

	subject := claims.Subject
	if subject == "" && claims.UserID != 0 {
		subject = strconv.FormatInt(claims.UserID, 10)
	}
	if subject == "" {
		return ctx, fmt.Errorf("token carries no identity")
	}

	rd := &ctxutil.RequestData{
		TokenString: tokenString,
		Subject:     subject,
		Email:       claims.Email,
	}
	return ctxutil.WithRequestData(ctx, rd), nil
}
