package service

import (
	"fmt"

	"github.com/forgo/eventboard/internal/model"
	"github.com/forgo/eventboard/pkg/jwt"
)

// TokenService verifies bearer credentials against the shared secret
type TokenService struct {
	jwtService *jwt.Service
}

// NewTokenService creates a new token service
func NewTokenService(jwtService *jwt.Service) *TokenService {
	return &TokenService{jwtService: jwtService}
}

// ValidateAccessToken verifies the token and requires a subject identity.
// Tokens that verify but name no user are rejected with ErrUnauthorized.
func (s *TokenService) ValidateAccessToken(token string) (*jwt.Claims, error) {
	claims, err := s.jwtService.Validate(token)
	if err != nil {
		return nil, err
	}
	if claims.SubjectID() == "" {
		return nil, fmt.Errorf("%w: token carries no subject", ErrUnauthorized)
	}
	return claims, nil
}

// IssueAccessToken signs a token for the given user. Used by developer tooling
// in place of the account service's login endpoint.
func (s *TokenService) IssueAccessToken(user *model.User) (string, error) {
	return s.jwtService.Sign(jwt.Claims{
		UserID:   user.ID,
		Username: user.Username,
	})
}
