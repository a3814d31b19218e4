package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// APIScope is the scope granted to API clients and required by the auth
// middleware on every mutating route.
const APIScope = "tournamentAPI"

const tokenTTL = time.Hour

// TokenResponse is the OAuth2 token endpoint response body.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	Scope       string `json:"scope"`
}

// TokenService implements the client-credentials grant for the single
// configured API client. Anything beyond issuing scoped bearer tokens is
// out of scope here.
type TokenService interface {
	IssueClientCredentials(ctx context.Context, clientID, clientSecret string) (*TokenResponse, error)
}

type tokenService struct {
	clientID         string
	clientSecretHash []byte
	jwtSecret        []byte
}

func NewTokenService(clientID, clientSecret, jwtSecret string) (TokenService, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(clientSecret), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash client secret: %w", err)
	}
	return &tokenService{
		clientID:         clientID,
		clientSecretHash: hash,
		jwtSecret:        []byte(jwtSecret),
	}, nil
}

func (s *tokenService) IssueClientCredentials(ctx context.Context, clientID, clientSecret string) (*TokenResponse, error) {
	if clientID != s.clientID {
		return nil, ErrInvalidClient
	}
	if err := bcrypt.CompareHashAndPassword(s.clientSecretHash, []byte(clientSecret)); err != nil {
		return nil, ErrInvalidClient
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"client_id": clientID,
		"scope":     APIScope,
		"iat":       now.Unix(),
		"exp":       now.Add(tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &TokenResponse{
		AccessToken: signed,
		TokenType:   "Bearer",
		ExpiresIn:   int(tokenTTL.Seconds()),
		Scope:       APIScope,
	}, nil
}
