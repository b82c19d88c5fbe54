package services

import (
	"context"
	"errors"

	"passkey_auth_ms/config"
	"passkey_auth_ms/domain"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/repository"

	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

type IGoogleAuthService interface {
	LoginGoogle(state string) string
	ExchangeGoogleToken(code string) (*oauth2.Token, error)
	VerifyGoogleIDToken(idToken string) (*response.GoogleUser, error)
	LoginOrRegister(gUser *response.GoogleUser) (*response.Tokens, error)
}

type GoogleAuthService struct {
	db        *gorm.DB
	oauthConf *oauth2.Config
	userRepo  repository.IUserRepository
	jwt       IJWTService
	redis     IRedisService
}

func NewGoogleAuthService(db *gorm.DB, oauthConf *oauth2.Config, userRepo repository.IUserRepository, jwt IJWTService, redis IRedisService) IGoogleAuthService {
	return &GoogleAuthService{db: db, oauthConf: oauthConf, userRepo: userRepo, jwt: jwt, redis: redis}
}

func (g *GoogleAuthService) LoginGoogle(state string) string {
	return g.oauthConf.AuthCodeURL(state)
}

func (g *GoogleAuthService) ExchangeGoogleToken(code string) (*oauth2.Token, error) {
	token, err := g.oauthConf.Exchange(context.Background(), code)
	if err != nil {
		return nil, err
	}
	return token, nil
}

func (g *GoogleAuthService) VerifyGoogleIDToken(idToken string) (*response.GoogleUser, error) {
	payload, err := idtoken.Validate(context.Background(), idToken, config.Conf.Application.OAuth2.ClientID)
	if err != nil {
		return nil, err
	}
	return &response.GoogleUser{
		ID:            payload.Claims["sub"].(string),
		Email:         payload.Claims["email"].(string),
		VerifiedEmail: payload.Claims["email_verified"].(bool),
	}, nil
}

func (g *GoogleAuthService) LoginOrRegister(gUser *response.GoogleUser) (*response.Tokens, error) {
	if !gUser.VerifiedEmail {
		return nil, errors.New("google account email is not verified")
	}

	user, err := g.userRepo.GetByGoogleID(g.db, gUser.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user, err = g.userRepo.Create(g.db, &domain.User{
			Email:    gUser.Email,
			GoogleID: gUser.ID,
		})
	}
	if err != nil {
		return nil, err
	}

	tokens, err := g.jwt.GenerateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := g.redis.SetRefreshToken(user.Id, tokens.RefreshToken); err != nil {
		return nil, errors.New("could not store refresh token")
	}
	return tokens, nil
}
