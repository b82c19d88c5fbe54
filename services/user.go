package services

import (
	"errors"
	"time"

	"passkey_auth_ms/config"
	"passkey_auth_ms/domain"
	"passkey_auth_ms/dtos/request"
	"passkey_auth_ms/dtos/response"
	"passkey_auth_ms/repository"
	"passkey_auth_ms/util"

	"github.com/pquerna/otp/totp"
	"github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

type IUserService interface {
	Register(req *request.RegisterRequest) (*response.RegisterResponse, error)
	Login(req *request.LoginRequest) (*response.Tokens, error)
	RefreshToken(req *request.RefreshTokenReq) (*response.Tokens, error)
	Setup2FA(userId uint) (*response.TwoFASetupResponse, error)
	Verify2FA(userId uint, req *request.VerifyTwoFa) (bool, error)
}

type UserService struct {
	db       *gorm.DB
	userRepo repository.IUserRepository
	redis    IRedisService
	jwt      IJWTService
}

func NewUserService(db *gorm.DB, userRepo repository.IUserRepository, redis IRedisService, jwt IJWTService) IUserService {
	return &UserService{db: db, userRepo: userRepo, redis: redis, jwt: jwt}
}

func (u *UserService) Register(req *request.RegisterRequest) (*response.RegisterResponse, error) {
	if _, err := u.userRepo.GetByEmail(u.db, req.Email); err == nil {
		return nil, errors.New("user with this email already exists")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := util.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.Create(u.db, &domain.User{
		Email:    req.Email,
		Password: hashed,
	})
	if err != nil {
		return nil, err
	}

	return &response.RegisterResponse{UserId: user.Id, Email: user.Email}, nil
}

func (u *UserService) Login(req *request.LoginRequest) (*response.Tokens, error) {
	user, err := u.userRepo.GetByEmail(u.db, req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}
	if !util.VerifyPassword(req.Password, user.Password) {
		return nil, errors.New("invalid email or password")
	}

	tokens, err := u.jwt.GenerateTokens(user)
	if err != nil {
		return nil, err
	}
	if err := u.redis.SetRefreshToken(user.Id, tokens.RefreshToken); err != nil {
		return nil, errors.New("could not store refresh token")
	}
	return tokens, nil
}

func (u *UserService) RefreshToken(req *request.RefreshTokenReq) (*response.Tokens, error) {
	if req.RefreshToken == "" {
		return nil, errors.New("empty refresh token")
	}

	token, err := u.jwt.ParseJWT(req.RefreshToken)
	if err != nil || token == nil {
		return nil, errors.New("invalid refresh token")
	}

	claims, err := u.jwt.GetClaims(token)
	if err != nil {
		return nil, err
	}
	userID := uint(claims["sub"].(float64))

	storedToken, err := u.redis.GetRefreshToken(userID)
	if err != nil {
		return nil, errors.New("refresh token not found or expired")
	}
	if storedToken != req.RefreshToken {
		return nil, errors.New("refresh token does not equal to stored token")
	}

	newAccessToken, err := u.jwt.GenerateToken(userID, time.Duration(config.Conf.Application.Security.TokenValidityInSeconds)*time.Second)
	if err != nil {
		return nil, errors.New("failed to generate access token")
	}
	newRefreshToken, err := u.jwt.GenerateToken(userID, time.Duration(config.Conf.Application.Security.TokenValidityInSecondsForRememberMe)*time.Second)
	if err != nil {
		return nil, errors.New("failed to generate refresh token")
	}

	u.redis.DelRefreshToken(userID)
	if err := u.redis.SetRefreshToken(userID, newRefreshToken); err != nil {
		return nil, errors.New("could not store new refresh token")
	}

	return &response.Tokens{
		AccessToken:  newAccessToken,
		RefreshToken: newRefreshToken,
	}, nil
}

func (u *UserService) Setup2FA(userId uint) (*response.TwoFASetupResponse, error) {
	user, err := u.userRepo.GetByID(u.db, userId)
	if err != nil {
		return nil, err
	}
	if user.Is2FAVerified {
		return nil, errors.New("user already has 2FA verified")
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      config.Conf.Application.Security.Issuer,
		AccountName: user.Email,
	})
	if err != nil {
		return nil, err
	}

	user.Google2FASecret = key.Secret()
	if err := u.userRepo.Update(u.db, user); err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(key.URL(), qrcode.Medium, 256)
	if err != nil {
		return nil, err
	}

	return &response.TwoFASetupResponse{
		Secret: key.Secret(),
		QRCode: png,
	}, nil
}

func (u *UserService) Verify2FA(userId uint, req *request.VerifyTwoFa) (bool, error) {
	user, err := u.userRepo.GetByID(u.db, userId)
	if err != nil {
		return false, err
	}
	valid := totp.Validate(req.Code, user.Google2FASecret)
	if valid {
		user.Is2FAVerified = true
		if err := u.userRepo.Update(u.db, user); err != nil {
			return false, err
		}
	}
	return valid, nil
}
