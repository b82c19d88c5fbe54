package services

import (
	"context"
	"fmt"
	"time"

	"passkey_auth_ms/config"

	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

type IRedisService interface {
	SetRefreshToken(userId uint, refreshToken string) error
	GetRefreshToken(userId uint) (string, error)
	DelRefreshToken(userId uint)
}

type RedisService struct {
	rdb *redis.Client
}

func NewRedisService(rdb *redis.Client) *RedisService {
	return &RedisService{rdb: rdb}
}

func (s *RedisService) SetRefreshToken(userId uint, refreshToken string) error {
	ttl := time.Duration(config.Conf.Application.Security.TokenValidityInSecondsForRememberMe) * time.Second
	return s.rdb.SetEx(ctx, fmt.Sprintf("refresh_%d", userId), refreshToken, ttl).Err()
}

func (s *RedisService) GetRefreshToken(userId uint) (string, error) {
	return s.rdb.Get(ctx, fmt.Sprintf("refresh_%d", userId)).Result()
}

func (s *RedisService) DelRefreshToken(userId uint) {
	s.rdb.Del(ctx, fmt.Sprintf("refresh_%d", userId))
}
