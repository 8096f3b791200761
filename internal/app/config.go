package app

import (
	"time"

	"github.com/yungbote/commerce-admin-backend/internal/platform/logger"
	"github.com/yungbote/commerce-admin-backend/internal/utils"
)

type Config struct {
	JWTSecretKey   string
	AccessTokenTTL time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	HTTPPort       string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	redisPassword := utils.GetEnv("REDIS_PASSWORD", "", log)
	redisDB := utils.GetEnvAsInt("REDIS_DB", 0, log)
	httpPort := utils.GetEnv("PORT", "8080", log)
	return Config{
		JWTSecretKey:   jwtSecretKey,
		AccessTokenTTL: time.Duration(accessTokenTTLSeconds) * time.Second,
		RedisAddr:      redisAddr,
		RedisPassword:  redisPassword,
		RedisDB:        redisDB,
		HTTPPort:       httpPort,
	}
}
