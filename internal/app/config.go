package app

import (
	"time"

	"github.com/yungbote/eventjudge-backend/internal/pkg/logger"
	"github.com/yungbote/eventjudge-backend/internal/utils"
)

type Config struct {
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration

	SummaryCacheTTL time.Duration
	RedisAddr       string
	MetricsAddr     string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTLSeconds := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTLSeconds := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
	cacheDurationSeconds := utils.GetEnvAsInt("CACHE_DURATION", 3600, log)
	redisAddr := utils.GetEnv("REDIS_ADDR", "", log)
	metricsAddr := utils.GetEnv("METRICS_ADDR", ":9091", log)
	return Config{
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		SummaryCacheTTL: time.Duration(cacheDurationSeconds) * time.Second,
		RedisAddr:       redisAddr,
		MetricsAddr:     metricsAddr,
	}
}
