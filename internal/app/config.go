package app

import (
	"github.com/daniluce/portfolio-backend/internal/platform/envutil"
)

type Config struct {
	Port              string
	JWTSecretKey      string
	MediaRoot         string
	MediaPublicPrefix string
	UploadMaxMB       int64
}

func LoadConfig() Config {
	return Config{
		Port:              envutil.Str("PORT", "8080"),
		JWTSecretKey:      envutil.Str("JWT_SECRET_KEY", "defaultsecret"),
		MediaRoot:         envutil.Str("MEDIA_ROOT", "./media"),
		MediaPublicPrefix: envutil.Str("MEDIA_PUBLIC_PREFIX", "/media"),
		UploadMaxMB:       int64(envutil.Int("UPLOAD_MAX_MB", 50)),
	}
}
