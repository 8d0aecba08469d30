package config

import "os"

type R2 struct {
	AccountID  string
	AccessKey  string
	SecretKey  string
	BucketName string
	PublicURL  string
}

type Stripe struct {
	SecretKey         string
	WebhookSecret     string
	PriceStarter      string
	PriceProfessional string
	PriceAgency       string
}

type Config struct {
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
	PostgresURI        string
	RedisURI           string
	FrontendURL        string
	LateAPIKey         string
	LateBaseURL        string
	R2                 R2
	Stripe             Stripe
	SecretKey          string
	CookieName         string
	CronSecret         string
	Environment        string
}

func LoadConfig() *Config {
	return &Config{
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_REDIRECT_URI", ""),
		PostgresURI:        getEnv("POSTGRES_URI", ""),
		RedisURI:           getEnv("REDIS_URI", ""),
		FrontendURL:        getEnv("FRONTEND_URL", "http://localhost:5173"),
		LateAPIKey:         getEnv("LATE_API_KEY", ""),
		LateBaseURL:        getEnv("LATE_BASE_URL", "https://getlate.dev"),
		R2: R2{
			AccountID:  getEnv("R2_ACCOUNT_ID", ""),
			AccessKey:  getEnv("R2_ACCESS_KEY", ""),
			SecretKey:  getEnv("R2_SECRET_KEY", ""),
			BucketName: getEnv("R2_BUCKET_NAME", ""),
			PublicURL:  getEnv("R2_PUBLIC_URL", ""),
		},
		Stripe: Stripe{
			SecretKey:         getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:     getEnv("STRIPE_WEBHOOK_SECRET", ""),
			PriceStarter:      getEnv("STRIPE_PRICE_STARTER", ""),
			PriceProfessional: getEnv("STRIPE_PRICE_PROFESSIONAL", ""),
			PriceAgency:       getEnv("STRIPE_PRICE_AGENCY", ""),
		},
		SecretKey:   getEnv("SECRET_KEY", ""),
		CookieName:  getEnv("COOKIE_NAME", "contentflow_session"),
		CronSecret:  getEnv("CRON_SECRET", ""),
		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
