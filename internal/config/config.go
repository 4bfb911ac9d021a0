package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	Environment string
	CORSOrigins string
	// DevMode runs against in-memory repositories and a placeholder media host
	DevMode bool
	// MongoDB
	MongoURI         string
	MongoDatabase    string
	CollectionPrefix string
	// Cloudinary (either CloudinaryURL or the three credentials)
	CloudinaryURL       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
	// Uploads
	UploadFolder        string
	MaxUploadBytes      int64
	UploadRatePerMinute int
	// Logging
	LogDir      string
	LogMaxFiles int
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         env,
		CORSOrigins:         getEnv("CORS_ORIGINS", "*"),
		DevMode:             getEnvBool("DEV_MODE", false),
		MongoURI:            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:       getEnv("MONGODB_DATABASE", "kptshop"),
		CollectionPrefix:    getCollectionPrefix(env),
		CloudinaryURL:       getEnv("CLOUDINARY_URL", ""),
		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),
		UploadFolder:        getEnv("UPLOAD_FOLDER", "kptshop"),
		MaxUploadBytes:      int64(getEnvInt("MAX_UPLOAD_MB", 20)) << 20,
		UploadRatePerMinute: getEnvInt("UPLOAD_RATE_PER_MINUTE", 60),
		LogDir:              getEnv("LOG_DIR", ""),
		LogMaxFiles:         getEnvInt("LOG_MAX_FILES", 10),
	}
}

// HasCloudinary reports whether enough credentials are set to talk to Cloudinary
func (c *Config) HasCloudinary() bool {
	if c.CloudinaryURL != "" {
		return true
	}
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

// getCollectionPrefix returns the collection prefix based on environment
func getCollectionPrefix(env string) string {
	// Allow manual override via COLLECTION_PREFIX env var
	if prefix, ok := os.LookupEnv("COLLECTION_PREFIX"); ok {
		return prefix
	}

	switch env {
	case "prod":
		return ""
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
