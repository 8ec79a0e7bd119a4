package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AdminToken        string `mapstructure:"ADMIN_TOKEN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDraftDB  int    `mapstructure:"REDIS_DRAFT_DB"`
	RedisTaskDB   int    `mapstructure:"REDIS_TASK_DB"`

	// Draft lifetime and how long an opened payment may stay unresolved.
	DraftTTL       time.Duration `mapstructure:"DRAFT_TTL"`
	PaymentTimeout time.Duration `mapstructure:"PAYMENT_TIMEOUT"`

	// Document store: "firestore" or "mongo".
	StoreDriver  string `mapstructure:"STORE_DRIVER"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Firebase.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseBucket          string `mapstructure:"FIREBASE_BUCKET"`

	// Blob store: "firebase" or "cloudinary".
	BlobDriver          string `mapstructure:"BLOB_DRIVER"`
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Payments: "razorpay" or "stripe".
	PaymentGateway       string `mapstructure:"PAYMENT_GATEWAY"`
	RazorpayKeyID        string `mapstructure:"RAZORPAY_KEY_ID"`
	RazorpayKeySecret    string `mapstructure:"RAZORPAY_KEY_SECRET"`
	StripeKey            string `mapstructure:"STRIPE_KEY"`
	StripePublishableKey string `mapstructure:"STRIPE_PUBLISHABLE_KEY"`

	// Pricing.
	Currency      string `mapstructure:"CURRENCY"`
	ServiceCharge int64  `mapstructure:"SERVICE_CHARGE"`

	MaxAttachmentBytes int64 `mapstructure:"MAX_ATTACHMENT_BYTES"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("ADMIN_TOKEN", "")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DRAFT_DB", 0)
	v.SetDefault("REDIS_TASK_DB", 1)
	v.SetDefault("DRAFT_TTL", "2h")
	v.SetDefault("PAYMENT_TIMEOUT", "20m")
	v.SetDefault("STORE_DRIVER", "firestore")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("DATABASE_NAME", "creatorhub")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_BUCKET", "")
	v.SetDefault("BLOB_DRIVER", "firebase")
	v.SetDefault("PAYMENT_GATEWAY", "razorpay")
	v.SetDefault("CURRENCY", "INR")
	v.SetDefault("SERVICE_CHARGE", 99)
	v.SetDefault("MAX_ATTACHMENT_BYTES", 5<<20)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
