package configs

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type ENV struct {
	AppEnv string
	AppURL string
	Port   string

	DBDriver       string
	DBHost         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBPort         string
	DBSSLMode      string
	DBMaxOpenConns int
	DBMaxIdleConns int

	JWTSecret string

	EmailHost     string
	EmailPort     string
	EmailUsername string
	EmailPassword string
	EmailFrom     string

	RazorpayKeyID     string
	RazorpayKeySecret string

	OTPStore      string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	UploadDir  string
	CORSOrigin string

	AdminEmail    string
	AdminPassword string
	AdminName     string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	emailUser := os.Getenv("EMAIL_USERNAME")

	return ENV{
		AppEnv: getEnv("APP_ENV", "development"),
		AppURL: getEnv("APP_URL", "http://localhost:3000"),
		Port:   getEnv("APP_PORT", ":5000"),

		DBDriver:       getEnv("DB_DRIVER", "mysql"),
		DBHost:         getEnv("DB_HOST", "127.0.0.1"),
		DBUser:         os.Getenv("DB_USER"),
		DBPassword:     os.Getenv("DB_PASSWORD"),
		DBName:         os.Getenv("DB_NAME"),
		DBPort:         os.Getenv("DB_PORT"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		JWTSecret: os.Getenv("JWT_SECRET"),

		EmailHost:     os.Getenv("EMAIL_HOST"),
		EmailPort:     getEnv("EMAIL_PORT", "587"),
		EmailUsername: emailUser,
		EmailPassword: os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:     getEnv("EMAIL_FROM", emailUser),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		OTPStore:      getEnv("OTP_STORE", "memory"),
		RedisAddr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		UploadDir:  getEnv("UPLOAD_DIR", "uploads"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		AdminName:     getEnv("ADMIN_NAME", "Admin"),
	}

}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("Warning: %s=%q is not a number, using %d", key, v, fallback)
		return fallback
	}
	return n
}
