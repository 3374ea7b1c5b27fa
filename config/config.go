package config

import (
	"os"
	"strconv"
	"sync"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
)

var loadOnce sync.Once

// Config đọc một biến môi trường, nạp file .env ở lần gọi đầu tiên
func Config(key string) string {
	loadOnce.Do(func() {
		if err := godotenv.Load(".env"); err != nil {
			log.Warn("Không tìm thấy file .env, dùng biến môi trường hệ thống")
		}
	})
	return os.Getenv(key)
}

func configOr(key, fallback string) string {
	if v := Config(key); v != "" {
		return v
	}
	return fallback
}

type Settings struct {
	ListenAddr    string
	AllowOrigins  string
	UpstreamURL   string
	GeoURL        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DBHost     string
	DBPort     uint64
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret    string
	AppURL       string
	SecureCookie bool

	VNPayTmnCode    string
	VNPayHashSecret string
	VNPayURL        string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	CloudinaryName   string
	CloudinaryKey    string
	CloudinarySecret string
}

func Load() Settings {
	dbPort, err := strconv.ParseUint(configOr("DB_PORT", "5432"), 10, 32)
	if err != nil {
		panic("failed to parse database port")
	}
	redisDB, _ := strconv.Atoi(configOr("REDIS_DB", "0"))
	smtpPort, _ := strconv.Atoi(configOr("SMTP_PORT", "587"))

	return Settings{
		ListenAddr:    configOr("LISTEN_ADDR", ":8002"),
		AllowOrigins:  configOr("ALLOW_ORIGINS", "http://localhost:5173"),
		UpstreamURL:   configOr("API_BASE_URL", "http://localhost:8080/api"),
		GeoURL:        configOr("GEO_BASE_URL", "https://provinces.open-api.vn/api"),
		RedisAddr:     configOr("REDIS_ADDR", "localhost:6379"),
		RedisPassword: Config("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		DBHost:     configOr("DB_HOST", "localhost"),
		DBPort:     dbPort,
		DBUser:     configOr("DB_USER", "postgres"),
		DBPassword: Config("DB_PASSWORD"),
		DBName:     configOr("DB_NAME", "sixthsoul_bff"),

		JWTSecret:    Config("JWT_SECRET"),
		AppURL:       configOr("APP_URL", "http://localhost:5173"),
		SecureCookie: Config("COOKIE_SECURE") == "true",

		VNPayTmnCode:    Config("VNP_TMNCODE"),
		VNPayHashSecret: Config("VNP_HASHSECRET"),
		VNPayURL:        configOr("VNP_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),

		SMTPHost:     Config("SMTP_HOST"),
		SMTPPort:     smtpPort,
		SMTPUsername: Config("SMTP_USERNAME"),
		SMTPPassword: Config("SMTP_PASSWORD"),
		SMTPFrom:     Config("SMTP_FROM"),

		CloudinaryName:   Config("CLOUDINARY_CLOUD_NAME"),
		CloudinaryKey:    Config("CLOUDINARY_API_KEY"),
		CloudinarySecret: Config("CLOUDINARY_API_SECRET"),
	}
}
