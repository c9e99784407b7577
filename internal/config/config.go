package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every externally tunable setting. Values come from the
// environment, optionally seeded from a .env file in development.
type Config struct {
	Port        string
	DatabaseURL string

	// Notification backend: "email", "kafka" or "log".
	Notifier       string
	KafkaBroker    string
	KafkaTopic     string
	SendGridAPIKey string
	SenderEmail    string
	SenderName     string

	// Completion API settings. BaseURL is optional and allows any
	// OpenAI-compatible endpoint.
	OpenAIAPIKey  string
	OpenAIBaseURL string
	ChatModel     string
	LLMTimeout    time.Duration

	SessionTTL   time.Duration
	ReminderCron string
}

// LoadEnv seeds the process environment from a .env file when one exists.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}
}

// Load reads the configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		Notifier:       getEnv("NOTIFIER_BACKEND", "log"),
		KafkaBroker:    getEnv("KAFKA_BROKER", "localhost:9092"),
		KafkaTopic:     getEnv("KAFKA_TOPIC", "appointment_topic"),
		SendGridAPIKey: getEnv("SENDGRID_API_KEY", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", "bookings@carewell.example"),
		SenderName:     getEnv("SENDER_NAME", "Carewell Booking"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", ""),
		ChatModel:      getEnv("CHAT_MODEL", "gpt-4o-mini"),
		LLMTimeout:     getDuration("LLM_TIMEOUT", 30*time.Second),
		SessionTTL:     getDuration("SESSION_TTL", 24*time.Hour),
		ReminderCron:   getEnv("REMINDER_CRON", "0 7 * * *"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
