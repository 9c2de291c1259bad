package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type HTTPServer struct {
	Host string
	Port string
}

type RedisCache struct {
	Host     string
	Port     string
	Password string
}

type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type Gemini struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

type Enricher struct {
	QueueSize   int
	CallDelay   time.Duration
	CallTimeout time.Duration
}

type S3 struct {
	Bucket string
	Prefix string
}

type Auth struct {
	SessionTTL time.Duration
}

type Config struct {
	HTTP     HTTPServer
	Redis    RedisCache
	Postgres Postgres
	Gemini   Gemini
	Enricher Enricher
	S3       S3
	Auth     Auth
}

const logtag = "[config]"

func Load() *Config {
	configPath := flag.String("config", "", "path env file")
	flag.Parse()

	if *configPath != "" {
		if err := godotenv.Load(*configPath); err != nil {
			log.Fatalf("%s err loading env from file : %v", logtag, err)
		}
		log.Printf("%s using env from : %s", logtag, *configPath)
	} else {
		log.Printf("%s using env from .env", logtag)
		_ = godotenv.Load()
	}

	return &Config{
		HTTP:     *newHTTP(),
		Redis:    *newRedis(),
		Postgres: *newPostgres(),
		Gemini:   *newGemini(),
		Enricher: *newEnricher(),
		S3:       *newS3(),
		Auth:     *newAuth(),
	}
}

func newHTTP() *HTTPServer {
	return &HTTPServer{
		Port: getenv("HTTP_PORT", "8080"),
		Host: getenv("HTTP_HOST", "localhost"),
	}
}

func newRedis() *RedisCache {
	return &RedisCache{
		Port:     getenv("REDIS_PORT", "6379"),
		Host:     getenv("REDIS_HOST", "redis"),
		Password: getenv("REDIS_PASSWORD", "shared"),
	}
}

func newPostgres() *Postgres {
	return &Postgres{
		Host:     getenv("DB_HOST", "localhost"),
		Port:     getenv("DB_PORT", "5432"),
		User:     getenv("DB_USER", "admin"),
		Password: getenv("DB_PASSWORD", "shared"),
		DBName:   getenv("DB_NAME", "spotilove"),
		SSLMode:  getenv("DB_SSLMODE", "disable"),
	}
}

func newGemini() *Gemini {
	return &Gemini{
		APIKey:  getenv("GEMINI_API_KEY", ""),
		BaseURL: getenv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		Model:   getenv("GEMINI_MODEL", "gemini-2.5-flash"),
		Timeout: getduration("GEMINI_TIMEOUT", 15*time.Second),
	}
}

func newEnricher() *Enricher {
	return &Enricher{
		QueueSize:   getint("ENRICHER_QUEUE_SIZE", 64),
		CallDelay:   getduration("ENRICHER_CALL_DELAY", 500*time.Millisecond),
		CallTimeout: getduration("ENRICHER_CALL_TIMEOUT", 20*time.Second),
	}
}

func newAuth() *Auth {
	return &Auth{
		SessionTTL: getduration("SESSION_TTL", 24*time.Hour),
	}
}

func newS3() *S3 {
	return &S3{
		Bucket: getenv("S3_BUCKET", "spotilove-media"),
		Prefix: getenv("S3_PREFIX", "photo/"),
	}
}

func getenv(key, defaultValue string) string {
	val := os.Getenv(key)
	if val == "" {
		fmt.Printf("%s %s undefined. Using default value %s\n", logtag, key, defaultValue)
		return defaultValue
	}
	return val
}

func getint(key string, defaultValue int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		log.Printf("%s bad int for %s : %v", logtag, key, err)
		return defaultValue
	}
	return n
}

func getduration(key string, defaultValue time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		log.Printf("%s bad duration for %s : %v", logtag, key, err)
		return defaultValue
	}
	return d
}
