package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-ini/ini"
	"github.com/joho/godotenv"
)

type DB struct {
	DbDRIVER   string
	DbHOST     string
	DbPORT     string
	DbUSER     string
	DbPASSWORD string
	DbNAME     string
	DbSSLMODE  string
	DbPATH     string
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type Redis struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type Cache struct {
	IndexKey string
	IndexTTL time.Duration
}

type Auth struct {
	CookieName string
	LoginURL   string
	CookieTTL  time.Duration
}

type Config struct {
	ServerPort          int
	DB                  DB
	MinIO               MinIO
	Redis               Redis
	Cache               Cache
	Auth                Auth
	JWTSecretKey        string
	AccessTokenDuration time.Duration
	MaxUploadSize       int64
	PostsPerPage        int
	CORSAllowedOrigins  []string
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return duration
}

func parseMaxUploadSize(value string) int64 {
	size, err := strconv.ParseInt(value, 10, 64)
	if err != nil || size <= 0 {
		return 10 * 1024 * 1024
	}
	return size
}

func LoadDB() DB {
	return DB{
		DbDRIVER:   getEnv("DB_DRIVER", "postgres"),
		DbHOST:     getEnv("DB_HOST", "localhost"),
		DbPORT:     getEnv("DB_PORT", "5432"),
		DbUSER:     getEnv("DB_USER", "postgres"),
		DbPASSWORD: getEnv("DB_PASSWORD", "password"),
		DbNAME:     getEnv("DB_NAME", "yatube"),
		DbSSLMODE:  getEnv("DB_SSLMODE", "disable"),
		DbPATH:     getEnv("DB_PATH", "data/yatube.db"),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "media"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
	}
}

func LoadRedis() Redis {
	return Redis{
		Enabled:  getEnvBool("REDIS_ENABLED", true),
		Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvAsInt("REDIS_DB", 0),
		Prefix:   getEnv("REDIS_PREFIX", "yatube:"),
	}
}

func LoadCache() Cache {
	return Cache{
		IndexKey: getEnv("CACHE_INDEX_KEY", "index_posts_cache"),
		IndexTTL: parseDuration(getEnv("CACHE_INDEX_TTL", "20s"), 20*time.Second),
	}
}

func LoadAuth() Auth {
	return Auth{
		CookieName: getEnv("AUTH_COOKIE_NAME", "access_token"),
		LoginURL:   getEnv("AUTH_LOGIN_URL", "/auth/login/"),
		CookieTTL:  parseDuration(getEnv("AUTH_COOKIE_TTL", "336h"), 14*24*time.Hour),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := &Config{
		ServerPort:          getEnvAsInt("SERVER_PORT", 8080),
		DB:                  LoadDB(),
		MinIO:               LoadMinIO(),
		Redis:               LoadRedis(),
		Cache:               LoadCache(),
		Auth:                LoadAuth(),
		JWTSecretKey:        getEnv("JWT_SECRET_KEY", ""),
		AccessTokenDuration: parseDuration(getEnv("ACCESS_TOKEN_DURATION", "336h"), 14*24*time.Hour),
		MaxUploadSize:       parseMaxUploadSize(getEnv("MAX_UPLOAD_SIZE", "10485760")),
		PostsPerPage:        getEnvAsInt("POSTS_PER_PAGE", 10),
		CORSAllowedOrigins:  []string{getEnv("CORS_ALLOWED_ORIGIN", "*")},
	}

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := LoadINI(cfg, path); err != nil {
			log.Printf("Warning: не удалось прочитать %s: %v", path, err)
		}
	}

	return cfg
}

// LoadINI overrides cfg with the keys present in an INI file.
// Missing sections and keys keep the values loaded from the environment.
func LoadINI(cfg *Config, path string) error {
	file, err := ini.Load(path)
	if err != nil {
		return err
	}

	server := file.Section("server")
	cfg.ServerPort = server.Key("port").MustInt(cfg.ServerPort)
	cfg.JWTSecretKey = server.Key("jwt_secret_key").MustString(cfg.JWTSecretKey)
	cfg.MaxUploadSize = server.Key("max_upload_size").MustInt64(cfg.MaxUploadSize)
	cfg.PostsPerPage = server.Key("posts_per_page").MustInt(cfg.PostsPerPage)
	cfg.AccessTokenDuration = server.Key("access_token_duration").MustDuration(cfg.AccessTokenDuration)
	if server.HasKey("cors_allowed_origin") {
		cfg.CORSAllowedOrigins = server.Key("cors_allowed_origin").Strings(",")
	}

	db := file.Section("database")
	cfg.DB.DbDRIVER = db.Key("driver").MustString(cfg.DB.DbDRIVER)
	cfg.DB.DbHOST = db.Key("host").MustString(cfg.DB.DbHOST)
	cfg.DB.DbPORT = db.Key("port").MustString(cfg.DB.DbPORT)
	cfg.DB.DbUSER = db.Key("user").MustString(cfg.DB.DbUSER)
	cfg.DB.DbPASSWORD = db.Key("password").MustString(cfg.DB.DbPASSWORD)
	cfg.DB.DbNAME = db.Key("name").MustString(cfg.DB.DbNAME)
	cfg.DB.DbSSLMODE = db.Key("sslmode").MustString(cfg.DB.DbSSLMODE)
	cfg.DB.DbPATH = db.Key("path").MustString(cfg.DB.DbPATH)

	minio := file.Section("minio")
	cfg.MinIO.Endpoint = minio.Key("endpoint").MustString(cfg.MinIO.Endpoint)
	cfg.MinIO.AccessKey = minio.Key("access_key").MustString(cfg.MinIO.AccessKey)
	cfg.MinIO.SecretKey = minio.Key("secret_key").MustString(cfg.MinIO.SecretKey)
	cfg.MinIO.BucketName = minio.Key("bucket").MustString(cfg.MinIO.BucketName)
	cfg.MinIO.UseSSL = minio.Key("use_ssl").MustBool(cfg.MinIO.UseSSL)
	cfg.MinIO.Region = minio.Key("region").MustString(cfg.MinIO.Region)
	cfg.MinIO.PublicURL = minio.Key("public_url").MustString(cfg.MinIO.PublicURL)

	redis := file.Section("redis")
	cfg.Redis.Enabled = redis.Key("enabled").MustBool(cfg.Redis.Enabled)
	cfg.Redis.Addr = redis.Key("addr").MustString(cfg.Redis.Addr)
	cfg.Redis.Password = redis.Key("password").MustString(cfg.Redis.Password)
	cfg.Redis.DB = redis.Key("db").MustInt(cfg.Redis.DB)
	cfg.Redis.Prefix = redis.Key("prefix").MustString(cfg.Redis.Prefix)

	cache := file.Section("cache")
	cfg.Cache.IndexKey = cache.Key("index_key").MustString(cfg.Cache.IndexKey)
	cfg.Cache.IndexTTL = cache.Key("index_ttl").MustDuration(cfg.Cache.IndexTTL)

	auth := file.Section("auth")
	cfg.Auth.CookieName = auth.Key("cookie_name").MustString(cfg.Auth.CookieName)
	cfg.Auth.LoginURL = auth.Key("login_url").MustString(cfg.Auth.LoginURL)
	cfg.Auth.CookieTTL = auth.Key("cookie_ttl").MustDuration(cfg.Auth.CookieTTL)

	return nil
}
