package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"

	devSessionSecret = "dev_secret_change_me"
)

// Configはアプリ全体の設定
type Config struct {
	Port  string // サーバーポート（8080）
	GoEnv string // dev/prod

	LogLevel string // debug/info/warn/error
	LogFile  string // 空ならstdoutのみ

	StorageDriver string // memory/postgres
	DatabaseURL   string // あれば最優先

	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresHost     string
	PostgresPort     int
	PostgresSSLMode  string

	SessionSecret string // セッションcookieの署名キー

	CheckoutPhone    string // 宛先（+なしの電話番号）
	CheckoutBaseURL  string // https://wa.me/
	CheckoutGreeting string // メッセージの書き出し

	CartCacheSize int // メモリに保持するカートの上限
}

// Loadは環境変数から設定を読む。未設定の項目はデフォルト値。
func Load() (Config, error) {
	pgPort, err := atoiOr("POSTGRES_PORT", 5432)
	if err != nil {
		return Config{}, err
	}
	cacheSize, err := atoiOr("CART_CACHE_SIZE", 1024)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port:  getenv("PORT", "8080"),
		GoEnv: getenv("GO_ENV", "dev"),

		LogLevel: getenv("LOG_LEVEL", "info"),
		LogFile:  os.Getenv("LOG_FILE"),

		StorageDriver: strings.ToLower(getenv("STORAGE_DRIVER", StorageMemory)),
		DatabaseURL:   os.Getenv("DATABASE_URL"),

		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "app"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresPort:     pgPort,
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),

		SessionSecret: os.Getenv("SESSION_SECRET"),

		CheckoutPhone:    getenv("CHECKOUT_PHONE", "919876543210"),
		CheckoutBaseURL:  getenv("CHECKOUT_BASE_URL", "https://wa.me/"),
		CheckoutGreeting: getenv("CHECKOUT_GREETING", "Hello! I would like to place an order:"),

		CartCacheSize: cacheSize,
	}

	//必須チェック
	switch cfg.StorageDriver {
	case StorageMemory, StoragePostgres:
	default:
		return Config{}, fmt.Errorf("STORAGE_DRIVER must be %q or %q", StorageMemory, StoragePostgres)
	}
	if cfg.SessionSecret == "" {
		if cfg.IsProd() {
			return Config{}, fmt.Errorf("SESSION_SECRET is required")
		}
		cfg.SessionSecret = devSessionSecret
	}
	if strings.TrimSpace(cfg.CheckoutPhone) == "" {
		return Config{}, fmt.Errorf("CHECKOUT_PHONE is required")
	}
	if cfg.CartCacheSize < 1 {
		return Config{}, fmt.Errorf("CART_CACHE_SIZE must be >= 1")
	}

	return cfg, nil
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// Addrは ":8080" 形式のlisten address
func (c Config) Addr() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// DSNはDATABASE_URLがあればそれを、無ければPOSTGRES_*から組み立てる。
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiOr(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}
