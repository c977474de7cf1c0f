package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Backends válidos para SESSION_STORE.
const (
	StoreFile     = "file"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// Config agrupa la configuración de la consola (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	DB      DBConfig
	HTTP    HTTPConfig
	Export  ExportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
}

// APIConfig ubicación y timeout de la API remota.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig dónde se persiste la sesión (Credential Store).
type SessionConfig struct {
	Store   string // file, redis, postgres
	File    string
	Context string // identificador del "navegador" en backends compartidos
}

// RedisConfig conexión para el backend redis del Credential Store.
type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// HTTPConfig configuración del servidor local de la consola.
type HTTPConfig struct {
	Host        string
	Port        int
	SwaggerFile string
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ExportConfig destino de las descargas (PDF).
type ExportConfig struct {
	DownloadDir string
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Con APP_ENV=local se carga además .env.local.
func Load() (*Config, error) {
	if os.Getenv("APP_ENV") == "local" {
		_ = godotenv.Load(".env.local") // si no existe seguimos con el entorno del sistema
	}

	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "inventario-console"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getString(v, "API_BASE_URL", "http://localhost:8080/api"), "/"),
			Timeout: time.Duration(getInt(v, "API_TIMEOUT_SECONDS", 15)) * time.Second,
		},
		Session: SessionConfig{
			Store:   strings.ToLower(getString(v, "SESSION_STORE", StoreFile)),
			File:    getString(v, "SESSION_FILE", defaultSessionFile()),
			Context: getString(v, "SESSION_CONTEXT", "default"),
		},
		Redis: RedisConfig{
			Addr:      getString(v, "REDIS_ADDR", ""),
			Password:  getString(v, "REDIS_PASSWORD", ""),
			DB:        getInt(v, "REDIS_DB", 0),
			KeyPrefix: getString(v, "REDIS_KEY_PREFIX", "inventario-console"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventario_console"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		HTTP: HTTPConfig{
			Host:        getString(v, "HTTP_HOST", "127.0.0.1"),
			Port:        getInt(v, "HTTP_PORT", 3000),
			SwaggerFile: getString(v, "SWAGGER_FILE", "./docs/swagger.json"),
		},
		Export: ExportConfig{
			DownloadDir: getString(v, "DOWNLOAD_DIR", "."),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Session.Store {
	case StoreFile, StorePostgres:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("config: SESSION_STORE=redis requiere REDIS_ADDR")
		}
	default:
		return fmt.Errorf("config: SESSION_STORE desconocido %q", c.Session.Store)
	}
	if _, err := url.ParseRequestURI(c.API.BaseURL); err != nil {
		return fmt.Errorf("config: API_BASE_URL inválido: %w", err)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("config: API_TIMEOUT_SECONDS debe ser positivo")
	}
	return nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".inventario-console", "session.json")
	}
	return filepath.Join(home, ".inventario-console", "session.json")
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
