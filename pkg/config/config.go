package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	Auth    AuthConfig
	Storage StorageConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env      string // development, staging, production
	Name     string
	LogLevel string
	Timezone string // zona usada para los rangos de fecha (desde 00:00:00 / hasta 23:59:59)
}

// Location devuelve la zona horaria configurada; UTC si no se puede cargar.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	Driver      string // "postgres" | "memory" (desarrollo sin base de datos)
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
	ExecMode    string // "auto" | "cache" | "exec"
	MaxConns    int
}

// UsesExecMode indica si las consultas deben ir sin sentencias preparadas con nombre.
// Con "auto" se activa para el pooler de Supabase en modo transacción (puerto 6543).
func (c DBConfig) UsesExecMode() bool {
	switch c.ExecMode {
	case "exec":
		return true
	case "cache":
		return false
	}
	conn := c.ConnectionString()
	return strings.Contains(conn, "pooler.supabase.com") || strings.Contains(conn, ":6543")
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

// JWTConfig configuración de JWT (sesión del operador y capacidad de borrado).
type JWTConfig struct {
	Secret            string
	Expiration        int // minutos, token de sesión
	ElevateExpiration int // minutos, token con capacidad "delete"
	Issuer            string
}

// AuthConfig credencial del operador único. Solo se guarda el hash bcrypt.
type AuthConfig struct {
	OperatorPasswordHash string
}

// StorageConfig almacenamiento de los PDF de facturas.
type StorageConfig struct {
	Driver          string // "local" | "supabase"
	Bucket          string
	LocalDir        string
	PublicBaseURL   string // base para las URLs firmadas del driver local
	SupabaseURL     string
	SupabaseKey     string
	SignedURLTTLMin int
}

// SignedURLTTL validez de las URLs firmadas (10 minutos por defecto).
func (c StorageConfig) SignedURLTTL() time.Duration {
	if c.SignedURLTTLMin <= 0 {
		return 10 * time.Minute
	}
	return time.Duration(c.SignedURLTTLMin) * time.Minute
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, STORAGE_DRIVER, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:      getString(v, "APP_ENV", "development"),
			Name:     getString(v, "APP_NAME", "hst-contabilidad"),
			LogLevel: getString(v, "LOG_LEVEL", "info"),
			Timezone: getString(v, "APP_TIMEZONE", "America/Guayaquil"),
		},
		DB: DBConfig{
			Driver:      getString(v, "DB_DRIVER", "postgres"),
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "hst"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			ExecMode:    getString(v, "DB_EXEC_MODE", "auto"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 8),
		},
		JWT: JWTConfig{
			Secret:            getString(v, "JWT_SECRET", ""),
			Expiration:        getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			ElevateExpiration: getInt(v, "JWT_ELEVATE_EXPIRATION_MINUTES", 5),
			Issuer:            getString(v, "JWT_ISSUER", "hst-contabilidad"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Auth: AuthConfig{
			OperatorPasswordHash: getString(v, "AUTH_OPERATOR_PASSWORD_HASH", ""),
		},
		Storage: StorageConfig{
			Driver:          getString(v, "STORAGE_DRIVER", "local"),
			Bucket:          getString(v, "STORAGE_BUCKET", "invoices"),
			LocalDir:        getString(v, "STORAGE_LOCAL_DIR", "./data/documents"),
			PublicBaseURL:   getString(v, "STORAGE_PUBLIC_BASE_URL", "http://localhost:8080"),
			SupabaseURL:     getString(v, "SUPABASE_URL", ""),
			SupabaseKey:     getString(v, "SUPABASE_SERVICE_ROLE_KEY", ""),
			SignedURLTTLMin: getInt(v, "STORAGE_SIGNED_URL_TTL_MINUTES", 10),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.DB.Driver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: DB_DRIVER desconocido %q", c.DB.Driver)
	}
	switch c.DB.ExecMode {
	case "auto", "cache", "exec":
	default:
		return fmt.Errorf("config: DB_EXEC_MODE desconocido %q", c.DB.ExecMode)
	}
	switch c.Storage.Driver {
	case "local":
	case "supabase":
		if c.Storage.SupabaseURL == "" || c.Storage.SupabaseKey == "" {
			return fmt.Errorf("config: STORAGE_DRIVER=supabase requiere SUPABASE_URL y SUPABASE_SERVICE_ROLE_KEY")
		}
	default:
		return fmt.Errorf("config: STORAGE_DRIVER desconocido %q", c.Storage.Driver)
	}
	return nil
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
