package configuration

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/iota-uz/utils/fs"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/jacksonlee411/hcdash/pkg/logging"
)

const Production = "production"

const (
	SheetSourceHTTP = "http"
	SheetSourceXLSX = "xlsx"
	SheetSourceFile = "file"
)

var singleton = sync.OnceValue(func() *Configuration {
	c := &Configuration{}
	if err := c.load([]string{".env", ".env.local"}); err != nil {
		c.Unload()
		panic(err)
	}
	return c
})

// LoadEnv loads the env files that exist, searching upward to the go.mod root
// when a file is missing from the working directory.
func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if path, ok := findEnvFile(file); ok {
			existingFiles = append(existingFiles, path)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

func findEnvFile(name string) (string, bool) {
	if filepath.IsAbs(name) {
		return name, fs.FileExists(name)
	}
	if fs.FileExists(name) {
		return name, true
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", false
	}
	for {
		if fs.FileExists(filepath.Join(dir, "go.mod")) {
			candidate := filepath.Join(dir, name)
			return candidate, fs.FileExists(candidate)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

type SheetOptions struct {
	Source       string        `env:"SHEET_SOURCE" envDefault:"http"` // http, xlsx or file
	URL          string        `env:"SHEET_URL"`
	Path         string        `env:"SHEET_PATH"`
	SheetName    string        `env:"SHEET_NAME"`
	FetchTimeout time.Duration `env:"SHEET_FETCH_TIMEOUT" envDefault:"15s"`
	CacheEnabled bool          `env:"SHEET_CACHE_ENABLED" envDefault:"false"`
	CacheTTL     time.Duration `env:"SHEET_CACHE_TTL" envDefault:"5m"`
}

// Validate checks that the selected source has what it needs.
func (s *SheetOptions) Validate() error {
	switch s.Source {
	case SheetSourceHTTP:
		if strings.TrimSpace(s.URL) == "" {
			return fmt.Errorf("SHEET_URL is required when SHEET_SOURCE is 'http'")
		}
	case SheetSourceXLSX, SheetSourceFile:
		if strings.TrimSpace(s.Path) == "" {
			return fmt.Errorf("SHEET_PATH is required when SHEET_SOURCE is '%s'", s.Source)
		}
	default:
		return fmt.Errorf("SHEET_SOURCE must be 'http', 'xlsx' or 'file', got '%s'", s.Source)
	}
	if s.FetchTimeout <= 0 {
		return fmt.Errorf("SHEET_FETCH_TIMEOUT must be positive, got %s", s.FetchTimeout)
	}
	if s.CacheEnabled && s.CacheTTL <= 0 {
		return fmt.Errorf("SHEET_CACHE_TTL must be positive when the cache is enabled, got %s", s.CacheTTL)
	}
	return nil
}

type DirectoryOptions struct {
	// Cron spec (robfig/cron) for background refreshes; empty disables the scheduler.
	RefreshSchedule string `env:"DIRECTORY_REFRESH_SCHEDULE" envDefault:""`
	DefaultPageSize int    `env:"DIRECTORY_PAGE_SIZE" envDefault:"50"`
}

type SessionOptions struct {
	UserHeader string `env:"SESSION_USER_HEADER" envDefault:"X-User-ID"`
	RoleHeader string `env:"SESSION_ROLE_HEADER" envDefault:"X-User-Role"`
	NIPHeader  string `env:"SESSION_NIP_HEADER" envDefault:"X-User-NIP"`
}

type LogOptions struct {
	Level string `env:"LOG_LEVEL" envDefault:"error"`
	Path  string `env:"LOG_PATH" envDefault:"./logs/app.log"`
}

type OpenTelemetryOptions struct {
	Enabled     bool   `env:"OTEL_ENABLED" envDefault:"false"`
	TempoURL    string `env:"OTEL_TEMPO_URL" envDefault:"localhost:4318"`
	ServiceName string `env:"OTEL_SERVICE_NAME" envDefault:"hcdash"`
}

type PrometheusOptions struct {
	Enabled bool   `env:"PROMETHEUS_METRICS_ENABLED" envDefault:"false"`
	Path    string `env:"PROMETHEUS_METRICS_PATH" envDefault:"/debug/prometheus"`
}

type RateLimitOptions struct {
	Enabled   bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	GlobalRPS int    `env:"RATE_LIMIT_GLOBAL_RPS" envDefault:"1000"`
	Storage   string `env:"RATE_LIMIT_STORAGE" envDefault:"memory"` // memory or redis
	RedisURL  string `env:"RATE_LIMIT_REDIS_URL"`
}

// Validate checks the rate limit configuration for errors
func (r *RateLimitOptions) Validate() error {
	if r.GlobalRPS < 0 {
		return fmt.Errorf("rate limit GlobalRPS must be non-negative, got %d", r.GlobalRPS)
	}
	if r.GlobalRPS > 1000000 {
		return fmt.Errorf("rate limit GlobalRPS too high, maximum is 1,000,000, got %d", r.GlobalRPS)
	}
	if r.Storage != "memory" && r.Storage != "redis" {
		return fmt.Errorf("rate limit Storage must be 'memory' or 'redis', got '%s'", r.Storage)
	}
	if r.Storage == "redis" && r.RedisURL == "" {
		return fmt.Errorf("rate limit RedisURL is required when Storage is 'redis'")
	}
	return nil
}

type AuthzOptions struct {
	// Empty paths select the embedded default model and policy.
	ModelPath      string `env:"AUTHZ_MODEL_PATH" envDefault:""`
	PolicyPath     string `env:"AUTHZ_POLICY_PATH" envDefault:""`
	FlagConfigPath string `env:"AUTHZ_FLAG_CONFIG" envDefault:""`
	Mode           string `env:"AUTHZ_MODE" envDefault:"enforce"`
}

type Configuration struct {
	Sheet         SheetOptions
	Directory     DirectoryOptions
	Session       SessionOptions
	Log           LogOptions
	OpenTelemetry OpenTelemetryOptions
	Prometheus    PrometheusOptions
	RateLimit     RateLimitOptions
	Authz         AuthzOptions

	RedisURL           string `env:"REDIS_URL" envDefault:"localhost:6379"`
	ServerPort         int    `env:"PORT" envDefault:"3200"`
	GoAppEnvironment   string `env:"GO_APP_ENV" envDefault:"development"`
	SocketAddress      string `env:"-"`
	Origin             string `env:"ORIGIN" envDefault:""`
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:"http://localhost:3000"`
	// Looked up on every request; a fresh uuidv4 is generated when absent.
	RequestIDHeader string `env:"REQUEST_ID_HEADER" envDefault:"X-Request-ID"`
	RealIPHeader    string `env:"REAL_IP_HEADER" envDefault:"X-Real-IP"`

	logFile *os.File
	logger  *logrus.Logger
}

func (c *Configuration) Logger() *logrus.Logger {
	return c.logger
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.Log.Level {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.ErrorLevel
	}
}

func (c *Configuration) Scheme() string {
	if c.GoAppEnvironment == Production {
		return "https"
	}
	return "http"
}

// AllowedOrigins splits CORS_ALLOWED_ORIGINS on commas and whitespace.
func (c *Configuration) AllowedOrigins() []string {
	return strings.FieldsFunc(c.CORSAllowedOrigins, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
}

func Use() *Configuration {
	return singleton()
}

func (c *Configuration) load(envFiles []string) error {
	n, err := LoadEnv(envFiles)
	if err != nil {
		return err
	}
	if n == 0 {
		wd, _ := os.Getwd()
		log.Println("No .env files found. Tried:")
		for _, file := range envFiles {
			log.Println(filepath.Join(wd, file))
		}
	}
	if err := env.Parse(c); err != nil {
		return err
	}
	if err := c.validate(); err != nil {
		return err
	}

	f, logger, err := logging.FileLogger(c.LogrusLogLevel(), c.Log.Path)
	if err != nil {
		return err
	}
	c.logFile = f
	c.logger = logger

	if c.GoAppEnvironment == Production {
		c.SocketAddress = fmt.Sprintf(":%d", c.ServerPort)
	} else {
		c.SocketAddress = fmt.Sprintf("localhost:%d", c.ServerPort)
	}
	if strings.TrimSpace(c.Origin) == "" {
		c.Origin = fmt.Sprintf("%s://localhost:%d", c.Scheme(), c.ServerPort)
	}
	return nil
}

func (c *Configuration) validate() error {
	c.Sheet.Source = strings.ToLower(strings.TrimSpace(c.Sheet.Source))
	if err := c.Sheet.Validate(); err != nil {
		return fmt.Errorf("sheet configuration error: %w", err)
	}
	if err := c.RateLimit.Validate(); err != nil {
		return fmt.Errorf("rate limit configuration error: %w", err)
	}
	if c.Directory.DefaultPageSize <= 0 {
		return fmt.Errorf("invalid DIRECTORY_PAGE_SIZE=%d (expected > 0)", c.Directory.DefaultPageSize)
	}

	mode := strings.ToLower(strings.TrimSpace(c.Authz.Mode))
	switch mode {
	case "disabled", "shadow", "enforce":
	default:
		return fmt.Errorf("invalid AUTHZ_MODE=%q (expected disabled|shadow|enforce)", c.Authz.Mode)
	}
	c.Authz.Mode = mode
	return nil
}

// Unload handles a graceful shutdown.
func (c *Configuration) Unload() {
	if c.logFile != nil {
		if err := c.logFile.Close(); err != nil {
			log.Printf("Failed to close log file: %v", err)
		}
	}
}
