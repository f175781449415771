package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"practice-quest/internal/domain"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server       ServerConfig
	DB           DBConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	RateLimit    RateLimitConfig
	Gamification GamificationConfig
	Feedback     FeedbackConfig
	CacheTTLs    CacheTTLConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DBConfig struct {
	// Driver is "oracle" (pure Go, go-ora) or "godror" (OCI client required).
	Driver   string
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	MaxOpen  int
	MaxIdle  int
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
}

type LoggerConfig struct {
	Env      string
	Level    string
	FilePath string
}

type AuthConfig struct {
	JWTSecret string
	AdminRole string
	JWTIssuer string
}

type RateLimitConfig struct {
	Enabled           bool
	RequestsPerMinute int
}

type GamificationConfig struct {
	Timezone               string
	XPPerMinute            int
	SessionXPCap           int
	SentimentBonusPerPoint int
	LevelStep              int64
	MaxLevel               int
	LongSessionMinutes     int
	ComebackGapDays        int
	EarlyWindowEndHour     int
	LateWindowStartHour    int
	ShieldCap              int
	ShieldPrice            int64
	RecoveryPrice          int64
	RecoveryWindowDays     int
	MaxRecoveriesPerWeek   int
	LeaderboardSize        int
}

type FeedbackConfig struct {
	Enabled         bool
	OllamaServerURL string
	Model           string
	PromptTemplate  string
	DailyQuota      int64
	Timeout         time.Duration
}

type CacheTTLConfig struct {
	Stats       time.Duration
	Leaderboard time.Duration
}

// Rules maps the configured values onto the domain rule set.
func (g GamificationConfig) Rules() domain.GamificationRules {
	return domain.GamificationRules{
		XPPerMinute:            g.XPPerMinute,
		SessionXPCap:           g.SessionXPCap,
		SentimentBonusPerPoint: g.SentimentBonusPerPoint,
		LevelStep:              g.LevelStep,
		MaxLevel:               g.MaxLevel,
		LongSessionMinutes:     g.LongSessionMinutes,
		ComebackGapDays:        g.ComebackGapDays,
		EarlyWindowEndHour:     g.EarlyWindowEndHour,
		LateWindowStartHour:    g.LateWindowStartHour,
		ShieldCap:              g.ShieldCap,
	}
}

// Location resolves Timezone, falling back to UTC when it is empty.
func (g GamificationConfig) Location() (*time.Location, error) {
	if g.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(g.Timezone)
}

const defaultPromptTemplate = `You are a supportive practice coach. A student just logged a practice session.
Item: {{item}}
Duration: {{minutes}} minutes
How it felt (1-5): {{sentiment}}
Notes: {{notes}}
Improved since last time: {{improved}}
Current streak: {{streak}} days

Respond with ONLY a JSON object:
{"summary": "...", "encouragement": "...", "next_focus": "..."}
Keep each field under 60 words.`

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)

	v.SetDefault("db.driver", "oracle")
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 1521)
	v.SetDefault("db.name", "FREEPDB1")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 5)

	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)

	v.SetDefault("logger.env", "development")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file_path", "")

	v.SetDefault("auth.admin_role", "admin")
	v.SetDefault("auth.jwt_issuer", "")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_minute", 60)

	rules := domain.DefaultGamificationRules()
	v.SetDefault("gamification.timezone", "UTC")
	v.SetDefault("gamification.xp_per_minute", rules.XPPerMinute)
	v.SetDefault("gamification.session_xp_cap", rules.SessionXPCap)
	v.SetDefault("gamification.sentiment_bonus_per_point", rules.SentimentBonusPerPoint)
	v.SetDefault("gamification.level_step", rules.LevelStep)
	v.SetDefault("gamification.max_level", rules.MaxLevel)
	v.SetDefault("gamification.long_session_minutes", rules.LongSessionMinutes)
	v.SetDefault("gamification.comeback_gap_days", rules.ComebackGapDays)
	v.SetDefault("gamification.early_window_end_hour", rules.EarlyWindowEndHour)
	v.SetDefault("gamification.late_window_start_hour", rules.LateWindowStartHour)
	v.SetDefault("gamification.shield_cap", rules.ShieldCap)
	v.SetDefault("gamification.shield_price", 50)
	v.SetDefault("gamification.recovery_price", 100)
	v.SetDefault("gamification.recovery_window_days", 3)
	v.SetDefault("gamification.max_recoveries_per_week", 1)
	v.SetDefault("gamification.leaderboard_size", 50)

	v.SetDefault("feedback.enabled", false)
	v.SetDefault("feedback.ollama_server_url", "http://localhost:11434")
	v.SetDefault("feedback.model", "qwen3:0.6b")
	v.SetDefault("feedback.prompt_template", defaultPromptTemplate)
	v.SetDefault("feedback.daily_quota", 10)
	v.SetDefault("feedback.timeout", 20)

	v.SetDefault("cache_ttls.stats", 300)
	v.SetDefault("cache_ttls.leaderboard", 60)
}

// LoadConfig reads .env (if present), config.yaml (if present) and APP_* environment
// variables, in increasing order of precedence.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	cfg := fromViper(v)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
		},
		DB: DBConfig{
			Driver:   v.GetString("db.driver"),
			Host:     v.GetString("db.host"),
			Port:     v.GetInt("db.port"),
			User:     v.GetString("db.user"),
			Password: v.GetString("db.password"),
			DBName:   v.GetString("db.name"),
			MaxOpen:  v.GetInt("db.max_open"),
			MaxIdle:  v.GetInt("db.max_idle"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Logger: LoggerConfig{
			Env:      v.GetString("logger.env"),
			Level:    v.GetString("logger.level"),
			FilePath: v.GetString("logger.file_path"),
		},
		Auth: AuthConfig{
			JWTSecret: v.GetString("auth.jwt_secret"),
			AdminRole: v.GetString("auth.admin_role"),
			JWTIssuer: v.GetString("auth.jwt_issuer"),
		},
		RateLimit: RateLimitConfig{
			Enabled:           v.GetBool("rate_limit.enabled"),
			RequestsPerMinute: v.GetInt("rate_limit.requests_per_minute"),
		},
		Gamification: GamificationConfig{
			Timezone:               v.GetString("gamification.timezone"),
			XPPerMinute:            v.GetInt("gamification.xp_per_minute"),
			SessionXPCap:           v.GetInt("gamification.session_xp_cap"),
			SentimentBonusPerPoint: v.GetInt("gamification.sentiment_bonus_per_point"),
			LevelStep:              v.GetInt64("gamification.level_step"),
			MaxLevel:               v.GetInt("gamification.max_level"),
			LongSessionMinutes:     v.GetInt("gamification.long_session_minutes"),
			ComebackGapDays:        v.GetInt("gamification.comeback_gap_days"),
			EarlyWindowEndHour:     v.GetInt("gamification.early_window_end_hour"),
			LateWindowStartHour:    v.GetInt("gamification.late_window_start_hour"),
			ShieldCap:              v.GetInt("gamification.shield_cap"),
			ShieldPrice:            v.GetInt64("gamification.shield_price"),
			RecoveryPrice:          v.GetInt64("gamification.recovery_price"),
			RecoveryWindowDays:     v.GetInt("gamification.recovery_window_days"),
			MaxRecoveriesPerWeek:   v.GetInt("gamification.max_recoveries_per_week"),
			LeaderboardSize:        v.GetInt("gamification.leaderboard_size"),
		},
		Feedback: FeedbackConfig{
			Enabled:         v.GetBool("feedback.enabled"),
			OllamaServerURL: v.GetString("feedback.ollama_server_url"),
			Model:           v.GetString("feedback.model"),
			PromptTemplate:  v.GetString("feedback.prompt_template"),
			DailyQuota:      v.GetInt64("feedback.daily_quota"),
			Timeout:         time.Duration(v.GetInt("feedback.timeout")) * time.Second,
		},
		CacheTTLs: CacheTTLConfig{
			Stats:       time.Duration(v.GetInt("cache_ttls.stats")) * time.Second,
			Leaderboard: time.Duration(v.GetInt("cache_ttls.leaderboard")) * time.Second,
		},
	}
}

// Validate rejects configurations the services cannot run with.
func (c *Config) Validate() error {
	var problems []string
	if c.DB.Driver != "oracle" && c.DB.Driver != "godror" {
		problems = append(problems, fmt.Sprintf("db.driver must be oracle or godror, got %q", c.DB.Driver))
	}
	if _, err := c.Gamification.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("gamification.timezone: %v", err))
	}
	g := c.Gamification
	if g.LevelStep <= 0 || g.MaxLevel < 1 {
		problems = append(problems, "gamification.level_step and gamification.max_level must be positive")
	}
	if g.EarlyWindowEndHour < 0 || g.EarlyWindowEndHour > 24 || g.LateWindowStartHour < 0 || g.LateWindowStartHour > 24 {
		problems = append(problems, "gamification time-of-day hours must be within 0..24")
	}
	if g.ShieldCap < 0 || g.ShieldPrice <= 0 || g.RecoveryPrice <= 0 {
		problems = append(problems, "gamification shield and recovery settings must be positive")
	}
	if c.Feedback.Enabled && c.Feedback.DailyQuota <= 0 {
		problems = append(problems, "feedback.daily_quota must be positive when feedback is enabled")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// GetDSN builds the connection string for the configured driver.
func (c *Config) GetDSN() string {
	if c.DB.Driver == "godror" {
		return fmt.Sprintf(`user="%s" password="%s" connectString="%s:%d/%s"`,
			c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.DBName)
	}
	return fmt.Sprintf("oracle://%s:%s@%s:%d/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.DBName,
	)
}
