package config

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DefaultKeywords 是默认关注的词表：公司、产品与技术名，按标题子串匹配（不区分大小写）
var DefaultKeywords = []string{"AI", "LLM", "GPT", "Agent", "Claude", "OpenAI", "Anthropic", "Nvidia", "Codex"}

const (
	envPrefix = "TREND_SCOUT"

	defaultOutputDir      = "second-brain/content/ideas"
	defaultLimit          = 100
	defaultConcurrency    = 10
	defaultHNBaseURL      = "https://hacker-news.firebaseio.com/v0"
	defaultRequestTimeout = 10 * time.Second
)

type Config struct {
	// scout
	Keywords       []string
	OutputDir      string
	Limit          int
	Concurrency    int
	HNBaseURL      string
	RequestTimeout time.Duration

	// ideas board
	AppPort       string
	PostgresDSN   string
	RedisAddr     string
	IdeasDir      string
	SignalFile    string
	WebRoot       string
	BasicAuthUser string
	BasicAuthPass string
}

// 看板相关配置沿用无前缀的环境变量名
var boardEnv = map[string]string{
	"app_port":        "APP_PORT",
	"postgres_dsn":    "POSTGRES_DSN",
	"redis_addr":      "REDIS_ADDR",
	"web_root":        "WEB_ROOT",
	"basic_auth_user": "APP_BASIC_USER",
	"basic_auth_pass": "APP_BASIC_PASS",
}

// Load 读取配置：默认值 < yaml 配置文件 < 环境变量。
// path 为空时尝试读取当前目录下的 trend-scout.yaml，不存在不算错误。
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range boardEnv {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("config: bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("trend-scout")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	cfg := &Config{
		Keywords:       stringList(v, "keywords"),
		OutputDir:      v.GetString("output_dir"),
		Limit:          v.GetInt("limit"),
		Concurrency:    v.GetInt("concurrency"),
		HNBaseURL:      strings.TrimRight(v.GetString("hn_base_url"), "/"),
		RequestTimeout: v.GetDuration("request_timeout"),

		AppPort:       v.GetString("app_port"),
		PostgresDSN:   v.GetString("postgres_dsn"),
		RedisAddr:     v.GetString("redis_addr"),
		IdeasDir:      v.GetString("ideas_dir"),
		SignalFile:    v.GetString("signal_file"),
		WebRoot:       v.GetString("web_root"),
		BasicAuthUser: v.GetString("basic_auth_user"),
		BasicAuthPass: v.GetString("basic_auth_pass"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log.Printf("config loaded: output=%s limit=%d concurrency=%d keywords=%d", cfg.OutputDir, cfg.Limit, cfg.Concurrency, len(cfg.Keywords))
	return cfg, nil
}

// Validate 检查扫描所需的最小配置
func (c *Config) Validate() error {
	switch {
	case len(c.Keywords) == 0:
		return errors.New("config: at least one keyword is required")
	case strings.TrimSpace(c.OutputDir) == "":
		return errors.New("config: output_dir is required")
	case c.Limit <= 0:
		return fmt.Errorf("config: limit must be positive, got %d", c.Limit)
	case c.Concurrency <= 0:
		return fmt.Errorf("config: concurrency must be positive, got %d", c.Concurrency)
	case c.RequestTimeout <= 0:
		return fmt.Errorf("config: request_timeout must be positive, got %s", c.RequestTimeout)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("keywords", DefaultKeywords)
	v.SetDefault("output_dir", defaultOutputDir)
	v.SetDefault("limit", defaultLimit)
	v.SetDefault("concurrency", defaultConcurrency)
	v.SetDefault("hn_base_url", defaultHNBaseURL)
	v.SetDefault("request_timeout", defaultRequestTimeout)

	v.SetDefault("app_port", "3001")
	v.SetDefault("postgres_dsn", "host=localhost user=trendscout password=trendscout dbname=trendscout port=5432 sslmode=disable TimeZone=UTC")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("ideas_dir", defaultOutputDir)
	v.SetDefault("signal_file", "")
	v.SetDefault("web_root", "")
	v.SetDefault("basic_auth_user", "")
	v.SetDefault("basic_auth_pass", "")
}

// stringList 同时兼容 yaml 列表与环境变量里的逗号分隔字符串。
// viper 对字符串默认按空白切分，会把 "machine learning" 拆成两个词，这里自己按逗号处理。
func stringList(v *viper.Viper, key string) []string {
	if s, ok := v.Get(key).(string); ok {
		return splitList(s)
	}
	return splitList(v.GetStringSlice(key)...)
}

func splitList(values ...string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
