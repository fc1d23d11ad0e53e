package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Reward    RewardConfig    `mapstructure:"reward"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"`
	MigrateOnly  bool `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RewardConfig 奖励计算的可调参数：重复作答衰减下限、连续活跃里程碑等
type RewardConfig struct {
	MinJems          int `mapstructure:"min_jems"`           // 正确作答时奖励货币下限
	MinXP            int `mapstructure:"min_xp"`             // 正确作答时经验下限
	XPPerDifficulty  int `mapstructure:"xp_per_difficulty"`  // 题目未配置经验时按难度折算
	StreakMilestone  int `mapstructure:"streak_milestone"`   // 连续活跃里程碑间隔（天）
	StreakBonusJems  int `mapstructure:"streak_bonus_jems"`  // 命中里程碑的一次性奖励
	LedgerMaxRetries int `mapstructure:"ledger_max_retries"` // 账本事务冲突重试次数
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("LINGO_LEARN")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	applyRewardDefaults(&cfg.Reward)

	return &cfg, nil
}

func applyRewardDefaults(r *RewardConfig) {
	if r.MinJems <= 0 {
		r.MinJems = 1
	}
	if r.MinXP <= 0 {
		r.MinXP = 10
	}
	if r.XPPerDifficulty <= 0 {
		r.XPPerDifficulty = 25
	}
	if r.StreakMilestone <= 0 {
		r.StreakMilestone = 7
	}
	if r.StreakBonusJems < 0 {
		r.StreakBonusJems = 0
	}
	if r.LedgerMaxRetries <= 0 {
		r.LedgerMaxRetries = 3
	}
}
