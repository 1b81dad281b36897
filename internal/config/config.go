package config

import (
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Storage   StorageConfig   `yaml:"storage"`
	Database  DatabaseConfig  `yaml:"database"`
	Jobs      JobsConfig      `yaml:"jobs"`
	Redis     RedisConfig     `yaml:"redis"`
	Extractor ExtractorConfig `yaml:"extractor"`
	Export    ExportConfig    `yaml:"export"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"30s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"120s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// RateLimitConfig bounds per-IP request rates on upload endpoints.
type RateLimitConfig struct {
	UploadsPerMinute int           `yaml:"uploads_per_minute" env:"RATE_LIMIT_UPLOADS_PER_MINUTE" env-default:"30"`
	CleanupInterval  time.Duration `yaml:"cleanup_interval"   env:"RATE_LIMIT_CLEANUP_INTERVAL"   env-default:"5m"`
}

// Artifact storage backends.
const (
	ArtifactBackendFile     = "file"
	ArtifactBackendPostgres = "postgres"
)

// StorageConfig holds the data directory layout and artifact backend.
type StorageConfig struct {
	DataDir         string `yaml:"data_dir"          env:"DATA_DIR"                  env-default:"./data"`
	Artifacts       string `yaml:"artifacts"         env:"STORAGE_ARTIFACTS"         env-default:"file"`
	RetentionDays   int    `yaml:"retention_days"    env:"STORAGE_RETENTION_DAYS"    env-default:"7"`
	MaxUploadSizeMB int64  `yaml:"max_upload_size_mb" env:"STORAGE_MAX_UPLOAD_SIZE_MB" env-default:"200"`
}

// MaxUploadBytes returns the upload limit in bytes.
func (s StorageConfig) MaxUploadBytes() int64 { return s.MaxUploadSizeMB << 20 }

// DatabaseConfig holds PostgreSQL connection settings. Required only for
// the postgres artifact backend.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// Job store backends.
const (
	JobBackendMemory = "memory"
	JobBackendRedis  = "redis"
)

// JobsConfig holds extraction job settings.
type JobsConfig struct {
	Backend       string `yaml:"backend"        env:"JOBS_BACKEND"        env-default:"memory"`
	MaxConcurrent int64  `yaml:"max_concurrent" env:"JOBS_MAX_CONCURRENT" env-default:"2"`
}

// RedisConfig holds the Redis job store connection.
type RedisConfig struct {
	Addr      string        `yaml:"addr"       env:"REDIS_ADDR"       env-default:"localhost:6379"`
	Password  string        `yaml:"password"   env:"REDIS_PASSWORD"`
	DB        int           `yaml:"db"         env:"REDIS_DB"         env-default:"0"`
	KeyPrefix string        `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"termsuite:job:"`
	JobTTL    time.Duration `yaml:"job_ttl"    env:"REDIS_JOB_TTL"    env-default:"168h"`
}

// ExtractorConfig locates the delegated term extractor.
type ExtractorConfig struct {
	JavaBin  string        `yaml:"java_bin"  env:"JAVA_BIN"          env-default:"java"`
	JarPath  string        `yaml:"jar_path"  env:"TERMSUITE_JAR"     env-default:"/app/termsuite/termsuite-core-3.0.10.jar"`
	JavaOpts string        `yaml:"java_opts" env:"JAVA_OPTS"         env-default:"-Xms1g -Xmx4g"`
	Timeout  time.Duration `yaml:"timeout"   env:"EXTRACTOR_TIMEOUT" env-default:"10m"`
}

// ExportConfig holds report defaults.
type ExportConfig struct {
	DefaultFormat string `yaml:"default_format" env:"EXPORT_DEFAULT_FORMAT" env-default:"xlsx"`
	DefaultTopN   int    `yaml:"default_top_n"  env:"EXPORT_DEFAULT_TOP_N"  env-default:"0"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// UsesPostgres reports whether artifacts live in PostgreSQL.
func (c *Config) UsesPostgres() bool {
	return strings.EqualFold(c.Storage.Artifacts, ArtifactBackendPostgres)
}
