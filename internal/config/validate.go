package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if c.UsesPostgres() && c.Database.DSN == "" {
		return fmt.Errorf("database.dsn is required when storage.artifacts is %q", ArtifactBackendPostgres)
	}

	switch strings.ToLower(c.Jobs.Backend) {
	case JobBackendMemory:
	case JobBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis.addr is required when jobs.backend is %q", JobBackendRedis)
		}
	default:
		return fmt.Errorf("jobs.backend must be %q or %q (got %q)", JobBackendMemory, JobBackendRedis, c.Jobs.Backend)
	}
	if c.Jobs.MaxConcurrent < 1 {
		return fmt.Errorf("jobs.max_concurrent must be >= 1 (got %d)", c.Jobs.MaxConcurrent)
	}

	if c.Extractor.Timeout <= 0 {
		return fmt.Errorf("extractor.timeout must be > 0 (got %s)", c.Extractor.Timeout)
	}

	switch strings.ToLower(c.Export.DefaultFormat) {
	case "xlsx", "excel", "csv", "json":
	default:
		return fmt.Errorf("export.default_format must be xlsx, csv or json (got %q)", c.Export.DefaultFormat)
	}
	if c.Export.DefaultTopN < 0 {
		return fmt.Errorf("export.default_top_n must be >= 0 (got %d)", c.Export.DefaultTopN)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	if strings.TrimSpace(s.DataDir) == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	switch strings.ToLower(s.Artifacts) {
	case ArtifactBackendFile, ArtifactBackendPostgres:
	default:
		return fmt.Errorf("artifacts must be %q or %q (got %q)", ArtifactBackendFile, ArtifactBackendPostgres, s.Artifacts)
	}
	if s.RetentionDays < 0 {
		return fmt.Errorf("retention_days must be >= 0 (got %d)", s.RetentionDays)
	}
	if s.MaxUploadSizeMB <= 0 {
		return fmt.Errorf("max_upload_size_mb must be > 0 (got %d)", s.MaxUploadSizeMB)
	}
	return nil
}
