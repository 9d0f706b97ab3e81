package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
)

type Config struct {
	Server      ServerConfig
	Cluster     ClusterConfig
	Shim        ShimConfig
	Diagnostics DiagnosticsConfig
	Logging     LoggingConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  int
	WriteTimeout int
	AllowOrigins []string
	MaxUploadMB  int
}

type ClusterConfig struct {
	// 每个集群一个子目录: <ConfigsDir>/<name>/config.properties
	ConfigsDir     string
	RegistryDB     string
	EncryptionSeed string
}

type ShimConfig struct {
	InternalID           string
	CatalogFile          string
	DriverDeployDir      string
	DriverInstallTimeout time.Duration
}

type DiagnosticsConfig struct {
	Timeout  time.Duration
	CacheTTL time.Duration
}

type LoggingConfig struct {
	Level  string
	Format string
	File   string
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	// .env 不存在时使用默认配置
	_ = godotenv.Load()

	pentahoDir := defaultPentahoDir()

	return &Config{
		Server: ServerConfig{
			Host:         getEnvAsString("SERVER_HOST", "127.0.0.1"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 30),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 30),
			AllowOrigins: getEnvAsList("CORS_ALLOW_ORIGINS", []string{"http://localhost:3000"}),
			MaxUploadMB:  getEnvAsInt("MAX_UPLOAD_MB", 64),
		},
		Cluster: ClusterConfig{
			ConfigsDir:     getEnvAsString("NAMED_CLUSTER_CONFIGS_DIR", DefaultConfigsDir(pentahoDir)),
			RegistryDB:     getEnvAsString("NAMED_CLUSTER_DB", filepath.Join(pentahoDir, "named-clusters.db")),
			EncryptionSeed: getEnvAsString("ENCRYPTION_SEED", "Kettle"),
		},
		Shim: ShimConfig{
			InternalID:           getEnvAsString("INTERNAL_SHIM_ID", "apache"),
			CatalogFile:          getEnvAsString("SHIM_CATALOG_FILE", ""),
			DriverDeployDir:      getEnvAsString("SHIM_DRIVER_DEPLOYMENT_LOCATION", filepath.Join(pentahoDir, "drivers")),
			DriverInstallTimeout: getEnvAsDuration("DRIVER_INSTALL_TIMEOUT", 2*time.Minute),
		},
		Diagnostics: DiagnosticsConfig{
			Timeout:  getEnvAsDuration("DIAG_TIMEOUT", 5*time.Second),
			CacheTTL: getEnvAsDuration("DIAG_CACHE_TTL", 30*time.Minute),
		},
		Logging: LoggingConfig{
			Level:  getEnvAsString("LOG_LEVEL", "info"),
			Format: getEnvAsString("LOG_FORMAT", "text"),
			File:   getEnvAsString("LOG_FILE", ""),
		},
	}
}

// DefaultConfigsDir returns the named cluster config root under a pentaho home.
func DefaultConfigsDir(pentahoDir string) string {
	return filepath.Join(pentahoDir, "metastore", "pentaho", "NamedCluster", "Configs")
}

func defaultPentahoDir() string {
	home, err := homedir.Dir()
	if err != nil {
		home = os.TempDir()
	}
	return filepath.Join(home, ".pentaho")
}

func getEnvAsString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
