package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath    = "config.yaml"
	StorageAzure   = "azure"
	StorageMinio   = "minio"
	defaultAPIVers = "2023-05-15"
)

type Config struct {
	Server struct {
		Port int `yaml:"port" env:"HTTP_PORT"`
	} `yaml:"server"`

	Log struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"log"`

	Azure struct {
		ResourceGroup string `yaml:"resourceGroup" env:"AZURE_RESOURCE_GROUP"`
		Subscription  string `yaml:"subscription" env:"AZURE_SUBSCRIPTION_ID"`
		Binary        string `yaml:"binary" env:"AZ_BINARY"`
		AppID         string `yaml:"appId" env:"APP_ID"`
		AppSecret     string `yaml:"appSecret" env:"APP_SECRET"`
		TenantID      string `yaml:"tenantId" env:"TENANT_ID"`
	} `yaml:"azure"`

	OpenAI struct {
		APIVersion string        `yaml:"apiVersion" env:"OPENAI_API_VERSION"`
		Timeout    time.Duration `yaml:"timeout" env:"OPENAI_TIMEOUT"`
	} `yaml:"openai"`

	Probe struct {
		ModelFamilies []string `yaml:"modelFamilies" env:"MODEL_FAMILIES" envSeparator:","`
		Regions       []string `yaml:"regions" env:"REGIONS" envSeparator:","`
	} `yaml:"probe"`

	Schedule struct {
		Enabled      bool   `yaml:"enabled" env:"SCHEDULE_ENABLED"`
		Cron         string `yaml:"cron" env:"SCHEDULE"`
		RunOnStartup bool   `yaml:"runOnStartup" env:"RUN_ON_STARTUP"`
	} `yaml:"schedule"`

	Storage struct {
		Backend          string `yaml:"backend" env:"STORAGE_BACKEND"`
		ConnectionString string `yaml:"connectionString" env:"AZURE_STORAGE_CONNECTION_STRING"`
		ContainerDocs    string `yaml:"containerDocs" env:"AZURE_STORAGE_CONTAINER_NAME_DOCS"`
		// read for parity with the function app settings; reports go to ContainerDocs
		ContainerImages string `yaml:"containerImages" env:"AZURE_STORAGE_CONTAINER_NAME_IMAGES"`
		LocalDir        string `yaml:"localDir" env:"REPORT_LOCAL_DIR"`
	} `yaml:"storage"`

	Minio struct {
		Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
		AccessKey string `yaml:"accessKey" env:"MINIO_ACCESS_KEY"`
		SecretKey string `yaml:"secretKey" env:"MINIO_SECRET_KEY"`
		Region    string `yaml:"region" env:"MINIO_REGION"`
		UseSSL    bool   `yaml:"useSSL" env:"MINIO_USE_SSL"`
	} `yaml:"minio"`
}

// Default is the configuration used when nothing overrides it.
func Default() *Config {
	var c Config
	c.Server.Port = 7071
	c.Log.Level = "info"
	c.Log.Format = "console"
	c.Azure.ResourceGroup = "rg-ai-openai"
	c.Azure.Binary = "az"
	c.OpenAI.APIVersion = defaultAPIVers
	c.OpenAI.Timeout = 2 * time.Minute
	c.Probe.ModelFamilies = []string{"gpt-4", "gpt-35-turbo"}
	c.Schedule.Enabled = true
	c.Schedule.Cron = "5 * * * *"
	c.Schedule.RunOnStartup = true
	c.Storage.Backend = StorageAzure
	return &c
}

// Load baca file config.yaml (boleh tidak ada), lalu .env dan environment variables
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse %s: %w", path, err)
			}
		}
	}

	if err := LoadEnvFiles(".env"); err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnvFiles loads dotenv files that exist. Variables already set win.
func LoadEnvFiles(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Storage.Backend {
	case StorageAzure, StorageMinio:
	default:
		return fmt.Errorf("unsupported storage backend %q (azure|minio)", c.Storage.Backend)
	}
	if c.Schedule.Enabled && c.Schedule.Cron == "" {
		return errors.New("schedule enabled without cron expression")
	}
	return nil
}

// Path resolves the config file location from CONFIG_PATH.
func Path() string {
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		return v
	}
	return DefaultPath
}
