package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	DefaultServerPort     = "3000"
	DefaultMaxBodyBytes   = 1_000_000
	DefaultFallbackPath   = "fallback.json"
	DefaultGithubApiUrl   = "https://api.github.com"
	DefaultJwtSecret      = "dev_secret_change_me"
	DefaultAllowedOrigins = "*"
)

type PostgresConfig struct {
	ConnectionString string `koanf:"connectionString"`
	Host             string `koanf:"host"`
	Port             string `koanf:"port"`
	Username         string `koanf:"username"`
	Password         string `koanf:"password"`
	Database         string `koanf:"database"`
}

// IsConfigured reports whether a networked document store was configured at all.
func (pgc *PostgresConfig) IsConfigured() bool {
	return pgc.ConnectionString != "" || pgc.Host != ""
}

func (pgc *PostgresConfig) GetPostgresDsn() string {
	if pgc.ConnectionString != "" {
		return pgc.ConnectionString
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		pgc.Host,
		pgc.Port,
		pgc.Username,
		pgc.Password,
		pgc.Database,
	)
}

// GetPostgresUrl returns the URL form required by golang-migrate.
func (pgc *PostgresConfig) GetPostgresUrl() string {
	if pgc.ConnectionString != "" {
		return pgc.ConnectionString
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(pgc.Username, pgc.Password),
		Host:     fmt.Sprintf("%s:%s", pgc.Host, pgc.Port),
		Path:     pgc.Database,
		RawQuery: "sslmode=disable",
	}

	return u.String()
}

type ServerConfig struct {
	PublicUrl    string `koanf:"publicUrl"`
	Ip           string `koanf:"ip"`
	Port         string `koanf:"port"`
	MaxBodyBytes int64  `koanf:"maxBodyBytes"`
}

func (srvc *ServerConfig) GetServerAddress() string {
	if srvc.Ip != "" {
		return fmt.Sprintf("%s:%s", srvc.Ip, srvc.Port)
	}

	return fmt.Sprintf(":%s", srvc.Port)
}

type OtelConfig struct {
	Enabled       bool   `koanf:"enabled"`
	TraceEndpoint string `koanf:"traceEndpoint"`
}

type StorageConfig struct {
	FallbackPath string `koanf:"fallbackPath"`
}

type GithubConfig struct {
	ClientId     string `koanf:"clientId"`
	ClientSecret string `koanf:"clientSecret"`
	RedirectUri  string `koanf:"redirectUri"`
	ApiUrl       string `koanf:"apiUrl"`
}

type CorsConfig struct {
	AllowedOrigins []string `koanf:"allowedOrigins"`
}

type Config struct {
	Server         ServerConfig   `koanf:"server"`
	Otel           OtelConfig     `koanf:"otel"`
	PostgresConfig PostgresConfig `koanf:"postgresql"`
	Storage        StorageConfig  `koanf:"storage"`
	Github         GithubConfig   `koanf:"github"`
	Cors           CorsConfig     `koanf:"cors"`
	JwtSecret      []byte         `koanf:"jwtSecret"`
}

// ApplyDefaults fills every unset field that has a usable default.
func (c *Config) ApplyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = DefaultServerPort
	}
	if c.Server.MaxBodyBytes <= 0 {
		c.Server.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if c.Storage.FallbackPath == "" {
		c.Storage.FallbackPath = DefaultFallbackPath
	}
	if c.Github.ApiUrl == "" {
		c.Github.ApiUrl = DefaultGithubApiUrl
	}
	if len(c.Cors.AllowedOrigins) == 0 {
		c.Cors.AllowedOrigins = []string{DefaultAllowedOrigins}
	}
	if len(c.JwtSecret) == 0 {
		c.JwtSecret = []byte(DefaultJwtSecret)
	}
}

// UsesDefaultJwtSecret is true when no secret was configured.
func (c *Config) UsesDefaultJwtSecret() bool {
	return string(c.JwtSecret) == DefaultJwtSecret
}

type ConfigReader interface {
	Read() *Config
}

func NewConfigReader() ConfigReader {
	mode := os.Getenv("MODE")
	if mode == "development" {
		return &JsonConfig{}
	}
	return &EnvConfig{}
}

func getCwd() string {
	_, currentFile, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(currentFile), "../..")
}

type JsonConfig struct {
	ConfigPath string
}

func (c *JsonConfig) Read() *Config {
	koanfInstance := koanf.New(".")

	configFilePath := c.ConfigPath
	if configFilePath == "" {
		rootDir := getCwd()
		configFilePath = filepath.Join(rootDir, "config.json")
	}

	configPath := file.Provider(configFilePath)
	if err := koanfInstance.Load(configPath, json.Parser()); err != nil {
		panic(fmt.Sprintf("error occurred while reading config: %s", err))
	}

	var config Config
	if err := koanfInstance.Unmarshal("", &config); err != nil {
		panic(fmt.Sprintf("error occurred while unmarshalling config: %s", err))
	}

	config.ApplyDefaults()
	return &config
}

type EnvConfig struct{}

func (c *EnvConfig) Read() *Config {
	koanfInstance := koanf.New(".")

	err := koanfInstance.Load(env.Provider("GITLITE_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "GITLITE_")),
			"_",
			".",
		)
	}), nil)
	if err != nil {
		panic(fmt.Sprintf("error occurred while reading env config: %s", err))
	}

	var config Config
	if err := koanfInstance.Unmarshal("", &config); err != nil {
		panic(fmt.Sprintf("error occurred while unmarshalling config: %s", err))
	}

	config.ApplyDefaults()
	return &config
}
