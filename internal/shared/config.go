package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration. Values are loaded from a
// TOML file and then overridden by environment variables, so deployments can
// run with no config file at all.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Frontend    FrontendConfig    `toml:"frontend"`
	Generator   GeneratorConfig   `toml:"generator"`
	Scrape      ScrapeConfig      `toml:"scrape"`
	Server      ServerConfig      `toml:"server"`
}

// CredentialsConfig contains provider-specific credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
}

// SpotifyConfig contains Spotify OAuth client credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id" env:"SPOTIFY_CLIENT_ID"`
	ClientSecret string `toml:"client_secret" env:"SPOTIFY_CLIENT_SECRET"`
	RedirectURI  string `toml:"redirect_uri" env:"SPOTIFY_REDIRECT_URI"`
	Scopes       string `toml:"scopes"`
}

// Configured reports whether the credentials needed for the token exchange
// are present. The OAuth endpoints degrade to a configuration error when not.
func (s SpotifyConfig) Configured() bool {
	return s.ClientID != "" && s.ClientSecret != "" && s.RedirectURI != ""
}

// Map returns the credentials as a map for service constructors.
func (s SpotifyConfig) Map() map[string]string {
	return map[string]string{
		"client_id":     s.ClientID,
		"client_secret": s.ClientSecret,
		"redirect_uri":  s.RedirectURI,
	}
}

// FrontendConfig locates the browser frontend that receives OAuth redirects.
type FrontendConfig struct {
	URL string `toml:"url" env:"FRONTEND_URL"`
}

// GeneratorConfig contains settings for the LLM playlist generator.
type GeneratorConfig struct {
	APIKey  string `toml:"api_key" env:"OPENAI_API_KEY"`
	BaseURL string `toml:"base_url" env:"OPENAI_BASE_URL"`
	Model   string `toml:"model" env:"OPENAI_MODEL"`
}

// ScrapeConfig contains settings for the allowlisted fetch proxy.
type ScrapeConfig struct {
	AllowedHosts []string `toml:"allowed_hosts"`
	RateLimit    float64  `toml:"rate_limit"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host      string `toml:"host" env:"HOST"`
	Port      int    `toml:"port" env:"PORT"`
	StaticDir string `toml:"static_dir" env:"STATIC_DIR"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// LoadEnv applies environment variable overrides to the config. A .env file
// in the working directory is loaded first when present. Variables that are
// unset leave the corresponding fields untouched.
func LoadEnv(config *Config) error {
	_ = godotenv.Load()

	if err := env.Parse(config); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}

	return nil
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	// Check if file already exists
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s: %w", path, err)
	}

	// Write the embedded example config to the file
	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
