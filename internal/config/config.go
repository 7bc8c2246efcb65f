package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "zotmcp", "config.yml")
}

// Load reads the config from disk (or env). Returns an empty config if no
// file exists yet — the setup command will populate it.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("zotero.api_base", "https://api.zotero.org")
	v.SetDefault("zotero.library_type", "user")
	v.SetDefault("zotero.key_env", "ZOTERO_API_KEY")
	v.SetDefault("serve.host", "127.0.0.1")
	v.SetDefault("serve.port", 8008)
	v.SetDefault("serve.path", "/mcp")
	v.SetDefault("serve.token_env", "ZOTMCP_BEARER_TOKEN")
	v.SetDefault("defaults.top_tags", 10)
	v.SetDefault("defaults.search_limit", 25)

	v.SetEnvPrefix("ZOTMCP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configPath := os.Getenv("ZOTMCP_CONFIG")
	if configPath == "" {
		configPath = DefaultPath()
	}
	v.SetConfigFile(configPath)

	if err := v.ReadInConfig(); err != nil {
		// Not finding the config file is fine — the setup command creates it.
		if !os.IsNotExist(err) {
			if _, isCfgNotFound := err.(viper.ConfigFileNotFoundError); !isCfgNotFound {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Resolve secrets from env (never stored in the file).
	keyEnv := cfg.Zotero.KeyEnv
	if keyEnv == "" {
		keyEnv = "ZOTERO_API_KEY"
	}
	cfg.Zotero.Key = os.Getenv(keyEnv)
	if cfg.Zotero.Key == "" {
		cfg.Zotero.Key = os.Getenv("ZOTMCP_ZOTERO_KEY")
	}

	tokenEnv := cfg.Serve.TokenEnv
	if tokenEnv == "" {
		tokenEnv = "ZOTMCP_BEARER_TOKEN"
	}
	cfg.Serve.Token = os.Getenv(tokenEnv)

	return &cfg, nil
}

// Save writes the config to the default path.
func Save(cfg *Config) error {
	path := os.Getenv("ZOTMCP_CONFIG")
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(cfg)
}
