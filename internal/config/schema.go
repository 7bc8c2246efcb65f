package config

// Config is the top-level zotmcp configuration.
type Config struct {
	Zotero   ZoteroConfig   `mapstructure:"zotero" yaml:"zotero"`
	Serve    ServeConfig    `mapstructure:"serve" yaml:"serve"`
	Defaults DefaultsConfig `mapstructure:"defaults" yaml:"defaults"`
}

// ZoteroConfig holds Zotero API connection settings.
type ZoteroConfig struct {
	LibraryID   string `mapstructure:"library_id" yaml:"library_id"`
	LibraryType string `mapstructure:"library_type" yaml:"library_type"` // "user" or "group"
	KeyEnv      string `mapstructure:"key_env" yaml:"key_env"`
	APIBase     string `mapstructure:"api_base" yaml:"api_base"`
	Key         string `mapstructure:"-" yaml:"-"` // resolved at runtime, never written
}

// ServeConfig holds MCP server settings.
type ServeConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     int    `mapstructure:"port" yaml:"port"`
	Path     string `mapstructure:"path" yaml:"path"`
	TokenEnv string `mapstructure:"token_env" yaml:"token_env"`
	Token    string `mapstructure:"-" yaml:"-"` // resolved at runtime, never written
}

// DefaultsConfig holds default values for operations.
type DefaultsConfig struct {
	TopTags     int `mapstructure:"top_tags" yaml:"top_tags"`
	SearchLimit int `mapstructure:"search_limit" yaml:"search_limit"`
}
