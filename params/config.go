package params

const defaultEnvPrefix = "DEALPIPE_"

// Config describes where parameters come from.
type Config struct {
	File      string `json:"file,omitempty"`       // YAML, TOML or JSON parameter file; empty skips it.
	EnvPrefix string `json:"env_prefix,omitempty"` // Environment variable prefix.
	NoEnv     bool   `json:"no_env,omitempty"`     // Ignore the environment entirely.
}

// DefaultConfig returns the default parameter configuration: no file, and
// environment variables prefixed with DEALPIPE_.
func DefaultConfig() Config {
	return Config{EnvPrefix: defaultEnvPrefix}
}

// Merge applies non-zero values from source into c.
func (c *Config) Merge(source *Config) {
	if source.File != "" {
		c.File = source.File
	}
	if source.EnvPrefix != "" {
		c.EnvPrefix = source.EnvPrefix
	}
	if source.NoEnv {
		c.NoEnv = true
	}
}

// Sources returns the sources c describes, lowest precedence first.
func (c *Config) Sources() []Source {
	var sources []Source
	if c.File != "" {
		sources = append(sources, FileSource{Path: c.File})
	}
	if !c.NoEnv && c.EnvPrefix != "" {
		sources = append(sources, EnvSource{Prefix: c.EnvPrefix})
	}
	return sources
}
