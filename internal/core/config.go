package core

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/cellularmitosis/retainn/pkg/resync"
	"github.com/pelletier/go-toml/v2"
)

// Default $RETAINN_HOME/config content
const DefaultConfig = `
[core]
parallel=0

[http]
timeout="30s"
user_agent="retainn"

[review]
session_limit=0
`

// Default timeout when the configuration omits it or is invalid
const defaultHTTPTimeout = 30 * time.Second

var (
	// Lazy-load configuration and ensure a single read
	configOnce      resync.Once
	configSingleton *Config
)

// Note: Fields must be public for toml package to unmarshall
type ConfigFile struct {
	Core   ConfigCore   `toml:"core"`
	HTTP   ConfigHTTP   `toml:"http"`
	Review ConfigReview `toml:"review"`
	S3     ConfigS3     `toml:"s3"`
	Storj  ConfigStorj  `toml:"storj"`
}
type ConfigCore struct {
	// How many decks to check concurrently (0 = number of CPUs)
	Parallel int `toml:"parallel"`
}
type ConfigHTTP struct {
	Timeout   string `toml:"timeout"`
	UserAgent string `toml:"user_agent"`
}
type ConfigReview struct {
	// Maximum number of cards per review session (0 = unlimited)
	SessionLimit int `toml:"session_limit"`
}
type ConfigS3 struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Secure    bool   `toml:"secure"`
}
type ConfigStorj struct {
	AccessGrant string `toml:"access_grant"`
}

// Parallelism returns the number of decks to check concurrently.
func (f *ConfigFile) Parallelism() int {
	if f.Core.Parallel <= 0 {
		return runtime.NumCPU()
	}
	return f.Core.Parallel
}

// HTTPTimeout returns the timeout to apply to every HTTP request.
func (f *ConfigFile) HTTPTimeout() time.Duration {
	if f.HTTP.Timeout == "" {
		return defaultHTTPTimeout
	}
	d, err := time.ParseDuration(f.HTTP.Timeout)
	if err != nil || d <= 0 {
		return defaultHTTPTimeout
	}
	return d
}

// ConfigureS3 defines the credentials used by s3:// decks.
func (f *ConfigFile) ConfigureS3(endpoint, accessKey, secretKey string, secure bool) *ConfigFile {
	f.S3 = ConfigS3{
		Endpoint:  endpoint,
		AccessKey: accessKey,
		SecretKey: secretKey,
		Secure:    secure,
	}
	return f
}

/* Main config */

type Config struct {
	// Absolute directory containing the database and the config file
	HomeDirectory string

	// $RETAINN_HOME/config content
	ConfigFile ConfigFile
}

func CurrentConfig() *Config {
	configOnce.Do(func() {
		var err error
		configSingleton, err = ReadConfigFromDirectory(currentHome())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Unable to read current configuration: %v\n", err)
			os.Exit(1)
		}
	})
	return configSingleton
}

// Check reports settings that would otherwise be silently replaced by defaults.
func (c *Config) Check() error {
	if c.ConfigFile.Core.Parallel < 0 {
		return fmt.Errorf("invalid core.parallel %d: must be positive", c.ConfigFile.Core.Parallel)
	}
	if c.ConfigFile.HTTP.Timeout != "" {
		if _, err := time.ParseDuration(c.ConfigFile.HTTP.Timeout); err != nil {
			return fmt.Errorf("invalid http.timeout %q: %w", c.ConfigFile.HTTP.Timeout, err)
		}
	}
	if c.ConfigFile.Review.SessionLimit < 0 {
		return fmt.Errorf("invalid review.session_limit %d: must be positive", c.ConfigFile.Review.SessionLimit)
	}
	return nil
}

// DatabasePath returns the location of the SQLite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.HomeDirectory, "database.db")
}

func currentHome() string {
	// Supports overriding the home directory mainly for testing purposes. Ex:
	//
	//   $ env RETAINN_HOME=/tmp/retainn go run ./cmd/retainn decks
	if path, ok := os.LookupEnv("RETAINN_HOME"); ok {
		abspath, err := filepath.Abs(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, "Failed to evaluate $RETAINN_HOME")
			os.Exit(1)
		}
		return abspath
	}

	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to determine home directory: %v\n", err)
		os.Exit(1)
	}
	return filepath.Join(home, ".retainn")
}

// ReadConfigFromDirectory loads the configuration present in the given directory,
// creating the directory on first use.
func ReadConfigFromDirectory(path string) (*Config, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("unable to create home directory %s: %w", path, err)
	}

	configPath := filepath.Join(path, "config")
	_, err := os.Stat(configPath)
	var configFile *ConfigFile
	if os.IsNotExist(err) {
		configFile, err = parseConfigFile(DefaultConfig)
		if err != nil {
			return nil, fmt.Errorf("default configuration is broken: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to check for config file: %w", err)
	} else {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		configFile, err = parseConfigFile(string(content))
		if err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	return &Config{
		HomeDirectory: path,
		ConfigFile:    *configFile,
	}, nil
}

func parseConfigFile(content string) (*ConfigFile, error) {
	r := strings.NewReader(content)
	d := toml.NewDecoder(r)
	d.DisallowUnknownFields()
	var result ConfigFile
	err := d.Decode(&result)
	return &result, err
}
