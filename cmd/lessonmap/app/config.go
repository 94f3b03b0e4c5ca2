package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/agentstation/lessonmap/pkg/constants"
	"github.com/agentstation/lessonmap/pkg/errors"
)

// EnvPrefix prefixes the environment variables read for configuration keys,
// so LESSONMAP_ROOT sets root.
const EnvPrefix = "LESSONMAP"

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Catalog configuration
	Root string

	// Device configuration
	Device       string
	MountRoots   []string
	PollInterval time.Duration

	// Administrator credentials
	AdminUser         string
	AdminPassword     string
	AdminPasswordHash string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// LoadConfig loads configuration from all sources in order of precedence:
//  1. Command-line flags (applied later by UpdateFromFlags)
//  2. Environment variables (LESSONMAP_*)
//  3. .env files
//  4. Config file (configFile, or ~/.lessonmap.yaml, ./.lessonmap.yaml)
//  5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("root", constants.DefaultDataFolder)
	v.SetDefault("poll_interval", constants.DevicePollInterval)
	v.SetDefault("admin_user", constants.AdminUsername)

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config", "reading "+configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(".lessonmap")

		// A missing default config file is not an error, a malformed one is
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config", "reading "+v.ConfigFileUsed(), err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		Root: v.GetString("root"),

		Device:       v.GetString("device"),
		MountRoots:   v.GetStringSlice("mount_roots"),
		PollInterval: v.GetDuration("poll_interval"),

		AdminUser:         v.GetString("admin_user"),
		AdminPassword:     v.GetString("admin_password"),
		AdminPasswordHash: v.GetString("admin_password_hash"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat: getEnvOrDefault("LOG_FORMAT", v.GetString("log_format")),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", v.GetString("log_output")),
	}

	if config.LogFormat == "" {
		config.LogFormat = "auto"
	}
	if config.LogOutput == "" {
		config.LogOutput = "stderr"
	}
	if config.PollInterval <= 0 {
		config.PollInterval = constants.DevicePollInterval
	}

	return config, nil
}

// UpdateFromFlags copies the flags the user actually set, so defaults of
// unset flags never override the config file or environment.
func (c *Config) UpdateFromFlags(fs *pflag.FlagSet) {
	if fs.Changed("verbose") {
		c.Verbose, _ = fs.GetBool("verbose")
	}
	if fs.Changed("quiet") {
		c.Quiet, _ = fs.GetBool("quiet")
	}
	if fs.Changed("no-color") {
		c.NoColor, _ = fs.GetBool("no-color")
	}
	if fs.Changed("format") {
		c.Format, _ = fs.GetString("format")
	}
	if fs.Changed("log-level") {
		c.LogLevel, _ = fs.GetString("log-level")
	}
	if fs.Changed("root") {
		c.Root, _ = fs.GetString("root")
	}
}

// loadEnvFiles loads environment variables from .env files.
// godotenv never overrides variables already set, so .env wins over
// .env.local for keys present in both.
func loadEnvFiles() {
	for _, envFile := range []string{".env", ".env.local"} {
		_ = godotenv.Load(envFile)
	}
}

// getEnvOrDefault returns the environment variable value or the default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
