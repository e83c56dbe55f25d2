package app

import (
	"os"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/agentstation/dataunifier/pkg/constants"
	"github.com/agentstation/dataunifier/pkg/errors"
)

// Config holds the application configuration loaded from config files,
// environment variables and .env files. Command-line flags are bound to the
// same fields and win over every other source.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool
	Format  string

	// Config file
	ConfigFile string

	// Run configuration
	OutputFile   string
	Delimiter    string
	HeaderStyle  string
	Passthrough  []string
	ReportPath   string
	ReportFormat string

	// MongoDB sink, enabled when MongoURI is set
	MongoURI        string
	MongoDatabase   string
	MongoCollection string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string

	// levelFromFlag is set when --log-level was given explicitly
	levelFromFlag bool
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (handled by cobra)
// 2. Environment variables (DATAUNIFIER_OUTPUT_FILE, ...)
// 3. .env files
// 4. Config file (~/.dataunifier.yaml or ./.dataunifier.yaml)
// 5. Defaults
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), os.Getenv("DATAUNIFIER_CONFIG"))
}

func loadConfig(v *viper.Viper, configFile string) (*Config, error) {
	// .env files are loaded before the environment is bound
	loadEnvFiles()

	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("output_file", constants.DefaultOutputFile)
	v.SetDefault("delimiter", string(constants.DefaultDelimiter))
	v.SetDefault("header_style", constants.DefaultHeaderStyle)
	v.SetDefault("mongo_database", constants.DefaultMongoDatabase)
	v.SetDefault("mongo_collection", constants.DefaultMongoCollection)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigFile)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, errors.NewConfigError("config", "reading config file", err)
		}
	}

	return &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),
		Format:  v.GetString("format"),

		ConfigFile: v.ConfigFileUsed(),

		OutputFile:   v.GetString("output_file"),
		Delimiter:    v.GetString("delimiter"),
		HeaderStyle:  v.GetString("header_style"),
		Passthrough:  v.GetStringSlice("passthrough"),
		ReportPath:   v.GetString("report"),
		ReportFormat: v.GetString("report_format"),

		MongoURI:        v.GetString("mongo_uri"),
		MongoDatabase:   v.GetString("mongo_database"),
		MongoCollection: v.GetString("mongo_collection"),

		LogLevel:  getEnvOrDefault("LOG_LEVEL", v.GetString("log_level")),
		LogFormat: getEnvOrDefault("LOG_FORMAT", v.GetString("log_format")),
		LogOutput: getEnvOrDefault("LOG_OUTPUT", v.GetString("log_output")),
	}, nil
}

// UpdateFromFlags updates config values from parsed global flags.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, format, logLevel string) {
	c.Verbose = verbose
	c.Quiet = quiet
	c.NoColor = noColor
	if format != "" {
		c.Format = format
	}
	if logLevel != "" {
		c.LogLevel = logLevel
		c.levelFromFlag = true
	}
}

// mergeFile takes every setting from file whose flag was not changed on the
// command line.
func (c *Config) mergeFile(file *Config, changed func(flag string) bool) {
	merge := func(flag string, dst *string, src string) {
		if !changed(flag) {
			*dst = src
		}
	}
	merge("output-file", &c.OutputFile, file.OutputFile)
	merge("delimiter", &c.Delimiter, file.Delimiter)
	merge("header-style", &c.HeaderStyle, file.HeaderStyle)
	merge("report", &c.ReportPath, file.ReportPath)
	merge("report-format", &c.ReportFormat, file.ReportFormat)
	merge("mongo-uri", &c.MongoURI, file.MongoURI)
	merge("mongo-database", &c.MongoDatabase, file.MongoDatabase)
	merge("mongo-collection", &c.MongoCollection, file.MongoCollection)
	merge("log-format", &c.LogFormat, file.LogFormat)
	merge("format", &c.Format, file.Format)
	if !changed("passthrough") {
		c.Passthrough = file.Passthrough
	}
	if !changed("log-level") {
		c.LogLevel = file.LogLevel
	}
	c.ConfigFile = file.ConfigFile
}

// DelimiterRune returns the configured delimiter as a single rune. "tab"
// and "\t" select a tab.
func (c *Config) DelimiterRune() (rune, error) {
	switch c.Delimiter {
	case "":
		return constants.DefaultDelimiter, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size != len(c.Delimiter) {
		return 0, errors.NewConfigError("delimiter", "delimiter must be a single character: "+c.Delimiter, nil)
	}
	return r, nil
}

// loadEnvFiles loads environment variables from .env files. Variables
// already set are kept.
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
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
