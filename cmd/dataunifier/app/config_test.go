package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/dataunifier/pkg/constants"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	config, err := loadConfig(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultOutputFile, config.OutputFile)
	assert.Equal(t, ",", config.Delimiter)
	assert.Equal(t, constants.DefaultHeaderStyle, config.HeaderStyle)
	assert.Equal(t, constants.DefaultMongoDatabase, config.MongoDatabase)
	assert.Equal(t, constants.DefaultMongoCollection, config.MongoCollection)
	assert.Empty(t, config.MongoURI)
	assert.Empty(t, config.ConfigFile)
}

func TestLoadConfigEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DATAUNIFIER_OUTPUT_FILE", "from-env.csv")
	t.Setenv("DATAUNIFIER_HEADER_STYLE", "display")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "from-env.csv", config.OutputFile)
	assert.Equal(t, "display", config.HeaderStyle)
	assert.Equal(t, "debug", config.LogLevel)
}

func TestLoadConfigDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())
	t.Setenv("DATAUNIFIER_REPORT", "")
	require.NoError(t, os.Unsetenv("DATAUNIFIER_REPORT"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.local"), []byte("DATAUNIFIER_REPORT=local.yaml\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DATAUNIFIER_REPORT=shared.yaml\n"), 0o644))

	config, err := loadConfig(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "local.yaml", config.ReportPath)
}

func TestLoadConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	file := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`output_file: out.csv
delimiter: tab
passthrough:
  - memo
  - account
mongo_uri: mongodb://localhost:27017
`), 0o644))

	config, err := loadConfig(viper.New(), file)
	require.NoError(t, err)
	assert.Equal(t, "out.csv", config.OutputFile)
	assert.Equal(t, []string{"memo", "account"}, config.Passthrough)
	assert.Equal(t, "mongodb://localhost:27017", config.MongoURI)
	assert.Equal(t, file, config.ConfigFile)

	r, err := config.DelimiterRune()
	require.NoError(t, err)
	assert.Equal(t, '\t', r)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := loadConfig(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDelimiterRune(t *testing.T) {
	tests := []struct {
		in      string
		want    rune
		wantErr bool
	}{
		{"", ',', false},
		{",", ',', false},
		{";", ';', false},
		{"tab", '\t', false},
		{`\t`, '\t', false},
		{"|", '|', false},
		{"§", '§', false},
		{";;", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := (&Config{Delimiter: tt.in}).DelimiterRune()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeFile(t *testing.T) {
	config := &Config{OutputFile: "flag.csv", HeaderStyle: "canonical", LogLevel: "warn"}
	file := &Config{OutputFile: "file.csv", HeaderStyle: "display", LogLevel: "debug", ConfigFile: "x.yaml"}

	config.mergeFile(file, func(flag string) bool { return flag == "output-file" || flag == "log-level" })

	assert.Equal(t, "flag.csv", config.OutputFile)
	assert.Equal(t, "display", config.HeaderStyle)
	assert.Equal(t, "warn", config.LogLevel)
	assert.Equal(t, "x.yaml", config.ConfigFile)
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
