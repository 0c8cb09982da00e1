package cmd

import (
	"testing"

	"github.com/pxbridge/pxbridge/internal/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetStartFlags() {
	startServerCmdBindPort = ""
	startServerCmdBaseURL = ""
	startServerCmdConfigFile = ""
}

func TestResolveConfigDefaults(t *testing.T) {
	resetStartFlags()

	cfg, err := resolveConfig(afero.NewMemMapFs())
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, config.DefaultPort, cfg.Port)
	assert.False(t, cfg.TelemetryEnabled)
}

func TestResolveConfigFlagBeatsEnv(t *testing.T) {
	resetStartFlags()
	t.Setenv(BindPortEnvVar, "8080")
	t.Setenv(UpstreamURLEnvVar, "https://env.example.com/v2")

	startServerCmdBindPort = "9090"
	defer resetStartFlags()

	cfg, err := resolveConfig(afero.NewMemMapFs())
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port, "flag must take precedence over env var")
	assert.Equal(t, "https://env.example.com/v2", cfg.BaseURL, "env var applies when no flag is set")
}

func TestResolveConfigEnvBeatsFile(t *testing.T) {
	resetStartFlags()
	t.Setenv(BindPortEnvVar, "8080")

	fs := afero.NewMemMapFs()
	content := []byte("port: \"7070\"\nbase_url: https://file.example.com/v2\n")
	require.NoError(t, afero.WriteFile(fs, "pxbridge.yaml", content, 0o644))

	startServerCmdConfigFile = "pxbridge.yaml"
	defer resetStartFlags()

	cfg, err := resolveConfig(fs)
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port, "env var must take precedence over the config file")
	assert.Equal(t, "https://file.example.com/v2", cfg.BaseURL, "file value applies when no env var is set")
}

func TestResolveConfigMissingFile(t *testing.T) {
	resetStartFlags()
	startServerCmdConfigFile = "does-not-exist.yaml"
	defer resetStartFlags()

	_, err := resolveConfig(afero.NewMemMapFs())
	assert.Error(t, err)
}

func TestResolveConfigInvalidPort(t *testing.T) {
	resetStartFlags()
	startServerCmdBindPort = "not-a-port"
	defer resetStartFlags()

	_, err := resolveConfig(afero.NewMemMapFs())
	assert.Error(t, err)
}

func TestIsTelemetryEnabled(t *testing.T) {
	tests := []struct {
		name           string
		envValue       string
		defaultEnabled bool
		want           bool
		wantErr        bool
	}{
		{"unset keeps default false", "", false, false, false},
		{"unset keeps default true", "", true, true, false},
		{"true", "true", false, true, false},
		{"TRUE", "TRUE", false, true, false},
		{"1", "1", false, true, false},
		{"false overrides default", "false", true, false, false},
		{"0", "0", true, false, false},
		{"invalid", "yes", false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.envValue != "" {
				t.Setenv(TelemetryEnabledEnvVar, tt.envValue)
			}
			got, err := isTelemetryEnabled(tt.defaultEnabled)
			if (err != nil) != tt.wantErr {
				t.Fatalf("isTelemetryEnabled() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("isTelemetryEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
