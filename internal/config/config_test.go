package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Makepad-fr/stock/internal/config"
	flag "github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestApplyEnv(t *testing.T) {
	cfg := config.Default()
	err := cfg.ApplyEnv(envMap(map[string]string{
		"STOCK_THEME":       "neon",
		"STOCK_SEED":        "seed.json",
		"STOCK_ADDR":        ":9000",
		"STOCK_TOKEN":       " secret ",
		"STOCK_SESSION_TTL": "5m",
	}))
	require.NoError(t, err)
	assert.Equal(t, "neon", cfg.Theme)
	assert.Equal(t, "seed.json", cfg.SeedFile)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
}

func TestApplyEnv_BadTTL(t *testing.T) {
	cfg := config.Default()
	err := cfg.ApplyEnv(envMap(map[string]string{"STOCK_SESSION_TTL": "soon"}))
	assert.Error(t, err)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
}

func TestFlagsOverrideEnv(t *testing.T) {
	cfg := config.Default()
	require.NoError(t, cfg.ApplyEnv(envMap(map[string]string{"STOCK_THEME": "neon", "STOCK_ADDR": ":9000"})))

	fs := flag.NewFlagSet("stock", flag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"-t", "mono", "--demo", "serve"}))

	assert.Equal(t, "mono", cfg.Theme)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.True(t, cfg.Demo)
	assert.Equal(t, []string{"serve"}, fs.Args())
}

func TestValidate(t *testing.T) {
	cfg := config.Default()
	assert.NoError(t, cfg.Validate())

	cfg.Demo, cfg.SeedFile = true, "x.json"
	assert.Error(t, cfg.Validate())

	cfg = config.Default()
	cfg.SessionTTL = 0
	assert.Error(t, cfg.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	assert.NoError(t, config.LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")))

	p := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(p, []byte("STOCK_TEST_DOTENV=from-file\n"), 0o644))
	require.NoError(t, config.LoadDotEnv(p))
	t.Cleanup(func() { os.Unsetenv("STOCK_TEST_DOTENV") })
	assert.Equal(t, "from-file", os.Getenv("STOCK_TEST_DOTENV"))
}

func TestValidate_Theme(t *testing.T) {
	for _, name := range []string{"classic", "neon", "mono", "NEON"} {
		cfg := config.Default()
		cfg.Theme = name
		assert.NoError(t, cfg.Validate(), name)
	}

	cfg := config.Default()
	cfg.Theme = "sepia"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown theme "sepia"`)
}
