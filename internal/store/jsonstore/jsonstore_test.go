package jsonstore_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Makepad-fr/stock/internal/store/jsonstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoadSeed(t *testing.T) {
	names, err := jsonstore.LoadSeed(write(t, `["chleb", "bułka", "chleb"]`))
	require.NoError(t, err)
	assert.Equal(t, []string{"chleb", "bułka", "chleb"}, names)
}

func TestLoadSeed_Missing(t *testing.T) {
	names, err := jsonstore.LoadSeed(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLoadSeed_Malformed(t *testing.T) {
	_, err := jsonstore.LoadSeed(write(t, `{"items": 1}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "json unmarshal")
}

func TestDemo_IsCopy(t *testing.T) {
	d := jsonstore.Demo()
	d[0] = "masło"
	assert.Equal(t, "chleb", jsonstore.DemoSeed[0])
}
