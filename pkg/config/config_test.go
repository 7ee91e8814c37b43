package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/outlet/pkg/config"
	"github.com/aretw0/outlet/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Defaults(t *testing.T) {
	cfg, err := config.Decode(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
	assert.Equal(t, []domain.Location{domain.LocationCenter, domain.LocationBottom}, cfg.AllowedLocations)
	assert.Equal(t, domain.LocationBottom, cfg.DefaultLocation)
	assert.Equal(t, domain.SplitRight, cfg.Split)
	assert.True(t, cfg.UseAdjacentPane)
}

func TestDecode_Overrides(t *testing.T) {
	cfg, err := config.Decode(map[string]any{
		"allowedLocations": []any{"right"},
		"defaultLocation":  "right",
		"split":            "down",
		"useAdjacentPane":  "false",
		"title":            "Build",
		"classList":        []string{"build-output"},
	})
	require.NoError(t, err)
	assert.Equal(t, []domain.Location{domain.LocationRight}, cfg.AllowedLocations, "a given list replaces the default")
	assert.Equal(t, domain.SplitDown, cfg.Split)
	assert.False(t, cfg.UseAdjacentPane)
	assert.Equal(t, "Build", cfg.Title)
	assert.Equal(t, []string{"build-output"}, cfg.ClassList)
}

func TestDecode_Errors(t *testing.T) {
	cases := map[string]map[string]any{
		"default not allowed": {"defaultLocation": "left"},
		"unknown location":    {"allowedLocations": []any{"center", "top"}},
		"empty allowed":       {"allowedLocations": []any{}},
		"bad split":           {"split": "diagonal"},
		"unknown key":         {"extendsTextEditor": true},
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := config.Decode(raw)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "outlet.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
allowedLocations: [center, bottom, left]
defaultLocation: left
trackModified: true
`), 0o644))
	cfg, err := config.LoadFile(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, domain.LocationLeft, cfg.DefaultLocation)
	assert.True(t, cfg.TrackModified)

	jsonPath := filepath.Join(dir, "outlet.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"defaultLocation": "center"}`), 0o644))
	cfg, err = config.LoadFile(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, domain.LocationCenter, cfg.DefaultLocation)

	_, err = config.LoadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	_, err = config.Parse([]byte("a = 1"), "toml")
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}
