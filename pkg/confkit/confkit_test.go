package confkit_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptopanel-api/pkg/confkit"
)

func TestResolvePath(t *testing.T) {
	t.Setenv("CONFKIT_DIR", "sections")

	tests := []struct {
		name string
		base string
		file string
		want string
	}{
		{name: "absolute", base: "/srv/etc", file: "/opt/market.yaml", want: "/opt/market.yaml"},
		{name: "relative", base: "/srv/etc", file: "market.yaml", want: "/srv/etc/market.yaml"},
		{name: "env expanded", base: "/srv/etc", file: "${CONFKIT_DIR}/market.yaml", want: filepath.Join("/srv/etc", "sections", "market.yaml")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, confkit.ResolvePath(tt.base, tt.file))
		})
	}
}

func TestSectionHydrate(t *testing.T) {
	t.Run("empty file is a no-op", func(t *testing.T) {
		var section confkit.Section[string]
		err := section.Hydrate("/base", func(string) (*string, error) {
			t.Fatal("loader must not run")
			return nil, nil
		})
		require.NoError(t, err)
		assert.False(t, section.Loaded())
		assert.EqualError(t, section.Require("market"), "config: market section is required")
	})

	t.Run("loads relative to base", func(t *testing.T) {
		section := confkit.Section[string]{File: "market.yaml"}
		value := "loaded"
		err := section.Hydrate("/base", func(path string) (*string, error) {
			assert.Equal(t, "/base/market.yaml", path)
			return &value, nil
		})
		require.NoError(t, err)
		assert.True(t, section.Loaded())
		assert.Equal(t, "/base/market.yaml", section.File)
		assert.NoError(t, section.Require("market"))
	})

	t.Run("loader error is returned", func(t *testing.T) {
		section := confkit.Section[string]{File: "market.yaml"}
		boom := errors.New("boom")
		err := section.Hydrate("/base", func(string) (*string, error) { return nil, boom })
		require.ErrorIs(t, err, boom)
		assert.False(t, section.Loaded())
		assert.Contains(t, section.Require("market").Error(), "market.yaml")
	})
}
