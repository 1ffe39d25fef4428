package confkit_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/goodvill0413/piona-auto-trade-bot/pkg/confkit"
)

func TestResolvePath(t *testing.T) {
	tests := map[string]struct {
		base string
		file string
		want string
	}{
		"absolute path ignores base": {
			base: "/base/dir",
			file: "/absolute/file.yaml",
			want: "/absolute/file.yaml",
		},
		"relative path joins base": {
			base: "/base/dir",
			file: "exchange.yaml",
			want: filepath.Join("/base/dir", "exchange.yaml"),
		},
		"env var expansion": {
			base: "/base/dir",
			file: "${CONFKIT_TEST_DIR}/exchange.yaml",
			want: filepath.Join("/base/dir", "sub", "exchange.yaml"),
		},
	}

	t.Setenv("CONFKIT_TEST_DIR", "sub")
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			require.Equal(t, tc.want, confkit.ResolvePath(tc.base, tc.file))
		})
	}
}

func TestSectionHydrate(t *testing.T) {
	t.Run("empty file is a no-op", func(t *testing.T) {
		section := &confkit.Section[string]{}
		err := section.Hydrate("/base", func(string) (*string, error) {
			t.Fatal("loader must not run for an empty section")
			return nil, nil
		})
		require.NoError(t, err)
		require.Nil(t, section.Value)
	})

	t.Run("loads and records the resolved path", func(t *testing.T) {
		section := &confkit.Section[string]{File: "exchange.yaml"}
		value := "loaded"
		err := section.Hydrate("/base", func(path string) (*string, error) {
			require.Equal(t, filepath.Join("/base", "exchange.yaml"), path)
			return &value, nil
		})
		require.NoError(t, err)
		require.NotNil(t, section.Value)
		require.Equal(t, "loaded", *section.Value)
		require.Equal(t, filepath.Join("/base", "exchange.yaml"), section.File)
	})

	t.Run("loader errors propagate", func(t *testing.T) {
		boom := errors.New("boom")
		section := &confkit.Section[int]{File: "exchange.yaml"}
		err := section.Hydrate("/base", func(string) (*int, error) {
			return nil, boom
		})
		require.ErrorIs(t, err, boom)
		require.Nil(t, section.Value)
	})
}
