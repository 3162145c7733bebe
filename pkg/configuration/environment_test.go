package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_FallsBackToGoModRoot(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, "go.mod"), "module example.com/test\n\ngo 1.22\n")
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "HCDASH_TEST_ENV_LOAD=ok\n")

	sub := filepath.Join(tmp, "modules", "directory")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(sub))

	_ = os.Unsetenv("HCDASH_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("HCDASH_TEST_ENV_LOAD"))
}

func TestLoadEnv_NoFiles(t *testing.T) {
	tmp := t.TempDir()
	requireWriteFile(t, filepath.Join(tmp, "go.mod"), "module example.com/test\n")

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(tmp))

	n, err := LoadEnv([]string{".env.missing"})
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSheetOptions_Validate(t *testing.T) {
	cases := []struct {
		name    string
		opts    SheetOptions
		wantErr string
	}{
		{
			name: "http with url",
			opts: SheetOptions{Source: SheetSourceHTTP, URL: "https://example.com/pub?output=csv", FetchTimeout: time.Second},
		},
		{
			name:    "http without url",
			opts:    SheetOptions{Source: SheetSourceHTTP, FetchTimeout: time.Second},
			wantErr: "SHEET_URL is required",
		},
		{
			name:    "xlsx without path",
			opts:    SheetOptions{Source: SheetSourceXLSX, FetchTimeout: time.Second},
			wantErr: "SHEET_PATH is required",
		},
		{
			name: "file with path",
			opts: SheetOptions{Source: SheetSourceFile, Path: "directory.csv", FetchTimeout: time.Second},
		},
		{
			name:    "unknown source",
			opts:    SheetOptions{Source: "ftp", FetchTimeout: time.Second},
			wantErr: "SHEET_SOURCE must be",
		},
		{
			name:    "zero timeout",
			opts:    SheetOptions{Source: SheetSourceFile, Path: "x.csv"},
			wantErr: "SHEET_FETCH_TIMEOUT",
		},
		{
			name:    "cache without ttl",
			opts:    SheetOptions{Source: SheetSourceFile, Path: "x.csv", FetchTimeout: time.Second, CacheEnabled: true},
			wantErr: "SHEET_CACHE_TTL",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.opts.Validate()
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestRateLimitOptions_Validate(t *testing.T) {
	require.NoError(t, (&RateLimitOptions{GlobalRPS: 10, Storage: "memory"}).Validate())
	require.Error(t, (&RateLimitOptions{GlobalRPS: -1, Storage: "memory"}).Validate())
	require.Error(t, (&RateLimitOptions{GlobalRPS: 10, Storage: "disk"}).Validate())
	require.Error(t, (&RateLimitOptions{GlobalRPS: 10, Storage: "redis"}).Validate())
}

func TestConfiguration_ValidateNormalizesModes(t *testing.T) {
	t.Setenv("SHEET_SOURCE", " FILE ")
	t.Setenv("SHEET_PATH", "testdata/directory.csv")
	t.Setenv("AUTHZ_MODE", "Shadow")

	c := &Configuration{}
	require.NoError(t, env.Parse(c))
	require.NoError(t, c.validate())
	require.Equal(t, SheetSourceFile, c.Sheet.Source)
	require.Equal(t, "shadow", c.Authz.Mode)
	require.Equal(t, 15*time.Second, c.Sheet.FetchTimeout)
	require.Equal(t, "X-User-Role", c.Session.RoleHeader)
}

func TestConfiguration_ValidateRejectsUnknownAuthzMode(t *testing.T) {
	c := &Configuration{
		Sheet:     SheetOptions{Source: SheetSourceFile, Path: "x.csv", FetchTimeout: time.Second},
		RateLimit: RateLimitOptions{Storage: "memory"},
		Directory: DirectoryOptions{DefaultPageSize: 50},
		Authz:     AuthzOptions{Mode: "strict"},
	}
	require.ErrorContains(t, c.validate(), "AUTHZ_MODE")
}

func TestConfiguration_AllowedOrigins(t *testing.T) {
	c := &Configuration{CORSAllowedOrigins: "http://a.test, http://b.test\nhttp://c.test"}
	require.Equal(t, []string{"http://a.test", "http://b.test", "http://c.test"}, c.AllowedOrigins())
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
