// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Secrets
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyWikiContact, "  ops@example.org  \n")
				writeFile(t, dir, KeyWikiAPIURL, "https://test.wikipedia.org/w/api.php\n")
				return dir
			},
			want: Secrets{
				KeyWikiContact: "ops@example.org",
				KeyWikiAPIURL:  "https://test.wikipedia.org/w/api.php",
			},
		},
		{
			name: "returns empty set for nonexistent directory",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Secrets{},
		},
		{
			name: "skips empty files",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, KeyWikiContact, "ops@example.org")
				writeFile(t, dir, "empty-key", "")
				writeFile(t, dir, "whitespace-only", "   \n\t  ")
				return dir
			},
			want: Secrets{KeyWikiContact: "ops@example.org"},
		},
		{
			name: "skips dotfiles and subdirectories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden-key", "secret")
				writeFile(t, dir, KeyWikiAPIURL, "https://x/api.php")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir"), 0o755))
				return dir
			},
			want: Secrets{KeyWikiAPIURL: "https://x/api.php"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t), &bytes.Buffer{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadUnreadableFile(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}
	dir := t.TempDir()
	writeFile(t, dir, KeyWikiContact, "ops@example.org")

	badPath := filepath.Join(dir, "bad-key")
	require.NoError(t, os.WriteFile(badPath, []byte("secret"), 0o000))
	t.Cleanup(func() { os.Chmod(badPath, 0o644) })

	var warn bytes.Buffer
	got, err := Load(dir, &warn)
	require.NoError(t, err)
	assert.Equal(t, "ops@example.org", got[KeyWikiContact])
	assert.NotContains(t, got, "bad-key")
	assert.Contains(t, warn.String(), "could not read secret bad-key")
}

func TestGet(t *testing.T) {
	s := Secrets{KeyWikiAPIURL: "https://from-secrets/api.php"}
	assert.Equal(t, "https://from-flag/api.php", s.Get(KeyWikiAPIURL, "https://from-flag/api.php"))
	assert.Equal(t, "https://from-secrets/api.php", s.Get(KeyWikiAPIURL, ""))
	assert.Equal(t, "", s.Get(KeyWikiContact, ""))
}

func TestUserAgent(t *testing.T) {
	tests := []struct {
		name string
		s    Secrets
		base string
		want string
	}{
		{"no contact", Secrets{}, "article-history/0.1", "article-history/0.1"},
		{"contact appended", Secrets{KeyWikiContact: "ops@example.org"}, "article-history/0.1", "article-history/0.1 (ops@example.org)"},
		{"contact already present", Secrets{KeyWikiContact: "ops@example.org"}, "bot/1 (ops@example.org)", "bot/1 (ops@example.org)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.UserAgent(tt.base))
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
