// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads per-installation values from a directory of
// plain-text files. The filename is the key and the trimmed contents are
// the value.
//
// Recognized keys: wiki-contact (appended to the User-Agent, as Wikimedia's
// API etiquette asks) and wiki-api-url (overrides the API endpoint).
package secrets

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Known key names.
const (
	KeyWikiContact = "wiki-contact"
	KeyWikiAPIURL  = "wiki-api-url"
)

// Secrets maps key names to values.
type Secrets map[string]string

// Load reads all files in dir. A missing directory is not an error; Load
// returns an empty set. Unreadable files produce a warning on warn but do
// not abort.
func Load(dir string, warn io.Writer) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	s := make(Secrets)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(warn, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			s[name] = value
		}
	}
	return s, nil
}

// Get returns the value for key, or fallback when fallback is non-empty or
// the key is absent. An explicit fallback (a flag or config value) wins.
func (s Secrets) Get(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return s[key]
}

// UserAgent appends the wiki-contact value to base in the form
// "base (contact)". Without a contact, base is returned unchanged.
func (s Secrets) UserAgent(base string) string {
	contact := s[KeyWikiContact]
	if contact == "" || strings.Contains(base, contact) {
		return base
	}
	return base + " (" + contact + ")"
}
