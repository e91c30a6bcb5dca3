// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads optional provider credentials from a directory of
// plain-text files. Each file is one secret: the filename is the key name and
// the file contents (trimmed) are the value.
//
// Every upstream the engine talks to works keyless; the supported files only
// raise courtesy limits or satisfy politeness policies: ipinfo-token (GeoIP
// fallback provider), geocoder-email (reverse geocoder contact address).
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Secrets maps secret names to values.
type Secrets map[string]string

// Get returns the named secret, or fallback when it is absent.
func (s Secrets) Get(name, fallback string) string {
	if v, ok := s[name]; ok {
		return v
	}
	return fallback
}

// Load reads all files in dir. A missing directory is not an error; the
// engine runs fully keyless. Unreadable files produce a warning on stderr
// but do not abort.
func Load(dir string) (Secrets, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Secrets{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	out := Secrets{}
	for _, entry := range entries {
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", entry.Name(), err)
			continue
		}
		if value := strings.TrimSpace(string(data)); value != "" {
			out[entry.Name()] = value
		}
	}
	return out, nil
}
