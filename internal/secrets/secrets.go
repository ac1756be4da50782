// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets resolves the pipeline's API credentials. Each credential
// can come from a plain-text file in the secrets directory (the filename is
// the key, the trimmed contents are the value) or from an explicit override
// such as a flag or environment variable.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// The key files the pipeline knows about.
const (
	AnthropicAPIKey = "anthropic-api-key"
	ZoteroAPIKey    = "zotero-api-key"
	ZoteroLibraryID = "zotero-library-id"
)

var knownKeys = []string{AnthropicAPIKey, ZoteroAPIKey, ZoteroLibraryID}

// Load reads the known key files from dir and returns a map of key to
// trimmed value. A missing directory or missing key files are not errors;
// unrelated files in the directory are ignored. Unreadable key files
// produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
	for _, key := range knownKeys {
		data, err := os.ReadFile(filepath.Join(dir, key))
		if err != nil {
			if !os.IsNotExist(err) {
				fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", key, err)
			}
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			secrets[key] = value
		}
	}

	return secrets, nil
}

// Default resolves one credential: an explicit override (flag or
// environment variable) wins, then the loaded secret, then empty.
func Default(secrets map[string]string, key, override string) string {
	if override != "" {
		return override
	}
	return secrets[key]
}
