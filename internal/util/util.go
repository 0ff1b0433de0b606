package util

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// WritablePath returns the cleaned WRITABLE_PATH environment variable when it is set.
// Relative database, uploads and log paths are rooted under it.
func WritablePath() string {
	for _, key := range []string{"WRITABLE_PATH", "writable_path"} {
		if value, ok := os.LookupEnv(key); ok {
			trimmed := strings.TrimSpace(value)
			if trimmed != "" {
				return filepath.Clean(trimmed)
			}
		}
	}
	return ""
}

// HideSecret obscures a credential for logging, keeping only the first and last few characters.
func HideSecret(secret string) string {
	if len(secret) > 8 {
		return secret[:4] + "..." + secret[len(secret)-4:]
	} else if len(secret) > 4 {
		return secret[:2] + "..." + secret[len(secret)-2:]
	} else if len(secret) > 2 {
		return secret[:1] + "..." + secret[len(secret)-1:]
	}
	return secret
}

// MaskSensitiveQuery masks sensitive query parameters, e.g. token or password, within the raw query string.
func MaskSensitiveQuery(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, "&")
	changed := false
	for i, part := range parts {
		if part == "" {
			continue
		}
		keyPart := part
		valuePart := ""
		if idx := strings.Index(part, "="); idx >= 0 {
			keyPart = part[:idx]
			valuePart = part[idx+1:]
		}
		decodedKey, err := url.QueryUnescape(keyPart)
		if err != nil {
			decodedKey = keyPart
		}
		if !shouldMaskQueryParam(decodedKey) {
			continue
		}
		decodedValue, err := url.QueryUnescape(valuePart)
		if err != nil {
			decodedValue = valuePart
		}
		masked := HideSecret(strings.TrimSpace(decodedValue))
		parts[i] = keyPart + "=" + url.QueryEscape(masked)
		changed = true
	}
	if !changed {
		return raw
	}
	return strings.Join(parts, "&")
}

func shouldMaskQueryParam(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	key = strings.TrimSuffix(key, "[]")
	if key == "key" || strings.Contains(key, "api-key") || strings.Contains(key, "api_key") {
		return true
	}
	return strings.Contains(key, "token") || strings.Contains(key, "secret") || strings.Contains(key, "password")
}
