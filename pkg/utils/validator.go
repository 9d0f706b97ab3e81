package utils

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

func ValidatePort(port int) error {
	if port < 1 || port > 65535 {
		return fmt.Errorf("port must be within 1-65535: %d", port)
	}
	return nil
}

// ValidateOptionalPort accepts a blank port or a numeric one in range.
func ValidateOptionalPort(port string) error {
	port = strings.TrimSpace(port)
	if port == "" {
		return nil
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return fmt.Errorf("port is not a number: %q", port)
	}
	return ValidatePort(p)
}

// ValidateClusterName rejects names that cannot be used as a directory name.
func ValidateClusterName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("cluster name must not be empty")
	}
	if name != strings.TrimSpace(name) {
		return fmt.Errorf("cluster name must not start or end with spaces: %q", name)
	}
	if len(name) > 255 {
		return fmt.Errorf("cluster name must not exceed 255 characters")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\:*?"<>|`) {
		return fmt.Errorf("cluster name contains invalid characters: %q", name)
	}
	for _, r := range name {
		if r < 0x20 {
			return fmt.Errorf("cluster name contains control characters: %q", name)
		}
	}
	return nil
}

// SanitizeFileName keeps only the base name of an uploaded file.
func SanitizeFileName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = filepath.Base(name)
	if name == "." || name == ".." || name == "/" {
		return ""
	}
	return strings.TrimSpace(name)
}
