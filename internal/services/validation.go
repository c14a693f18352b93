package services

import (
	"errors"
	"net/url"
	"strings"

	"github.com/pedrohqs/atrio/internal/models"
)

var (
	ErrEmptyVisibilityRoles  = errors.New("empty visibility roles")
	ErrUnknownVisibilityRole = errors.New("unknown visibility role")
	ErrInvalidExternalURL    = errors.New("invalid external url")
)

// ValidateVisibilityRoles rejects rules that would be stored but visible to
// nobody. An empty allow-list is an explicit denial per the resolver, so a
// creation request carrying one is almost certainly a mistake.
func ValidateVisibilityRoles(roles []string) error {
	if len(roles) == 0 {
		return ErrEmptyVisibilityRoles
	}
	for _, role := range roles {
		if !models.IsKnownRole(role) {
			return ErrUnknownVisibilityRole
		}
	}
	return nil
}

// ValidateExternalURL checks asset references before they reach storage.
// Assets live on external object storage; the portal only keeps the URL.
func ValidateExternalURL(raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ErrInvalidExternalURL
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ErrInvalidExternalURL
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return ErrInvalidExternalURL
	}
	if parsed.Host == "" {
		return ErrInvalidExternalURL
	}
	return nil
}

func NormalizeRegions(regions []string) []string {
	normalized := make([]string, 0, len(regions))
	for _, region := range regions {
		trimmed := strings.ToLower(strings.TrimSpace(region))
		if trimmed == "" {
			continue
		}
		normalized = append(normalized, trimmed)
	}
	return normalized
}
