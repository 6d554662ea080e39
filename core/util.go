package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	NowFunc   = time.Now       // mockable
	NewIDFunc = uuid.NewString // mockable
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ContainsFold is a case-insensitive substring match. An empty needle matches everything.
func ContainsFold(s, needle string) bool {
	if needle == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(needle))
}
