package blogservice

import (
	"regexp"
	"strings"
)

var scriptTagRX = regexp.MustCompile(`(?is)<\s*script[^>]*>(.*?)<\s*/\s*script\s*>`)

// sanitize strips script elements from user supplied text.
func sanitize(s string) string {
	return strings.TrimSpace(scriptTagRX.ReplaceAllString(s, ""))
}
