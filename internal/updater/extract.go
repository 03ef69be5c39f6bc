package updater

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Extractor finds the nightly commit fragment in a version announcement such
// as "NVIM v0.8.0-dev-1190-g8952def50".
type Extractor struct {
	re *regexp.Regexp
}

// NewExtractor compiles the announcement pattern for product.
// The product name is matched literally.
func NewExtractor(product string) (*Extractor, error) {
	if strings.TrimSpace(product) == "" {
		return nil, fmt.Errorf("product name is empty")
	}
	re, err := regexp.Compile(regexp.QuoteMeta(product) + ` v(?P<release>.*)-[a-z](?P<commit>[[:alnum:]]{9})`)
	if err != nil {
		return nil, fmt.Errorf("compiling version pattern: %w", err)
	}
	return &Extractor{re: re}, nil
}

// Extract returns the 9-character identifier of the first announcement in
// text. The second result is false when text contains no announcement.
func (e *Extractor) Extract(text string) (string, bool) {
	m := e.re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	return m[e.re.SubexpIndex("commit")], true
}

// Release returns the semantic version in front of the commit fragment,
// e.g. 0.8.0-dev for "NVIM v0.8.0-dev-1190-g8952def50". It is only used for
// display; identifiers are compared with Extract.
func (e *Extractor) Release(text string) (*semver.Version, bool) {
	m := e.re.FindStringSubmatch(text)
	if m == nil {
		return nil, false
	}
	raw := m[e.re.SubexpIndex("release")]
	// Drop the trailing commit count ("-1190").
	for {
		i := strings.LastIndex(raw, "-")
		if i < 0 || !isDigits(raw[i+1:]) {
			break
		}
		raw = raw[:i]
	}
	v, err := semver.StrictNewVersion(raw)
	if err != nil {
		return nil, false
	}
	return v, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
