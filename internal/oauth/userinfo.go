package oauth

import (
	"fmt"
	"strings"
)

// UserInfo is the canonical profile shape extracted from a provider's
// raw attribute payload.
type UserInfo struct {
	ID       string
	Name     string
	Email    string
	ImageURL string
}

// Extractor maps a provider-specific attribute payload to UserInfo
type Extractor func(attributes map[string]any) UserInfo

var extractors = map[string]Extractor{}

// Register adds a profile extractor for a provider. Adding a provider is a
// registration call, not an edit to a dispatch branch.
func Register(provider string, extractor Extractor) {
	extractors[strings.ToLower(provider)] = extractor
}

// Resolve dispatches on the provider name (case-insensitive) to the
// registered extractor.
func Resolve(provider string, attributes map[string]any) (UserInfo, error) {
	extractor, ok := extractors[strings.ToLower(provider)]
	if !ok {
		return UserInfo{}, fmt.Errorf("%s 로그인은 지원하지 않습니다", provider)
	}
	return extractor(attributes), nil
}

// Supported reports whether a provider has a registered extractor
func Supported(provider string) bool {
	_, ok := extractors[strings.ToLower(provider)]
	return ok
}

func stringAttr(attributes map[string]any, key string) string {
	if v, ok := attributes[key].(string); ok {
		return v
	}
	return ""
}
