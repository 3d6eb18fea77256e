package handlers

import (
	"net/url"
	"strings"
	"unicode"
)

// SafeReturnPath returns candidate when it is a local URL and DefaultAdminPath otherwise.
// Application-relative paths ("~/x") are returned as "/x".
func SafeReturnPath(candidate string) string {
	if strings.TrimSpace(candidate) == "" {
		return DefaultAdminPath
	}
	local, ok := localPath(candidate)
	if !ok {
		return DefaultAdminPath
	}
	return local
}

func localPath(candidate string) (string, bool) {
	path := candidate
	if strings.HasPrefix(path, "~/") {
		path = path[1:]
	}
	if !strings.HasPrefix(path, "/") {
		return "", false
	}
	// "//host" is a network path. Browsers read "\" as "/", and http.Redirect
	// cleans dot segments, so "/./\host" would become "/\host".
	if strings.HasPrefix(path, "//") || strings.ContainsRune(path, '\\') {
		return "", false
	}
	if strings.ContainsFunc(path, unicode.IsControl) {
		return "", false
	}
	u, err := url.Parse(path)
	if err != nil || u.Scheme != "" || u.Host != "" || u.User != nil {
		return "", false
	}
	return path, true
}
