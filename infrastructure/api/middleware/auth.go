package middleware

import (
	"net/http"
)

// APIKeyHeader carries the key checked by WriteProtect.
const APIKeyHeader = "X-API-KEY"

// AuthConfig holds the accepted API keys.
type AuthConfig struct {
	keys map[string]struct{}
}

// NewAuthConfigWithKeys creates an AuthConfig. Empty keys are ignored; with
// no keys left, authentication is disabled.
func NewAuthConfigWithKeys(apiKeys []string) AuthConfig {
	keys := make(map[string]struct{}, len(apiKeys))
	for _, k := range apiKeys {
		if k != "" {
			keys[k] = struct{}{}
		}
	}
	return AuthConfig{keys: keys}
}

// Enabled reports whether any key is configured.
func (c AuthConfig) Enabled() bool { return len(c.keys) > 0 }

func (c AuthConfig) accepts(key string) bool {
	_, ok := c.keys[key]
	return ok
}

// WriteProtect requires a valid API key on mutating methods. GET, HEAD and
// OPTIONS always pass.
func WriteProtect(config AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !config.Enabled() || readOnly(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(APIKeyHeader)
			switch {
			case key == "":
				writeUnauthorized(w, r, APIKeyHeader+" header is required")
			case !config.accepts(key):
				writeUnauthorized(w, r, "invalid API key")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// WriteProtectAuth builds WriteProtect from a list of keys.
func WriteProtectAuth(apiKeys []string) func(http.Handler) http.Handler {
	return WriteProtect(NewAuthConfigWithKeys(apiKeys))
}

func readOnly(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func writeUnauthorized(w http.ResponseWriter, r *http.Request, detail string) {
	writeErrorDocument(w, r, http.StatusUnauthorized, "Unauthorized", detail)
}
