package beemo

import (
	"github.com/gojek/heimdall/v7"
)

// Config holds the portal connection parameters.
type Config struct {
	// URL is the portal base URL without a trailing slash.
	URL      string
	Username string
	Password string
}

// BeemoClient talks to the backup-management portal. The session is
// cookie-based: Login must be called once before any export fetch, and the
// cookie jar inside the HTTP client carries the session from then on. The
// portal offers no token refresh, so an expired session surfaces as a failed
// fetch.
type BeemoClient struct {
	config     *Config
	httpClient heimdall.Doer
	loginURL   string
}
