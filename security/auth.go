package security

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/shaj13/go-guardian/v2/auth"
	"github.com/shaj13/go-guardian/v2/auth/strategies/token"
	"github.com/shaj13/libcache"
	_ "github.com/shaj13/libcache/lru"
)

const ApiKeyHeader = "api-key"

var strategy auth.Strategy
var authEnabled bool

// SetupDashboardAuth enables API-key protection for the dashboard API when a
// key is configured. With an empty key the dashboard stays open, which is the
// expected mode for a local single-user setup.
func SetupDashboardAuth(dashboardApiKey string) {
	if dashboardApiKey == "" {
		authEnabled = false
		strategy = nil
		return
	}

	cache := libcache.LRU.New(100)
	cache.SetTTL(time.Minute * 60)

	validate := func(ctx context.Context, r *http.Request, tokenValue string) (auth.Info, time.Time, error) {
		if subtle.ConstantTimeCompare([]byte(tokenValue), []byte(dashboardApiKey)) == 1 {
			return auth.NewDefaultUser("dashboard", "dashboard", nil, nil), time.Now().Add(time.Hour), nil
		}
		return nil, time.Time{}, fmt.Errorf("invalid dashboard api key")
	}

	strategy = token.New(validate, cache, token.SetParser(token.XHeaderParser(ApiKeyHeader)))
	authEnabled = true
}

func Enabled() bool {
	return authEnabled
}

func authenticate(r *http.Request) (auth.Info, error) {
	return strategy.Authenticate(r.Context(), r)
}
