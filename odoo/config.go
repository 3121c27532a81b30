package odoo

import (
	"os"
	"strings"

	"github.com/mdzio/go-odoo/xmlrpc"
	"golang.org/x/time/rate"
)

// Config holds the connection settings of a Session. URL, Database, Username
// and Password are required.
type Config struct {
	// base URL of the server, e.g. https://example.odoo.com
	URL      string
	Database string
	Username string
	Password string

	// HTTPClient sends the requests. If nil, http.DefaultClient is used.
	HTTPClient xmlrpc.Doer

	// Limiter optionally limits the rate of calls to the server (shared by
	// both endpoints).
	Limiter *rate.Limiter
}

// ConfigError reports a missing connection setting.
type ConfigError struct {
	Field string
}

func (e *ConfigError) Error() string {
	return "Missing configuration: " + e.Field
}

// Validate checks that the required settings are not empty. The first
// missing setting is reported in the order url, database, username,
// password.
func (c *Config) Validate() error {
	required := []struct {
		field, value string
	}{
		{"url", c.URL},
		{"database", c.Database},
		{"username", c.Username},
		{"password", c.Password},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return &ConfigError{Field: r.field}
		}
	}
	return nil
}

// ConfigFromEnv reads the connection settings from the environment variables
// <prefix>URL, <prefix>DB, <prefix>USERNAME and <prefix>PASSWORD. The result
// is not validated.
func ConfigFromEnv(prefix string) Config {
	return Config{
		URL:      os.Getenv(prefix + "URL"),
		Database: os.Getenv(prefix + "DB"),
		Username: os.Getenv(prefix + "USERNAME"),
		Password: os.Getenv(prefix + "PASSWORD"),
	}
}
