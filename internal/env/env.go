// Package env resolves database connection URLs from externally supplied credentials.
package env

import (
	"errors"
	"net/url"
)

// URLFunc returns a complete connection URL for the named database.
type URLFunc func(database string) (string, error)

// Credentials holds the pieces needed to reach the remote property database.
type Credentials struct {
	User     string
	Password string
	Host     string
}

// DBURL builds a mysql:// connection URL for the given database name.
func (c Credentials) DBURL(database string) (string, error) {
	if c.Host == "" {
		return "", errors.New("database host not configured")
	}
	if database == "" {
		return "", errors.New("database name is empty")
	}
	u := url.URL{
		Scheme: "mysql",
		Host:   c.Host,
		Path:   "/" + database,
	}
	if c.User != "" {
		if c.Password != "" {
			u.User = url.UserPassword(c.User, c.Password)
		} else {
			u.User = url.User(c.User)
		}
	}
	return u.String(), nil
}

// Static returns a URLFunc that ignores the database name and always yields raw.
// Useful when a full URL is configured directly.
func Static(raw string) URLFunc {
	return func(string) (string, error) {
		if raw == "" {
			return "", errors.New("database url not configured")
		}
		return raw, nil
	}
}
