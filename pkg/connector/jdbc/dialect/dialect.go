// Package dialect resolves JDBC connection URLs to database dialects.
//
// A dialect recognizes a URL family (jdbc:mysql:, jdbc:postgresql:, ...) and
// translates it into the DSN its Go driver accepts. Dialects register
// themselves from init() in their own packages:
//
//	func init() {
//	    dialect.Register(New())
//	}
//
// and table factories are built around one dialect value.
package dialect

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/ajitpratap0/nebula-jdbc/pkg/nebulaerrors"
)

// Prefix is the scheme prefix every JDBC URL starts with.
const Prefix = "jdbc:"

// Dialect is the capability a table factory needs from a database variant.
type Dialect interface {
	// Identifier is the dialect name, e.g. "mysql".
	Identifier() string
	// CanHandle reports whether url belongs to this dialect's URL family.
	CanHandle(url string) bool
	// DriverName is the database/sql driver name the DSN is meant for.
	DriverName() string
	// DSN translates a JDBC URL into a driver DSN.
	DSN(url string) (string, error)
}

var (
	userInfoPassword = regexp.MustCompile(`(//[^/@:;?]*:)[^@/]*@`)
	paramPassword    = regexp.MustCompile(`(?i)([?&;]password=)[^&;]*`)
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Dialect)
)

// Register adds d to the registry, replacing any dialect with the same identifier.
func Register(d Dialect) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[d.Identifier()] = d
}

// Get retrieves a dialect by identifier.
func Get(identifier string) (Dialect, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	d, ok := registry[identifier]
	return d, ok
}

// List returns all registered dialect identifiers (sorted).
func List() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the first registered dialect, in identifier order, that can
// handle jdbcURL.
func Resolve(jdbcURL string) (Dialect, error) {
	for _, name := range List() {
		d, ok := Get(name)
		if ok && d.CanHandle(jdbcURL) {
			return d, nil
		}
	}
	return nil, Unresolved(jdbcURL, nil)
}

// Unresolved builds the error reported when no dialect can handle jdbcURL.
// cause may be nil. Passwords in the URL are redacted.
func Unresolved(jdbcURL string, cause error) *nebulaerrors.Error {
	shown := Redact(jdbcURL)
	var err *nebulaerrors.Error
	if cause != nil {
		err = nebulaerrors.Wrap(cause, nebulaerrors.ErrorTypeUnresolvedDialect, "cannot handle such jdbc url: "+shown)
	} else {
		err = nebulaerrors.New(nebulaerrors.ErrorTypeUnresolvedDialect, "cannot handle such jdbc url: "+shown)
	}
	return err.WithDetail("url", shown).WithDetail("available", List())
}

// Redact masks passwords carried in jdbcURL, either as user info
// (//user:secret@host) or as a password query parameter or property.
func Redact(jdbcURL string) string {
	out := userInfoPassword.ReplaceAllString(jdbcURL, "${1}***@")
	return paramPassword.ReplaceAllString(out, "${1}***")
}

// Check reports whether d handles jdbcURL. Only the subprotocol is examined;
// urls the driver translation does not understand still pass.
func Check(d Dialect, jdbcURL string) error {
	if d == nil || !d.CanHandle(jdbcURL) {
		return Unresolved(jdbcURL, nil)
	}
	return nil
}

// Translate checks jdbcURL against d and converts it to a driver DSN.
func Translate(d Dialect, jdbcURL string) (string, error) {
	if err := Check(d, jdbcURL); err != nil {
		return "", err
	}
	dsn, err := d.DSN(jdbcURL)
	if err != nil {
		return "", nebulaerrors.Wrap(err, nebulaerrors.ErrorTypeConfig, "cannot translate jdbc url to a driver dsn: "+Redact(jdbcURL)).
			WithDetail("dialect", d.Identifier())
	}
	return dsn, nil
}

// HasSubprotocol reports whether jdbcURL starts with "jdbc:<sub>:", ignoring case.
func HasSubprotocol(jdbcURL, sub string) bool {
	prefix := Prefix + sub + ":"
	return len(jdbcURL) >= len(prefix) && strings.EqualFold(jdbcURL[:len(prefix)], prefix)
}

// ParseURL strips the jdbc: prefix and parses the remainder as a URL with a
// host, e.g. jdbc:mysql://localhost:3306/shop.
func ParseURL(jdbcURL string) (*url.URL, error) {
	if len(jdbcURL) < len(Prefix) || !strings.EqualFold(jdbcURL[:len(Prefix)], Prefix) {
		return nil, fmt.Errorf("url %q does not start with %q", jdbcURL, Prefix)
	}
	u, err := url.Parse(jdbcURL[len(Prefix):])
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, fmt.Errorf("url %q has no host", jdbcURL)
	}
	return u, nil
}

// Database returns the first path segment of u, the database name in most
// JDBC URL families.
func Database(u *url.URL) string {
	return strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)[0]
}

// Credentials returns the user and password embedded in u, looking at the
// user info first and the user/password query parameters second.
func Credentials(u *url.URL) (user, password string) {
	if u.User != nil {
		user = u.User.Username()
		password, _ = u.User.Password()
	}
	q := u.Query()
	if v := q.Get("user"); v != "" {
		user = v
	}
	if v := q.Get("password"); v != "" {
		password = v
	}
	return user, password
}
