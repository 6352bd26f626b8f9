// Package postgres provides the PostgreSQL dialect and the postgresql-x table factory.
package postgres

import (
	"net"
	"net/url"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/ajitpratap0/nebula-jdbc/pkg/connector/jdbc/dialect"
)

const (
	// Identifier is the dialect identifier
	Identifier = "postgresql"
	// FactoryIdentifier is the connector name used in table definitions
	FactoryIdentifier = "postgresql-x"

	defaultPort = "5432"
)

// Dialect handles jdbc:postgresql: urls and translates them to pgx connection strings.
type Dialect struct{}

// New creates the PostgreSQL dialect.
func New() *Dialect { return &Dialect{} }

// Identifier implements dialect.Dialect.
func (*Dialect) Identifier() string { return Identifier }

// DriverName implements dialect.Dialect.
func (*Dialect) DriverName() string { return "pgx" }

// CanHandle implements dialect.Dialect.
func (*Dialect) CanHandle(url string) bool {
	return dialect.HasSubprotocol(url, "postgresql")
}

// DSN converts jdbc:postgresql://host[:port]/db[?user=..&password=..&ssl=..&sslmode=..]
// into a postgres:// connection string and checks that pgx can parse it.
func (*Dialect) DSN(jdbcURL string) (string, error) {
	u, err := dialect.ParseURL(jdbcURL)
	if err != nil {
		return "", err
	}

	port := u.Port()
	if port == "" {
		port = defaultPort
	}

	q := u.Query()
	params := url.Values{}
	if mode := q.Get("sslmode"); mode != "" {
		params.Set("sslmode", mode)
	} else if ssl, err := strconv.ParseBool(q.Get("ssl")); err == nil {
		if ssl {
			params.Set("sslmode", "require")
		} else {
			params.Set("sslmode", "disable")
		}
	}
	if v := q.Get("connectTimeout"); v != "" {
		params.Set("connect_timeout", v)
	}
	if v := q.Get("ApplicationName"); v != "" {
		params.Set("application_name", v)
	}

	out := url.URL{
		Scheme:   "postgres",
		Host:     net.JoinHostPort(u.Hostname(), port),
		Path:     "/" + dialect.Database(u),
		RawQuery: params.Encode(),
	}
	if user, password := dialect.Credentials(u); user != "" {
		if password != "" {
			out.User = url.UserPassword(user, password)
		} else {
			out.User = url.User(user)
		}
	}

	dsn := out.String()
	if _, err := pgx.ParseConfig(dsn); err != nil {
		return "", err
	}
	return dsn, nil
}
