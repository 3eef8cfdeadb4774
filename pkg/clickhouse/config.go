package clickhouse

import (
	"net"
	"net/url"
	"strconv"
	"time"
)

// Config holds the archive connection. It is embedded in the app config.
type Config struct {
	Enabled         bool          `yaml:"enabled"`
	Host            string        `yaml:"host" default:"localhost"`
	Port            int           `yaml:"port" default:"9000" validate:"min=1,max=65535"`
	Database        string        `yaml:"database" default:"macropulse"`
	User            string        `yaml:"user" default:"default"`
	Password        string        `yaml:"password"`
	UseHTTP         bool          `yaml:"use_http"`
	DialTimeout     time.Duration `yaml:"dial_timeout" default:"5s"`
	ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
	MaxOpenConns    int           `yaml:"max_open_conns" default:"4" validate:"min=1"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" default:"5m"`
}

// DSN renders the clickhouse-go connection string. UseHTTP switches to the HTTP interface.
func (c Config) DSN() string {
	u := url.URL{
		Scheme: "clickhouse",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Database,
	}
	if c.UseHTTP {
		u.Scheme = "http"
	}

	q := url.Values{}
	if c.DialTimeout > 0 {
		q.Set("dial_timeout", c.DialTimeout.String())
	}
	if c.ReadTimeout > 0 {
		q.Set("read_timeout", c.ReadTimeout.String())
	}
	u.RawQuery = q.Encode()
	return u.String()
}
