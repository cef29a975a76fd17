package postgres

import "time"

// Config defines the PostgreSQL connection settings.
type Config struct {
	Connection        Connection        `yaml:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`
}

// Connection holds the DSN parts.
type Connection struct {
	Host     string `yaml:"host" envconfig:"POSTGRES_HOST"`
	Port     string `yaml:"port" envconfig:"POSTGRES_PORT"`
	User     string `yaml:"user" envconfig:"POSTGRES_USER"`
	Password string `yaml:"password" envconfig:"POSTGRES_PASSWORD"`
	DbName   string `yaml:"db_name" envconfig:"POSTGRES_DB"`
	SSLMode  string `yaml:"ssl_mode" envconfig:"POSTGRES_SSL_MODE"`
}

// ConnectionDetails tunes the connection pool and health monitoring.
// Zero values fall back to the package defaults.
type ConnectionDetails struct {
	// MaxOpenConns. Default: 50
	MaxOpenConns int `yaml:"max_open_conns" envconfig:"POSTGRES_MAX_OPEN_CONNS"`
	// MaxIdleConns. Default: 25
	MaxIdleConns int `yaml:"max_idle_conns" envconfig:"POSTGRES_MAX_IDLE_CONNS"`
	// ConnMaxLifetime. Default: 1m
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"POSTGRES_CONN_MAX_LIFETIME"`
	// HealthCheckInterval is the period of MonitorConnection. Default: 10s
	HealthCheckInterval time.Duration `yaml:"health_check_interval" envconfig:"POSTGRES_HEALTH_CHECK_INTERVAL"`
}

func (c Config) dsn() string {
	sslMode := c.Connection.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return "host=" + c.Connection.Host +
		" port=" + c.Connection.Port +
		" user=" + c.Connection.User +
		" password=" + c.Connection.Password +
		" dbname=" + c.Connection.DbName +
		" sslmode=" + sslMode
}

func (d ConnectionDetails) healthCheckInterval() time.Duration {
	if d.HealthCheckInterval <= 0 {
		return 10 * time.Second
	}
	return d.HealthCheckInterval
}
