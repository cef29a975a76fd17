package mariadb

import "time"

// Config defines the MariaDB/MySQL connection settings.
type Config struct {
	Connection        Connection        `yaml:"connection"`
	ConnectionDetails ConnectionDetails `yaml:"connection_details"`
}

// Connection holds the DSN parts. Optional fields are appended to the DSN
// only when set.
type Connection struct {
	Host     string `yaml:"host" envconfig:"MARIADB_HOST"`
	Port     string `yaml:"port" envconfig:"MARIADB_PORT"`
	User     string `yaml:"user" envconfig:"MARIADB_USER"`
	Password string `yaml:"password" envconfig:"MARIADB_PASSWORD"`
	DbName   string `yaml:"db_name" envconfig:"MARIADB_DB"`

	// Charset. Default: utf8mb4
	Charset   string `yaml:"charset" envconfig:"MARIADB_CHARSET"`
	ParseTime bool   `yaml:"parse_time" envconfig:"MARIADB_PARSE_TIME"`
	// Loc. Default: Local
	Loc string `yaml:"loc" envconfig:"MARIADB_LOC"`

	TLS          string `yaml:"tls" envconfig:"MARIADB_TLS"`
	Timeout      string `yaml:"timeout" envconfig:"MARIADB_TIMEOUT"`
	ReadTimeout  string `yaml:"read_timeout" envconfig:"MARIADB_READ_TIMEOUT"`
	WriteTimeout string `yaml:"write_timeout" envconfig:"MARIADB_WRITE_TIMEOUT"`
}

// ConnectionDetails tunes the connection pool.
type ConnectionDetails struct {
	MaxOpenConns    int           `yaml:"max_open_conns" envconfig:"MARIADB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" envconfig:"MARIADB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" envconfig:"MARIADB_CONN_MAX_LIFETIME"`
}
