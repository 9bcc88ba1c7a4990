package config

import (
	"fmt"
	"net/url"
	"time"
)

type DatabaseConfig struct {
	URI            string        `yaml:"uri"`
	Host           string        `yaml:"host"`
	Port           int           `yaml:"port"`
	Database       string        `yaml:"database"`
	Username       string        `yaml:"username"`
	Password       string        `yaml:"password"`
	MaxPoolSize    int           `yaml:"max_pool_size"`
	MinPoolSize    int           `yaml:"min_pool_size"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	SocketTimeout  time.Duration `yaml:"socket_timeout"`
	AuthSource     string        `yaml:"auth_source"`
}

func loadDatabaseConfig() *DatabaseConfig {
	return &DatabaseConfig{
		URI:            getEnv("MONGODB_URI", ""),
		Host:           getEnv("MONGODB_HOST", "localhost"),
		Port:           getEnvAsInt("MONGODB_PORT", 27017),
		Database:       getEnv("MONGODB_DATABASE", "rocketrybox"),
		Username:       getEnv("MONGODB_USERNAME", ""),
		Password:       getEnv("MONGODB_PASSWORD", ""),
		MaxPoolSize:    getEnvAsInt("MONGODB_MAX_POOL_SIZE", 100),
		MinPoolSize:    getEnvAsInt("MONGODB_MIN_POOL_SIZE", 5),
		ConnectTimeout: getEnvAsDuration("MONGODB_CONNECT_TIMEOUT", 10*time.Second),
		SocketTimeout:  getEnvAsDuration("MONGODB_SOCKET_TIMEOUT", 30*time.Second),
		AuthSource:     getEnv("MONGODB_AUTH_SOURCE", "admin"),
	}
}

// ConnectionURI returns MONGODB_URI when set (Atlas deployments pass the
// full SRV string) and otherwise composes one from the host parts.
func (c *DatabaseConfig) ConnectionURI() string {
	if c.URI != "" {
		return c.URI
	}

	userinfo := ""
	if c.Username != "" {
		userinfo = url.UserPassword(c.Username, c.Password).String() + "@"
	}

	uri := fmt.Sprintf("mongodb://%s%s:%d/%s", userinfo, c.Host, c.Port, c.Database)
	if c.Username != "" && c.AuthSource != "" {
		uri += "?authSource=" + c.AuthSource
	}

	return uri
}
