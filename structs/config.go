package structs

import "time"

type Config struct {
	Server   *ServerConfig
	Cors     *CorsConfig
	Database *DatabaseConfig
	Auth     *AuthConfig
	Storage  *StorageConfig
	Admin    *AdminConfig
}

type ServerConfig struct {
	AppName        string        // Ravvio
	Environment    string        // development, production
	Port           string        // :8080
	ReadTimeout    time.Duration // in seconds
	WriteTimeout   time.Duration // in seconds
	IdleTimeout    time.Duration // in seconds
	MaxHeaderBytes int           // in bytes
}

type CorsConfig struct {
	AllowOrigins     []string
	AllowMethods     []string
	AllowHeaders     []string
	ExposedHeaders   []string
	AllowCredentials bool
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxConns     int
	MinConns     int
	MaxLifetime  time.Duration // in seconds
	MaxIdleTime  time.Duration // in seconds
	ReadTimeout  time.Duration // in seconds
	WriteTimeout time.Duration // in seconds
}

type AuthConfig struct {
	AccessTokenSecret string
	AccessTokenExpiry time.Duration
	AdminEmail        string
	AdminPasswordHash string // argon2id hash of the operator password
}

// StorageConfig selects and configures the blob store backend for
// uploaded product images.
type StorageConfig struct {
	Backend   string // "disk" or "jetstream"
	DiskRoot  string // root directory for the disk backend
	NatsURL   string
	Bucket    string
	PublicURL string // prefix prepended to blob refs in responses
}

// AdminConfig holds the admin console branding. It is populated once at
// startup from the environment; nothing mutates it afterwards.
type AdminConfig struct {
	SiteHeader string
	SiteTitle  string
	IndexTitle string
}
