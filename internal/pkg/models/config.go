package models

// Config represents application configuration
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NSQ      NSQConfig
	JWT      JWTConfig
	Logger   LoggerConfig
	Location LocationConfig
	Stream   StreamConfig
	Match    MatchConfig
}

// AppConfig contains application-specific configuration
type AppConfig struct {
	Name        string
	Environment string
	Debug       bool
	Version     string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	Database  string
	SSLMode   string
	MaxConns  int
	IdleConns int
}

// RedisConfig contains Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
	PoolSize int
}

// NSQConfig contains NSQ daemon and lookupd addresses
type NSQConfig struct {
	Address          string
	LookupdAddresses []string
	Channel          string
}

// JWTConfig contains JWT authentication configuration
type JWTConfig struct {
	Secret string
	Issuer string
}

// LoggerConfig contains structured logging configuration
type LoggerConfig struct {
	Level    string
	FilePath string
}

// LocationConfig contains location registry tuning values
type LocationConfig struct {
	StaleAfterSeconds int // positions older than this are evicted each cycle
}

// StreamConfig contains fan-out batching configuration
type StreamConfig struct {
	PositionIntervalMs     int
	NotificationIntervalMs int
}

// MatchConfig contains matching engine tuning values
type MatchConfig struct {
	MinResults         int
	MaxResults         int
	WidenFactor        float64
	MaxWidenRetries    int
	MaxTimeDiffMinutes int
}
