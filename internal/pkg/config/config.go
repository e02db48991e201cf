package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"

	"github.com/tawseel/dispatch/internal/pkg/models"
)

// InitConfig loads configuration from an optional yaml file in ./config and
// from environment variables (DISPATCH_SERVER_PORT and friends). Environment
// variables win over file values.
func InitConfig() *models.Config {
	viper.SetConfigName("dispatch")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.SetEnvPrefix("dispatch")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("error reading config file: %v", err)
		}
	}

	return &models.Config{
		App: models.AppConfig{
			Name:        viper.GetString("app.name"),
			Environment: viper.GetString("app.environment"),
			Debug:       viper.GetBool("app.debug"),
			Version:     viper.GetString("app.version"),
		},
		Server: models.ServerConfig{
			Host:            viper.GetString("server.host"),
			Port:            viper.GetInt("server.port"),
			ReadTimeout:     viper.GetInt("server.read_timeout"),
			WriteTimeout:    viper.GetInt("server.write_timeout"),
			ShutdownTimeout: viper.GetInt("server.shutdown_timeout"),
		},
		Database: models.DatabaseConfig{
			Host:      viper.GetString("database.host"),
			Port:      viper.GetInt("database.port"),
			Username:  viper.GetString("database.username"),
			Password:  viper.GetString("database.password"),
			Database:  viper.GetString("database.database"),
			SSLMode:   viper.GetString("database.ssl_mode"),
			MaxConns:  viper.GetInt("database.max_conns"),
			IdleConns: viper.GetInt("database.idle_conns"),
		},
		Redis: models.RedisConfig{
			Host:     viper.GetString("redis.host"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
			PoolSize: viper.GetInt("redis.pool_size"),
		},
		NSQ: models.NSQConfig{
			Address:          viper.GetString("nsq.address"),
			LookupdAddresses: viper.GetStringSlice("nsq.lookupd_addresses"),
			Channel:          viper.GetString("nsq.channel"),
		},
		JWT: models.JWTConfig{
			Secret: viper.GetString("jwt.secret"),
			Issuer: viper.GetString("jwt.issuer"),
		},
		Logger: models.LoggerConfig{
			Level:    viper.GetString("logger.level"),
			FilePath: viper.GetString("logger.file_path"),
		},
		Location: models.LocationConfig{
			StaleAfterSeconds: viper.GetInt("location.stale_after_seconds"),
		},
		Stream: models.StreamConfig{
			PositionIntervalMs:     viper.GetInt("stream.position_interval_ms"),
			NotificationIntervalMs: viper.GetInt("stream.notification_interval_ms"),
		},
		Match: models.MatchConfig{
			MinResults:         viper.GetInt("match.min_results"),
			MaxResults:         viper.GetInt("match.max_results"),
			WidenFactor:        viper.GetFloat64("match.widen_factor"),
			MaxWidenRetries:    viper.GetInt("match.max_widen_retries"),
			MaxTimeDiffMinutes: viper.GetInt("match.max_time_diff_minutes"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("app.name", "dispatch")
	viper.SetDefault("app.environment", "local")
	viper.SetDefault("app.debug", true)
	viper.SetDefault("app.version", "development")

	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 9990)
	viper.SetDefault("server.read_timeout", 10)
	viper.SetDefault("server.write_timeout", 10)
	viper.SetDefault("server.shutdown_timeout", 30)

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.username", "dispatch")
	viper.SetDefault("database.database", "dispatch")
	viper.SetDefault("database.ssl_mode", "disable")
	viper.SetDefault("database.max_conns", 10)
	viper.SetDefault("database.idle_conns", 2)

	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.pool_size", 10)

	viper.SetDefault("nsq.address", "localhost:4150")
	viper.SetDefault("nsq.channel", "dispatch")

	viper.SetDefault("jwt.issuer", "dispatch")

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.file_path", "logs/dispatch.log")

	viper.SetDefault("location.stale_after_seconds", 15)

	viper.SetDefault("stream.position_interval_ms", 1000)
	viper.SetDefault("stream.notification_interval_ms", 1000)

	viper.SetDefault("match.min_results", 3)
	viper.SetDefault("match.max_results", 20)
	viper.SetDefault("match.widen_factor", 2.0)
	viper.SetDefault("match.max_widen_retries", 2)
	viper.SetDefault("match.max_time_diff_minutes", 90)
}
