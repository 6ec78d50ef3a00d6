package config

import "time"

type DBDriver string

const (
	DBDriverOracle   DBDriver = "oracle"
	DBDriverMSSQL    DBDriver = "mssql"
	DBDriverPostgres DBDriver = "postgres"
	DBDriverSQLite   DBDriver = "sqlite"
)

type LogFormat string

const (
	LogFormatJSON    LogFormat = "json"
	LogFormatConsole LogFormat = "console"
)

type DBConfig struct {
	Driver       DBDriver      `yaml:"driver" koanf:"driver" validate:"required,oneof=oracle mssql postgres sqlite"`
	Host         string        `yaml:"host" koanf:"host" validate:"required_unless=Driver sqlite"`
	Port         int           `yaml:"port" koanf:"port" validate:"gte=0,lte=65535"`
	User         string        `yaml:"user" koanf:"user" validate:"required_unless=Driver sqlite"`
	Database     string        `yaml:"database" koanf:"database" validate:"required"`
	QueryTimeout time.Duration `yaml:"queryTimeout" koanf:"queryTimeout" validate:"gte=0"`
	MaxOpenConns int           `yaml:"maxOpenConns" koanf:"maxOpenConns" validate:"gte=0"`
}

// MarshalYAML writes queryTimeout as a duration string such as "15s".
func (c DBConfig) MarshalYAML() (any, error) {
	return struct {
		Driver       DBDriver `yaml:"driver"`
		Host         string   `yaml:"host"`
		Port         int      `yaml:"port"`
		User         string   `yaml:"user"`
		Database     string   `yaml:"database"`
		QueryTimeout string   `yaml:"queryTimeout"`
		MaxOpenConns int      `yaml:"maxOpenConns"`
	}{
		Driver:       c.Driver,
		Host:         c.Host,
		Port:         c.Port,
		User:         c.User,
		Database:     c.Database,
		QueryTimeout: c.QueryTimeout.String(),
		MaxOpenConns: c.MaxOpenConns,
	}, nil
}

type LogConfig struct {
	Level  string    `yaml:"level" koanf:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format LogFormat `yaml:"format" koanf:"format" validate:"omitempty,oneof=json console"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowedOrigins" koanf:"allowedOrigins" validate:"dive,url"`
}

type APIConfig struct {
	RateLimitPerMinute int `yaml:"rateLimitPerMinute" koanf:"rateLimitPerMinute" validate:"gte=0"`
	CacheMaxAge        int `yaml:"cacheMaxAge" koanf:"cacheMaxAge" validate:"gte=0"`
}

type Config struct {
	APIListen string     `yaml:"apiListen" koanf:"apiListen" validate:"required,hostname_port"`
	Debug     bool       `yaml:"debug" koanf:"debug"`
	Log       LogConfig  `yaml:"log" koanf:"log"`
	CORS      CORSConfig `yaml:"cors" koanf:"cors"`
	API       APIConfig  `yaml:"api" koanf:"api"`
	DB        DBConfig   `yaml:"db" koanf:"db"`
}

func DBDriverValues() []DBDriver {
	return []DBDriver{DBDriverOracle, DBDriverMSSQL, DBDriverPostgres, DBDriverSQLite}
}

func DBDriverOptions() []string {
	vals := DBDriverValues()
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		out = append(out, string(v))
	}
	return out
}

// DefaultPort returns the listener port each backend ships with.
func DefaultPort(driver DBDriver) int {
	switch driver {
	case DBDriverOracle:
		return 1521
	case DBDriverMSSQL:
		return 1433
	case DBDriverPostgres:
		return 5432
	default:
		return 0
	}
}

func Default() Config {
	return Config{
		APIListen: "0.0.0.0:5000",
		Debug:     false,
		Log: LogConfig{
			Level:  "info",
			Format: LogFormatJSON,
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		API: APIConfig{
			RateLimitPerMinute: 0,
			CacheMaxAge:        60,
		},
		DB: DBConfig{
			Driver:       DBDriverOracle,
			Host:         "localhost",
			Port:         1521,
			User:         "C##Admin",
			Database:     "XEPDB1",
			QueryTimeout: 15 * time.Second,
			MaxOpenConns: 10,
		},
	}
}
