package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

type Config struct {
	LogLevel       string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort       string        `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	StorageBackend string        `yaml:"storage-backend" env:"STORAGE_BACKEND" env-default:"redis"`
	Redis          Redis         `yaml:"redis"`
	JWTSecretKey   string        `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY"`
	TokenTTL       time.Duration `yaml:"token-ttl" env:"TOKEN_TTL" env-default:"168h"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
