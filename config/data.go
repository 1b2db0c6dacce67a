package config

import (
	"time"

	"github.com/spf13/viper"
)

// Data represents the data configuration
type Data struct {
	MongoDB *MongoDB
	Redis   *Redis
}

// MongoDB mongodb config struct
type MongoDB struct {
	URI            string
	Database       string
	ConnectTimeout time.Duration
}

// Redis redis config struct, an empty Addr disables caching
type Redis struct {
	Addr         string
	Username     string
	Password     string
	DB           int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	DialTimeout  time.Duration
	CacheTTL     time.Duration
}

func getDataConfig(v *viper.Viper) *Data {
	return &Data{
		MongoDB: &MongoDB{
			URI:            v.GetString("data.mongodb.uri"),
			Database:       getStringOrDefault(v, "data.mongodb.database", "taskmanager"),
			ConnectTimeout: getDurationOrDefault(v, "data.mongodb.connect_timeout", 10*time.Second),
		},
		Redis: &Redis{
			Addr:         v.GetString("data.redis.addr"),
			Username:     v.GetString("data.redis.username"),
			Password:     v.GetString("data.redis.password"),
			DB:           v.GetInt("data.redis.db"),
			ReadTimeout:  getDurationOrDefault(v, "data.redis.read_timeout", 3*time.Second),
			WriteTimeout: getDurationOrDefault(v, "data.redis.write_timeout", 3*time.Second),
			DialTimeout:  getDurationOrDefault(v, "data.redis.dial_timeout", 5*time.Second),
			CacheTTL:     getDurationOrDefault(v, "data.redis.cache_ttl", 5*time.Minute),
		},
	}
}
