package config

import "github.com/spf13/viper"

// Storage storage config struct
type Storage struct {
	Provider   string
	Bucket     string
	PublicPath string
	MaxSize    int64
}

// getStorageConfig get storage config
func getStorageConfig(v *viper.Viper) *Storage {
	return &Storage{
		Provider:   getStringOrDefault(v, "storage.provider", "filesystem"),
		Bucket:     getStringOrDefault(v, "storage.bucket", "uploads"),
		PublicPath: getStringOrDefault(v, "storage.public_path", "/uploads"),
		MaxSize:    int64(getIntOrDefault(v, "storage.max_size", 5<<20)),
	}
}
