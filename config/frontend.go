package config

import "github.com/spf13/viper"

// Frontend frontend config struct
type Frontend struct {
	ClientURL string
}

// getFrontendConfig returns frontend config
func getFrontendConfig(v *viper.Viper) *Frontend {
	return &Frontend{
		ClientURL: getStringOrDefault(v, "frontend.client_url", "*"),
	}
}
