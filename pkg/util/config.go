package util

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ReadConfig. read ./data/config.* into viper, env variables override the file.
// a missing config file is not an error, defaults set by the callers apply.
func ReadConfig() error {
	viper.SetConfigName("config")
	viper.AddConfigPath("./data/")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("fatal error config file: %w", err)
	}
	return nil
}
