package configs

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type EnvConfig struct {
	ApplicationName string
	EnvFile         string
	EnvFileLoaded   bool
}

var Env *EnvConfig

func init() {
	envFile := getEnvOrDefault("ENV_FILE_PATH", ".env")
	// variables already present in the environment win over the file
	loaded := godotenv.Load(envFile) == nil

	viper.AutomaticEnv()

	Env = &EnvConfig{
		ApplicationName: viper.GetString("APPLICATION_NAME"),
		EnvFile:         envFile,
		EnvFileLoaded:   loaded,
	}
}

// APIKey returns the OpenWeatherMap key from OPENWEATHER_API_KEY, falling back to app.weather.api-key.
// It is read on every call.
func APIKey() string {
	if key := viper.GetString("OPENWEATHER_API_KEY"); key != "" {
		return key
	}
	return viper.GetString("app.weather.api-key")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}
