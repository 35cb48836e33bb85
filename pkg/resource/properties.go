package resource

import (
	"os"
	"regexp"
	"time"

	"github.com/spf13/viper"

	"weather-widget/pkg/log"
)

var properties map[string]any
var envPattern = regexp.MustCompile(`^\$\{([^:}]+)(?::([^}]*))?}$`)

// init loads application properties from YAML
func init() {
	var value, ok = os.LookupEnv("PROPERTIES_FILE_PATH")
	if !ok {
		value = "configs/application.yml"
	}
	if _, err := os.Stat(value); err != nil && !ok {
		log.Warnf("Properties file %s not found, using defaults", value)
		return
	}
	if err := Init(value); err != nil {
		log.Fatalf("Fail to read properties: %v", err)
	}
}

// Init reads the YAML file at filepath into viper, resolving ${ENV:default} placeholders.
func Init(filepath string) error {
	viper.SetConfigFile(filepath)
	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return err
	}

	if properties == nil {
		properties = make(map[string]any)
	}
	parsePropertiesMap("", viper.AllSettings(), properties)

	for key, value := range properties {
		viper.Set(key, value)
	}
	return nil
}

// parsePropertiesMap reads recursively the YAML file
func parsePropertiesMap(prefix string, data map[string]any, result map[string]any) {
	for key, value := range data {
		fullKey := key
		if prefix != "" {
			fullKey = prefix + "." + key
		}

		switch v := value.(type) {
		case string:
			result[fullKey] = resolveEnvVariable(v)
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64, bool:
			result[fullKey] = v
		case map[string]interface{}:
			parsePropertiesMap(fullKey, v, result)
		default:
			log.Warnf("Ignoring property '%s' with unsupported type", fullKey)
		}
	}
}

// resolveEnvVariable resolves a ${NAME:default} value against the environment.
// Values without the pattern are returned unchanged.
func resolveEnvVariable(value string) string {
	matches := envPattern.FindStringSubmatch(value)
	if len(matches) == 0 {
		return value
	}

	if envValue, exists := os.LookupEnv(matches[1]); exists {
		return envValue
	}
	return matches[2]
}

func GetString(key string) string {
	return viper.GetString(key)
}

// GetStringOrDefault returns the property or defaultValue when it is empty.
func GetStringOrDefault(key, defaultValue string) string {
	if value := viper.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func GetDuration(key string) time.Duration {
	return viper.GetDuration(key)
}

// GetDurationOrDefault returns the property or defaultValue when it is unset or not positive.
func GetDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := viper.GetDuration(key); value > 0 {
		return value
	}
	return defaultValue
}

func GetInt(key string) int {
	return viper.GetInt(key)
}

func GetIntOrDefault(key string, defaultValue int) int {
	if !viper.IsSet(key) || viper.GetString(key) == "" {
		return defaultValue
	}
	return viper.GetInt(key)
}
