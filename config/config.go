package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/hostbit/hostbit/config/configkey"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var loadConfigMutex sync.Mutex
var configLoaded bool

var DefaultValues = map[string]interface{}{
	configkey.DebugMode:        true,
	configkey.LogLevel:         "trace",
	configkey.Port:             8080,
	configkey.DatabaseUsername: "manager",
	configkey.DatabaseDatabase: "hostbit",
	configkey.DatabaseHost:     "localhost",
	configkey.DatabasePort:     5432,
	configkey.DatabaseSSLMode:  "disable",
	configkey.DatabaseTimezone: "America/New_York",
	configkey.DatabasePassword: "password",
	configkey.APIEnabled:       false,
	configkey.ProviderURL:      "https://discord.com/api",
	configkey.OAuth2CallbackPath: "/callback",
	configkey.OAuth2Prompt:     true,
	configkey.IPTrustForwarded: false,
	configkey.IPDuplicateCheck: true,
	configkey.AllowNewUsers:    true,
	configkey.AllowServerCreate: true,
	configkey.AllowServerDelete: true,
	configkey.CoinsEnabled:     true,
	configkey.PasswordOnSignup: true,
	configkey.PasswordLength:   16,
	configkey.PackagesDefault:  "default",
	configkey.ThemeDirectory:   "./themes/default",
	configkey.ThemeRedirectCallback: "/",
	configkey.ThemeRedirectLogout:   "/",
	configkey.ThemeRedirectFailed:   "/",
}

func LoadConfig() {
	loadConfigMutex.Lock()
	defer loadConfigMutex.Unlock()
	if !configLoaded {
		configLoaded = true

		explicitConfigFile := os.Getenv("CONFIG_FILE")
		if explicitConfigFile != "" {
			fmt.Printf("CONFIG_FILE: %s\n", explicitConfigFile)
			viper.SetConfigFile(explicitConfigFile)
		} else {
			viper.SetConfigName("config")
			viper.SetConfigType("yaml")
			viper.AddConfigPath("/opt/hostbit") // path to look for the config file in

			otherPath := os.Getenv("CONFIG_FILE_PATH")
			viper.AddConfigPath(otherPath)
		}

		// set defaults first
		for key, val := range DefaultValues {
			viper.SetDefault(key, val)
		}

		viper.SetEnvPrefix("hostbit")
		viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		viper.AutomaticEnv()

		err := viper.ReadInConfig() // Find and read the config file
		if err != nil {             // Handle errors reading the config file
			logrus.Warn("Config file not found, using defaults")
		}
	}
}

func MustGetString(key string) string {
	val := viper.GetString(key)
	if len(val) == 0 {
		panic(errors.New("failed to get " + key))
	}

	return val
}

func MustGetInt32(key string) int32 {
	if viper.IsSet(key) {
		val := viper.GetInt32(key)
		return val
	}
	panic("key not found: " + key)
}
