package config

import "github.com/hostbit/hostbit/cmd/admin/config/configkey"

var DefaultValues = map[string]interface{}{
	configkey.HostbitAPIURL: "http://localhost:8080",
}
