package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/hostbit/hostbit/config/configkey"
	"github.com/hostbit/hostbit/pkg/theme"
	"github.com/spf13/viper"
)

// RequireAPICode guards the /api surface with the static bearer token from
// configuration. A missing or wrong token gets the themed 404, not a 401;
// the API surface stays invisible to unauthenticated callers.
func RequireAPICode(t theme.Theme) gin.HandlerFunc {
	return func(c *gin.Context) {
		if viper.GetBool(configkey.APIEnabled) {
			auth := c.GetHeader("Authorization")
			if auth != "" && auth == "Bearer "+viper.GetString(configkey.APICode) {
				c.Next()
				return
			}
		}

		t.NotFound(c)
	}
}
