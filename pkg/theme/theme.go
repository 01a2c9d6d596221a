package theme

import (
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/hostbit/hostbit/config/configkey"
	"github.com/spf13/viper"
)

// Theme is the rendering collaborator surface: where static assets live and
// where the OAuth flow sends the browser on success, logout and failure.
type Theme struct {
	Directory        string
	RedirectCallback string
	RedirectLogout   string
	RedirectFailed   string
}

func FromConfig() Theme {
	return Theme{
		Directory:        viper.GetString(configkey.ThemeDirectory),
		RedirectCallback: viper.GetString(configkey.ThemeRedirectCallback),
		RedirectLogout:   viper.GetString(configkey.ThemeRedirectLogout),
		RedirectFailed:   viper.GetString(configkey.ThemeRedirectFailed),
	}
}

// NotFound serves the theme's 404 page when one exists, falling back to a
// plain JSON body. Unauthenticated API access lands here too.
func (t Theme) NotFound(c *gin.Context) {
	page := filepath.Join(t.Directory, "404.html")
	if _, err := os.Stat(page); err == nil {
		c.Status(404)
		c.File(page)
		c.Abort()
		return
	}

	c.AbortWithStatusJSON(404, gin.H{"code": "HOSTBIT: PAGE_NOT_FOUND", "message": "Page not found"})
}
