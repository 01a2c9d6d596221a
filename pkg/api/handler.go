package api

import (
	"github.com/gin-gonic/gin"
	"github.com/hostbit/hostbit/config/configkey"
	"github.com/hostbit/hostbit/pkg/coupons"
	"github.com/hostbit/hostbit/pkg/entitlement"
	"github.com/hostbit/hostbit/pkg/identity"
	"github.com/hostbit/hostbit/pkg/kvstore"
	"github.com/hostbit/hostbit/pkg/panel"
	"github.com/hostbit/hostbit/pkg/provision"
	"github.com/hostbit/hostbit/pkg/theme"
	"github.com/spf13/viper"
)

// API carries the engine components behind the HTTP surface. Every endpoint
// answers with a {status: ...} body; errors are inline status strings, they
// never escape the handler.
type API struct {
	store     kvstore.Store
	svc       *entitlement.Service
	ledger    *coupons.Ledger
	linker    *identity.Linker
	validator *provision.Validator
	panel     panel.Client
	provider  *identity.Provider
	theme     theme.Theme
}

func NewAPI(
	store kvstore.Store,
	svc *entitlement.Service,
	ledger *coupons.Ledger,
	linker *identity.Linker,
	validator *provision.Validator,
	panelClient panel.Client,
	provider *identity.Provider,
	themeConfig theme.Theme,
) *API {
	return &API{
		store:     store,
		svc:       svc,
		ledger:    ledger,
		linker:    linker,
		validator: validator,
		panel:     panelClient,
		provider:  provider,
		theme:     themeConfig,
	}
}

func (a *API) handshake(c *gin.Context) {
	c.JSON(200, gin.H{"status": true})
}

func status(c *gin.Context, reason string) {
	c.JSON(200, gin.H{"status": reason})
}

func success(c *gin.Context, extra gin.H) {
	body := gin.H{"status": "success"}
	for key, value := range extra {
		body[key] = value
	}
	c.JSON(200, body)
}

func coinsEnabled() bool {
	return viper.GetBool(configkey.CoinsEnabled)
}
