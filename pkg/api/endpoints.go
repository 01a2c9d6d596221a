package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/hostbit/hostbit/config/configkey"
	"github.com/hostbit/hostbit/pkg/middleware"
	"github.com/spf13/viper"
)

func (a *API) SetupEndpoints(r *gin.Engine) {
	apiGroup := r.Group("/api", middleware.RequireAPICode(a.theme))
	apiGroup.GET("", a.handshake)

	apiGroup.GET("/users/:id", a.getUser)
	apiGroup.POST("/users", a.createAccount)
	apiGroup.PATCH("/users/:id/plan", a.setPlan)
	apiGroup.PATCH("/users/:id/resources", a.setResources)
	apiGroup.DELETE("/users/:id", a.removeAccount)

	apiGroup.POST("/users/:id/servers", a.createServer)
	apiGroup.DELETE("/users/:id/servers/:serverid", a.deleteServer)

	apiGroup.POST("/setcoins", a.setCoins)
	apiGroup.PATCH("/addcoins", a.addCoins)

	apiGroup.GET("/coupons", a.getCoupons)
	apiGroup.POST("/coupons", a.createCoupon)
	apiGroup.DELETE("/coupons/:code", a.revokeCoupon)
	apiGroup.POST("/coupons/redeem", a.redeemCoupon)

	r.GET("/login", a.login)
	r.GET("/logout", a.logout)

	callbackPath := viper.GetString(configkey.OAuth2CallbackPath)
	if !strings.HasPrefix(callbackPath, "/") {
		callbackPath = "/" + callbackPath
	}
	r.GET(callbackPath, a.callback)
}
