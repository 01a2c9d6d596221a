package api

import (
	"fmt"

	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"
	"github.com/hostbit/hostbit/config"
	"github.com/hostbit/hostbit/config/configkey"
	"github.com/hostbit/hostbit/pkg/catalog"
	"github.com/hostbit/hostbit/pkg/coupons"
	"github.com/hostbit/hostbit/pkg/database"
	"github.com/hostbit/hostbit/pkg/entitlement"
	"github.com/hostbit/hostbit/pkg/identity"
	"github.com/hostbit/hostbit/pkg/kvstore"
	"github.com/hostbit/hostbit/pkg/middleware"
	"github.com/hostbit/hostbit/pkg/panel"
	"github.com/hostbit/hostbit/pkg/provision"
	"github.com/hostbit/hostbit/pkg/theme"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Server struct {
	engine *gin.Engine
	port   int
}

func (s *Server) Init() {
	logrus.SetLevel(logrus.TraceLevel)
	config.LoadConfig()

	logLevelConfig := viper.GetString(configkey.LogLevel)
	l, errLevel := logrus.ParseLevel(logLevelConfig)
	if errLevel != nil {
		logrus.Error(errLevel)
	} else {
		logrus.SetLevel(l)
	}

	// Setup gin and routes
	r := gin.Default()
	if viper.GetBool(configkey.DebugMode) {
		logrus.Info("Debug mode enabled")
		r.Use(middleware.RequestLoggerMiddleware())
	} else {
		logrus.Info("Debug mode disabled")
	}

	themeConfig := theme.FromConfig()
	r.Use(static.Serve("/", static.LocalFile(themeConfig.Directory, false)))
	r.NoRoute(func(c *gin.Context) {
		themeConfig.NotFound(c)
	})

	db, err := database.CreateDatabase()
	if err != nil {
		panic("store was not created, cannot continue")
	}

	cat, err := catalog.Load()
	if err != nil {
		panic(err)
	}

	store := kvstore.NewGormStore(db)
	panelClient := panel.NewClient()
	svc := entitlement.NewService(store, cat)

	api := NewAPI(
		store,
		svc,
		coupons.NewLedger(store),
		identity.NewLinker(store, panelClient, identity.OptionsFromConfig()),
		provision.NewValidator(svc, cat, panelClient, provision.OptionsFromConfig()),
		panelClient,
		identity.NewProvider(),
		themeConfig,
	)
	api.SetupEndpoints(r)

	s.port = int(config.MustGetInt32(configkey.Port))
	s.engine = r
}

func (s *Server) Run() {
	_ = s.engine.Run(fmt.Sprintf(":%d", s.port))
}
