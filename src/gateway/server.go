package gateway

import (
	"context"
	"net/http"

	"github.com/dapplist/registry/src/registry"
	"github.com/dapplist/registry/src/utils/config"
	"github.com/dapplist/registry/src/utils/monitoring"
	"github.com/dapplist/registry/src/utils/task"

	"github.com/gin-gonic/gin"
	cache "github.com/patrickmn/go-cache"
)

// REST API server exposing the registry
type Server struct {
	*task.Task

	httpServer *http.Server
	Router     *gin.Engine

	engine  *registry.Engine
	monitor monitoring.Monitor

	// Read endpoint cache, invalidated on TTL only
	cache *cache.Cache
}

func NewServer(config *config.Config) (self *Server) {
	self = new(Server)

	self.Task = task.NewTask(config, "gateway").
		WithSubtaskFunc(self.run).
		WithOnStop(self.stop)

	if !config.IsDevelopment {
		gin.SetMode(gin.ReleaseMode)
	}

	self.Router = gin.New()
	self.Router.Use(gin.Recovery())

	self.cache = cache.New(config.Gateway.CacheTTL, config.Gateway.CacheCleanupInterval)

	self.httpServer = &http.Server{
		Addr:    config.Gateway.ServerListenAddress,
		Handler: self.Router,
	}

	self.setupRoutes()

	return
}

func (self *Server) WithEngine(engine *registry.Engine) *Server {
	self.engine = engine
	return self
}

func (self *Server) WithMonitor(monitor monitoring.Monitor) *Server {
	self.monitor = monitor
	return self
}

func (self *Server) setupRoutes() {
	v1 := self.Router.Group("v1")
	{
		v1.GET("listings", self.onGetListings)
		v1.GET("listings/:id", self.onGetListing)
		v1.GET("listings/slug/:slug", self.onGetListingBySlug)
		v1.GET("listings/account/:account", self.onGetListingByAccount)
		v1.GET("categories", self.onGetCategories)
		v1.GET("categories/:id", self.onGetCategory)
		v1.GET("categories/:id/listings", self.onGetCategoryListings)
		v1.GET("guardians", self.onGetGuardians)
		v1.GET("stats", self.onGetStats)

		authorized := v1.Group("")
		authorized.Use(self.authenticate())
		{
			authorized.POST("listings", self.onSubmitListing)
			authorized.PUT("listings/:id", self.onUpdateListing)
			authorized.POST("listings/:id/disable", self.onDisableListing)
			authorized.POST("categories", self.onAddCategory)
			authorized.POST("guardians", self.onAddGuardian)
			authorized.DELETE("guardians/:account", self.onRemoveGuardian)
			authorized.PUT("stats/disabled-count", self.onSetDisabledCount)
		}
	}
}

func (self *Server) run() (err error) {
	err = self.httpServer.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		self.Log.WithError(err).Error("Failed to start gateway server")
		return
	}
	return nil
}

func (self *Server) stop() {
	ctx, cancel := context.WithTimeout(context.Background(), self.Config.StopTimeout)
	defer cancel()

	err := self.httpServer.Shutdown(ctx)
	if err != nil {
		self.Log.WithError(err).Error("Failed to gracefully shutdown gateway server")
		return
	}
}
