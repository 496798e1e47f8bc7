package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"wtsplinks/cmd/fx/account_fx"
	"wtsplinks/cmd/fx/admin_fx"
	"wtsplinks/cmd/fx/auth_fx"
	"wtsplinks/cmd/fx/category_fx"
	"wtsplinks/cmd/fx/config_fx"
	"wtsplinks/cmd/fx/controllers_fx"
	"wtsplinks/cmd/fx/dashboard_fx"
	"wtsplinks/cmd/fx/db_fx"
	"wtsplinks/cmd/fx/embedding_fx"
	"wtsplinks/cmd/fx/group_fx"
	"wtsplinks/cmd/fx/ingest_fx"
	"wtsplinks/cmd/fx/logger_fx"
	"wtsplinks/cmd/fx/mail_fx"
	"wtsplinks/cmd/fx/memcache_fx"
	"wtsplinks/cmd/fx/profile_fx"
	"wtsplinks/internal/api/controllers"
	"wtsplinks/internal/config"
	"wtsplinks/internal/models/db_models"
	mem "wtsplinks/pkg/memcache"
	"wtsplinks/pkg/middleware"
	"wtsplinks/pkg/utils"
)

func main() {
	app := fx.New(
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		mail_fx.Module,
		auth_fx.Module,
		embedding_fx.Module,
		account_fx.Module,
		profile_fx.Module,
		admin_fx.Module,
		category_fx.Module,
		group_fx.Module,
		ingest_fx.Module,
		dashboard_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRateLimiter),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.HTTPConfig, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

// ProvideRateLimiter builds the limiter for public write routes and sweeps idle clients.
func ProvideRateLimiter(lc fx.Lifecycle, cfg config.RateLimitConfig) *middleware.RateLimiter {
	rl := middleware.NewRateLimiter(cfg.RPS, cfg.Burst)
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				ticker := time.NewTicker(time.Minute)
				defer ticker.Stop()
				for {
					select {
					case <-ticker.C:
						rl.Cleanup(10 * time.Minute)
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			close(done)
			return nil
		},
	})
	return rl
}

type routerParams struct {
	fx.In

	HTTP        config.HTTPConfig
	Logger      *zap.Logger
	JWT         *utils.JWTManager
	Revoked     mem.RevokedTokenStore
	RateLimiter *middleware.RateLimiter

	Accounts   *controllers.AccountController
	Profiles   *controllers.ProfileController
	Admin      *controllers.AdminController
	Categories *controllers.CategoryController
	Groups     *controllers.GroupController
	BulkUpload *controllers.BulkUploadController
	Dashboard  *controllers.DashboardController
}

func ProvideRouter(p routerParams) *gin.Engine {
	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.AccessLogger(p.Logger.Named("http")))
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware(p.HTTP.AllowedOrigins))

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p routerParams) {
	auth := middleware.JWTAuthMiddleware(p.JWT, p.Revoked)
	limited := p.RateLimiter.Middleware()

	r.GET("/healthz", func(c *gin.Context) { utils.RespondSuccess(c, nil, "ok") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	accounts := r.Group("/accounts")
	accounts.POST("/register", limited, p.Accounts.Register)
	accounts.POST("/login", limited, p.Accounts.Login)
	accounts.POST("/logout", auth, p.Accounts.Logout)
	accounts.POST("/forgot-password", limited, p.Accounts.ForgotPassword)
	accounts.POST("/reset-password", limited, p.Accounts.ResetPassword)

	profile := r.Group("/profile", auth)
	profile.GET("", p.Profiles.GetProfile)
	profile.PUT("", p.Profiles.UpdateProfile)

	categories := r.Group("/categories")
	categories.GET("", p.Categories.ListCategories)
	categories.GET("/:id", p.Categories.GetCategory)
	categories.GET("/:id/groups", p.Groups.ListCategoryGroups)

	groups := r.Group("/groups")
	groups.GET("", p.Groups.ListGroups)
	groups.GET("/search", p.Groups.SearchGroups)
	groups.GET("/:id", p.Groups.GetGroup)
	groups.POST("", limited, p.Groups.CreateGroup)

	r.POST("/admin/login", limited, p.Admin.Login)

	admin := r.Group("/admin", auth, middleware.RoleMiddleware(db_models.RoleAdmin))
	admin.GET("/dashboard", p.Dashboard.GetDashboard)
	admin.GET("/users", p.Admin.ListUsers)
	admin.POST("/categories", p.Categories.CreateCategory)
	admin.PUT("/categories/:id", p.Categories.UpdateCategory)
	admin.DELETE("/categories/:id", p.Categories.DeleteCategory)
	admin.POST("/groups", p.Groups.CreateGroup)
	admin.PUT("/groups/:id", p.Groups.UpdateGroup)
	admin.DELETE("/groups/:id", p.Groups.DeleteGroup)
	admin.POST("/groups/bulk", p.BulkUpload.Upload)
	admin.POST("/groups/reindex", p.Groups.Reindex)
}
