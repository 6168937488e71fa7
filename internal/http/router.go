package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/adityapw/kuitansihub/internal/auth"
	"github.com/adityapw/kuitansihub/internal/config"
	"github.com/adityapw/kuitansihub/internal/domain/user"
	"github.com/adityapw/kuitansihub/internal/http/handlers"
	"github.com/adityapw/kuitansihub/internal/http/middlewares"
	"github.com/adityapw/kuitansihub/internal/observability"
	"github.com/adityapw/kuitansihub/internal/repo/postgres"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// NewRouter wires repositories, handlers and the middleware stack.
func NewRouter(cfg config.Config, pool *pgxpool.Pool, reg *prometheus.Registry) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	prom := observability.NewProm(reg)

	// middleware
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())
	r.Use(prom.GinHandleMiddleware())
	r.Use(otelgin.Middleware("kuitansihub"))

	// health
	ping := func() error {
		if pool == nil {
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		return pool.Ping(ctx)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire up repositories
	usersRepo := postgres.NewUsersRepo(pool, prom)
	kuitansiRepo := postgres.NewKuitansiRepo(pool, prom)

	jwtManager := auth.NewManager(cfg.JWTSecret, auth.TokenTTL)
	authMW := middlewares.NewAuthMiddleware(jwtManager, usersRepo, cfg)

	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager, cfg)
	usersHandler := handlers.NewUsersHandler(usersRepo)
	kuitansiHandler := handlers.NewKuitansiHandler(kuitansiRepo, prom)

	loginLimiter := middlewares.NewRateLimiter(10, time.Minute)

	// The two route families authenticate the development bypass token as
	// different synthetic identities. Kept as-is from the previous system:
	// dev requests against users act as an admin, against kuitansi as an ISE.
	devISE := user.User{
		IDUser:   1,
		Nama:     "Developer",
		EmailNIK: "dev@example.com",
		Role:     user.RoleISE,
	}
	devAdmin := user.User{
		IDUser:   0,
		Nama:     "Developer",
		EmailNIK: "dev@example.com",
		Role:     user.RoleAdmin,
	}

	users := r.Group("/users")
	{
		users.POST("/login", loginLimiter.Middleware(middlewares.KeyByIP), authHandler.Login)
		users.GET("/get_dev_token", authHandler.GetDevToken)

		authed := users.Group("")
		authed.Use(authMW.RequireAuth(middlewares.AuthOptions{DevIdentity: devAdmin}))

		authed.GET("/get_users", usersHandler.GetUsers)
		authed.GET("/get_user/:id", usersHandler.GetUser)
		authed.POST("/create_user", usersHandler.CreateUser)
		authed.PATCH("/edit_user/:id", usersHandler.EditUser)
		authed.DELETE("/delete_user/:id", usersHandler.DeleteUser)
	}

	kuitansi := r.Group("/kuitansi")
	kuitansi.Use(authMW.RequireAuth(middlewares.AuthOptions{
		DevIdentity:     devISE,
		AllowQueryToken: true,
	}))
	{
		kuitansi.POST("/create_kuitansi", kuitansiHandler.Create)
		kuitansi.GET("/all_kuitansi", kuitansiHandler.GetAll)
		kuitansi.GET("/get_kuitansi/:id", kuitansiHandler.GetByID)
		kuitansi.PATCH("/edit_kuitansi/:id", kuitansiHandler.Edit)
		kuitansi.DELETE("/delete/:id", kuitansiHandler.Delete)
		kuitansi.GET("/download_kuitansi/:id", kuitansiHandler.Download)
		kuitansi.GET("/download_all_kuitansi", kuitansiHandler.DownloadAll)
		kuitansi.GET("/cetak_pdf/:id", kuitansiHandler.CetakPDF)
	}

	return r
}
