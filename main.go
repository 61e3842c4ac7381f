package main

import (
	"context"
	"log"
	"time"

	"LoveForTennis/config"
	pgconfig "LoveForTennis/config/postgres"
	_ "LoveForTennis/config/swagger"
	"LoveForTennis/middleware"
	"LoveForTennis/obs"
	"LoveForTennis/repository"
	"LoveForTennis/routes"
	"LoveForTennis/services/auth"
	"LoveForTennis/services/booking"
	"LoveForTennis/services/bookingplayer"
	"LoveForTennis/services/court"
	"LoveForTennis/services/dummy"
	"LoveForTennis/services/identity"
	"LoveForTennis/services/redis"
	"LoveForTennis/services/role"
	"LoveForTennis/services/seed"
	"LoveForTennis/services/socket_io"
	"LoveForTennis/services/user"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title LoveForTennis API
// @version 1.0
// @description Gin-Gonic server for the LoveForTennis club booking API
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	godotenv.Load()
	log.Println("Setting up server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Error reading configuration: %v", err)
	}
	if cfg.Prod {
		gin.SetMode(gin.ReleaseMode)
	}
	clubTZ, err := cfg.Location()
	if err != nil {
		log.Fatalf("Error loading club timezone %q: %v", cfg.ClubTimezone, err)
	}

	gormDB, err := pgconfig.ConnectGORM(cfg)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	log.Println("GORM Connected")

	if cfg.MigratePostgres {
		log.Println("Migrating database...")
		if err := pgconfig.MigrateDatabase(gormDB); err != nil {
			log.Fatalf("Database migration failed: %v", err)
		}
		log.Println("Database migrated successfully")
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		log.Fatalf("Error reading GORM database instance: %v", err)
	}
	defer sqlDB.Close()

	var (
		tokens   identity.TokenStore = identity.NewMemoryTokenStore()
		throttle auth.LoginThrottle  = auth.NewMemoryThrottle()
	)
	if cfg.RedisURL != "" {
		redisClient, err := config.Connect_redis(cfg)
		if err != nil {
			log.Fatalf("Error connecting to Redis: %v", err)
		}
		defer redis.CloseRedis(redisClient)
		tokens, throttle = redisClient, redisClient
	} else {
		log.Println("REDIS_URL not set, keeping reset tokens and login counters in memory")
	}

	shutdownTracer, err := obs.InitTracer(cfg)
	if err != nil {
		log.Fatalf("Error starting tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			log.Printf("Error flushing traces: %v", err)
		}
	}()

	users := repository.NewGormUserRepository(gormDB)
	courts := repository.NewGormCourtRepository(gormDB)
	bookings := repository.NewGormBookingRepository(gormDB)
	dummies := repository.NewGormDummyRepository(gormDB)

	provider := identity.NewProvider(tokens, identity.Options{
		JWTSecret:     cfg.JWTSecret,
		AccessTTL:     cfg.JWTTTL(),
		ResetTokenTTL: cfg.ResetTokenTTL(),
	})
	roles := role.NewService(users)

	if cfg.SeedData {
		if err := seed.NewSeeder(users, courts, dummies, roles, provider).Run(context.Background()); err != nil {
			log.Fatalf("Error seeding data: %v", err)
		}
		log.Println("Seed data in place")
	}

	r := gin.Default()
	r.Use(middleware.Tracing(cfg.ServiceName))

	middleware.SetUpMiddleware(r, cfg)

	hub := socket_io.NewHub(provider)
	hub.Start(r, cfg.CORSOrigins, !cfg.Prod)

	routes.SetupRoutes(r, routes.Deps{
		Identity: provider,
		Auth: auth.NewService(users, roles, provider, throttle, auth.Options{
			MaxFailures: cfg.MaxLoginFailures,
			Lockout:     cfg.LoginLockout(),
		}),
		Bookings:       booking.NewService(gormDB, bookings, courts, users, hub, clubTZ),
		BookingPlayers: bookingplayer.NewService(repository.NewGormBookingPlayerRepository(gormDB), bookings, users),
		Courts:         court.NewService(courts),
		Dummies:        dummy.NewService(dummies),
		Users:          user.NewService(users),
		AuthLimiter:    middleware.NewRateLimiter(cfg.LoginRatePerMin),
	})

	port := cfg.ListenPort()
	log.Printf("Server starting on port %s", port)
	if cfg.UseHTTPS {
		if err := r.RunTLS(":"+port, cfg.CertFile, cfg.KeyFile); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	} else {
		if err := r.Run(":" + port); err != nil {
			log.Fatalf("Error starting server: %v", err)
		}
	}
}
