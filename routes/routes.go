package routes

import (
	"LoveForTennis/controllers"
	"LoveForTennis/middleware"
	models "LoveForTennis/models/postgres"
	"LoveForTennis/services/auth"
	"LoveForTennis/services/booking"
	"LoveForTennis/services/bookingplayer"
	"LoveForTennis/services/court"
	"LoveForTennis/services/dummy"
	"LoveForTennis/services/identity"
	"LoveForTennis/services/user"
	utils "LoveForTennis/utils"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Deps are the services the API routes are built on.
type Deps struct {
	Identity       identity.Provider
	Auth           *auth.Service
	Bookings       *booking.Service
	BookingPlayers *bookingplayer.Service
	Courts         *court.Service
	Dummies        *dummy.Service
	Users          *user.Service
	// AuthLimiter throttles the anonymous auth endpoints. Nil disables it.
	AuthLimiter *middleware.RateLimiter
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, d Deps) {
	router.Use(utils.ErrorHandler())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/ping", controllers.Ping)

	api := router.Group("/api")
	authRequired := middleware.AuthRequired(d.Identity)
	courtManagers := middleware.RequireRole(models.RoleAdmin, models.RoleBoardMember)

	authentication := api.Group("/auth")
	{
		public := authentication.Group("")
		if d.AuthLimiter != nil {
			public.Use(d.AuthLimiter.Limit())
		}
		public.POST("/login", controllers.Login(d.Auth))
		public.POST("/register", controllers.Register(d.Auth))
		public.POST("/forgot-password", controllers.ForgotPassword(d.Auth))
		public.POST("/reset-password", controllers.ResetPassword(d.Auth))

		authentication.GET("/profile", authRequired, controllers.Profile(d.Auth))
		authentication.POST("/logout", authRequired, controllers.Logout)
	}

	bookings := api.Group("/booking", authRequired)
	{
		bookings.GET("", controllers.ListBookings(d.Bookings))
		bookings.POST("", controllers.CreateBooking(d.Bookings))
		bookings.GET("/user/:userId", controllers.ListBookingsByUser(d.Bookings))
		bookings.GET("/court/:courtId", controllers.ListBookingsByCourt(d.Bookings))
		bookings.GET("/:id", controllers.GetBooking(d.Bookings))
		bookings.PUT("/:id", controllers.UpdateBooking(d.Bookings))
		bookings.DELETE("/:id", controllers.DeleteBooking(d.Bookings))
		bookings.POST("/:id/cancel", controllers.CancelBooking(d.Bookings))
	}

	players := api.Group("/bookingplayer", authRequired)
	{
		players.GET("", controllers.ListBookingPlayers(d.BookingPlayers))
		players.POST("", controllers.CreateBookingPlayer(d.BookingPlayers, d.Bookings))
		players.GET("/booking/:bookingId", controllers.ListPlayersByBooking(d.BookingPlayers))
		players.GET("/player/:playerUserId", controllers.ListPlayersByUser(d.BookingPlayers))
		players.GET("/:id", controllers.GetBookingPlayer(d.BookingPlayers))
		players.PUT("/:id", controllers.UpdateBookingPlayer(d.BookingPlayers, d.Bookings))
		players.DELETE("/:id", controllers.DeleteBookingPlayer(d.BookingPlayers, d.Bookings))
	}

	dummies := api.Group("/dummy")
	{
		dummies.GET("", controllers.ListDummies(d.Dummies))
		dummies.GET("/:id", controllers.GetDummy(d.Dummies))
		dummies.POST("", authRequired, controllers.CreateDummy(d.Dummies))
		dummies.PUT("/:id", authRequired, controllers.UpdateDummy(d.Dummies))
		dummies.DELETE("/:id", authRequired, controllers.DeleteDummy(d.Dummies))
	}

	courts := api.Group("/court")
	{
		courts.GET("", controllers.ListCourts(d.Courts))
		courts.GET("/:id", controllers.GetCourt(d.Courts))

		manage := courts.Group("", authRequired, courtManagers)
		manage.POST("", controllers.CreateCourt(d.Courts))
		manage.PUT("/:id", controllers.UpdateCourt(d.Courts))
		manage.DELETE("/:id", controllers.DeleteCourt(d.Courts))
		manage.POST("/:id/disable", controllers.DisableCourt(d.Courts))
		manage.POST("/:id/enable", controllers.EnableCourt(d.Courts))
	}

	users := api.Group("/users", authRequired, middleware.RequireRole(models.RoleAdmin))
	{
		users.GET("", controllers.ListUsers(d.Users))
		users.DELETE("/:id", controllers.DeleteUser(d.Users))
	}
}
