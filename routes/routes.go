package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"motocare/handlers"
	"motocare/utils"
)

// RequestIDMiddleware tags every request with an id for log correlation.
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	}
}

// AuthMiddleware validates the bearer token and puts user_id into the
// request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "Authorization header is required",
				"code":    "ERR_NO_AUTH_HEADER",
			})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "Authorization header must be in the format 'Bearer <token>'",
				"code":    "ERR_INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return utils.JWTSecret, nil
		}, jwt.WithExpirationRequired())
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "Token has expired",
					"code":    "ERR_TOKEN_EXPIRED",
				})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{
					"status":  false,
					"message": "Invalid token",
					"error":   err.Error(),
					"code":    "ERR_INVALID_TOKEN",
				})
			}
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "Invalid token claims",
				"code":    "ERR_INVALID_CLAIMS",
			})
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			log.Warn("Token accepted by parser but user_id claim missing")
			c.JSON(http.StatusUnauthorized, gin.H{
				"status":  false,
				"message": "Invalid user id in token",
				"code":    "ERR_INVALID_USER_ID",
			})
			c.Abort()
			return
		}

		c.Set("user_id", int(userID))
		c.Next()
	}
}

// Path registers every endpoint under the given group.
func Path(router *gin.RouterGroup) {
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	users := router.Group("/users")
	{
		users.POST("/register", handlers.RegisterUser)
		users.POST("/login", handlers.LoginUser)

		usersWithAuth := users.Group("")
		usersWithAuth.Use(AuthMiddleware())
		{
			usersWithAuth.GET("/profile", handlers.GetProfile)
			usersWithAuth.PUT("/profile", handlers.UpdateProfile)
		}
	}

	vehicles := router.Group("/vehicles")
	vehicles.Use(AuthMiddleware())
	{
		vehicles.GET("/my-vehicles", handlers.GetMyVehicles)
		vehicles.POST("", handlers.CreateVehicle)
		vehicles.PUT("/:vehicleId/odometer", handlers.UpdateOdometer)

		vehicles.GET("/:vehicleId/history", handlers.GetServiceHistory)
		vehicles.POST("/:vehicleId/history", handlers.AddServiceHistory)

		vehicles.GET("/:vehicleId/schedules", handlers.GetSchedules)
		vehicles.PUT("/:vehicleId/schedules/:scheduleId", handlers.ResolveSchedule)

		vehicles.GET("/:vehicleId/trips", handlers.GetTrips)
		vehicles.POST("/:vehicleId/trips", handlers.RecordTrip)
	}

	notifications := router.Group("/notifications")
	notifications.Use(AuthMiddleware())
	{
		notifications.GET("/my-notifications", handlers.GetMyNotifications)
		notifications.PUT("/:notificationId/read", handlers.MarkNotificationRead)
	}

	spareParts := router.Group("/spare-parts")
	spareParts.Use(AuthMiddleware())
	{
		spareParts.GET("/by-vehicle/:vehicleId", handlers.GetSparePartsForVehicle)
		spareParts.GET("/for-vehicle/:vehicleId/:serviceName", handlers.GetSparePartForService)
	}
}
