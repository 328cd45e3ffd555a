package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"motocare/database"
	"motocare/models"
	"motocare/services"
	"motocare/utils"
)

type initialServiceInput struct {
	ServiceDate       string   `json:"service_date" binding:"required"`
	OdometerAtService int      `json:"odometer_at_service" binding:"gte=0"`
	ServiceType       string   `json:"service_type" binding:"required"`
	Description       string   `json:"description"`
	WorkshopName      string   `json:"workshop_name"`
	Cost              *float64 `json:"cost"`
}

type registerInput struct {
	Name            string                `json:"name" binding:"required"`
	Email           string                `json:"email" binding:"required,email"`
	Password        string                `json:"password" binding:"required,min=6"`
	Address         string                `json:"address"`
	PlateNumber     string                `json:"plate_number" binding:"required"`
	Brand           string                `json:"brand" binding:"required"`
	Model           string                `json:"model" binding:"required"`
	Year            int                   `json:"year"`
	CurrentOdometer int                   `json:"current_odometer" binding:"gte=0"`
	LastServiceDate string                `json:"last_service_date"`
	InitialServices []initialServiceInput `json:"initial_services"`
}

// RegisterUser creates a user with their first vehicle and optional
// pre-registration service history, and returns a bearer token.
func RegisterUser(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid registration payload", err.Error())
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to process password", err.Error())
		return
	}

	lastServiceDate, ok := parseOptionalDate(c, input.LastServiceDate)
	if !ok {
		return
	}

	reg := services.RegisterInput{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Address:      input.Address,
		Vehicle: services.VehicleInput{
			PlateNumber:     input.PlateNumber,
			Brand:           input.Brand,
			Model:           input.Model,
			Year:            input.Year,
			CurrentOdometer: input.CurrentOdometer,
			LastServiceDate: lastServiceDate,
		},
	}
	for _, svc := range input.InitialServices {
		date, err := time.Parse("2006-01-02", svc.ServiceDate)
		if err != nil {
			ErrorResponse(c, http.StatusBadRequest, "Invalid initial service date", err.Error())
			return
		}
		reg.InitialServices = append(reg.InitialServices, services.HistoryInput{
			ServiceDate:       date,
			OdometerAtService: svc.OdometerAtService,
			ServiceType:       svc.ServiceType,
			Description:       svc.Description,
			WorkshopName:      svc.WorkshopName,
			Cost:              svc.Cost,
		})
	}

	user, vehicle, err := flows.Register(reg)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			ErrorResponse(c, http.StatusConflict, "Email already registered", err.Error())
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, "Registration failed", err.Error())
		return
	}

	token, err := utils.IssueToken(user.UserID, user.Name, user.Email)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to issue token", err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "User and vehicle registered", gin.H{
		"user":    user.ToResponse(),
		"vehicle": vehicle.ToResponse(),
		"token":   token,
	})
}

type loginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginUser verifies credentials and returns a bearer token.
func LoginUser(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Email and password are required", err.Error())
		return
	}

	var user models.User
	if err := database.DB.Where("email = ?", input.Email).First(&user).Error; err != nil {
		ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials", "invalid email or password")
		return
	}
	if !utils.CheckPasswordHash(input.Password, user.PasswordHash) {
		ErrorResponse(c, http.StatusUnauthorized, "Invalid credentials", "invalid email or password")
		return
	}

	token, err := utils.IssueToken(user.UserID, user.Name, user.Email)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to issue token", err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user":  user.ToResponse(),
	})
}

// GetProfile returns the authenticated user's profile.
func GetProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		ErrorResponse(c, http.StatusNotFound, "User not found", err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Profile fetched", user.ToResponse())
}

type updateProfileInput struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
}

// UpdateProfile updates the mutable profile fields.
func UpdateProfile(c *gin.Context) {
	userID := c.GetInt("user_id")

	var input updateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid profile payload", err.Error())
		return
	}

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		ErrorResponse(c, http.StatusNotFound, "User not found", err.Error())
		return
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Address != nil {
		user.Address = *input.Address
	}
	if err := database.DB.Save(&user).Error; err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to update profile", err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Profile updated", user.ToResponse())
}

// parseOptionalDate parses YYYY-MM-DD, writing the error response itself
// when the value is present but malformed.
func parseOptionalDate(c *gin.Context, value string) (*time.Time, bool) {
	if value == "" {
		return nil, true
	}
	d, err := time.Parse("2006-01-02", value)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", err.Error())
		return nil, false
	}
	return &d, true
}
