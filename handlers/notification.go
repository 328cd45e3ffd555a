package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"motocare/database"
	"motocare/models"
)

// GetMyNotifications lists the authenticated user's notifications,
// newest first.
func GetMyNotifications(c *gin.Context) {
	userID := c.GetInt("user_id")

	var notifications []models.Notification
	if err := database.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&notifications).Error; err != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to fetch notifications", err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Notifications fetched", notifications)
}

// MarkNotificationRead marks one of the user's notifications as read.
func MarkNotificationRead(c *gin.Context) {
	userID := c.GetInt("user_id")
	notificationID, err := strconv.Atoi(c.Param("notificationId"))
	if err != nil || notificationID <= 0 {
		ErrorResponse(c, http.StatusBadRequest, "Invalid notification id", c.Param("notificationId"))
		return
	}

	result := database.DB.Model(&models.Notification{}).
		Where("notification_id = ? AND user_id = ?", notificationID, userID).
		Update("is_read", true)
	if result.Error != nil {
		ErrorResponse(c, http.StatusInternalServerError, "Failed to update notification", result.Error.Error())
		return
	}
	if result.RowsAffected == 0 {
		ErrorResponse(c, http.StatusNotFound, "Notification not found", "")
		return
	}
	SuccessResponse(c, http.StatusOK, "Notification marked as read", nil)
}
