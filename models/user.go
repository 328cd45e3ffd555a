package models

import "time"

type User struct {
	UserID       int       `json:"user_id" gorm:"primaryKey;autoIncrement;type:INT"`
	Name         string    `json:"name" gorm:"type:varchar(100);not null" binding:"required"`
	Email        string    `json:"email" gorm:"type:varchar(100);not null;uniqueIndex:idx_users_email" binding:"required,email"`
	PasswordHash string    `json:"-" gorm:"type:varchar(100);not null;column:password_hash"`
	Address      string    `json:"address,omitempty" gorm:"type:text"`
	PhotoURL     string    `json:"photo_url,omitempty" gorm:"type:varchar(255)"`
	Vehicles     []Vehicle `json:"vehicles,omitempty" gorm:"foreignKey:UserID;references:UserID"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updated_at" gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

type UserResponse struct {
	UserID   int    `json:"user_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Address  string `json:"address,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

func (u *User) ToResponse() UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Name:     u.Name,
		Email:    u.Email,
		Address:  u.Address,
		PhotoURL: u.PhotoURL,
	}
}
