package models

import "time"

// AppUser represents a registered user. Deletion is soft: the Deleted flag is
// raised and the row stays in place.
type AppUser struct {
	AppUserID    int         `json:"app_user_id" gorm:"column:AppUserId;primaryKey;autoIncrement"`
	Username     string      `json:"username" gorm:"column:Username;type:varchar(250)" validate:"required,max=250"`
	EmailAddress string      `json:"email_address" gorm:"column:EmailAddress;type:varchar(250)" validate:"required,email,max=250"`
	Password     string      `json:"-" gorm:"column:Password;type:varchar(255)" validate:"required,max=72"`
	RegisterDate time.Time   `json:"register_date" gorm:"column:RegisterDate"`
	Deleted      bool        `json:"deleted" gorm:"column:Deleted"`
	SystemLogs   []SystemLog `json:"system_logs,omitempty" gorm:"foreignKey:AppUserID;references:AppUserID"`
}

func (AppUser) TableName() string { return "AppUser" }
