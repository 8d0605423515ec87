package models

import "time"

// SystemLog represents a single audit entry submitted on behalf of a user.
type SystemLog struct {
	LogID       int       `json:"log_id" gorm:"column:LogId;primaryKey;autoIncrement"`
	LogSerial   string    `json:"log_serial" gorm:"column:LogSerial;type:varchar(10)" validate:"required,max=10"`
	Description string    `json:"description" gorm:"column:Description;type:varchar(250)" validate:"required,max=250"`
	LogDateTime time.Time `json:"log_date_time" gorm:"column:LogDateTime"`
	AppUserID   int       `json:"app_user_id" gorm:"column:AppUserId" validate:"required"`
	Deleted     bool      `json:"deleted" gorm:"column:Deleted"`
}

func (SystemLog) TableName() string { return "SystemLog" }
