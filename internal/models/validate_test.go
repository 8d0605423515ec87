package models_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"orderhub/internal/models"
)

func TestValidateOrder(t *testing.T) {
	order := models.Order{
		OrderDateTime:        time.Now(),
		BuyPersonName:        "Alice",
		BuyPersonPhoneNumber: "555-1111",
	}
	assert.NoError(t, models.Validate(order))

	order.BuyPersonName = strings.Repeat("x", 251)
	assert.Error(t, models.Validate(order))

	order.BuyPersonName = ""
	assert.Error(t, models.Validate(order))
}

func TestValidateOrderItem(t *testing.T) {
	assert.NoError(t, models.Validate(models.OrderItem{ItemName: "Widget"}))
	assert.Error(t, models.Validate(models.OrderItem{ItemName: ""}))
	assert.Error(t, models.Validate(models.OrderItem{ItemName: strings.Repeat("x", 251)}))
}

func TestValidateUser(t *testing.T) {
	user := models.AppUser{
		Username:     "alice",
		EmailAddress: "alice@example.com",
		Password:     "hunter2",
	}
	assert.NoError(t, models.Validate(user))

	user.EmailAddress = "not-an-email"
	assert.Error(t, models.Validate(user))
}

func TestValidateSystemLog(t *testing.T) {
	log := models.SystemLog{
		LogSerial:   "S-1",
		Description: "login",
		AppUserID:   1,
	}
	assert.NoError(t, models.Validate(log))

	log.LogSerial = "TOO-LONG-SERIAL"
	assert.Error(t, models.Validate(log))
}
