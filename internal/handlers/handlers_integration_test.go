package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"orderhub/internal/cache"
	"orderhub/internal/handlers"
	"orderhub/internal/idgen"
	"orderhub/internal/models"
	"orderhub/internal/repositories"
	"orderhub/internal/services"
)

// newTestApp wires the full stack against in-memory SQLite and miniredis.
func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.AppUser{}, &models.SystemLog{}, &models.Order{}, &models.OrderItem{}))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	zlog := zap.NewNop()
	cacheStore := cache.NewRedisStore(client)
	generator := idgen.NewRedisGenerator(client)

	orderRepo := repositories.NewGORMOrderRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	logRepo := repositories.NewGORMLogRepository(db)

	orderService := services.NewOrderService(cacheStore, generator, orderRepo, nil, zlog)
	userService := services.NewUserService(userRepo, logRepo)
	logService := services.NewLogService(logRepo)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")
	handlers.NewOrderHandler(orderService, zlog).RegisterRoutes(apiV1)
	handlers.NewUserHandler(userService, zlog).RegisterRoutes(apiV1)
	handlers.NewLogHandler(logService, zlog).RegisterRoutes(apiV1)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, 5000)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, raw
}

func stageOrderBody(name, phone string, itemNames ...string) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(itemNames))
	for _, n := range itemNames {
		items = append(items, map[string]interface{}{"item_name": n})
	}
	return map[string]interface{}{
		"order": map[string]interface{}{
			"buy_person_name":         name,
			"buy_person_phone_number": phone,
		},
		"items": items,
	}
}

func TestOrderStagingFlow(t *testing.T) {
	app := newTestApp(t)

	// Stage Alice's order; a fresh counter yields identifier 1.
	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/orders/temp",
		stageOrderBody("Alice", "555-1111", "Widget", "Gadget"))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var staged struct {
		OrderID int64 `json:"order_id"`
	}
	require.NoError(t, json.Unmarshal(raw, &staged))
	assert.Equal(t, int64(1), staged.OrderID)

	// A second order gets identifier 2.
	resp, raw = doJSON(t, app, http.MethodPost, "/api/v1/orders/temp",
		stageOrderBody("Bob", "555-2222", "Bolt"))
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	require.NoError(t, json.Unmarshal(raw, &staged))
	assert.Equal(t, int64(2), staged.OrderID)

	// Read one back: the order fields only, items withheld.
	resp, raw = doJSON(t, app, http.MethodGet, "/api/v1/orders/temp/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var order models.Order
	require.NoError(t, json.Unmarshal(raw, &order))
	assert.Equal(t, "Alice", order.BuyPersonName)
	assert.Empty(t, order.Items)

	// Enumerate all staged records.
	resp, raw = doJSON(t, app, http.MethodGet, "/api/v1/orders/temp", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var records []services.StagedOrder
	require.NoError(t, json.Unmarshal(raw, &records))
	assert.Len(t, records, 2)
}

func TestOrderMigrationFlow(t *testing.T) {
	app := newTestApp(t)

	for _, body := range []map[string]interface{}{
		stageOrderBody("Alice", "555-1111", "Widget", "Gadget"),
		stageOrderBody("Bob", "555-2222", "Bolt"),
	} {
		resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/orders/temp", body)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	}

	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/orders/migrate", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var migrated struct {
		OrderIDs []int64 `json:"order_ids"`
	}
	require.NoError(t, json.Unmarshal(raw, &migrated))
	assert.Len(t, migrated.OrderIDs, 2)

	// Migrated orders are readable from the relational store with their
	// items cascaded in.
	resp, raw = doJSON(t, app, http.MethodGet, "/api/v1/orders/", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var orders []models.Order
	require.NoError(t, json.Unmarshal(raw, &orders))
	require.Len(t, orders, 2)

	itemTotal := 0
	for _, o := range orders {
		itemTotal += len(o.Items)
	}
	assert.Equal(t, 3, itemTotal)

	// Staged entries survive migration until they expire on their own.
	resp, raw = doJSON(t, app, http.MethodGet, "/api/v1/orders/temp", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var records []services.StagedOrder
	require.NoError(t, json.Unmarshal(raw, &records))
	assert.Len(t, records, 2)
}

func TestGetTempOrder_NotFound(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodGet, "/api/v1/orders/temp/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSaveTempOrder_ValidationFailure(t *testing.T) {
	app := newTestApp(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/api/v1/orders/temp",
		stageOrderBody("", "555-1111", "Widget"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUserLifecycle(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/users/", map[string]interface{}{
		"username":      "alice",
		"email_address": "alice@example.com",
		"password":      "hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))

	var created struct {
		AppUserID int `json:"app_user_id"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))
	require.NotZero(t, created.AppUserID)

	resp, raw = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", created.AppUserID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var user models.AppUser
	require.NoError(t, json.Unmarshal(raw, &user))
	assert.Equal(t, "alice", user.Username)

	resp, _ = doJSON(t, app, http.MethodDelete, fmt.Sprintf("/api/v1/users/%d", created.AppUserID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Soft delete keeps the user readable with the flag raised.
	resp, raw = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/users/%d", created.AppUserID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &user))
	assert.True(t, user.Deleted)
}

func TestLogEndpoints(t *testing.T) {
	app := newTestApp(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/api/v1/users/", map[string]interface{}{
		"username":      "alice",
		"email_address": "alice@example.com",
		"password":      "hunter2",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var created struct {
		AppUserID int `json:"app_user_id"`
	}
	require.NoError(t, json.Unmarshal(raw, &created))

	for _, desc := range []string{"login", "export"} {
		resp, raw = doJSON(t, app, http.MethodPost, "/api/v1/logs/", map[string]interface{}{
			"log_serial":  "S-1",
			"description": desc,
			"app_user_id": created.AppUserID,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	}

	resp, raw = doJSON(t, app, http.MethodGet, "/api/v1/logs/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var stats services.LogStats
	require.NoError(t, json.Unmarshal(raw, &stats))
	assert.Equal(t, int64(2), stats.Count)
	assert.Equal(t, 1, stats.MinLogID)
	assert.Equal(t, 2, stats.MaxLogID)

	resp, raw = doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/v1/logs/count/%d", created.AppUserID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var count struct {
		Count int64 `json:"count"`
	}
	require.NoError(t, json.Unmarshal(raw, &count))
	assert.Equal(t, int64(2), count.Count)

	resp, raw = doJSON(t, app, http.MethodPatch, "/api/v1/logs/1/soft-delete", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var softDeleted struct {
		SoftDeleted bool `json:"soft_deleted"`
	}
	require.NoError(t, json.Unmarshal(raw, &softDeleted))
	assert.True(t, softDeleted.SoftDeleted)

	resp, raw = doJSON(t, app, http.MethodGet, "/api/v1/logs/joined", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(raw))
	var joined []repositories.JoinedLog
	require.NoError(t, json.Unmarshal(raw, &joined))
	require.Len(t, joined, 2)
	assert.Equal(t, "alice", joined[0].Username)
}
