package internal

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/VishalRj23/laundry-management-system/config"
	"github.com/VishalRj23/laundry-management-system/internal/api"
	"github.com/VishalRj23/laundry-management-system/internal/model"
	"github.com/VishalRj23/laundry-management-system/internal/store"
)

// TestLaundryLifecycle walks one student through the full flow: register,
// drop off clothes, read the last record, confirm collection, read again.
func TestLaundryLifecycle(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file:lifecycle?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	err = testDB.AutoMigrate(&model.Student{}, &model.LaundryRecord{}, &model.LaundryRecordDetail{})
	require.NoError(t, err)

	cfg := &config.ServerConfig{
		Port:            5000,
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTLSeconds: 1,
	}
	router := api.NewRouter(store.NewGormStore(testDB, false), log.New(io.Discard, "", 0), cfg)

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var reader io.Reader
		if body != nil {
			payload, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequest(method, path, reader)
		require.NoError(t, err)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("register Asha on floor 2 page 5", func(t *testing.T) {
		w := do(http.MethodPost, "/api/students/register",
			gin.H{"name": "Asha", "floor_no": 2, "page_no": 5})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Student registered","studentId":1}`, w.Body.String())
	})

	t.Run("submit clothes with a sloppy name", func(t *testing.T) {
		w := do(http.MethodPost, "/api/give", gin.H{
			"name": "asha ", "floor": 2, "page_no": 5,
			"tshirt": 2, "shirt": 0, "pant": 1, "bedsheet": 0,
			"total": 3,
		})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Clothes submitted successfully!","recordId":1}`, w.Body.String())

		// Only the strictly positive quantities become detail rows.
		var details []model.LaundryRecordDetail
		require.NoError(t, testDB.Order("item_id").Find(&details).Error)
		require.Len(t, details, 2)
		assert.Equal(t, model.ItemTShirt, details[0].ItemID)
		assert.Equal(t, 2, details[0].Quantity)
		assert.Equal(t, model.ItemPant, details[1].ItemID)
		assert.Equal(t, 1, details[1].Quantity)
	})

	t.Run("last record shows the breakdown, unconfirmed", func(t *testing.T) {
		w := do(http.MethodGet, "/api/last/2/5", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var view map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, float64(1), view["record_id"])
		assert.Equal(t, "Asha", view["name"])
		assert.Equal(t, float64(2), view["floor"])
		assert.Equal(t, float64(5), view["page_no"])
		assert.Equal(t, time.Now().Format("2006-01-02"), view["given_date"])
		assert.Equal(t, float64(3), view["total"])
		assert.Equal(t, false, view["confirmed"])
		assert.Equal(t, float64(2), view["tshirt"])
		assert.Equal(t, float64(0), view["shirt"])
		assert.Equal(t, float64(1), view["pant"])
		assert.Equal(t, float64(0), view["bedsheet"])
	})

	t.Run("confirm collection, twice", func(t *testing.T) {
		w := do(http.MethodPut, "/api/confirm/1", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Collection confirmed!","recordId":1,"confirmed":true}`, w.Body.String())

		// Confirming an already collected record reports success again.
		w = do(http.MethodPut, "/api/confirm/1", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Collection confirmed!","recordId":1,"confirmed":true}`, w.Body.String())
	})

	t.Run("last record now reports confirmed", func(t *testing.T) {
		w := do(http.MethodGet, "/api/last/2/5", nil)

		assert.Equal(t, http.StatusOK, w.Code)

		var view map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, true, view["confirmed"])
	})

	t.Run("all-zero submission persists no detail rows", func(t *testing.T) {
		w := do(http.MethodPost, "/api/give", gin.H{
			"name": "ASHA", "floor": 2, "page_no": 5,
			"tshirt": 0, "shirt": 0, "pant": 0, "bedsheet": 0,
			"total": 0,
		})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"message":"Clothes submitted successfully!","recordId":2}`, w.Body.String())

		var count int64
		testDB.Model(&model.LaundryRecordDetail{}).Where("record_id = ?", 2).Count(&count)
		assert.Equal(t, int64(0), count)

		// The newest record wins the last-record view.
		w = do(http.MethodGet, "/api/last/2/5", nil)
		var view map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &view))
		assert.Equal(t, float64(2), view["record_id"])
		assert.Equal(t, false, view["confirmed"])
		assert.Equal(t, float64(0), view["tshirt"])
	})

	t.Run("student with no records yields a null body", func(t *testing.T) {
		w := do(http.MethodPost, "/api/students/register",
			gin.H{"name": "Ravi", "floor_no": 3, "page_no": 1})
		require.Equal(t, http.StatusOK, w.Code)

		w = do(http.MethodGet, "/api/last/3/1", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "null", w.Body.String())
	})
}

// TestLaundryLifecycle_AtomicSubmit exercises the transactional submission
// variant; its success-path behavior is identical to the default.
func TestLaundryLifecycle_AtomicSubmit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	testDB, err := gorm.Open(sqlite.Open("file:atomic?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, _ := testDB.DB()
	defer sqlDB.Close()

	require.NoError(t, testDB.AutoMigrate(&model.Student{}, &model.LaundryRecord{}, &model.LaundryRecordDetail{}))

	s := store.NewGormStore(testDB, true)

	studentID, err := s.RegisterStudent(context.Background(), "Meera", 4, 2)
	require.NoError(t, err)

	recordID, err := s.CreateRecord(context.Background(), studentID, 5, model.Quantities{
		model.ItemShirt:    3,
		model.ItemBedsheet: 2,
	})
	require.NoError(t, err)

	record, breakdown, err := s.LastRecord(context.Background(), studentID)
	require.NoError(t, err)
	assert.Equal(t, recordID, record.RecordID)
	assert.Equal(t, 5, record.TotalClothes)
	assert.False(t, record.IsCollected)
	assert.Equal(t, model.Quantities{
		model.ItemTShirt:   0,
		model.ItemShirt:    3,
		model.ItemPant:     0,
		model.ItemBedsheet: 2,
	}, breakdown)
}
