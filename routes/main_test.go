package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tourism-sewa-server/models"
	"tourism-sewa-server/storage"

	"github.com/glebarez/sqlite"
	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

// setupTestDB points the global DB at a fresh in-memory sqlite database so
// each test starts from empty tables.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Business{},
		&models.Experience{},
		&models.Booking{},
		&models.Review{},
		&models.AuditLog{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	storage.DB = db
	return db
}

func newTestApp() *iris.Application {
	app := iris.New()
	app.Validator = validator.New()
	return app
}

// Stub auth middlewares: tests exercise handler semantics, not token
// verification, which has its own coverage in auth_test.go.

func asTourist(id uint) iris.Handler {
	return func(ctx iris.Context) {
		ctx.Values().Set("userID", id)
		ctx.Next()
	}
}

func asBusiness(id uint) iris.Handler {
	return func(ctx iris.Context) {
		ctx.Values().Set("businessID", id)
		ctx.Next()
	}
}

func asAdmin(id uint) iris.Handler {
	return func(ctx iris.Context) {
		ctx.Values().Set("adminID", id)
		ctx.Next()
	}
}

func serve(t *testing.T, app *iris.Application, method, path string, body interface{}, header ...http.Header) *httptest.ResponseRecorder {
	t.Helper()

	if err := app.Build(); err != nil {
		t.Fatalf("build app: %v", err)
	}

	var reqBody *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reqBody = bytes.NewReader(raw)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for _, h := range header {
		for key, values := range h {
			for _, v := range values {
				req.Header.Set(key, v)
			}
		}
	}

	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return body
}

func seedBusiness(t *testing.T, name string) models.Business {
	t.Helper()

	business := models.Business{
		Name:         name,
		Email:        name + "@example.com",
		Password:     "hashed",
		BusinessName: name + " Tours",
	}
	if err := storage.DB.Create(&business).Error; err != nil {
		t.Fatalf("seed business: %v", err)
	}
	return business
}

func seedUser(t *testing.T, name string) models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    name + "@example.com",
		Password: "hashed",
	}
	if err := storage.DB.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func seedExperience(t *testing.T, businessID uint, name string, price float64, available bool) models.Experience {
	t.Helper()

	experience := models.Experience{
		BusinessID:     businessID,
		Name:           name,
		Description:    "A " + name + " experience",
		Location:       "Kathmandu",
		Type:           "popular",
		IsAvailable:    available,
		PricePerPerson: price,
	}
	if err := storage.DB.Create(&experience).Error; err != nil {
		t.Fatalf("seed experience: %v", err)
	}
	// gorm:"default:true" makes Create drop a zero-value false, so force the column.
	if err := storage.DB.Model(&experience).Update("is_available", available).Error; err != nil {
		t.Fatalf("seed experience availability: %v", err)
	}
	return experience
}

func seedBooking(t *testing.T, touristID, experienceID uint, amount float64) models.Booking {
	t.Helper()

	booking := models.Booking{
		TouristID:    touristID,
		ExperienceID: experienceID,
		Date:         time.Now().Add(48 * time.Hour),
		Email:        "tourist@example.com",
		NoOfPersons:  2,
		TotalAmount:  amount,
		Status:       "pending",
		Reference:    fmt.Sprintf("ref%d%d", touristID, experienceID),
	}
	if err := storage.DB.Create(&booking).Error; err != nil {
		t.Fatalf("seed booking: %v", err)
	}
	return booking
}
