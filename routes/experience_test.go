package routes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"tourism-sewa-server/models"
	"tourism-sewa-server/storage"

	"github.com/kataras/iris/v12"
)

func newExperienceApp(businessID uint) *iris.Application {
	app := newTestApp()
	experience := app.Party("/api/experiences")
	experience.Get("/", GetExperiences)
	experience.Get("/featured", GetFeaturedExperiences)
	experience.Get("/search", SearchExperiences)
	experience.Get("/2/{id:uint}", GetExperiencesByBusiness)
	experience.Get("/{id:uint}", GetExperienceByID)
	experience.Post("/", asBusiness(businessID), CreateExperience)
	experience.Put("/{id:uint}", asBusiness(businessID), UpdateExperience)
	experience.Delete("/{id:uint}", asBusiness(businessID), DeleteExperience)
	return app
}

func TestCreateExperience(t *testing.T) {
	setupTestDB(t)
	business := seedBusiness(t, "owner")

	app := newExperienceApp(business.ID)
	rec := serve(t, app, http.MethodPost, "/api/experiences", iris.Map{
		"name":           "Annapurna Base Camp",
		"description":    "Ten day guided trek",
		"location":       "Pokhara",
		"pricePerPerson": 900.0,
		"duration":       "10 days",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var experience models.Experience
	storage.DB.First(&experience)
	if experience.BusinessID != business.ID {
		t.Errorf("experience must belong to the caller, got business %d", experience.BusinessID)
	}
	if experience.Type != "popular" {
		t.Errorf("expected default type popular, got %q", experience.Type)
	}
	if !experience.IsAvailable {
		t.Error("new experience must be available")
	}
}

func TestFeaturedLimitsToSixAvailable(t *testing.T) {
	setupTestDB(t)
	business := seedBusiness(t, "owner")
	for i := 0; i < 8; i++ {
		seedExperience(t, business.ID, fmt.Sprintf("Tour %d", i), 10, true)
	}
	seedExperience(t, business.ID, "Paused Tour", 10, false)

	app := newExperienceApp(business.ID)
	rec := serve(t, app, http.MethodGet, "/api/experiences/featured", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	experiences := body["experiences"].([]interface{})
	if len(experiences) != 6 {
		t.Fatalf("expected 6 featured experiences, got %d", len(experiences))
	}
	for _, raw := range experiences {
		e := raw.(map[string]interface{})
		if e["name"] == "Paused Tour" {
			t.Error("unavailable experience must not be featured")
		}
	}
}

func TestSearchExperiencesKeyword(t *testing.T) {
	setupTestDB(t)
	business := seedBusiness(t, "owner")
	seedExperience(t, business.ID, "Everest Trek", 150, true)
	seedExperience(t, business.ID, "City Food Walk", 20, true)
	seedExperience(t, business.ID, "Hidden Everest Flight", 300, false)

	app := newExperienceApp(business.ID)
	rec := serve(t, app, http.MethodGet, "/api/experiences/search?query=everest", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if body["aiAssisted"] != false {
		t.Error("keyword hit must not be AI assisted")
	}
	experiences := body["experiences"].([]interface{})
	if len(experiences) != 1 {
		t.Fatalf("expected 1 match (unavailable excluded), got %d", len(experiences))
	}
}

func TestSearchExperiencesAIFallback(t *testing.T) {
	setupTestDB(t)
	business := seedBusiness(t, "owner")
	trek := seedExperience(t, business.ID, "Everest Trek", 150, true)
	seedExperience(t, business.ID, "City Food Walk", 20, true)

	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"choices":[{"message":{"content":"[%d]"}}]}`, trek.ID)
	}))
	defer llm.Close()
	t.Setenv("GROQ_BASE_URL", llm.URL)
	t.Setenv("GROQ_API_KEY", "test-key")

	app := newExperienceApp(business.ID)
	rec := serve(t, app, http.MethodGet, "/api/experiences/search?query=high+altitude+adventure", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	body := decodeBody(t, rec)
	if body["aiAssisted"] != true {
		t.Error("fallback result must be flagged aiAssisted")
	}
	experiences := body["experiences"].([]interface{})
	if len(experiences) != 1 {
		t.Fatalf("expected 1 suggested experience, got %d", len(experiences))
	}
}

func TestSearchExperiencesAIFailureYieldsEmpty(t *testing.T) {
	setupTestDB(t)
	business := seedBusiness(t, "owner")
	seedExperience(t, business.ID, "Everest Trek", 150, true)

	llm := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "over capacity", http.StatusServiceUnavailable)
	}))
	defer llm.Close()
	t.Setenv("GROQ_BASE_URL", llm.URL)
	t.Setenv("GROQ_API_KEY", "test-key")

	app := newExperienceApp(business.ID)
	rec := serve(t, app, http.MethodGet, "/api/experiences/search?query=underwater+basket+weaving", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("fallback failure must not fail the request, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if got := len(body["experiences"].([]interface{})); got != 0 {
		t.Errorf("expected empty result, got %d", got)
	}
}

func TestSearchExperiencesMissingQuery(t *testing.T) {
	setupTestDB(t)
	app := newExperienceApp(1)
	rec := serve(t, app, http.MethodGet, "/api/experiences/search", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateExperienceOwnership(t *testing.T) {
	setupTestDB(t)
	owner := seedBusiness(t, "owner")
	intruder := seedBusiness(t, "intruder")
	experience := seedExperience(t, owner.ID, "Cave Tour", 25, true)

	intruderApp := newExperienceApp(intruder.ID)
	rec := serve(t, intruderApp, http.MethodPut, fmt.Sprintf("/api/experiences/%d", experience.ID), iris.Map{"name": "Stolen"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("intruder update: expected 403, got %d", rec.Code)
	}

	ownerApp := newExperienceApp(owner.ID)
	available := false
	rec = serve(t, ownerApp, http.MethodPut, fmt.Sprintf("/api/experiences/%d", experience.ID), iris.Map{
		"name":        "Cave Expedition",
		"isAvailable": available,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("owner update: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated models.Experience
	storage.DB.First(&updated, experience.ID)
	if updated.Name != "Cave Expedition" {
		t.Errorf("name not updated: %q", updated.Name)
	}
	if updated.IsAvailable {
		t.Error("isAvailable false not applied")
	}
}

func TestDeleteExperienceOwnership(t *testing.T) {
	setupTestDB(t)
	owner := seedBusiness(t, "owner")
	intruder := seedBusiness(t, "intruder")
	experience := seedExperience(t, owner.ID, "Zipline", 45, true)

	intruderApp := newExperienceApp(intruder.ID)
	rec := serve(t, intruderApp, http.MethodDelete, fmt.Sprintf("/api/experiences/%d", experience.ID), nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("intruder delete: expected 403, got %d", rec.Code)
	}

	ownerApp := newExperienceApp(owner.ID)
	rec = serve(t, ownerApp, http.MethodDelete, fmt.Sprintf("/api/experiences/%d", experience.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("owner delete: expected 200, got %d", rec.Code)
	}

	var count int64
	storage.DB.Model(&models.Experience{}).Count(&count)
	if count != 0 {
		t.Errorf("expected experience deleted, got %d rows", count)
	}
}

func TestGetExperiencesByBusiness(t *testing.T) {
	setupTestDB(t)
	first := seedBusiness(t, "first")
	second := seedBusiness(t, "second")
	seedExperience(t, first.ID, "A", 10, true)
	seedExperience(t, first.ID, "B", 10, true)
	seedExperience(t, second.ID, "C", 10, true)

	app := newExperienceApp(first.ID)
	rec := serve(t, app, http.MethodGet, fmt.Sprintf("/api/experiences/2/%d", first.ID), nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decodeBody(t, rec)
	if got := len(body["experiences"].([]interface{})); got != 2 {
		t.Fatalf("expected 2 experiences, got %d", got)
	}
}
