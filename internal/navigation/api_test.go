package navigation

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mylatitude/engage/internal/shared/config"
)

func postInfo(t *testing.T, body any) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(config.HospitalConfig{
		Name:            "Ospedale Demo",
		DefaultBuilding: "Corpo A",
		DefaultFloor:    2,
	})

	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/info", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	h.Routes().ServeHTTP(rec, req)
	return rec
}

func TestInfoDefaults(t *testing.T) {
	rec := postInfo(t, InfoRequest{Department: "Cardiologia"})

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}

	var info Info
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if info.Building != "Corpo A" || info.Floor != 2 {
		t.Errorf("Expected facility defaults, got building '%s' floor %d", info.Building, info.Floor)
	}
	if len(info.Guidance) != 4 {
		t.Fatalf("Expected 4 guidance steps, got %d", len(info.Guidance))
	}
	if info.Guidance[0] != "Entra dall'ingresso principale." {
		t.Errorf("Unexpected first step: '%s'", info.Guidance[0])
	}
	if info.Guidance[3] != "Cerca la segnaletica per il reparto Cardiologia." {
		t.Errorf("Unexpected last step: '%s'", info.Guidance[3])
	}
}

func TestInfoExplicitLocation(t *testing.T) {
	groundFloor := 0
	rec := postInfo(t, InfoRequest{Department: "Radiologia", Building: "Corpo C", Floor: &groundFloor})

	var info Info
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if info.Building != "Corpo C" {
		t.Errorf("Expected 'Corpo C', got '%s'", info.Building)
	}
	if info.Floor != 0 {
		t.Errorf("Floor zero is a valid explicit value, got %d", info.Floor)
	}
	if info.Guidance[2] != "Sali al piano 0." {
		t.Errorf("Unexpected floor step: '%s'", info.Guidance[2])
	}
}

func TestInfoMissingDepartment(t *testing.T) {
	rec := postInfo(t, InfoRequest{Department: "   "})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if body["code"] != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %v", body["code"])
	}
}
