package api

import (
	"net/http"
	"reflect"
	"testing"
	"time"

	"github.com/terraincognita07/bloom/internal/models"
)

var testNow = time.Date(2024, time.February, 5, 9, 30, 0, 0, time.UTC)

func TestUpsertDayNormalizesPayload(t *testing.T) {
	app, _ := newTestApp(t, testNow)

	response := sendJSON(t, app, http.MethodPut, "/api/days/2024-02-01", map[string]any{
		"isPeriod":    true,
		"intensity":   "Light",
		"symptoms":    []string{"headache", "Cramps 🩸", "headache"},
		"moods":       []string{"tired"},
		"notes":       "  long day  ",
		"waterIntake": 7,
	})
	expectStatus(t, response, http.StatusOK)

	saved := models.DayLog{}
	decodeResponse(t, response, &saved)
	if saved.Date != "2024-02-01" || !saved.IsPeriod || saved.Intensity != models.IntensityLight {
		t.Fatalf("unexpected saved log: %+v", saved)
	}
	if !reflect.DeepEqual(saved.Symptoms, []string{"cramps", "headache"}) {
		t.Fatalf("expected symptoms de-duplicated in catalog order, got %v", saved.Symptoms)
	}
	if saved.Notes != "long day" {
		t.Fatalf("expected trimmed notes, got %q", saved.Notes)
	}

	fetched := models.DayLog{}
	decodeResponse(t, sendJSON(t, app, http.MethodGet, "/api/days/2024-02-01", nil), &fetched)
	if fetched.WaterIntake == nil || *fetched.WaterIntake != 7 || !reflect.DeepEqual(fetched.Moods, []string{"tired"}) {
		t.Fatalf("unexpected fetched log: %+v", fetched)
	}
}

func TestUpsertDayClearsIntensityOnNonPeriodDay(t *testing.T) {
	app, _ := newTestApp(t, testNow)

	response := sendJSON(t, app, http.MethodPut, "/api/days/2024-02-02", map[string]any{
		"isPeriod":  false,
		"intensity": "intense",
	})
	expectStatus(t, response, http.StatusOK)

	saved := models.DayLog{}
	decodeResponse(t, response, &saved)
	if saved.Intensity != models.IntensityNone {
		t.Fatalf("expected intensity to be cleared, got %q", saved.Intensity)
	}
}

func TestUpsertDayRejectsInvalidInput(t *testing.T) {
	app, _ := newTestApp(t, testNow)

	testCases := []struct {
		name    string
		path    string
		payload map[string]any
		message string
	}{
		{name: "unknown intensity", path: "/api/days/2024-02-01", payload: map[string]any{"isPeriod": true, "intensity": "heavy"}, message: "invalid input"},
		{name: "negative water", path: "/api/days/2024-02-01", payload: map[string]any{"waterIntake": -1}, message: "invalid input"},
		{name: "too much sleep", path: "/api/days/2024-02-01", payload: map[string]any{"sleepHours": 25}, message: "invalid input"},
		{name: "unknown symptom", path: "/api/days/2024-02-01", payload: map[string]any{"symptoms": []string{"unicorn"}}, message: "unknown symptom"},
		{name: "unknown mood", path: "/api/days/2024-02-01", payload: map[string]any{"moods": []string{"grumpy"}}, message: "unknown mood"},
		{name: "impossible date", path: "/api/days/2024-02-30", payload: map[string]any{"isPeriod": true}, message: "invalid date"},
		{name: "malformed date", path: "/api/days/yesterday", payload: map[string]any{"isPeriod": true}, message: "invalid date"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			response := sendJSON(t, app, http.MethodPut, testCase.path, testCase.payload)
			if response.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected status 400, got %d", response.StatusCode)
			}
			if message := readAPIError(t, response); message != testCase.message {
				t.Fatalf("expected error %q, got %q", testCase.message, message)
			}
		})
	}

	logs := []models.DayLog{}
	decodeResponse(t, sendJSON(t, app, http.MethodGet, "/api/days", nil), &logs)
	if len(logs) != 0 {
		t.Fatalf("expected rejected writes to leave no logs, got %+v", logs)
	}
}

func TestUpsertDayReportsValidationFields(t *testing.T) {
	app, _ := newTestApp(t, testNow)

	response := sendJSON(t, app, http.MethodPut, "/api/days/2024-02-01", map[string]any{"sleepHours": 30})
	expectStatus(t, response, http.StatusBadRequest)

	payload := struct {
		Fields []fieldError `json:"fields"`
	}{}
	decodeResponse(t, response, &payload)
	if len(payload.Fields) != 1 || payload.Fields[0].Field != "sleepHours" || payload.Fields[0].Message != "must be at most 24" {
		t.Fatalf("unexpected validation fields: %+v", payload.Fields)
	}
}

func TestUpsertDayRequiresJSONContentType(t *testing.T) {
	app, _ := newTestApp(t, testNow)

	request := newFormRequest(http.MethodPut, "/api/days/2024-02-01", "isPeriod=true")
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("form request failed: %v", err)
	}
	if response.StatusCode != http.StatusUnsupportedMediaType {
		t.Fatalf("expected status 415, got %d", response.StatusCode)
	}
}

func TestGetDayReturnsEmptyRecordForMissingDate(t *testing.T) {
	app, _ := newTestApp(t, testNow)

	response := sendJSON(t, app, http.MethodGet, "/api/days/2024-01-15", nil)
	expectStatus(t, response, http.StatusOK)

	entry := models.DayLog{}
	decodeResponse(t, response, &entry)
	if entry.Date != "2024-01-15" || entry.IsPeriod || entry.Symptoms == nil || len(entry.Symptoms) != 0 {
		t.Fatalf("expected empty record for missing day, got %+v", entry)
	}
}

func TestGetDaysFiltersRangeAndDeleteRemovesLog(t *testing.T) {
	app, _ := newTestApp(t, testNow)
	putPeriodDays(t, app, "2024-01-30", "2024-02-01", "2024-02-03")

	inRange := []models.DayLog{}
	decodeResponse(t, sendJSON(t, app, http.MethodGet, "/api/days?from=2024-02-01&to=2024-02-29", nil), &inRange)
	if len(inRange) != 2 || inRange[0].Date != "2024-02-01" || inRange[1].Date != "2024-02-03" {
		t.Fatalf("unexpected range result: %+v", inRange)
	}

	inverted := sendJSON(t, app, http.MethodGet, "/api/days?from=2024-02-10&to=2024-02-01", nil)
	if inverted.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected inverted range to fail with 400, got %d", inverted.StatusCode)
	}
	inverted.Body.Close()

	deleted := sendJSON(t, app, http.MethodDelete, "/api/days/2024-02-01", nil)
	expectStatus(t, deleted, http.StatusNoContent)
	deleted.Body.Close()

	all := []models.DayLog{}
	decodeResponse(t, sendJSON(t, app, http.MethodGet, "/api/days", nil), &all)
	if len(all) != 2 || all[0].Date != "2024-01-30" || all[1].Date != "2024-02-03" {
		t.Fatalf("unexpected logs after delete: %+v", all)
	}
}
