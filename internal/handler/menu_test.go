package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func menuCreateRequest(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/menus", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	// Validation runs before any repository call, so a handler without a
	// repo is enough to exercise the rejection paths.
	h := &MenuHandler{}
	if err := h.Create(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestMenuCreateRejectsOutOfRangeDay(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"day zero", `{"day":0,"mealType":"lunch","items":["rice"]}`},
		{"day four", `{"day":4,"mealType":"lunch","items":["rice"]}`},
		{"day nine", `{"day":9,"mealType":"lunch","items":["rice"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := menuCreateRequest(t, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestMenuCreateRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"unknown meal", `{"day":2,"mealType":"supper","items":["rice"]}`},
		{"no items", `{"day":2,"mealType":"lunch","items":[]}`},
		{"missing day", `{"mealType":"lunch","items":["rice"]}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := menuCreateRequest(t, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}
