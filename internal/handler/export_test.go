package handler

import (
	"context"
	"encoding/csv"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/repository"
)

type fakeScheduleSource struct{ sessions []model.Session }

func (f *fakeScheduleSource) List(ctx context.Context, _ repository.SessionFilter) ([]model.Session, error) {
	return f.sessions, nil
}

type fakeComplaintSource struct{ complaints []model.Complaint }

func (f *fakeComplaintSource) List(ctx context.Context, _ repository.ComplaintFilter) ([]model.Complaint, error) {
	return f.complaints, nil
}

func exportRequest(t *testing.T, path string, fn echo.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	if err := fn(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestExportSchedulesCSV(t *testing.T) {
	day := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	h := &ExportHandler{
		sessions: &fakeScheduleSource{sessions: []model.Session{{
			ID:        4,
			Title:     "Opening Keynote",
			Authors:   "A. Turing",
			HallID:    1,
			Hall:      &model.HallRef{ID: 1, Name: "Hall A"},
			StartsAt:  day.Add(9 * time.Hour),
			EndsAt:    day.Add(10 * time.Hour),
			Status:    model.StatusUpcoming,
			Tags:      []string{"keynote", "plenary"},
			IsPlenary: true,
		}}},
	}

	rec := exportRequest(t, "/v1/export/schedules", h.Schedules)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, `"schedules.csv"`) {
		t.Fatalf("content disposition = %q", cd)
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	if rows[0][0] != "id" || rows[0][3] != "hall" {
		t.Fatalf("header = %v", rows[0])
	}
	row := rows[1]
	if row[0] != "4" || row[3] != "Hall A" || row[7] != "keynote;plenary" || row[8] != "true" {
		t.Fatalf("row = %v", row)
	}
}

func TestExportComplaintsCSV(t *testing.T) {
	email := "a@example.org"
	assignee := uint64(12)
	h := &ExportHandler{
		complaints: &fakeComplaintSource{complaints: []model.Complaint{{
			ID:           7,
			Category:     model.ComplaintCategoryTransport,
			Priority:     model.ComplaintPriorityHigh,
			Title:        "Shuttle never arrived",
			Status:       model.ComplaintStatusAssigned,
			ContactEmail: &email,
			AssignedTo:   &assignee,
			CreatedAt:    time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
		}}},
	}

	rec := exportRequest(t, "/v1/export/complaints", h.Complaints)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, `"complaints.csv"`) {
		t.Fatalf("content disposition = %q", cd)
	}

	rows, err := csv.NewReader(rec.Body).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	row := rows[1]
	if row[0] != "7" || row[1] != "transport" || row[5] != email || row[6] != "12" {
		t.Fatalf("row = %v", row)
	}
}
