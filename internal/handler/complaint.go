package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/conference-companion/internal/model"
	"github.com/iliyamo/conference-companion/internal/repository"
)

// ComplaintHandler covers both sides of the complaint workflow: the open
// submission form plus public status board, and the staff triage endpoints.
type ComplaintHandler struct {
	Complaints *repository.ComplaintRepo
	Users      *repository.UserRepo
	FX         *Effects
}

func NewComplaintHandler(complaints *repository.ComplaintRepo, users *repository.UserRepo, fx *Effects) *ComplaintHandler {
	return &ComplaintHandler{Complaints: complaints, Users: users, FX: fx}
}

type complaintReq struct {
	Category     string   `json:"category"`
	Priority     string   `json:"priority"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ContactEmail *string  `json:"contactEmail"`
	ContactPhone *string  `json:"contactPhone"`
	Attachments  []string `json:"attachments"`
}

// Create handles POST /v1/complaints.  No authentication is required; the
// submission form is open to every attendee.
func (h *ComplaintHandler) Create(c echo.Context) error {
	var body complaintReq
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(body.Title) == "" || strings.TrimSpace(body.Description) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title and description are required"})
	}
	if body.Category == "" {
		body.Category = model.ComplaintCategoryOther
	}
	if !model.ValidComplaintCategory(body.Category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category"})
	}
	if body.Priority == "" {
		body.Priority = model.ComplaintPriorityMedium
	}
	if !model.ValidComplaintPriority(body.Priority) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid priority"})
	}

	cm := &model.Complaint{
		Category:     body.Category,
		Priority:     body.Priority,
		Title:        strings.TrimSpace(body.Title),
		Description:  body.Description,
		ContactEmail: body.ContactEmail,
		ContactPhone: body.ContactPhone,
		Attachments:  body.Attachments,
		Status:       model.ComplaintStatusPending,
	}
	if err := h.Complaints.Create(c.Request().Context(), cm); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not submit complaint"})
	}
	return c.JSON(http.StatusCreated, cm)
}

// ListPublic handles GET /v1/complaints/public: the anonymized status
// board.  Contact details and free text never leave this endpoint.
func (h *ComplaintHandler) ListPublic(c echo.Context) error {
	items, err := h.Complaints.ListPublic(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch complaints"})
	}
	if items == nil {
		items = []model.PublicComplaint{}
	}
	return c.JSON(http.StatusOK, items)
}

// List handles GET /v1/complaints for staff, with status, category and
// priority filters.
func (h *ComplaintHandler) List(c echo.Context) error {
	f := repository.ComplaintFilter{
		Status:   c.QueryParam("status"),
		Category: c.QueryParam("category"),
		Priority: c.QueryParam("priority"),
	}
	if f.Status != "" && !model.ValidComplaintStatus(f.Status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status filter"})
	}
	if f.Category != "" && !model.ValidComplaintCategory(f.Category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid category filter"})
	}
	if f.Priority != "" && !model.ValidComplaintPriority(f.Priority) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid priority filter"})
	}
	items, err := h.Complaints.List(c.Request().Context(), f)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch complaints"})
	}
	if items == nil {
		items = []model.Complaint{}
	}
	return c.JSON(http.StatusOK, items)
}

// Get handles GET /v1/complaints/:id for staff.
func (h *ComplaintHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cm, err := h.Complaints.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "complaint not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch complaint"})
	}
	return c.JSON(http.StatusOK, cm)
}

// Update handles PUT /v1/complaints/:id: staff triage.  Status, assignee
// and response are the mutable fields; the submitted report itself is not
// editable.
func (h *ComplaintHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	cur, err := h.Complaints.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "complaint not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
	}

	var body struct {
		Status     *string `json:"status"`
		Priority   *string `json:"priority"`
		AssignedTo *uint64 `json:"assignedTo"`
		Response   *string `json:"response"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if body.Status != nil {
		if !model.ValidComplaintStatus(*body.Status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid status"})
		}
		cur.Status = *body.Status
	}
	if body.Priority != nil {
		if !model.ValidComplaintPriority(*body.Priority) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid priority"})
		}
		cur.Priority = *body.Priority
	}
	if body.AssignedTo != nil {
		if *body.AssignedTo == 0 {
			cur.AssignedTo = nil
		} else {
			if _, err := h.Users.GetByID(c.Request().Context(), *body.AssignedTo); err != nil {
				if errors.Is(err, repository.ErrUserNotFound) {
					return c.JSON(http.StatusNotFound, echo.Map{"error": "assignee not found"})
				}
				return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to verify assignee"})
			}
			cur.AssignedTo = body.AssignedTo
		}
	}
	if body.Response != nil {
		cur.Response = body.Response
	}

	if err := h.Complaints.Update(c.Request().Context(), cur); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update complaint"})
	}

	h.FX.Audit(c, "update", "complaint", cur.ID, body)
	return c.JSON(http.StatusOK, cur)
}

// Delete handles DELETE /v1/complaints/:id.
func (h *ComplaintHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	if err := h.Complaints.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrComplaintNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "complaint not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete complaint"})
	}
	h.FX.Audit(c, "delete", "complaint", id, echo.Map{"id": id})
	return c.JSON(http.StatusOK, echo.Map{"message": "complaint deleted"})
}
