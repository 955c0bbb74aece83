package handlers

import (
	"net/http"

	"github.com/hongminglow/homeflow-be/internal/http/respond"
	"github.com/hongminglow/homeflow-be/internal/middleware"
	"github.com/hongminglow/homeflow-be/internal/models"
	"github.com/hongminglow/homeflow-be/internal/models/dto"
	"github.com/hongminglow/homeflow-be/internal/service"
)

// ReminderHandler serves reminders and events and their calendar views.
type ReminderHandler struct {
	reminders *service.ReminderService
	guard     *middleware.Guard
}

// NewReminderHandler constructs the handler.
func NewReminderHandler(reminders *service.ReminderService, guard *middleware.Guard) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, guard: guard}
}

// Register attaches reminder routes to the mux.
func (h *ReminderHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/reminders", h.guard.User(h.handleList))
	mux.HandleFunc("POST /api/reminders", h.guard.User(h.handleCreate))
	mux.HandleFunc("PUT /api/reminders/{id}", h.guard.User(h.handleUpdate))
	mux.HandleFunc("DELETE /api/reminders/{id}", h.guard.User(h.handleDelete))
	mux.HandleFunc("GET /api/reminders/upcoming", h.guard.User(h.handleUpcoming))
	mux.HandleFunc("GET /api/reminders/calendar", h.guard.User(h.handleCalendar))
}

func (h *ReminderHandler) handleList(w http.ResponseWriter, r *http.Request) {
	var (
		list []models.Reminder
		err  error
	)
	switch sort := r.URL.Query().Get("sort"); sort {
	case "":
		list, err = h.reminders.List(r.Context(), userID(r))
	case "completed-last":
		list, err = h.reminders.ListCompletedLast(r.Context(), userID(r))
	default:
		err = invalid("sort", "sort must be completed-last")
	}
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *ReminderHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePayload[dto.ReminderRequest](w, r)
	if !ok {
		return
	}
	id, err := h.reminders.Create(r.Context(), userID(r), req)
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.CreatedResponse{Success: true, ID: id})
}

func (h *ReminderHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	req, ok := decodePayload[dto.ReminderRequest](w, r)
	if !ok {
		return
	}
	if err := h.reminders.Update(r.Context(), userID(r), id, req); err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *ReminderHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	if err := h.reminders.Delete(r.Context(), userID(r), id); err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

// handleUpcoming serves ?limit= and, with ?group=priority, per-priority buckets
// each capped at limit.
func (h *ReminderHandler) handleUpcoming(w http.ResponseWriter, r *http.Request) {
	limit, err := queryLimit(r, "limit")
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}

	switch group := r.URL.Query().Get("group"); group {
	case "":
		list, err := h.reminders.Upcoming(r.Context(), userID(r), limit)
		if err != nil {
			respond.HandleErr(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, list)
	case "priority":
		buckets, err := h.reminders.UpcomingByPriority(r.Context(), userID(r), limit)
		if err != nil {
			respond.HandleErr(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, buckets)
	default:
		respond.HandleErr(w, r, invalid("group", "group must be priority"))
	}
}

// handleCalendar serves ?date=YYYY-MM-DD as a day detail, otherwise the day
// buckets of ?month=YYYY-MM (default current month).
func (h *ReminderHandler) handleCalendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if date := q.Get("date"); date != "" {
		list, err := h.reminders.Day(r.Context(), userID(r), date)
		if err != nil {
			respond.HandleErr(w, r, err)
			return
		}
		respond.JSON(w, http.StatusOK, list)
		return
	}

	buckets, err := h.reminders.Calendar(r.Context(), userID(r), q.Get("month"))
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, buckets)
}
