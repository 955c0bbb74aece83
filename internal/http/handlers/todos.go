package handlers

import (
	"net/http"

	"github.com/hongminglow/homeflow-be/internal/http/respond"
	"github.com/hongminglow/homeflow-be/internal/middleware"
	"github.com/hongminglow/homeflow-be/internal/models/dto"
	"github.com/hongminglow/homeflow-be/internal/service"
	"github.com/hongminglow/homeflow-be/internal/views"
)

// TodoHandler serves the todo list.
type TodoHandler struct {
	todos *service.TodoService
	guard *middleware.Guard
}

// NewTodoHandler constructs the handler.
func NewTodoHandler(todos *service.TodoService, guard *middleware.Guard) *TodoHandler {
	return &TodoHandler{todos: todos, guard: guard}
}

// Register attaches todo routes to the mux.
func (h *TodoHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/todos", h.guard.User(h.handleList))
	mux.HandleFunc("GET /api/todos/stats", h.guard.User(h.handleStats))
	mux.HandleFunc("POST /api/todos", h.guard.User(h.handleCreate))
	mux.HandleFunc("PUT /api/todos/{id}", h.guard.User(h.handleUpdate))
	mux.HandleFunc("DELETE /api/todos/{id}", h.guard.User(h.handleDelete))
}

func (h *TodoHandler) handleList(w http.ResponseWriter, r *http.Request) {
	filter, err := views.ParseTodoFilter(r.URL.Query().Get("filter"))
	if err != nil {
		respond.HandleErr(w, r, invalid("filter", err.Error()))
		return
	}
	todos, err := h.todos.List(r.Context(), userID(r), filter)
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, todos)
}

func (h *TodoHandler) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.todos.Stats(r.Context(), userID(r))
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, stats)
}

func (h *TodoHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePayload[dto.TodoRequest](w, r)
	if !ok {
		return
	}
	id, err := h.todos.Create(r.Context(), userID(r), req)
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.CreatedResponse{Success: true, ID: id})
}

func (h *TodoHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	req, ok := decodePayload[dto.TodoRequest](w, r)
	if !ok {
		return
	}
	if err := h.todos.Update(r.Context(), userID(r), id, req); err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *TodoHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	if err := h.todos.Delete(r.Context(), userID(r), id); err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}
