package handlers

import (
	"net/http"

	"github.com/hongminglow/homeflow-be/internal/http/respond"
	"github.com/hongminglow/homeflow-be/internal/middleware"
	"github.com/hongminglow/homeflow-be/internal/models/dto"
	"github.com/hongminglow/homeflow-be/internal/service"
	"github.com/hongminglow/homeflow-be/internal/views"
)

// BudgetHandler serves expenses, the monthly budget and the spending summary.
type BudgetHandler struct {
	budget *service.BudgetService
	guard  *middleware.Guard
}

// NewBudgetHandler constructs the handler.
func NewBudgetHandler(budget *service.BudgetService, guard *middleware.Guard) *BudgetHandler {
	return &BudgetHandler{budget: budget, guard: guard}
}

// Register attaches budget routes to the mux.
func (h *BudgetHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/budget", h.guard.User(h.handleMonth))
	mux.HandleFunc("POST /api/budget", h.guard.User(h.handleCreateExpense))
	mux.HandleFunc("PUT /api/budget", h.guard.User(h.handleSetBudget))
	mux.HandleFunc("GET /api/budget/summary", h.guard.User(h.handleSummary))
	mux.HandleFunc("GET /api/budget/expenses", h.guard.User(h.handleExpenses))
	mux.HandleFunc("PUT /api/budget/expenses/{id}", h.guard.User(h.handleUpdateExpense))
	mux.HandleFunc("DELETE /api/budget/expenses/{id}", h.guard.User(h.handleDeleteExpense))
}

func (h *BudgetHandler) handleMonth(w http.ResponseWriter, r *http.Request) {
	month, err := h.budget.Month(r.Context(), userID(r), r.URL.Query().Get("month"))
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, month)
}

func (h *BudgetHandler) handleSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.budget.Summary(r.Context(), userID(r), r.URL.Query().Get("month"))
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, summary)
}

func (h *BudgetHandler) handleExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query, err := views.ParseExpenseQuery(q.Get("category"), q.Get("q"), q.Get("sort"), q.Get("order"))
	if err != nil {
		respond.HandleErr(w, r, invalid("query", err.Error()))
		return
	}
	list, err := h.budget.Expenses(r.Context(), userID(r), q.Get("month"), query)
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, list)
}

func (h *BudgetHandler) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePayload[dto.ExpenseRequest](w, r)
	if !ok {
		return
	}
	id, err := h.budget.CreateExpense(r.Context(), userID(r), req)
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.CreatedResponse{Success: true, ID: id})
}

func (h *BudgetHandler) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePayload[dto.BudgetRequest](w, r)
	if !ok {
		return
	}
	if err := h.budget.SetBudget(r.Context(), userID(r), req); err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *BudgetHandler) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	req, ok := decodePayload[dto.ExpenseRequest](w, r)
	if !ok {
		return
	}
	if err := h.budget.UpdateExpense(r.Context(), userID(r), id, req); err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}

func (h *BudgetHandler) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	if err := h.budget.DeleteExpense(r.Context(), userID(r), id); err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.SuccessResponse{Success: true})
}
