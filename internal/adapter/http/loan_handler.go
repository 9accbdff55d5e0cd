package http

import (
	"net/http"

	domain "prestamist-backend/internal/domain/loan"
	"prestamist-backend/internal/usecase/ledger"
	"prestamist-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
)

type LoanHandler struct{ uc *loan.Usecase }

func NewLoanHandler(uc *loan.Usecase) *LoanHandler { return &LoanHandler{uc: uc} }

type createLoanReq struct {
	Amount       float64 `json:"amount"        validate:"required,gt=0"`
	Currency     string  `json:"currency"      validate:"required,currency"`
	Description  string  `json:"description"`
	CreatorEmail string  `json:"creator_email" validate:"required,email"`
	Role         string  `json:"role"          validate:"required,loanrole"`
	OtherEmail   string  `json:"other_email"   validate:"omitempty,email"`
	OtherName    string  `json:"other_name"`
	IsOffline    bool    `json:"is_offline"`
	PaymentDate  *int64  `json:"payment_date"`
}

func (h *LoanHandler) CreateLoan(c echo.Context) error {
	var req createLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Create(c.Request().Context(), loan.CreateLoanInput(req))
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *LoanHandler) GetLoan(c echo.Context) error {
	loanID := c.Param("loan_id")
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: "not found"})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListLoans(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing email query param"})
	}
	dtos, err := h.uc.List(c.Request().Context(), email)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dtos)
}

type updateStatusReq struct {
	Status     string `json:"status"      validate:"required,loanstatus"`
	ActorEmail string `json:"actor_email" validate:"required,email"`
}

func (h *LoanHandler) UpdateLoanStatus(c echo.Context) error {
	loanID := c.Param("loan_id")
	if loanID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing loan_id path param"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: ToFieldErrors(err),
		})
	}
	dto, err := h.uc.Transition(c.Request().Context(), loanID, domain.Status(req.Status), req.ActorEmail)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) LoanHistory(c echo.Context) error {
	loanID := c.Param("loan_id")
	hist, err := h.uc.History(c.Request().Context(), loanID)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, hist)
}

type summaryResp struct {
	ledger.Summary
	PendingActions int `json:"pending_actions"`
}

// Summary aggregates the caller's loans into totals plus the count of
// loans waiting on them right now.
func (h *LoanHandler) Summary(c echo.Context) error {
	email := c.QueryParam("email")
	if email == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing email query param"})
	}
	loans, err := h.uc.ListDomain(c.Request().Context(), email)
	if err != nil {
		return c.JSON(statusFor(err), ErrorResponse{Error: err.Error()})
	}
	return c.JSON(http.StatusOK, summaryResp{
		Summary:        ledger.Summarize(loans, email),
		PendingActions: ledger.PendingActions(loans, email),
	})
}
