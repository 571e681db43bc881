package http

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/ik-portal/hr-backend/internal/domain/payroll"
	"github.com/ik-portal/hr-backend/internal/handler/http/response"
	"github.com/ik-portal/hr-backend/internal/pkg/validator"
)

type PayrollHandler interface {
	// Runs
	Generate(w http.ResponseWriter, r *http.Request)
	Preview(w http.ResponseWriter, r *http.Request)
	MarkPaid(w http.ResponseWriter, r *http.Request)

	// Records
	ListPayrolls(w http.ResponseWriter, r *http.Request)
	GetPayroll(w http.ResponseWriter, r *http.Request)
	ListMyPayrolls(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.PayrollService
}

func NewPayrollHandler(payrollService payroll.PayrollService) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	return id, err == nil && id > 0
}

// ========== RUNS ==========

func (h *payrollHandlerImpl) Generate(w http.ResponseWriter, r *http.Request) {
	var req payroll.GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Generate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, result.Message, result)
}

func (h *payrollHandlerImpl) Preview(w http.ResponseWriter, r *http.Request) {
	var req payroll.PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Preview(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.BadRequest(w, "Invalid payroll ID", nil)
		return
	}

	if err := h.payrollService.MarkPaid(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll marked as paid", nil)
}

// ========== RECORDS ==========

func (h *payrollHandlerImpl) ListPayrolls(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	var (
		filter payroll.PayrollFilter
		errs   validator.ValidationErrors
	)

	year, verr := validator.ParseIntInRange("yil", query.Get("yil"), 1, 9999)
	if verr != nil {
		errs = append(errs, *verr)
	} else if year != nil {
		v := int(*year)
		filter.Yil = &v
	}

	month, verr := validator.ParseIntInRange("ay", query.Get("ay"), 1, 12)
	if verr != nil {
		errs = append(errs, *verr)
	} else if month != nil {
		v := int(*month)
		filter.Ay = &v
	}

	employeeID, verr := validator.ParseIntInRange("personel_id", query.Get("personel_id"), 1, math.MaxInt64)
	if verr != nil {
		errs = append(errs, *verr)
	} else {
		filter.PersonelID = employeeID
	}

	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.payrollService.ListPayrolls(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetPayroll(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		response.BadRequest(w, "Invalid payroll ID", nil)
		return
	}

	result, err := h.payrollService.GetPayroll(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListMyPayrolls(w http.ResponseWriter, r *http.Request) {
	result, err := h.payrollService.ListMyPayrolls(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
