package handlers

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/mcgigglepop/react-native-macro-tracker/internal/domain"
	"github.com/mcgigglepop/react-native-macro-tracker/internal/middleware"
	"github.com/mcgigglepop/react-native-macro-tracker/internal/service/tracker"
	"github.com/mcgigglepop/react-native-macro-tracker/pkg/api"
)

// FoodHandler handles food-record HTTP requests with injected dependencies.
type FoodHandler struct {
	trackerService tracker.Service
	validate       *validator.Validate
	logger         *zap.Logger
}

// NewFoodHandler creates a new food handler.
func NewFoodHandler(trackerService tracker.Service, logger *zap.Logger) *FoodHandler {
	return &FoodHandler{
		trackerService: trackerService,
		validate:       validator.New(),
		logger:         logger,
	}
}

type logFoodRequest struct {
	Name     string   `json:"name" validate:"required"`
	Protein  float64  `json:"protein" validate:"gte=0"`
	Carbs    float64  `json:"carbs" validate:"gte=0"`
	Fat      float64  `json:"fat" validate:"gte=0"`
	Calories *float64 `json:"calories,omitempty" validate:"omitempty,gte=0"`
	Date     string   `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Quantity *float64 `json:"quantity,omitempty" validate:"omitempty,gt=0"`
}

type bulkDeleteRequest struct {
	Keys []string `json:"keys" validate:"required,min=1,max=100,dive,required"`
}

// LogFood handles POST /api/food-records.
func (h *FoodHandler) LogFood(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req logFoodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	record, err := h.trackerService.LogFood(r.Context(), userID, tracker.LogFoodInput{
		Name:     req.Name,
		Protein:  req.Protein,
		Carbs:    req.Carbs,
		Fat:      req.Fat,
		Calories: req.Calories,
		Date:     req.Date,
		Quantity: req.Quantity,
	})
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	api.Success(w, http.StatusCreated, map[string]interface{}{"data": record})
}

// GetDay handles GET /api/food-records. The date query parameter defaults to
// today when absent.
func (h *FoodHandler) GetDay(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		date = domain.Today()
	}

	records, err := h.trackerService.GetDay(r.Context(), userID, date)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	api.Success(w, http.StatusOK, map[string]interface{}{
		"data":  records,
		"date":  date,
		"count": len(records),
	})
}

// GetRange handles GET /api/food-records-range.
func (h *FoodHandler) GetRange(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	startDate := r.URL.Query().Get("startDate")
	endDate := r.URL.Query().Get("endDate")
	if startDate == "" || endDate == "" {
		api.Error(w, http.StatusBadRequest, "startDate and endDate are required")
		return
	}

	totals, err := h.trackerService.AggregateRange(r.Context(), userID, startDate, endDate)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	api.Success(w, http.StatusOK, map[string]interface{}{
		"data":        totals,
		"startDate":   startDate,
		"endDate":     endDate,
		"daysInRange": len(totals),
	})
}

// GetStats handles GET /api/food-records/stats, serving both rolling windows
// for the dashboard.
func (h *FoodHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	selectedDate := r.URL.Query().Get("selectedDate")
	if selectedDate == "" {
		api.Error(w, http.StatusBadRequest, "selectedDate is required")
		return
	}
	today := r.URL.Query().Get("today")
	if today == "" {
		today = domain.Today()
	}

	stats, err := h.trackerService.Stats(r.Context(), userID, selectedDate, today)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	api.Success(w, http.StatusOK, map[string]interface{}{"data": stats})
}

// DeleteRecord handles DELETE /api/food-records/{recordKey}. The key arrives
// URL-encoded because it contains '#' separators.
func (h *FoodHandler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	recordKey := chi.URLParam(r, "recordKey")
	decoded, err := url.PathUnescape(recordKey)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid record key encoding")
		return
	}

	if err := h.trackerService.DeleteRecord(r.Context(), userID, decoded); err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	api.Success(w, http.StatusNoContent, nil)
}

// BulkDelete handles POST /api/food-records/bulk-delete.
func (h *FoodHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req bulkDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		api.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.trackerService.BulkDelete(r.Context(), userID, req.Keys)
	if err != nil {
		handleServiceError(w, err, h.logger)
		return
	}

	api.Success(w, http.StatusOK, map[string]interface{}{"data": result})
}

// Health handles GET /api/health.
func (h *FoodHandler) Health(w http.ResponseWriter, r *http.Request) {
	api.Success(w, http.StatusOK, map[string]string{"status": "ok"})
}
