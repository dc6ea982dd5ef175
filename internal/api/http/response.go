package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"vehicle-rental-backend/internal/domain"
	"vehicle-rental-backend/internal/logger"
)

type intervalResponse struct {
	RentStartDate string `json:"rent_start_date"`
	RentEndDate   string `json:"rent_end_date"`
}

type errorResponse struct {
	Kind             domain.ErrorKind   `json:"kind"`
	Message          string             `json:"message"`
	ConflictingDates []intervalResponse `json:"conflicting_dates,omitempty"`
}

type rentalDetailsResponse struct {
	OrderID       int32              `json:"order_id"`
	UserID        int32              `json:"user_id"`
	VehicleID     int32              `json:"vehicle_id"`
	RentStartDate string             `json:"rent_start_date,omitempty"`
	RentEndDate   string             `json:"rent_end_date,omitempty"`
	RentalDays    int32              `json:"rental_days"`
	Terms         bool               `json:"terms"`
	LicenseImage  string             `json:"licenseImage,omitempty"`
	Status        domain.OrderStatus `json:"status"`
	GrandTotal    float64            `json:"grand_total"`
}

func mapOrderToResponse(o *domain.Order) rentalDetailsResponse {
	resp := rentalDetailsResponse{
		OrderID:    o.ID,
		UserID:     o.UserID,
		VehicleID:  o.VehicleID,
		RentalDays: o.RentalDays,
		Terms:      o.Terms,
		Status:     o.Status,
		GrandTotal: o.GrandTotal,
	}
	if o.RentStartDate != nil {
		resp.RentStartDate = o.RentStartDate.Format(domain.DateLayout)
	}
	if o.RentEndDate != nil {
		resp.RentEndDate = o.RentEndDate.Format(domain.DateLayout)
	}
	if o.LicenseImage != nil {
		resp.LicenseImage = *o.LicenseImage
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.ErrorKindValidation:
		return http.StatusBadRequest
	case domain.ErrorKindConflict, domain.ErrorKindAlreadyFinalized, domain.ErrorKindAlreadySettled:
		return http.StatusConflict
	case domain.ErrorKindNotFound:
		return http.StatusNotFound
	case domain.ErrorKindTransientStore:
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

// writeError renders a BookingError as its structured failure payload. Store
// failure details are logged, not returned.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var be *domain.BookingError
	if !errors.As(err, &be) {
		be = &domain.BookingError{Kind: domain.ErrorKindTransientStore, Message: "internal error", Err: err}
	}

	status := statusForKind(be.Kind)
	resp := errorResponse{Kind: be.Kind, Message: be.Message}
	if status == http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error("Request failed", "error", err, "path", r.URL.Path)
	}
	for _, iv := range be.Conflicts {
		resp.ConflictingDates = append(resp.ConflictingDates, intervalResponse{
			RentStartDate: iv.Start.Format(domain.DateLayout),
			RentEndDate:   iv.End.Format(domain.DateLayout),
		})
	}
	writeJSON(w, status, resp)
}

// writeValidation is shorthand for a 400 ValidationError payload.
func writeValidation(w http.ResponseWriter, r *http.Request, msg string) {
	writeError(w, r, domain.NewValidationError(msg))
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
