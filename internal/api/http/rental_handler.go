package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"vehicle-rental-backend/internal/domain"
	"vehicle-rental-backend/internal/logger"
	"vehicle-rental-backend/internal/service"
	"vehicle-rental-backend/internal/storage"
	"vehicle-rental-backend/internal/utils"
)

const (
	licenseFormField = "licenseImage"
	multipartMemory  = 1 << 20
	formOverhead     = 1 << 20
)

var validateRentalForm = validator.New()

// rentalForm holds the text fields of the finalize-booking multipart form.
type rentalForm struct {
	RentStartDate string `validate:"required"`
	RentEndDate   string `validate:"required"`
	Terms         string `validate:"required"`
}

// RentalHandler serves the booking finalization and settlement endpoints.
type RentalHandler struct {
	bookings       service.BookingService
	documents      storage.DocumentStorage
	maxUploadBytes int64
}

// NewRentalHandler creates a handler. maxFileSize bounds the license upload.
func NewRentalHandler(bookings service.BookingService, documents storage.DocumentStorage, maxFileSize int64) *RentalHandler {
	return &RentalHandler{
		bookings:       bookings,
		documents:      documents,
		maxUploadBytes: maxFileSize + formOverhead,
	}
}

// FinalizeRental handles PATCH /api/v1/rent/{user_id}/{vehicle_id}/{order_id}.
func (h *RentalHandler) FinalizeRental(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := GetUserIDFromContext(ctx)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token required.")
		return
	}

	vars := mux.Vars(r)
	pathUserID, err := parseID(vars["user_id"])
	if err != nil {
		writeValidation(w, r, "invalid user id")
		return
	}
	vehicleID, err := parseID(vars["vehicle_id"])
	if err != nil {
		writeValidation(w, r, "invalid vehicle id")
		return
	}
	orderID, err := parseID(vars["order_id"])
	if err != nil {
		writeValidation(w, r, "invalid order id")
		return
	}
	if pathUserID != userID {
		writeMessage(w, http.StatusForbidden, "You can only book on your own behalf.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeValidation(w, r, storage.ErrFileTooLarge.Error())
			return
		}
		writeValidation(w, r, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	form := rentalForm{
		RentStartDate: r.FormValue("rent_start_date"),
		RentEndDate:   r.FormValue("rent_end_date"),
		Terms:         r.FormValue("terms"),
	}
	if err := validateRentalForm.Struct(form); err != nil {
		writeValidation(w, r, "all rental details are required")
		return
	}

	start, err := utils.ParseDate(form.RentStartDate)
	if err != nil {
		writeValidation(w, r, "rent_start_date: "+err.Error())
		return
	}
	end, err := utils.ParseDate(form.RentEndDate)
	if err != nil {
		writeValidation(w, r, "rent_end_date: "+err.Error())
		return
	}
	terms, err := strconv.ParseBool(strings.TrimSpace(form.Terms))
	if err != nil {
		writeValidation(w, r, "terms must be true or false")
		return
	}

	file, header, err := r.FormFile(licenseFormField)
	if err != nil {
		writeValidation(w, r, "all rental details are required")
		return
	}
	defer file.Close()

	ref, err := h.documents.Save(ctx, header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		if errors.Is(err, storage.ErrDisallowedType) || errors.Is(err, storage.ErrFileTooLarge) {
			writeValidation(w, r, err.Error())
			return
		}
		writeError(w, r, domain.NewTransientStoreError("store license image", err))
		return
	}

	order, err := h.bookings.FinalizeBooking(ctx, service.FinalizeBookingRequest{
		OrderID:       orderID,
		UserID:        userID,
		VehicleID:     vehicleID,
		Interval:      domain.Interval{Start: start, End: end},
		TermsAccepted: terms,
		LicenseRef:    ref,
	})
	if err != nil {
		// The upload is only kept for a successful booking.
		if delErr := h.documents.Delete(ctx, ref); delErr != nil {
			logger.FromContext(ctx).Warn("Failed to remove rejected license upload", "ref", ref, "error", delErr)
		}
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message":       "Rental details updated successfully.",
		"rentalDetails": mapOrderToResponse(order),
	})
}

// SettleCOD handles PATCH /api/v1/rent/cod/{order_id}.
func (h *RentalHandler) SettleCOD(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token required.")
		return
	}
	orderID, err := parseID(mux.Vars(r)["order_id"])
	if err != nil {
		writeValidation(w, r, "invalid order id")
		return
	}

	order, err := h.bookings.SettleDeferred(r.Context(), userID, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := map[string]any{
		"message":          "Order settled with cash on delivery.",
		"order_id":         order.ID,
		"status":           order.Status,
		"paid_status":      order.PaidStatus,
		"delivered_status": order.DeliveredStatus,
		"payment_method":   order.PaymentMethod,
	}
	if order.TransactionUUID != nil {
		resp["transaction_uuid"] = *order.TransactionUUID
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetOrder handles GET /api/v1/orders/{order_id}.
func (h *RentalHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "Token required.")
		return
	}
	orderID, err := parseID(mux.Vars(r)["order_id"])
	if err != nil {
		writeValidation(w, r, "invalid order id")
		return
	}

	order, err := h.bookings.GetOrder(r.Context(), userID, orderID)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func parseID(s string) (int32, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if id <= 0 {
		return 0, errors.New("id must be positive")
	}
	return int32(id), nil
}
