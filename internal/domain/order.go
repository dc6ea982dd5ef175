package domain

import (
	"fmt"
	"time"
)

type OrderStatus string

const (
	OrderStatusDraft          OrderStatus = "draft"
	OrderStatusPaymentPending OrderStatus = "payment_pending"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCanceled       OrderStatus = "canceled"
	OrderStatusExpired        OrderStatus = "expired"
)

// Valid reports whether s is one of the known order statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPaymentPending, OrderStatusCompleted, OrderStatusCanceled, OrderStatusExpired:
		return true
	}
	return false
}

// IsTerminal reports whether no lifecycle transition may leave s.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case OrderStatusCompleted, OrderStatusCanceled, OrderStatusExpired:
		return true
	case OrderStatusDraft, OrderStatusPaymentPending:
		return false
	}
	// Unknown statuses are never transitioned.
	return true
}

// BlocksBooking reports whether an order in status s holds its dates against
// other bookings of the same vehicle.
func (s OrderStatus) BlocksBooking() bool {
	switch s {
	case OrderStatusDraft, OrderStatusPaymentPending, OrderStatusCompleted:
		return true
	case OrderStatusCanceled, OrderStatusExpired:
		return false
	}
	return false
}

// BlockingStatuses lists every status for which BlocksBooking is true.
func BlockingStatuses() []OrderStatus {
	all := []OrderStatus{
		OrderStatusDraft,
		OrderStatusPaymentPending,
		OrderStatusCompleted,
		OrderStatusCanceled,
		OrderStatusExpired,
	}
	var out []OrderStatus
	for _, s := range all {
		if s.BlocksBooking() {
			out = append(out, s)
		}
	}
	return out
}

type PaidStatus string

const (
	PaidStatusUnpaid  PaidStatus = "unpaid"
	PaidStatusPending PaidStatus = "pending" // settlement deferred until handoff
	PaidStatusPaid    PaidStatus = "paid"
)

type DeliveredStatus string

const (
	DeliveredStatusNotDelivered DeliveredStatus = "not_delivered"
	DeliveredStatusDelivered    DeliveredStatus = "delivered"
)

type PaymentMethod string

const (
	PaymentMethodNone    PaymentMethod = ""
	PaymentMethodCOD     PaymentMethod = "COD"
	PaymentMethodGateway PaymentMethod = "gateway"
)

// TransactionUUIDNotApplicable marks orders settled outside the payment gateway.
const TransactionUUIDNotApplicable = "N/A"

// Order is a reservation of one vehicle by one user.
type Order struct {
	ID              int32           `json:"order_id"`
	UserID          int32           `json:"user_id"`
	VehicleID       int32           `json:"vehicle_id"`
	RentStartDate   *time.Time      `json:"rent_start_date,omitempty"`
	RentEndDate     *time.Time      `json:"rent_end_date,omitempty"`
	RentalDays      int32           `json:"rental_days"`
	Terms           bool            `json:"terms"`
	LicenseImage    *string         `json:"licenseImage,omitempty"`
	GrandTotal      float64         `json:"grand_total"`
	Status          OrderStatus     `json:"status"`
	PaidStatus      PaidStatus      `json:"paid_status"`
	DeliveredStatus DeliveredStatus `json:"delivered_status"`
	PaymentMethod   PaymentMethod   `json:"payment_method"`
	TransactionUUID *string         `json:"transaction_uuid,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// IsFinalized reports whether rental details have been attached. Finalization
// is write-once.
func (o *Order) IsFinalized() bool {
	return o.RentStartDate != nil && o.RentEndDate != nil && o.Terms &&
		o.LicenseImage != nil && *o.LicenseImage != ""
}

// Interval returns the stored rental interval, if any.
func (o *Order) Interval() (Interval, bool) {
	if o.RentStartDate == nil || o.RentEndDate == nil {
		return Interval{}, false
	}
	return Interval{Start: *o.RentStartDate, End: *o.RentEndDate}, true
}

// Finalize attaches rental details and moves the order to payment_pending.
// The order is left untouched when an error is returned.
func (o *Order) Finalize(interval Interval, terms bool, licenseRef string, days int32, total float64) error {
	if o.IsFinalized() {
		return NewAlreadyFinalizedError(o.ID)
	}
	if o.Status.IsTerminal() {
		return NewValidationError(fmt.Sprintf("order %d cannot be finalized from status %s", o.ID, o.Status))
	}
	if !terms {
		return NewValidationError("you must accept the terms and conditions")
	}
	if licenseRef == "" {
		return NewValidationError("a driving license image is required")
	}
	if days <= 0 {
		return NewValidationError("invalid rental period")
	}

	start, end := interval.Start, interval.End
	o.RentStartDate = &start
	o.RentEndDate = &end
	o.Terms = true
	o.LicenseImage = &licenseRef
	o.RentalDays = days
	o.GrandTotal = total
	o.Status = OrderStatusPaymentPending
	return nil
}

// IsSettled reports whether the order's payment obligation is already met.
func (o *Order) IsSettled() bool {
	return o.Status == OrderStatusCompleted || o.PaidStatus == PaidStatusPaid
}

// SettleDeferred completes the order with cash on delivery.
func (o *Order) SettleDeferred() error {
	if o.IsSettled() {
		return NewAlreadySettledError(o.ID)
	}
	if o.Status.IsTerminal() {
		return NewValidationError(fmt.Sprintf("order %d is %s and cannot be settled", o.ID, o.Status))
	}

	na := TransactionUUIDNotApplicable
	o.Status = OrderStatusCompleted
	o.PaidStatus = PaidStatusPending
	o.DeliveredStatus = DeliveredStatusNotDelivered
	o.TransactionUUID = &na
	o.PaymentMethod = PaymentMethodCOD
	return nil
}
