package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftOrder() *Order {
	return &Order{
		ID:              7,
		UserID:          1,
		VehicleID:       3,
		Status:          OrderStatusDraft,
		PaidStatus:      PaidStatusUnpaid,
		DeliveredStatus: DeliveredStatusNotDelivered,
	}
}

func TestOrderStatus(t *testing.T) {
	t.Run("Terminal", func(t *testing.T) {
		assert.False(t, OrderStatusDraft.IsTerminal())
		assert.False(t, OrderStatusPaymentPending.IsTerminal())
		assert.True(t, OrderStatusCompleted.IsTerminal())
		assert.True(t, OrderStatusCanceled.IsTerminal())
		assert.True(t, OrderStatusExpired.IsTerminal())
		assert.True(t, OrderStatus("bogus").IsTerminal())
	})

	t.Run("BlocksBooking", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]OrderStatus{OrderStatusDraft, OrderStatusPaymentPending, OrderStatusCompleted},
			BlockingStatuses())
		assert.False(t, OrderStatusCanceled.BlocksBooking())
		assert.False(t, OrderStatusExpired.BlocksBooking())
	})

	t.Run("Valid", func(t *testing.T) {
		assert.True(t, OrderStatusExpired.Valid())
		assert.False(t, OrderStatus("").Valid())
	})
}

func TestOrder_Finalize(t *testing.T) {
	period := iv("2027-01-10", "2027-01-12")

	t.Run("Success", func(t *testing.T) {
		o := draftOrder()
		require.NoError(t, o.Finalize(period, true, "rent_driving_license/a.png", 2, 80))

		assert.True(t, o.IsFinalized())
		assert.Equal(t, OrderStatusPaymentPending, o.Status)
		assert.Equal(t, int32(2), o.RentalDays)
		assert.Equal(t, 80.0, o.GrandTotal)
		got, ok := o.Interval()
		require.True(t, ok)
		assert.Equal(t, period, got)
	})

	t.Run("Write once", func(t *testing.T) {
		o := draftOrder()
		require.NoError(t, o.Finalize(period, true, "a.png", 2, 80))

		err := o.Finalize(iv("2027-02-01", "2027-02-03"), true, "b.png", 2, 80)
		assert.Equal(t, ErrorKindAlreadyFinalized, KindOf(err))
		assert.Equal(t, "a.png", *o.LicenseImage)
		assert.Equal(t, day("2027-01-10"), *o.RentStartDate)
	})

	t.Run("Terms not accepted", func(t *testing.T) {
		o := draftOrder()
		err := o.Finalize(period, false, "a.png", 2, 80)
		assert.Equal(t, ErrorKindValidation, KindOf(err))
		assert.False(t, o.IsFinalized())
		assert.Equal(t, OrderStatusDraft, o.Status)
	})

	t.Run("Missing license", func(t *testing.T) {
		o := draftOrder()
		err := o.Finalize(period, true, "", 2, 80)
		assert.Equal(t, ErrorKindValidation, KindOf(err))
		assert.Nil(t, o.LicenseImage)
	})

	t.Run("Terminal order", func(t *testing.T) {
		o := draftOrder()
		o.Status = OrderStatusExpired
		err := o.Finalize(period, true, "a.png", 2, 80)
		assert.Equal(t, ErrorKindValidation, KindOf(err))
	})
}

func TestOrder_SettleDeferred(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		o := draftOrder()
		o.Status = OrderStatusPaymentPending

		require.NoError(t, o.SettleDeferred())
		assert.Equal(t, OrderStatusCompleted, o.Status)
		assert.Equal(t, PaidStatusPending, o.PaidStatus)
		assert.Equal(t, DeliveredStatusNotDelivered, o.DeliveredStatus)
		assert.Equal(t, PaymentMethodCOD, o.PaymentMethod)
		require.NotNil(t, o.TransactionUUID)
		assert.Equal(t, TransactionUUIDNotApplicable, *o.TransactionUUID)
	})

	t.Run("Second settlement rejected", func(t *testing.T) {
		o := draftOrder()
		require.NoError(t, o.SettleDeferred())
		assert.Equal(t, ErrorKindAlreadySettled, KindOf(o.SettleDeferred()))
	})

	t.Run("Paid through gateway", func(t *testing.T) {
		o := draftOrder()
		o.Status = OrderStatusPaymentPending
		o.PaidStatus = PaidStatusPaid
		assert.Equal(t, ErrorKindAlreadySettled, KindOf(o.SettleDeferred()))
		assert.Equal(t, OrderStatusPaymentPending, o.Status)
	})

	t.Run("Canceled order", func(t *testing.T) {
		o := draftOrder()
		o.Status = OrderStatusCanceled
		assert.Equal(t, ErrorKindValidation, KindOf(o.SettleDeferred()))
	})
}
