package walletpay

import "encoding/json"

// Platform is the host environment the SDK runs inside: a browser page, a
// WebView bridge, or a kiosk shell. It owns the wallet capability query, the
// document the payment button lives in, and construction of native sessions.
// Implement it once per host; tests substitute a double.
type Platform interface {
	// CanMakePayments reports whether the native wallet runtime is present
	// and able to pay on this device.
	CanMakePayments() bool
	// HasElement reports whether the document contains an element matching
	// the selector.
	HasElement(selector string) bool
	// RenderButton places the payment button inside the element matched by
	// button.Selector and arranges for onClick to run on user interaction.
	// Styling and markup are entirely the host's concern.
	RenderButton(button Button, onClick func()) error
	// NewSession constructs a native wallet session for the given wallet
	// version and payment request.
	NewSession(version int, request PaymentRequest) (NativeSession, error)
}

// NativeSession is the host-owned wallet session object for one payment
// attempt. Its internal state is opaque; the SDK only registers handlers and
// issues completion calls. Every delivered event must be resolved by exactly
// one terminal call: the matching Complete* method or Abort.
type NativeSession interface {
	// Handler registration. A handler left unset tells the runtime to apply
	// its own default behavior for that event.
	SetValidateMerchant(handler func(validationURL string))
	SetPaymentAuthorized(handler func(payment Payment))
	SetPaymentMethodSelected(handler func(paymentMethod PaymentMethod))
	SetCouponCodeChanged(handler func(couponCode string))
	SetShippingMethodSelected(handler func(shippingMethod ShippingMethod))
	SetShippingContactSelected(handler func(shippingContact PaymentContact))
	SetCancel(handler func())

	// Terminal completion calls, one-shot per delivered event.
	CompleteMerchantValidation(merchantSession json.RawMessage)
	CompletePaymentMethodSelection(update PaymentMethodUpdate)
	CompleteCouponCodeChange(update CouponCodeUpdate)
	CompleteShippingMethodSelection(update ShippingMethodUpdate)
	CompleteShippingContactSelection(update ShippingContactUpdate)
	CompletePayment(status PaymentStatus)

	// Begin shows the payment sheet and starts event delivery.
	Begin()
	// Abort tears the session down mid-flight.
	Abort()
}
