package walletpay

import (
	"errors"
	"fmt"
)

// ErrorType identifies the session step an error surfaced from. It is the
// first argument to the [SessionConfig.OnError] callback.
type ErrorType string

const (
	ErrorTypeValidateMerchant          ErrorType = "VALIDATE_MERCHANT"            // Merchant validation round-trip failed.
	ErrorTypeProcessPayment            ErrorType = "PROCESS_PAYMENT"              // Payment processing round-trip failed.
	ErrorTypeOnPaymentMethodSelected   ErrorType = "ON_PAYMENT_METHOD_SELECTED"   // Payment method callback failed.
	ErrorTypeOnCouponCodeChanged       ErrorType = "ON_COUPON_CODE_CHANGED"       // Coupon code callback failed.
	ErrorTypeOnShippingMethodSelected  ErrorType = "ON_SHIPPING_METHOD_SELECTED"  // Shipping method callback failed.
	ErrorTypeOnShippingContactSelected ErrorType = "ON_SHIPPING_CONTACT_SELECTED" // Shipping contact callback failed.
)

// ErrSessionActive is returned by [ApplePaySession.Begin] while a previous
// payment attempt on the same controller has not reached a terminal state.
var ErrSessionActive = errors.New("walletpay: a payment session is already active")

// PreconditionError reports that a session could not be created. It is raised
// synchronously before any native session exists and before any network call.
type PreconditionError struct {
	Reason string
}

// Error makes *PreconditionError satisfy the stdlib error interface.
func (e *PreconditionError) Error() string {
	return "walletpay: " + e.Reason
}

func newPreconditionError(format string, args ...any) *PreconditionError {
	return &PreconditionError{Reason: fmt.Sprintf(format, args...)}
}

// GatewayError reports a failed merchant round-trip: a non-2xx response, an
// undecodable body, or an explicit failure marker inside a 2xx body.
type GatewayError struct {
	// Endpoint names the merchant operation, "validate-merchant" or
	// "process-payment".
	Endpoint string
	// Status is the HTTP status code, or 0 when the request never produced
	// a response.
	Status int
	Reason string
}

// Error makes *GatewayError satisfy the stdlib error interface.
func (e *GatewayError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("walletpay: %s: %s (status %d)", e.Endpoint, e.Reason, e.Status)
	}
	return fmt.Sprintf("walletpay: %s: %s", e.Endpoint, e.Reason)
}

func newGatewayError(endpoint string, status int, reason string) *GatewayError {
	return &GatewayError{Endpoint: endpoint, Status: status, Reason: reason}
}
