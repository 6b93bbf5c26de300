package walletpay

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// SessionState tracks where a payment attempt currently is.
type SessionState string

// Defines values for SessionState.
const (
	SessionStateIdle               SessionState = "idle"
	SessionStateStarted            SessionState = "started"
	SessionStateValidatingMerchant SessionState = "validating_merchant"
	SessionStateAwaitingSelection  SessionState = "awaiting_selection"
	SessionStateAuthorizing        SessionState = "authorizing"
	SessionStateCompleted          SessionState = "completed"
	SessionStateFailed             SessionState = "failed"
	SessionStateCancelled          SessionState = "cancelled"
)

// SessionConfig is the immutable input for one checkout attempt. The embedded
// [PaymentRequest] is handed to the native runtime as-is; the remaining fields
// configure the merchant round-trips and the business callbacks. A callback
// left nil means the matching native event is never registered and the runtime
// applies its own default behavior.
type SessionConfig struct {
	PaymentRequest

	// ApplePayVersion selects the wallet API version the session is
	// constructed with.
	ApplePayVersion int `json:"-" validate:"required,min=1"`
	// ValidateMerchantURL is the merchant backend endpoint that exchanges a
	// native validation URL for a merchant session object.
	ValidateMerchantURL string `json:"-" validate:"required,http_url"`
	// ProcessPaymentURL is the merchant backend endpoint that receives the
	// authorization payload.
	ProcessPaymentURL string `json:"-" validate:"required,http_url"`
	// MerchantValidationData is forwarded verbatim inside every merchant
	// validation request body.
	MerchantValidationData map[string]string `json:"-"`

	OnPaymentMethodSelected   func(PaymentMethod) (PaymentMethodUpdate, error)    `json:"-"`
	OnCouponCodeChanged       func(couponCode string) (CouponCodeUpdate, error)   `json:"-"`
	OnShippingMethodSelected  func(ShippingMethod) (ShippingMethodUpdate, error)  `json:"-"`
	OnShippingContactSelected func(PaymentContact) (ShippingContactUpdate, error) `json:"-"`
	OnCancel                  func()                                              `json:"-"`
	OnError                   func(ErrorType, error)                              `json:"-"`
}

// ApplePaySession owns one wallet payment session's lifecycle: it wires
// native events to the configured business callbacks and the merchant
// gateway, and guarantees that every delivered native event is resolved by
// exactly one terminal completion call, on success and on error alike.
type ApplePaySession struct {
	config   SessionConfig
	platform Platform
	gateway  *MerchantGateway
	logger   zerolog.Logger

	mu     sync.Mutex
	state  SessionState
	native NativeSession
}

// NewApplePaySession validates the config and the environment, renders the
// payment button through the platform, and returns a controller ready to
// begin a session on user interaction. It fails with [*PreconditionError]
// and without side effects when the wallet capability is missing, the button
// target does not exist, or the config is invalid. No network traffic occurs
// before the user interacts with the button.
func NewApplePaySession(platform Platform, config SessionConfig, button Button, opts ...Option) (*ApplePaySession, error) {
	if platform == nil {
		panic("walletpay: platform is required")
	}
	if err := config.Validate(); err != nil {
		return nil, newPreconditionError("invalid session config: %v", err)
	}
	if button.Selector == "" {
		return nil, newPreconditionError("button selector is required")
	}
	if !platform.CanMakePayments() {
		return nil, newPreconditionError("apple pay is not available")
	}
	if !platform.HasElement(button.Selector) {
		return nil, newPreconditionError("button selector %q does not exist", button.Selector)
	}

	cfg := newConfig(opts...)
	s := &ApplePaySession{
		config:   config,
		platform: platform,
		gateway:  NewMerchantGateway(config.ValidateMerchantURL, config.ProcessPaymentURL, config.MerchantValidationData, opts...),
		logger:   cfg.logger,
		state:    SessionStateIdle,
	}
	if err := platform.RenderButton(button, func() {
		if err := s.Begin(context.Background()); err != nil {
			s.logger.Error().Err(err).Msg("begin payment session")
		}
	}); err != nil {
		return nil, newPreconditionError("render button: %v", err)
	}
	return s, nil
}

// Begin starts a payment attempt: it constructs the native session, registers
// one handler per supported event, and shows the payment sheet. The platform
// invokes it on button interaction; hosts that own their interaction handling
// may call it directly. ctx bounds every merchant round-trip of the attempt.
// At most one session is active per controller; Begin returns
// [ErrSessionActive] while a previous attempt has not reached a terminal
// state.
func (s *ApplePaySession) Begin(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	s.mu.Lock()
	switch s.state {
	case SessionStateIdle, SessionStateCompleted, SessionStateFailed, SessionStateCancelled:
	default:
		s.mu.Unlock()
		return ErrSessionActive
	}
	native, err := s.platform.NewSession(s.config.ApplePayVersion, s.config.PaymentRequest)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.native = native
	s.state = SessionStateStarted
	s.mu.Unlock()

	s.register(ctx, native)
	s.logger.Info().Msg("payment session started")
	native.Begin()
	return nil
}

// State returns the current session state.
func (s *ApplePaySession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *ApplePaySession) register(ctx context.Context, native NativeSession) {
	native.SetValidateMerchant(func(validationURL string) {
		s.setState(SessionStateValidatingMerchant)
		merchantSession, err := s.gateway.ValidateMerchant(ctx, validationURL)
		if err != nil {
			s.fail(native, ErrorTypeValidateMerchant, err)
			return
		}
		if s.completeNative(func() { native.CompleteMerchantValidation(merchantSession) }) {
			s.setState(SessionStateAwaitingSelection)
		}
	})

	native.SetPaymentAuthorized(func(payment Payment) {
		s.setState(SessionStateAuthorizing)
		success, err := s.gateway.ProcessPayment(ctx, payment)
		switch {
		case err != nil:
			if s.completeNative(func() { native.CompletePayment(PaymentStatusFailure) }) {
				s.setState(SessionStateFailed)
				s.reportError(ErrorTypeProcessPayment, err)
			}
		case success:
			if s.completeNative(func() { native.CompletePayment(PaymentStatusSuccess) }) {
				s.setState(SessionStateCompleted)
				s.logger.Info().Msg("payment session completed")
			}
		default:
			// Backend declined without erroring: failure status, no
			// error callback.
			if s.completeNative(func() { native.CompletePayment(PaymentStatusFailure) }) {
				s.setState(SessionStateFailed)
			}
		}
	})

	// The four update events share one shape: run the business callback,
	// forward its update to the matching completion call, abort on failure.
	if cb := s.config.OnPaymentMethodSelected; cb != nil {
		native.SetPaymentMethodSelected(func(paymentMethod PaymentMethod) {
			s.handleUpdate(native, ErrorTypeOnPaymentMethodSelected, func() (func(), error) {
				update, err := cb(paymentMethod)
				if err != nil {
					return nil, err
				}
				return func() { native.CompletePaymentMethodSelection(update) }, nil
			})
		})
	}
	if cb := s.config.OnCouponCodeChanged; cb != nil {
		native.SetCouponCodeChanged(func(couponCode string) {
			s.handleUpdate(native, ErrorTypeOnCouponCodeChanged, func() (func(), error) {
				update, err := cb(couponCode)
				if err != nil {
					return nil, err
				}
				return func() { native.CompleteCouponCodeChange(update) }, nil
			})
		})
	}
	if cb := s.config.OnShippingMethodSelected; cb != nil {
		native.SetShippingMethodSelected(func(shippingMethod ShippingMethod) {
			s.handleUpdate(native, ErrorTypeOnShippingMethodSelected, func() (func(), error) {
				update, err := cb(shippingMethod)
				if err != nil {
					return nil, err
				}
				return func() { native.CompleteShippingMethodSelection(update) }, nil
			})
		})
	}
	if cb := s.config.OnShippingContactSelected; cb != nil {
		native.SetShippingContactSelected(func(shippingContact PaymentContact) {
			s.handleUpdate(native, ErrorTypeOnShippingContactSelected, func() (func(), error) {
				update, err := cb(shippingContact)
				if err != nil {
					return nil, err
				}
				return func() { native.CompleteShippingContactSelection(update) }, nil
			})
		})
	}

	// Cancel is always registered: the cancelled flag is what keeps
	// late-resolving handlers from touching a session the runtime has
	// already torn down.
	native.SetCancel(func() {
		s.setCancelled()
		s.logger.Info().Msg("payment session cancelled")
		if s.config.OnCancel != nil {
			s.config.OnCancel()
		}
	})
}

// handleUpdate resolves one selection event with exactly one terminal call.
func (s *ApplePaySession) handleUpdate(native NativeSession, errType ErrorType, run func() (func(), error)) {
	complete, err := run()
	if err != nil {
		s.fail(native, errType, err)
		return
	}
	_ = s.completeNative(complete)
}

// fail aborts the native session and surfaces the typed error.
func (s *ApplePaySession) fail(native NativeSession, errType ErrorType, err error) {
	if !s.completeNative(native.Abort) {
		return
	}
	s.setState(SessionStateFailed)
	s.reportError(errType, err)
}

func (s *ApplePaySession) reportError(errType ErrorType, err error) {
	s.logger.Error().Err(err).Str("type", string(errType)).Msg("payment session error")
	if s.config.OnError != nil {
		s.config.OnError(errType, err)
	}
}

// completeNative issues one terminal native call unless the user already
// cancelled the session. After a cancel the runtime no longer expects
// completion calls, so a later-resolving handler becomes a no-op.
func (s *ApplePaySession) completeNative(complete func()) bool {
	s.mu.Lock()
	if s.state == SessionStateCancelled {
		s.mu.Unlock()
		return false
	}
	s.mu.Unlock()
	complete()
	return true
}

func (s *ApplePaySession) setState(state SessionState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Cancelled is terminal for the attempt; nothing overrides it.
	if s.state == SessionStateCancelled {
		return
	}
	s.state = state
}

func (s *ApplePaySession) setCancelled() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = SessionStateCancelled
}
