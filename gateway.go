package walletpay

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	canonicaljson "github.com/gibson042/canonicaljson-go"
	"github.com/oapi-codegen/runtime"
	"github.com/rs/zerolog"
)

// Merchant endpoint labels used in [GatewayError].
const (
	endpointValidateMerchant = "validate-merchant"
	endpointProcessPayment   = "process-payment"
)

// MerchantGateway performs the two merchant-owned HTTP round-trips of a
// payment session. Both operations are single-shot: no retries, no internal
// timeout. Callers bound them through the request context.
type MerchantGateway struct {
	validateMerchantURL string
	processPaymentURL   string
	validationData      map[string]string
	client              *http.Client
	logger              zerolog.Logger
}

// NewMerchantGateway builds a gateway for the given merchant endpoints.
// validationData is forwarded verbatim inside every merchant validation
// request body, alongside the native validation URL.
func NewMerchantGateway(validateMerchantURL, processPaymentURL string, validationData map[string]string, opts ...Option) *MerchantGateway {
	cfg := newConfig(opts...)
	return &MerchantGateway{
		validateMerchantURL: validateMerchantURL,
		processPaymentURL:   processPaymentURL,
		validationData:      validationData,
		client:              cfg.httpClient,
		logger:              cfg.logger,
	}
}

// ValidateMerchant asks the merchant backend to prove its identity to the
// wallet network. The 2xx response body is returned verbatim; the native
// runtime consumes it as an opaque merchant session object. A body carrying
// the explicit failure marker (statusCode "400") fails even on HTTP 200.
func (g *MerchantGateway) ValidateMerchant(ctx context.Context, validationURL string) (json.RawMessage, error) {
	body, err := g.validationBody(validationURL)
	if err != nil {
		return nil, newGatewayError(endpointValidateMerchant, 0, "encode request: "+err.Error())
	}

	g.logger.Debug().Str("url", g.validateMerchantURL).Msg("validating merchant")
	resp, err := postJSON(ctx, g.client, g.validateMerchantURL, body)
	if err != nil {
		return nil, newGatewayError(endpointValidateMerchant, 0, err.Error())
	}
	defer func() { _ = resp.Body.Close() }()

	if !isSuccess(resp.StatusCode) {
		return nil, newGatewayError(endpointValidateMerchant, resp.StatusCode, "merchant validation failed")
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newGatewayError(endpointValidateMerchant, resp.StatusCode, "read response: "+err.Error())
	}
	var marker struct {
		StatusCode string `json:"statusCode"`
	}
	if err := json.Unmarshal(raw, &marker); err != nil {
		return nil, newGatewayError(endpointValidateMerchant, resp.StatusCode, "invalid merchant session body")
	}
	if marker.StatusCode == "400" {
		return nil, newGatewayError(endpointValidateMerchant, resp.StatusCode, "merchant reported validation failure")
	}
	g.logger.Debug().Msg("merchant validated")
	return json.RawMessage(raw), nil
}

// ProcessPayment forwards the native authorization payload to the merchant
// backend and returns the backend-reported success flag. A missing success
// field reads as false; only transport and decode failures are errors.
func (g *MerchantGateway) ProcessPayment(ctx context.Context, payment Payment) (bool, error) {
	body, err := json.Marshal(payment)
	if err != nil {
		return false, newGatewayError(endpointProcessPayment, 0, "encode payment: "+err.Error())
	}

	g.logger.Debug().Str("url", g.processPaymentURL).Msg("processing payment")
	resp, err := postJSON(ctx, g.client, g.processPaymentURL, body)
	if err != nil {
		return false, newGatewayError(endpointProcessPayment, 0, err.Error())
	}
	if !isSuccess(resp.StatusCode) {
		_ = resp.Body.Close()
		return false, newGatewayError(endpointProcessPayment, resp.StatusCode, "payment processing failed")
	}
	var result struct {
		Success bool `json:"success"`
	}
	if err := decodeJSONBody(resp.Body, &result); err != nil {
		return false, newGatewayError(endpointProcessPayment, resp.StatusCode, "invalid payment response: "+err.Error())
	}
	g.logger.Debug().Bool("success", result.Success).Msg("payment processed")
	return result.Success, nil
}

// validationBody merges the opaque merchant validation data into the base
// request. Canonical JSON keeps the byte layout stable so merchant-side
// request de-duplication or signing sees identical bodies for identical
// inputs.
func (g *MerchantGateway) validationBody(validationURL string) ([]byte, error) {
	base, err := canonicaljson.Marshal(map[string]string{"validationURL": validationURL})
	if err != nil {
		return nil, err
	}
	if len(g.validationData) == 0 {
		return base, nil
	}
	extra, err := canonicaljson.Marshal(g.validationData)
	if err != nil {
		return nil, err
	}
	merged, err := runtime.JSONMerge(base, extra)
	if err != nil {
		return nil, err
	}
	return merged, nil
}
