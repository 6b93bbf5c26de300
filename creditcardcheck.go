package walletpay

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/payzero/walletpay/signing"
)

// CheckStatus defines model for CreditCardCheckResponse.Status.
type CheckStatus string

// Defines values for CheckStatus.
const (
	CheckStatusValid   CheckStatus = "VALID"
	CheckStatusInvalid CheckStatus = "INVALID"
	CheckStatusError   CheckStatus = "ERROR"
)

// CardData is the raw card input for a credit card check. It never passes
// through the merchant backend; it travels directly to the Client API.
type CardData struct {
	CardPan         string `json:"cardpan"`
	CardCVC2        string `json:"cardcvc2"`
	CardExpireMonth string `json:"cardexpiremonth"`
	CardExpireYear  string `json:"cardexpireyear"`
	CardType        string `json:"cardtype"`
}

// CreditCardCheckResponse is the Client API answer to a check request. On
// VALID, PseudoCardPan is the token the merchant stores in place of the card
// number.
type CreditCardCheckResponse struct {
	Status           CheckStatus `json:"status"`
	PseudoCardPan    string      `json:"pseudocardpan,omitempty"`
	TruncatedCardPan string      `json:"truncatedcardpan,omitempty"`
	CardType         string      `json:"cardtype,omitempty"`
	CardExpireDate   string      `json:"cardexpiredate,omitempty"`
	ErrorCode        string      `json:"errorcode,omitempty"`
	ErrorMessage     string      `json:"errormessage,omitempty"`
	CustomerMessage  string      `json:"customermessage,omitempty"`
}

// CreditCardCheck performs the signed tokenization round-trip the hosted
// widget runs under the hood: it authenticates a check request with the PMI
// portal key and exchanges raw card data for a pseudo card pan.
type CreditCardCheck struct {
	request  signing.Request
	endpoint string
	client   *http.Client
	logger   zerolog.Logger
}

// NewCreditCardCheck validates and signs the check request with the shared
// portal key. The key itself is not retained.
func NewCreditCardCheck(request signing.Request, portalKey []byte, opts ...Option) (*CreditCardCheck, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}
	cfg := newConfig(opts...)
	return &CreditCardCheck{
		request:  signing.Signed(request, portalKey),
		endpoint: cfg.clientAPIEndpoint,
		client:   cfg.httpClient,
		logger:   cfg.logger,
	}, nil
}

// Request returns the signed request, hash included.
func (c *CreditCardCheck) Request() signing.Request {
	return c.request
}

// Run submits the check. A non-VALID status is not an error; the caller
// inspects the response status. Errors are reserved for transport failures
// and undecodable responses.
func (c *CreditCardCheck) Run(ctx context.Context, card CardData) (*CreditCardCheckResponse, error) {
	form := url.Values{}
	form.Set("request", c.request.Request)
	form.Set("responsetype", c.request.ResponseType)
	form.Set("mode", c.request.Mode)
	form.Set("mid", c.request.MID)
	form.Set("aid", c.request.AID)
	form.Set("portalid", c.request.PortalID)
	form.Set("encoding", c.request.Encoding)
	form.Set("storecarddata", c.request.StoreCardData)
	form.Set("api_version", c.request.APIVersion)
	form.Set("hash", c.request.Hash)
	if c.request.CheckType != "" {
		form.Set("checktype", c.request.CheckType)
	}
	form.Set("cardpan", card.CardPan)
	form.Set("cardcvc2", card.CardCVC2)
	form.Set("cardexpiremonth", card.CardExpireMonth)
	form.Set("cardexpireyear", card.CardExpireYear)
	form.Set("cardtype", card.CardType)

	c.logger.Debug().Str("url", c.endpoint).Msg("running credit card check")
	resp, err := postForm(ctx, c.client, c.endpoint, form)
	if err != nil {
		return nil, newGatewayError("creditcardcheck", 0, err.Error())
	}
	if !isSuccess(resp.StatusCode) {
		_ = resp.Body.Close()
		return nil, newGatewayError("creditcardcheck", resp.StatusCode, "credit card check failed")
	}
	var result CreditCardCheckResponse
	if err := decodeJSONBody(resp.Body, &result); err != nil {
		return nil, newGatewayError("creditcardcheck", resp.StatusCode, "invalid check response: "+err.Error())
	}
	c.logger.Debug().Str("status", string(result.Status)).Msg("credit card check finished")
	return &result, nil
}
