package walletpay

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/google/uuid"
)

const fingerprintingBaseURL = "https://d.payla.io/dcs"

// FingerprintingTokenizer derives the snippet token and resource locations
// for the device fingerprinting collector. Actually injecting the script and
// stylesheet into the page is host plumbing; hosts should treat loading as an
// idempotent ensure-loaded step keyed on the element IDs they choose.
type FingerprintingTokenizer struct {
	environment       string
	paylaPartnerID    string
	partnerMerchantID string
	snippetToken      string
}

// NewFingerprintingTokenizer builds a tokenizer for one checkout session.
// sessionID may be empty; a random v4 UUID is generated in that case. The
// snippet token must be sent with the payment request so the processor can
// correlate the collected device data.
func NewFingerprintingTokenizer(environment, paylaPartnerID, partnerMerchantID, sessionID string) (*FingerprintingTokenizer, error) {
	if environment == "" {
		return nil, errors.New("walletpay: fingerprinting environment is required")
	}
	if paylaPartnerID == "" || partnerMerchantID == "" {
		return nil, errors.New("walletpay: payla partner and merchant IDs are required")
	}
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	return &FingerprintingTokenizer{
		environment:       environment,
		paylaPartnerID:    paylaPartnerID,
		partnerMerchantID: partnerMerchantID,
		snippetToken:      fmt.Sprintf("%s_%s_%s", paylaPartnerID, partnerMerchantID, sessionID),
	}, nil
}

// SnippetToken returns the token in the form
// <paylaPartnerID>_<partnerMerchantID>_<sessionID>.
func (t *FingerprintingTokenizer) SnippetToken() string {
	return t.snippetToken
}

// ScriptURL returns the device collection script the host must load once.
func (t *FingerprintingTokenizer) ScriptURL() string {
	return fmt.Sprintf("%s/%s/%s/dcs.js", fingerprintingBaseURL, t.paylaPartnerID, t.partnerMerchantID)
}

// StylesheetURL returns the companion stylesheet the host must load once.
func (t *FingerprintingTokenizer) StylesheetURL() string {
	query := url.Values{}
	query.Set("st", t.snippetToken)
	query.Set("pi", t.paylaPartnerID)
	query.Set("psi", t.partnerMerchantID)
	query.Set("e", t.environment)
	return fmt.Sprintf("%s/dcs.css?%s", fingerprintingBaseURL, query.Encode())
}
