// Package signing computes the keyed request hash that authenticates
// Client API calls against the PMI portal configuration.
//
// The hash covers a fixed subset of request fields, concatenated without
// delimiters in a fixed order that the processing backend reproduces on its
// side. That order is an external contract; reordering it, even into full
// alphabetical order, produces hashes the backend rejects.
package signing

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Request is the flat field set of a Client API transaction request.
// Hash is derived; every other field is supplied by the merchant.
type Request struct {
	// Fixed value naming the requested operation, e.g. "creditcardcheck".
	Request string `json:"request" validate:"required"`
	// Fixed value "JSON".
	ResponseType string `json:"responsetype" validate:"required"`
	// Transaction mode, "live" or "test".
	Mode string `json:"mode" validate:"required,oneof=live test"`
	// Merchant ID.
	MID string `json:"mid" validate:"required"`
	// Sub-account ID.
	AID string `json:"aid" validate:"required"`
	// Portal ID.
	PortalID string `json:"portalid" validate:"required"`
	// Desired response encoding, e.g. "UTF-8".
	Encoding string `json:"encoding" validate:"required"`
	// "yes" to store card data, "no" otherwise.
	StoreCardData string `json:"storecarddata" validate:"required,oneof=yes no"`
	// Optional check variant; fixed value "TC" starts a check with travel cards.
	CheckType string `json:"checktype,omitempty"`
	// Client API version, e.g. "3.11".
	APIVersion string `json:"api_version" validate:"required"`
	// Keyed hash over the fields above, hex encoded. Set by [Signed].
	Hash string `json:"hash,omitempty"`
}

var validate = newValidator()

// Validate reports whether all mandatory request fields are populated.
func (r Request) Validate() error {
	if err := validate.Struct(r); err != nil {
		return normalizeValidationError(err)
	}
	return nil
}

// Sign computes the HMAC-SHA-384 request hash using the shared PMI portal
// key, returned as lowercase hex. The optional check type, when present, is
// appended after the mandatory fields rather than in alphabetical position.
func Sign(req Request, key []byte) string {
	mac := hmac.New(sha512.New384, key)
	for _, field := range []string{
		req.AID,
		req.APIVersion,
		req.Encoding,
		req.MID,
		req.Mode,
		req.PortalID,
		req.Request,
		req.ResponseType,
		req.StoreCardData,
	} {
		_, _ = io.WriteString(mac, field)
	}
	if req.CheckType != "" {
		_, _ = io.WriteString(mac, req.CheckType)
	}
	return hex.EncodeToString(mac.Sum(nil))
}

// Signed returns a copy of req with the derived Hash field populated.
func Signed(req Request, key []byte) Request {
	req.Hash = Sign(req, key)
	return req
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.Split(field.Tag.Get("json"), ",")[0]
		if name == "" || name == "-" {
			return field.Name
		}
		return name
	})
	return v
}

func normalizeValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	first := validationErrs[0]
	switch first.Tag() {
	case "required":
		return fmt.Errorf("%s is required", first.Field())
	case "oneof":
		return fmt.Errorf("%s must be one of: %s", first.Field(), first.Param())
	default:
		return fmt.Errorf("%s is invalid", first.Field())
	}
}
