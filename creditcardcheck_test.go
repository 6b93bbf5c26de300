package walletpay

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/payzero/walletpay/signing"
)

func checkRequest() signing.Request {
	return signing.Request{
		Request:       "creditcardcheck",
		ResponseType:  "JSON",
		Mode:          "test",
		MID:           "11111",
		AID:           "22222",
		PortalID:      "3333333",
		Encoding:      "UTF-8",
		StoreCardData: "yes",
		APIVersion:    "3.11",
	}
}

func TestNewCreditCardCheckSignsRequest(t *testing.T) {
	t.Parallel()

	check, err := NewCreditCardCheck(checkRequest(), []byte("wurstbrot"))
	if err != nil {
		t.Fatalf("NewCreditCardCheck: %v", err)
	}
	want := signing.Sign(checkRequest(), []byte("wurstbrot"))
	if got := check.Request().Hash; got != want {
		t.Fatalf("hash = %s, want %s", got, want)
	}
}

func TestNewCreditCardCheckRejectsInvalidRequest(t *testing.T) {
	t.Parallel()

	req := checkRequest()
	req.PortalID = ""
	if _, err := NewCreditCardCheck(req, []byte("wurstbrot")); err == nil {
		t.Fatal("expected validation error for missing portalid")
	}
}

func TestCreditCardCheckRun(t *testing.T) {
	t.Parallel()

	var form url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		form = r.PostForm
		_, _ = w.Write([]byte(`{
			"status": "VALID",
			"pseudocardpan": "9410010000000012345",
			"truncatedcardpan": "411111xxxxxx1111",
			"cardtype": "V",
			"cardexpiredate": "2712"
		}`))
	}))
	t.Cleanup(server.Close)

	check, err := NewCreditCardCheck(checkRequest(), []byte("wurstbrot"), WithClientAPIEndpoint(server.URL))
	if err != nil {
		t.Fatalf("NewCreditCardCheck: %v", err)
	}
	resp, err := check.Run(context.Background(), CardData{
		CardPan:         "4111111111111111",
		CardCVC2:        "123",
		CardExpireMonth: "12",
		CardExpireYear:  "27",
		CardType:        "V",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if resp.Status != CheckStatusValid {
		t.Fatalf("status = %s, want %s", resp.Status, CheckStatusValid)
	}
	if resp.PseudoCardPan != "9410010000000012345" {
		t.Fatalf("pseudocardpan = %s", resp.PseudoCardPan)
	}
	if form.Get("hash") != signing.Sign(checkRequest(), []byte("wurstbrot")) {
		t.Fatalf("submitted hash %q does not match the signed request", form.Get("hash"))
	}
	if form.Get("request") != "creditcardcheck" || form.Get("cardpan") != "4111111111111111" {
		t.Fatalf("request fields were not submitted: %v", form)
	}
	if form.Has("checktype") {
		t.Fatal("empty checktype must not be submitted")
	}
}

func TestCreditCardCheckRunSubmitsCheckType(t *testing.T) {
	t.Parallel()

	var form url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		form = r.PostForm
		_, _ = w.Write([]byte(`{"status":"INVALID","errorcode":"33","errormessage":"Invalid card"}`))
	}))
	t.Cleanup(server.Close)

	req := checkRequest()
	req.CheckType = "TC"
	check, err := NewCreditCardCheck(req, []byte("wurstbrot"), WithClientAPIEndpoint(server.URL))
	if err != nil {
		t.Fatalf("NewCreditCardCheck: %v", err)
	}
	resp, err := check.Run(context.Background(), CardData{CardPan: "4111111111111111"})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// A declined check is an ordinary response, not an error.
	if resp.Status != CheckStatusInvalid {
		t.Fatalf("status = %s, want %s", resp.Status, CheckStatusInvalid)
	}
	if resp.ErrorCode != "33" {
		t.Fatalf("errorcode = %s", resp.ErrorCode)
	}
	if form.Get("checktype") != "TC" {
		t.Fatalf("checktype = %q, want TC", form.Get("checktype"))
	}
}

func TestCreditCardCheckRunTransportFailures(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		status int
		body   string
	}{
		"server error": {status: http.StatusInternalServerError, body: "boom"},
		"invalid body": {status: http.StatusOK, body: "<html/>"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(server.Close)

			check, err := NewCreditCardCheck(checkRequest(), []byte("wurstbrot"), WithClientAPIEndpoint(server.URL))
			if err != nil {
				t.Fatalf("NewCreditCardCheck: %v", err)
			}
			if _, err := check.Run(context.Background(), CardData{}); err == nil {
				t.Fatal("expected error")
			} else {
				var gatewayErr *GatewayError
				if !errors.As(err, &gatewayErr) {
					t.Fatalf("got %v, want GatewayError", err)
				}
			}
		})
	}
}
