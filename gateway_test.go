package walletpay

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestValidateMerchantBodyIsCanonical(t *testing.T) {
	t.Parallel()

	var got []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"merchantSession":"X"}`))
	}))
	t.Cleanup(server.Close)

	gateway := NewMerchantGateway(server.URL, server.URL, map[string]string{
		"merchantIdentifier": "merchant.de.payzero.demo",
		"foo":                "bar",
	})
	if _, err := gateway.ValidateMerchant(context.Background(), "https://apple.example/start"); err != nil {
		t.Fatalf("ValidateMerchant: %v", err)
	}

	// Canonical marshaling keeps the body byte-stable across runs: keys
	// sorted, validation data merged over the base object.
	want := `{"foo":"bar","merchantIdentifier":"merchant.de.payzero.demo","validationURL":"https://apple.example/start"}`
	if string(got) != want {
		t.Fatalf("request body = %s, want %s", got, want)
	}
}

func TestValidateMerchantWithoutValidationData(t *testing.T) {
	t.Parallel()

	var got []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = io.ReadAll(r.Body)
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	t.Cleanup(server.Close)

	gateway := NewMerchantGateway(server.URL, server.URL, nil)
	session, err := gateway.ValidateMerchant(context.Background(), "https://apple.example/start")
	if err != nil {
		t.Fatalf("ValidateMerchant: %v", err)
	}
	if string(got) != `{"validationURL":"https://apple.example/start"}` {
		t.Fatalf("request body = %s", got)
	}
	if string(session) != `{"ok":true}` {
		t.Fatalf("merchant session = %s, want verbatim body", session)
	}
}

func TestValidateMerchantErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		status     int
		body       string
		wantStatus int
	}{
		"server error":   {status: http.StatusInternalServerError, body: "boom", wantStatus: http.StatusInternalServerError},
		"not found":      {status: http.StatusNotFound, body: "{}", wantStatus: http.StatusNotFound},
		"failure marker": {status: http.StatusOK, body: `{"statusCode":"400"}`, wantStatus: http.StatusOK},
		"invalid body":   {status: http.StatusOK, body: "<html/>", wantStatus: http.StatusOK},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(server.Close)

			gateway := NewMerchantGateway(server.URL, server.URL, nil)
			_, err := gateway.ValidateMerchant(context.Background(), "https://apple.example/start")

			var gatewayErr *GatewayError
			if !errors.As(err, &gatewayErr) {
				t.Fatalf("got %v, want GatewayError", err)
			}
			if gatewayErr.Endpoint != endpointValidateMerchant {
				t.Fatalf("endpoint = %s, want %s", gatewayErr.Endpoint, endpointValidateMerchant)
			}
			if gatewayErr.Status != tc.wantStatus {
				t.Fatalf("status = %d, want %d", gatewayErr.Status, tc.wantStatus)
			}
		})
	}
}

func TestValidateMerchantNetworkFailure(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	gateway := NewMerchantGateway(server.URL, server.URL, nil)
	_, err := gateway.ValidateMerchant(context.Background(), "https://apple.example/start")

	var gatewayErr *GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("got %v, want GatewayError", err)
	}
	if gatewayErr.Status != 0 {
		t.Fatalf("status = %d, want 0 for transport failure", gatewayErr.Status)
	}
}

func TestProcessPayment(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		status      int
		body        string
		wantSuccess bool
		wantErr     bool
	}{
		"success true":    {status: http.StatusOK, body: `{"success":true}`, wantSuccess: true},
		"success false":   {status: http.StatusOK, body: `{"success":false}`},
		"missing success": {status: http.StatusOK, body: `{}`},
		"server error":    {status: http.StatusBadGateway, body: "boom", wantErr: true},
		"invalid body":    {status: http.StatusOK, body: "not json", wantErr: true},
		"empty body":      {status: http.StatusOK, body: "", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Content-Type") != "application/json" {
					t.Errorf("content type = %s", r.Header.Get("Content-Type"))
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(server.Close)

			gateway := NewMerchantGateway(server.URL, server.URL, nil)
			success, err := gateway.ProcessPayment(context.Background(), Payment{
				Token: PaymentToken{TransactionIdentifier: "txn-1"},
			})

			if tc.wantErr {
				var gatewayErr *GatewayError
				if !errors.As(err, &gatewayErr) {
					t.Fatalf("got %v, want GatewayError", err)
				}
				if gatewayErr.Endpoint != endpointProcessPayment {
					t.Fatalf("endpoint = %s, want %s", gatewayErr.Endpoint, endpointProcessPayment)
				}
				return
			}
			if err != nil {
				t.Fatalf("ProcessPayment: %v", err)
			}
			if success != tc.wantSuccess {
				t.Fatalf("success = %v, want %v", success, tc.wantSuccess)
			}
		})
	}
}

func TestProcessPaymentHonorsContext(t *testing.T) {
	t.Parallel()

	started := make(chan struct{})
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		server.Close()
	})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	gateway := NewMerchantGateway(server.URL, server.URL, nil)
	_, err := gateway.ProcessPayment(ctx, Payment{})

	var gatewayErr *GatewayError
	if !errors.As(err, &gatewayErr) {
		t.Fatalf("got %v, want GatewayError", err)
	}
}
