package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCurrencyService_DefaultTableWithoutFeed(t *testing.T) {
	svc := NewCurrencyService("", nil)

	rate, ok := svc.Rate("usd")
	if !ok || rate != 1.0 {
		t.Fatalf("Rate(usd) = %v,%v; want 1.0,true", rate, ok)
	}
	if _, ok := svc.Rate("XYZ"); ok {
		t.Fatal("unknown code must not resolve")
	}
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected error refreshing without a configured url")
	}
}

func TestCurrencyService_RefreshEnvelopeBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"base":"USD","rates":{"eur":0.95,"thb":35.0,"bad":-1}}`))
	}))
	defer srv.Close()

	svc := NewCurrencyService(srv.URL, nil)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	if rate, ok := svc.Rate("EUR"); !ok || rate != 0.95 {
		t.Errorf("Rate(EUR) = %v,%v; want 0.95,true", rate, ok)
	}
	if rate, ok := svc.Rate("THB"); !ok || rate != 35.0 {
		t.Errorf("Rate(THB) = %v,%v; want 35.0,true", rate, ok)
	}
	// Non-positive rates are dropped, the base currency is always present.
	if _, ok := svc.Rate("BAD"); ok {
		t.Error("non-positive rate must be dropped")
	}
	if rate, ok := svc.Rate("USD"); !ok || rate != 1.0 {
		t.Errorf("Rate(USD) = %v,%v; want 1.0,true", rate, ok)
	}
	if svc.FetchedAt().IsZero() {
		t.Error("FetchedAt must be set after a successful refresh")
	}
}

func TestCurrencyService_RefreshFlatBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"EUR":0.90,"GBP":0.78}`))
	}))
	defer srv.Close()

	svc := NewCurrencyService(srv.URL, nil)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if rate, ok := svc.Rate("GBP"); !ok || rate != 0.78 {
		t.Errorf("Rate(GBP) = %v,%v; want 0.78,true", rate, ok)
	}
}

// A failed fetch keeps serving the previous snapshot: stale rates beat no
// rates, and pricing must never block on the feed.
func TestCurrencyService_FailedRefreshKeepsCachedRates(t *testing.T) {
	healthy := true
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"rates":{"EUR":0.93}}`))
	}))
	defer srv.Close()

	svc := NewCurrencyService(srv.URL, nil)
	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("initial refresh failed: %v", err)
	}

	healthy = false
	if err := svc.Refresh(context.Background()); err == nil {
		t.Fatal("expected refresh to report the failure")
	}

	if rate, ok := svc.Rate("EUR"); !ok || rate != 0.93 {
		t.Fatalf("cached rate lost after failed refresh: %v,%v", rate, ok)
	}
}

func TestCurrencyService_GetRatesReturnsCopy(t *testing.T) {
	svc := NewCurrencyService("", nil)
	rates := svc.GetRates()
	rates["USD"] = 99

	if rate, _ := svc.Rate("USD"); rate != 1.0 {
		t.Fatal("mutating the returned map must not affect the snapshot")
	}
}
