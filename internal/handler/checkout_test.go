package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopinger/shopinger/internal/domain"
	"github.com/shopinger/shopinger/internal/router"
)

// stubCheckoutService returns canned results so handler tests only cover
// decoding, validation, and response shaping.
type stubCheckoutService struct {
	receipt    *domain.Receipt
	err        error
	gotLines   []domain.LineItem
	gotRefs    domain.SaleRefs
	gotCartFor int64
}

func (s *stubCheckoutService) CommitTicket(_ context.Context, lines []domain.LineItem, refs domain.SaleRefs) (*domain.Receipt, error) {
	s.gotLines = lines
	s.gotRefs = refs
	return s.receipt, s.err
}

func (s *stubCheckoutService) CommitCart(_ context.Context, customerID int64) (*domain.Receipt, error) {
	s.gotCartFor = customerID
	return s.receipt, s.err
}

func newCheckoutRouter(svc domain.CheckoutService) *router.Router {
	h := NewCheckoutHandler(svc, nil)
	r := router.New()
	r.Post("/api/checkout/ticket", h.CommitTicket)
	r.Post("/api/checkout/cart/{customerID}", h.CommitCart)
	return r
}

func TestCommitTicket_Success(t *testing.T) {
	stub := &stubCheckoutService{receipt: &domain.Receipt{
		ID:            1,
		ReceiptNumber: "RCP-20260829-ABCDEF1234",
		TotalCents:    590,
		Channel:       domain.ChannelPOS,
	}}
	r := newCheckoutRouter(stub)

	body := `{"lines":[{"product_id":"bread","unit_price_cents":350,"qty":1},{"product_id":"milk","unit_price_cents":120,"qty":2}],"teller_id":7}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/ticket", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if len(stub.gotLines) != 2 {
		t.Fatalf("service received %d lines, want 2", len(stub.gotLines))
	}
	if stub.gotLines[1].RequestedQty != 2 {
		t.Errorf("second line qty = %d, want 2", stub.gotLines[1].RequestedQty)
	}
	if stub.gotRefs.TellerID == nil || *stub.gotRefs.TellerID != 7 {
		t.Errorf("teller ref not forwarded: %+v", stub.gotRefs)
	}
	if stub.gotRefs.Channel != domain.ChannelPOS {
		t.Errorf("channel = %q, want %q", stub.gotRefs.Channel, domain.ChannelPOS)
	}

	var receipt domain.Receipt
	if err := json.NewDecoder(rec.Body).Decode(&receipt); err != nil {
		t.Fatalf("failed to decode receipt: %v", err)
	}
	if receipt.ReceiptNumber != "RCP-20260829-ABCDEF1234" {
		t.Errorf("receipt_number = %q", receipt.ReceiptNumber)
	}
}

func TestCommitTicket_ValidationRejects(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty lines", `{"lines":[]}`},
		{"missing product id", `{"lines":[{"qty":1,"unit_price_cents":100}]}`},
		{"zero quantity", `{"lines":[{"product_id":"bread","unit_price_cents":100,"qty":0}]}`},
		{"unknown field", `{"lines":[{"product_id":"bread","unit_price_cents":100,"qty":1}],"bogus":true}`},
		{"malformed json", `{"lines":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub := &stubCheckoutService{}
			r := newCheckoutRouter(stub)

			req := httptest.NewRequest(http.MethodPost, "/api/checkout/ticket", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			if stub.gotLines != nil {
				t.Error("service should not be called on invalid input")
			}
		})
	}
}

func TestCommitTicket_InsufficientStock(t *testing.T) {
	stub := &stubCheckoutService{err: &domain.InsufficientStockError{Lines: []domain.OversoldLine{
		{ProductID: "bread", Requested: 5, Available: 2},
	}}}
	r := newCheckoutRouter(stub)

	body := `{"lines":[{"product_id":"bread","unit_price_cents":350,"qty":5}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/checkout/ticket", strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusConflict)
	}

	var response struct {
		Error struct {
			Code  string                `json:"code"`
			Lines []domain.OversoldLine `json:"lines"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(response.Error.Lines) != 1 || response.Error.Lines[0].Available != 2 {
		t.Errorf("unexpected oversold lines: %+v", response.Error.Lines)
	}
}

func TestCommitCart_PathValue(t *testing.T) {
	customerID := int64(42)
	stub := &stubCheckoutService{receipt: &domain.Receipt{
		ID:         9,
		CustomerID: &customerID,
		Channel:    domain.ChannelOnline,
	}}
	r := newCheckoutRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout/cart/42", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if stub.gotCartFor != 42 {
		t.Errorf("customer id = %d, want 42", stub.gotCartFor)
	}
}

func TestCommitCart_BadPathValue(t *testing.T) {
	stub := &stubCheckoutService{}
	r := newCheckoutRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout/cart/not-a-number", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestCommitCart_EmptyCart(t *testing.T) {
	stub := &stubCheckoutService{err: domain.ErrEmptyTicket}
	r := newCheckoutRouter(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout/cart/42", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}
