package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/Karasal/Call-Sal-sub000/internal/application"
	"github.com/Karasal/Call-Sal-sub000/internal/booking"
	"github.com/Karasal/Call-Sal-sub000/internal/chat"
	"github.com/Karasal/Call-Sal-sub000/internal/portal"
	"github.com/Karasal/Call-Sal-sub000/internal/testfixtures"
)

// newServer wires a full router over a fresh in-memory store. The
// session slot is shared server-wide, so each test gets its own server
// and drives it sequentially.
func newServer(t *testing.T, opts ...testfixtures.SeedOption) *echo.Echo {
	t.Helper()

	ids := testfixtures.NewIDGenerator("id")
	keys := testfixtures.NewKeySequence("SAL-AB12-CD34", "SAL-EF56-GH78")
	clock := testfixtures.NewClock(testfixtures.ReferenceTime())

	store := portal.NewStore(testfixtures.NewSeededStore(t, opts...), ids.NextFunc(), keys.NextFunc(), nil)
	accounts := application.NewAccountService(store, nil, nil)
	scheduler := booking.NewScheduler(store, ids.NextFunc(), clock.NowFunc(), nil)
	progress := application.NewProgressService(store, ids.NextFunc(), clock.NowFunc(), nil)
	billing := application.NewBillingService(store, ids.NextFunc(), clock.NowFunc(), nil)
	chatService := chat.NewService(nil, "", nil)

	handlers := NewHandlers(accounts, scheduler, progress, billing, chatService, nil)
	return NewRouter(handlers, nil)
}

func do(t *testing.T, e *echo.Echo, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
}

func login(t *testing.T, e *echo.Echo, email, password string) {
	t.Helper()
	rec := do(t, e, http.MethodPost, "/login", map[string]string{"email": email, "password": password})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthEndpoints(t *testing.T) {
	e := newServer(t)

	rec := do(t, e, http.MethodPost, "/login", map[string]string{"email": "admin@callsal.ai", "password": "wrong"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}

	rec = do(t, e, http.MethodGet, "/session", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 with no session, got %d", rec.Code)
	}

	login(t, e, "admin@callsal.ai", "admin123")

	rec = do(t, e, http.MethodGet, "/session", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for active session, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "password") || strings.Contains(rec.Body.String(), "admin123") {
		t.Fatalf("session response leaks credentials: %s", rec.Body.String())
	}
	var session struct {
		ID   string `json:"id"`
		Role string `json:"role"`
	}
	decode(t, rec, &session)
	if session.ID != portal.DefaultAdminID || session.Role != "admin" {
		t.Fatalf("unexpected session %+v", session)
	}

	rec = do(t, e, http.MethodPost, "/logout", nil)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on logout, got %d", rec.Code)
	}
	if rec := do(t, e, http.MethodGet, "/session", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected session gone after logout, got %d", rec.Code)
	}
}

func TestClientLifecycle(t *testing.T) {
	e := newServer(t)

	// The admin surface is closed without a session.
	if rec := do(t, e, http.MethodPost, "/clients", map[string]string{"name": "Dana"}); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", rec.Code)
	}

	login(t, e, "admin@callsal.ai", "admin123")

	rec := do(t, e, http.MethodPost, "/clients", map[string]string{"name": "Dana", "business": "Dana LLC"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created struct {
		Client struct {
			ID string `json:"id"`
		} `json:"client"`
		RegistrationKey string `json:"registrationKey"`
	}
	decode(t, rec, &created)
	if !portal.ValidRegistrationKey(created.RegistrationKey) {
		t.Fatalf("invalid registration key %q", created.RegistrationKey)
	}

	// An unknown key is a 404 for the visitor.
	do(t, e, http.MethodPost, "/logout", nil)
	rec = do(t, e, http.MethodPost, "/register", map[string]string{
		"key": "SAL-ZZZZ-9999", "email": "dana@example.com", "password": "pw",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown key, got %d", rec.Code)
	}

	rec = do(t, e, http.MethodPost, "/register", map[string]string{
		"key": created.RegistrationKey, "email": "dana@example.com", "password": "pw",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on registration, got %d: %s", rec.Code, rec.Body.String())
	}

	// Registration opened a client session; the admin surface stays closed.
	if rec := do(t, e, http.MethodPost, "/clients", map[string]string{"name": "Eve"}); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a client, got %d", rec.Code)
	}

	// Back as admin: the roster lists the client and deletion empties it.
	login(t, e, "admin@callsal.ai", "admin123")
	rec = do(t, e, http.MethodGet, "/clients", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var clients []struct {
		ID string `json:"id"`
	}
	decode(t, rec, &clients)
	if len(clients) != 1 || clients[0].ID != created.Client.ID {
		t.Fatalf("unexpected roster %+v", clients)
	}

	if rec := do(t, e, http.MethodDelete, "/clients/"+created.Client.ID, nil); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 on delete, got %d", rec.Code)
	}
	if rec := do(t, e, http.MethodDelete, "/clients/"+portal.DefaultAdminID, nil); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 deleting the admin, got %d", rec.Code)
	}
}

func TestBookingEndpoints(t *testing.T) {
	e := newServer(t)

	rec := do(t, e, http.MethodGet, "/booking/dates", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var dates []string
	decode(t, rec, &dates)
	if len(dates) != 14 || dates[0] != "2025-06-03" {
		t.Fatalf("unexpected dates %v", dates)
	}

	if rec := do(t, e, http.MethodGet, "/booking/slots", nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without query params, got %d", rec.Code)
	}

	rec = do(t, e, http.MethodGet, "/booking/slots?date=2025-06-10&type=zoom", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var slots struct {
		Slots []struct {
			Time    string `json:"time"`
			Blocked bool   `json:"blocked"`
		} `json:"slots"`
	}
	decode(t, rec, &slots)
	if len(slots.Slots) != 19 {
		t.Fatalf("expected 19 slots, got %d", len(slots.Slots))
	}

	confirm := map[string]string{"date": "2025-06-10", "time": "10:00", "type": "zoom"}
	if rec := do(t, e, http.MethodPost, "/bookings", confirm); rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", rec.Code)
	}

	login(t, e, "admin@callsal.ai", "admin123")

	rec = do(t, e, http.MethodPost, "/bookings", confirm)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var confirmed portal.Booking
	decode(t, rec, &confirmed)
	if confirmed.Status != portal.BookingConfirmed || confirmed.Duration != 30 {
		t.Fatalf("unexpected booking %+v", confirmed)
	}

	// The identical slot is now taken.
	if rec := do(t, e, http.MethodPost, "/bookings", confirm); rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a taken slot, got %d", rec.Code)
	}

	// Off-grid requests are rejected, not stored.
	offGrid := map[string]string{"date": "2025-06-10", "time": "10:15", "type": "zoom"}
	if rec := do(t, e, http.MethodPost, "/bookings", offGrid); rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for an off-grid time, got %d", rec.Code)
	}

	rec = do(t, e, http.MethodGet, "/bookings", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var bookings []portal.Booking
	decode(t, rec, &bookings)
	if len(bookings) != 1 {
		t.Fatalf("expected one stored booking, got %d", len(bookings))
	}
}

func TestProgressAndBillingEndpoints(t *testing.T) {
	client := testfixtures.NewClient(testfixtures.WithEmail("dana@example.com"))
	e := newServer(t, testfixtures.WithUsers(portal.DefaultAdmin(), client))

	login(t, e, "admin@callsal.ai", "admin123")

	rec := do(t, e, http.MethodPost, "/logs", map[string]any{
		"clientId": client.ID, "title": "Kickoff", "update": "Discovery call done.", "progress": 10,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = do(t, e, http.MethodPost, "/invoices", map[string]any{
		"clientId": client.ID, "amount": 1500.0, "description": "Automation sprint",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var invoice portal.Invoice
	decode(t, rec, &invoice)

	if rec := do(t, e, http.MethodPost, "/invoices/"+invoice.ID+"/pay", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	// Unknown invoices answer 204 too; the collection is untouched.
	if rec := do(t, e, http.MethodPost, "/invoices/missing/pay", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for an unknown invoice, got %d", rec.Code)
	}

	// The client sees only their own data, regardless of query params.
	login(t, e, "dana@example.com", client.Password)

	rec = do(t, e, http.MethodGet, "/logs?client_id="+portal.DefaultAdminID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var logs []portal.ProjectLog
	decode(t, rec, &logs)
	if len(logs) != 1 || logs[0].ClientID != client.ID {
		t.Fatalf("expected only the client's log, got %+v", logs)
	}

	rec = do(t, e, http.MethodGet, "/invoices", nil)
	var invoices []portal.Invoice
	decode(t, rec, &invoices)
	if len(invoices) != 1 || invoices[0].Status != portal.InvoicePaid {
		t.Fatalf("expected the settled invoice, got %+v", invoices)
	}

	// Writing is still admin-only.
	if rec := do(t, e, http.MethodPost, "/logs", map[string]any{"clientId": client.ID, "title": "x", "progress": 1}); rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a client, got %d", rec.Code)
	}
}

func TestChatEndpoint(t *testing.T) {
	e := newServer(t)

	if rec := do(t, e, http.MethodPost, "/chat", map[string]string{"message": "  "}); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a blank message, got %d", rec.Code)
	}

	rec := do(t, e, http.MethodPost, "/chat", map[string]string{"message": "Can you automate my invoicing?"})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Reply string `json:"reply"`
	}
	decode(t, rec, &resp)
	if resp.Reply != chat.DefaultFallback {
		t.Fatalf("expected the fallback with no completer, got %q", resp.Reply)
	}
}

func TestHealthz(t *testing.T) {
	e := newServer(t)

	rec := do(t, e, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
