package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/cache"
	"github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/metrics"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/token"
)

const adminEmail = "boss@salon.dev"

type server struct {
	t      *testing.T
	router *gin.Engine
	store  *repository.Store
}

func newServer(t *testing.T, opts ...func(*Deps)) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore().Store()
	d := Deps{
		Config: &config.Config{
			Env:         "test",
			Timezone:    "UTC",
			AdminEmails: []string{adminEmail},
		},
		Store:  store,
		Tokens: token.NewIssuer("test-secret", time.Hour),
		Logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&d)
	}

	return &server{t: t, router: NewRouter(d), store: store}
}

func (s *server) do(method, path, tok string, body any) *httptest.ResponseRecorder {
	s.t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			s.t.Fatal(err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding %q: %v", w.Body.String(), err)
	}
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Message string `json:"message"`
	}
	decode(t, w, &body)
	return body.Message
}

func (s *server) register(name, email string) (id, tok string) {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     name,
		"email":    email,
		"password": "secret123",
	})
	if w.Code != http.StatusCreated {
		s.t.Fatalf("register %s: %d %s", email, w.Code, w.Body.String())
	}
	var out struct {
		ID    string `json:"id"`
		Token string `json:"token"`
	}
	decode(s.t, w, &out)
	return out.ID, out.Token
}

type salonOut struct {
	ID       string `json:"id"`
	Services []struct {
		ID    string  `json:"id"`
		Name  string  `json:"name"`
		Price float64 `json:"price"`
	} `json:"services"`
}

func (s *server) createSalon(tok string) salonOut {
	s.t.Helper()
	w := s.do(http.MethodPost, "/api/salons", tok, map[string]any{
		"name":          "Shear Joy",
		"description":   "Cuts and color",
		"contactNumber": "555-0100",
		"email":         "hello@shearjoy.dev",
		"address": map[string]string{
			"street":  "1 Main St",
			"city":    "Springfield",
			"state":   "IL",
			"zipCode": "62701",
			"country": "US",
		},
		"services": []map[string]any{
			{"name": "Haircut", "duration": 30, "price": 30},
		},
		"workingHours": []map[string]any{
			{"day": "Monday", "open": "09:00", "close": "17:00"},
		},
	})
	if w.Code != http.StatusCreated {
		s.t.Fatalf("create salon: %d %s", w.Code, w.Body.String())
	}
	var out salonOut
	decode(s.t, w, &out)
	if len(out.Services) != 1 || out.Services[0].ID == "" {
		s.t.Fatalf("expected a service with an assigned id, got %+v", out.Services)
	}
	return out
}

func TestBookingLifecycle(t *testing.T) {
	s := newServer(t)

	_, userTok := s.register("Alice", "alice@test.dev")
	_, adminTok := s.register("Boss", adminEmail)
	salon := s.createSalon(adminTok)

	// book
	w := s.do(http.MethodPost, "/api/appointments", userTok, map[string]string{
		"salon":     salon.ID,
		"service":   salon.Services[0].ID,
		"date":      "2026-12-01",
		"startTime": "10:00",
		"endTime":   "10:30",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("book: %d %s", w.Code, w.Body.String())
	}
	var booked struct {
		ID         string  `json:"id"`
		Status     string  `json:"status"`
		TotalPrice float64 `json:"totalPrice"`
	}
	decode(t, w, &booked)
	if booked.Status != "Pending" || booked.TotalPrice != 30 {
		t.Fatalf("unexpected booking %+v", booked)
	}

	// my appointments carry the salon summary
	w = s.do(http.MethodGet, "/api/appointments/myappointments", userTok, nil)
	var mine []struct {
		ID    string `json:"id"`
		Salon struct {
			Name string `json:"name"`
		} `json:"salon"`
	}
	decode(t, w, &mine)
	if w.Code != http.StatusOK || len(mine) != 1 || mine[0].ID != booked.ID || mine[0].Salon.Name != "Shear Joy" {
		t.Fatalf("unexpected list %d %s", w.Code, w.Body.String())
	}

	// admin confirms
	w = s.do(http.MethodPut, "/api/appointments/"+booked.ID+"/status", adminTok, map[string]string{"status": "Confirmed"})
	if w.Code != http.StatusOK {
		t.Fatalf("confirm: %d %s", w.Code, w.Body.String())
	}

	// admin sees it with the booker's contact
	w = s.do(http.MethodGet, "/api/appointments/salon/"+salon.ID, adminTok, nil)
	var forSalon []struct {
		Status string `json:"status"`
		User   struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	decode(t, w, &forSalon)
	if len(forSalon) != 1 || forSalon[0].Status != "Confirmed" || forSalon[0].User.Email != "alice@test.dev" {
		t.Fatalf("unexpected salon list %s", w.Body.String())
	}

	// booker cancels
	w = s.do(http.MethodDelete, "/api/appointments/"+booked.ID, userTok, nil)
	if w.Code != http.StatusOK || message(t, w) != "Appointment cancelled" {
		t.Fatalf("cancel: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodDelete, "/api/appointments/"+booked.ID, userTok, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("second cancel: expected 400, got %d", w.Code)
	}
	if got := message(t, w); got != "Cannot cancel appointment with status: Cancelled" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestExportReturnsSpreadsheet(t *testing.T) {
	s := newServer(t)
	_, adminTok := s.register("Boss", adminEmail)
	salon := s.createSalon(adminTok)

	w := s.do(http.MethodGet, "/api/appointments/salon/"+salon.ID+"/export", adminTok, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("export: %d %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Header().Get("Content-Disposition"), ".xlsx") {
		t.Errorf("missing attachment header: %q", w.Header().Get("Content-Disposition"))
	}
	if w.Body.Len() == 0 {
		t.Error("empty workbook")
	}
}

func TestPolicyIsEnforced(t *testing.T) {
	s := newServer(t)
	_, userTok := s.register("Alice", "alice@test.dev")

	someID := domain.NewID()
	for _, rt := range Policy(nil, nil, nil, nil) {
		path := "/api" + strings.ReplaceAll(rt.Path, ":id", someID)

		switch rt.Access {
		case middleware.Admin:
			w := s.do(rt.Method, path, userTok, nil)
			if w.Code != http.StatusUnauthorized || message(t, w) != "Not authorized as an admin" {
				t.Errorf("%s %s as user: %d %s", rt.Method, rt.Path, w.Code, w.Body.String())
			}
			fallthrough
		case middleware.Authenticated:
			w := s.do(rt.Method, path, "", nil)
			if w.Code != http.StatusUnauthorized || message(t, w) != "Not authorized, no token provided" {
				t.Errorf("%s %s anonymous: %d %s", rt.Method, rt.Path, w.Code, w.Body.String())
			}
		}
	}
}

func TestInvalidTokenIsRejected(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/api/auth/profile", "not-a-jwt", nil)
	if w.Code != http.StatusUnauthorized || message(t, w) != "Not authorized, token failed or invalid" {
		t.Fatalf("unexpected %d %s", w.Code, w.Body.String())
	}

	orphan, _ := token.NewIssuer("test-secret", time.Hour).Issue(domain.NewID(), false)
	w = s.do(http.MethodGet, "/api/auth/profile", orphan, nil)
	if w.Code != http.StatusUnauthorized || message(t, w) != "Not authorized, user not found" {
		t.Fatalf("unexpected %d %s", w.Code, w.Body.String())
	}
}

func TestForeignAppointmentIsHidden(t *testing.T) {
	s := newServer(t)
	_, aliceTok := s.register("Alice", "alice@test.dev")
	_, malloryTok := s.register("Mallory", "mallory@test.dev")
	_, adminTok := s.register("Boss", adminEmail)
	salon := s.createSalon(adminTok)

	w := s.do(http.MethodPost, "/api/appointments", aliceTok, map[string]string{
		"salon":     salon.ID,
		"service":   salon.Services[0].ID,
		"date":      "2026-12-01",
		"startTime": "11:00",
		"endTime":   "11:30",
	})
	var booked struct {
		ID string `json:"id"`
	}
	decode(t, w, &booked)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w = s.do(method, "/api/appointments/"+booked.ID, malloryTok, nil)
		if w.Code != http.StatusUnauthorized || message(t, w) != "Not authorized" {
			t.Errorf("%s as stranger: %d %s", method, w.Code, w.Body.String())
		}
	}

	w = s.do(http.MethodGet, "/api/appointments/"+booked.ID, adminTok, nil)
	if w.Code != http.StatusOK {
		t.Errorf("admin get: %d %s", w.Code, w.Body.String())
	}
}

func TestMalformedIDs(t *testing.T) {
	s := newServer(t)
	_, userTok := s.register("Alice", "alice@test.dev")

	w := s.do(http.MethodGet, "/api/salons/not-an-id", "", nil)
	if w.Code != http.StatusBadRequest || message(t, w) != "Invalid Salon ID format" {
		t.Errorf("salon: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/appointments/not-an-id", userTok, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("appointment: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/salons/"+domain.NewID(), "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing salon: expected 404, got %d", w.Code)
	}
}

func TestRegisterAndLogin(t *testing.T) {
	s := newServer(t)
	s.register("Alice", "alice@test.dev")

	w := s.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name": "Alice", "email": "ALICE@test.dev", "password": "secret123",
	})
	if w.Code != http.StatusBadRequest || message(t, w) != "User already exists" {
		t.Errorf("duplicate register: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@test.dev", "password": "wrong-pass",
	})
	if w.Code != http.StatusUnauthorized || message(t, w) != "Invalid email or password" {
		t.Errorf("bad login: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@test.dev", "password": "secret123",
	})
	var out struct {
		Token string `json:"token"`
	}
	decode(t, w, &out)
	if w.Code != http.StatusOK || out.Token == "" {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/auth/profile", out.Token, nil)
	var profile struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	decode(t, w, &profile)
	if w.Code != http.StatusOK || profile.Email != "alice@test.dev" {
		t.Errorf("profile: %d %s", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "passwordHash") {
		t.Error("profile leaks the password hash")
	}
}

func TestSalonListIsPaged(t *testing.T) {
	s := newServer(t)
	_, adminTok := s.register("Boss", adminEmail)
	s.createSalon(adminTok)

	w := s.do(http.MethodGet, "/api/salons?keyword=shear&pageNumber=0", "", nil)
	var page struct {
		Salons []salonOut `json:"salons"`
		Page   int        `json:"page"`
		Pages  int        `json:"pages"`
	}
	decode(t, w, &page)
	if w.Code != http.StatusOK || len(page.Salons) != 1 || page.Page != 1 || page.Pages != 1 {
		t.Fatalf("unexpected page %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, "/api/salons?keyword=nomatch", "", nil)
	decode(t, w, &page)
	if len(page.Salons) != 0 || page.Pages != 0 {
		t.Errorf("expected an empty page, got %s", w.Body.String())
	}
}

func TestImageUploadWithoutStorage(t *testing.T) {
	s := newServer(t)
	_, adminTok := s.register("Boss", adminEmail)
	salon := s.createSalon(adminTok)

	w := s.do(http.MethodPost, "/api/salons/"+salon.ID+"/images", adminTok, nil)
	if w.Code != http.StatusNotImplemented {
		t.Errorf("expected 501, got %d", w.Code)
	}
}

func TestOperationalEndpoints(t *testing.T) {
	s := newServer(t)

	w := s.do(http.MethodGet, "/", "", nil)
	if w.Code != http.StatusOK || w.Body.String() != "API is running..." {
		t.Errorf("root: %d %q", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("health: %d", w.Code)
	}

	w = s.do(http.MethodGet, "/api/auth/google", "", nil)
	if w.Code != http.StatusNotImplemented {
		t.Errorf("google login without credentials: expected 501, got %d", w.Code)
	}
}

func withGoogle(d *Deps) {
	d.Config.GoogleClientID = "client-id"
	d.Config.GoogleClientSecret = "client-secret"
	d.Config.GoogleCallbackURL = "http://localhost:5000/api/auth/google/callback"
	d.Config.CORSOrigins = []string{"http://app.local"}
}

func TestGoogleLoginRedirects(t *testing.T) {
	s := newServer(t, withGoogle)

	w := s.do(http.MethodGet, "/api/auth/google?callbackUrl=http://app.local/done", "", nil)
	if w.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d %s", w.Code, w.Body.String())
	}
	if loc := w.Header().Get("Location"); !strings.HasPrefix(loc, "https://accounts.google.com/") {
		t.Errorf("unexpected location %q", loc)
	}

	w = s.do(http.MethodGet, "/api/auth/google?callbackUrl=javascript:alert(1)", "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for a non-http callback, got %d", w.Code)
	}

	w = s.do(http.MethodGet, "/api/auth/google/callback?state=forged&code=x", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without the state cookie, got %d", w.Code)
	}
}

func TestGoogleLoginRejectsForeignCallback(t *testing.T) {
	s := newServer(t, withGoogle)

	for _, cb := range []string{
		"https://attacker.example/steal",
		"https://app.local/done",
		"http://app.local.attacker.example/done",
		"http://user@attacker.example/done",
	} {
		w := s.do(http.MethodGet, "/api/auth/google?callbackUrl="+url.QueryEscape(cb), "", nil)
		if w.Code != http.StatusBadRequest || message(t, w) != "Invalid callback URL" {
			t.Errorf("%s: expected 400, got %d %s", cb, w.Code, w.Body.String())
		}
		for _, ck := range w.Result().Cookies() {
			if ck.Name == "oauth_callback" {
				t.Errorf("%s: callback cookie stored", cb)
			}
		}
	}

	dedicated := newServer(t, withGoogle, func(d *Deps) {
		d.Config.OAuthRedirectOrigins = []string{"https://book.salon.io"}
	})
	w := dedicated.do(http.MethodGet, "/api/auth/google?callbackUrl="+url.QueryEscape("https://book.salon.io/auth"), "", nil)
	if w.Code != http.StatusFound {
		t.Errorf("dedicated origin: expected redirect, got %d", w.Code)
	}
	w = dedicated.do(http.MethodGet, "/api/auth/google?callbackUrl="+url.QueryEscape("http://app.local/done"), "", nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("CORS origin must not apply once redirect origins are set, got %d", w.Code)
	}
}

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.data[key]; ok {
		return b, nil
	}
	return nil, cache.ErrMiss
}

func (m *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *mapCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func TestBookingPriceIgnoresCachedSalon(t *testing.T) {
	s := newServer(t, func(d *Deps) {
		d.SalonCache = cache.NewSalonCache(d.Store.Salons, &mapCache{data: map[string][]byte{}}, time.Hour, zap.NewNop())
	})
	_, userTok := s.register("Alice", "alice@test.dev")
	_, adminTok := s.register("Boss", adminEmail)
	salon := s.createSalon(adminTok)

	// warm the catalog cache
	if w := s.do(http.MethodGet, "/api/salons/"+salon.ID, "", nil); w.Code != http.StatusOK {
		t.Fatalf("get salon: %d", w.Code)
	}

	// reprice behind the cache, as another instance would
	stored, err := s.store.Salons.GetByID(context.Background(), salon.ID)
	if err != nil {
		t.Fatal(err)
	}
	stored.Services[0].Price = 45
	if err := s.store.Salons.Update(context.Background(), stored); err != nil {
		t.Fatal(err)
	}

	w := s.do(http.MethodPost, "/api/appointments", userTok, map[string]string{
		"salon":     salon.ID,
		"service":   salon.Services[0].ID,
		"date":      "2026-12-01",
		"startTime": "10:00",
		"endTime":   "10:30",
	})
	var booked struct {
		TotalPrice float64 `json:"totalPrice"`
	}
	decode(t, w, &booked)
	if w.Code != http.StatusCreated || booked.TotalPrice != 45 {
		t.Fatalf("expected the stored price 45, got %d %s", w.Code, w.Body.String())
	}

	// an admin write through the API drops the cached copy
	w = s.do(http.MethodPut, "/api/salons/"+salon.ID, adminTok, map[string]string{"name": "Shear Delight"})
	if w.Code != http.StatusOK {
		t.Fatalf("update: %d %s", w.Code, w.Body.String())
	}
	w = s.do(http.MethodGet, "/api/salons/"+salon.ID, "", nil)
	var got struct {
		Name string `json:"name"`
	}
	decode(t, w, &got)
	if got.Name != "Shear Delight" {
		t.Errorf("catalog served a stale salon: %s", got.Name)
	}
}

func TestMetricsCountBookings(t *testing.T) {
	reg := prometheus.NewRegistry()
	s := newServer(t, func(d *Deps) {
		d.Metrics = metrics.New(reg)
		d.Gatherer = reg
	})
	_, userTok := s.register("Alice", "alice@test.dev")
	_, adminTok := s.register("Boss", adminEmail)
	salon := s.createSalon(adminTok)

	w := s.do(http.MethodPost, "/api/appointments", userTok, map[string]string{
		"salon":     salon.ID,
		"service":   salon.Services[0].ID,
		"date":      "2026-12-01",
		"startTime": "10:00",
		"endTime":   "10:30",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("book: %d %s", w.Code, w.Body.String())
	}

	w = s.do(http.MethodGet, "/metrics", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics: %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "salon_appointments_created_total 1") {
		t.Errorf("booking not counted:\n%s", body)
	}
	if !strings.Contains(body, `salon_http_requests_total{method="POST",route="/api/appointments",status="201"} 1`) {
		t.Errorf("request not counted:\n%s", body)
	}
}
