package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fountainmap/fountain-finder/internal/core/domain"
	"github.com/fountainmap/fountain-finder/internal/core/service"
)

// memUserRepo is an in-memory user store for end-to-end routing tests.
type memUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.nextID++
	clone := *user
	clone.ID = fmt.Sprintf("user-%d", r.nextID)
	r.users[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByIdentifier(_ context.Context, identifier string) (*domain.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Username, identifier) || u.Email == strings.ToLower(identifier) {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) UsernameExists(_ context.Context, username, excludeID string) (bool, error) {
	for _, u := range r.users {
		if u.ID != excludeID && strings.EqualFold(u.Username, username) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) EmailExists(_ context.Context, email, excludeID string) (bool, error) {
	for _, u := range r.users {
		if u.ID != excludeID && u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) UpdateProfile(_ context.Context, id, username, email string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if username != "" {
		u.Username = username
	}
	if email != "" {
		u.Email = email
	}
	clone := *u
	return &clone, nil
}

func (r *memUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

// memFountainRepo is an in-memory fountain store.
type memFountainRepo struct {
	fountains []*domain.Fountain
	nextID    int
}

func (r *memFountainRepo) Create(_ context.Context, f *domain.Fountain) (*domain.Fountain, error) {
	r.nextID++
	clone := *f
	clone.ID = fmt.Sprintf("fountain-%d", r.nextID)
	r.fountains = append(r.fountains, &clone)
	out := clone
	return &out, nil
}

func (r *memFountainRepo) FindByID(_ context.Context, id string) (*domain.Fountain, error) {
	for _, f := range r.fountains {
		if f.ID == id {
			clone := *f
			return &clone, nil
		}
	}
	return nil, domain.ErrFountainNotFound
}

func (r *memFountainRepo) FindAll(_ context.Context, box *domain.BoundingBox) ([]*domain.Fountain, error) {
	out := []*domain.Fountain{}
	for _, f := range r.fountains {
		if box == nil || box.Contains(f.Lat, f.Lng) {
			clone := *f
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (r *memFountainRepo) ExistsWithin(_ context.Context, box domain.BoundingBox) (bool, error) {
	for _, f := range r.fountains {
		if box.Contains(f.Lat, f.Lng) {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFountainRepo) AppendReview(_ context.Context, id string, review domain.Review) (*domain.Fountain, error) {
	for _, f := range r.fountains {
		if f.ID == id {
			f.Reviews = append(f.Reviews, review)
			clone := *f
			return &clone, nil
		}
	}
	return nil, domain.ErrFountainNotFound
}

func (r *memFountainRepo) IncrementReportCount(_ context.Context, id string) error {
	for _, f := range r.fountains {
		if f.ID == id {
			f.ReportCount++
			return nil
		}
	}
	return domain.ErrFountainNotFound
}

func (r *memFountainRepo) Delete(_ context.Context, id string) error {
	for i, f := range r.fountains {
		if f.ID == id {
			r.fountains = append(r.fountains[:i], r.fountains[i+1:]...)
			return nil
		}
	}
	return domain.ErrFountainNotFound
}

// allowAllThrottle never throttles.
type allowAllThrottle struct{}

func (allowAllThrottle) Allow(context.Context, string, string) (bool, error) {
	return true, nil
}

func newTestServer() *httptest.Server {
	log := zerolog.Nop()
	users := newMemUserRepo()
	fountains := &memFountainRepo{}

	tokens := service.NewTokenService("test-secret", time.Hour)
	authService := service.NewAuthService(users, tokens, log)
	fountainService := service.NewFountainService(fountains, users, allowAllThrottle{}, log)

	e := newRouter(authService, fountainService, tokens, "http://localhost:8000", log)
	return httptest.NewServer(e)
}

func doJSON(t *testing.T, method, url, token, body string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	return resp.StatusCode, payload
}

func TestRouter_SignupLoginCreateFountainFlow(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	// Sign up.
	code, resp := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", "",
		`{"username":"alice","email":"alice@example.com","password":"secret1"}`)
	if code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d: %+v", code, resp)
	}
	if resp["success"] != true || resp["token"] == "" {
		t.Fatalf("signup: unexpected envelope: %+v", resp)
	}

	// Log in with the email instead of the username.
	code, resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "",
		`{"username":"alice@example.com","password":"secret1"}`)
	if code != http.StatusOK {
		t.Fatalf("login: expected 200, got %d: %+v", code, resp)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("login: no token in response: %+v", resp)
	}

	// Create a fountain with the bearer token.
	code, resp = doJSON(t, http.MethodPost, srv.URL+"/api/fountains", token,
		`{"name":"Park Fountain","address":"1 Park Ave","lat":40.7128,"lng":-74.0060}`)
	if code != http.StatusCreated {
		t.Fatalf("create fountain: expected 201, got %d: %+v", code, resp)
	}
	fountain, ok := resp["fountain"].(map[string]any)
	if !ok || fountain["createdByUsername"] != "alice" || fountain["currentStatus"] != "yellow" {
		t.Fatalf("create fountain: unexpected payload: %+v", resp)
	}
	fountainID, _ := fountain["id"].(string)

	// The fountain appears in the anonymous listing.
	code, resp = doJSON(t, http.MethodGet, srv.URL+"/api/fountains", "", "")
	if code != http.StatusOK || resp["count"] != float64(1) {
		t.Fatalf("list: expected 1 fountain, got %d: %+v", code, resp)
	}

	// Review it and watch the derived status change.
	code, resp = doJSON(t, http.MethodPost, srv.URL+"/api/fountains/"+fountainID+"/reviews", token,
		`{"status":"green","text":"cold and clean"}`)
	if code != http.StatusCreated {
		t.Fatalf("review: expected 201, got %d: %+v", code, resp)
	}
	fountain = resp["fountain"].(map[string]any)
	if fountain["currentStatus"] != "green" {
		t.Fatalf("review: expected derived status green, got %+v", fountain)
	}

	// Report it.
	code, resp = doJSON(t, http.MethodPost, srv.URL+"/api/fountains/"+fountainID+"/report", token, "")
	if code != http.StatusOK {
		t.Fatalf("report: expected 200, got %d: %+v", code, resp)
	}

	code, resp = doJSON(t, http.MethodGet, srv.URL+"/api/fountains/"+fountainID, "", "")
	if code != http.StatusOK {
		t.Fatalf("get: expected 200, got %d: %+v", code, resp)
	}
	fountain = resp["fountain"].(map[string]any)
	if fountain["reportCount"] != float64(1) {
		t.Fatalf("get: expected reportCount 1, got %+v", fountain)
	}

	// Delete it as the owner.
	code, resp = doJSON(t, http.MethodDelete, srv.URL+"/api/fountains/"+fountainID, token, "")
	if code != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d: %+v", code, resp)
	}
	code, _ = doJSON(t, http.MethodGet, srv.URL+"/api/fountains/"+fountainID, "", "")
	if code != http.StatusNotFound {
		t.Fatalf("get after delete: expected 404, got %d", code)
	}
}

func TestRouter_AuthRequired(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	code, resp := doJSON(t, http.MethodPost, srv.URL+"/api/fountains", "",
		`{"name":"A","address":"addr","lat":1,"lng":2}`)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %+v", code, resp)
	}
	if resp["success"] != false || resp["message"] != "Not authorized to access this route" {
		t.Fatalf("unexpected error envelope: %+v", resp)
	}
}

func TestRouter_ValidationErrorEnvelope(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	code, resp := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", "",
		`{"username":"ab","email":"not-an-email","password":"123"}`)
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %+v", code, resp)
	}
	errs, ok := resp["errors"].([]any)
	if !ok || len(errs) != 3 {
		t.Fatalf("expected three field errors, got %+v", resp)
	}
}

func TestRouter_DomainErrorMapping(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	// Unknown fountain id.
	code, resp := doJSON(t, http.MethodGet, srv.URL+"/api/fountains/missing", "", "")
	if code != http.StatusNotFound || resp["message"] != "Fountain not found" {
		t.Fatalf("expected mapped 404, got %d: %+v", code, resp)
	}

	// Duplicate signups.
	if code, _ := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", "",
		`{"username":"bob","email":"bob@example.com","password":"secret1"}`); code != http.StatusCreated {
		t.Fatalf("first signup failed: %d", code)
	}
	code, resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", "",
		`{"username":"BOB","email":"bob2@example.com","password":"secret1"}`)
	if code != http.StatusBadRequest || resp["message"] != "Username already exists" {
		t.Fatalf("expected duplicate-username 400, got %d: %+v", code, resp)
	}
	code, resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", "",
		`{"username":"bob2","email":"bob@example.com","password":"secret1"}`)
	if code != http.StatusBadRequest || resp["message"] != "Email already registered" {
		t.Fatalf("expected duplicate-email 400, got %d: %+v", code, resp)
	}

	// Wrong password.
	code, resp = doJSON(t, http.MethodPost, srv.URL+"/api/auth/login", "",
		`{"username":"bob","password":"wrongpw"}`)
	if code != http.StatusUnauthorized || resp["message"] != "Invalid credentials" {
		t.Fatalf("expected 401 invalid credentials, got %d: %+v", code, resp)
	}
}

func TestRouter_DuplicateLocationRejected(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	_, resp := doJSON(t, http.MethodPost, srv.URL+"/api/auth/signup", "",
		`{"username":"carol","email":"carol@example.com","password":"secret1"}`)
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("signup: no token: %+v", resp)
	}

	body := `{"name":"A","address":"addr","lat":48.8566,"lng":2.3522}`
	if code, resp := doJSON(t, http.MethodPost, srv.URL+"/api/fountains", token, body); code != http.StatusCreated {
		t.Fatalf("first create failed: %d: %+v", code, resp)
	}

	code, resp := doJSON(t, http.MethodPost, srv.URL+"/api/fountains", token,
		`{"name":"B","address":"addr","lat":48.85665,"lng":2.35225}`)
	if code != http.StatusBadRequest || resp["message"] != "A fountain already exists at this location" {
		t.Fatalf("expected duplicate-location 400, got %d: %+v", code, resp)
	}
}

func TestRouter_Health(t *testing.T) {
	srv := newTestServer()
	defer srv.Close()

	code, resp := doJSON(t, http.MethodGet, srv.URL+"/api/health", "", "")
	if code != http.StatusOK || resp["success"] != true {
		t.Fatalf("expected healthy response, got %d: %+v", code, resp)
	}
}
