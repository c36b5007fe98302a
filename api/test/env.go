// Package test spins up the whole API against a throwaway postgres container
// and drives it over HTTP, the way a browser client would.
package test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/gorilla/mux"
	"github.com/irsalhamdi/hotel-booking/api"
	"github.com/irsalhamdi/hotel-booking/api/web"
	"github.com/irsalhamdi/hotel-booking/cache"
	"github.com/irsalhamdi/hotel-booking/config"
	"github.com/irsalhamdi/hotel-booking/core/claims"
	"github.com/irsalhamdi/hotel-booking/core/user"
	"github.com/irsalhamdi/hotel-booking/database"
	"github.com/irsalhamdi/hotel-booking/validate"
	"github.com/jmoiron/sqlx"
	"github.com/ory/dockertest/v3"
	"github.com/plutov/paypal/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

const (
	AdminEmail = "admin@test.local"
	AdminPass  = "admin-password"
	UserEmail  = "guest@test.local"
	UserPass   = "guest-password"

	webhookSecret = "whsec_test"
)

type TestEnv struct {
	DB            *sqlx.DB
	Server        *httptest.Server
	URL           string
	WebhookSecret string

	client *http.Client
}

// mockPaypal stands in for the paypal REST API: it hands out order ids and
// captures every order as COMPLETED.
func mockPaypal() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/v1/oauth2/token", func(w http.ResponseWriter, _ *http.Request) {
		web.Respond(context.Background(), w, map[string]any{
			"access_token": "test-token",
			"expires_in":   3600,
		}, http.StatusOK)
	}).Methods("POST")

	r.HandleFunc("/v2/checkout/orders", func(w http.ResponseWriter, _ *http.Request) {
		ord := paypal.Order{ID: fmt.Sprintf("paypal-%d", rand.Intn(100000))}
		web.Respond(context.Background(), w, ord, http.StatusOK)
	}).Methods("POST")

	r.HandleFunc("/v2/checkout/orders/{id}/capture", func(w http.ResponseWriter, _ *http.Request) {
		web.Respond(context.Background(), w, paypal.Order{Status: "COMPLETED"}, http.StatusOK)
	}).Methods("POST")

	return r
}

// NewTestEnv starts a postgres container, migrates it, seeds an admin and a
// regular user, and serves the API mux on an ephemeral port. Everything is
// torn down through t.Cleanup.
func NewTestEnv(t *testing.T, name string) (*TestEnv, error) {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("connecting to docker: %w", err)
	}

	res, err := pool.Run("postgres", "15-alpine", []string{
		"POSTGRES_USER=postgres",
		"POSTGRES_PASSWORD=postgres",
		"POSTGRES_DB=" + name,
	})
	if err != nil {
		return nil, fmt.Errorf("starting postgres container: %w", err)
	}
	t.Cleanup(func() { pool.Purge(res) })

	cfg := config.DB{
		User:       "postgres",
		Password:   "postgres",
		Host:       "localhost:" + res.GetPort("5432/tcp"),
		Name:       name,
		DisableTLS: true,
	}

	var db *sqlx.DB
	if err := pool.Retry(func() error {
		db, err = database.Open(cfg)
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return database.StatusCheck(ctx, db)
	}); err != nil {
		return nil, fmt.Errorf("waiting for postgres: %w", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("migrating: %w", err)
	}

	if err := seedUser(db, "Admin", AdminEmail, AdminPass, claims.RoleAdmin); err != nil {
		return nil, err
	}
	if err := seedUser(db, "Guest", UserEmail, UserPass, claims.RoleUser); err != nil {
		return nil, err
	}

	ppSrv := httptest.NewServer(mockPaypal())
	t.Cleanup(ppSrv.Close)

	pp, err := paypal.NewClient("test-client", "test-secret", ppSrv.URL)
	if err != nil {
		return nil, fmt.Errorf("building paypal client: %w", err)
	}
	if _, err := pp.GetAccessToken(context.Background()); err != nil {
		return nil, fmt.Errorf("fetching paypal token: %w", err)
	}

	log := logrus.New()
	log.SetOutput(io.Discard)

	session := scs.New()
	session.Lifetime = time.Hour

	stripeCfg := config.Stripe{WebhookSecret: webhookSecret}

	h := api.APIMux(api.APIConfig{
		Log:       log,
		DB:        db,
		Session:   session,
		Cache:     cache.New(config.Redis{Enabled: false}),
		Paypal:    pp,
		Stripe:    nil,
		StripeCfg: stripeCfg,
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("building cookie jar: %w", err)
	}

	return &TestEnv{
		DB:            db,
		Server:        srv,
		URL:           srv.URL,
		WebhookSecret: webhookSecret,
		client:        &http.Client{Jar: jar},
	}, nil
}

// Client returns the session-aware HTTP client of the env.
func (env *TestEnv) Client() *http.Client { return env.client }

func seedUser(db *sqlx.DB, name, email, password, role string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	u := user.User{
		ID:           validate.GenerateID(),
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	store := user.NewPostgresStore(db)
	if err := store.Create(context.Background(), u); err != nil {
		return fmt.Errorf("seeding user[%s]: %w", email, err)
	}
	return nil
}

// Login opens a session for the given account on the env's client.
func (env *TestEnv) Login(t *testing.T, email, password string) {
	t.Helper()

	body := map[string]string{"email": email, "password": password}
	w := env.do(t, http.MethodPost, "/auth/login", body, nil)
	if w.StatusCode != http.StatusOK {
		t.Fatalf("login as %s: status code %s", email, w.Status)
	}
	w.Body.Close()
}

// Logout closes the current session.
func (env *TestEnv) Logout(t *testing.T) {
	t.Helper()

	w := env.do(t, http.MethodPost, "/auth/logout", nil, nil)
	if w.StatusCode != http.StatusOK && w.StatusCode != http.StatusNoContent {
		t.Fatalf("logout: status code %s", w.Status)
	}
	w.Body.Close()
}

// Do sends a JSON request through the session-aware client and decodes the
// response into out when out is non-nil and the status matches.
func (env *TestEnv) Do(t *testing.T, method, path string, body any, wantStatus int, out any) {
	t.Helper()

	w := env.do(t, method, path, body, nil)
	defer w.Body.Close()

	if w.StatusCode != wantStatus {
		b, _ := io.ReadAll(w.Body)
		t.Fatalf("%s %s: status code %s, want %d (body: %s)", method, path, w.Status, wantStatus, b)
	}

	if out != nil {
		if err := json.NewDecoder(w.Body).Decode(out); err != nil {
			t.Fatalf("%s %s: decoding response: %v", method, path, err)
		}
	}
}

func (env *TestEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		rd = bytes.NewReader(b)
	}

	r, err := http.NewRequest(method, env.URL+path, rd)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		r.Header.Set(k, v)
	}

	w, err := env.client.Do(r)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return w
}
