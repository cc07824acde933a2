package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	_ "github.com/mattn/go-sqlite3"

	"github.com/im-saif/Blogify/internal/model"
	"github.com/im-saif/Blogify/internal/store"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	schema := `
		CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			name TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			last_login_at DATETIME
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func testSessionManager() *scs.SessionManager {
	sm := scs.New()
	sm.Lifetime = 24 * time.Hour
	return sm
}

func sessionRequest(t *testing.T, sm *scs.SessionManager, r *http.Request) *http.Request {
	t.Helper()
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("failed to load session: %v", err)
	}
	return r.WithContext(ctx)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRedirectsAnonymous(t *testing.T) {
	sm := testSessionManager()
	handler := Auth(sm)(okHandler())

	r := sessionRequest(t, sm, httptest.NewRequest(http.MethodGet, "/new-post", nil))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d; want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect = %q; want /login", loc)
	}
}

func TestAuthAllowsLoggedIn(t *testing.T) {
	sm := testSessionManager()
	handler := Auth(sm)(okHandler())

	r := sessionRequest(t, sm, httptest.NewRequest(http.MethodGet, "/new-post", nil))
	sm.Put(r.Context(), SessionKeyUserID, int64(1))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d; want %d", w.Code, http.StatusOK)
	}
}

func TestLoadUserPutsUserInContext(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()

	now := time.Now()
	res, err := db.Exec(
		`INSERT INTO users (email, password_hash, role, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"jane@example.com", "x", model.RoleUser, "Jane Doe", now, now,
	)
	if err != nil {
		t.Fatal(err)
	}
	userID, _ := res.LastInsertId()

	var got *store.User
	handler := LoadUser(sm, db)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r)
	}))

	r := sessionRequest(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))
	sm.Put(r.Context(), SessionKeyUserID, userID)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if got == nil {
		t.Fatal("expected user in context")
	}
	if got.ID != userID || got.Name != "Jane Doe" {
		t.Errorf("user = (%d, %q); want (%d, %q)", got.ID, got.Name, userID, "Jane Doe")
	}
}

func TestLoadUserStaleSessionRedirects(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()

	handler := LoadUser(sm, db)(okHandler())

	r := sessionRequest(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))
	sm.Put(r.Context(), SessionKeyUserID, int64(42))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d; want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect = %q; want /login", loc)
	}
}

func TestAuthChainAllowsRegularUserWithoutAdmin(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager()

	now := time.Now()
	res, err := db.Exec(
		`INSERT INTO users (email, password_hash, role, name, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		"jane@example.com", "x", model.RoleUser, "Jane Doe", now, now,
	)
	if err != nil {
		t.Fatal(err)
	}
	userID, _ := res.LastInsertId()

	// The post-creation chain carries no admin requirement.
	handler := Auth(sm)(LoadUser(sm, db)(okHandler()))

	r := sessionRequest(t, sm, httptest.NewRequest(http.MethodGet, "/new-post", nil))
	sm.Put(r.Context(), SessionKeyUserID, userID)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d; want %d", w.Code, http.StatusOK)
	}
}

func TestRequireAdminForbidsNonAdmin(t *testing.T) {
	handler := RequireAdmin()(okHandler())

	user := store.User{ID: 2, Role: model.RoleUser, Name: "Jane Doe"}
	r := httptest.NewRequest(http.MethodGet, "/edit-post/1", nil)
	r = r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d; want %d", w.Code, http.StatusForbidden)
	}
	if loc := w.Header().Get("Location"); loc != "" {
		t.Errorf("unexpected redirect to %q", loc)
	}
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	handler := RequireAdmin()(okHandler())

	user := store.User{ID: 1, Role: model.RoleAdmin, Name: "Admin"}
	r := httptest.NewRequest(http.MethodGet, "/edit-post/1", nil)
	r = r.WithContext(context.WithValue(r.Context(), ContextKeyUser, user))
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusOK {
		t.Errorf("status = %d; want %d", w.Code, http.StatusOK)
	}
}

func TestRequireAdminRedirectsAnonymous(t *testing.T) {
	handler := RequireAdmin()(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/edit-post/1", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, r)

	if w.Code != http.StatusSeeOther {
		t.Errorf("status = %d; want %d", w.Code, http.StatusSeeOther)
	}
	if loc := w.Header().Get("Location"); loc != "/login" {
		t.Errorf("redirect = %q; want /login", loc)
	}
}

func TestGetUserIDWithoutUser(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := GetUserID(r); got != 0 {
		t.Errorf("GetUserID = %d; want 0", got)
	}
	if got := GetUserIDPtr(r); got != nil {
		t.Errorf("GetUserIDPtr = %v; want nil", got)
	}
}
