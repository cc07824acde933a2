package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/im-saif/Blogify/internal/model"
)

func TestHomeListsPosts(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewPostHandler(db, testRenderer(t, sm), sm)

	admin := createTestUser(t, db, testUser{Email: "admin@example.com", Name: "Admin", Role: model.RoleAdmin})
	createTestPost(t, db, "First Post", admin.ID)
	createTestPost(t, db, "Second Post", admin.ID)

	r := requestWithSession(sm, httptest.NewRequest(http.MethodGet, "/", nil))
	w := httptest.NewRecorder()

	h.Home(w, r)

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	if !strings.Contains(body, "First Post") || !strings.Contains(body, "Second Post") {
		t.Error("expected both posts on the index page")
	}
}

func TestByAuthorTitleCasesName(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewPostHandler(db, testRenderer(t, sm), sm)

	author := createTestUser(t, db, testUser{Email: "jane@example.com", Name: "Jane Doe", Role: model.RoleUser})
	other := createTestUser(t, db, testUser{Email: "bob@example.com", Name: "Bob Smith", Role: model.RoleUser})
	createTestPost(t, db, "Jane's Post", author.ID)
	createTestPost(t, db, "Bob's Post", other.ID)

	r := httptest.NewRequest(http.MethodGet, "/posts/jane%20doe", nil)
	r = requestWithSession(sm, requestWithURLParams(r, map[string]string{"name": "jane doe"}))
	w := httptest.NewRecorder()

	h.ByAuthor(w, r)

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	if !strings.Contains(body, "Jane&#39;s Post") {
		t.Error("expected the author's post on the page")
	}
	if strings.Contains(body, "Bob&#39;s Post") {
		t.Error("did not expect another author's post on the page")
	}
}

func TestByAuthorUnknownName(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewPostHandler(db, testRenderer(t, sm), sm)

	r := httptest.NewRequest(http.MethodGet, "/posts/nobody", nil)
	r = requestWithSession(sm, requestWithURLParams(r, map[string]string{"name": "nobody"}))
	w := httptest.NewRecorder()

	h.ByAuthor(w, r)

	assertStatus(t, w.Code, http.StatusNotFound)
}

func TestShowRendersPostWithComments(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewPostHandler(db, testRenderer(t, sm), sm)

	admin := createTestUser(t, db, testUser{Email: "admin@example.com", Name: "Admin", Role: model.RoleAdmin})
	reader := createTestUser(t, db, testUser{Email: "jane@example.com", Name: "Jane Doe", Role: model.RoleUser})
	post := createTestPost(t, db, "Commented Post", admin.ID)

	if _, err := db.Exec(
		`INSERT INTO comments (body, author_id, post_id, created_at) VALUES (?, ?, ?, ?)`,
		"Nice writeup!", reader.ID, post.ID, time.Now(),
	); err != nil {
		t.Fatal(err)
	}

	r := httptest.NewRequest(http.MethodGet, "/post/1", nil)
	r = requestWithSession(sm, requestWithURLParams(r, map[string]string{"id": "1"}))
	w := httptest.NewRecorder()

	h.Show(w, r)

	assertStatus(t, w.Code, http.StatusOK)
	body := w.Body.String()
	if !strings.Contains(body, "Commented Post") {
		t.Error("expected post title on the page")
	}
	if !strings.Contains(body, "Nice writeup!") {
		t.Error("expected comment body on the page")
	}
}

func TestShowUnknownPost(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewPostHandler(db, testRenderer(t, sm), sm)

	r := httptest.NewRequest(http.MethodGet, "/post/99", nil)
	r = requestWithSession(sm, requestWithURLParams(r, map[string]string{"id": "99"}))
	w := httptest.NewRecorder()

	h.Show(w, r)

	assertStatus(t, w.Code, http.StatusNotFound)
}

func TestShowRejectsBadID(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewPostHandler(db, testRenderer(t, sm), sm)

	r := httptest.NewRequest(http.MethodGet, "/post/abc", nil)
	r = requestWithSession(sm, requestWithURLParams(r, map[string]string{"id": "abc"}))
	w := httptest.NewRecorder()

	h.Show(w, r)

	assertStatus(t, w.Code, http.StatusNotFound)
}

func TestCreateStampsAuthorAndDate(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewPostHandler(db, testRenderer(t, sm), sm)

	admin := createTestUser(t, db, testUser{Email: "admin@example.com", Name: "Admin", Role: model.RoleAdmin})

	r := postForm(t, "/new-post", url.Values{
		"title":    {"A Fresh Post"},
		"subtitle": {"With a subtitle"},
		"img_url":  {"https://example.com/header.jpg"},
		"body":     {"Some body text"},
	})
	r = requestWithSession(sm, requestWithUser(r, admin))
	w := httptest.NewRecorder()

	h.Create(w, r)

	assertStatus(t, w.Code, http.StatusSeeOther)

	var authorID int64
	var publishedOn string
	err := db.QueryRow(`SELECT author_id, published_on FROM posts WHERE title = ?`, "A Fresh Post").
		Scan(&authorID, &publishedOn)
	if err != nil {
		t.Fatalf("post was not created: %v", err)
	}
	if authorID != admin.ID {
		t.Errorf("author_id = %d; want %d", authorID, admin.ID)
	}
	if want := time.Now().Format(publishedOnLayout); publishedOn != want {
		t.Errorf("published_on = %q; want %q", publishedOn, want)
	}
}

func TestCreateByRegularUser(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewPostHandler(db, testRenderer(t, sm), sm)

	user := createTestUser(t, db, testUser{Email: "jane@example.com", Name: "Jane Doe", Role: model.RoleUser})

	r := postForm(t, "/new-post", url.Values{
		"title":    {"A Reader Writes"},
		"subtitle": {"Anyone logged in can publish"},
		"img_url":  {"https://example.com/header.jpg"},
		"body":     {"Some body text"},
	})
	r = requestWithSession(sm, requestWithUser(r, user))
	w := httptest.NewRecorder()

	h.Create(w, r)

	assertStatus(t, w.Code, http.StatusSeeOther)
	if loc := w.Header().Get("Location"); loc != RouteRoot {
		t.Errorf("redirect = %q; want %q", loc, RouteRoot)
	}

	var authorID int64
	if err := db.QueryRow(`SELECT author_id FROM posts WHERE title = ?`, "A Reader Writes").Scan(&authorID); err != nil {
		t.Fatalf("post was not created: %v", err)
	}
	if authorID != user.ID {
		t.Errorf("author_id = %d; want %d", authorID, user.ID)
	}
}

func TestCreateRejectsMissingImageURL(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewPostHandler(db, testRenderer(t, sm), sm)

	admin := createTestUser(t, db, testUser{Email: "admin@example.com", Name: "Admin", Role: model.RoleAdmin})

	r := postForm(t, "/new-post", url.Values{
		"title":    {"No Image"},
		"subtitle": {"Subtitle"},
		"img_url":  {""},
		"body":     {"Body text"},
	})
	r = requestWithSession(sm, requestWithUser(r, admin))
	w := httptest.NewRecorder()

	h.Create(w, r)

	assertStatus(t, w.Code, http.StatusSeeOther)
	if loc := w.Header().Get("Location"); loc != RouteNewPost {
		t.Errorf("redirect = %q; want %q", loc, RouteNewPost)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("post count = %d; want 0", count)
	}
}

func TestCreateRejectsDuplicateTitle(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewPostHandler(db, testRenderer(t, sm), sm)

	admin := createTestUser(t, db, testUser{Email: "admin@example.com", Name: "Admin", Role: model.RoleAdmin})
	createTestPost(t, db, "Taken Title", admin.ID)

	r := postForm(t, "/new-post", url.Values{
		"title":    {"Taken Title"},
		"subtitle": {"Different subtitle"},
		"img_url":  {"https://example.com/other.jpg"},
		"body":     {"Different body"},
	})
	r = requestWithSession(sm, requestWithUser(r, admin))
	w := httptest.NewRecorder()

	h.Create(w, r)

	assertStatus(t, w.Code, http.StatusSeeOther)
	if loc := w.Header().Get("Location"); loc != RouteNewPost {
		t.Errorf("redirect = %q; want %q", loc, RouteNewPost)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("post count = %d; want 1", count)
	}
}

func TestUpdateReassignsAuthorKeepsDate(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewPostHandler(db, testRenderer(t, sm), sm)

	original := createTestUser(t, db, testUser{Email: "first@example.com", Name: "First Admin", Role: model.RoleAdmin})
	editor := createTestUser(t, db, testUser{Email: "second@example.com", Name: "Second Admin", Role: model.RoleAdmin})
	post := createTestPost(t, db, "Original Title", original.ID)

	r := postForm(t, "/edit-post/1", url.Values{
		"title":    {"Updated Title"},
		"subtitle": {"Updated subtitle"},
		"img_url":  {"https://example.com/new.jpg"},
		"body":     {"Updated body"},
	})
	r = requestWithSession(sm, requestWithUser(requestWithURLParams(r, map[string]string{"id": "1"}), editor))
	w := httptest.NewRecorder()

	h.Update(w, r)

	assertStatus(t, w.Code, http.StatusSeeOther)

	var title, publishedOn string
	var authorID int64
	err := db.QueryRow(`SELECT title, published_on, author_id FROM posts WHERE id = ?`, post.ID).
		Scan(&title, &publishedOn, &authorID)
	if err != nil {
		t.Fatal(err)
	}
	if title != "Updated Title" {
		t.Errorf("title = %q; want %q", title, "Updated Title")
	}
	if publishedOn != post.PublishedOn {
		t.Errorf("published_on changed to %q; want %q", publishedOn, post.PublishedOn)
	}
	if authorID != editor.ID {
		t.Errorf("author_id = %d; want editing admin %d", authorID, editor.ID)
	}
}

func TestDeleteCascadesComments(t *testing.T) {
	db := testDB(t)
	sm := testSessionManager(t)
	h := NewPostHandler(db, testRenderer(t, sm), sm)

	admin := createTestUser(t, db, testUser{Email: "admin@example.com", Name: "Admin", Role: model.RoleAdmin})
	reader := createTestUser(t, db, testUser{Email: "jane@example.com", Name: "Jane Doe", Role: model.RoleUser})
	post := createTestPost(t, db, "Doomed Post", admin.ID)

	if _, err := db.Exec(
		`INSERT INTO comments (body, author_id, post_id, created_at) VALUES (?, ?, ?, ?)`,
		"Soon to be gone", reader.ID, post.ID, time.Now(),
	); err != nil {
		t.Fatal(err)
	}

	r := postForm(t, "/delete/1", url.Values{})
	r = requestWithSession(sm, requestWithUser(requestWithURLParams(r, map[string]string{"id": "1"}), admin))
	w := httptest.NewRecorder()

	h.Delete(w, r)

	assertStatus(t, w.Code, http.StatusSeeOther)

	var posts, comments int
	if err := db.QueryRow(`SELECT COUNT(*) FROM posts`).Scan(&posts); err != nil {
		t.Fatal(err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM comments`).Scan(&comments); err != nil {
		t.Fatal(err)
	}
	if posts != 0 {
		t.Errorf("post count = %d; want 0", posts)
	}
	if comments != 0 {
		t.Errorf("comment count = %d; want 0", comments)
	}

	// The audit entry records how many comments went with the post
	var metadata string
	if err := db.QueryRow(`SELECT metadata FROM events WHERE message = ?`, "Post deleted").Scan(&metadata); err != nil {
		t.Fatalf("delete event was not written: %v", err)
	}
	if !strings.Contains(metadata, `"comments_removed":1`) {
		t.Errorf("event metadata = %q; want comments_removed 1", metadata)
	}

	// A second delete finds nothing
	r = postForm(t, "/delete/1", url.Values{})
	r = requestWithSession(sm, requestWithUser(requestWithURLParams(r, map[string]string{"id": "1"}), admin))
	w = httptest.NewRecorder()
	h.Delete(w, r)
	assertStatus(t, w.Code, http.StatusNotFound)
}
