package render

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/im-saif/Blogify/internal/store"
	"github.com/im-saif/Blogify/web"
)

type indexData struct {
	Posts  []store.ListPostsRow
	Author string
}

func testRenderer(t *testing.T, sm *scs.SessionManager) *Renderer {
	t.Helper()
	r, err := New(Config{
		TemplatesFS:    web.Templates(),
		SessionManager: sm,
		IsDev:          true,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func sessionRequest(t *testing.T, sm *scs.SessionManager, r *http.Request) *http.Request {
	t.Helper()
	ctx, err := sm.Load(r.Context(), "")
	if err != nil {
		t.Fatalf("loading session: %v", err)
	}
	return r.WithContext(ctx)
}

func TestMarkdownRendersAndSanitizes(t *testing.T) {
	out := string(Markdown("**bold** text <script>alert(1)</script>"))

	if !strings.Contains(out, "<strong>bold</strong>") {
		t.Errorf("markdown output missing strong tag: %q", out)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("markdown output contains script tag: %q", out)
	}
}

func TestMarkdownStripsEventHandlers(t *testing.T) {
	out := string(Markdown(`<a href="https://example.com" onclick="steal()">link</a>`))
	if strings.Contains(out, "onclick") {
		t.Errorf("markdown output contains event handler: %q", out)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	sm := scs.New()
	renderer := testRenderer(t, sm)

	r := sessionRequest(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))
	w := httptest.NewRecorder()

	if err := renderer.Render(w, r, "no-such-page", TemplateData{}); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestRenderPopsFlashOnce(t *testing.T) {
	sm := scs.New()
	sm.Lifetime = time.Hour
	renderer := testRenderer(t, sm)

	r := sessionRequest(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))
	renderer.SetFlash(r, "Post published.", "success")

	w := httptest.NewRecorder()
	if err := renderer.Render(w, r, "index", TemplateData{Title: "Home", Data: indexData{}}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(w.Body.String(), "Post published.") {
		t.Error("expected flash message in rendered page")
	}
	if !strings.Contains(w.Body.String(), "alert-success") {
		t.Error("expected success styling for flash message")
	}

	// Second render of the same session shows no flash
	w = httptest.NewRecorder()
	if err := renderer.Render(w, r, "index", TemplateData{Title: "Home", Data: indexData{}}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(w.Body.String(), "Post published.") {
		t.Error("flash message rendered twice")
	}
}

func TestRenderSetsCurrentYear(t *testing.T) {
	sm := scs.New()
	renderer := testRenderer(t, sm)

	r := sessionRequest(t, sm, httptest.NewRequest(http.MethodGet, "/", nil))
	w := httptest.NewRecorder()

	if err := renderer.Render(w, r, "about", TemplateData{Title: "About"}); err != nil {
		t.Fatalf("Render: %v", err)
	}

	year := time.Now().Format("2006")
	if !strings.Contains(w.Body.String(), year) {
		t.Errorf("expected current year %s in footer", year)
	}
}
