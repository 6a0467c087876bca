package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/wanderlust/web/internal/middleware"
	"github.com/wanderlust/web/internal/model"
	"github.com/wanderlust/web/internal/session"
	"github.com/wanderlust/web/web"
)

var templateFuncs = template.FuncMap{
	"formatDate": func(t time.Time) string {
		return t.Format("Jan 2, 2006")
	},
	// recordID strips the table prefix off a SurrealDB record ID for URLs
	"recordID": func(id string) string {
		if i := strings.Index(id, ":"); i >= 0 {
			return id[i+1:]
		}
		return id
	},
	"stars": func(rating int) string {
		out := ""
		for i := 1; i <= model.MaxRating; i++ {
			if i <= rating {
				out += "★"
			} else {
				out += "☆"
			}
		}
		return out
	},
}

// pageNames lists every page template, each rendered inside the layout
var pageNames = []string{
	"listings/index",
	"listings/show",
	"listings/new",
	"listings/edit",
	"users/signup",
	"users/login",
	"error",
}

// Renderer renders page templates from the embedded filesystem
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses all page templates up front so a broken template
// fails at startup, not on first request.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.New("layout.html").
			Funcs(templateFuncs).
			ParseFS(web.FS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// PageData is the data every page template receives
type PageData struct {
	Title         string
	CurrentUserID string
	Flash         session.Flashes
	Data          interface{}
}

// Render executes a page template into a buffer first, so template errors
// become a clean 500 instead of a half-written response.
func (rd *Renderer) Render(w http.ResponseWriter, status int, page string, data *PageData) {
	t, ok := rd.pages[page]
	if !ok {
		slog.Error("unknown page template", slog.String("page", page))
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		slog.Error("template execution failed",
			slog.String("page", page),
			slog.Any("error", err),
		)
		http.Error(w, "Something went wrong", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// Error renders the error page with the given status and message
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, sessions *session.Manager, httpErr *model.HTTPError) {
	data := newPageData(w, r, sessions, "Error", httpErr)
	rd.Render(w, httpErr.StatusCode, "error", data)
}

// newPageData assembles the common template data: the signed-in user and
// any pending flash messages. Popping flashes writes the session cookie,
// so this must run before the response body.
func newPageData(w http.ResponseWriter, r *http.Request, sessions *session.Manager, title string, data interface{}) *PageData {
	return &PageData{
		Title:         title,
		CurrentUserID: middleware.GetUserID(r.Context()),
		Flash:         sessions.PopFlashes(w, r),
		Data:          data,
	}
}
