package ui

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log/slog"
	"math"
	"net/http"
	"strconv"

	"github.com/launchdash/launchdash/internal/dashboard"
	"github.com/launchdash/launchdash/internal/store"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var funcMap = template.FuncMap{
	"num":  formatNum,
	"snap": snapToStep,
}

func formatNum(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// snapToStep returns v as the slider will hold it: the nearest step above
// min, clamped to the slider bounds.
func snapToStep(v float64, sl dashboard.Slider) string {
	if sl.Step > 0 {
		v = sl.Min + math.Round((v-sl.Min)/sl.Step)*sl.Step
	}
	v = math.Max(sl.Min, math.Min(sl.Max, v))
	return formatNum(v)
}

var pageTmpl = template.Must(template.New("index.html").Funcs(funcMap).ParseFS(templateFS, "templates/index.html"))

// pageData is the template input for the dashboard page.
type pageData struct {
	dashboard.Controls
	Rows       int
	SocketPath string
}

// Handler serves the dashboard page and its static assets.
type Handler struct {
	store *store.Store
	mux   *http.ServeMux
}

// New returns a Handler rendering the page from the table held by st.
func New(st *store.Store) http.Handler {
	h := &Handler{store: st, mux: http.NewServeMux()}

	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // embedded directory is always present
	}
	h.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(sub))))
	h.mux.HandleFunc("/", h.index)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	t := h.store.Table()
	data := pageData{
		Controls:   dashboard.NewControls(t),
		Rows:       t.Len(),
		SocketPath: "/ws/session",
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		slog.Error("ui: template error", "err", err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes()) //nolint:errcheck
}
