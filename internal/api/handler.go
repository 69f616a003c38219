package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/launchdash/launchdash/internal/dashboard"
	"github.com/launchdash/launchdash/internal/launches"
	"github.com/launchdash/launchdash/internal/metrics"
	"github.com/launchdash/launchdash/internal/render"
	"github.com/launchdash/launchdash/internal/store"
)

// PNG size limits accepted from ?width= and ?height=.
const (
	minImageSide = 100
	maxImageSide = 4000
)

// Handler is the HTTP handler for all /api/v1/* endpoints.
// It reads the current table from the store on every request.
type Handler struct {
	store   *store.Store
	render  render.Options
	metrics *metrics.Metrics
	mux     *http.ServeMux
}

// New creates a Handler wired to st and registers all routes. m may be nil.
func New(st *store.Store, ro render.Options, m *metrics.Metrics) http.Handler {
	h := &Handler{store: st, render: ro, metrics: m, mux: http.NewServeMux()}

	h.handle("/api/v1/health", h.health)
	h.handle("/api/v1/controls", h.controls)
	h.handle("/api/v1/charts/pie", h.pie)
	h.handle("/api/v1/charts/scatter", h.scatter)
	h.handle("/api/v1/charts/pie.png", h.piePNG)
	h.handle("/api/v1/charts/scatter.png", h.scatterPNG)
	h.handle("/api/v1/launches", h.listLaunches)

	return h
}

func (h *Handler) handle(route string, fn http.HandlerFunc) {
	h.mux.Handle(route, h.metrics.Middleware(route, getOnly(fn)))
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// --- route handlers ---------------------------------------------------------

// health returns GET /api/v1/health — what dataset is being served.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	snap := h.store.Current()
	t := snap.Table
	jsonResp(w, http.StatusOK, HealthResponse{
		Status:      "ok",
		Rows:        t.Len(),
		Sites:       t.Sites(),
		MinPayload:  t.MinPayload(),
		MaxPayload:  t.MaxPayload(),
		DatasetPath: snap.Path,
		LoadedAt:    snap.LoadedAt.UTC().Format(time.RFC3339),
	})
}

// controls returns GET /api/v1/controls — the dropdown and slider contract.
func (h *Handler) controls(w http.ResponseWriter, r *http.Request) {
	jsonResp(w, http.StatusOK, dashboard.NewControls(h.store.Table()))
}

// pie returns GET /api/v1/charts/pie — the success pie for ?site=.
func (h *Handler) pie(w http.ResponseWriter, r *http.Request) {
	spec, err := h.pieSpec(h.store.Table(), r.URL.Query())
	if err != nil {
		selectionErr(w, err)
		return
	}
	jsonResp(w, http.StatusOK, spec)
}

// scatter returns GET /api/v1/charts/scatter — payload vs. outcome.
func (h *Handler) scatter(w http.ResponseWriter, r *http.Request) {
	spec, err := h.scatterSpec(h.store.Table(), r.URL.Query())
	if err != nil {
		selectionErr(w, err)
		return
	}
	jsonResp(w, http.StatusOK, spec)
}

// piePNG returns GET /api/v1/charts/pie.png.
func (h *Handler) piePNG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec, err := h.pieSpec(h.store.Table(), q)
	if err != nil {
		selectionErr(w, err)
		return
	}
	h.writePNG(w, spec, q)
}

// scatterPNG returns GET /api/v1/charts/scatter.png.
func (h *Handler) scatterPNG(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	spec, err := h.scatterSpec(h.store.Table(), q)
	if err != nil {
		selectionErr(w, err)
		return
	}
	h.writePNG(w, spec, q)
}

// listLaunches returns GET /api/v1/launches — the rows the scatter would plot.
func (h *Handler) listLaunches(w http.ResponseWriter, r *http.Request) {
	t := h.store.Table()
	sel, err := ParseSelection(t, r.URL.Query())
	if err != nil {
		selectionErr(w, err)
		return
	}
	rows, err := dashboard.Filter(t, sel)
	if err != nil {
		selectionErr(w, err)
		return
	}
	jsonResp(w, http.StatusOK, LaunchesResponse{Selection: sel, Count: len(rows), Launches: rows})
}

// --- helpers ----------------------------------------------------------------

func (h *Handler) pieSpec(t *launches.Table, q url.Values) (*dashboard.ChartSpec, error) {
	site := q.Get("site")
	if site == "" {
		site = dashboard.AllSites
	}
	spec, err := dashboard.Pie(t, site)
	h.metrics.ObserveReducer(dashboard.KindPie, err)
	return spec, err
}

func (h *Handler) scatterSpec(t *launches.Table, q url.Values) (*dashboard.ChartSpec, error) {
	sel, err := ParseSelection(t, q)
	if err != nil {
		return nil, err
	}
	spec, err := dashboard.Scatter(t, sel)
	h.metrics.ObserveReducer(dashboard.KindScatter, err)
	return spec, err
}

func (h *Handler) writePNG(w http.ResponseWriter, spec *dashboard.ChartSpec, q url.Values) {
	opts := h.render
	var err error
	if opts.Width, err = imageSide(q, "width", opts.Width); err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	if opts.Height, err = imageSide(q, "height", opts.Height); err != nil {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}

	var buf bytes.Buffer
	if err := render.PNG(&buf, spec, opts); err != nil {
		slog.Error("api: render failed", "kind", spec.Kind, "err", err)
		jsonErr(w, http.StatusInternalServerError, "render failed")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck
}

// ParseSelection reads site, low and high from q. Missing values default to
// all sites and the table's payload bounds. The result is validated.
func ParseSelection(t *launches.Table, q url.Values) (dashboard.Selection, error) {
	sel := dashboard.DefaultSelection(t)
	if s := q.Get("site"); s != "" {
		sel.Site = s
	}
	var err error
	if sel.Low, err = floatParam(q, "low", sel.Low); err != nil {
		return sel, err
	}
	if sel.High, err = floatParam(q, "high", sel.High); err != nil {
		return sel, err
	}
	return sel, sel.Validate(t)
}

func floatParam(q url.Values, name string, def float64) (float64, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, &dashboard.InvalidSelectionError{
			Field: "payload",
			Value: fmt.Sprintf("%s=%q", name, raw),
			Err:   dashboard.ErrInvalidRange,
		}
	}
	return v, nil
}

func imageSide(q url.Values, name string, def int) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < minImageSide || v > maxImageSide {
		return 0, fmt.Errorf("%s must be an integer in [%d, %d]", name, minImageSide, maxImageSide)
	}
	return v, nil
}

func getOnly(fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			jsonErr(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		fn(w, r)
	}
}

func selectionErr(w http.ResponseWriter, err error) {
	if errors.Is(err, dashboard.ErrInvalidSelection) {
		jsonErr(w, http.StatusBadRequest, err.Error())
		return
	}
	slog.Error("api: reducer failed", "err", err)
	jsonErr(w, http.StatusInternalServerError, "internal error")
}

func jsonResp(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func jsonErr(w http.ResponseWriter, code int, msg string) {
	jsonResp(w, code, errorResponse{Error: msg})
}
