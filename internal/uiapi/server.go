package uiapi

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/awaistahir/skycast/internal/app"
	"github.com/awaistahir/skycast/internal/forecast"
	"github.com/awaistahir/skycast/internal/geo"
	"github.com/awaistahir/skycast/internal/present"
	"github.com/awaistahir/skycast/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Version is reported by /api/status
const Version = "1.0.0"

//go:embed static
var staticFS embed.FS

// HistoryReader lists past lookups
type HistoryReader interface {
	Lookups(ctx context.Context, limit int) ([]store.Lookup, error)
}

type Server struct {
	app     *app.App
	history HistoryReader
	page    *present.HTML
	loc     *time.Location
	logger  *zap.Logger
}

// NewServer creates the HTTP surface. history may be nil; loc is the zone
// used when the browser does not send one.
func NewServer(a *app.App, history HistoryReader, loc *time.Location, logger *zap.Logger) *Server {
	if loc == nil {
		loc = time.Local
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		app:     a,
		history: history,
		page:    present.NewHTML(),
		loc:     loc,
		logger:  logger,
	}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	// CORS for local development
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Get("/", s.serveUI)
	r.Get("/static/*", s.serveStatic)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Get("/weather", s.handleGetWeather)
		r.Get("/recent", s.handleGetRecent)
		r.Get("/suggestions", s.handleGetSuggestions)
		r.Get("/geolocation-error", s.handleGeolocationError)
		r.Get("/history", s.handleGetHistory)
	})

	return r
}

// weatherResponse is the body of a successful /api/weather call
type weatherResponse struct {
	Current  present.CurrentView `json:"current"`
	Forecast []present.Card      `json:"forecast"`
	Days     int                 `json:"days"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":   "ok",
		"version":  Version,
		"timezone": s.loc.String(),
		"recent":   len(s.app.Recent()),
	})
}

func (s *Server) handleGetWeather(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := &present.State{Zone: s.zone(q.Get("tz"))}

	var (
		res *app.Result
		err error
	)
	switch {
	case q.Has("city"):
		res, err = s.app.LookupCity(r.Context(), state, q.Get("city"))
	case q.Has("lat") || q.Has("lon"):
		lat, lon, perr := parseCoords(q)
		if perr != nil {
			respondError(w, http.StatusBadRequest, perr.Error())
			return
		}
		res, err = s.app.LookupCoords(r.Context(), state, lat, lon)
	default:
		respondError(w, http.StatusBadRequest, "city or lat and lon are required")
		return
	}

	if err != nil {
		respondError(w, lookupStatus(err), state.Error)
		return
	}

	respondJSON(w, http.StatusOK, weatherResponse{
		Current:  res.View,
		Forecast: res.Cards,
		Days:     forecast.DistinctDays(res.Forecast.Samples, state.Zone),
	})
}

func (s *Server) handleGetRecent(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.app.Recent())
}

func (s *Server) handleGetSuggestions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.app.Suggestions(r.URL.Query().Get("q")))
}

func (s *Server) handleGeolocationError(w http.ResponseWriter, r *http.Request) {
	err := geoError(r.URL.Query().Get("code"))
	respondJSON(w, http.StatusOK, map[string]string{
		"error": app.GeolocationMessage(err),
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		respondError(w, http.StatusNotFound, "history is not enabled")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	lookups, err := s.history.Lookups(r.Context(), limit)
	if err != nil {
		s.logger.Error("listing lookups", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "failed to list lookups")
		return
	}

	respondJSON(w, http.StatusOK, lookups)
}

// serveUI renders the widget page. The browser script forwards the search,
// the position or the geolocation failure as query parameters.
func (s *Server) serveUI(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	state := &present.State{Zone: s.zone(q.Get("tz"))}
	page := present.Page{TimeZone: q.Get("tz"), State: state}

	switch {
	case q.Has("geo_error"):
		s.app.GeolocationFailed(state, geoError(q.Get("geo_error")))
	case q.Has("lat") || q.Has("lon"):
		lat, lon, err := parseCoords(q)
		if err != nil {
			state.ShowError(app.MsgLocationFailed)
			break
		}
		s.app.LookupCoords(r.Context(), state, lat, lon)
	case q.Has("city"):
		page.Query = q.Get("city")
		s.app.LookupCity(r.Context(), state, page.Query)
	}
	page.Recent = s.app.Recent()

	var buf bytes.Buffer
	if err := s.page.Render(&buf, page); err != nil {
		s.logger.Error("rendering page", zap.Error(err))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func (s *Server) serveStatic(w http.ResponseWriter, r *http.Request) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	// Disable caching for development
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.Header().Set("Pragma", "no-cache")
	w.Header().Set("Expires", "0")
	http.StripPrefix("/static/", http.FileServer(http.FS(sub))).ServeHTTP(w, r)
}

// zone resolves the browser's IANA zone name, falling back to the server's
func (s *Server) zone(name string) *time.Location {
	if name == "" {
		return s.loc
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		s.logger.Debug("unknown time zone", zap.String("tz", name), zap.Error(err))
		return s.loc
	}
	return loc
}

func parseCoords(q url.Values) (float64, float64, error) {
	lat, err := strconv.ParseFloat(q.Get("lat"), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid latitude %q", q.Get("lat"))
	}
	lon, err := strconv.ParseFloat(q.Get("lon"), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid longitude %q", q.Get("lon"))
	}
	return lat, lon, nil
}

// geoError converts what the browser reports: a position error code, or
// "unsupported" when it has no geolocation at all
func geoError(v string) error {
	if v == "unsupported" {
		return geo.ErrUnsupported
	}
	code, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("unknown geolocation failure %q", v)
	}
	return geo.FromCode(code)
}

func lookupStatus(err error) int {
	var verr *app.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	return http.StatusBadGateway
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
