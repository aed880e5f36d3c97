// Package api exposes the country dictionary over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/countrydict/pkg/country"
	"github.com/sells-group/countrydict/pkg/dataset"
	"github.com/sells-group/countrydict/pkg/geocode"
)

// RequestIDHeader carries the per-request id on responses.
const RequestIDHeader = "X-Request-ID"

// Lookup is the subset of *country.Dictionary the API serves.
type Lookup interface {
	All() []country.Record
	ByName(name string) *country.Record
	ByPhone(phone string) *country.Record
	ByCapital(capital string) *country.Record
	Languages(name string) []string
	ByContinent(continent dataset.Continent) []country.Record
	ByCurrency(currency string) []country.Record
	ByLanguage(lang string) []country.Record
	ByAddress(ctx context.Context, address string) (*country.Record, error)
	InContinent(ctx context.Context, address string, continent dataset.Continent) (bool, error)
}

type server struct {
	dict Lookup
}

// NewRouter builds the HTTP handler. corsOrigins lists the allowed origins.
func NewRouter(dict Lookup, corsOrigins []string) http.Handler {
	s := &server{dict: dict}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)
	r.Use(logRequests)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/countries", func(r chi.Router) {
		r.Get("/", s.listCountries)
		r.Get("/{name}", s.getCountry)
		r.Get("/{name}/languages", s.getLanguages)
	})
	r.Get("/phone/{prefix}", s.getByPhone)
	r.Get("/capital/{capital}", s.getByCapital)
	r.Get("/resolve", s.resolve)
	r.Get("/in/{continent}", s.inContinent)

	return r
}

func (s *server) listCountries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records := s.dict.All()

	if c := q.Get("continent"); c != "" {
		cont, ok := dataset.ParseContinent(c)
		if !ok {
			writeError(w, http.StatusBadRequest, "unknown continent "+c)
			return
		}
		records = intersect(records, s.dict.ByContinent(cont))
	}
	if c := q.Get("currency"); c != "" {
		records = intersect(records, s.dict.ByCurrency(strings.ToUpper(c)))
	}
	if l := q.Get("language"); l != "" {
		records = intersect(records, s.dict.ByLanguage(l))
	}

	writeJSON(w, http.StatusOK, records)
}

// intersect keeps the records of a that also appear in b, in a's order.
func intersect(a, b []country.Record) []country.Record {
	keep := make(map[string]bool, len(b))
	for _, r := range b {
		keep[r.Name] = true
	}
	out := []country.Record{}
	for _, r := range a {
		if keep[r.Name] {
			out = append(out, r)
		}
	}
	return out
}

func (s *server) getCountry(w http.ResponseWriter, r *http.Request) {
	writeRecord(w, s.dict.ByName(chi.URLParam(r, "name")))
}

func (s *server) getLanguages(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if s.dict.ByName(name) == nil {
		writeError(w, http.StatusNotFound, "country not found")
		return
	}
	writeJSON(w, http.StatusOK, s.dict.Languages(name))
}

func (s *server) getByPhone(w http.ResponseWriter, r *http.Request) {
	writeRecord(w, s.dict.ByPhone(chi.URLParam(r, "prefix")))
}

func (s *server) getByCapital(w http.ResponseWriter, r *http.Request) {
	writeRecord(w, s.dict.ByCapital(chi.URLParam(r, "capital")))
}

func (s *server) resolve(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "address is required")
		return
	}

	rec, err := s.dict.ByAddress(r.Context(), address)
	if err != nil {
		writeGeocodeError(w, err)
		return
	}
	writeRecord(w, rec)
}

func (s *server) inContinent(w http.ResponseWriter, r *http.Request) {
	cont, ok := dataset.ParseContinent(chi.URLParam(r, "continent"))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown continent "+chi.URLParam(r, "continent"))
		return
	}
	address := r.URL.Query().Get("address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "address is required")
		return
	}

	in, err := s.dict.InContinent(r.Context(), address, cont)
	if err != nil {
		writeGeocodeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"address":   address,
		"continent": cont,
		"in":        in,
	})
}

func writeRecord(w http.ResponseWriter, rec *country.Record) {
	if rec == nil {
		writeError(w, http.StatusNotFound, "country not found")
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// writeGeocodeError maps geocoding failures onto HTTP statuses.
func writeGeocodeError(w http.ResponseWriter, err error) {
	var (
		nr *geocode.NoResultsError
		te *geocode.TransportError
	)
	switch {
	case errors.Is(err, geocode.ErrMissingGoogleKey):
		writeError(w, http.StatusServiceUnavailable, err.Error())
	case errors.As(err, &nr):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, err.Error())
	case errors.As(err, &te):
		writeError(w, http.StatusBadGateway, err.Error())
	default:
		zap.L().Error("api: geocode failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requestID tags each request with an id, reusing one sent by the client.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		zap.L().Info("api request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", w.Header().Get(RequestIDHeader)),
		)
	})
}
