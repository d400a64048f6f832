// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"basha_price/internal/adapters/observability"
	"basha_price/internal/app"
	"basha_price/internal/domain"
)

type Handlers struct{ P *app.PredictionService }

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/cities", h.listCities)
	s.mux.Post("/v1/predictions", h.predict)
	s.mux.Get("/v1/predictions", h.listRecent)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON body failed")
	}
}

// rawBody mirrors the legacy form field names; all values arrive as
// untrusted strings and only the pipeline decides what they mean.
type rawBody struct {
	City      string `json:"city"`
	Location  string `json:"location"`
	Bedrooms  string `json:"bedrooms"`
	Bathrooms string `json:"bathrooms"`
	FloorArea string `json:"floor_area"`
	FloorNo   string `json:"floor_no"`
}

func decodeRaw(r *http.Request) (domain.RawRequest, bool) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var b rawBody
		if err := json.NewDecoder(r.Body).Decode(&b); err != nil {
			return domain.RawRequest{}, false
		}
		return domain.RawRequest{
			City: b.City, Location: b.Location,
			Bedrooms: b.Bedrooms, Bathrooms: b.Bathrooms,
			FloorArea: b.FloorArea, FloorNo: b.FloorNo,
		}, true
	}
	if err := r.ParseForm(); err != nil {
		return domain.RawRequest{}, false
	}
	// legacy form keys, capitalized as the original page posted them
	return domain.RawRequest{
		City:      r.PostForm.Get("City"),
		Location:  r.PostForm.Get("Location"),
		Bedrooms:  r.PostForm.Get("Bedrooms"),
		Bathrooms: r.PostForm.Get("Bathrooms"),
		FloorArea: r.PostForm.Get("Floor_area"),
		FloorNo:   r.PostForm.Get("Floor_no"),
	}, true
}

func statusFor(kind domain.FaultKind) int {
	switch kind {
	case domain.FaultMissingField, domain.FaultInvalidCity,
		domain.FaultInvalidNumber, domain.FaultOutOfRange:
		return http.StatusBadRequest
	case domain.FaultEncoding:
		return http.StatusUnprocessableEntity
	case domain.FaultInference:
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func (h *Handlers) predict(w http.ResponseWriter, r *http.Request) {
	raw, ok := decodeRaw(r)
	if !ok {
		writeProblem(w, http.StatusBadRequest, "Bad Request", "malformed request body")
		return
	}

	view, err := h.P.Predict(r.Context(), raw)
	if err != nil {
		kind := domain.KindOf(err)
		observability.ObservePrediction(kind.String())
		if statusFor(kind) >= 500 {
			log.Error().Err(err).Str("kind", kind.String()).Msg("prediction failed")
		}
		writeProblem(w, statusFor(kind), "Prediction Failed", app.UserMessage(err))
		return
	}
	observability.ObservePrediction("ok")
	writeJSON(w, http.StatusOK, view)
}

type cityDTO struct {
	Slug    string `json:"slug"`
	Display string `json:"display"`
}

func (h *Handlers) listCities(w http.ResponseWriter, r *http.Request) {
	out := make([]cityDTO, 0, domain.CityCount)
	for _, c := range domain.Cities() {
		out = append(out, cityDTO{Slug: c.Slug(), Display: c.Display()})
	}
	writeJSON(w, http.StatusOK, out)
}

type estimateDTO struct {
	City      string    `json:"city"`
	Location  string    `json:"location"`
	Bedrooms  int       `json:"bedrooms"`
	Bathrooms int       `json:"bathrooms"`
	FloorArea float64   `json:"floor_area"`
	FloorNo   int       `json:"floor_no"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *Handlers) listRecent(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > 200 {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and 200")
			return
		}
		limit = l
	}
	es, err := h.P.RecentEstimates(r.Context(), limit)
	if err != nil {
		log.Error().Err(err).Msg("list estimates failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not list estimates")
		return
	}
	out := make([]estimateDTO, 0, len(es))
	for _, e := range es {
		out = append(out, estimateDTO{
			City: e.City, Location: e.Location,
			Bedrooms: e.Bedrooms, Bathrooms: e.Bathrooms,
			FloorArea: e.FloorArea, FloorNo: e.FloorNo,
			Price: e.Price, CreatedAt: e.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, out)
}
