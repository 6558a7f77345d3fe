package handler

import (
	"context"
	"log/slog"
	"math"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nameorigin/internal/nameorigin/models"
	"nameorigin/internal/popularity"
	dErrors "nameorigin/pkg/domain-errors"
	"nameorigin/pkg/platform/httputil"
	"nameorigin/pkg/requestcontext"
)

// OriginService resolves a name to its ranked countries.
type OriginService interface {
	Lookup(ctx context.Context, name string) (*models.NameQuery, error)
}

// PopularityService answers top-names queries.
type PopularityService interface {
	Top(ctx context.Context, countryCode string, limit int) ([]popularity.PopularName, error)
}

// Handler serves the name-origin endpoints. Authentication is applied by
// the router before these handlers run.
type Handler struct {
	origins    OriginService
	popularity PopularityService
	logger     *slog.Logger
}

func New(origins OriginService, popular PopularityService, logger *slog.Logger) *Handler {
	return &Handler{
		origins:    origins,
		popularity: popular,
		logger:     logger,
	}
}

// Register mounts the routes on r. Paths are matched with or without a
// trailing slash by the router's StripSlashes middleware.
func (h *Handler) Register(r chi.Router) {
	r.Get("/names", h.HandleNames)
	r.Get("/popular-names", h.HandlePopularNames)
}

// HandleNames serves GET /names/?name=.
func (h *Handler) HandleNames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	name := r.URL.Query().Get("name")
	result, err := h.origins.Lookup(ctx, name)
	if err != nil {
		h.logFailure(ctx, "name lookup failed", err, requestID)
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, toNameResponse(result))
}

// HandlePopularNames serves GET /popular-names/?country=.
func (h *Handler) HandlePopularNames(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	raw := r.URL.Query().Get("country")
	if raw == "" {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "Query parameter 'country' is required."))
		return
	}

	names, err := h.popularity.Top(ctx, raw, popularity.DefaultLimit)
	if err != nil {
		h.logFailure(ctx, "popular names query failed", err, requestID)
		httputil.WriteError(w, err)
		return
	}

	code, _ := models.NormalizeCountryCode(raw)
	resp := popularNamesResponse{Country: code, TopNames: make([]popularNameResponse, 0, len(names))}
	for _, n := range names {
		resp.TopNames = append(resp.TopNames, popularNameResponse(n))
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) logFailure(ctx context.Context, msg string, err error, requestID string) {
	code := dErrors.CodeOf(err)
	level := slog.LevelError
	if code == dErrors.CodeBadRequest || code == dErrors.CodeValidation {
		level = slog.LevelInfo
	}
	h.logger.Log(ctx, level, msg,
		"error", err,
		"code", code,
		"request_id", requestID,
	)
}

type nameResponse struct {
	Name      string            `json:"name"`
	Countries []countryResponse `json:"countries"`
}

// countryResponse flattens score and metadata into one object. Metadata
// fields are omitted when enrichment failed.
type countryResponse struct {
	Code             string   `json:"code"`
	Name             string   `json:"name,omitempty"`
	Probability      float64  `json:"probability"`
	Alpha3           string   `json:"alpha3,omitempty"`
	OfficialName     string   `json:"official_name,omitempty"`
	Region           string   `json:"region,omitempty"`
	Independent      *bool    `json:"independent,omitempty"`
	Capital          string   `json:"capital,omitempty"`
	CapitalLat       *float64 `json:"capital_lat,omitempty"`
	CapitalLng       *float64 `json:"capital_lng,omitempty"`
	GoogleMapsURL    string   `json:"google_maps_url,omitempty"`
	OpenStreetMapURL string   `json:"openstreetmap_url,omitempty"`
	FlagURL          string   `json:"flag_url,omitempty"`
	FlagSVG          string   `json:"flag_svg,omitempty"`
	FlagAlt          string   `json:"flag_alt,omitempty"`
	CoatOfArmsPNG    string   `json:"coat_of_arms_png,omitempty"`
	CoatOfArmsSVG    string   `json:"coat_of_arms_svg,omitempty"`
	Borders          []string `json:"borders,omitempty"`
}

type popularNamesResponse struct {
	Country  string                `json:"country"`
	TopNames []popularNameResponse `json:"top_names"`
}

type popularNameResponse struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func toNameResponse(q *models.NameQuery) nameResponse {
	resp := nameResponse{Name: q.Name, Countries: make([]countryResponse, 0, len(q.Countries))}
	for _, c := range q.Countries {
		cr := countryResponse{
			Code:        c.Code,
			Probability: roundProbability(c.Probability),
		}
		if md := c.Metadata; md != nil {
			cr.Name = md.DisplayName
			cr.Alpha3 = md.Alpha3
			cr.OfficialName = md.OfficialName
			cr.Region = md.Region
			cr.Independent = md.Independent
			cr.Capital = md.Capital
			cr.CapitalLat = md.CapitalLat
			cr.CapitalLng = md.CapitalLng
			cr.GoogleMapsURL = md.GoogleMapsURL
			cr.OpenStreetMapURL = md.OpenStreetMapURL
			cr.FlagURL = md.FlagURL
			cr.FlagSVG = md.FlagSVG
			cr.FlagAlt = md.FlagAlt
			cr.CoatOfArmsPNG = md.CoatOfArmsPNG
			cr.CoatOfArmsSVG = md.CoatOfArmsSVG
			cr.Borders = md.Borders
		}
		resp.Countries = append(resp.Countries, cr)
	}
	return resp
}

func roundProbability(p float64) float64 {
	return math.Round(p*10000) / 10000
}
