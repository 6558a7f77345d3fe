package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks OriginService,PopularityService

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"nameorigin/internal/nameorigin/handler/mocks"
	"nameorigin/internal/nameorigin/models"
	"nameorigin/internal/popularity"
	dErrors "nameorigin/pkg/domain-errors"
)

type HandlerSuite struct {
	suite.Suite
	origins    *mocks.MockOriginService
	popularity *mocks.MockPopularityService
	router     chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.origins = mocks.NewMockOriginService(ctrl)
	s.popularity = mocks.NewMockPopularityService(ctrl)

	h := New(s.origins, s.popularity, slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.router = chi.NewRouter()
	h.Register(s.router)
}

func (s *HandlerSuite) get(target string) (*httptest.ResponseRecorder, map[string]any) {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	var body map[string]any
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func (s *HandlerSuite) TestNames_Success() {
	independent := true
	s.origins.EXPECT().Lookup(gomock.Any(), "Maria").Return(&models.NameQuery{
		Name: "Maria",
		Countries: []models.CountryScore{
			{Code: "RO", Probability: 0.157612345, Metadata: &models.CountryMetadata{
				Code: "RO", DisplayName: "Romania", Capital: "Bucharest", Independent: &independent,
				FlagURL: "https://flagcdn.com/w320/ro.png", Borders: []string{"BGR", "HUN"},
			}},
			{Code: "BR", Probability: 0.0684},
		},
	}, nil)

	rec, body := s.get("/names?name=Maria")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("application/json", rec.Header().Get("Content-Type"))
	s.Equal("Maria", body["name"])
	countries := body["countries"].([]any)
	s.Require().Len(countries, 2)

	ro := countries[0].(map[string]any)
	s.Equal("RO", ro["code"])
	s.Equal("Romania", ro["name"])
	s.Equal(0.1576, ro["probability"])
	s.Equal("Bucharest", ro["capital"])
	s.Equal(true, ro["independent"])
	s.Equal([]any{"BGR", "HUN"}, ro["borders"])

	br := countries[1].(map[string]any)
	s.Equal("BR", br["code"])
	s.NotContains(br, "name", "metadata fields are absent when enrichment failed")
	s.NotContains(br, "capital")
}

func (s *HandlerSuite) TestNames_EmptyResult() {
	s.origins.EXPECT().Lookup(gomock.Any(), "Xyzzyplonk").
		Return(&models.NameQuery{Name: "Xyzzyplonk", Countries: []models.CountryScore{}}, nil)

	rec, body := s.get("/names?name=Xyzzyplonk")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal([]any{}, body["countries"])
}

func (s *HandlerSuite) TestNames_Errors() {
	tests := []struct {
		name     string
		target   string
		err      error
		status   int
		wantCode string
	}{
		{"missing name", "/names", dErrors.New(dErrors.CodeBadRequest, "Query parameter 'name' is required."), http.StatusBadRequest, "bad_request"},
		{"empty name", "/names?name=", dErrors.New(dErrors.CodeBadRequest, "Query parameter 'name' is required."), http.StatusBadRequest, "bad_request"},
		{"upstream down", "/names?name=Maria", dErrors.New(dErrors.CodeUpstreamUnavailable, "name origin service unavailable"), http.StatusBadGateway, "upstream_unavailable"},
	}
	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.origins.EXPECT().Lookup(gomock.Any(), gomock.Any()).Return(nil, tt.err)

			rec, body := s.get(tt.target)

			s.Equal(tt.status, rec.Code)
			s.Equal(tt.wantCode, body["error"])
			s.NotEmpty(body["error_description"])
		})
	}
}

func (s *HandlerSuite) TestPopularNames_Success() {
	s.popularity.EXPECT().Top(gomock.Any(), "us", popularity.DefaultLimit).Return([]popularity.PopularName{
		{Name: "John", Count: 50},
		{Name: "Mike", Count: 30},
	}, nil)

	rec, body := s.get("/popular-names?country=us")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal("US", body["country"])
	topNames := body["top_names"].([]any)
	s.Require().Len(topNames, 2)
	s.Equal(map[string]any{"name": "John", "count": float64(50)}, topNames[0])
}

func (s *HandlerSuite) TestPopularNames_UnknownCountryIsEmpty() {
	s.popularity.EXPECT().Top(gomock.Any(), "ZZ", popularity.DefaultLimit).Return([]popularity.PopularName{}, nil)

	rec, body := s.get("/popular-names?country=ZZ")

	s.Equal(http.StatusOK, rec.Code)
	s.Equal([]any{}, body["top_names"])
}

func (s *HandlerSuite) TestPopularNames_MissingCountry() {
	rec, body := s.get("/popular-names")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("bad_request", body["error"])
}

func (s *HandlerSuite) TestPopularNames_Malformed() {
	s.popularity.EXPECT().Top(gomock.Any(), "USA", popularity.DefaultLimit).
		Return(nil, dErrors.New(dErrors.CodeBadRequest, "Query parameter 'country' must be a two-letter ISO code."))

	rec, body := s.get("/popular-names?country=USA")

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal("bad_request", body["error"])
}

func (s *HandlerSuite) TestPopularNames_InternalErrorHidesDescription() {
	s.popularity.EXPECT().Top(gomock.Any(), "RO", popularity.DefaultLimit).
		Return(nil, dErrors.New(dErrors.CodeInternal, "failed to load popular names"))

	rec, body := s.get("/popular-names?country=RO")

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal("internal_error", body["error"])
	s.NotContains(body, "error_description")
}

func TestRoundProbability(t *testing.T) {
	cases := map[float64]float64{
		0.157612345: 0.1576,
		0.02899:     0.029,
		1:           1,
		0:           0,
	}
	for in, want := range cases {
		if got := roundProbability(in); got != want {
			t.Errorf("roundProbability(%v) = %v, want %v", in, got, want)
		}
	}
}
