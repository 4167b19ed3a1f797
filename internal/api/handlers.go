package api

import (
	"errors"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ngmaloney/surf-terminal/internal/apperr"
	"github.com/ngmaloney/surf-terminal/internal/models"
	"github.com/ngmaloney/surf-terminal/internal/report"
	"github.com/ngmaloney/surf-terminal/internal/spots"
	"github.com/ngmaloney/surf-terminal/internal/surf"
)

var endpoints = map[string]string{
	"health":  "/api/health",
	"spots":   "/api/spots",
	"search":  "/api/spots/search?q=福隆",
	"weather": "/api/weather",
	"nearby":  "/api/weather/nearby?lat=24.87&lon=121.84",
	"spot":    "/api/weather/:spot (e.g., /api/weather/wushi)",
	"assess":  "/api/assess?height=1.2&period=9&windDir=270&windSpeed=10&facing=90",
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"message":   "台灣浪況評估 API 運作中",
		"endpoints": endpoints,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, r, apperr.NewAppError(apperr.ErrCodeNotFoundRoute, "no route for "+r.URL.Path, nil))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.spots.Ping(); err != nil {
		s.logger.Warn("health check failed", zap.String("component", "spots"), zap.Error(err))
		writeJSON(w, r, http.StatusServiceUnavailable, map[string]any{
			"status":     "UNAVAILABLE",
			"components": map[string]string{"spots": err.Error()},
		})
		return
	}
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":     "OK",
		"components": map[string]string{"spots": "OK"},
	})
}

func (s *Server) handleListSpots(w http.ResponseWriter, r *http.Request) {
	list, err := s.spots.List()
	if err != nil {
		writeError(w, r, apperr.NewAppError(apperr.ErrCodeInternalDB, "failed to list spots", err))
		return
	}
	writeData(w, r, list)
}

func (s *Server) handleSearchSpots(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, r, missingField("q"))
		return
	}
	list, err := s.spots.Search(q)
	if err != nil {
		writeError(w, r, apperr.NewAppError(apperr.ErrCodeInternalDB, "failed to search spots", err))
		return
	}
	if list == nil {
		list = []models.Spot{}
	}
	writeData(w, r, list)
}

func (s *Server) handleAllWeather(w http.ResponseWriter, r *http.Request) {
	list, err := s.spots.List()
	if err != nil {
		writeError(w, r, apperr.NewAppError(apperr.ErrCodeInternalDB, "failed to list spots", err))
		return
	}
	reports, err := s.reports.BuildReports(r.Context(), list)
	if err != nil {
		writeError(w, r, apperr.NewAppError(apperr.ErrCodeUpstreamCWA, "failed to build surf reports", err))
		return
	}
	if reports == nil {
		reports = []*report.SpotReport{}
	}
	writeData(w, r, reports)
}

func (s *Server) handleNearbyWeather(w http.ResponseWriter, r *http.Request) {
	lat, err := parseCoordinate(r, "lat", 90, apperr.ErrCodeValidationInvalidLat)
	if err != nil {
		writeError(w, r, err)
		return
	}
	lon, err := parseCoordinate(r, "lon", 180, apperr.ErrCodeValidationInvalidLon)
	if err != nil {
		writeError(w, r, err)
		return
	}

	nearest, err := s.spots.Nearest(lat, lon)
	if err != nil {
		writeError(w, r, spotError(err, "no surf spot near the given coordinates"))
		return
	}
	s.writeReport(w, r, nearest.Spot)
}

func (s *Server) handleSpotWeather(w http.ResponseWriter, r *http.Request) {
	query := chi.URLParam(r, "spot")
	res, err := s.spots.Resolve(r.Context(), query)
	if err != nil {
		writeError(w, r, spotError(err, "unknown surf spot: "+query))
		return
	}
	s.writeReport(w, r, res.Spot)
}

func (s *Server) writeReport(w http.ResponseWriter, r *http.Request, spot models.Spot) {
	rep, err := s.reports.BuildSpotReport(r.Context(), spot)
	if err != nil {
		writeError(w, r, apperr.NewAppError(apperr.ErrCodeUpstreamCWA, "failed to build surf report", err))
		return
	}
	writeJSON(w, r, http.StatusOK, successResponse{Success: true, Spot: spot.Name, Data: rep})
}

// assessQuery is the validated form of the /api/assess parameters.
type assessQuery struct {
	Height    float64  `validate:"gte=0,lte=30"`
	Period    float64  `validate:"gte=0,lte=30"`
	WindSpeed float64  `validate:"gte=0,lte=300"`
	Facing    *float64 `validate:"omitempty,gte=0,lt=360"`
	Safety    string   `validate:"omitempty,oneof=safe warning danger"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		in  assessQuery
		err error
	)
	if in.Height, err = requiredFloat(q.Get("height"), "height"); err != nil {
		writeError(w, r, err)
		return
	}
	if in.Period, err = requiredFloat(q.Get("period"), "period"); err != nil {
		writeError(w, r, err)
		return
	}
	if raw := q.Get("windSpeed"); raw != "" {
		if in.WindSpeed, err = requiredFloat(raw, "windSpeed"); err != nil {
			writeError(w, r, err)
			return
		}
	}
	if raw := q.Get("facing"); raw != "" {
		v, err := requiredFloat(raw, "facing")
		if err != nil {
			writeError(w, r, err)
			return
		}
		in.Facing = &v
	}
	in.Safety = q.Get("safety")

	if err := s.validate.Struct(in); err != nil {
		code := apperr.ErrCodeValidationInvalidNumber
		if strings.Contains(err.Error(), "Safety") {
			code = apperr.ErrCodeValidationInvalidSafety
		}
		writeError(w, r, apperr.NewAppError(code, "invalid assessment parameters", err).
			WithDetails(map[string]any{"reason": err.Error()}))
		return
	}

	input := surf.Input{
		WaveHeight:   in.Height,
		WavePeriod:   in.Period,
		WindSpeedKmh: in.WindSpeed,
		BeachFacing:  in.Facing,
		SafetyLevel:  surf.SafetyLevel(in.Safety),
	}
	if c := q.Get("concerns"); c != "" {
		input.Concerns = strings.Split(c, ",")
	}
	if input.WindDirectionDegrees, input.WindDirectionText, err = parseWindDir(q.Get("windDir")); err != nil {
		writeError(w, r, err)
		return
	}

	writeData(w, r, surf.Evaluate(input))
}

func missingField(name string) *apperr.AppError {
	return apperr.NewAppError(apperr.ErrCodeValidationMissingField, "missing required parameter: "+name, nil).
		WithDetails(map[string]any{"field": name})
}

func requiredFloat(raw, name string) (float64, error) {
	if raw == "" {
		return 0, missingField(name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !surf.IsFinite(v) {
		return 0, apperr.NewAppError(apperr.ErrCodeValidationInvalidNumber, name+" must be a number", err).
			WithDetails(map[string]any{"field": name})
	}
	return v, nil
}

// parseWindDir accepts degrees or a Chinese direction such as 東北風. A
// numeric value must be finite.
func parseWindDir(raw string) (*float64, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, "", nil
	}
	deg, err := strconv.ParseFloat(raw, 64)
	switch {
	case err == nil && surf.IsFinite(deg):
		return &deg, "", nil
	case err == nil || errors.Is(err, strconv.ErrRange):
		return nil, "", apperr.NewAppError(apperr.ErrCodeValidationInvalidNumber, "windDir must be a finite bearing", err).
			WithDetails(map[string]any{"field": "windDir"})
	}
	return nil, raw, nil
}

func parseCoordinate(r *http.Request, name string, limit float64, code apperr.ErrorCode) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, missingField(name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || v < -limit || v > limit {
		return 0, apperr.NewAppError(code, "invalid "+name+": "+raw, err)
	}
	return v, nil
}

// spotError maps lookup failures onto API errors. Upstream AppErrors such as
// a geocoder outage pass through unchanged.
func spotError(err error, message string) error {
	var appErr *apperr.AppError
	switch {
	case errors.Is(err, spots.ErrSpotNotFound):
		return apperr.NewAppError(apperr.ErrCodeNotFoundSpot, message, err)
	case errors.As(err, &appErr):
		return appErr
	default:
		return apperr.NewAppError(apperr.ErrCodeInternalDB, "failed to look up spot", err)
	}
}
