package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"gestured/internal/common/fsutil"
	"gestured/internal/imaging"
	"gestured/internal/manager"
	"gestured/pkg/types"
)

// Service defines the methods required by the HTTP API layer.
type Service interface {
	Health() types.HealthResponse
	Available() types.AvailableResponse
	Status() types.StatusResponse
	Predict(img imaging.Image, model string, threshold float64) types.PredictionResult
	Compare(img imaging.Image, models []string, threshold float64) types.ComparisonResult
	Defaults() manager.Defaults
	Ready() bool
}

// NewMux builds the HTTP router over svc.
func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	// Basic middlewares: request id, real ip, recoverer
	r.Use(RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	if corsEnabled {
		r.Use(cors.Handler(corsOptions()))
	}
	// Compression for JSON endpoints
	r.Use(middleware.Compress(5))
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})

	h := &handlers{svc: svc}

	r.Get("/health", h.liveness)
	r.Route("/api/models", func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/available", h.available)
		r.Get("/status", h.status)
		r.Post("/predict", h.predict)
		r.Post("/predict/path", h.predictPath)
		r.Post("/compare", h.compare)
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if svc.Ready() {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte("ready"))
			return
		}
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("loading"))
	})

	// Prometheus metrics endpoint
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	MountSwagger(r)
	return r
}

type handlers struct {
	svc Service
}

// liveness godoc
// @Summary      Service liveness
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *handlers) liveness(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy", "service": "gestured"})
}

// health godoc
// @Summary      Registry health
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.HealthResponse
// @Router       /api/models/health [get]
func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Health())
}

// available godoc
// @Summary      Loaded model metadata
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.AvailableResponse
// @Router       /api/models/available [get]
func (h *handlers) available(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Available())
}

// status godoc
// @Summary      Health plus load diagnostics
// @Tags         models
// @Produce      json
// @Success      200  {object}  types.StatusResponse
// @Router       /api/models/status [get]
func (h *handlers) status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.Status())
}

// predict godoc
// @Summary      Classify a base64 image with one model
// @Tags         inference
// @Accept       json
// @Produce      json
// @Param        request  body      types.PredictRequest  true  "Prediction request"
// @Success      200      {object}  types.PredictionResult
// @Failure      400      {object}  types.ErrorResponse
// @Failure      404      {object}  types.PredictionResult
// @Failure      415      {object}  types.ErrorResponse
// @Failure      500      {object}  types.PredictionResult
// @Router       /api/models/predict [post]
func (h *handlers) predict(w http.ResponseWriter, r *http.Request) {
	var req types.PredictRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	img, err := decodeBase64Image(req.Image)
	if err == nil {
		img, err = applyCrop(img, req.Crop)
	}
	if err != nil {
		rejected("invalid_image")
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.runPredict(w, r, img, req.Model, req.ConfidenceThreshold)
}

// predictPath godoc
// @Summary      Classify an image file under the server's image root
// @Tags         inference
// @Accept       json
// @Produce      json
// @Param        request  body      types.PathPredictRequest  true  "Path prediction request"
// @Success      200      {object}  types.PredictionResult
// @Failure      400      {object}  types.ErrorResponse
// @Failure      403      {object}  types.ErrorResponse
// @Failure      404      {object}  types.ErrorResponse
// @Router       /api/models/predict/path [post]
func (h *handlers) predictPath(w http.ResponseWriter, r *http.Request) {
	if imageRoot == "" {
		writeJSONError(w, http.StatusNotFound, errImageRootUnset.Error())
		return
	}
	var req types.PathPredictRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Path) == "" {
		rejected("missing_path")
		writeJSONError(w, http.StatusBadRequest, "path is required")
		return
	}
	img, err := openUnderRoot(req.Path)
	if err == nil {
		img, err = applyCrop(img, req.Crop)
	}
	switch {
	case err == nil:
	case errors.Is(err, fsutil.ErrOutsideRoot):
		rejected("forbidden_path")
		writeJSONError(w, http.StatusForbidden, "path is outside the image root")
		return
	case errors.Is(err, os.ErrNotExist):
		writeJSONError(w, http.StatusNotFound, "image not found: "+req.Path)
		return
	default:
		rejected("invalid_image")
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.runPredict(w, r, img, req.Model, req.ConfidenceThreshold)
}

func (h *handlers) runPredict(w http.ResponseWriter, r *http.Request, img imaging.Image, model string, threshold *float64) {
	defs := h.svc.Defaults()
	th, err := resolveThreshold(threshold, defs.Threshold)
	if err != nil {
		rejected("bad_threshold")
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	if model == "" {
		model = defs.Model
	}
	lg := newReqLog(r)
	lg.begin("predict start", model)

	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	res, err := await(ctx, func() types.PredictionResult { return h.svc.Predict(img, model, th) })
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		lg.end("predict end", http.StatusServiceUnavailable, err)
		writeJSONError(w, http.StatusServiceUnavailable, "server shutting down")
		return
	}
	code := predictStatus(res)
	var failure error
	if !res.Success {
		failure = errors.New(res.Error)
	}
	lg.end("predict end", code, failure)
	lg.debug("predict result", res)
	writeJSON(w, code, res)
}

// compare godoc
// @Summary      Run one image through several models
// @Tags         inference
// @Accept       json
// @Produce      json
// @Param        request  body      types.CompareRequest  true  "Comparison request"
// @Success      200      {object}  types.ComparisonResult
// @Failure      400      {object}  types.ErrorResponse
// @Failure      415      {object}  types.ErrorResponse
// @Router       /api/models/compare [post]
func (h *handlers) compare(w http.ResponseWriter, r *http.Request) {
	var req types.CompareRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	img, err := decodeBase64Image(req.Image)
	if err == nil {
		img, err = applyCrop(img, req.Crop)
	}
	if err != nil {
		rejected("invalid_image")
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	defs := h.svc.Defaults()
	th, err := resolveThreshold(req.ConfidenceThreshold, defs.Threshold)
	if err != nil {
		rejected("bad_threshold")
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}
	models := defs.CompareModels
	if req.Models != nil {
		models = *req.Models
	}
	lg := newReqLog(r)
	lg.begin("compare start", strings.Join(models, ","))

	ctx, cancel := joinContexts(serverBaseCtx, r.Context())
	defer cancel()
	res, err := await(ctx, func() types.ComparisonResult { return h.svc.Compare(img, models, th) })
	if err != nil {
		if r.Context().Err() != nil {
			return
		}
		lg.end("compare end", http.StatusServiceUnavailable, err)
		writeJSONError(w, http.StatusServiceUnavailable, "server shutting down")
		return
	}
	lg.end("compare end", http.StatusOK, nil)
	lg.debug("compare result", res)
	writeJSON(w, http.StatusOK, res)
}

// decodeJSON enforces the JSON content type and body limit, then decodes
// into v. It writes the error response itself and reports success.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		rejected("unsupported_media_type")
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			rejected("body_too_large")
			writeJSONError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return false
		}
		rejected("bad_json")
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
