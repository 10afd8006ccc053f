// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/danielhkuo/biryani-lagbe/cliparse"
	"github.com/danielhkuo/biryani-lagbe/identity"
	"github.com/danielhkuo/biryani-lagbe/middleware"
	"github.com/danielhkuo/biryani-lagbe/models"
	"github.com/danielhkuo/biryani-lagbe/reports"
	"github.com/danielhkuo/biryani-lagbe/uploads"
)

const (
	// jsonBodyLimit caps non-multipart request bodies.
	jsonBodyLimit = 64 << 10
	// multipartMemory is kept in memory before ParseMultipartForm spills to disk.
	multipartMemory = 1 << 20

	DefaultRadiusKm = 3.0
	MaxRadiusKm     = 50.0
)

type ReportHandler struct {
	store   reports.Store
	uploads *uploads.Dir
	clock   reports.Clock
	cfg     cliparse.Config
}

func NewReportHandler(store reports.Store, cfg cliparse.Config) *ReportHandler {
	return &ReportHandler{
		store:   store,
		uploads: uploads.New(cfg.UploadDir, cfg.MaxUploadBytes),
		clock:   reports.NewClock(cfg.Location),
		cfg:     cfg,
	}
}

// storeContext bounds how long a request may wait on the store.
func (h *ReportHandler) storeContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.cfg.StoreTimeout <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), h.cfg.StoreTimeout)
}

// eventDate returns the date query parameter, or today when absent.
func (h *ReportHandler) eventDate(q url.Values) (string, bool) {
	date := strings.TrimSpace(q.Get("date"))
	if date == "" {
		return h.clock.Today(), true
	}
	return date, reports.IsDate(date)
}

// List handles GET /api/mosques
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date, ok := h.eventDate(q)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date must be a YYYY-MM-DD date")
		return
	}

	box, err := reports.ParseBoundingBox(q.Get("bbox"))
	if err != nil {
		writeStoreError(w, "parse bbox", err)
		return
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	list, err := h.store.List(ctx, reports.Filter{
		EventDate:  date,
		SearchText: q.Get("q"),
		FoodType:   q.Get("quickFood"),
		Box:        box,
	})
	if err != nil {
		writeStoreError(w, "list reports", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, list)
}

// Nearby handles GET /api/mosques/nearby
func (h *ReportHandler) Nearby(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	date, ok := h.eventDate(q)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date must be a YYYY-MM-DD date")
		return
	}

	lat, err := reports.ParseCoordinate("lat", q.Get("lat"))
	if err != nil {
		writeStoreError(w, "parse lat", err)
		return
	}
	lng, err := reports.ParseCoordinate("lng", q.Get("lng"))
	if err != nil {
		writeStoreError(w, "parse lng", err)
		return
	}
	if lat == nil || lng == nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "lat and lng are required")
		return
	}
	if math.Abs(*lat) > 90 || math.Abs(*lng) > 180 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid latitude/longitude")
		return
	}

	radius := DefaultRadiusKm
	if raw := strings.TrimSpace(q.Get("radiusKm")); raw != "" {
		radius, err = strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(radius) || radius <= 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "radiusKm must be a positive number")
			return
		}
	}
	radius = math.Min(radius, MaxRadiusKm)

	ctx, cancel := h.storeContext(r)
	defer cancel()

	list, err := h.store.List(ctx, reports.Filter{EventDate: date})
	if err != nil {
		writeStoreError(w, "list reports", err)
		return
	}

	origin := models.Location{Lat: *lat, Lng: *lng}
	middleware.JSONResponse(w, http.StatusOK, reports.Nearby(list, origin, radius))
}

// Get handles GET /api/mosques/{id}
func (h *ReportHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	ctx, cancel := h.storeContext(r)
	defer cancel()

	report, err := h.store.Get(ctx, id)
	if err != nil {
		writeStoreError(w, "get report", err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, report)
}

// Create handles POST /api/mosques. The body may be JSON, a urlencoded form
// or a multipart form carrying a proofImage file.
func (h *ReportHandler) Create(w http.ResponseWriter, r *http.Request) {
	mediaType := "application/json"
	if ct := r.Header.Get("Content-Type"); ct != "" {
		var err error
		mediaType, _, err = mime.ParseMediaType(ct)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusUnsupportedMediaType, "Unsupported content type")
			return
		}
	}

	var draft reports.Draft
	var proof *multipart.FileHeader
	switch mediaType {
	case "application/json":
		r.Body = http.MaxBytesReader(w, r.Body, jsonBodyLimit)
		var req models.CreateReportRequest
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			if isTooLarge(err) {
				middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		draft = reports.DraftFromRequest(req)

	case "application/x-www-form-urlencoded":
		r.Body = http.MaxBytesReader(w, r.Body, jsonBodyLimit)
		if err := r.ParseForm(); err != nil {
			if isTooLarge(err) {
				middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
				return
			}
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
			return
		}
		var err error
		if draft, err = formDraft(r.PostForm); err != nil {
			writeStoreError(w, "parse form", err)
			return
		}

	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxUploadBytes)
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			if isTooLarge(err) {
				middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge,
					(&uploads.TooLargeError{Limit: h.cfg.MaxUploadBytes}).Error())
				return
			}
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid form")
			return
		}
		defer r.MultipartForm.RemoveAll()
		var err error
		if draft, err = formDraft(r.MultipartForm.Value); err != nil {
			writeStoreError(w, "parse form", err)
			return
		}
		proof = proofFile(r)

	default:
		middleware.ErrorResponse(w, http.StatusUnsupportedMediaType, "Unsupported content type")
		return
	}

	// Reject bad fields before anything touches the upload directory.
	if _, err := draft.Validate(h.clock.Today()); err != nil {
		writeStoreError(w, "validate report", err)
		return
	}

	if proof != nil {
		rel, err := h.uploads.Save(proof)
		if err != nil {
			writeUploadError(w, err)
			return
		}
		draft.ProofImage = rel
	}

	ctx, cancel := h.storeContext(r)
	defer cancel()

	report, err := h.store.Create(ctx, draft)
	if err != nil {
		if draft.ProofImage != "" {
			if rmErr := h.uploads.Remove(draft.ProofImage); rmErr != nil {
				slog.Warn("failed to remove orphaned upload", "error", rmErr)
			}
		}
		writeStoreError(w, "create report", err)
		return
	}

	slog.Info("report created",
		"report_id", report.ID,
		"food_type", report.FoodType,
		"event_date", report.EventDate,
		"proof", report.ProofImage != nil,
		"ip", identity.HashIP(middleware.GetClientIP(r), h.cfg.ClientIDSalt),
	)

	middleware.JSONResponse(w, http.StatusCreated, report)
}

// formDraft reads report fields from form values. A coordinate that does not
// parse is reported only once the name is known to be present, so the name
// is still checked first.
func formDraft(form url.Values) (reports.Draft, error) {
	d := reports.Draft{
		Name:       form.Get("name"),
		FoodType:   form.Get("foodType"),
		PrayerSlot: form.Get("prayerSlot"),
		EventDate:  firstValue(form, "eventDate", "date"),
		StartTime:  form.Get("startTime"),
		EndTime:    form.Get("endTime"),
	}

	var err error
	if d.Lat, err = reports.ParseCoordinate("lat", form.Get("lat")); err != nil && strings.TrimSpace(d.Name) != "" {
		return reports.Draft{}, err
	}
	if d.Lng, err = reports.ParseCoordinate("lng", form.Get("lng")); err != nil && strings.TrimSpace(d.Name) != "" {
		return reports.Draft{}, err
	}
	return d, nil
}

func firstValue(form url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(form.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

// proofFile returns the uploaded proofImage, or nil when none was sent.
func proofFile(r *http.Request) *multipart.FileHeader {
	files := r.MultipartForm.File["proofImage"]
	if len(files) == 0 || files[0].Filename == "" {
		return nil
	}
	return files[0]
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

func writeUploadError(w http.ResponseWriter, err error) {
	var tooLarge *uploads.TooLargeError
	var unsupported *uploads.UnsupportedError
	switch {
	case errors.As(err, &tooLarge):
		middleware.ErrorResponse(w, http.StatusRequestEntityTooLarge, tooLarge.Error())
	case errors.As(err, &unsupported):
		middleware.ErrorResponse(w, http.StatusUnsupportedMediaType, unsupported.Error())
	case errors.Is(err, io.ErrUnexpectedEOF):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Upload was interrupted")
	default:
		slog.Error("failed to save upload", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to save image")
	}
}
