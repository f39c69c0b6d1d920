package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"voicedetect/internal/model"
	"voicedetect/internal/service"
	"voicedetect/internal/transport/rest/middleware"
)

// DetectionHandler handles voice detection endpoints
type DetectionHandler struct {
	detectSvc *service.DetectionService
	maxBytes  int64
}

// detectionBody mirrors model.VoiceDetectionRequest with pointers so that
// missing and null fields can be told apart from empty strings
type detectionBody struct {
	Language    *string `json:"language"`
	AudioFormat *string `json:"audioFormat"`
	AudioBase64 *string `json:"audioBase64"`
}

// request returns false unless all three fields are present strings
func (b *detectionBody) request() (*model.VoiceDetectionRequest, bool) {
	if b.Language == nil || b.AudioFormat == nil || b.AudioBase64 == nil {
		return nil, false
	}
	return &model.VoiceDetectionRequest{
		Language:    *b.Language,
		AudioFormat: *b.AudioFormat,
		AudioBase64: *b.AudioBase64,
	}, true
}

// NewDetectionHandler creates a new detection handler. maxBytes caps the
// request body; zero or less means no cap.
func NewDetectionHandler(detectSvc *service.DetectionService, maxBytes int64) *DetectionHandler {
	return &DetectionHandler{
		detectSvc: detectSvc,
		maxBytes:  maxBytes,
	}
}

// Detect handles POST /api/voice-detection
//
//	@Summary		Classify a voice clip
//	@Description	Classifies a base64-encoded MP3 clip as AI_GENERATED or HUMAN
//	@Tags			detection
//	@Accept			json
//	@Produce		json
//	@Param			x-api-key	header		string						true	"API key"
//	@Param			request		body		model.VoiceDetectionRequest	true	"Clip to classify"
//	@Success		200			{object}	model.VoiceDetectionResponse
//	@Failure		400			{object}	model.ErrorResponse
//	@Failure		401			{object}	model.ErrorResponse
//	@Failure		500			{object}	model.ErrorResponse
//	@Failure		504			{object}	model.ErrorResponse
//	@Router			/api/voice-detection [post]
func (h *DetectionHandler) Detect(w http.ResponseWriter, r *http.Request) {
	if h.maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	}

	var body detectionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, model.MessageInvalidRequest)
		return
	}
	req, ok := body.request()
	if !ok {
		writeError(w, http.StatusBadRequest, model.MessageInvalidRequest)
		return
	}

	resp, err := h.detectSvc.Detect(r.Context(), req)
	if err != nil {
		status, message := detectionError(err)
		if status >= http.StatusInternalServerError {
			log.Printf("[Detection] request %s failed: %v", middleware.GetRequestID(r.Context()), err)
		}
		writeError(w, status, message)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Stats handles GET /api/stats
//
//	@Summary	Verdict counters
//	@Tags		detection
//	@Produce	json
//	@Param		x-api-key	header		string	true	"API key"
//	@Success	200			{object}	model.VerdictStats
//	@Failure	401			{object}	model.ErrorResponse
//	@Router		/api/stats [get]
func (h *DetectionHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.detectSvc.Stats(r.Context())
	if err != nil {
		log.Printf("[Detection] failed to read stats: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to read stats")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func detectionError(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrUnsupportedFormat):
		return http.StatusBadRequest, model.MessageUnsupportedFormat
	case errors.Is(err, service.ErrInvalidBase64):
		return http.StatusBadRequest, model.MessageInvalidBase64
	case errors.Is(err, service.ErrAnalysisTimeout):
		return http.StatusGatewayTimeout, model.MessageAnalysisTimeout
	default:
		return http.StatusInternalServerError, model.MessageAnalysisFailed
	}
}
