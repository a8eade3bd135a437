package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/kdduha/genai-relay/internal/mimetype"
	"github.com/kdduha/genai-relay/internal/models"
	"github.com/rs/zerolog/hlog"
)

type generateService interface {
	Generate(ctx context.Context, req *models.GenerationRequest) (*models.GenerationResult, error)
}

type GenerateHandler struct {
	service        generateService
	maxUploadBytes int64
}

func NewGenerateHandler(service generateService, maxUploadBytes int64) *GenerateHandler {
	return &GenerateHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
	}
}

// GenerateText godoc
// @Summary Generate from text
// @Description Send a plain prompt to the model.
// @Tags generate
// @Accept json
// @Produce json
// @Param request body models.TextRequest true "Prompt"
// @Success 200 {object} models.GenerationResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /generate-text [post]
func (h *GenerateHandler) GenerateText(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.uploadError(w, r, err)
		return
	}

	var req models.TextRequest
	if len(body) > 0 {
		if err := sonic.Unmarshal(body, &req); err != nil {
			writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid JSON: %s", err))
			return
		}
	}

	h.generate(w, r, &models.GenerationRequest{
		Modality: models.ModalityText,
		Prompt:   req.Prompt,
	})
}

// GenerateFromImage godoc
// @Summary Generate from image
// @Description Send an image and an optional prompt to the model.
// @Tags generate
// @Accept multipart/form-data
// @Produce json
// @Param prompt formData string false "Prompt"
// @Param image formData file true "Image file"
// @Success 200 {object} models.GenerationResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /generate-from-image [post]
func (h *GenerateHandler) GenerateFromImage(w http.ResponseWriter, r *http.Request) {
	h.generateFromUpload(w, r, models.ModalityImage)
}

// GenerateFromAudio godoc
// @Summary Generate from audio
// @Description Send an mp3, wav or ogg file to the model. The prompt defaults to a transcription request.
// @Tags generate
// @Accept multipart/form-data
// @Produce json
// @Param prompt formData string false "Prompt"
// @Param audio formData file true "Audio file"
// @Success 200 {object} models.GenerationResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /generate-from-audio [post]
func (h *GenerateHandler) GenerateFromAudio(w http.ResponseWriter, r *http.Request) {
	h.generateFromUpload(w, r, models.ModalityAudio)
}

// GenerateFromDocument godoc
// @Summary Generate from document
// @Description Send a document to the model. The prompt defaults to a summarization request.
// @Tags generate
// @Accept multipart/form-data
// @Produce json
// @Param prompt formData string false "Prompt"
// @Param document formData file true "Document file"
// @Success 200 {object} models.GenerationResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 413 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /generate-from-document [post]
func (h *GenerateHandler) GenerateFromDocument(w http.ResponseWriter, r *http.Request) {
	h.generateFromUpload(w, r, models.ModalityDocument)
}

// Health godoc
// @Summary Health check
// @Tags system
// @Produce json
// @Success 200 {object} models.HealthResponse
// @Router /health [get]
func (h *GenerateHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, models.HealthResponse{Status: "ok"})
}

func (h *GenerateHandler) generateFromUpload(w http.ResponseWriter, r *http.Request, modality models.Modality) {
	field := string(modality)

	file, prompt, err := h.readUpload(w, r, field)
	if errors.Is(err, errMissingFile) {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("No %s file uploaded.", field))
		return
	}
	if err != nil {
		h.uploadError(w, r, err)
		return
	}

	mimeType := mimetype.Resolve(file.Filename)
	// Only audio rejects extensions outside its family; images and documents are forwarded as is.
	if modality == models.ModalityAudio && !mimetype.IsAudio(mimeType) {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("Unsupported audio format: %s", file.Filename))
		return
	}

	h.generate(w, r, &models.GenerationRequest{
		Modality: modality,
		Prompt:   prompt,
		File:     file,
		MIMEType: mimeType,
	})
}

func (h *GenerateHandler) generate(w http.ResponseWriter, r *http.Request, req *models.GenerationRequest) {
	resp, err := h.service.Generate(r.Context(), req)
	if err != nil {
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (h *GenerateHandler) uploadError(w http.ResponseWriter, r *http.Request, err error) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		writeError(w, r, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("Upload exceeds the limit of %d MB.", h.maxUploadBytes>>20))
		return
	}
	writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid request: %s", err))
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	hlog.FromRequest(r).Error().
		Int("status", status).
		Str("path", r.URL.Path).
		Msg(message)
	writeJSON(w, r, status, models.ErrorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("failed to encode response")
		http.Error(w, fmt.Sprintf("failed to encode: %s", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
