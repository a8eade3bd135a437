package service

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/kdduha/genai-relay/internal/models"
)

// buildParts orders the prompt before the attachment. A text request always
// carries its text part, even when empty, so the model decides how to answer it.
func buildParts(req *models.GenerationRequest) []models.Part {
	prompt := req.Prompt
	if prompt == "" {
		prompt = DefaultPrompt(req.Modality)
	}

	parts := make([]models.Part, 0, 2)
	if prompt != "" || req.File == nil {
		parts = append(parts, models.TextPart(prompt))
	}
	if req.File != nil {
		parts = append(parts, models.InlinePart(req.File.Data, req.MIMEType))
	}
	return parts
}

func getCacheKey(model string, parts []models.Part) string {
	h := sha256.New()
	h.Write([]byte(model))
	for _, p := range parts {
		h.Write([]byte{0})
		if p.IsInline() {
			h.Write([]byte(p.InlineData.MIMEType))
			h.Write([]byte{0})
			h.Write([]byte(p.InlineData.Data))
			continue
		}
		h.Write([]byte(p.Text))
	}
	return hex.EncodeToString(h.Sum(nil))
}
