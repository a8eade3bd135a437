package service

import "github.com/kdduha/genai-relay/internal/models"

const (
	defaultAudioPrompt    = "Transcribe the following audio:"
	defaultDocumentPrompt = "Summarize the following document:"
)

// DefaultPrompt is used when a request of modality m arrives without a prompt.
// Text and image requests have none.
func DefaultPrompt(m models.Modality) string {
	switch m {
	case models.ModalityAudio:
		return defaultAudioPrompt
	case models.ModalityDocument:
		return defaultDocumentPrompt
	default:
		return ""
	}
}
