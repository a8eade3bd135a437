package models

// Modality is the kind of attachment carried by a request.
type Modality string

const (
	ModalityText     Modality = "text"
	ModalityImage    Modality = "image"
	ModalityAudio    Modality = "audio"
	ModalityDocument Modality = "document"
)

// TextRequest represents request for generate-text endpoint
type TextRequest struct {
	Prompt string `json:"prompt" example:"Write a haiku about Go"`
}

// UploadedFile is a file received in a multipart request. It only lives for
// the duration of that request.
type UploadedFile struct {
	Filename string
	MIMEHint string
	Data     []byte
}

type GenerationRequest struct {
	Modality Modality
	Prompt   string

	// File and MIMEType are empty for text requests.
	File     *UploadedFile
	MIMEType string
}

type GenerationResult struct {
	Result string `json:"result" example:"Gophers dig tunnels"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"No image file uploaded."`
}

type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}
