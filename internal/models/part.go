package models

import "encoding/base64"

// Part is one element of a multi-part model prompt: either text or inline
// binary data.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData carries base64 encoded bytes tagged with their MIME type.
type InlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

func TextPart(text string) Part {
	return Part{Text: text}
}

// InlinePart wraps raw bytes into an inline data part.
func InlinePart(data []byte, mimeType string) Part {
	return Part{
		InlineData: &InlineData{
			MIMEType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(data),
		},
	}
}

func (p Part) IsInline() bool {
	return p.InlineData != nil
}

// Bytes decodes the payload back to raw bytes.
func (d *InlineData) Bytes() ([]byte, error) {
	return base64.StdEncoding.DecodeString(d.Data)
}

// DataURL renders the payload as an RFC 2397 data URL.
func (d *InlineData) DataURL() string {
	return "data:" + d.MIMEType + ";base64," + d.Data
}
