package client

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/kdduha/genai-relay/internal/mimetype"
	"github.com/kdduha/genai-relay/internal/models"
)

const (
	RouteText     = "/generate-text"
	RouteImage    = "/generate-from-image"
	RouteAudio    = "/generate-from-audio"
	RouteDocument = "/generate-from-document"
)

// Attachment is a file picked by the user. Type is the declared MIME type
// used for routing.
type Attachment struct {
	Name string
	Type string
	Data []byte
}

func LoadAttachment(path string) (*Attachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read attachment: %w", err)
	}
	name := filepath.Base(path)
	return &Attachment{
		Name: name,
		Type: mimetype.Resolve(name),
		Data: data,
	}, nil
}

// Endpoint picks the route for file. A nil file means a text-only request.
func Endpoint(file *Attachment) string {
	if file == nil {
		return RouteText
	}
	switch {
	case strings.HasPrefix(file.Type, "image/"):
		return RouteImage
	case strings.HasPrefix(file.Type, "audio/"):
		return RouteAudio
	default:
		return RouteDocument
	}
}

// FieldName is the multipart field expected by endpoint: the text after its
// last dash.
func FieldName(endpoint string) string {
	return endpoint[strings.LastIndex(endpoint, "-")+1:]
}

type Payload struct {
	Body        *bytes.Buffer
	ContentType string
}

// NewPayload encodes prompt as JSON when there is no file, otherwise as a
// multipart form carrying the prompt and the file.
func NewPayload(prompt string, file *Attachment) (*Payload, error) {
	if file == nil {
		data, err := sonic.Marshal(models.TextRequest{Prompt: prompt})
		if err != nil {
			return nil, fmt.Errorf("marshal req: %w", err)
		}
		return &Payload{Body: bytes.NewBuffer(data), ContentType: "application/json"}, nil
	}

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	if err := mw.WriteField("prompt", prompt); err != nil {
		return nil, err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		FieldName(Endpoint(file)), escapeQuotes(file.Name)))
	contentType := file.Type
	if contentType == "" {
		contentType = mimetype.Fallback
	}
	header.Set("Content-Type", contentType)

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}
	return &Payload{Body: body, ContentType: mw.FormDataContentType()}, nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
