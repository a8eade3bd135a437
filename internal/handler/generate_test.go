package handler

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/kdduha/genai-relay/internal/models"
)

type mockService struct {
	result string
	err    error
	last   *models.GenerationRequest
	calls  int
}

func (m *mockService) Generate(_ context.Context, req *models.GenerationRequest) (*models.GenerationResult, error) {
	m.calls++
	m.last = req
	if m.err != nil {
		return nil, m.err
	}
	return &models.GenerationResult{Result: m.result}, nil
}

const testUploadLimit = 1 << 20

func newTestHandler(svc *mockService) *GenerateHandler {
	return NewGenerateHandler(svc, testUploadLimit)
}

func multipartRequest(t *testing.T, path, prompt, field, filename string, data []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if prompt != "" {
		if err := mw.WriteField("prompt", prompt); err != nil {
			t.Fatalf("write prompt: %v", err)
		}
	}
	if field != "" {
		fw, err := mw.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := fw.Write(data); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var out map[string]string
	if err := sonic.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("response is not JSON: %v (%s)", err, rr.Body.String())
	}
	return out
}

func TestGenerateText(t *testing.T) {
	svc := &mockService{result: "world"}
	h := newTestHandler(svc)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/generate-text", strings.NewReader(`{"prompt":"hello"}`))
	req.Header.Set("Content-Type", "application/json")
	h.GenerateText(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("unexpected content type: %q", ct)
	}
	if got := decodeBody(t, rr)["result"]; got != "world" {
		t.Fatalf("unexpected result: %q", got)
	}
	if svc.last.Prompt != "hello" || svc.last.Modality != models.ModalityText || svc.last.File != nil {
		t.Fatalf("unexpected request: %+v", svc.last)
	}
}

func TestGenerateTextInvalidJSON(t *testing.T) {
	svc := &mockService{result: "world"}
	h := newTestHandler(svc)

	rr := httptest.NewRecorder()
	h.GenerateText(rr, httptest.NewRequest(http.MethodPost, "/generate-text", strings.NewReader(`{"prompt":`)))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
	if decodeBody(t, rr)["error"] == "" {
		t.Fatalf("expected error message")
	}
	if svc.calls != 0 {
		t.Fatalf("model must not be called")
	}
}

func TestMissingFile(t *testing.T) {
	testCases := []struct {
		path    string
		handler func(*GenerateHandler) http.HandlerFunc
		message string
	}{
		{"/generate-from-image", func(h *GenerateHandler) http.HandlerFunc { return h.GenerateFromImage }, "No image file uploaded."},
		{"/generate-from-audio", func(h *GenerateHandler) http.HandlerFunc { return h.GenerateFromAudio }, "No audio file uploaded."},
		{"/generate-from-document", func(h *GenerateHandler) http.HandlerFunc { return h.GenerateFromDocument }, "No document file uploaded."},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			requests := map[string]*http.Request{
				"multipart without file": multipartRequest(t, tc.path, "hi", "", "", nil),
				"file under wrong field": multipartRequest(t, tc.path, "hi", "other", "a.png", []byte("x")),
				"not multipart":          httptest.NewRequest(http.MethodPost, tc.path, strings.NewReader(`{"prompt":"hi"}`)),
			}

			for name, req := range requests {
				svc := &mockService{result: "unused"}
				rr := httptest.NewRecorder()
				tc.handler(newTestHandler(svc))(rr, req)

				if rr.Code != http.StatusBadRequest {
					t.Fatalf("%s: expected 400, got %d", name, rr.Code)
				}
				if got := decodeBody(t, rr)["error"]; got != tc.message {
					t.Fatalf("%s: unexpected error: %q", name, got)
				}
				if svc.calls != 0 {
					t.Fatalf("%s: model must not be called", name)
				}
			}
		})
	}
}

func TestGenerateFromImage(t *testing.T) {
	svc := &mockService{result: "a cat"}
	h := newTestHandler(svc)

	rr := httptest.NewRecorder()
	h.GenerateFromImage(rr, multipartRequest(t, "/generate-from-image", "what is it", "image", "Cat.JPG", []byte{0xff, 0xd8}))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := decodeBody(t, rr)["result"]; got != "a cat" {
		t.Fatalf("unexpected result: %q", got)
	}
	if svc.last.MIMEType != "image/jpeg" || svc.last.Prompt != "what is it" {
		t.Fatalf("unexpected request: %+v", svc.last)
	}
	if svc.last.File.Filename != "Cat.JPG" || !bytes.Equal(svc.last.File.Data, []byte{0xff, 0xd8}) {
		t.Fatalf("unexpected file: %+v", svc.last.File)
	}
	if svc.last.File.MIMEHint != "application/octet-stream" {
		t.Fatalf("unexpected mime hint: %q", svc.last.File.MIMEHint)
	}
}

func TestGenerateFromImageUnknownExtensionIsForwarded(t *testing.T) {
	svc := &mockService{result: "ok"}
	rr := httptest.NewRecorder()
	newTestHandler(svc).GenerateFromImage(rr, multipartRequest(t, "/generate-from-image", "", "image", "scan.bmp", []byte("x")))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if svc.last.MIMEType != "application/octet-stream" {
		t.Fatalf("unexpected mime type: %q", svc.last.MIMEType)
	}
}

func TestAudioRejectsNonAudioExtensionButDocumentAccepts(t *testing.T) {
	svc := &mockService{result: "summary"}
	h := newTestHandler(svc)

	for _, filename := range []string{"clip.txt", "photo.png", "doc.pdf", "clip.bin"} {
		rr := httptest.NewRecorder()
		h.GenerateFromAudio(rr, multipartRequest(t, "/generate-from-audio", "", "audio", filename, []byte("not audio")))

		if rr.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", filename, rr.Code)
		}
		msg := decodeBody(t, rr)["error"]
		if msg != "Unsupported audio format: "+filename {
			t.Fatalf("%s: unexpected error: %q", filename, msg)
		}
	}
	if svc.calls != 0 {
		t.Fatalf("model must not be called for unsupported audio, got %d calls", svc.calls)
	}

	rr := httptest.NewRecorder()
	h.GenerateFromDocument(rr, multipartRequest(t, "/generate-from-document", "", "document", "clip.txt", []byte("not audio")))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if got := decodeBody(t, rr)["result"]; got != "summary" {
		t.Fatalf("unexpected result: %q", got)
	}
	if svc.last.MIMEType != "text/plain" || svc.last.Modality != models.ModalityDocument {
		t.Fatalf("unexpected request: %+v", svc.last)
	}
}

func TestDocumentAcceptsUnknownExtension(t *testing.T) {
	svc := &mockService{result: "ok"}
	rr := httptest.NewRecorder()
	newTestHandler(svc).GenerateFromDocument(rr, multipartRequest(t, "/generate-from-document", "", "document", "report.docx", []byte("PK")))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if svc.last.MIMEType != "application/octet-stream" {
		t.Fatalf("unexpected mime type: %q", svc.last.MIMEType)
	}
}

func TestGenerateFromAudio(t *testing.T) {
	svc := &mockService{result: "lyrics"}
	rr := httptest.NewRecorder()
	newTestHandler(svc).GenerateFromAudio(rr, multipartRequest(t, "/generate-from-audio", "", "audio", "song.MP3", []byte("ID3")))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if svc.last.MIMEType != "audio/mpeg" || svc.last.Prompt != "" {
		t.Fatalf("unexpected request: %+v", svc.last)
	}
}

func TestModelErrorOnEveryRoute(t *testing.T) {
	modelErr := errors.New("model exploded")

	requests := []struct {
		name    string
		req     func() *http.Request
		handler func(*GenerateHandler) http.HandlerFunc
	}{
		{
			"text",
			func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/generate-text", strings.NewReader(`{"prompt":"hello"}`))
			},
			func(h *GenerateHandler) http.HandlerFunc { return h.GenerateText },
		},
		{
			"image",
			func() *http.Request {
				return multipartRequest(t, "/generate-from-image", "p", "image", "a.png", []byte("x"))
			},
			func(h *GenerateHandler) http.HandlerFunc { return h.GenerateFromImage },
		},
		{
			"audio",
			func() *http.Request {
				return multipartRequest(t, "/generate-from-audio", "p", "audio", "a.wav", []byte("x"))
			},
			func(h *GenerateHandler) http.HandlerFunc { return h.GenerateFromAudio },
		},
		{
			"document",
			func() *http.Request {
				return multipartRequest(t, "/generate-from-document", "p", "document", "a.pdf", []byte("x"))
			},
			func(h *GenerateHandler) http.HandlerFunc { return h.GenerateFromDocument },
		},
	}

	for _, tc := range requests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockService{err: modelErr}
			rr := httptest.NewRecorder()
			tc.handler(newTestHandler(svc))(rr, tc.req())

			if rr.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", rr.Code)
			}
			if got := decodeBody(t, rr)["error"]; got != "model exploded" {
				t.Fatalf("unexpected error: %q", got)
			}
		})
	}
}

func TestUploadTooLarge(t *testing.T) {
	svc := &mockService{result: "unused"}
	h := NewGenerateHandler(svc, 1024)

	rr := httptest.NewRecorder()
	h.GenerateFromImage(rr, multipartRequest(t, "/generate-from-image", "", "image", "big.png", bytes.Repeat([]byte("a"), 8*1024)))

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413, got %d: %s", rr.Code, rr.Body.String())
	}
	if svc.calls != 0 {
		t.Fatalf("model must not be called")
	}

	rr = httptest.NewRecorder()
	body := `{"prompt":"` + strings.Repeat("a", 2048) + `"}`
	h.GenerateText(rr, httptest.NewRequest(http.MethodPost, "/generate-text", strings.NewReader(body)))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 for text, got %d", rr.Code)
	}
}

func TestHealth(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestHandler(&mockService{}).Health(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK || decodeBody(t, rr)["status"] != "ok" {
		t.Fatalf("unexpected health response: %d %s", rr.Code, rr.Body.String())
	}
}
