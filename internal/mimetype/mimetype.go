package mimetype

import "strings"

const (
	MP3  = "mp3"
	WAV  = "wav"
	OGG  = "ogg"
	PNG  = "png"
	JPG  = "jpg"
	JPEG = "jpeg"
	WEBP = "webp"
	HEIC = "heic"
	HEIF = "heif"
	PDF  = "pdf"
	TXT  = "txt"
)

// Fallback is returned for unknown or missing extensions.
const Fallback = "application/octet-stream"

var byExtension = map[string]string{
	MP3:  "audio/mpeg",
	WAV:  "audio/wav",
	OGG:  "audio/ogg",
	PNG:  "image/png",
	JPG:  "image/jpeg",
	JPEG: "image/jpeg",
	WEBP: "image/webp",
	HEIC: "image/heic",
	HEIF: "image/heif",
	PDF:  "application/pdf",
	TXT:  "text/plain",
}

// Extension returns the lowercased text after the last dot of filename,
// or "" when there is no dot.
func Extension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// Resolve maps filename to a MIME type by its extension. It never fails:
// unrecognized extensions yield Fallback.
func Resolve(filename string) string {
	if mimeType, ok := byExtension[Extension(filename)]; ok {
		return mimeType
	}
	return Fallback
}

// IsAudio reports whether mimeType belongs to the audio family.
func IsAudio(mimeType string) bool {
	return strings.HasPrefix(mimeType, "audio/")
}
