package client

import (
	"context"
	"strings"
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

const errorPrefix = "Sorry, an error occurred: "

type Entry struct {
	Role    Role
	Text    string
	Loading bool
}

// Lines splits the entry text on newlines for display.
func (e Entry) Lines() []string {
	return strings.Split(e.Text, "\n")
}

// Transcript is the read-only log of a chat.
type Transcript struct {
	entries []Entry
}

// Append adds a message. Empty messages are not shown.
func (t *Transcript) Append(role Role, text string) {
	if text == "" {
		return
	}
	t.entries = append(t.entries, Entry{Role: role, Text: text})
}

func (t *Transcript) ShowLoading() {
	t.entries = append(t.entries, Entry{Role: RoleBot, Loading: true})
}

func (t *Transcript) RemoveLoading() {
	for i := len(t.entries) - 1; i >= 0; i-- {
		if t.entries[i].Loading {
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}

func (t *Transcript) Entries() []Entry {
	return append([]Entry(nil), t.entries...)
}

func (t *Transcript) Last() (Entry, bool) {
	if len(t.entries) == 0 {
		return Entry{}, false
	}
	return t.entries[len(t.entries)-1], true
}

type generator interface {
	Generate(ctx context.Context, prompt string, file *Attachment) (string, error)
}

// Session drives one chat. The attachment is owned by the caller and passed
// to every Send.
type Session struct {
	client     generator
	transcript *Transcript

	// OnUpdate, when set, is called after every transcript change.
	OnUpdate func(*Transcript)
}

func NewSession(client generator) *Session {
	return &Session{
		client:     client,
		transcript: &Transcript{},
	}
}

func (s *Session) Transcript() *Transcript {
	return s.transcript
}

// Send reports whether a request was issued. Nothing happens when the
// trimmed prompt is empty and there is no file.
func (s *Session) Send(ctx context.Context, prompt string, file *Attachment) bool {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" && file == nil {
		return false
	}

	s.transcript.Append(RoleUser, prompt)
	s.transcript.ShowLoading()
	s.notify()

	result, err := s.client.Generate(ctx, prompt, file)
	s.transcript.RemoveLoading()
	if err != nil {
		s.transcript.Append(RoleBot, errorPrefix+err.Error())
	} else {
		s.transcript.Append(RoleBot, result)
	}
	s.notify()
	return true
}

func (s *Session) notify() {
	if s.OnUpdate != nil {
		s.OnUpdate(s.transcript)
	}
}
