// Package json exports chat transcripts as JSON files.
package json

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/KyahWill/osci"
)

const version = 1

// envelope is the v1 file format of an exported transcript.
type envelope struct {
	Version    int          `json:"version"`
	Repository string       `json:"repository"`
	SessionID  string       `json:"session_id"`
	Messages   []messageDTO `json:"messages"`
}

type messageDTO struct {
	ID        string    `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Notice    bool      `json:"notice"`
	Timestamp time.Time `json:"timestamp"`
}

// MarshalTranscript serializes a Transcript as indented JSON.
func MarshalTranscript(t osci.Transcript) ([]byte, error) {
	env := envelope{
		Version:    version,
		Repository: t.Repository,
		SessionID:  t.SessionID,
		Messages:   make([]messageDTO, len(t.Messages)),
	}
	for i, m := range t.Messages {
		if m.Role != osci.RoleUser && m.Role != osci.RoleAssistant {
			return nil, fmt.Errorf("message %d: unknown role %q", i, m.Role)
		}
		env.Messages[i] = messageDTO{
			ID:        m.ID,
			Role:      string(m.Role),
			Content:   m.Content,
			Notice:    m.Notice,
			Timestamp: m.Timestamp,
		}
	}
	return json.MarshalIndent(env, "", "  ")
}

// UnmarshalTranscript parses a v1 transcript.
func UnmarshalTranscript(data []byte) (osci.Transcript, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return osci.Transcript{}, fmt.Errorf("unmarshal envelope: %w", err)
	}
	if env.Version != version {
		return osci.Transcript{}, fmt.Errorf("unsupported envelope version: %d", env.Version)
	}
	t := osci.Transcript{
		Repository: env.Repository,
		SessionID:  env.SessionID,
		Messages:   make([]osci.Message, len(env.Messages)),
	}
	for i, dto := range env.Messages {
		role := osci.Role(dto.Role)
		if role != osci.RoleUser && role != osci.RoleAssistant {
			return osci.Transcript{}, fmt.Errorf("message %d: unknown role %q", i, dto.Role)
		}
		t.Messages[i] = osci.Message{
			ID:        dto.ID,
			Role:      role,
			Content:   dto.Content,
			Notice:    dto.Notice,
			Timestamp: dto.Timestamp,
		}
	}
	return t, nil
}

// Save writes a Transcript to path, creating parent directories as needed.
// The file is replaced atomically.
func Save(path string, t osci.Transcript) error {
	data, err := MarshalTranscript(t)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create directories: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// Load reads a Transcript written by Save.
func Load(path string) (osci.Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return osci.Transcript{}, fmt.Errorf("read file: %w", err)
	}
	return UnmarshalTranscript(data)
}
