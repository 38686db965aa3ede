package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"sharednotes/internal/sharing/domain/entities"
)

// Форматы вывода.
const (
	outputText = "text"
	outputYAML = "yaml"
	outputJSON = "json"
)

// ErrUnknownOutput - неизвестное значение --output.
var ErrUnknownOutput = errors.New("unknown output format")

func validateOutput(format string) error {
	switch format {
	case outputText, outputYAML, outputJSON:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownOutput, format)
	}
}

type noteView struct {
	ID        string `yaml:"id" json:"id"`
	Title     string `yaml:"title" json:"title"`
	Content   string `yaml:"content" json:"content"`
	UpdatedAt string `yaml:"updated_at" json:"updated_at"`
}

type tokenView struct {
	Token     string `yaml:"token" json:"token"`
	CreatedAt string `yaml:"created_at" json:"created_at"`
	ShareURL  string `yaml:"share_url,omitempty" json:"share_url,omitempty"`
}

type snapshotView struct {
	Title     string `yaml:"title" json:"title"`
	Content   string `yaml:"content" json:"content"`
	UpdatedAt string `yaml:"updated_at" json:"updated_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toNoteView(n entities.Note) noteView {
	return noteView{ID: n.ID, Title: n.Title, Content: n.Content, UpdatedAt: formatTime(n.UpdatedAt)}
}

func toSnapshotView(s entities.Snapshot) snapshotView {
	return snapshotView{Title: s.Title, Content: s.Content, UpdatedAt: formatTime(s.UpdatedAt)}
}

// render пишет v в выбранном формате. text вызывает textFn.
func render(w io.Writer, format string, v any, textFn func(io.Writer) error) error {
	switch format {
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case outputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	default:
		return textFn(w)
	}
}
