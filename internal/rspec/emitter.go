package rspec

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vk/rspecgen/internal/topology"
	"github.com/vk/rspecgen/internal/tour"
	"gopkg.in/yaml.v3"
)

// Format selects the document encoding.
type Format string

const (
	FormatRSpec Format = "rspec"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// Formats lists the supported formats, default first.
func Formats() []Format {
	return []Format{FormatRSpec, FormatYAML, FormatJSON}
}

// ParseFormat checks a format name. The empty name selects FormatRSpec.
func ParseFormat(name string) (Format, error) {
	switch f := Format(strings.ToLower(name)); f {
	case "":
		return FormatRSpec, nil
	case FormatRSpec, FormatYAML, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (available: rspec, yaml, json)", name)
	}
}

// FormatFromPath infers the format from an output file extension. Anything
// that is not yaml or json is an rspec document.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatRSpec
	}
}

// EmitError reports a failure to serialize or write the document.
type EmitError struct {
	Format Format
	Err    error
}

// Error implements the error interface.
func (e *EmitError) Error() string {
	return fmt.Sprintf("failed to emit %s document: %v", e.Format, e.Err)
}

// Unwrap returns the underlying error.
func (e *EmitError) Unwrap() error { return e.Err }

// Emitter writes requests in one format.
type Emitter struct {
	Format      Format
	Profile     string
	Fingerprint string
}

// Encode serializes the request without writing it anywhere.
func (e *Emitter) Encode(node *topology.Node, overrides []topology.Override, t *tour.Tour) ([]byte, error) {
	data, err := e.encode(Transform(e.Profile, e.Fingerprint, node, overrides, t))
	if err != nil {
		return nil, &EmitError{Format: e.format(), Err: err}
	}
	return data, nil
}

// Emit serializes the request and writes it to w in a single write.
func (e *Emitter) Emit(w io.Writer, node *topology.Node, overrides []topology.Override, t *tour.Tour) error {
	data, err := e.Encode(node, overrides, t)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return &EmitError{Format: e.format(), Err: err}
	}
	return nil
}

func (e *Emitter) format() Format {
	if e.Format == "" {
		return FormatRSpec
	}
	return e.Format
}

func (e *Emitter) encode(rd RequestDesc) ([]byte, error) {
	switch e.format() {
	case FormatRSpec:
		body, err := xml.MarshalIndent(toXML(rd), "", "  ")
		if err != nil {
			return nil, err
		}
		out := make([]byte, 0, len(xml.Header)+len(body)+1)
		out = append(out, xml.Header...)
		out = append(out, body...)
		return append(out, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(rd)
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "\t")
		if err := enc.Encode(rd); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unknown format %q", e.Format)
	}
}
