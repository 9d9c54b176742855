package asset

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/matzehuels/dungeonforge/pkg/errors"
)

// Supported encodings.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFromPath infers the encoding from a file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported level file extension %q (want .json, .yaml or .yml)", filepath.Ext(path))
}

// ReadFile decodes the level file at path.
func ReadFile(path string) (*Level, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "level %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	l, err := Read(f, format)
	if err != nil {
		return nil, err
	}
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return l, nil
}

// Read decodes a level in the given format from r. Unknown fields are rejected.
func Read(r io.Reader, format string) (*Level, error) {
	var l Level
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&l); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidLevel, err, "decode json")
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		if err := dec.Decode(&l); err != nil {
			if stderrors.Is(err, io.EOF) {
				return nil, errors.New(errors.ErrCodeInvalidLevel, "empty level document")
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidLevel, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported level format %q", format)
	}
	return &l, nil
}

// Marshal encodes l. JSON output is indented with two spaces.
func Marshal(l *Level, format string) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(l, &buf, format); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes l to w.
func Write(l *Level, w io.Writer, format string) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(l); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(l); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		return enc.Close()
	default:
		return errors.New(errors.ErrCodeInvalidFormat, "unsupported level format %q", format)
	}
	return nil
}

// WriteFile encodes l into path, choosing the format by extension.
func WriteFile(l *Level, path string) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(l, f, format)
}
