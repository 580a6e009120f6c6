// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package serializer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FormatFromPath determines the serialization format from a file extension:
// .json, .yaml/.yml, .toml and .table/.txt. Unknown extensions default to
// JSON. Matching is case-insensitive.
func FormatFromPath(filePath string) Format {
	lowerPath := strings.ToLower(filePath)
	switch {
	case strings.HasSuffix(lowerPath, ".json"):
		return FormatJSON
	case strings.HasSuffix(lowerPath, ".yaml"), strings.HasSuffix(lowerPath, ".yml"):
		return FormatYAML
	case strings.HasSuffix(lowerPath, ".toml"):
		return FormatTOML
	case strings.HasSuffix(lowerPath, ".table"), strings.HasSuffix(lowerPath, ".txt"):
		return FormatTable
	default:
		slog.Warn("unknown file extension, defaulting to JSON", "filePath", filePath)
		return FormatJSON
	}
}

// FormatFromContentType maps an HTTP Content-Type to a format.
// Anything that is not YAML or TOML is treated as JSON.
func FormatFromContentType(contentType string) Format {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "yaml"):
		return FormatYAML
	case strings.Contains(ct, "toml"):
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Reader deserializes JSON, YAML or TOML from an io.Reader.
// Close must be called when the Reader was created with NewFileReader.
// Table format is write-only.
type Reader struct {
	format Format
	input  io.Reader
	closer io.Closer
}

// NewReader creates a Reader over input. If input implements io.Closer it is
// closed by Reader.Close.
func NewReader(format Format, input io.Reader) (*Reader, error) {
	if err := checkReadable(format); err != nil {
		return nil, err
	}

	r := &Reader{
		format: format,
		input:  input,
	}
	if closer, ok := input.(io.Closer); ok {
		r.closer = closer
	}
	return r, nil
}

func checkReadable(format Format) error {
	if format.IsUnknown() {
		return fmt.Errorf("unknown format: %s", format)
	}
	if format == FormatTable {
		return fmt.Errorf("table format does not support deserialization")
	}
	return nil
}

// NewFileReader creates a Reader for a local path or an http(s) URL.
// Remote content is fetched into memory.
func NewFileReader(format Format, filePath string) (*Reader, error) {
	if err := checkReadable(format); err != nil {
		return nil, err
	}

	if isURL(filePath) {
		data, err := NewHttpReader().ReadWithContext(context.Background(), filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to download remote file: %w", err)
		}
		return &Reader{format: format, input: bytes.NewReader(data)}, nil
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return &Reader{
		format: format,
		input:  file,
		closer: file,
	}, nil
}

// NewFileReaderAuto is NewFileReader with the format taken from the extension.
func NewFileReaderAuto(filePath string) (*Reader, error) {
	return NewFileReader(FormatFromPath(filePath), filePath)
}

func isURL(p string) bool {
	return strings.HasPrefix(p, "http://") || strings.HasPrefix(p, "https://")
}

// Deserialize decodes the input into v, which must be a pointer.
func (r *Reader) Deserialize(v any) error {
	if r == nil {
		return fmt.Errorf("reader is nil")
	}
	if r.input == nil {
		return fmt.Errorf("input source is nil")
	}

	switch r.format {
	case FormatJSON:
		if err := json.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode JSON: %w", err)
		}
		return nil
	case FormatYAML:
		if err := yaml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode YAML: %w", err)
		}
		return nil
	case FormatTOML:
		if err := toml.NewDecoder(r.input).Decode(v); err != nil {
			return fmt.Errorf("failed to decode TOML: %w", err)
		}
		return nil
	case FormatTable:
		return fmt.Errorf("table format is not supported for deserialization")
	default:
		return fmt.Errorf("unsupported format for deserialization: %s", r.format)
	}
}

// Close releases any resources held by the Reader. Safe to call multiple
// times and on a nil Reader.
func (r *Reader) Close() error {
	if r == nil {
		return nil
	}
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// Unmarshal decodes data in format f into v.
func Unmarshal(f Format, data []byte, v any) error {
	r, err := NewReader(f, bytes.NewReader(data))
	if err != nil {
		return err
	}
	return r.Deserialize(v)
}

// ReadAll returns the raw content of a local path or http(s) URL.
func ReadAll(path string) ([]byte, error) {
	if isURL(path) {
		return NewHttpReader().ReadWithContext(context.Background(), path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	return data, nil
}

// FromFile reads and deserializes a local file or http(s) URL into a new T.
// The format is taken from the path extension.
//
//	tables, err := FromFile[dough.Tables]("tables.toml")
func FromFile[T any](path string) (*T, error) {
	reader, err := NewFileReaderAuto(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for %q: %w", path, err)
	}
	defer func() {
		if cerr := reader.Close(); cerr != nil {
			slog.Warn("failed to close reader", "path", path, "error", cerr)
		}
	}()

	var obj T
	if err := reader.Deserialize(&obj); err != nil {
		return nil, fmt.Errorf("failed to deserialize %q: %w", path, err)
	}
	return &obj, nil
}
