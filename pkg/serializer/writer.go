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
	"context"
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"reflect"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format represents the output format type
type Format string

const (
	// FormatJSON outputs data in JSON format
	FormatJSON Format = "json"
	// FormatYAML outputs data in YAML format
	FormatYAML Format = "yaml"
	// FormatTOML outputs data in TOML format
	FormatTOML Format = "toml"
	// FormatTable outputs data as a flattened field/value table
	FormatTable Format = "table"
)

const defaultValueKey = "value"

// IsUnknown reports whether f is not a supported format.
func (f Format) IsUnknown() bool {
	switch f {
	case FormatJSON, FormatYAML, FormatTOML, FormatTable:
		return false
	default:
		return true
	}
}

// ParseFormat parses a format name case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown format %q, supported: %s", s, strings.Join(SupportedFormats(), ", "))
	}
	return f, nil
}

// SupportedFormats returns a list of all supported output formats.
func SupportedFormats() []string {
	return []string{
		string(FormatJSON),
		string(FormatYAML),
		string(FormatTOML),
		string(FormatTable),
	}
}

// Writer serializes values to an output stream in one format.
// Close must be called to release file handles when using NewFileWriterOrStdout.
type Writer struct {
	format Format
	output io.Writer
	closer io.Closer
}

// NewWriter creates a new Writer with the specified format and output destination.
// If output is nil, os.Stdout is used. Unknown formats default to JSON.
func NewWriter(format Format, output io.Writer) *Writer {
	if output == nil {
		output = os.Stdout
	}
	return &Writer{
		format: knownOrJSON(format),
		output: output,
	}
}

// NewFileWriterOrStdout creates a Writer for path, falling back to stdout
// when path is empty or cannot be created.
func NewFileWriterOrStdout(format Format, path string) *Writer {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return NewStdoutWriter(format)
	}

	file, err := os.Create(trimmed)
	if err != nil {
		slog.Error("failed to create output file", "error", err, "path", trimmed)
		return NewStdoutWriter(format)
	}

	return &Writer{
		format: knownOrJSON(format),
		output: file,
		closer: file,
	}
}

// NewStdoutWriter creates a new Writer that outputs to stdout.
func NewStdoutWriter(format Format) *Writer {
	return NewWriter(format, os.Stdout)
}

func knownOrJSON(format Format) Format {
	if format.IsUnknown() {
		slog.Warn("unknown format, defaulting to JSON", "format", format)
		return FormatJSON
	}
	return format
}

// Close releases any resources associated with the Writer.
// It is safe to call Close multiple times.
func (w *Writer) Close() error {
	if w.closer != nil {
		err := w.closer.Close()
		w.closer = nil
		return err
	}
	return nil
}

// Serialize writes v in the configured format.
func (w *Writer) Serialize(_ context.Context, v any) error {
	b, err := Marshal(w.format, v)
	if err != nil {
		return err
	}
	if _, err := w.output.Write(b); err != nil {
		return fmt.Errorf("failed to write %s output: %w", w.format, err)
	}
	return nil
}

// Marshal encodes v in format f.
func Marshal(f Format, v any) ([]byte, error) {
	switch f {
	case FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to serialize to JSON: %w", err)
		}
		return append(b, '\n'), nil
	case FormatYAML:
		var sb strings.Builder
		enc := yaml.NewEncoder(&sb)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to serialize to YAML: %w", err)
		}
		return []byte(sb.String()), nil
	case FormatTOML:
		b, err := toml.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize to TOML: %w", err)
		}
		return b, nil
	case FormatTable:
		return []byte(renderTable(v) + "\n"), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", f)
	}
}

func renderTable(v any) string {
	flat := make(map[string]any)
	flattenValue(flat, reflect.ValueOf(v), "")
	if len(flat) == 0 {
		return "<empty>"
	}

	keys := make([]string, 0, len(flat))
	for k := range flat {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tw := table.NewWriter()
	tw.SetStyle(table.StyleLight)
	tw.AppendHeader(table.Row{"FIELD", "VALUE"})
	for _, key := range keys {
		val := flat[key]
		if val == nil {
			val = ""
		}
		tw.AppendRow(table.Row{key, val})
	}
	return tw.Render()
}

var textMarshalerType = reflect.TypeFor[encoding.TextMarshaler]()

func flattenValue(out map[string]any, val reflect.Value, prefix string) {
	if !val.IsValid() {
		return
	}

	for val.Kind() == reflect.Pointer || val.Kind() == reflect.Interface {
		if val.IsNil() {
			if prefix != "" {
				out[prefix] = nil
			}
			return
		}
		val = val.Elem()
	}

	if val.Type().Implements(textMarshalerType) {
		if b, err := val.Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
			out[keyOrDefault(prefix)] = string(b)
			return
		}
	}

	//nolint:exhaustive // common kinds handled explicitly, the rest are leaves
	switch val.Kind() {
	case reflect.Struct:
		typ := val.Type()
		for i := 0; i < val.NumField(); i++ {
			field := typ.Field(i)
			if !field.IsExported() {
				continue
			}
			name, skip := fieldKey(field)
			if skip {
				continue
			}
			if field.Anonymous && name == "" {
				flattenValue(out, val.Field(i), prefix)
				continue
			}
			flattenValue(out, val.Field(i), joinKey(prefix, name))
		}
	case reflect.Map:
		for _, mapKey := range val.MapKeys() {
			key := joinKey(prefix, fmt.Sprintf("%v", mapKey.Interface()))
			flattenValue(out, val.MapIndex(mapKey), key)
		}
	case reflect.Slice, reflect.Array:
		for i := 0; i < val.Len(); i++ {
			key := joinKey(prefix, fmt.Sprintf("[%d]", i))
			flattenValue(out, val.Index(i), key)
		}
	default:
		out[keyOrDefault(prefix)] = val.Interface()
	}
}

// fieldKey returns the json name of a struct field, or "" for untagged
// embedded structs that should be inlined.
func fieldKey(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", true
	}
	name, _, _ := strings.Cut(tag, ",")
	if name != "" {
		return name, false
	}
	if f.Anonymous {
		return "", false
	}
	return f.Name, false
}

func keyOrDefault(prefix string) string {
	if prefix == "" {
		return defaultValueKey
	}
	return prefix
}

func joinKey(prefix, suffix string) string {
	if prefix == "" {
		return suffix
	}
	if suffix == "" {
		return prefix
	}
	return prefix + "." + suffix
}
