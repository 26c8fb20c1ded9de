package pages

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

const delim = "---"

// ErrMissingClosingDelimiter is returned for a file that opens a "---"
// metadata block but never closes it.
var ErrMissingClosingDelimiter = errors.New("pages: metadata header start delimiter found but closing delimiter is missing")

// Parse splits a page file into its metadata header and markdown body.
//
// Two header forms are accepted: a YAML block between "---" lines at the top
// of the file, or a YAML mapping running up to the first blank line. Content
// whose leading block is not a YAML mapping has no header.
func Parse(path string, data []byte) (*Page, error) {
	data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))

	var (
		raw  map[string]any
		body []byte
		err  error
	)
	if bytes.HasPrefix(data, []byte(delim+"\n")) || bytes.Equal(data, []byte(delim)) {
		raw, body, err = splitDelimited(data)
		if err != nil {
			return nil, fmt.Errorf("pages: %s: %w", path, err)
		}
	} else {
		raw, body = splitLegacy(data)
	}

	return &Page{
		Path: path,
		Meta: newMeta(raw),
		Body: string(bytes.TrimLeft(body, "\n")),
	}, nil
}

func splitDelimited(data []byte) (map[string]any, []byte, error) {
	rest := bytes.TrimPrefix(data[len(delim):], []byte("\n"))
	var header, body []byte
	switch {
	case bytes.Equal(rest, []byte(delim)):
	case bytes.HasPrefix(rest, []byte(delim+"\n")):
		body = rest[len(delim)+1:]
	default:
		idx := bytes.Index(rest, []byte("\n"+delim+"\n"))
		switch {
		case idx >= 0:
			header = rest[:idx]
			body = rest[idx+len(delim)+2:]
		case bytes.HasSuffix(rest, []byte("\n"+delim)):
			header = rest[:len(rest)-len(delim)-1]
		default:
			return nil, nil, ErrMissingClosingDelimiter
		}
	}

	raw := map[string]any{}
	if len(bytes.TrimSpace(header)) == 0 {
		return raw, body, nil
	}
	var decoded any
	if err := yaml.Unmarshal(header, &decoded); err != nil {
		return nil, nil, fmt.Errorf("parse metadata: %w", err)
	}
	m, ok := toMapping(decoded)
	if !ok {
		return nil, nil, errors.New("parse metadata: header is not a mapping")
	}
	return m, body, nil
}

func splitLegacy(data []byte) (map[string]any, []byte) {
	// A leading blank line is an empty header.
	if bytes.HasPrefix(data, []byte("\n")) {
		return nil, data
	}
	header, body := data, []byte(nil)
	if idx := bytes.Index(data, []byte("\n\n")); idx >= 0 {
		header, body = data[:idx], data[idx+2:]
	}
	if len(bytes.TrimSpace(header)) == 0 {
		return nil, data
	}

	var decoded any
	if err := yaml.Unmarshal(header, &decoded); err != nil {
		return nil, data
	}
	if decoded == nil {
		// Header made only of YAML comments.
		return nil, data
	}
	m, ok := toMapping(decoded)
	if !ok {
		return nil, data
	}
	return m, body
}

func toMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}
