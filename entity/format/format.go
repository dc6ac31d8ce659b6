package format

import (
	"fmt"
	"path/filepath"
	"strings"
)

type Format int8

const (
	HTML Format = iota
	Png
	Csv
	JSON
	YAML
)

func UnmarshalText(text string) (Format, error) {
	switch text {
	case "html":
		return HTML, nil
	case "png":
		return Png, nil
	case "csv":
		return Csv, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return 0, fmt.Errorf("invalid format: %q", text)
	}
}

// FromPath picks the format from the file extension of path.
func FromPath(path string) (Format, error) {
	return UnmarshalText(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")))
}

func (f Format) String() string {
	switch f {
	case HTML:
		return "html"
	case Png:
		return "png"
	case Csv:
		return "csv"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	default:
		return fmt.Sprintf("Format(%d)", int8(f))
	}
}

// ContentType is the MIME type used when serving f over HTTP.
func (f Format) ContentType() string {
	switch f {
	case HTML:
		return "text/html; charset=utf-8"
	case Png:
		return "image/png"
	case Csv:
		return "text/csv"
	case JSON:
		return "application/json"
	case YAML:
		return "application/yaml"
	default:
		return "application/octet-stream"
	}
}
