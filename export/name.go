package export

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"

	"onixp/config"
)

// FileName expands name template against summary and returns relative path
// of the output file with extension for format. Template may produce
// subdirectories, every path segment is cleaned and, if requested,
// transliterated. Summary id is used when expansion yields nothing.
func FileName(tmpl string, s *Summary, format config.OutputFmt, transliterate bool) (string, error) {
	expanded, err := expandTemplate(config.NameTemplateFieldName, tmpl, s)
	if err != nil {
		return "", err
	}

	segments := splitPath(filepath.FromSlash(expanded))
	if len(segments) == 0 {
		segments = []string{s.ID}
	}

	parts := make([]string, 0, len(segments))
	for _, segment := range segments {
		parts = append(parts, cleanPathSegment(segment, transliterate))
	}
	parts[len(parts)-1] += format.Ext()
	return filepath.Join(parts...), nil
}

func expandTemplate(name config.TemplateFieldName, field string, s *Summary) (string, error) {
	tmpl, err := template.New(string(name)).Funcs(sprig.FuncMap()).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, s); err != nil {
		return "", fmt.Errorf("unable to expand template field %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// splitPath breaks path into non-empty segments, dropping any attempt to
// climb out of the destination.
func splitPath(path string) []string {
	segments := make([]string, 0, 8)
	for head, tail := filepath.Split(path); ; head, tail = filepath.Split(head) {
		if tail != "" && tail != "." && tail != ".." {
			segments = slices.Insert(segments, 0, tail)
		}
		head = strings.TrimRight(head, string(os.PathSeparator))
		if head == "" {
			break
		}
	}
	return segments
}

func cleanPathSegment(segment string, transliterate bool) string {
	if transliterate {
		segment = slug.Make(segment)
	}
	return config.CleanFileName(segment)
}
