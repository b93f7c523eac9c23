// Package almanacfile reads almanacs from the puzzle text format and from YAML.
package almanacfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/domain/remap"
)

// Errors returned by the readers.
var (
	ErrSyntax        = errors.New("almanac syntax error")
	ErrBrokenChain   = errors.New("almanac map chain is broken")
	ErrUnknownFormat = errors.New("unknown almanac format")
)

// MaxLineBytes is the longest line the text reader accepts.
const MaxLineBytes = 8 << 20

// Format identifies an input encoding.
type Format string

// Supported formats.
const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat parses a format name. The empty string selects FormatText.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// FormatFromPath picks a format from a file extension.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Parse reads an almanac in the given format.
func Parse(data []byte, format Format) (almanac.Almanac, error) {
	switch format {
	case FormatText, "":
		return ParseText(strings.NewReader(string(data)))
	case FormatYAML:
		return ParseYAML(strings.NewReader(string(data)))
	default:
		return almanac.Almanac{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Load reads an almanac file. An empty format is taken from the file
// extension.
func Load(path string, format Format) (almanac.Almanac, error) {
	if format == "" {
		format = FormatFromPath(path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return almanac.Almanac{}, fmt.Errorf("read almanac: %w", err)
	}
	a, err := Parse(data, format)
	if err != nil {
		return almanac.Almanac{}, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

// link is one parsed map header.
type link struct {
	from  string
	to    string
	where string
}

func (l link) name() string { return l.from + "-to-" + l.to }

// buildPipeline checks that each map starts where the previous one ended.
func buildPipeline(links []link, entries [][]remap.MapEntry) (remap.Pipeline, error) {
	stages := make([]remap.Stage, len(links))
	for i, l := range links {
		if i > 0 && links[i-1].to != l.from {
			return remap.Pipeline{}, fmt.Errorf("%w: %s: %q follows a map ending in %q",
				ErrBrokenChain, l.where, l.name(), links[i-1].to)
		}
		stages[i] = remap.NewStage(l.name(), entries[i]...)
	}
	return remap.NewPipeline(stages...), nil
}
