package almanacfile

import (
	"errors"
	"fmt"
	"io"

	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/domain/remap"
	"gopkg.in/yaml.v3"
)

type yamlAlmanac struct {
	Seeds []uint64  `yaml:"seeds"`
	Maps  []yamlMap `yaml:"maps"`
}

type yamlMap struct {
	From    string     `yaml:"from"`
	To      string     `yaml:"to"`
	Entries [][]uint64 `yaml:"entries"`
}

// ParseYAML reads an almanac document:
//
//	seeds: [79, 14, 55, 13]
//	maps:
//	  - from: seed
//	    to: soil
//	    entries:
//	      - [50, 98, 2]   # destination, source, count
func ParseYAML(r io.Reader) (almanac.Almanac, error) {
	var doc yamlAlmanac
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return almanac.Almanac{}, fmt.Errorf("%w: empty document", ErrSyntax)
		}
		return almanac.Almanac{}, fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	if doc.Seeds == nil {
		return almanac.Almanac{}, fmt.Errorf("%w: missing seeds", ErrSyntax)
	}

	links := make([]link, len(doc.Maps))
	entries := make([][]remap.MapEntry, len(doc.Maps))
	for i, m := range doc.Maps {
		if m.From == "" || m.To == "" {
			return almanac.Almanac{}, fmt.Errorf("%w: map %d: from and to are required", ErrSyntax, i)
		}
		links[i] = link{from: m.From, to: m.To, where: fmt.Sprintf("map %d", i)}
		for j, triple := range m.Entries {
			e, err := entryFromTriple(triple)
			if err != nil {
				return almanac.Almanac{}, fmt.Errorf("%w: map %q entry %d: %w", ErrSyntax, links[i].name(), j, err)
			}
			entries[i] = append(entries[i], e)
		}
	}

	pipeline, err := buildPipeline(links, entries)
	if err != nil {
		return almanac.Almanac{}, err
	}
	return almanac.New(doc.Seeds, pipeline), nil
}
