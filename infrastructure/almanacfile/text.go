package almanacfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/domain/remap"
)

// ParseText reads the puzzle format:
//
//	seeds: 79 14 55 13
//
//	seed-to-soil map:
//	50 98 2
//	52 50 48
//
// Map blocks hold "destination source count" lines and may repeat any
// number of times. Blank lines are ignored.
func ParseText(r io.Reader) (almanac.Almanac, error) {
	var (
		seeds    []uint64
		seenSeed bool
		links    []link
		entries  [][]remap.MapEntry
	)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), MaxLineBytes)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		switch {
		case strings.HasPrefix(line, "seeds:"):
			if seenSeed {
				return almanac.Almanac{}, fmt.Errorf("%w: line %d: duplicate seeds line", ErrSyntax, lineNo)
			}
			nums, err := parseNumbers(strings.TrimPrefix(line, "seeds:"))
			if err != nil {
				return almanac.Almanac{}, fmt.Errorf("%w: line %d: %w", ErrSyntax, lineNo, err)
			}
			seeds, seenSeed = nums, true

		case strings.HasSuffix(line, " map:"):
			l, err := parseHeader(strings.TrimSuffix(line, " map:"), lineNo)
			if err != nil {
				return almanac.Almanac{}, err
			}
			links = append(links, l)
			entries = append(entries, nil)

		default:
			if len(links) == 0 {
				return almanac.Almanac{}, fmt.Errorf("%w: line %d: entry outside of a map block", ErrSyntax, lineNo)
			}
			nums, err := parseNumbers(line)
			if err != nil {
				return almanac.Almanac{}, fmt.Errorf("%w: line %d: %w", ErrSyntax, lineNo, err)
			}
			e, err := entryFromTriple(nums)
			if err != nil {
				return almanac.Almanac{}, fmt.Errorf("%w: line %d: %w", ErrSyntax, lineNo, err)
			}
			last := len(entries) - 1
			entries[last] = append(entries[last], e)
		}
	}
	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return almanac.Almanac{}, fmt.Errorf("%w: line %d longer than %d bytes", ErrSyntax, lineNo+1, MaxLineBytes)
		}
		return almanac.Almanac{}, fmt.Errorf("read almanac: %w", err)
	}
	if !seenSeed {
		return almanac.Almanac{}, fmt.Errorf("%w: missing seeds line", ErrSyntax)
	}

	pipeline, err := buildPipeline(links, entries)
	if err != nil {
		return almanac.Almanac{}, err
	}
	return almanac.New(seeds, pipeline), nil
}

func parseHeader(name string, lineNo int) (link, error) {
	from, to, ok := strings.Cut(name, "-to-")
	if !ok || from == "" || to == "" || strings.ContainsAny(name, " \t") {
		return link{}, fmt.Errorf("%w: line %d: bad map header %q", ErrSyntax, lineNo, name)
	}
	return link{from: from, to: to, where: fmt.Sprintf("line %d", lineNo)}, nil
}

func parseNumbers(s string) ([]uint64, error) {
	fields := strings.Fields(s)
	out := make([]uint64, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.ParseUint(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad number %q", f)
		}
		out = append(out, n)
	}
	return out, nil
}

// entryFromTriple reads the file order: destination, source, count.
func entryFromTriple(nums []uint64) (remap.MapEntry, error) {
	if len(nums) != 3 {
		return remap.MapEntry{}, fmt.Errorf("want 3 numbers, got %d", len(nums))
	}
	return remap.NewMapEntry(nums[1], nums[0], nums[2])
}
