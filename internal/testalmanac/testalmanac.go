// Package testalmanac provides the worked example almanac for tests.
package testalmanac

import (
	"strings"
	"testing"

	"github.com/helixml/rangemap/domain/almanac"
	"github.com/helixml/rangemap/infrastructure/almanacfile"
)

// Known answers for Text.
const (
	LowestPoint = 35
	LowestRange = 46
)

// Text is the worked example in the puzzle text format.
const Text = `seeds: 79 14 55 13

seed-to-soil map:
50 98 2
52 50 48

soil-to-fertilizer map:
0 15 37
37 52 2
39 0 15

fertilizer-to-water map:
49 53 8
0 11 42
42 0 7
57 7 4

water-to-light map:
88 18 7
18 25 70

light-to-temperature map:
45 77 23
81 45 19
68 64 13

temperature-to-humidity map:
0 69 1
1 0 69

humidity-to-location map:
60 56 37
56 93 4
`

// Example parses Text.
func Example(t testing.TB) almanac.Almanac {
	t.Helper()
	a, err := almanacfile.ParseText(strings.NewReader(Text))
	if err != nil {
		t.Fatalf("testalmanac.Example: %v", err)
	}
	return a
}
