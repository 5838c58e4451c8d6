// Package palette assigns display colors to mutation categories:
// deterministic fixed colors for the standard variant classifications,
// stable per-instance colors for categories discovered at runtime.
package palette

import (
	"math/rand"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/PoisonAlien/oncoprint/internal/oncoprint"
)

// knownColors is the fixed palette for the standard variant
// classifications. These never change across assigner instances.
var knownColors = map[string]string{
	oncoprint.ClassificationFrameShiftIns: "#a6cee3",
	oncoprint.ClassificationFrameShiftDel: "#1f78b4",
	oncoprint.ClassificationInFrameDel:    "#b2df8a",
	oncoprint.ClassificationMissense:      "#33a02c",
	oncoprint.ClassificationInFrameIns:    "#fb9a99",
	oncoprint.ClassificationNonsense:      "#e31a1c",
	oncoprint.ClassificationNonstop:       "#fdbf6f",
	oncoprint.ClassificationSpliceSite:    "#ff7f00",
	oncoprint.ClassificationStartSite:     "#cab2d6",
	oncoprint.ClassificationMultiHit:      "#6a3d9a",
	oncoprint.ClassificationSilent:        "#999999",
}

// reserveColors is the ordered pool handed out to novel categories before
// any color synthesis happens.
var reserveColors = []string{
	"#1b9e77", "#d95f02", "#7570b3", "#e7298a",
	"#66a61e", "#e6ab02", "#a6761d", "#666666",
}

// synthesisAttempts bounds how many synthesized candidates are tried before
// a duplicate color is tolerated.
const synthesisAttempts = 16

// Fixed seed: colors synthesized beyond the reserve pool are reproducible
// across runs and across assigner instances.
const synthesisSeed = 1

// Assigner maps category labels to display colors. Each rendering session
// owns its assigner; the dynamic assignment state is per-instance and not
// safe for concurrent use.
type Assigner struct {
	dynamic map[string]string
	used    map[string]bool
	reserve []string
	rng     *rand.Rand
}

// New creates an assigner with the standard classification palette loaded
// and the full reserve pool available.
func New() *Assigner {
	a := &Assigner{
		dynamic: make(map[string]string),
		used:    make(map[string]bool, len(knownColors)),
		reserve: append([]string(nil), reserveColors...),
		rng:     rand.New(rand.NewSource(synthesisSeed)),
	}
	for _, c := range knownColors {
		a.used[c] = true
	}
	return a
}

// ColorFor returns the display color for a category. Known categories
// always get their fixed color. An unknown category gets the next unused
// reserve color on first sight, or a synthesized one once the reserve is
// exhausted, and keeps that color for the lifetime of the assigner.
func (a *Assigner) ColorFor(category string) string {
	if c, ok := knownColors[category]; ok {
		return c
	}
	if c, ok := a.dynamic[category]; ok {
		return c
	}
	c := a.nextColor()
	a.dynamic[category] = c
	a.used[c] = true
	return c
}

// Known reports whether category has a fixed palette color.
func Known(category string) bool {
	_, ok := knownColors[category]
	return ok
}

func (a *Assigner) nextColor() string {
	for len(a.reserve) > 0 {
		c := a.reserve[0]
		a.reserve = a.reserve[1:]
		if !a.used[c] {
			return c
		}
	}
	var c string
	for i := 0; i < synthesisAttempts; i++ {
		c = a.synthesize()
		if !a.used[c] {
			return c
		}
	}
	// Duplicate tolerated after the attempt budget.
	return c
}

// synthesize draws a color across the full hue circle with moderate
// saturation and lightness, keeping dynamic colors legible on white.
func (a *Assigner) synthesize() string {
	h := a.rng.Float64() * 360
	s := 0.35 + a.rng.Float64()*0.5
	l := 0.35 + a.rng.Float64()*0.3
	return colorful.Hsl(h, s, l).Hex()
}

// Entry is one legend row: a category, its display color, and whether the
// color comes from the fixed palette.
type Entry struct {
	Category string
	Color    string
	Known    bool
}

// Legend returns legend entries for the given categories, assigning colors
// to categories not seen before. Empty placeholder categories and
// duplicates are skipped; known categories sort first, then alphabetically
// within each half.
func (a *Assigner) Legend(categories []string) []Entry {
	seen := make(map[string]bool, len(categories))
	entries := make([]Entry, 0, len(categories))
	for _, cat := range categories {
		if cat == "" || seen[cat] {
			continue
		}
		seen[cat] = true
		entries = append(entries, Entry{
			Category: cat,
			Color:    a.ColorFor(cat),
			Known:    Known(cat),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Known != entries[j].Known {
			return entries[i].Known
		}
		return entries[i].Category < entries[j].Category
	})
	return entries
}

// ResetDynamic forgets all dynamic assignments and returns their colors to
// the pool. Fixed known-category colors are never touched.
func (a *Assigner) ResetDynamic() {
	for _, c := range a.dynamic {
		delete(a.used, c)
	}
	a.dynamic = make(map[string]string)
	a.reserve = append([]string(nil), reserveColors...)
}
