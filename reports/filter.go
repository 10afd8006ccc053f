// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reports

import (
	"slices"
	"strconv"
	"strings"

	"github.com/danielhkuo/biryani-lagbe/models"
)

// FoodAny disables the food type predicate.
const FoodAny = "any"

// Filter selects reports for one day. Zero-valued optional fields match
// everything.
type Filter struct {
	EventDate  string
	SearchText string
	FoodType   string
	Box        *BoundingBox
}

// BoundingBox is an inclusive lat/lng rectangle.
type BoundingBox struct {
	South float64
	West  float64
	North float64
	East  float64
}

func (b BoundingBox) Contains(loc models.Location) bool {
	return loc.Lat >= b.South && loc.Lat <= b.North &&
		loc.Lng >= b.West && loc.Lng <= b.East
}

// ParseBoundingBox reads "south,west,north,east". An empty string is no box.
func ParseBoundingBox(raw string) (*BoundingBox, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return nil, invalid("bbox", "bbox must be south,west,north,east")
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, invalid("bbox", "bbox must be south,west,north,east")
		}
		v[i] = f
	}
	box := &BoundingBox{South: v[0], West: v[1], North: v[2], East: v[3]}
	if box.South > box.North || box.West > box.East {
		return nil, invalid("bbox", "bbox corners are out of order")
	}
	return box, nil
}

// NormalizeFoodFilter maps a quickFood query value to a food type or
// FoodAny. Unrecognised values select everything.
func NormalizeFoodFilter(raw string) string {
	v := strings.ToLower(strings.TrimSpace(raw))
	if IsFoodType(v) {
		return v
	}
	return FoodAny
}

// Normalize trims and lower-cases the text predicates.
func (f Filter) Normalize() Filter {
	f.EventDate = strings.TrimSpace(f.EventDate)
	f.SearchText = strings.ToLower(strings.TrimSpace(f.SearchText))
	f.FoodType = NormalizeFoodFilter(f.FoodType)
	return f
}

// Match reports whether r satisfies every predicate of a normalized filter.
func (f Filter) Match(r models.Report) bool {
	if r.EventDate != f.EventDate {
		return false
	}
	if f.FoodType != FoodAny && r.FoodType != f.FoodType {
		return false
	}
	if f.SearchText != "" && !strings.Contains(strings.ToLower(r.Name), f.SearchText) {
		return false
	}
	if f.Box != nil && !f.Box.Contains(r.Location) {
		return false
	}
	return true
}

// Apply returns the reports matching f, oldest first. The input is not
// modified.
func Apply(all []models.Report, f Filter) []models.Report {
	f = f.Normalize()
	out := []models.Report{}
	for _, r := range all {
		if f.Match(r) {
			out = append(out, r)
		}
	}
	SortByCreated(out)
	return out
}

// SortByCreated orders reports by creation time, then id.
func SortByCreated(rs []models.Report) {
	slices.SortStableFunc(rs, func(a, b models.Report) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
