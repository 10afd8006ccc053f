// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package reports

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/danielhkuo/biryani-lagbe/models"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	MaxNameLength     = 120
	MaxClientIDLength = 128
)

// Draft is an unvalidated report submission.
type Draft struct {
	Name       string
	Lat        *float64
	Lng        *float64
	FoodType   string
	PrayerSlot string
	EventDate  string
	StartTime  string
	EndTime    string
	ProofImage string
}

// DraftFromRequest copies a decoded JSON body into a Draft.
func DraftFromRequest(req models.CreateReportRequest) Draft {
	return Draft{
		Name:       req.Name,
		Lat:        req.Lat,
		Lng:        req.Lng,
		FoodType:   req.FoodType,
		PrayerSlot: req.PrayerSlot,
		EventDate:  req.EventDate,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	}
}

var slotAliases = map[string]string{
	"juma":    models.SlotJuma,
	"jumuah":  models.SlotJuma,
	"jumu'ah": models.SlotJuma,
	"asr":     models.SlotAsr,
	"asor":    models.SlotAsr,
	"maghrib": models.SlotMaghrib,
	"magrib":  models.SlotMaghrib,
	"isha":    models.SlotIsha,
	"esha":    models.SlotIsha,
}

// Validate checks d and returns its normalized form. today fills an empty
// event date. Fields are checked in a fixed order and the first failure is
// returned as a *ValidationError.
func (d Draft) Validate(today string) (Draft, error) {
	out := d

	out.Name = strings.TrimSpace(d.Name)
	if out.Name == "" {
		return Draft{}, invalid("name", "Mosque name is required")
	}
	if utf8.RuneCountInString(out.Name) > MaxNameLength {
		return Draft{}, invalid("name", "Mosque name must be at most "+strconv.Itoa(MaxNameLength)+" characters")
	}

	if err := checkCoordinate("lat", d.Lat, 90); err != nil {
		return Draft{}, err
	}
	if err := checkCoordinate("lng", d.Lng, 180); err != nil {
		return Draft{}, err
	}

	out.FoodType = strings.ToLower(strings.TrimSpace(d.FoodType))
	if !IsFoodType(out.FoodType) {
		return Draft{}, invalid("foodType", "foodType must be one of: biryani, muri, jilapi, none")
	}

	slot, ok := NormalizePrayerSlot(d.PrayerSlot)
	if !ok {
		return Draft{}, invalid("prayerSlot", "prayerSlot must be one of: juma, asr, maghrib, isha")
	}
	out.PrayerSlot = slot

	out.EventDate = strings.TrimSpace(d.EventDate)
	if out.EventDate == "" {
		out.EventDate = today
	}
	if !IsDate(out.EventDate) {
		return Draft{}, invalid("eventDate", "eventDate must be a YYYY-MM-DD date")
	}

	out.StartTime = strings.TrimSpace(d.StartTime)
	if out.StartTime != "" && !isClock(out.StartTime) {
		return Draft{}, invalid("startTime", "startTime must be HH:MM")
	}
	out.EndTime = strings.TrimSpace(d.EndTime)
	if out.EndTime != "" && !isClock(out.EndTime) {
		return Draft{}, invalid("endTime", "endTime must be HH:MM")
	}
	// Zero-padded HH:MM compares lexically.
	if out.StartTime != "" && out.EndTime != "" && out.StartTime > out.EndTime {
		return Draft{}, invalid("endTime", "Start time cannot be after end time")
	}

	out.ProofImage = strings.TrimSpace(d.ProofImage)
	return out, nil
}

func checkCoordinate(field string, v *float64, limit float64) error {
	if v == nil {
		return invalid(field, field+" is required")
	}
	if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < -limit || *v > limit {
		return invalid(field, field+" must be between -"+strconv.Itoa(int(limit))+" and "+strconv.Itoa(int(limit)))
	}
	return nil
}

// ParseCoordinate parses a form value into a coordinate pointer. An empty
// value yields nil so Validate reports the field as missing.
func ParseCoordinate(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, invalid(field, "Invalid latitude/longitude")
	}
	return &v, nil
}

func IsFoodType(s string) bool {
	switch s {
	case models.FoodBiryani, models.FoodMuri, models.FoodJilapi, models.FoodNone:
		return true
	}
	return false
}

// NormalizePrayerSlot maps a slot or one of its spellings to its canonical
// value. Empty input is SlotUnspecified.
func NormalizePrayerSlot(raw string) (string, bool) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" || raw == models.SlotUnspecified {
		return models.SlotUnspecified, true
	}
	slot, ok := slotAliases[raw]
	return slot, ok
}

// IsDate reports whether s is a YYYY-MM-DD calendar date.
func IsDate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

func isClock(s string) bool {
	if len(s) != len(TimeLayout) {
		return false
	}
	_, err := time.Parse(TimeLayout, s)
	return err == nil
}

// NormalizeClientID trims a client identifier and checks its length.
func NormalizeClientID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", invalid("clientId", "Missing client id")
	}
	if len(id) > MaxClientIDLength {
		return "", invalid("clientId", "client id is too long")
	}
	return id, nil
}

func checkVoteKind(kind string) error {
	if kind != models.VoteAgree && kind != models.VoteDisagree {
		return invalid("kind", "vote kind must be agree or disagree")
	}
	return nil
}
