// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// FoodType values
const (
	FoodBiryani = "biryani"
	FoodMuri    = "muri"
	FoodJilapi  = "jilapi"
	FoodNone    = "none"
)

// Prayer slot values
const (
	SlotJuma        = "juma"
	SlotAsr         = "asr"
	SlotMaghrib     = "maghrib"
	SlotIsha        = "isha"
	SlotUnspecified = "unspecified"
)

// Vote kinds
const (
	VoteAgree    = "agree"
	VoteDisagree = "disagree"
)

// Trust bands
const (
	TrustHigh   = "high"
	TrustMedium = "medium"
	TrustLow    = "low"
)

// Request types

// CreateReportRequest is the JSON body of POST /api/mosques.
// Coordinates are pointers so a missing field can be told apart from 0.
type CreateReportRequest struct {
	Name       string   `json:"name"`
	Lat        *float64 `json:"lat"`
	Lng        *float64 `json:"lng"`
	FoodType   string   `json:"foodType"`
	PrayerSlot string   `json:"prayerSlot"`
	EventDate  string   `json:"eventDate"`
	StartTime  string   `json:"startTime"`
	EndTime    string   `json:"endTime"`
}

type VoteRequest struct {
	ClientID string `json:"clientId"`
}

// Domain types

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Report is one mosque food-service submission for one date.
type Report struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Location
	FoodType      string    `json:"foodType"`
	PrayerSlot    string    `json:"prayerSlot"`
	StartTime     *string   `json:"startTime"`
	EndTime       *string   `json:"endTime"`
	EventDate     string    `json:"eventDate"`
	ProofImage    *string   `json:"proofImage"`
	AgreeCount    int       `json:"agreeCount"`
	DisagreeCount int       `json:"disagreeCount"`
	TrustScore    int       `json:"trustScore"`
	TrustLevel    string    `json:"trustLevel"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Vote is one client's agree/disagree signal on a report.
type Vote struct {
	ID        string    `json:"id"`
	ReportID  string    `json:"reportId"`
	ClientID  string    `json:"clientId"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

type NearbyReport struct {
	Report
	DistanceKm float64 `json:"distanceKm"`
}

// Error response

type ErrorResponse struct {
	Message string `json:"message"`
}

type VotedResponse struct {
	Voted bool `json:"voted"`
}

type ClientResponse struct {
	ClientID string `json:"clientId"`
}
