package booking

import (
	"time"

	"github.com/mauv0809/pickleball-courts/internal/club"
	"github.com/mauv0809/pickleball-courts/internal/metrics"
	"github.com/mauv0809/pickleball-courts/internal/pubsub"
	"github.com/mauv0809/pickleball-courts/internal/schedule"
)

// Options configures a Service.
type Options struct {
	Store    club.ClubStore
	PubSub   pubsub.PubSubClient
	Metrics  metrics.Metrics
	Counters metrics.MetricsStore

	OpenHour  int
	CloseHour int
	Now       func() time.Time
}

// Service implements the booking workflows on top of the club store.
type Service struct {
	store    club.ClubStore
	pubsub   pubsub.PubSubClient
	metrics  metrics.Metrics
	counters metrics.MetricsStore
	hours    []int
	now      func() time.Time
}

// BookRequest asks for one cell, either by slot id or by (court, date, hour).
type BookRequest struct {
	TimeSlotID  string `json:"timeSlotId,omitempty"`
	CourtID     string `json:"courtId,omitempty"`
	Date        string `json:"date,omitempty"`
	Hour        string `json:"hour,omitempty"`
	PlayerName  string `json:"playerName"`
	PlayerEmail string `json:"playerEmail"`
	PlayerPhone string `json:"playerPhone"`
	Players     int    `json:"players"`
}

// BlockRequest overrides one cell with a special slot.
type BlockRequest struct {
	CourtID   string `json:"courtId"`
	Date      string `json:"date"`
	Hour      string `json:"hour"`
	Available bool   `json:"available"`
	Reason    string `json:"reason"`
}

// EnrollRequest signs a player up for a clinic.
type EnrollRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// ScheduleRequest places a clinic template on the calendar.
type ScheduleRequest struct {
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	CourtID   string `json:"courtId"`
}

// CourtRow is one court's cells for a day.
type CourtRow struct {
	Court schedule.Court        `json:"court"`
	Cells []schedule.SlotStatus `json:"cells"`
}

// DayView is the courts × hours grid of one date.
type DayView struct {
	Date   string     `json:"date"`
	Hours  []string   `json:"hours"`
	Courts []CourtRow `json:"courts"`
}

// DayRow is one date's cells for a court.
type DayRow struct {
	Date  string                `json:"date"`
	Cells []schedule.SlotStatus `json:"cells"`
}

// WeekView is the days × hours grid of one court.
type WeekView struct {
	Court schedule.Court `json:"court"`
	Hours []string       `json:"hours"`
	Days  []DayRow       `json:"days"`
}

// Stats summarizes the club for the dashboard.
type Stats struct {
	Courts             int            `json:"courts"`
	ActiveReservations int            `json:"activeReservations"`
	SlotsToday         int            `json:"slotsToday"`
	AvailableToday     int            `json:"availableToday"`
	ScheduledClinics   int            `json:"scheduledClinics"`
	Coaches            int            `json:"coaches"`
	Counters           map[string]int `json:"counters"`
}
