package timetable

import (
	"errors"
	"fmt"
	"strings"
)

// Timetable is the raw per-line, per-direction timetable as published by the operator
type Timetable []Line

type Line struct {
	Type     string    `json:"type" yaml:"type"`
	LineName string    `json:"lineName" yaml:"lineName"`
	Loop     bool      `json:"loop,omitempty" yaml:"loop,omitempty"`
	Stations []Station `json:"stations" yaml:"stations"`
}

type Station struct {
	ID   string   `json:"ID,omitempty" yaml:"ID,omitempty"`
	Name string   `json:"name" yaml:"name"`
	Time []string `json:"time" yaml:"time"`
}

// StopTime is a station paired with a time in seconds since the start of the operating day
type StopTime struct {
	Station string `json:"station" groups:"basic"`
	Time    int    `json:"time" groups:"basic"`
}

func (s StopTime) String() string {
	return fmt.Sprintf("%s:%d", s.Station, s.Time)
}

type DayType string

const (
	DayTypeWeekday DayType = "weekday"
	DayTypeHoliday DayType = "holiday"
)

var DayTypes = []DayType{DayTypeWeekday, DayTypeHoliday}

var ErrUnknownDayType = errors.New("unknown day type")

var dayTypeAliases = map[string]DayType{
	"weekday":  DayTypeWeekday,
	"holiday":  DayTypeHoliday,
	"weekend":  DayTypeHoliday,
	"平日":       DayTypeWeekday,
	"土日休":      DayTypeHoliday,
	"土休日":      DayTypeHoliday,
	"saturday": DayTypeHoliday,
	"sunday":   DayTypeHoliday,
}

func ParseDayType(value string) (DayType, error) {
	if dayType, ok := dayTypeAliases[strings.ToLower(strings.TrimSpace(value))]; ok {
		return dayType, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownDayType, value)
}
