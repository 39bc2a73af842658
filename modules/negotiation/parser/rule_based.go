// Package parser implements availability parsing: an LLM-backed primary
// parser and the rule-based fallback used when the LLM is disabled,
// errors, or times out.
package parser

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/andreypavlenko/jobber/modules/negotiation/model"
)

// RuleBased parses a constrained vocabulary: relative terms ("next week",
// "this week"), day names, and time-of-day ranges ("mornings",
// "afternoons", "9am-5pm"). Anything else falls through as no constraint,
// which is safer than guessing wrong.
type RuleBased struct {
	now func() time.Time
}

func NewRuleBased(now func() time.Time) *RuleBased {
	return &RuleBased{now: now}
}

var (
	dayNamePattern  = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	hourRangePattern = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(am|pm)?\s*-\s*(\d{1,2})\s*(am|pm)\b`)
)

var weekdaysByName = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func (p *RuleBased) Parse(ctx context.Context, freeText string) (*model.Availability, error) {
	text := strings.ToLower(freeText)
	now := p.now()

	avail := &model.Availability{
		StartDate: now,
		EndDate:   now.AddDate(0, 0, 14),
	}

	switch {
	case strings.Contains(text, "next week"):
		startOfNextWeek := startOfWeek(now).AddDate(0, 0, 7)
		avail.StartDate = startOfNextWeek
		avail.EndDate = startOfNextWeek.AddDate(0, 0, 7)
	case strings.Contains(text, "this week"):
		avail.StartDate = now
		avail.EndDate = startOfWeek(now).AddDate(0, 0, 7)
	}

	if days := parseDayNames(text); len(days) > 0 {
		avail.PreferredDays = days
	}

	if hours := parseHourRange(text); hours != nil {
		avail.PreferredHours = hours
	} else if strings.Contains(text, "morning") {
		avail.PreferredHours = &model.HourRange{StartHour: 9, EndHour: 12}
	} else if strings.Contains(text, "afternoon") {
		avail.PreferredHours = &model.HourRange{StartHour: 12, EndHour: 17}
	}

	return avail, nil
}

func parseDayNames(text string) []time.Weekday {
	matches := dayNamePattern.FindAllString(text, -1)
	seen := map[time.Weekday]bool{}
	var days []time.Weekday
	for _, m := range matches {
		wd := weekdaysByName[strings.ToLower(m)]
		if !seen[wd] {
			seen[wd] = true
			days = append(days, wd)
		}
	}
	return days
}

func parseHourRange(text string) *model.HourRange {
	m := hourRangePattern.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	start := to24Hour(m[1], m[2])
	end := to24Hour(m[3], m[4])
	if start < 0 || end < 0 || start >= end {
		return nil
	}
	return &model.HourRange{StartHour: start, EndHour: end}
}

func to24Hour(raw, meridiem string) int {
	var h int
	for _, r := range raw {
		if r < '0' || r > '9' {
			return -1
		}
		h = h*10 + int(r-'0')
	}
	if h < 1 || h > 12 {
		return h
	}
	if strings.EqualFold(meridiem, "pm") && h != 12 {
		h += 12
	}
	if strings.EqualFold(meridiem, "am") && h == 12 {
		h = 0
	}
	return h
}

func startOfWeek(t time.Time) time.Time {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	offset := int(t.Weekday()) - int(time.Monday)
	if offset < 0 {
		offset += 7
	}
	return t.AddDate(0, 0, -offset)
}
