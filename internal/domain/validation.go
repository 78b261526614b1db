package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var timeLayouts = []string{TimeFormat, "3:04PM"}

// ParseID parses a positive integer identifier
func ParseID(field, raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, InvalidArgument("%s is required", field).WithDetail("field", field)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, InvalidArgument("%s must be a positive integer", field).
			WithDetail("field", field).
			WithDetail("value", raw)
	}
	return id, nil
}

// ParseServiceIDs decodes service ids given either as a JSON list or as a
// string holding a JSON list. Elements may be numbers or numeric strings.
func ParseServiceIDs(raw []byte) ([]int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, InvalidArgument("service_ids is required").WithDetail("field", "service_ids")
	}

	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, malformedServiceIDs(err)
		}
		raw = bytes.TrimSpace([]byte(encoded))
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, malformedServiceIDs(err)
	}
	if len(items) == 0 {
		return nil, InvalidArgument("service_ids must not be empty").WithDetail("field", "service_ids")
	}

	ids := make([]int64, 0, len(items))
	for i, item := range items {
		text := string(bytes.TrimSpace(item))
		if strings.HasPrefix(text, `"`) {
			if err := json.Unmarshal(item, &text); err != nil {
				return nil, malformedServiceIDs(err)
			}
		}
		id, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil || id <= 0 {
			return nil, InvalidArgument("service_ids[%d] is not a valid id", i).
				WithDetail("field", "service_ids").
				WithDetail("value", text)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func malformedServiceIDs(err error) *Error {
	return InvalidArgument("service_ids must be a list of ids").
		WithDetail("field", "service_ids").
		WithCause(err)
}

// ParseUserID accepts only the canonical textual form of a version 4 UUID
func ParseUserID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil || len(raw) != 36 || id.Version() != 4 || id.Variant() != uuid.RFC4122 {
		return uuid.Nil, InvalidArgument("user id must be a UUID v4").WithDetail("field", "user_id")
	}
	return id, nil
}

// ParseSchedule combines date (YYYY-MM-DD) and time (h:mm AM/PM) in loc.
// The result must lie strictly after now and start on the hour.
func ParseSchedule(date, clock string, loc *time.Location, now time.Time) (time.Time, error) {
	date = strings.TrimSpace(date)
	clock = strings.ToUpper(strings.TrimSpace(clock))
	if date == "" || clock == "" {
		return time.Time{}, InvalidArgument("date and time are required")
	}

	day, err := time.ParseInLocation(DateFormat, date, loc)
	if err != nil {
		return time.Time{}, InvalidArgument("date must be in YYYY-MM-DD format").
			WithDetail("field", "date").
			WithDetail("value", date)
	}

	var hm time.Time
	parsed := false
	for _, layout := range timeLayouts {
		if hm, err = time.Parse(layout, clock); err == nil {
			parsed = true
			break
		}
	}
	if !parsed {
		return time.Time{}, InvalidArgument("time must be in h:mm AM/PM format").
			WithDetail("field", "time").
			WithDetail("value", clock)
	}

	schedule := time.Date(day.Year(), day.Month(), day.Day(), hm.Hour(), hm.Minute(), 0, 0, loc)
	if !schedule.After(now) {
		return time.Time{}, NewError(KindPastSchedule, "schedule must be in the future").
			WithDetail("schedule", schedule.Format(DisplayDateTime))
	}
	if schedule.Minute() != 0 {
		return time.Time{}, InvalidArgument("time must be on the hour").
			WithDetail("field", "time").
			WithDetail("value", clock)
	}
	return schedule, nil
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc
func ParseDate(raw string, loc *time.Location) (time.Time, error) {
	day, err := time.ParseInLocation(DateFormat, strings.TrimSpace(raw), loc)
	if err != nil {
		return time.Time{}, InvalidArgument("date must be in YYYY-MM-DD format").
			WithDetail("field", "date").
			WithDetail("value", raw)
	}
	return day, nil
}

// FormatIDs renders ids for messages
func FormatIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
}
