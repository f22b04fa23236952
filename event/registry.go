package event

import "strings"

var typeNames = [eventTypeCount]string{
	EventNone:              "None",
	EventKnotEnter:         "EventKnotEnter",
	EventKnotLand:          "EventKnotLand",
	EventJunctionEnter:     "EventJunctionEnter",
	EventJunctionExit:      "EventJunctionExit",
	EventJunctionSelection: "EventJunctionSelection",
	EventAnimateRejected:   "EventAnimateRejected",
	EventPauseChange:       "EventPauseChange",
	EventRollResult:        "EventRollResult",
	EventStatsChange:       "EventStatsChange",
	EventStarOffer:         "EventStarOffer",
}

var nameToType = func() map[string]EventType {
	m := make(map[string]EventType, len(typeNames))
	for et, name := range typeNames {
		m[strings.ToLower(name)] = EventType(et)
	}
	return m
}()

// String returns the registered name for an EventType
func (et EventType) String() string {
	if et < 0 || et >= eventTypeCount {
		return "Unknown"
	}
	return typeNames[et]
}

// GetEventType returns the EventType for a name, case-insensitive
// The "Event" prefix is optional: "KnotEnter" resolves like "EventKnotEnter"
func GetEventType(name string) (EventType, bool) {
	key := strings.ToLower(name)
	if et, ok := nameToType[key]; ok && et != EventNone {
		return et, true
	}
	if et, ok := nameToType["event"+key]; ok {
		return et, true
	}
	return EventNone, false
}

// AllTypes returns every emit-able event type in declaration order
func AllTypes() []EventType {
	types := make([]EventType, 0, eventTypeCount-1)
	for et := EventNone + 1; et < eventTypeCount; et++ {
		types = append(types, et)
	}
	return types
}
