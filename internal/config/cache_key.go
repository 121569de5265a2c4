package config

import "fmt"

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// TimetableKey returns the cache key for a week's full timetable view.
func (r *CacheKeyStruct) TimetableKey(weekKey string) string {
	return fmt.Sprintf("timetable:%s", weekKey)
}

// ScheduleEventsChannel returns the Redis PubSub channel carrying live
// schedule change events for the WebSocket feed.
func (r *CacheKeyStruct) ScheduleEventsChannel() string {
	return "schedule:events"
}

var CacheKey = NewCacheKeyStruct()
