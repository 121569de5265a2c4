package worker

import (
	"context"
	"time"

	"github.com/lophocvn/lophoc-backend/internal/service"
	"github.com/lophocvn/lophoc-backend/internal/weekkey"
	"github.com/rs/zerolog"
)

const RefreshInterval = 5 * time.Minute

// TimetableWorker keeps the current- and next-week timetable caches warm.
// Without it the prewarmed entries go stale at the ISO week rollover: the
// key for "current week" changes and the first Monday request would pay the
// rebuild cost.
type TimetableWorker struct {
	schedules *service.ScheduleService
	log       zerolog.Logger
}

func NewTimetableWorker(schedules *service.ScheduleService, log zerolog.Logger) *TimetableWorker {
	return &TimetableWorker{
		schedules: schedules,
		log:       log.With().Str("component", "timetable_worker").Logger(),
	}
}

func (w *TimetableWorker) Start(ctx context.Context) {
	w.log.Info().Msg("TimetableWorker started")

	ticker := time.NewTicker(RefreshInterval)
	defer ticker.Stop()

	lastWeek := weekkey.Current()
	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("TimetableWorker stopped")
			return

		case <-ticker.C:
			// Only rebuild when the week actually rolled over; mutations
			// invalidate the cache themselves.
			current := weekkey.Current()
			if current == lastWeek {
				continue
			}
			w.log.Info().Str("week", current).Msg("Week rollover detected, refreshing timetables")
			if err := w.schedules.PrewarmTimetables(ctx); err != nil {
				w.log.Error().Err(err).Msg("Timetable refresh failed")
				continue
			}
			lastWeek = current
		}
	}
}
