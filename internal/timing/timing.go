// Package timing measures pipeline stages.
package timing

import (
	"fmt"
	"time"

	"github.com/OFFIS-RIT/statnl/pkg/logger"
)

// Observer receives the duration and outcome of every measured stage.
type Observer interface {
	ObserveStage(stage string, d time.Duration, err error)
}

// Stage runs fn and reports how long it took. The observer may be nil.
func Stage(stage string, observer Observer, fn func() error) error {
	start := time.Now()
	err := fn()
	d := time.Since(start)

	if observer != nil {
		observer.ObserveStage(stage, d, err)
	}
	if err != nil {
		logger.Error("[Timing] Stage failed", "stage", stage, "duration", FormatDuration(d), "err", err)
		return err
	}
	logger.Info("[Timing] Stage finished", "stage", stage, "duration", FormatDuration(d))
	return nil
}

// FormatDuration renders d as hh:mm:ss.mmm.
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	millis := int(d.Milliseconds()) % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
