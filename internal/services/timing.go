package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime logs how long an operation took; call it as
// defer TrackTime("name", time.Now()).
func TrackTime(operation string, start time.Time) {
	log.Debugf("%s took %d ms", operation, time.Since(start).Milliseconds())
}
