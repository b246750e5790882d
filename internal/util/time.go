package util

import (
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

var (
	seoulOnce sync.Once
	seoulLoc  *time.Location
)

// Seoul returns the Asia/Seoul location, falling back to a fixed +09:00 zone
// when the tz database is unavailable (Korea has no DST, so the offsets match).
func Seoul() *time.Location {
	seoulOnce.Do(func() {
		loc, err := time.LoadLocation("Asia/Seoul")
		if err != nil {
			log.Warnf("Failed to load location 'Asia/Seoul': %v. Falling back to fixed KST.", err)
			loc = time.FixedZone("KST", 9*60*60)
		}
		seoulLoc = loc
	})
	return seoulLoc
}

// Day truncates t to midnight of its calendar day in Seoul.
func Day(t time.Time) time.Time {
	kst := t.In(Seoul())
	return time.Date(kst.Year(), kst.Month(), kst.Day(), 0, 0, 0, 0, Seoul())
}

// NextMarketDate predicts when KRX daily prices next change.
// It returns the next weekday close at 3:30 PM Seoul time, in UTC.
// Exchange holidays are not modelled; an extra refresh on a holiday is harmless.
func NextMarketDate(input time.Time) time.Time {
	loc := Seoul()
	nowKST := input.In(loc)

	// Start with today at 3:30 PM KST
	next := time.Date(nowKST.Year(), nowKST.Month(), nowKST.Day(), 15, 30, 0, 0, loc)

	// If it's already past the close, move to the next day
	if nowKST.After(next) {
		next = next.AddDate(0, 0, 1)
	}

	// Skip weekends to find the next business day
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}

	return next.UTC()
}
