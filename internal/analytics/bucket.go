package analytics

import (
	"fmt"
	"sort"
	"time"
)

// WeeksInView is how many rolling weeks BucketByWeek looks back over.
const WeeksInView = 12

type monthKey struct {
	year  int
	month time.Month
}

// BucketByMonth groups entries by calendar month, newest month first. Months
// with no entries get no bucket.
func BucketByMonth(entries []Entry) []Bucket {
	byKey := make(map[monthKey][]Entry)
	for _, e := range entries {
		y, m, _ := e.Date.Date()
		k := monthKey{y, m}
		byKey[k] = append(byKey[k], e)
	}

	keys := make([]monthKey, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year > keys[j].year
		}
		return keys[i].month > keys[j].month
	})

	buckets := make([]Bucket, 0, len(keys))
	for _, k := range keys {
		start := Day{time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC)}
		buckets = append(buckets, Bucket{
			Label:   fmt.Sprintf("%s %d", k.month, k.year),
			Start:   start,
			End:     Day{start.AddDate(0, 1, -1)},
			Entries: byKey[k],
		})
	}
	return buckets
}

// BucketByWeek builds the last WeeksInView Monday-to-Sunday windows ending with
// the week containing today, drops windows without entries, and returns the
// rest oldest first.
func BucketByWeek(entries []Entry, today time.Time) []Bucket {
	monday := MondayOf(today)

	buckets := make([]Bucket, 0, WeeksInView)
	for i := 0; i < WeeksInView; i++ {
		start := monday.AddDays(-7 * i)
		end := start.AddDays(6)
		var inWindow []Entry
		for _, e := range entries {
			d := DayOf(e.Date)
			if !d.Before(start.Time) && !d.After(end.Time) {
				inWindow = append(inWindow, e)
			}
		}
		if len(inWindow) == 0 {
			continue
		}
		buckets = append(buckets, Bucket{
			Label:   start.Format("Jan 2"),
			Start:   start,
			End:     end,
			Entries: inWindow,
		})
	}

	// Built newest first; display order is chronological.
	for i, j := 0, len(buckets)-1; i < j; i, j = i+1, j-1 {
		buckets[i], buckets[j] = buckets[j], buckets[i]
	}
	return buckets
}

// MondayOf returns the Monday on or before t's calendar date.
func MondayOf(t time.Time) Day {
	d := DayOf(t)
	weekday := int(d.Weekday()) // 0=Sun
	if weekday == 0 {
		weekday = 7
	}
	return d.AddDays(-(weekday - 1))
}
