package forecast

import "time"

const noon = 12

// Bucketize reduces a time series of forecast samples to one representative
// sample per calendar day, at most MaxDays of them.
//
// Days are calendar dates of each sample's timestamp in loc (time.Local when
// nil) and are emitted in the order they first appear in samples. The
// representative of a day is the sample whose local hour is closest to noon;
// on a tie the earliest sample in input order wins.
func Bucketize(samples []Sample, loc *time.Location) []Sample {
	loc = location(loc)

	type bucket struct {
		best    Sample
		minDiff int
	}

	buckets := []*bucket{}
	index := make(map[date]int)

	for _, s := range samples {
		diff := absInt(s.Hour(loc) - noon)
		d := dateOf(s.Time, loc)

		i, ok := index[d]
		if !ok {
			index[d] = len(buckets)
			buckets = append(buckets, &bucket{best: s, minDiff: diff})
			continue
		}

		// Strictly smaller only: the first sample at a given distance stays
		if b := buckets[i]; diff < b.minDiff {
			b.best = s
			b.minDiff = diff
		}
	}

	if len(buckets) > MaxDays {
		buckets = buckets[:MaxDays]
	}

	daily := make([]Sample, 0, len(buckets))
	for _, b := range buckets {
		daily = append(daily, b.best)
	}

	return daily
}

// DistinctDays counts the calendar days in loc covered by samples
func DistinctDays(samples []Sample, loc *time.Location) int {
	seen := make(map[date]struct{})
	for _, s := range samples {
		seen[dateOf(s.Time, loc)] = struct{}{}
	}
	return len(seen)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
