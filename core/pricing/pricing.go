// Package pricing derives stay prices. Cart items and reservations both price
// through Total so the amount stamped on an item survives its conversion into
// a reservation unchanged.
package pricing

import "time"

// Total is the stay price for the given nightly rate and date range: whole
// days between start and end, floored at one night so a same-day or sub-24h
// stay is still charged a full night.
func Total(perNight int, start, end time.Time) int {
	return Nights(start, end) * perNight
}

// Nights is the number of billable nights in the range, never less than one.
func Nights(start, end time.Time) int {
	days := int(end.Sub(start).Hours() / 24)
	if days < 1 {
		return 1
	}
	return days
}
