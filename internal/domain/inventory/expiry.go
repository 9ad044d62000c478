package inventory

import "time"

const dateLayout = "2006-01-02"

// DepleteExpired zeroes the quantity of every entry whose expiration date is
// strictly before now's calendar date. It returns the (possibly new) entry
// slice and whether anything changed; the input slice is never mutated.
// Entries with unparseable dates are left untouched.
func DepleteExpired(entries []ExpirationEntry, now time.Time) ([]ExpirationEntry, bool) {
	today := now.Format(dateLayout)

	changed := false
	for _, e := range entries {
		if e.Stock != 0 && expired(e.ExpirationDate, today) {
			changed = true
			break
		}
	}
	if !changed {
		return entries, false
	}

	out := make([]ExpirationEntry, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].Stock != 0 && expired(out[i].ExpirationDate, today) {
			out[i].Stock = 0
		}
	}
	return out, true
}

func expired(expirationDate, today string) bool {
	d, err := time.Parse(dateLayout, expirationDate)
	if err != nil {
		return false
	}
	t, _ := time.Parse(dateLayout, today)
	return d.Before(t)
}
