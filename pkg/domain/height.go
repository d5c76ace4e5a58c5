package domain

// Height is a value of the platform's monotonically increasing counter. All
// timestamps and expiration math in the registry are expressed in heights,
// never wall-clock time.
type Height uint64

// AddDays returns the height reached after the given number of days, using
// the platform's heights-per-day conversion rate.
func (h Height) AddDays(days int, heightsPerDay uint64) Height {
	return h + Height(uint64(days)*heightsPerDay)
}

// After reports whether h is strictly later than other.
func (h Height) After(other Height) bool {
	return h > other
}
