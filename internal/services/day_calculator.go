package services

// DayCalculator defines the interface for counting the days since an oshi's start date
type DayCalculator interface {
	// DaysSince returns the absolute number of calendar days between start and today.
	DaysSince(start string) (int, error)
}
