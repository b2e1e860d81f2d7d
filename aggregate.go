package compchart

// checkAxis verifies a series covers the calendar's exact date axis. The
// generators are all driven by the same calendar, so a mismatch here is a
// defect, not a user error.
func checkAxis(cal *Calendar, s *Series) error {
	if s.Len() != cal.Len() {
		return defectf("series %q has %d points, calendar has %d samples", s.Label, s.Len(), cal.Len())
	}
	i := 0
	for want := range cal.Samples() {
		if got, _ := s.At(i); got != want {
			return defectf("series %q date[%d] = %s, calendar sample is %s", s.Label, i, got, want)
		}
		i++
	}
	return nil
}

// aggregate sums the component series per date into a total series. All
// components must share the calendar's axis.
func aggregate(cal *Calendar, label string, components ...*Series) (*Series, error) {
	for _, s := range components {
		if err := checkAxis(cal, s); err != nil {
			return nil, err
		}
	}
	total := cal.series(label)
	for i := 0; i < cal.Len(); i++ {
		var sum float64
		for _, s := range components {
			_, v := s.At(i)
			sum += v
		}
		total.push(sum)
	}
	return total, nil
}
