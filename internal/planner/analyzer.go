// Package planner содержит алгоритм построения дневного расписания.
package planner

import "time"

// DefaultPeakHour используется при отсутствии истории выполнений
const DefaultPeakHour = 10

// PeakHour возвращает час суток с наибольшим числом выполнений привычек.
// При равенстве побеждает час, достигший максимума первым по порядку обхода.
func PeakHour(completions []time.Time) int {
	if len(completions) == 0 {
		return DefaultPeakHour
	}

	var counts [24]int
	peak := DefaultPeakHour
	best := 0

	for _, ts := range completions {
		hour := ts.Hour()
		counts[hour]++
		if counts[hour] > best {
			best = counts[hour]
			peak = hour
		}
	}

	return peak
}
