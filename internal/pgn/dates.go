package pgn

// lastDayOfMonth returns the last calendar day of month in year,
// leap-year aware for February (spec.md §4.1.1 "Date resolution").
func lastDayOfMonth(year, month int) int {
	switch month {
	case 1, 3, 5, 7, 8, 10, 12:
		return 31
	case 4, 6, 9, 11:
		return 30
	case 2:
		if (year%4 == 0 && year%100 != 0) || year%400 == 0 {
			return 29
		}
		return 28
	default:
		return 31
	}
}
