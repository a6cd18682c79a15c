package pgn

// Date is a calendar date as resolved from a PGN date tag (spec.md §4.1.1).
type Date struct {
	Year, Month, Day int
}

// TimeOfDay is a time of day with an explicit UTC offset in minutes
// (spec.md §4.1.1 "Time resolution").
type TimeOfDay struct {
	Hour, Minute, Second int
	OffsetMinutes        int
}

// GameRecord is one parsed game row (spec.md §3).
type GameRecord struct {
	Event, Site, White, Black, Result     *string
	WhiteTitle, BlackTitle                *string
	ECO, Opening, Termination             *string
	TimeControl, Source                   *string
	WhiteElo, BlackElo                    *uint32
	UTCDate                               *Date
	UTCTime                               *TimeOfDay
	Movetext                              string
	ParseError                            *string
}
