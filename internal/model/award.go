package model

// Award is one entry of a game's monthly reward calendar. The calendar
// is ordered, index 0 being day 1; its length follows the month (28-31).
type Award struct {
	Icon  string
	Name  string
	Count int
}

// CardData is the display-ready summary rendered onto a check-in card.
// Tomorrow is nil exactly when EndOfMonth is true. Built per run,
// discarded after rendering.
type CardData struct {
	Today        Award
	Tomorrow     *Award
	EndOfMonth   bool
	DayNumber    int
	RefreshLabel string
}
