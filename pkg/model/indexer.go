package model

// slotIndexer interface is design to give a unique index to a (day, period) pair and vice versa
type slotIndexer interface {
	// Returns a unique index to a (day, period) pair
	Index(day, period int) int
	// Returns the (day, period) pair from a unique index
	Attributes(index int) (day, period int)
}

func newSlotIndexer(days, periods int) slotIndexer {
	return &slotIndexerImplementation{
		days:    days,
		periods: periods,
	}
}

type slotIndexerImplementation struct {
	days    int
	periods int
}

func (indexer *slotIndexerImplementation) Index(day, period int) int {
	return period + indexer.periods*day
}

func (indexer *slotIndexerImplementation) Attributes(index int) (day, period int) {
	period = index % indexer.periods
	day = index / indexer.periods
	return day, period
}
