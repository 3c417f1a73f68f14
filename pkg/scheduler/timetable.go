package scheduler

import "slices"

// Placement locates one session: the slot index it starts at, its room and its teacher.
// A negative Start marks a session that has not been placed.
type Placement struct {
	Start   int
	Room    int
	Teacher int
}

var unplaced = Placement{Start: -1, Room: -1, Teacher: -1}

// Timetable is an immutable candidate: one placement per session of the problem. Operators build
// new timetables, they never edit an existing one, so a Timetable may be shared across goroutines.
type Timetable struct {
	placements []Placement
}

func newTimetable(placements []Placement) *Timetable {
	return &Timetable{placements: slices.Clone(placements)}
}

func (timetable *Timetable) Len() int { return len(timetable.placements) }

func (timetable *Timetable) Placement(session int) Placement {
	return timetable.placements[session]
}

// Placements returns a copy of every placement, indexed by session
func (timetable *Timetable) Placements() []Placement {
	return slices.Clone(timetable.placements)
}
