package scheduler

import (
	"slices"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type repairOutcome struct {
	timetable  *Timetable
	unresolved []int // Sessions left at their last placement because no conflict-free one exists
	relocated  int
	rematched  int // Periods whose room clashes were settled by swapping rooms only
}

type localRepairer struct {
	problem *problem
	hardCap bool
	logger  *zap.Logger
}

func newLocalRepairer(p *problem, config RunConfig, logger *zap.Logger) *localRepairer {
	return &localRepairer{problem: p, hardCap: config.HardTeacherCap, logger: logger}
}

// Repair settles room clashes by re-matching rooms within each period first. The sessions still
// violating a hard constraint are then lifted off the board and put back most constrained first: each
// keeps its placement when it became conflict-free, else takes the first conflict-free (start, room)
// of the grid, else displaces the sessions in its way when they can all move elsewhere.
func (repairer *localRepairer) Repair(timetable *Timetable) repairOutcome {
	p := repairer.problem
	placements := slices.Clone(timetable.placements)
	board := boardOf(p, repairer.hardCap, placements)
	outcome := repairOutcome{}

	//** Re-match rooms of clashing periods
	for index := range p.grid.Size() {
		clash := lo.SomeBy(board.rooms, func(row []int) bool { return row[index] > 1 })
		if clash && repairer.rematchRooms(index, placements, board) {
			outcome.rematched++
		}
	}

	//** Lift the sessions still violating a hard constraint
	violating := []int{}
	for s := range placements {
		board.remove(s, placements[s])
		if board.cost(s, placements[s]) > 0 {
			violating = append(violating, s)
		}
		board.place(s, placements[s])
	}
	onBoard := lo.Times(len(placements), func(_ int) bool { return true })
	for _, s := range violating {
		board.remove(s, placements[s])
		onBoard[s] = false
	}

	//** Put them back, most constrained first
	for _, s := range repairer.constrainedFirst(violating) {
		if board.cost(s, placements[s]) == 0 {
			board.place(s, placements[s])
			onBoard[s] = true
			continue
		}
		if option, found := repairer.firstFree(s, placements[s].Teacher, board); found {
			placements[s] = option
			board.place(s, option)
			onBoard[s] = true
			outcome.relocated++
			continue
		}
		if moved, ok := repairer.displace(s, placements, board, onBoard); ok {
			outcome.relocated += moved
			continue
		}
		// Kept off the board so it does not block the sessions after it
		outcome.unresolved = append(outcome.unresolved, s)
	}
	slices.Sort(outcome.unresolved)

	repairer.logger.Debug("local repair finished",
		zap.Int("rematched", outcome.rematched),
		zap.Int("relocated", outcome.relocated),
		zap.Int("unresolved", len(outcome.unresolved)),
	)

	outcome.timetable = newTimetable(placements)
	return outcome
}

// constrainedFirst reorders sessions following the requirements' most-constrained-first order
func (repairer *localRepairer) constrainedFirst(sessions []int) []int {
	p := repairer.problem
	rank := make([]int, len(p.requirements))
	for position, index := range p.order {
		rank[index] = position
	}
	ordered := slices.Clone(sessions)
	slices.SortStableFunc(ordered, func(a, b int) int {
		return rank[p.sessions[a].requirement] - rank[p.sessions[b].requirement]
	})
	return ordered
}

func (repairer *localRepairer) firstFree(s, teacher int, board *board) (Placement, bool) {
	return lo.Find(board.options(s, teacher), func(option Placement) bool {
		return board.cost(s, option) == 0
	})
}

// displace tries every option of s in grid order, lifting the placed sessions sharing a teacher,
// section or room with it. The move is kept only when s becomes conflict-free and every lifted session
// finds a conflict-free placement of its own; otherwise the board is restored.
func (repairer *localRepairer) displace(s int, placements []Placement, board *board, onBoard []bool) (int, bool) {
	for _, option := range board.options(s, placements[s].Teacher) {
		blockers := repairer.blockers(s, option, placements, onBoard)
		if len(blockers) == 0 {
			continue
		}
		previous := lo.Map(blockers, func(other int, _ int) Placement { return placements[other] })
		for _, other := range blockers {
			board.remove(other, placements[other])
		}

		if board.cost(s, option) == 0 {
			board.place(s, option)
			moved := make([]int, 0, len(blockers))
			for _, other := range blockers {
				target, found := repairer.firstFree(other, placements[other].Teacher, board)
				if !found {
					break
				}
				placements[other] = target
				board.place(other, target)
				moved = append(moved, other)
			}
			if len(moved) == len(blockers) {
				placements[s] = option
				onBoard[s] = true
				return len(blockers) + 1, true
			}
			for _, other := range moved {
				board.remove(other, placements[other])
			}
			board.remove(s, option)
		}

		for i, other := range blockers {
			placements[other] = previous[i]
			board.place(other, previous[i])
		}
	}
	return 0, false
}

// blockers lists the sessions on the board that share a teacher, section or room with s placed at option
// in some period
func (repairer *localRepairer) blockers(s int, option Placement, placements []Placement, onBoard []bool) []int {
	p := repairer.problem
	r := p.requirementOf(s)
	periods := p.covers(option.Start, r.duration)
	return lo.Filter(lo.Range(len(placements)), func(other int, _ int) bool {
		if other == s || !onBoard[other] || placements[other].Start < 0 {
			return false
		}
		placement := placements[other]
		shares := placement.Teacher == option.Teacher || placement.Room == option.Room || p.requirementOf(other).section == r.section
		return shares && len(lo.Intersect(periods, p.covers(placement.Start, p.requirementOf(other).duration))) > 0
	})
}

// rematchRooms assigns distinct compatible rooms to every session covering the slot through a maximum
// bipartite matching. Nothing changes unless every such session gets a room.
func (repairer *localRepairer) rematchRooms(index int, placements []Placement, board *board) bool {
	p := repairer.problem
	covering := func(s int) []int { return p.covers(placements[s].Start, p.requirementOf(s).duration) }

	sessions := lo.Filter(lo.Range(len(placements)), func(s int, _ int) bool {
		return slices.Contains(covering(s), index)
	})
	rooms := lo.Range(len(p.roster.Rooms))

	// Whether the room is free for the session once the sessions being re-matched are disregarded
	neighbours := func(sessionAny any, roomAny any) (bool, error) {
		s, room := sessionAny.(int), roomAny.(int)
		if !slices.Contains(p.requirementOf(s).rooms, room) {
			return false, nil
		}
		for _, slot := range covering(s) {
			own := lo.CountBy(sessions, func(other int) bool {
				return placements[other].Room == room && slices.Contains(covering(other), slot)
			})
			if board.rooms[room][slot] > own {
				return false, nil
			}
		}
		return true, nil
	}

	sessionsAny, roomsAny := lo.Map(sessions, func(s int, _ int) any { return s }), lo.Map(rooms, func(room int, _ int) any { return room })

	graph, err := bipartitegraph.NewBipartiteGraph(sessionsAny, roomsAny, neighbours)
	if err != nil {
		return false
	}

	matching := graph.LargestMatching()

	// Check the matching is a maximum one
	if len(matching) < len(sessions) {
		return false
	}

	for _, s := range sessions {
		board.remove(s, placements[s])
	}
	for _, edge := range matching {
		sessionIndex, roomIndex := edge.Node1, edge.Node2-len(sessions)
		placements[sessions[sessionIndex]].Room = rooms[roomIndex]
	}
	for _, s := range sessions {
		board.place(s, placements[s])
	}
	return true
}
