// Package pathfind implements grid A* over an abstract traversability
// capability. Node state is scoped to a single search; nothing carries over
// between calls.
package pathfind

import (
	"math"

	"github.com/zyedidia/generic/heap"

	"github.com/bugdem/strategyboard/internal/grid"
)

// Step costs: straight = 10, diagonal = 14 (≈10√2), kept integral so path
// costs compare exactly.
const (
	CostStraight = 10
	CostDiagonal = 14
)

// DefaultMaxIterations caps node expansions per search.
const DefaultMaxIterations = 1000

// Traversability is supplied by the caller for each search.
type Traversability interface {
	// CanOccupy is false if the cell is blocked by an occupant.
	CanOccupy(c grid.Cell) bool
	// CellExists is false if the cell lies outside the board.
	CellExists(c grid.Cell) bool
}

// Mode selects the neighbour set.
type Mode uint8

const (
	FourWay  Mode = iota // N, E, S, W
	EightWay             // FourWay plus diagonals
)

// String returns the string representation of a mode.
func (m Mode) String() string {
	switch m {
	case FourWay:
		return "four"
	case EightWay:
		return "eight"
	default:
		return "unknown"
	}
}

// ParseMode parses "four"/"4" or "eight"/"8".
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "four", "4":
		return FourWay, true
	case "eight", "8":
		return EightWay, true
	default:
		return FourWay, false
	}
}

// Neighbour offsets. Straight first, then diagonals; the order is part of
// the deterministic tie-breaking.
var (
	straightOffsets = [4]grid.Cell{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: 0}}
	diagonalOffsets = [4]grid.Cell{{X: 1, Y: 1}, {X: -1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}}
)

// Outcome classifies how a search ended.
type Outcome uint8

const (
	NotSearched     Outcome = iota // No search ran
	Found                          // Path reconstructed
	Unreachable                    // Open set drained without reaching the goal
	InvalidEndpoint                // Start or goal outside the board
	Exhausted                      // Iteration ceiling hit
)

// String returns the string representation of an outcome.
func (o Outcome) String() string {
	switch o {
	case NotSearched:
		return "not-searched"
	case Found:
		return "found"
	case Unreachable:
		return "unreachable"
	case InvalidEndpoint:
		return "invalid-endpoint"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Result describes one search.
type Result struct {
	Outcome  Outcome
	Path     []grid.Cell // Start..goal inclusive; nil unless Outcome == Found
	Cost     int         // Sum of step costs along Path
	Expanded int         // Nodes moved to the closed set
}

// Pathfinder runs A* searches with a fixed neighbour mode.
type Pathfinder struct {
	mode          Mode
	maxIterations int
}

// Option configures a Pathfinder.
type Option func(*Pathfinder)

// WithMaxIterations overrides DefaultMaxIterations. Values <= 0 are ignored.
func WithMaxIterations(n int) Option {
	return func(p *Pathfinder) {
		if n > 0 {
			p.maxIterations = n
		}
	}
}

// New creates a pathfinder for the given mode.
func New(mode Mode, opts ...Option) *Pathfinder {
	p := &Pathfinder{
		mode:          mode,
		maxIterations: DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Mode returns the neighbour mode.
func (p *Pathfinder) Mode() Mode {
	return p.mode
}

// MaxIterations returns the expansion ceiling.
func (p *Pathfinder) MaxIterations() int {
	return p.maxIterations
}

// FindPath returns the route from start to end inclusive, or nil when no
// route was found for any reason (unreachable, invalid endpoint, or the
// iteration ceiling). Use Search to tell those apart.
func (p *Pathfinder) FindPath(start, end grid.Cell, t Traversability) []grid.Cell {
	return p.Search(start, end, t).Path
}

// Search runs A* from start to end.
func (p *Pathfinder) Search(start, end grid.Cell, t Traversability) Result {
	if !t.CellExists(start) || !t.CellExists(end) {
		return Result{Outcome: InvalidEndpoint}
	}

	s := newSearch()
	si := s.node(start)
	s.nodes[si].g = 0
	s.nodes[si].h = Heuristic(start, end)
	s.nodes[si].f = s.nodes[si].h
	s.open(si)

	expanded := 0
	for s.frontier.Size() > 0 {
		e, _ := s.frontier.Pop()
		cur := e.idx
		if s.nodes[cur].closed || e.f != s.nodes[cur].f {
			continue // stale entry
		}

		if s.nodes[cur].cell == end {
			path := s.path(cur)
			return Result{Outcome: Found, Path: path, Cost: s.nodes[cur].g, Expanded: expanded}
		}

		s.nodes[cur].closed = true
		s.relax(cur, end, straightOffsets[:], CostStraight, t)
		if p.mode == EightWay {
			s.relax(cur, end, diagonalOffsets[:], CostDiagonal, t)
		}

		expanded++
		if expanded > p.maxIterations {
			return Result{Outcome: Exhausted, Expanded: expanded}
		}
	}

	return Result{Outcome: Unreachable, Expanded: expanded}
}

// Heuristic is the octile distance in step-cost units. It is exact on an
// open board in EightWay mode and a lower bound in FourWay mode.
func Heuristic(a, b grid.Cell) int {
	dx, dy := a.Delta(b)
	lo, hi := grid.Min(dx, dy), grid.Max(dx, dy)
	return CostDiagonal*lo + CostStraight*(hi-lo)
}

// PathCost sums step costs along a path of adjacent cells.
func PathCost(path []grid.Cell) int {
	cost := 0
	for i := 1; i < len(path); i++ {
		dx, dy := path[i].Delta(path[i-1])
		if dx != 0 && dy != 0 {
			cost += CostDiagonal
		} else {
			cost += CostStraight
		}
	}
	return cost
}

// node is the per-search state for one visited cell.
type node struct {
	cell    grid.Cell
	g, h, f int
	parent  int // Index into search.nodes, -1 for the start
	seq     int // Order of first entry into the open set
	opened  bool
	closed  bool
}

type openEntry struct {
	idx int
	f   int
	seq int
}

// search is the arena for one Search call.
type search struct {
	nodes    []node
	index    map[grid.Cell]int
	frontier *heap.Heap[openEntry]
	nextSeq  int
}

func newSearch() *search {
	return &search{
		index: make(map[grid.Cell]int),
		frontier: heap.New(func(a, b openEntry) bool {
			if a.f != b.f {
				return a.f < b.f
			}
			return a.seq < b.seq
		}),
	}
}

// node returns the arena index for c, creating the node on first use.
func (s *search) node(c grid.Cell) int {
	if i, ok := s.index[c]; ok {
		return i
	}
	s.nodes = append(s.nodes, node{cell: c, g: math.MaxInt, parent: -1})
	i := len(s.nodes) - 1
	s.index[c] = i
	return i
}

func (s *search) open(i int) {
	n := &s.nodes[i]
	if !n.opened {
		n.opened = true
		n.seq = s.nextSeq
		s.nextSeq++
	}
	s.frontier.Push(openEntry{idx: i, f: n.f, seq: n.seq})
}

func (s *search) relax(cur int, end grid.Cell, offsets []grid.Cell, step int, t Traversability) {
	for _, off := range offsets {
		c := s.nodes[cur].cell.AddCell(off)
		if !t.CellExists(c) {
			continue
		}
		ni := s.node(c)
		if s.nodes[ni].closed {
			continue
		}
		if !t.CanOccupy(c) {
			s.nodes[ni].closed = true
			continue
		}

		tentative := s.nodes[cur].g + step
		if tentative < s.nodes[ni].g {
			n := &s.nodes[ni]
			n.parent = cur
			n.g = tentative
			n.h = Heuristic(c, end)
			n.f = n.g + n.h
			s.open(ni)
		}
	}
}

func (s *search) path(end int) []grid.Cell {
	var path []grid.Cell
	for i := end; i != -1; i = s.nodes[i].parent {
		path = append(path, s.nodes[i].cell)
	}
	for l, r := 0, len(path)-1; l < r; l, r = l+1, r-1 {
		path[l], path[r] = path[r], path[l]
	}
	return path
}
