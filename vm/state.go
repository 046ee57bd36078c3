package turingvm

import "sync/atomic"

// liveStateValues counts constructed-but-not-yet-destroyed StateValue
// envelopes across the whole process. It exists purely to make leak-freedom
// (every argument taken, cloned, or freed exactly once) independently
// testable even though Go's garbage collector would otherwise silently
// absorb a leaked reference.
var liveStateValues atomic.Int64

// LiveStateValues reports the number of StateValue envelopes that have been
// constructed and not yet Destroyed, across every VM in the process. Tests
// use it to assert leak-freedom: the count after Close should equal the
// count observed before the run began.
func LiveStateValues() int64 { return liveStateValues.Load() }

// StateValue is a partially applied state: an entry address plus bindings
// for its state and symbol parameters. It exclusively owns Children and
// Symbols — no StateValue is ever shared between two envelopes, so Clone
// always deep-copies and Destroy always recurses.
type StateValue struct {
	Address  uint32
	Children []*StateValue
	Symbols  []Symbol
}

// NewStateValue constructs a StateValue and records it as live. children
// and symbols are taken by reference, not copied; callers that built them
// from a scratch stack are expected to hand over ownership.
func NewStateValue(address uint32, children []*StateValue, symbols []Symbol) *StateValue {
	liveStateValues.Add(1)
	return &StateValue{Address: address, Children: children, Symbols: symbols}
}

// Clone recursively duplicates s: every child is itself cloned and the
// symbol list is copied, so the result shares no storage with s.
func (s *StateValue) Clone() *StateValue {
	if s == nil {
		return nil
	}

	children := make([]*StateValue, len(s.Children))
	for i, child := range s.Children {
		children[i] = child.Clone()
	}

	symbols := append([]Symbol(nil), s.Symbols...)

	return NewStateValue(s.Address, children, symbols)
}

// Destroy recursively destroys s's children, releases its symbol list, and
// removes s from the live count. Destroying a nil StateValue is a no-op,
// matching the convenience of freeing a nil pointer.
func (s *StateValue) Destroy() {
	if s == nil {
		return
	}
	for _, child := range s.Children {
		child.Destroy()
	}
	s.Children = nil
	s.Symbols = nil
	liveStateValues.Add(-1)
}

// Scratch stack capacities. These are generous defaults for a
// compiler-bounded bytecode stream; embedders that need more can raise them
// with WithScratchCapacity.
const (
	defaultStateScratchCapacity  = 1024
	defaultSymbolScratchCapacity = 256
)

// scratch holds the two push-only LIFO buffers used to assemble the
// children/symbols envelope of a newly constructed or finalized state.
// Both stacks are drained (reset to empty) by the instruction that
// consumes them: MAKE_STATE drains symbols and pops a prefix of states;
// FINAL_STATE drains both in full.
type scratch struct {
	states    []*StateValue
	symbols   []Symbol
	stateCap  int
	symbolCap int
}

func newScratch(stateCap, symbolCap int) *scratch {
	return &scratch{
		states:    make([]*StateValue, 0, stateCap),
		symbols:   make([]Symbol, 0, symbolCap),
		stateCap:  stateCap,
		symbolCap: symbolCap,
	}
}

func (s *scratch) pushState(v *StateValue) {
	if len(s.states) >= s.stateCap {
		faultf(ErrScratchOverflow)
	}
	s.states = append(s.states, v)
}

func (s *scratch) pushSymbol(v Symbol) {
	if len(s.symbols) >= s.symbolCap {
		faultf(ErrScratchOverflow)
	}
	s.symbols = append(s.symbols, v)
}

// takeStatesPrefix pops the top k entries off the state stack, returning
// them in push order (the order MAKE_STATE's children list requires).
func (s *scratch) takeStatesPrefix(k int) []*StateValue {
	if k < 0 || k > len(s.states) {
		faultf(ErrArgOutOfRange)
	}
	cut := len(s.states) - k
	out := append([]*StateValue(nil), s.states[cut:]...)
	s.states = s.states[:cut]
	return out
}

// drainSymbols removes and returns every pending symbol, in push order.
func (s *scratch) drainSymbols() []Symbol {
	out := append([]Symbol(nil), s.symbols...)
	s.symbols = s.symbols[:0]
	return out
}

// drainStates removes and returns every pending state, in push order.
func (s *scratch) drainStates() []*StateValue {
	out := append([]*StateValue(nil), s.states...)
	s.states = s.states[:0]
	return out
}

// empty reports whether both stacks are currently drained, the invariant
// the RHS evaluator must hold on entry to every move.
func (s *scratch) empty() bool {
	return len(s.states) == 0 && len(s.symbols) == 0
}

// destroyAll destroys every pending entry and drains both stacks. Used on a
// left-boundary STOP, where no terminal runs to consume the envelope being
// assembled.
func (s *scratch) destroyAll() {
	for _, v := range s.states {
		v.Destroy()
	}
	s.states = s.states[:0]
	s.symbols = s.symbols[:0]
}
