package turingvm

import (
	"encoding/binary"
	"fmt"

	"github.com/sirupsen/logrus"
)

// CompletionCause reports why Run returned.
type CompletionCause int

const (
	// HaltExecuted means a HALT arm was reached.
	HaltExecuted CompletionCause = iota
	// LeftBoundary means a LEFT/LEFT_N move underran position 0.
	LeftBoundary
	// BudgetExhausted means move_count reached maxMoves without a halt or
	// a left-boundary underrun.
	BudgetExhausted
)

func (c CompletionCause) String() string {
	switch c {
	case HaltExecuted:
		return "halt-executed"
	case LeftBoundary:
		return "left-boundary"
	case BudgetExhausted:
		return "budget-exhausted"
	default:
		return "unknown-completion-cause"
	}
}

const headerBytes = 6 // 2-byte reserved + 4-byte entry address

// VM is a single, non-reentrant Turing-machine bytecode interpreter
// instance. It owns its tape, argument registers, and scratch stacks;
// nothing is shared process-wide. A VM is not
// safe for concurrent use.
type VM struct {
	bytecode []byte
	tape     *tape
	scratch  *scratch

	address    uint32
	stateArgs  []*StateValue
	symbolArgs []Symbol
	bound      Symbol

	moveCount    uint64
	finalAddress uint32
	closed       bool

	log *logrus.Logger
}

// Option configures a VM at construction time.
type Option func(*vmConfig)

type vmConfig struct {
	stateScratchCap  int
	symbolScratchCap int
	log              *logrus.Logger
}

// WithScratchCapacity overrides the default scratch-stack capacities
// (1024 states, 256 symbols). A bytecode stream that needs to push more
// than the configured capacity before reaching a terminal triggers
// ErrScratchOverflow.
func WithScratchCapacity(stateCap, symbolCap int) Option {
	return func(c *vmConfig) {
		c.stateScratchCap = stateCap
		c.symbolScratchCap = symbolCap
	}
}

// WithLogger attaches a structured logger. Debug-level fields are emitted
// once per move (move number, state address, matched arm kind, bound
// symbol) when the logger's level allows it; by default no logger is
// attached and logging is skipped entirely.
func WithLogger(log *logrus.Logger) Option {
	return func(c *vmConfig) {
		c.log = log
	}
}

// New parses the 6-byte bytecode header (2 bytes reserved, 4-byte
// little-endian entry address) and constructs a VM ready to Run against
// initialTape. The entry state is assumed to take no parameters, per
// the entry state always starts with state_count = symbol_count = 0.
func New(bytecode []byte, initialTape []Symbol, opts ...Option) (*VM, error) {
	if len(bytecode) < headerBytes {
		return nil, ErrShortBytecode
	}

	cfg := vmConfig{
		stateScratchCap:  defaultStateScratchCapacity,
		symbolScratchCap: defaultSymbolScratchCapacity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	entry := binary.LittleEndian.Uint32(bytecode[2:6])

	return &VM{
		bytecode:     bytecode,
		tape:         newTape(initialTape),
		scratch:      newScratch(cfg.stateScratchCap, cfg.symbolScratchCap),
		address:      entry,
		stateArgs:    nil,
		symbolArgs:   nil,
		finalAddress: entry,
		log:          cfg.log,
	}, nil
}

// Run executes moves until a HALT arm is reached, a LEFT/LEFT_N move
// underruns the tape, or maxMoves have already run — whichever comes
// first. Neither a left-boundary underrun nor the HALT move itself
// increments move_count; only a move that completes normally and continues
// does.
//
// Run never lets a panic escape: any bytecode-bug fault raised while
// dispatching a move is recovered here and reported as a wrapped
// ErrBytecodeFault.
func (vm *VM) Run(maxMoves uint64) (cause CompletionCause, err error) {
	defer func() {
		if r := recover(); r != nil {
			if vm.log != nil {
				vm.log.WithField("recovered", r).Error("turingvm: bytecode fault")
			}
			if bf, ok := r.(bytecodeFault); ok {
				err = fmt.Errorf("%w: %w", ErrBytecodeFault, bf.err)
			} else {
				err = fmt.Errorf("%w: %v", ErrBytecodeFault, r)
			}
		}
	}()

	for vm.moveCount < maxMoves {
		result := vm.runMove()

		if vm.log != nil && vm.log.IsLevelEnabled(logrus.DebugLevel) {
			vm.log.WithFields(logrus.Fields{
				"move":   vm.moveCount,
				"addr":   vm.address,
				"bound":  vm.bound,
				"result": result,
			}).Debug("turingvm: move complete")
		}

		switch result {
		case moveContinued:
			vm.moveCount++
		case moveHalted:
			vm.finalAddress = vm.address
			return HaltExecuted, nil
		case moveLeftBoundary:
			vm.finalAddress = vm.address
			return LeftBoundary, nil
		}
	}

	vm.finalAddress = vm.address
	return BudgetExhausted, nil
}

// FinalAddress returns the state address current as of the last move Run
// executed (or the entry address, if Run has not been called).
func (vm *VM) FinalAddress() uint32 { return vm.finalAddress }

// Tape returns a defensive copy of the final tape contents.
func (vm *VM) Tape() []Symbol { return vm.tape.symbols() }

// TapeLength returns the length of the tape's backing storage. It is a
// storage detail, not a "content length" — trailing blanks within it are
// indistinguishable from cells past the end.
func (vm *VM) TapeLength() int { return vm.tape.length() }

// HeadPosition returns the tape head's final position.
func (vm *VM) HeadPosition() int { return vm.tape.headPosition() }

// MoveCount returns the number of moves executed so far.
func (vm *VM) MoveCount() uint64 { return vm.moveCount }

// Close destroys every live state argument register and releases the
// tape. It is idempotent: calling it more than once, or calling it before
// Run, is safe.
func (vm *VM) Close() {
	if vm.closed {
		return
	}
	for _, s := range vm.stateArgs {
		s.Destroy()
	}
	vm.stateArgs = nil
	vm.symbolArgs = nil
	vm.tape = nil
	vm.closed = true
}

func (vm *VM) symbolArgAt(i int) Symbol {
	if i < 0 || i >= len(vm.symbolArgs) {
		faultf(ErrArgOutOfRange)
	}
	return vm.symbolArgs[i]
}

func (vm *VM) stateArgAt(i int) *StateValue {
	if i < 0 || i >= len(vm.stateArgs) {
		faultf(ErrArgOutOfRange)
	}
	v := vm.stateArgs[i]
	if v == nil {
		faultf(ErrArgConsumed)
	}
	return v
}

// takeStateArg transfers ownership of state argument i out of the register,
// tombstoning the slot so a later read detects the double-take/double-free
// bytecode bug instead of silently handing out a stale value.
func (vm *VM) takeStateArg(i int) *StateValue {
	v := vm.stateArgAt(i)
	vm.stateArgs[i] = nil
	return v
}

// freeStateArg destroys state argument i in place and tombstones the slot.
func (vm *VM) freeStateArg(i int) {
	v := vm.stateArgAt(i)
	v.Destroy()
	vm.stateArgs[i] = nil
}
