package turingvm

import "errors"

// Sentinel errors returned from New and Run. New returns ErrShortBytecode
// as is. Bytecode-bug conditions never propagate as Go panics across the
// package boundary; they are recovered and reported as ErrBytecodeFault
// wrapping one of these.
var (
	// ErrShortBytecode is returned when the buffer passed to New is too
	// short to hold the 2-byte reserved header and 4-byte entry address.
	ErrShortBytecode = errors.New("turingvm: bytecode buffer shorter than the 6-byte header")

	// ErrBytecodeFault wraps any precondition violation detected while
	// running a move: an unknown opcode, an out-of-range argument index, a
	// scratch-stack overflow, or a double-take/double-free of an argument
	// register. The bytecode is trusted by design; a
	// fault here means the compiler that produced it, or a hand-built
	// program under test, violated that trust.
	ErrBytecodeFault = errors.New("turingvm: bytecode precondition violated")

	// ErrUnknownOpcode is wrapped by ErrBytecodeFault when a move or RHS
	// dispatch encounters a byte that isn't a recognized opcode.
	ErrUnknownOpcode = errors.New("turingvm: unrecognized opcode")

	// ErrArgOutOfRange is wrapped by ErrBytecodeFault when an opcode
	// references a state or symbol argument register index outside the
	// bounds of the currently bound argument registers.
	ErrArgOutOfRange = errors.New("turingvm: argument register index out of range")

	// ErrArgConsumed is wrapped by ErrBytecodeFault when TAKE_ARG,
	// CLONE_ARG, or FREE_ARG targets a state argument register that has
	// already been taken or freed earlier in the same RHS.
	ErrArgConsumed = errors.New("turingvm: state argument already taken or freed")

	// ErrScratchOverflow is wrapped by ErrBytecodeFault when a push to the
	// state or symbol scratch stack would exceed its configured capacity.
	ErrScratchOverflow = errors.New("turingvm: scratch stack overflow")

	// ErrScratchNotDrained is wrapped by ErrBytecodeFault when a move
	// begins with a non-empty scratch stack, meaning an earlier RHS left
	// its envelope half-built instead of reaching a terminal.
	ErrScratchNotDrained = errors.New("turingvm: scratch stack not drained on entry to move")
)

// bytecodeFault is the panic payload used internally to unwind out of the
// move/RHS dispatch loops on a detected precondition violation. Run
// recovers it and turns it into a returned error; any other recovered
// panic (for example a runtime slice-bounds panic from trusted-bytecode
// code that turned out not to be trustworthy) is reported the same way, so
// no panic ever crosses the package boundary.
type bytecodeFault struct {
	err error
}

func (f bytecodeFault) Error() string { return f.err.Error() }

func faultf(err error) {
	panic(bytecodeFault{err: err})
}
