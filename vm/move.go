package turingvm

// moveResult is the outcome of running exactly one move: matching one arm
// of the current state and running its RHS, or halting.
type moveResult int

const (
	moveContinued moveResult = iota
	moveHalted
	moveLeftBoundary
)

// runMove scans the arm chain starting at vm.address, matching the symbol
// currently under the tape head against each arm's pattern in turn. The
// first match enters the RHS evaluator; a miss on a COMPARE arm skips
// straight past its RHS block to the next arm header. A HALT arm ends the
// chain with no RHS at all.
func (vm *VM) runMove() moveResult {
	if !vm.scratch.empty() {
		faultf(ErrScratchNotDrained)
	}

	c := newCursor(vm.bytecode, vm.address)

	for {
		switch op := Opcode(c.fetchU8()); op {
		case OpCompareArg:
			i := int(c.fetchU8())
			skip := uint32(c.fetchU16())
			if vm.tape.read() == vm.symbolArgAt(i) {
				if vm.runRHS(c) == rhsStopped {
					return moveLeftBoundary
				}
				return moveContinued
			}
			c.skip(skip)

		case OpCompareVal:
			v := Symbol(c.fetchU16())
			skip := uint32(c.fetchU16())
			if vm.tape.read() == v {
				if vm.runRHS(c) == rhsStopped {
					return moveLeftBoundary
				}
				return moveContinued
			}
			c.skip(skip)

		case OpOther:
			vm.bound = vm.tape.read()
			if vm.runRHS(c) == rhsStopped {
				return moveLeftBoundary
			}
			return moveContinued

		case OpHalt:
			return moveHalted

		default:
			faultf(ErrUnknownOpcode)
		}
	}
}
