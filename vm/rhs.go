package turingvm

// rhsOutcome is the result of running one arm's right-hand side: either it
// reached a terminal and rewrote address/stateArgs/symbolArgs, or it was
// cut short by a left-boundary STOP.
type rhsOutcome int

const (
	rhsTerminated rhsOutcome = iota
	rhsStopped
)

// runRHS executes RHS opcodes starting at c until a terminal (FINAL_STATE
// or FINAL_ARG) rewrites vm.address and the argument registers, or a
// LEFT/LEFT_N underruns the tape. It assumes the scratch stacks are empty
// on entry (the invariant the move evaluator is responsible for).
func (vm *VM) runRHS(c *cursor) rhsOutcome {
	for {
		switch op := Opcode(c.fetchU8()); op {
		case OpLeft:
			if !vm.tape.left(1) {
				vm.scratch.destroyAll()
				return rhsStopped
			}
		case OpRight:
			vm.tape.right(1)
		case OpLeftN:
			n := int(c.fetchU8())
			if !vm.tape.left(n) {
				vm.scratch.destroyAll()
				return rhsStopped
			}
		case OpRightN:
			vm.tape.right(int(c.fetchU8()))

		case OpWriteArg:
			vm.tape.write(vm.symbolArgAt(int(c.fetchU8())))
		case OpWriteVal:
			vm.tape.write(Symbol(c.fetchU16()))
		case OpWriteBound:
			vm.tape.write(vm.bound)

		case OpSymbolArg:
			vm.scratch.pushSymbol(vm.symbolArgAt(int(c.fetchU8())))
		case OpSymbolVal:
			vm.scratch.pushSymbol(Symbol(c.fetchU16()))
		case OpSymbolBound:
			vm.scratch.pushSymbol(vm.bound)

		case OpTakeArg:
			vm.scratch.pushState(vm.takeStateArg(int(c.fetchU8())))
		case OpCloneArg:
			vm.scratch.pushState(vm.stateArgAt(int(c.fetchU8())).Clone())
		case OpFreeArg:
			vm.freeStateArg(int(c.fetchU8()))

		case OpMakeState:
			k := int(c.fetchU8())
			addr := c.fetchU32()
			children := vm.scratch.takeStatesPrefix(k)
			symbols := vm.scratch.drainSymbols()
			vm.scratch.pushState(NewStateValue(addr, children, symbols))

		case OpFinalState:
			addr := c.fetchU32()
			vm.finalState(addr)
			return rhsTerminated

		case OpFinalArg:
			i := int(c.fetchU8())
			vm.finalArg(i)
			return rhsTerminated

		default:
			faultf(ErrUnknownOpcode)
		}
	}
}

// finalState implements FINAL_STATE: the current state's address becomes
// addr, and the entire scratch envelope becomes the new argument
// registers.
func (vm *VM) finalState(addr uint32) {
	vm.address = addr
	vm.stateArgs = vm.scratch.drainStates()
	vm.symbolArgs = vm.scratch.drainSymbols()
}

// finalArg implements FINAL_ARG: state argument i is consumed as the
// successor state. Its envelope (address, children, symbols) becomes the
// VM's new address and argument registers directly, with no clone — the
// outer StateValue wrapper is discarded without being Destroyed, since its
// fields were moved out rather than copied.
func (vm *VM) finalArg(i int) {
	target := vm.takeStateArg(i)

	vm.address = target.Address
	vm.stateArgs = target.Children
	vm.symbolArgs = target.Symbols

	// liveStateValues must still drop by one: the wrapper StateValue
	// itself is gone even though its contents lived on.
	liveStateValues.Add(-1)
}
