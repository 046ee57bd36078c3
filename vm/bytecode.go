package turingvm

/*
	Bytecode format (little endian throughout):

		header: u16 reserved, u32 entry address

	followed by a sequence of state-arm regions, each a chain of arm
	records:

		arm header: one of
			COMPARE_ARG u8 i, u16 skip
			COMPARE_VAL u16 v, u16 skip
			OTHER
			HALT            (ends the chain, no RHS follows)

		arm RHS (present for everything but HALT): a sequence of RHS
		opcodes terminated by exactly one of
			FINAL_STATE u32 addr
			FINAL_ARG   u8 i

	For the two COMPARE forms, the skip field equals the byte length of the
	arm's RHS block, so a failed comparison can skip straight to the next
	arm header without decoding the RHS it's skipping over.

	Match and RHS opcodes share one contiguous enum, grouped by concern
	with room left between groups for future additions, rather than two
	separate numeric blocks.
*/

// Opcode is a single bytecode instruction tag. The first byte of every arm
// header and every RHS instruction is an Opcode.
type Opcode byte

const (
	// Arm-match opcodes (move evaluator).
	OpCompareArg Opcode = 0x00
	OpCompareVal Opcode = 0x01
	OpOther      Opcode = 0x02
	OpHalt       Opcode = 0x03

	// Tape motion (RHS evaluator).
	OpLeft   Opcode = 0x10
	OpRight  Opcode = 0x11
	OpLeftN  Opcode = 0x12
	OpRightN Opcode = 0x13

	// Tape writes.
	OpWriteArg   Opcode = 0x18
	OpWriteVal   Opcode = 0x19
	OpWriteBound Opcode = 0x1A

	// Symbol scratch pushes.
	OpSymbolArg   Opcode = 0x20
	OpSymbolVal   Opcode = 0x21
	OpSymbolBound Opcode = 0x22

	// State argument register opcodes.
	OpTakeArg  Opcode = 0x28
	OpCloneArg Opcode = 0x29
	OpFreeArg  Opcode = 0x2A

	// State construction and final transitions.
	OpMakeState  Opcode = 0x30
	OpFinalState Opcode = 0x31
	OpFinalArg   Opcode = 0x32
)

var opcodeNames = map[Opcode]string{
	OpCompareArg:  "COMPARE_ARG",
	OpCompareVal:  "COMPARE_VAL",
	OpOther:       "OTHER",
	OpHalt:        "HALT",
	OpLeft:        "LEFT",
	OpRight:       "RIGHT",
	OpLeftN:       "LEFT_N",
	OpRightN:      "RIGHT_N",
	OpWriteArg:    "WRITE_ARG",
	OpWriteVal:    "WRITE_VAL",
	OpWriteBound:  "WRITE_BOUND",
	OpSymbolArg:   "SYMBOL_ARG",
	OpSymbolVal:   "SYMBOL_VAL",
	OpSymbolBound: "SYMBOL_BOUND",
	OpTakeArg:     "TAKE_ARG",
	OpCloneArg:    "CLONE_ARG",
	OpFreeArg:     "FREE_ARG",
	OpMakeState:   "MAKE_STATE",
	OpFinalState:  "FINAL_STATE",
	OpFinalArg:    "FINAL_ARG",
}

// String renders an Opcode for logging and panic messages. Unknown values
// print as "?unknown-opcode?" rather than panicking, since this is itself
// called from fault-reporting paths.
func (op Opcode) String() string {
	if name, ok := opcodeNames[op]; ok {
		return name
	}
	return "?unknown-opcode?"
}
