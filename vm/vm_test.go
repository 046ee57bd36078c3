package turingvm_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"turingvm/internal/tbc"
	tvm "turingvm/vm"
)

func TestAlternatingBitMachine(t *testing.T) {
	b := tbc.New().Header("writeZero")

	b.Label("writeZero").Other().WriteVal(0x30).Right().FinalState("writeOne")
	b.Label("writeOne").Other().WriteVal(0x31).Right().FinalState("writeZero")

	bytecode, err := b.Finish()
	require.NoError(t, err)

	machine, err := tvm.New(bytecode, nil)
	require.NoError(t, err)
	defer machine.Close()

	cause, err := machine.Run(10)
	require.NoError(t, err)
	assert.Equal(t, tvm.BudgetExhausted, cause)
	assert.EqualValues(t, 10, machine.MoveCount())
	assert.Equal(t, 9, machine.HeadPosition())

	want := []tvm.Symbol{0x30, 0x31, 0x30, 0x31, 0x30, 0x31, 0x30, 0x31, 0x30, 0x31}
	assert.Equal(t, want, machine.Tape()[:10])
}

func TestLeftBoundaryHalt(t *testing.T) {
	b := tbc.New().Header("start")
	b.Label("start").Other().Left().FinalState("start")

	bytecode, err := b.Finish()
	require.NoError(t, err)

	machine, err := tvm.New(bytecode, nil)
	require.NoError(t, err)
	defer machine.Close()

	cause, err := machine.Run(1_000_000)
	require.NoError(t, err)
	assert.Equal(t, tvm.LeftBoundary, cause)
	assert.EqualValues(t, 0, machine.MoveCount())
	assert.Equal(t, 0, machine.HeadPosition())

	for i, sym := range machine.Tape() {
		assert.Equalf(t, tvm.Symbol(0), sym, "cell %d should be untouched", i)
	}
}

func TestTapeGrowthOnWrite(t *testing.T) {
	b := tbc.New().Header("start")
	b.Label("start").Other().RightN(100).WriteVal(0x41).FinalState("halt")
	b.Label("halt").Halt()

	bytecode, err := b.Finish()
	require.NoError(t, err)

	machine, err := tvm.New(bytecode, nil)
	require.NoError(t, err)
	defer machine.Close()

	cause, err := machine.Run(10)
	require.NoError(t, err)
	assert.Equal(t, tvm.HaltExecuted, cause)
	assert.GreaterOrEqual(t, machine.TapeLength(), 101)
	assert.Equal(t, 100, machine.HeadPosition())
	assert.EqualValues(t, 1, machine.MoveCount())

	tape := machine.Tape()
	assert.Equal(t, tvm.Symbol(0x41), tape[100])
	for i, sym := range tape {
		if i == 100 {
			continue
		}
		assert.Equalf(t, tvm.Symbol(0), sym, "cell %d should remain blank", i)
	}
}

func TestHigherOrderStateViaMakeStateAndFinalArg(t *testing.T) {
	b := tbc.New().Header("start")

	b.Label("start").Other().
		SymbolVal(0x61).
		MakeState(0, "target").
		FinalState("trampoline")

	b.Label("trampoline").Other().FinalArg(0)

	b.Label("target")
	matched := b.CompareArg(0)
	b.WriteArg(0).FinalState("halt")
	b.EndArm(matched)
	b.Halt()

	b.Label("halt").Halt()

	bytecode, err := b.Finish()
	require.NoError(t, err)

	machine, err := tvm.New(bytecode, []tvm.Symbol{0x61})
	require.NoError(t, err)
	defer machine.Close()

	cause, err := machine.Run(10)
	require.NoError(t, err)
	assert.Equal(t, tvm.HaltExecuted, cause)
	assert.EqualValues(t, 3, machine.MoveCount())
	assert.Equal(t, 0, machine.HeadPosition())
	assert.Equal(t, tvm.Symbol(0x61), machine.Tape()[0])
}

func TestBlankWriteIsNoOp(t *testing.T) {
	b := tbc.New().Header("start")
	b.Label("start").Other().RightN(100).WriteVal(0).FinalState("halt")
	b.Label("halt").Halt()

	bytecode, err := b.Finish()
	require.NoError(t, err)

	machine, err := tvm.New(bytecode, nil)
	require.NoError(t, err)
	defer machine.Close()

	_, err = machine.Run(10)
	require.NoError(t, err)
	assert.Equal(t, 64, machine.TapeLength())
	assert.Equal(t, 100, machine.HeadPosition())
}

func TestCompareValArmsMatchAndSkip(t *testing.T) {
	b := tbc.New().Header("entry")

	b.Label("entry")
	zeroArm := b.CompareVal(0x30) // '0' — misses against the initial tape
	b.WriteVal(0x5A).FinalState("halt")
	b.EndArm(zeroArm)
	oneArm := b.CompareVal(0x31) // '1' — matches
	b.WriteVal(0x59).FinalState("halt")
	b.EndArm(oneArm)
	b.Halt()

	b.Label("halt").Halt()

	bytecode, err := b.Finish()
	require.NoError(t, err)

	machine, err := tvm.New(bytecode, []tvm.Symbol{0x31})
	require.NoError(t, err)
	defer machine.Close()

	cause, err := machine.Run(10)
	require.NoError(t, err)
	assert.Equal(t, tvm.HaltExecuted, cause)
	assert.EqualValues(t, 1, machine.MoveCount())
	assert.Equal(t, 0, machine.HeadPosition())
	assert.Equal(t, tvm.Symbol(0x59), machine.Tape()[0])
}

func TestOtherArmCapturesBoundSymbol(t *testing.T) {
	b := tbc.New().Header("entry")

	// entry: bind the symbol under the head ('Q'), echo it via WRITE_BOUND,
	// then carry it as a state-arg symbol via SYMBOL_BOUND/MAKE_STATE so a
	// later state can COMPARE_ARG against exactly what OTHER captured.
	b.Label("entry").Other().
		WriteBound().
		SymbolBound().
		MakeState(0, "target").
		FinalState("trampoline")

	b.Label("trampoline").Other().FinalArg(0)

	b.Label("target")
	matched := b.CompareArg(0)
	b.WriteVal(0x5A).FinalState("halt") // on match, overwrite 'Q' with 'Z'
	b.EndArm(matched)
	b.Halt()

	b.Label("halt").Halt()

	bytecode, err := b.Finish()
	require.NoError(t, err)

	machine, err := tvm.New(bytecode, []tvm.Symbol{0x51}) // 'Q'
	require.NoError(t, err)
	defer machine.Close()

	cause, err := machine.Run(10)
	require.NoError(t, err)
	assert.Equal(t, tvm.HaltExecuted, cause)
	assert.EqualValues(t, 3, machine.MoveCount())
	assert.Equal(t, 0, machine.HeadPosition())
	assert.Equal(t, tvm.Symbol(0x5A), machine.Tape()[0])
}

func TestBudgetExhaustion(t *testing.T) {
	b := tbc.New().Header("writeZero")
	b.Label("writeZero").Other().WriteVal(0x30).Right().FinalState("writeOne")
	b.Label("writeOne").Other().WriteVal(0x31).Right().FinalState("writeZero")

	bytecode, err := b.Finish()
	require.NoError(t, err)

	machine, err := tvm.New(bytecode, nil)
	require.NoError(t, err)
	defer machine.Close()

	cause, err := machine.Run(0)
	require.NoError(t, err)
	assert.Equal(t, tvm.BudgetExhausted, cause)
	assert.EqualValues(t, 0, machine.MoveCount())
	assert.Equal(t, 0, machine.HeadPosition())
	for _, sym := range machine.Tape() {
		assert.Equal(t, tvm.Symbol(0), sym)
	}
}

func TestScratchOverflowIsReportedNotFatal(t *testing.T) {
	b := tbc.New().Header("start")
	arm := b.Label("start").Other()
	for i := 0; i < 5; i++ {
		arm = arm.SymbolVal(uint16(i))
	}
	arm.FinalState("start")

	bytecode, err := b.Finish()
	require.NoError(t, err)

	machine, err := tvm.New(bytecode, nil, tvm.WithScratchCapacity(64, 2))
	require.NoError(t, err)
	defer machine.Close()

	cause, err := machine.Run(10)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tvm.ErrBytecodeFault))
	assert.Equal(t, tvm.HaltExecuted, cause) // zero value: Run never reaches a normal return

	// The VM is still safely inspectable after the fault.
	assert.Equal(t, 0, machine.HeadPosition())
}

func TestLeakFreedomAcrossCloneTakeAndFreeArg(t *testing.T) {
	base := tvm.LiveStateValues()

	b := tbc.New().Header("start")

	b.Label("start").Other().
		SymbolVal(0x61).
		MakeState(0, "leaf").
		FinalState("holder")

	b.Label("holder").Other().
		CloneArg(0).
		TakeArg(0).
		MakeState(2, "wrapper").
		FinalState("freeWrapper")

	b.Label("freeWrapper").Other().
		FreeArg(0).
		FinalState("halt")

	b.Label("leaf").Halt()
	b.Label("wrapper").Halt()
	b.Label("halt").Halt()

	bytecode, err := b.Finish()
	require.NoError(t, err)

	machine, err := tvm.New(bytecode, nil)
	require.NoError(t, err)

	cause, err := machine.Run(10)
	require.NoError(t, err)
	assert.Equal(t, tvm.HaltExecuted, cause)

	machine.Close()

	assert.Equal(t, base, tvm.LiveStateValues())
}
