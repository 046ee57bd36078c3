package turingvm

import "testing"

func TestTapeReadPastEndIsBlank(t *testing.T) {
	tp := newTape(nil)
	if got := tp.read(); got != blankSymbol {
		t.Fatalf("read() on fresh tape = %v, want blank", got)
	}
}

func TestTapeLeftBoundaryStops(t *testing.T) {
	tp := newTape(nil)
	if tp.left(1) {
		t.Fatalf("left(1) at head 0 should report STOP")
	}
	if tp.headPosition() != 0 {
		t.Fatalf("head after a failed left() = %d, want clamped to 0", tp.headPosition())
	}
}

func TestTapeRightNeverFails(t *testing.T) {
	tp := newTape(nil)
	tp.right(1000)
	if tp.headPosition() != 1000 {
		t.Fatalf("head after right(1000) = %d", tp.headPosition())
	}
	if tp.length() != minTapeCapacity {
		t.Fatalf("right() alone should never grow the backing array, got length %d", tp.length())
	}
}

func TestTapeBlankWritePastEndDoesNotGrow(t *testing.T) {
	tp := newTape(nil)
	tp.right(100)
	tp.write(blankSymbol)
	if tp.length() != minTapeCapacity {
		t.Fatalf("writing blank past the end grew the tape to %d", tp.length())
	}
}

func TestTapeNonBlankWriteGrows(t *testing.T) {
	tp := newTape(nil)
	tp.right(100)
	tp.write(Symbol(0x41))
	if tp.length() < 101 {
		t.Fatalf("tape length after write at 100 = %d, want >= 101", tp.length())
	}
	if got := tp.read(); got != Symbol(0x41) {
		t.Fatalf("read() after write = %v", got)
	}
}

func TestTapeSymbolsIsDefensiveCopy(t *testing.T) {
	tp := newTape([]Symbol{1, 2, 3})
	out := tp.symbols()
	out[0] = 99
	if tp.cells[0] == 99 {
		t.Fatalf("symbols() leaked the backing array")
	}
}
