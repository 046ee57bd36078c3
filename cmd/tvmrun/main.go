// Command tvmrun loads a turingvm bytecode file and runs it to completion,
// printing the final tape. With no -program flag it assembles and runs the
// built-in alternating-bit demonstration program instead, the same one
// exercised by vm.TestAlternatingBitMachine.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"turingvm/internal/tbc"
	tvm "turingvm/vm"
)

var (
	programPath = flag.String("program", "", "path to a raw bytecode file (omit to run the built-in demo)")
	tapeFlag    = flag.String("tape", "", "comma-separated initial tape symbols, decimal or 0x-prefixed hex")
	maxMoves    = flag.Uint64("max-moves", 1_000_000, "move budget passed to Run")
	debug       = flag.Bool("debug", false, "enable per-move debug logging")
)

func init() {
	flag.Parse()
}

func main() {
	log := logrus.New()
	if *debug {
		log.SetLevel(logrus.DebugLevel)
	}

	bytecode, err := loadBytecode(*programPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tape, err := parseTape(*tapeFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	machine, err := tvm.New(bytecode, tape, tvm.WithLogger(log))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer machine.Close()

	cause, err := machine.Run(*maxMoves)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Printf("completion: %s\n", cause)
	fmt.Printf("moves: %d\n", machine.MoveCount())
	fmt.Printf("head: %d\n", machine.HeadPosition())
	fmt.Printf("tape: %s\n", formatTape(machine.Tape()))
}

func loadBytecode(path string) ([]byte, error) {
	if path == "" {
		return assembleDemo()
	}
	return os.ReadFile(path)
}

// assembleDemo builds the alternating-bit machine: two mutually-recursive
// states writing '0' and '1' in turn.
func assembleDemo() ([]byte, error) {
	b := tbc.New().Header("writeZero")
	b.Label("writeZero").Other().WriteVal(0x30).Right().FinalState("writeOne")
	b.Label("writeOne").Other().WriteVal(0x31).Right().FinalState("writeZero")
	return b.Finish()
}

func parseTape(spec string) ([]tvm.Symbol, error) {
	if spec == "" {
		return nil, nil
	}

	parts := strings.Split(spec, ",")
	out := make([]tvm.Symbol, len(parts))
	for i, part := range parts {
		part = strings.TrimSpace(part)
		v, err := strconv.ParseUint(part, 0, 16)
		if err != nil {
			return nil, fmt.Errorf("tvmrun: invalid tape symbol %q: %w", part, err)
		}
		out[i] = tvm.Symbol(v)
	}
	return out, nil
}

func formatTape(tape []tvm.Symbol) string {
	raw := make([]byte, len(tape))
	for i, s := range tape {
		raw[i] = byte(s)
	}
	return hex.EncodeToString(raw)
}
