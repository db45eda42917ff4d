// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/ureg/emulator"
	"github.com/ezrec/ureg/vm"
)

func main() {
	var verbose bool

	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() < 1 {
		log.Fatalf("usage: %v [-v] <program> [rN=value ...]", os.Args[0])
	}

	source := flag.Arg(0)
	inf, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
	defer inf.Close()

	asm := &vm.Assembler{Verbose: verbose}
	prog, err := asm.Parse(inf)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	emu := emulator.NewEmulator(prog)
	emu.Verbose = verbose
	emu.Console = &emulator.LineResumer{Input: os.Stdin}

	// Initial register state from the remaining arguments.
	for _, arg := range flag.Args()[1:] {
		reg, value, oerr := emulator.ParseOverride(arg)
		if oerr != nil {
			log.Fatalf("%v: %v", arg, oerr)
		}
		emu.Registers[reg] = value
	}

	err = emu.Run()
	if err != nil {
		log.Fatal(err)
	}
}
