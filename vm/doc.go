// Package vm implements the register machine and assembler for the μREG
// teaching interpreter.
//
// The machine consists of eight 64-bit general-purpose registers (r0-r7),
// a zero flag written by arithmetic, logic, and compare instructions, and
// a program counter. Execution is a deterministic fetch-decode-execute
// loop; reaching the end of the instruction sequence halts the machine,
// and the debug instruction suspends it until an external resume.
//
// The assembler provides the μREG assembly language: one instruction or
// label definition per line, `//` `#` `;` comments, equates, and
// compile-time $() expression evaluation. Labels resolve to instruction
// indexes before execution begins.
package vm
