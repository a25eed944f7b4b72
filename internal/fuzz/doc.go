// Package fuzztests houses Go fuzz harnesses that exercise the
// pipeline (source -> lexer -> tree -> validation) on arbitrary bytes.
// Its goal is to smoke test robustness: no panics, no hangs, and the
// structural tree invariants on every input the fuzzer invents.
package fuzztests
