// Package spamscan provides automaton-driven spam detection for
// streams of tagged records.
//
// The engine is in package 'core'.  Package 'keywords' compiles
// keyword lists to automata, and package 'records' compiles record
// grammars.  The command-line tool is in `cmd/spamscan`.
package spamscan
