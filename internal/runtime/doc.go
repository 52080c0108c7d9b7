// Package runtime implements the simulation engines: epsilon-closure and
// nondeterministic stepping for NFAs, the DFA stepper and the single-tape Turing
// machine. Engines compute; recording and navigating steps is the job of
// pkg/history and the automata.Session that owns both.
package runtime
