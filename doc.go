/*
Package automata is a stepwise simulator for small finite-state machines: a
nondeterministic finite automaton with epsilon moves (NFA), a deterministic
finite automaton (DFA) and a single-tape Turing machine.

It is built as a teaching tool. Every step is recorded, so a shell (CLI, HTTP
server, MCP agent) can walk forward and backward through a run and show the
configuration, the transitions used and the final verdict.

# Concept

A Session owns one compiled automaton and one step history. The shell supplies
input, a string plus a cyclic-mode flag, and consumes results. Each request
returns a tagged domain.Result:

  - continue: a step was applied or replayed
  - accepted / rejected: the run of a finite automaton ended
  - halted: the Turing machine stopped (final state or no transition)
  - boundary: nothing before/after the cursor, or no run started

Moving backward never recomputes anything: the session republishes the
configuration stored in the history.

# Usage

	def, err := schema.LoadFile("examples/definitions/contains-one.yaml")
	if err != nil {
		log.Fatal(err)
	}

	sess, err := automata.New(def)
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	if _, err := sess.Start(ctx, "0001", false); err != nil {
		log.Fatal(err)
	}

	for {
		res, err := sess.Next(ctx)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(res.Config)
		if res.Terminal() || res.Outcome == domain.OutcomeBoundary {
			fmt.Println(res.Message())
			break
		}
	}

# Architecture

The module follows a hexagonal layout:

  - pkg/domain: pure types (configurations, step records, results)
  - pkg/schema: automaton definitions, decoding and validation
  - pkg/history: the step history controller
  - internal/runtime: the NFA, DFA and Turing engines
  - pkg/ports and pkg/adapters: session stores, definition loaders, HTTP and MCP
  - pkg/session: per-session locking and the persisted session service
*/
package automata
