/*
Package domain contains the core domain models of the automata simulator.

It defines the vocabulary shared by the engines, the step history and every
adapter: kinds of machine, symbols and head moves, canonical state sets,
configurations, step records and the tagged step result. This package is kept
pure and free of I/O, following the same hexagonal layout as the rest of the
module.

# Key Entities

  - StateSet: a sorted, deduplicated set of state identifiers (the NFA active-set).
  - Configuration: the observable snapshot of a machine after a step.
  - StepRecord: one entry of the append-only step history.
  - Result: the tagged outcome of a start/step request (continue, accepted,
    rejected, halted, boundary) with a reason.
  - Snapshot: the persistable form of a whole simulation session.
*/
package domain
