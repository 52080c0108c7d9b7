/*
Package ports defines the driven ports (interfaces) of the automata simulator.

These interfaces decouple sessions and shells from external implementations, so
the same service works with different storage backends and definition sources.

# Key Interfaces

  - DefinitionLoader: loads automaton definitions (builtins, YAML/JSON files, Markdown via Loam).
  - SessionStore: persists session snapshots (memory, file, Redis).
  - DistributedLocker: serializes access to one session across replicas.
*/
package ports
