/*
Package session persists simulations and serializes access to them.

Manager guards each session ID with a refcounted in-process mutex and, when
configured, a ports.DistributedLocker so several replicas can share one store.
Service sits on top and exposes the operations stateless shells need: create a
session for a registered automaton, step it, run it to its verdict, read its
trace. Every call resumes the session from its snapshot and saves it back.
*/
package session
