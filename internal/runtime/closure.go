package runtime

import "github.com/aretw0/automata/pkg/domain"

// EpsilonClosure returns the smallest superset of seed closed under epsilon
// moves. It uses an explicit stack so deep epsilon chains cannot exhaust the
// goroutine stack. The result does not depend on exploration order.
func EpsilonClosure(seed domain.StateSet, moves func(state string) []string) domain.StateSet {
	visited := make(map[string]bool, len(seed))
	stack := make([]string, 0, len(seed))
	for _, s := range seed {
		if !visited[s] {
			visited[s] = true
			stack = append(stack, s)
		}
	}

	for len(stack) > 0 {
		state := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, next := range moves(state) {
			if visited[next] {
				continue
			}
			visited[next] = true
			stack = append(stack, next)
		}
	}

	closed := make([]string, 0, len(visited))
	for s := range visited {
		closed = append(closed, s)
	}
	return domain.NewStateSet(closed...)
}
