package hlheuristic

import "github.com/pkg/errors"

// ErrMatchingNotImplemented mirrors the "exact algorithm placeholder"
// sentinel idiom: a true general-graph maximum matching (Edmonds'
// blossom-shrinking algorithm) is not implemented here. See DESIGN.md
// for why the pragmatic augmenting-path fallback below is used instead.
var ErrMatchingNotImplemented = errors.New("hlheuristic: blossom matching not implemented")

// blossomMatch is a placeholder for exact general-graph maximum matching
// via blossom contraction. It never mutates its inputs and always
// returns the sentinel so callers fall back to augmentingMatch.
func blossomMatch(numVertices int, edges [][2]int) ([][2]int, error) {
	_ = numVertices
	_ = edges
	return nil, ErrMatchingNotImplemented
}

// augmentingMatch computes a maximal matching on the conflict graph
// (vertices = agents, edges = cardinal conflicts) via repeated
// augmenting-path search seeded from each unmatched vertex. This is
// exact for graphs without odd alternating cycles; on general graphs it
// can settle for a maximal (not provably maximum) matching, which is
// still a valid admissible lower bound since every matched edge demands
// at least one cost unit of resolution (spec.md §4.7, hlh_type=1).
func augmentingMatch(numVertices int, edges [][2]int) [][2]int {
	adj := make([][]int, numVertices)
	for _, e := range edges {
		adj[e[0]] = append(adj[e[0]], e[1])
		adj[e[1]] = append(adj[e[1]], e[0])
	}

	match := make([]int, numVertices)
	for i := range match {
		match[i] = -1
	}

	var tryAugment func(u int, visited []bool) bool
	tryAugment = func(u int, visited []bool) bool {
		for _, v := range adj[u] {
			if visited[v] {
				continue
			}
			visited[v] = true
			if match[v] == -1 || tryAugment(match[v], visited) {
				match[v] = u
				match[u] = v
				return true
			}
		}
		return false
	}

	for u := 0; u < numVertices; u++ {
		if match[u] != -1 {
			continue
		}
		visited := make([]bool, numVertices)
		tryAugment(u, visited)
	}

	var pairs [][2]int
	seen := make([]bool, numVertices)
	for u := 0; u < numVertices; u++ {
		if match[u] != -1 && !seen[u] && !seen[match[u]] {
			pairs = append(pairs, [2]int{u, match[u]})
			seen[u] = true
			seen[match[u]] = true
		}
	}
	return pairs
}
