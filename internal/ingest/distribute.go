package ingest

import "github.com/CodeBellator/Agent-Management-System/internal/roster"

// Distribute splits records across agents using balanced round-robin by
// contiguous slicing: base = len(records)/len(agents) per agent, with the
// first len(records)%len(agents) agents receiving one extra. Slices are
// consumed in input order, so the buckets partition the record sequence
// exactly. Agents beyond the record count receive empty buckets.
//
// The caller guarantees a non-empty roster; this is a pure computation.
func Distribute(records []Record, agents []*roster.Agent) []Distribution {
	base := len(records) / len(agents)
	remainder := len(records) % len(agents)

	distributions := make([]Distribution, 0, len(agents))
	start := 0
	for i, agent := range agents {
		count := base
		if i < remainder {
			count++
		}

		items := records[start : start+count]
		distributions = append(distributions, Distribution{
			AgentID:    agent.ID,
			AgentName:  agent.Name,
			AgentEmail: agent.Email,
			Items:      items,
			ItemCount:  len(items),
		})
		start += count
	}

	return distributions
}
