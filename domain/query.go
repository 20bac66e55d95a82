package domain

// QuerySet holds the five instant-vector expressions issued per cycle, in the
// order they are folded into the catalog.
type QuerySet struct {
	JitsiParticipants string
	JitsiCPUUsage     string
	EdumeetProbe      string
	EdumeetCPUUsage   string
	EdumeetPeers      string
}

// DefaultQuerySet returns the expressions exported by the jitsi and edumeet
// exporters and the blackbox probe.
func DefaultQuerySet() QuerySet {
	return QuerySet{
		JitsiParticipants: "jitsi_participants",
		JitsiCPUUsage:     "jitsi_cpu_usage",
		EdumeetProbe:      `probe_success{software="MM"}`,
		EdumeetCPUUsage:   "edumeet_cpu_usage",
		EdumeetPeers:      "edumeet_peers",
	}
}
