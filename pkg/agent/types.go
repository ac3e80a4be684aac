package agent

// PreferenceContext is one known buyer preference handed to an agent as
// model context.
type PreferenceContext struct {
	Category    string
	Value       string
	Confidence  string
	Source      string
	IsConfirmed bool
}

// ChatTurn is one prior message of the guided conversation, in turn order.
type ChatTurn struct {
	Role    string
	Content string
}
