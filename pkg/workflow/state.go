package workflow

import "fmt"

// Status is the lifecycle stage of a buyer profiling session.
// Sessions only ever move forward: parsing -> parsed -> chat_active -> complete.
type Status string

const (
	StatusParsing    Status = "parsing"
	StatusParsed     Status = "parsed"
	StatusChatActive Status = "chat_active"
	StatusComplete   Status = "complete"
)

var statusRank = map[Status]int{
	StatusParsing:    0,
	StatusParsed:     1,
	StatusChatActive: 2,
	StatusComplete:   3,
}

// ParseStatus validates a raw status string coming from storage or a client.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if _, ok := statusRank[s]; !ok {
		return "", fmt.Errorf("unknown session status: %q", raw)
	}
	return s, nil
}

func (s Status) String() string {
	return string(s)
}

// Rank returns the position of the status in the lifecycle, -1 if unknown.
func (s Status) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// CanAdvance reports whether a transition from s to target is legal.
// Re-entering complete is allowed so profile regeneration stays idempotent;
// every other same-state or backward move is rejected.
func (s Status) CanAdvance(target Status) bool {
	from, ok := statusRank[s]
	if !ok {
		return false
	}
	to, ok := statusRank[target]
	if !ok {
		return false
	}
	if target == StatusComplete {
		return true
	}
	return to > from
}

// NeedsChatActivation reports whether the first chat message should flip the
// session into chat_active. Sessions already chatting or complete keep their
// status.
func (s Status) NeedsChatActivation() bool {
	return s == StatusParsing || s == StatusParsed
}
