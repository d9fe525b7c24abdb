package game

import "fmt"

// KillMethod says how a kill happened.
type KillMethod int

const (
	KillStabbed KillMethod = iota
	KillSniped
)

func (m KillMethod) String() string {
	if m == KillSniped {
		return "SNIPED"
	}
	return "STABBED"
}

// KillEvent is one entry of the kill feed.
type KillEvent struct {
	Attacker string
	Victim   string
	Method   KillMethod
}

// String formats the event for a kill feed, e.g. "Sonic SNIPED Homer".
func (k KillEvent) String() string {
	return fmt.Sprintf("%s %s %s", k.Attacker, k.Method, k.Victim)
}

// KillRecorder receives kill events. The engine only ever appends.
type KillRecorder interface {
	RecordKill(KillEvent)
}

type discardKills struct{}

func (discardKills) RecordKill(KillEvent) {}

// KillFeed is a slice-backed KillRecorder.
type KillFeed struct {
	events []KillEvent
}

// RecordKill appends ev.
func (f *KillFeed) RecordKill(ev KillEvent) {
	f.events = append(f.events, ev)
}

// Events returns every recorded kill in order.
func (f *KillFeed) Events() []KillEvent { return f.events }

// Len returns the kill count.
func (f *KillFeed) Len() int { return len(f.events) }

// Last returns up to n most recent kills, oldest first.
func (f *KillFeed) Last(n int) []KillEvent {
	if n >= len(f.events) {
		return f.events
	}
	return f.events[len(f.events)-n:]
}

// CountBy returns how many kills used method m.
func (f *KillFeed) CountBy(m KillMethod) int {
	n := 0
	for _, ev := range f.events {
		if ev.Method == m {
			n++
		}
	}
	return n
}
