package timeline

import "sort"

// Turn is a single speaker-attributed time range.
type Turn struct {
	Speaker string
	Start   float64
	End     float64
}

// Duration returns the turn length in seconds.
func (t Turn) Duration() float64 {
	return t.End - t.Start
}

// Annotation is an ordered collection of speaker turns covering "who speaks
// when" for one recording. Overlapping turns are preserved as-is; no merging
// or deduplication is performed.
type Annotation struct {
	turns []Turn
}

// New returns an Annotation over the given turns, sorted by start time with
// speaker label as tiebreaker. Turns with End <= Start are dropped.
func New(turns []Turn) *Annotation {
	kept := make([]Turn, 0, len(turns))
	for _, turn := range turns {
		if turn.End <= turn.Start {
			continue
		}
		kept = append(kept, turn)
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Start != kept[j].Start {
			return kept[i].Start < kept[j].Start
		}
		return kept[i].Speaker < kept[j].Speaker
	})
	return &Annotation{turns: kept}
}

// Turns returns a copy of the annotation's turns in order.
func (a *Annotation) Turns() []Turn {
	if a == nil {
		return nil
	}
	cp := make([]Turn, len(a.turns))
	copy(cp, a.turns)
	return cp
}

// Len returns the number of turns.
func (a *Annotation) Len() int {
	if a == nil {
		return 0
	}
	return len(a.turns)
}

// SpeechDuration sums the duration of every turn. Overlap is not merged, so
// overlapping source turns are double counted, matching how reference
// durations are reported downstream.
func (a *Annotation) SpeechDuration() float64 {
	if a == nil {
		return 0
	}
	var total float64
	for _, turn := range a.turns {
		total += turn.Duration()
	}
	return total
}

// Speakers returns the distinct speaker labels in sorted order.
func (a *Annotation) Speakers() []string {
	if a == nil {
		return nil
	}
	seen := make(map[string]struct{}, 4)
	for _, turn := range a.turns {
		seen[turn.Speaker] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// SpeakerCount returns the number of distinct speaker labels.
func (a *Annotation) SpeakerCount() int {
	if a == nil {
		return 0
	}
	seen := make(map[string]struct{}, 4)
	for _, turn := range a.turns {
		seen[turn.Speaker] = struct{}{}
	}
	return len(seen)
}
