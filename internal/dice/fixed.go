package dice

// Fixed is a Roller that replays a scripted sequence of results, each taken
// modulo n. Once the script is exhausted it keeps returning 0.
type Fixed struct {
	rolls []int
	next  int
}

// NewFixed returns a Fixed roller replaying rolls.
func NewFixed(rolls ...int) *Fixed {
	return &Fixed{rolls: rolls}
}

func (f *Fixed) IntN(n int) int {
	if f.next >= len(f.rolls) {
		return 0
	}
	v := f.rolls[f.next]
	f.next++
	if v < 0 {
		v = -v
	}
	return v % n
}
