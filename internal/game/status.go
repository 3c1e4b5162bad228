package game

// Status is the bitmask a command reports. NoAction and Success are mutually
// exclusive; Moved may be combined with Success.
type Status uint8

const (
	StatusNoAction Status = 0
	StatusSuccess  Status = 1 << 0
	StatusMoved    Status = 1 << 1
)

// Has reports whether every bit of flag is set.
func (s Status) Has(flag Status) bool {
	return s&flag == flag && flag != 0
}

// DeathReason is the terminal outcome of a turn. The zero value means the
// player survived.
type DeathReason string

const (
	DeathNone       DeathReason = ""
	DeathStarvation DeathReason = "starvation"
	DeathKilled     DeathReason = "killed"
)
