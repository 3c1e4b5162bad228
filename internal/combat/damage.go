package combat

var damageMessages = []struct {
	maxDamage int
	verb3rd   string // "{attacker}'s {move} {verb} {target}!"
}{
	{0, "misses"},
	{2, "barely scratches"},
	{4, "grazes"},
	{7, "hurts"},
	{11, "wounds"},
	{16, "mauls"},
	{22, "savages"},
	{30, "devastates"},
	{45, "obliterates"},
}

// DamageVerb returns the 3rd person verb for a damage amount.
func DamageVerb(damage int) string {
	for _, msg := range damageMessages {
		if damage <= msg.maxDamage {
			return msg.verb3rd
		}
	}
	return "does UNSPEAKABLE things to"
}
