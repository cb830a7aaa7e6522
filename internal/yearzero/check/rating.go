package check

import "github.com/louisbranch/zerohour.games/internal/yearzero"

// Rating bounds. Ratings outside the range are clamped, never rejected.
const (
	RatingMin = 0
	RatingMax = 12
)

// RatingDie maps a numeric rating to its die tier.
//
// The table is fixed and non-linear: ratings 0-5 contribute no die, 6-7 a
// d6, 8-9 a d8, 10-11 a d10, and 12 a d12. Callers clamp out-of-range
// ratings before mapping; RatingDie itself is total over [0,12].
func RatingDie(rating int) yearzero.Size {
	switch {
	case rating >= 12:
		return yearzero.SizeD12
	case rating >= 10:
		return yearzero.SizeD10
	case rating >= 8:
		return yearzero.SizeD8
	case rating >= 6:
		return yearzero.SizeD6
	default:
		return yearzero.SizeNone
	}
}

// BuildPool converts ratings and the special slots into a pool composition.
//
// When attribute and skill map to the same tier and the attribute actually
// contributes a die (rating >= 6), the two sources merge into two dice of
// that single tier. Otherwise each source contributes one die of its own
// tier if it qualifies. A pool where nothing qualifies is legal: the check
// evaluates as an automatic failure with zero rolled dice.
func BuildPool(attribute, skill, ammo int, location bool) yearzero.Pool {
	pool := yearzero.Pool{Base: make(map[yearzero.Size]int)}

	attributeDie := RatingDie(attribute)
	skillDie := RatingDie(skill)

	// The merge branch is structurally unreachable for two non-contributing
	// ratings: SizeNone never satisfies attribute >= 6.
	if attributeDie == skillDie && attribute >= 6 {
		pool.Base[attributeDie] = 2
	} else {
		if attribute >= 6 {
			pool.Base[attributeDie]++
		}
		if skill >= 6 {
			pool.Base[skillDie]++
		}
	}

	if ammo > 0 {
		pool.Ammo = ammo
	}
	if location {
		pool.Location = true
	}
	return pool
}
