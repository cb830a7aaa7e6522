package yearzero

import "fmt"

// Size identifies a die tier. The zero value means no die is contributed.
type Size int

const (
	SizeNone Size = 0
	SizeD6   Size = 6
	SizeD8   Size = 8
	SizeD10  Size = 10
	SizeD12  Size = 12
)

// Valid reports whether the size is a member of the closed tier set.
func (s Size) Valid() bool {
	switch s {
	case SizeNone, SizeD6, SizeD8, SizeD10, SizeD12:
		return true
	default:
		return false
	}
}

// Sides returns the face count for the size, or 0 for SizeNone.
func (s Size) Sides() int {
	if !s.Valid() {
		return 0
	}
	return int(s)
}

// Label returns the conventional die notation for the size.
func (s Size) Label() string {
	switch s {
	case SizeD6:
		return "d6"
	case SizeD8:
		return "d8"
	case SizeD10:
		return "d10"
	case SizeD12:
		return "d12"
	case SizeNone:
		return "none"
	default:
		return fmt.Sprintf("Size(%d)", int(s))
	}
}

// StepUp returns the next larger size. A d12 cannot grow further and is
// returned unchanged.
func (s Size) StepUp() Size {
	switch s {
	case SizeD6:
		return SizeD8
	case SizeD8:
		return SizeD10
	case SizeD10:
		return SizeD12
	default:
		return s
	}
}

// StepDown returns the next smaller size. A d6 steps down to SizeNone,
// which removes the die from a pool.
func (s Size) StepDown() Size {
	switch s {
	case SizeD12:
		return SizeD10
	case SizeD10:
		return SizeD8
	case SizeD8:
		return SizeD6
	case SizeD6:
		return SizeNone
	default:
		return s
	}
}

// sizesDescending is the fixed ordering used when flattening a pool into
// concrete dice, largest tier first.
var sizesDescending = []Size{SizeD12, SizeD10, SizeD8, SizeD6}

// Location is the body region indicated by an evaluated hit-location die.
type Location int

const (
	LocationUnspecified Location = iota
	LocationLegs
	LocationTorso
	LocationArms
	LocationHead
)

func (l Location) String() string {
	switch l {
	case LocationLegs:
		return "legs"
	case LocationTorso:
		return "torso"
	case LocationArms:
		return "arms"
	case LocationHead:
		return "head"
	default:
		return "unspecified"
	}
}

// locationForFace maps a d6 face to a body region.
func locationForFace(face int) Location {
	switch {
	case face == 1:
		return LocationLegs
	case face >= 2 && face <= 4:
		return LocationTorso
	case face == 5:
		return LocationArms
	case face == 6:
		return LocationHead
	default:
		return LocationUnspecified
	}
}
