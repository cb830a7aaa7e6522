package check

import "fmt"

// Modifier and push-budget bounds. Out-of-range values are clamped before
// pool construction; clamping is silent and deterministic, never an error.
const (
	ModifierMin = -100
	ModifierMax = 100
	MaxPushMin  = 0
	MaxPushMax  = 100
)

// Visibility selects who may see a published result.
type Visibility int

const (
	VisibilityPublic Visibility = iota
	VisibilityPrivate
	VisibilityBlind
)

func (v Visibility) String() string {
	switch v {
	case VisibilityPublic:
		return "public"
	case VisibilityPrivate:
		return "private"
	case VisibilityBlind:
		return "blind"
	default:
		return fmt.Sprintf("Visibility(%d)", int(v))
	}
}

// ParseVisibility converts a stored visibility label back to its mode.
func ParseVisibility(value string) (Visibility, error) {
	switch value {
	case "public":
		return VisibilityPublic, nil
	case "private":
		return VisibilityPrivate, nil
	case "blind":
		return VisibilityBlind, nil
	default:
		return VisibilityPublic, fmt.Errorf("unknown visibility %q", value)
	}
}

// Params is the full input set for one task check. A Params value lives for
// a single invocation: defaults are merged in, the option-resolution step
// may replace overridable fields, and the value is discarded once the pool
// is built.
type Params struct {
	Title      string
	Attribute  int
	Skill      int
	RateOfFire int
	Location   bool
	Modifier   int
	MaxPush    int
	Visibility Visibility
	Publish    bool

	// AskForOptions requests a deviation from the configured default for
	// showing the options dialog; SkipDialog suppresses the dialog outright.
	AskForOptions bool
	SkipDialog    bool
}

// DefaultParams returns the built-in parameter set for a titled check: one
// push allowed, public visibility, published, no special slots.
func DefaultParams(title string) Params {
	return Params{
		Title:      title,
		MaxPush:    1,
		Visibility: VisibilityPublic,
		Publish:    true,
	}
}

// clamped returns a copy with every bounded field forced into range.
func (p Params) clamped() Params {
	p.Attribute = clampInt(p.Attribute, RatingMin, RatingMax)
	p.Skill = clampInt(p.Skill, RatingMin, RatingMax)
	p.Modifier = clampInt(p.Modifier, ModifierMin, ModifierMax)
	p.MaxPush = clampInt(p.MaxPush, MaxPushMin, MaxPushMax)
	return p
}

// Overrides is the finalized field set an options dialog may return. Every
// listed field replaces its Params counterpart wholesale. The dialog does
// not expose the title or the ratings, so those fields are absent.
type Overrides struct {
	Cancelled  bool
	RateOfFire int
	Modifier   int
	Location   bool
	MaxPush    int
	Visibility Visibility
}

// OverridesFrom seeds a dialog's override set from the current parameters,
// so an unedited dialog round-trips the caller's values.
func OverridesFrom(p Params) Overrides {
	return Overrides{
		RateOfFire: p.RateOfFire,
		Modifier:   p.Modifier,
		Location:   p.Location,
		MaxPush:    p.MaxPush,
		Visibility: p.Visibility,
	}
}

// applyOverrides merges dialog output into the parameter set field by
// field, then re-clamps: dialog input is untrusted.
func applyOverrides(p Params, o Overrides) Params {
	p.RateOfFire = o.RateOfFire
	p.Modifier = o.Modifier
	p.Location = o.Location
	p.MaxPush = o.MaxPush
	p.Visibility = o.Visibility
	return p.clamped()
}

// shouldAskOptions gates the interactive step. The dialog is a deviation
// from the ambient default, not an unconditional stage: it fires only when
// the caller's preference differs from the configured default and the
// dialog is not suppressed.
func shouldAskOptions(p Params, defaultShow bool) bool {
	return !p.SkipDialog && p.AskForOptions != defaultShow
}

func clampInt(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
