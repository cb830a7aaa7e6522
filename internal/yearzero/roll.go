package yearzero

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/louisbranch/zerohour.games/internal/core/dice"
)

// ErrInvalidSize indicates a pool contained a size outside the tier set.
var ErrInvalidSize = errors.New("pool size must be a valid die tier")

// ErrAlreadyEvaluated indicates an operation that requires an unevaluated roll.
var ErrAlreadyEvaluated = errors.New("roll is already evaluated")

// ErrNotEvaluated indicates an operation that requires an evaluated roll.
var ErrNotEvaluated = errors.New("roll is not evaluated")

// ErrNilRng indicates a random source is required but missing.
var ErrNilRng = errors.New("random source is required")

// Pool describes the composition of a roll before any dice exist: base dice
// by tier plus the special ammo and hit-location slots. An empty pool is
// legal and evaluates to an automatic failure with zero rolled dice.
type Pool struct {
	Base     map[Size]int
	Ammo     int
	Location bool
}

// Empty reports whether the pool contributes no dice at all.
func (p Pool) Empty() bool {
	return p.Total() == 0
}

// Total returns the number of dice the pool contributes, counting the
// hit-location die as one.
func (p Pool) Total() int {
	total := 0
	for _, count := range p.Base {
		if count > 0 {
			total += count
		}
	}
	if p.Ammo > 0 {
		total += p.Ammo
	}
	if p.Location {
		total++
	}
	return total
}

// DieKind distinguishes the three slot families in a pool.
type DieKind int

const (
	KindBase DieKind = iota
	KindAmmo
	KindLocation
)

// Die is a single die in a roll. Value is zero until the roll is evaluated.
// Pushed marks dice that were re-rolled by a push.
type Die struct {
	Kind   DieKind
	Size   Size
	Value  int
	Pushed bool
}

// successes returns the success count contributed by the die's current face.
func (d Die) successes() int {
	if d.Kind == KindLocation {
		return 0
	}
	switch {
	case d.Value >= 10:
		return 2
	case d.Value >= 6:
		return 1
	default:
		return 0
	}
}

// pushEligible reports whether a push may re-roll the die. Successes stay
// banked and 1s are locked in (they carry mishap weight on ammo dice).
func (d Die) pushEligible() bool {
	if d.Kind == KindLocation {
		return false
	}
	return d.Value > 1 && d.Value < 6
}

// Roll is one check's dice with their evaluation state. Rolls are values:
// Modify, Eval, and Push return a new Roll and never mutate the receiver.
type Roll struct {
	Name      string
	MaxPush   int
	PushCount int
	Evaluated bool
	Dice      []Die
}

// NewRoll constructs an unevaluated roll from a pool composition.
//
// Base dice are flattened largest tier first so the same pool always yields
// the same die order. Ammo and hit-location dice are d6s appended after the
// base dice. Returns ErrInvalidSize when the pool maps an unknown tier.
func NewRoll(name string, pool Pool, maxPush int) (Roll, error) {
	for size := range pool.Base {
		if !size.Valid() || size == SizeNone {
			return Roll{}, ErrInvalidSize
		}
	}

	var ds []Die
	for _, size := range sizesDescending {
		for i := 0; i < pool.Base[size]; i++ {
			ds = append(ds, Die{Kind: KindBase, Size: size})
		}
	}
	for i := 0; i < pool.Ammo; i++ {
		ds = append(ds, Die{Kind: KindAmmo, Size: SizeD6})
	}
	if pool.Location {
		ds = append(ds, Die{Kind: KindLocation, Size: SizeD6})
	}

	return Roll{
		Name:    name,
		MaxPush: maxPush,
		Dice:    ds,
	}, nil
}

// Duplicate returns an independent deep copy of the roll.
func (r Roll) Duplicate() Roll {
	out := r
	out.Dice = make([]Die, len(r.Dice))
	copy(out.Dice, r.Dice)
	return out
}

// Modify returns a new roll with the base dice stepped up or down by delta.
//
// Each positive point steps the smallest base die up one tier; once every
// base die is a d12 further points add fresh d6s. Each negative point steps
// the largest base die down one tier; a d6 stepped down is removed from the
// roll. Ammo and hit-location dice are never modified. Modifying an
// evaluated roll returns ErrAlreadyEvaluated because tier composition is
// fixed once faces exist.
func (r Roll) Modify(delta int) (Roll, error) {
	if r.Evaluated {
		return Roll{}, ErrAlreadyEvaluated
	}

	out := r.Duplicate()
	for step := 0; step < delta; step++ {
		idx := smallestBase(out.Dice)
		if idx < 0 || out.Dice[idx].Size == SizeD12 {
			out.Dice = insertBase(out.Dice, Die{Kind: KindBase, Size: SizeD6})
			continue
		}
		out.Dice[idx].Size = out.Dice[idx].Size.StepUp()
	}
	for step := 0; step > delta; step-- {
		idx := largestBase(out.Dice)
		if idx < 0 {
			break
		}
		next := out.Dice[idx].Size.StepDown()
		if next == SizeNone {
			out.Dice = append(out.Dice[:idx], out.Dice[idx+1:]...)
			continue
		}
		out.Dice[idx].Size = next
	}
	sortBase(out.Dice)
	return out, nil
}

// Eval returns a new roll with concrete face values for every die.
func (r Roll) Eval(rng *rand.Rand) (Roll, error) {
	if r.Evaluated {
		return Roll{}, ErrAlreadyEvaluated
	}
	if rng == nil {
		return Roll{}, ErrNilRng
	}

	out := r.Duplicate()
	for i := range out.Dice {
		out.Dice[i].Value = dice.RollDie(rng, out.Dice[i].Size.Sides())
	}
	out.Evaluated = true
	return out, nil
}

// Pushable reports whether a push would re-roll anything: the roll must be
// evaluated, have push budget left, and hold at least one eligible die.
func (r Roll) Pushable() bool {
	if !r.Evaluated || r.PushCount >= r.MaxPush {
		return false
	}
	for _, d := range r.Dice {
		if d.pushEligible() {
			return true
		}
	}
	return false
}

// Push returns a new roll with every eligible die re-rolled and the push
// count incremented. Pushing a roll that is not pushable returns an
// unchanged duplicate; callers treat that as a legal no-op. Pushing an
// unevaluated roll returns ErrNotEvaluated.
func (r Roll) Push(rng *rand.Rand) (Roll, error) {
	if !r.Evaluated {
		return Roll{}, ErrNotEvaluated
	}
	if !r.Pushable() {
		return r.Duplicate(), nil
	}
	if rng == nil {
		return Roll{}, ErrNilRng
	}

	out := r.Duplicate()
	for i := range out.Dice {
		if !out.Dice[i].pushEligible() {
			continue
		}
		out.Dice[i].Value = dice.RollDie(rng, out.Dice[i].Size.Sides())
		out.Dice[i].Pushed = true
	}
	out.PushCount++
	return out, nil
}

// Successes returns the total success count of an evaluated roll. An
// unevaluated roll reports zero.
func (r Roll) Successes() int {
	if !r.Evaluated {
		return 0
	}
	total := 0
	for _, d := range r.Dice {
		total += d.successes()
	}
	return total
}

// IsSuccess reports whether the evaluated roll scored at least one success.
// An empty or unevaluated roll is a failure.
func (r Roll) IsSuccess() bool {
	return r.Successes() > 0
}

// HitLocation returns the body region from the hit-location die, if the
// roll carries one and has been evaluated.
func (r Roll) HitLocation() (Location, bool) {
	if !r.Evaluated {
		return LocationUnspecified, false
	}
	for _, d := range r.Dice {
		if d.Kind == KindLocation {
			return locationForFace(d.Value), true
		}
	}
	return LocationUnspecified, false
}

// Formula returns a human-readable pool description, largest base dice
// first, e.g. "1d10 + 2d6 + 3d6 (ammo) + 1d6 (location)". An empty roll
// reports "no dice".
func (r Roll) Formula() string {
	counts := make(map[Size]int)
	ammo := 0
	location := false
	for _, d := range r.Dice {
		switch d.Kind {
		case KindAmmo:
			ammo++
		case KindLocation:
			location = true
		default:
			counts[d.Size]++
		}
	}

	var parts []string
	for _, size := range sizesDescending {
		if counts[size] > 0 {
			parts = append(parts, fmt.Sprintf("%d%s", counts[size], size.Label()))
		}
	}
	if ammo > 0 {
		parts = append(parts, fmt.Sprintf("%dd6 (ammo)", ammo))
	}
	if location {
		parts = append(parts, "1d6 (location)")
	}
	if len(parts) == 0 {
		return "no dice"
	}
	return strings.Join(parts, " + ")
}

// smallestBase returns the index of the smallest base die, or -1.
func smallestBase(ds []Die) int {
	idx := -1
	for i, d := range ds {
		if d.Kind != KindBase {
			continue
		}
		if idx < 0 || d.Size < ds[idx].Size {
			idx = i
		}
	}
	return idx
}

// largestBase returns the index of the largest base die, or -1.
func largestBase(ds []Die) int {
	idx := -1
	for i, d := range ds {
		if d.Kind != KindBase {
			continue
		}
		if idx < 0 || d.Size > ds[idx].Size {
			idx = i
		}
	}
	return idx
}

// insertBase appends a base die while keeping ammo and location dice last.
func insertBase(ds []Die, d Die) []Die {
	insertAt := len(ds)
	for i, existing := range ds {
		if existing.Kind != KindBase {
			insertAt = i
			break
		}
	}
	out := append(ds[:insertAt:insertAt], d)
	return append(out, ds[insertAt:]...)
}

// sortBase restores the largest-first ordering of base dice after modifiers
// reshuffle tiers, leaving ammo and location dice in place at the tail.
func sortBase(ds []Die) {
	end := len(ds)
	for i, d := range ds {
		if d.Kind != KindBase {
			end = i
			break
		}
	}
	sort.SliceStable(ds[:end], func(i, j int) bool {
		return ds[i].Size > ds[j].Size
	})
}
