package dice

import "math/rand"

// RollDice rolls dice based on the provided request.
//
// RollDice is deterministic with respect to the Seed field on Request: the
// same seed and the same Dice slice (including order and values) always
// produce the same Result. Specs are processed in slice order and the Roll
// entries in Result.Rolls appear in the same order.
//
// At least one Spec must be provided, otherwise ErrMissingDice is returned.
// Each Spec must have Sides > 0 and Count > 0, otherwise ErrInvalidDiceSpec
// is returned.
func RollDice(request Request) (Result, error) {
	rng := rand.New(rand.NewSource(request.Seed))
	return RollWithRng(rng, request.Dice)
}

// RollWithRng rolls dice using a provided random source. This is the entry
// point for callers that thread one rng through several rolls, such as the
// push workflow re-rolling part of an evaluated pool.
func RollWithRng(rng *rand.Rand, specs []Spec) (Result, error) {
	if len(specs) == 0 {
		return Result{}, ErrMissingDice
	}

	rolls := make([]Roll, 0, len(specs))
	total := 0

	for _, spec := range specs {
		if spec.Sides <= 0 || spec.Count <= 0 {
			return Result{}, ErrInvalidDiceSpec
		}

		results := make([]int, spec.Count)
		rollTotal := 0
		for i := 0; i < spec.Count; i++ {
			value := RollDie(rng, spec.Sides)
			results[i] = value
			rollTotal += value
		}

		rolls = append(rolls, Roll{
			Sides:   spec.Sides,
			Results: results,
			Total:   rollTotal,
		})
		total += rollTotal
	}

	return Result{
		Rolls: rolls,
		Total: total,
	}, nil
}

// RollDie rolls a single die with the provided number of sides.
func RollDie(rng *rand.Rand, sides int) int {
	return rng.Intn(sides) + 1
}
