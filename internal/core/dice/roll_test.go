package dice

import (
	"math/rand"
	"testing"
)

func TestRollDice(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		wantErr error
	}{
		{
			name: "single d6",
			request: Request{
				Dice: []Spec{{Sides: 6, Count: 1}},
				Seed: 42,
			},
		},
		{
			name: "mixed pool",
			request: Request{
				Dice: []Spec{
					{Sides: 10, Count: 1},
					{Sides: 6, Count: 3},
				},
				Seed: 42,
			},
		},
		{
			name: "no dice",
			request: Request{
				Dice: []Spec{},
				Seed: 42,
			},
			wantErr: ErrMissingDice,
		},
		{
			name: "invalid sides",
			request: Request{
				Dice: []Spec{{Sides: 0, Count: 1}},
				Seed: 42,
			},
			wantErr: ErrInvalidDiceSpec,
		},
		{
			name: "invalid count",
			request: Request{
				Dice: []Spec{{Sides: 6, Count: 0}},
				Seed: 42,
			},
			wantErr: ErrInvalidDiceSpec,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := RollDice(tt.request)
			if err != tt.wantErr {
				t.Errorf("RollDice() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr != nil {
				return
			}

			if len(result.Rolls) != len(tt.request.Dice) {
				t.Errorf("RollDice() got %d rolls, want %d", len(result.Rolls), len(tt.request.Dice))
			}

			total := 0
			for i, roll := range result.Rolls {
				if len(roll.Results) != tt.request.Dice[i].Count {
					t.Errorf("Roll[%d] got %d results, want %d", i, len(roll.Results), tt.request.Dice[i].Count)
				}
				if roll.Sides != tt.request.Dice[i].Sides {
					t.Errorf("Roll[%d] got %d sides, want %d", i, roll.Sides, tt.request.Dice[i].Sides)
				}
				rollTotal := 0
				for _, value := range roll.Results {
					if value < 1 || value > roll.Sides {
						t.Errorf("Roll[%d] value %d out of range 1..%d", i, value, roll.Sides)
					}
					rollTotal += value
				}
				if roll.Total != rollTotal {
					t.Errorf("Roll[%d] total %d, want %d", i, roll.Total, rollTotal)
				}
				total += rollTotal
			}
			if result.Total != total {
				t.Errorf("Result total %d, want %d", result.Total, total)
			}
		})
	}
}

func TestRollDiceDeterministic(t *testing.T) {
	request := Request{
		Dice: []Spec{{Sides: 12, Count: 2}, {Sides: 6, Count: 4}},
		Seed: 7,
	}

	first, err := RollDice(request)
	if err != nil {
		t.Fatalf("roll dice: %v", err)
	}
	second, err := RollDice(request)
	if err != nil {
		t.Fatalf("roll dice: %v", err)
	}

	if first.Total != second.Total {
		t.Fatalf("same seed produced different totals: %d vs %d", first.Total, second.Total)
	}
	for i := range first.Rolls {
		for j := range first.Rolls[i].Results {
			if first.Rolls[i].Results[j] != second.Rolls[i].Results[j] {
				t.Fatalf("same seed produced different results at %d/%d", i, j)
			}
		}
	}
}

func TestRollWithRngSharesSource(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	first, err := RollWithRng(rng, []Spec{{Sides: 6, Count: 2}})
	if err != nil {
		t.Fatalf("roll with rng: %v", err)
	}
	second, err := RollWithRng(rng, []Spec{{Sides: 6, Count: 2}})
	if err != nil {
		t.Fatalf("roll with rng: %v", err)
	}

	reference := rand.New(rand.NewSource(1))
	want := []int{
		RollDie(reference, 6), RollDie(reference, 6),
		RollDie(reference, 6), RollDie(reference, 6),
	}
	got := append(append([]int{}, first.Rolls[0].Results...), second.Rolls[0].Results...)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("shared rng sequence diverged at %d: got %d, want %d", i, got[i], want[i])
		}
	}
}
