package check

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/louisbranch/zerohour.games/internal/yearzero"
)

// Actor rating keys read by derived checks.
const (
	RatingCoolness     = "coolness"
	RatingUnitCohesion = "unitCohesion"
)

// OptionsPrompter is the interactive options dialog. It returns the
// finalized override set, or an override set with Cancelled true when the
// user backed out.
type OptionsPrompter interface {
	AskOptions(ctx context.Context, params Params) (Overrides, error)
}

// CoolnessChoice is the outcome of the small coolness-under-fire dialog.
type CoolnessChoice struct {
	Cancelled       bool
	UseUnitCohesion bool
}

// CoolnessPrompter runs the dedicated coolness-under-fire dialog.
type CoolnessPrompter interface {
	AskCoolness(ctx context.Context) (CoolnessChoice, error)
}

// Publisher delivers evaluated rolls to whatever records the chat history.
// Publish returns a message id usable for a later Delete when a push
// supersedes the published result.
type Publisher interface {
	Publish(ctx context.Context, roll yearzero.Roll, visibility Visibility) (string, error)
	Delete(ctx context.Context, messageID string) error
}

// Actor exposes named numeric ratings, read-only.
type Actor interface {
	Rating(name string) (int, bool)
}

var tracer = otel.Tracer("github.com/louisbranch/zerohour.games/internal/yearzero/check")

// Config assembles a Resolver's collaborators.
type Config struct {
	Prompter  OptionsPrompter
	Coolness  CoolnessPrompter
	Publisher Publisher
	Rng       *rand.Rand

	// ShowOptionsDefault is the persisted "always show options dialog"
	// preference, passed in explicitly so resolution stays a pure function
	// of its inputs.
	ShowOptionsDefault bool
}

// Resolver orchestrates task checks against its collaborators. Each check
// builds its own parameter set and roll values; resolvers hold no per-check
// state and a single resolver serves any number of sequential checks.
type Resolver struct {
	prompter    OptionsPrompter
	coolness    CoolnessPrompter
	publisher   Publisher
	rng         *rand.Rand
	defaultShow bool
}

// NewResolver creates a task-check resolver.
func NewResolver(cfg Config) (*Resolver, error) {
	if cfg.Rng == nil {
		return nil, errors.New("random source is required")
	}
	if cfg.Publisher == nil {
		return nil, errors.New("publisher is required")
	}
	return &Resolver{
		prompter:    cfg.Prompter,
		coolness:    cfg.Coolness,
		publisher:   cfg.Publisher,
		rng:         cfg.Rng,
		defaultShow: cfg.ShowOptionsDefault,
	}, nil
}

// ResolveTaskCheck runs one complete task check.
//
// The returned roll is nil with a nil error when the user cancelled the
// options dialog; callers must propagate that "no result" outcome instead
// of substituting a default. Failures from collaborators (dialog,
// evaluation, publication) propagate to the caller unretried.
func (r *Resolver) ResolveTaskCheck(ctx context.Context, params Params) (*yearzero.Roll, error) {
	ctx, span := tracer.Start(ctx, "check.ResolveTaskCheck")
	defer span.End()
	span.SetAttributes(attribute.String("check.title", params.Title))

	params = params.clamped()

	// Provisional roll from ratings alone; special slots come after option
	// resolution because tier composition is immutable once constructed.
	pool := BuildPool(params.Attribute, params.Skill, 0, false)
	roll, err := yearzero.NewRoll(params.Title, pool, params.MaxPush)
	if err != nil {
		return nil, fmt.Errorf("build provisional roll: %w", err)
	}

	params, cancelled, err := r.resolveOptions(ctx, params)
	if err != nil {
		return nil, err
	}
	if cancelled {
		span.SetAttributes(attribute.Bool("check.cancelled", true))
		return nil, nil
	}

	if params.RateOfFire > 0 || params.Location || params.MaxPush != 1 {
		pool = BuildPool(params.Attribute, params.Skill, params.RateOfFire, params.Location)
		roll, err = yearzero.NewRoll(params.Title, pool, params.MaxPush)
		if err != nil {
			return nil, fmt.Errorf("rebuild roll: %w", err)
		}
	}

	// The modifier applies exactly once, after pool construction and
	// before evaluation. Zero means no modifier.
	if params.Modifier != 0 {
		roll, err = roll.Modify(params.Modifier)
		if err != nil {
			return nil, fmt.Errorf("apply modifier: %w", err)
		}
	}

	evaluated, err := roll.Eval(r.rng)
	if err != nil {
		return nil, fmt.Errorf("evaluate roll: %w", err)
	}
	span.SetAttributes(attribute.Int("check.successes", evaluated.Successes()))

	if params.Publish {
		if _, err := r.publisher.Publish(ctx, evaluated, params.Visibility); err != nil {
			return nil, fmt.Errorf("publish roll: %w", err)
		}
	}

	return &evaluated, nil
}

// resolveOptions merges the dialog's overrides into the parameter set when
// the interactive step applies. The bool result reports user cancellation.
func (r *Resolver) resolveOptions(ctx context.Context, params Params) (Params, bool, error) {
	if !shouldAskOptions(params, r.defaultShow) {
		return params.clamped(), false, nil
	}
	if r.prompter == nil {
		return Params{}, false, errors.New("options prompter is required")
	}

	overrides, err := r.prompter.AskOptions(ctx, params)
	if err != nil {
		return Params{}, false, fmt.Errorf("ask options: %w", err)
	}
	if overrides.Cancelled {
		return Params{}, true, nil
	}
	return applyOverrides(params, overrides), false, nil
}

// CoolnessParams configures a coolness-under-fire check.
type CoolnessParams struct {
	Actor      Actor
	Title      string
	Visibility Visibility
	Publish    bool
}

// ResolveCoolnessCheck runs the coolness-under-fire specialization.
//
// Without a bound actor the check is a silent no-op: nil roll, nil error,
// and neither dialog nor engine is touched, since the caller can simply
// retry with an actor. The check always runs its own small dialog, reads
// the actor's coolness and unit-cohesion ratings, and delegates to
// ResolveTaskCheck with the generic dialog suppressed.
func (r *Resolver) ResolveCoolnessCheck(ctx context.Context, params CoolnessParams) (*yearzero.Roll, error) {
	if params.Actor == nil {
		return nil, nil
	}
	if r.coolness == nil {
		return nil, errors.New("coolness prompter is required")
	}

	choice, err := r.coolness.AskCoolness(ctx)
	if err != nil {
		return nil, fmt.Errorf("ask coolness options: %w", err)
	}
	if choice.Cancelled {
		return nil, nil
	}

	coolness, _ := params.Actor.Rating(RatingCoolness)
	skill := 0
	if choice.UseUnitCohesion {
		skill, _ = params.Actor.Rating(RatingUnitCohesion)
	}

	title := params.Title
	if title == "" {
		title = "Coolness under fire"
	}
	taskParams := DefaultParams(title)
	taskParams.Attribute = coolness
	taskParams.Skill = skill
	taskParams.Visibility = params.Visibility
	taskParams.Publish = params.Publish
	taskParams.SkipDialog = true

	return r.ResolveTaskCheck(ctx, taskParams)
}

// PushRoll re-rolls the eligible dice of an evaluated roll and republishes.
//
// The input roll is never mutated: pushing yields an independent duplicate,
// so the pre-push result stays inspectable. When the roll is not pushable
// the duplicate comes back unchanged and is still republished; callers
// treat that as a legal no-op, not a failure. A non-empty priorMessageID is
// deleted before republication so history shows only the final state. The
// delete and the publish are not transactional; a crash between them loses
// the superseded message rather than duplicating it.
func (r *Resolver) PushRoll(ctx context.Context, roll yearzero.Roll, visibility Visibility, priorMessageID string) (yearzero.Roll, error) {
	ctx, span := tracer.Start(ctx, "check.PushRoll")
	defer span.End()
	span.SetAttributes(attribute.Bool("check.pushable", roll.Pushable()))

	pushed, err := roll.Push(r.rng)
	if err != nil {
		return yearzero.Roll{}, fmt.Errorf("push roll: %w", err)
	}

	if priorMessageID != "" {
		if err := r.publisher.Delete(ctx, priorMessageID); err != nil {
			return yearzero.Roll{}, fmt.Errorf("delete superseded message: %w", err)
		}
	}
	if _, err := r.publisher.Publish(ctx, pushed, visibility); err != nil {
		return yearzero.Roll{}, fmt.Errorf("publish pushed roll: %w", err)
	}

	return pushed, nil
}
