// Package checks implements the zerohour command. It resolves task
// checks and coolness-under-fire checks against the step-dice engine,
// records published results in the local roll log, and replays recent
// history.
package checks

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"

	"github.com/louisbranch/zerohour.games/internal/messages"
	"github.com/louisbranch/zerohour.games/internal/messages/sqlite"
	"github.com/louisbranch/zerohour.games/internal/platform/config"
	"github.com/louisbranch/zerohour.games/internal/platform/otel"
	"github.com/louisbranch/zerohour.games/internal/random"
	"github.com/louisbranch/zerohour.games/internal/yearzero"
	"github.com/louisbranch/zerohour.games/internal/yearzero/check"
)

const defaultStoragePath = "zerohour.db"

// envConfig is the environment-derived slice of the configuration.
type envConfig struct {
	StoragePath string `env:"ZEROHOUR_STORAGE_PATH" envDefault:"zerohour.db"`
	ShowOptions bool   `env:"ZEROHOUR_SHOW_OPTIONS" envDefault:"false"`
}

// Config holds the checks command configuration.
type Config struct {
	StoragePath string

	Title      string
	Attribute  int
	Skill      int
	RateOfFire int
	Location   bool
	Modifier   int
	MaxPush    int
	Visibility string
	NoPublish  bool

	// Options requests the interactive options dialog for this check.
	// ShowOptionsDefault is the persisted preference; the dialog runs
	// when the two disagree and SkipDialog is unset.
	Options            bool
	SkipDialog         bool
	ShowOptionsDefault bool

	// Coolness switches to a coolness-under-fire check built from the
	// two actor ratings below. A negative cohesion rating means the
	// actor has no unit-cohesion skill.
	Coolness       bool
	CoolnessRating int
	CohesionRating int

	// Push re-rolls the result once after the initial resolution,
	// superseding the published message.
	Push bool

	// History lists that many recent roll messages instead of rolling.
	History int

	// Seed fixes the random source; zero draws a fresh seed.
	Seed int64
}

// ParseConfig parses environment defaults and flags into a Config.
// Flags win over environment values.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var envCfg envConfig
	if err := config.ParseEnv(&envCfg); err != nil {
		return Config{}, err
	}

	cfg := Config{
		StoragePath:        envCfg.StoragePath,
		ShowOptionsDefault: envCfg.ShowOptions,
		Visibility:         check.VisibilityPublic.String(),
		MaxPush:            1,
	}

	fs.StringVar(&cfg.StoragePath, "storage", cfg.StoragePath, "path to the roll log database")
	fs.StringVar(&cfg.Title, "title", "", "check title shown in the roll log")
	fs.IntVar(&cfg.Attribute, "attribute", 0, "attribute rating")
	fs.IntVar(&cfg.Skill, "skill", 0, "skill rating")
	fs.IntVar(&cfg.RateOfFire, "rof", 0, "rate of fire (number of ammo dice)")
	fs.BoolVar(&cfg.Location, "location", false, "include a hit location die")
	fs.IntVar(&cfg.Modifier, "modifier", 0, "pool modifier in die steps")
	fs.IntVar(&cfg.MaxPush, "max-push", cfg.MaxPush, "maximum number of pushes")
	fs.StringVar(&cfg.Visibility, "visibility", cfg.Visibility, "message visibility (public, private, blind)")
	fs.BoolVar(&cfg.NoPublish, "no-publish", false, "roll without recording a message")
	fs.BoolVar(&cfg.Options, "options", false, "ask for check options interactively")
	fs.BoolVar(&cfg.SkipDialog, "skip-dialog", false, "never show the options dialog")
	fs.BoolVar(&cfg.Coolness, "coolness", false, "run a coolness-under-fire check")
	fs.IntVar(&cfg.CoolnessRating, "coolness-rating", 0, "actor coolness-under-fire rating")
	fs.IntVar(&cfg.CohesionRating, "cohesion-rating", -1, "actor unit-cohesion rating, negative when absent")
	fs.BoolVar(&cfg.Push, "push", false, "push the roll after the initial resolution")
	fs.IntVar(&cfg.History, "history", 0, "list this many recent roll messages and exit")
	fs.Int64Var(&cfg.Seed, "seed", 0, "fixed random seed, zero for a fresh one")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Run executes one checks invocation against stdin and stdout.
func Run(ctx context.Context, cfg Config) error {
	return run(ctx, cfg, os.Stdin, os.Stdout)
}

func run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	shutdown, err := otel.Setup(ctx, "zerohour-checks")
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.StoragePath)
	if err != nil {
		return fmt.Errorf("open roll log: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close roll log: %v", err)
		}
	}()

	rollLog, err := messages.NewLog(store)
	if err != nil {
		return fmt.Errorf("init roll log: %w", err)
	}

	if cfg.History > 0 {
		return printHistory(ctx, out, rollLog, cfg.History)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed, err = random.NewSeed()
		if err != nil {
			return fmt.Errorf("draw seed: %w", err)
		}
	}

	prompter := NewTerminalPrompter(in, out)
	resolver, err := check.NewResolver(check.Config{
		Prompter:           prompter,
		Coolness:           prompter,
		Publisher:          rollLog,
		Rng:                rand.New(rand.NewSource(seed)),
		ShowOptionsDefault: cfg.ShowOptionsDefault,
	})
	if err != nil {
		return fmt.Errorf("init resolver: %w", err)
	}

	visibility, err := check.ParseVisibility(cfg.Visibility)
	if err != nil {
		return err
	}

	var roll *yearzero.Roll
	if cfg.Coolness {
		roll, err = resolver.ResolveCoolnessCheck(ctx, check.CoolnessParams{
			Actor:      actorFromConfig(cfg),
			Title:      cfg.Title,
			Visibility: visibility,
			Publish:    !cfg.NoPublish,
		})
	} else {
		params := check.DefaultParams(cfg.Title)
		params.Attribute = cfg.Attribute
		params.Skill = cfg.Skill
		params.RateOfFire = cfg.RateOfFire
		params.Location = cfg.Location
		params.Modifier = cfg.Modifier
		params.MaxPush = cfg.MaxPush
		params.Visibility = visibility
		params.Publish = !cfg.NoPublish
		params.AskForOptions = cfg.Options
		params.SkipDialog = cfg.SkipDialog
		roll, err = resolver.ResolveTaskCheck(ctx, params)
	}
	if err != nil {
		return fmt.Errorf("resolve check: %w", err)
	}
	if roll == nil {
		fmt.Fprintln(out, "check cancelled")
		return nil
	}

	printRoll(out, *roll)

	if cfg.Push {
		pushed, err := pushLatest(ctx, resolver, rollLog, *roll, visibility, cfg.NoPublish)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, "pushed:")
		printRoll(out, pushed)
	}
	return nil
}

// pushLatest supersedes the just-published message with the pushed
// result. Without publication there is no prior message to delete.
func pushLatest(ctx context.Context, resolver *check.Resolver, rollLog *messages.Log, roll yearzero.Roll, visibility check.Visibility, noPublish bool) (yearzero.Roll, error) {
	priorID := ""
	if !noPublish {
		records, err := rollLog.List(ctx, 1)
		if err != nil {
			return yearzero.Roll{}, fmt.Errorf("find prior message: %w", err)
		}
		if len(records) > 0 {
			priorID = records[0].ID
		}
	}

	pushed, err := resolver.PushRoll(ctx, roll, visibility, priorID)
	if err != nil {
		return yearzero.Roll{}, fmt.Errorf("push roll: %w", err)
	}
	return pushed, nil
}

func printRoll(out io.Writer, roll yearzero.Roll) {
	title := roll.Name
	if title == "" {
		title = "task check"
	}
	fmt.Fprintf(out, "%s: %s\n", title, roll.Formula())

	for _, die := range roll.Dice {
		marker := ""
		if die.Pushed {
			marker = " (pushed)"
		}
		switch die.Kind {
		case yearzero.KindAmmo:
			fmt.Fprintf(out, "  ammo d%d: %d%s\n", die.Size.Sides(), die.Value, marker)
		case yearzero.KindLocation:
			fmt.Fprintf(out, "  location d%d: %d\n", die.Size.Sides(), die.Value)
		default:
			fmt.Fprintf(out, "  d%d: %d%s\n", die.Size.Sides(), die.Value, marker)
		}
	}

	if roll.IsSuccess() {
		fmt.Fprintf(out, "successes: %d\n", roll.Successes())
	} else {
		fmt.Fprintln(out, "failure (no successes)")
	}
	if location, ok := roll.HitLocation(); ok {
		fmt.Fprintf(out, "hit location: %s\n", location)
	}
	if roll.Pushable() {
		fmt.Fprintf(out, "pushes remaining: %d\n", roll.MaxPush-roll.PushCount)
	}
}

func printHistory(ctx context.Context, out io.Writer, rollLog *messages.Log, limit int) error {
	records, err := rollLog.List(ctx, limit)
	if err != nil {
		return fmt.Errorf("list roll messages: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(out, "no roll messages")
		return nil
	}
	for _, record := range records {
		title := record.Title
		if title == "" {
			title = "task check"
		}
		fmt.Fprintf(out, "%s  %-8s %s: %s, %d successes\n",
			record.CreatedAt.Format("2006-01-02 15:04"),
			record.Visibility,
			title,
			record.Formula,
			record.Successes,
		)
	}
	return nil
}

// flagActor exposes the ratings supplied on the command line.
type flagActor struct {
	ratings map[string]int
}

func (a flagActor) Rating(name string) (int, bool) {
	value, ok := a.ratings[name]
	return value, ok
}

func actorFromConfig(cfg Config) check.Actor {
	ratings := map[string]int{
		check.RatingCoolness: cfg.CoolnessRating,
	}
	if cfg.CohesionRating >= 0 {
		ratings[check.RatingUnitCohesion] = cfg.CohesionRating
	}
	return flagActor{ratings: ratings}
}
