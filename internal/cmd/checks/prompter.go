package checks

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/louisbranch/zerohour.games/internal/yearzero/check"
)

// TerminalPrompter runs the check dialogs over a line-oriented terminal.
// Empty answers keep the current value; "cancel" or end of input backs
// out of the whole check.
type TerminalPrompter struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewTerminalPrompter creates a prompter reading answers from in.
func NewTerminalPrompter(in io.Reader, out io.Writer) *TerminalPrompter {
	return &TerminalPrompter{
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

// AskOptions walks the user through the overridable check options.
func (p *TerminalPrompter) AskOptions(ctx context.Context, params check.Params) (check.Overrides, error) {
	overrides := check.OverridesFrom(params)

	rof, ok, err := p.askInt(ctx, "rate of fire", overrides.RateOfFire)
	if err != nil || !ok {
		return check.Overrides{Cancelled: true}, err
	}
	overrides.RateOfFire = rof

	modifier, ok, err := p.askInt(ctx, "modifier", overrides.Modifier)
	if err != nil || !ok {
		return check.Overrides{Cancelled: true}, err
	}
	overrides.Modifier = modifier

	location, ok, err := p.askBool(ctx, "hit location die", overrides.Location)
	if err != nil || !ok {
		return check.Overrides{Cancelled: true}, err
	}
	overrides.Location = location

	maxPush, ok, err := p.askInt(ctx, "max pushes", overrides.MaxPush)
	if err != nil || !ok {
		return check.Overrides{Cancelled: true}, err
	}
	overrides.MaxPush = maxPush

	visibility, ok, err := p.askVisibility(ctx, overrides.Visibility)
	if err != nil || !ok {
		return check.Overrides{Cancelled: true}, err
	}
	overrides.Visibility = visibility

	return overrides, nil
}

// AskCoolness runs the coolness-under-fire dialog.
func (p *TerminalPrompter) AskCoolness(ctx context.Context) (check.CoolnessChoice, error) {
	useCohesion, ok, err := p.askBool(ctx, "roll on unit cohesion", false)
	if err != nil || !ok {
		return check.CoolnessChoice{Cancelled: true}, err
	}
	return check.CoolnessChoice{UseUnitCohesion: useCohesion}, nil
}

// askLine reads one trimmed answer. The bool result is false when the
// user cancelled or input ended.
func (p *TerminalPrompter) askLine(ctx context.Context, prompt string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}

	fmt.Fprint(p.out, prompt)
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", false, fmt.Errorf("read answer: %w", err)
		}
		return "", false, nil
	}

	answer := strings.TrimSpace(p.scanner.Text())
	if strings.EqualFold(answer, "cancel") {
		return "", false, nil
	}
	return answer, true, nil
}

func (p *TerminalPrompter) askInt(ctx context.Context, label string, current int) (int, bool, error) {
	for {
		answer, ok, err := p.askLine(ctx, fmt.Sprintf("%s [%d]: ", label, current))
		if err != nil || !ok {
			return 0, false, err
		}
		if answer == "" {
			return current, true, nil
		}
		value, err := strconv.Atoi(answer)
		if err != nil {
			fmt.Fprintf(p.out, "enter a number or leave empty\n")
			continue
		}
		return value, true, nil
	}
}

func (p *TerminalPrompter) askBool(ctx context.Context, label string, current bool) (bool, bool, error) {
	hint := "y/N"
	if current {
		hint = "Y/n"
	}
	for {
		answer, ok, err := p.askLine(ctx, fmt.Sprintf("%s [%s]: ", label, hint))
		if err != nil || !ok {
			return false, false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return current, true, nil
		case "y", "yes":
			return true, true, nil
		case "n", "no":
			return false, true, nil
		}
		fmt.Fprintf(p.out, "answer y or n\n")
	}
}

func (p *TerminalPrompter) askVisibility(ctx context.Context, current check.Visibility) (check.Visibility, bool, error) {
	for {
		answer, ok, err := p.askLine(ctx, fmt.Sprintf("visibility [%s]: ", current))
		if err != nil || !ok {
			return check.VisibilityPublic, false, err
		}
		if answer == "" {
			return current, true, nil
		}
		visibility, err := check.ParseVisibility(strings.ToLower(answer))
		if err != nil {
			fmt.Fprintf(p.out, "choose public, private, or blind\n")
			continue
		}
		return visibility, true, nil
	}
}

var (
	_ check.OptionsPrompter  = (*TerminalPrompter)(nil)
	_ check.CoolnessPrompter = (*TerminalPrompter)(nil)
)
