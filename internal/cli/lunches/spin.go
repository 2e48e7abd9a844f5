package lunches

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/julianstephens/lunchwheel/internal/cli"
	"github.com/julianstephens/lunchwheel/internal/constants"
	"github.com/julianstephens/lunchwheel/internal/errors"
	"github.com/julianstephens/lunchwheel/internal/logger"
	"github.com/julianstephens/lunchwheel/internal/menu"
	"github.com/julianstephens/lunchwheel/internal/session"
	"github.com/julianstephens/lunchwheel/internal/utils"
	"github.com/julianstephens/lunchwheel/internal/wheel"
)

type SpinCmd struct {
	Yes      bool   `short:"y" help:"Accept the first result without asking."`
	Fast     bool   `help:"Skip the spin animation and transition delay."`
	Seed     string `help:"Seed the wheel for a reproducible result."`
	Category string `short:"c" help:"Skip the category wheel and spin this category's items."`
}

func (c *SpinCmd) Run(ctx *cli.Context) error {
	var rng wheel.RNG
	if c.Seed != "" {
		rng = wheel.Seeded(c.Seed)
	}
	duration := ctx.Config.SpinDuration
	if c.Fast {
		duration = 0
	}

	ctrl, err := ctx.Session(rng, duration)
	if err != nil {
		return err
	}
	ctrl.Subscribe(session.ObserverFunc(func(e session.Event) {
		logger.Debug("Session event", "kind", e.Kind, "winner", e.Winner, "step", e.Step, "respins", e.Respins)
	}))

	if ctrl.Locked() {
		day, _ := ctrl.CurrentDay()
		v, _ := ctrl.Weekly().Get(day)
		return fmt.Errorf("%w: %s", session.ErrLocked, v)
	}

	in := bufio.NewReader(ctx.In)
	for {
		if err := c.pickCategory(ctx, ctrl); err != nil {
			return err
		}

		cat, _ := ctrl.Selected()
		if len(cat.Items) == 0 {
			ctrl.Reset()
			return errors.Validationf("no items in %s; add some with 'item add %s <item>'", cat.Name, cat.Name)
		}

		ctx.Printf("Now, spinning for %s!\n", cat.Name)
		out, err := c.spin(ctx, ctrl)
		if err != nil {
			ctrl.Reset()
			return err
		}

		ctx.Println()
		ctx.Println("You got...")
		ctx.Printf("  %s\n\n", out.Winner)

		if c.Yes {
			return accept(ctx, ctrl)
		}

		again, err := c.prompt(ctx, ctrl, in)
		if err != nil || !again {
			return err
		}
	}
}

// pickCategory spins the category wheel, or selects --category directly
func (c *SpinCmd) pickCategory(ctx *cli.Context, ctrl *session.Controller) error {
	if c.Category != "" {
		cat, err := menu.Resolve(ctrl.Categories(), c.Category)
		if err != nil {
			return err
		}
		return ctrl.SelectCategory(cat.ID)
	}

	ctx.Println("First, pick a category!")
	out, err := c.spin(ctx, ctrl)
	if err != nil {
		return err
	}
	if !out.Pending {
		return fmt.Errorf("category %q no longer exists", out.Winner)
	}
	ctx.Printf("Landed on %s!\n", out.Winner)
	if !c.Fast {
		time.Sleep(out.Delay)
	}
	_, err = ctrl.Transition(out.Token, out.Category.ID)
	return err
}

// spin runs one wheel to completion, drawing frames when it has a duration
func (c *SpinCmd) spin(ctx *cli.Context, ctrl *session.Controller) (session.Outcome, error) {
	s, err := ctrl.StartSpin()
	if err != nil {
		return session.Outcome{}, err
	}
	if s.Duration > 0 {
		animate(ctx.Out, s)
	}
	return ctrl.CompleteSpin(s.ID)
}

func animate(w io.Writer, s wheel.Spin) {
	start := time.Now()
	width := 0
	for _, item := range s.Items {
		width = max(width, len([]rune(item)))
	}
	for {
		elapsed := time.Since(start)
		if elapsed >= s.Duration {
			break
		}
		rotation := s.At(float64(elapsed) / float64(s.Duration))
		label := s.Items[wheel.Index(len(s.Items), rotation)]
		fmt.Fprintf(w, "\r  ▶ %-*s", width, label)
		time.Sleep(constants.SpinFrameInterval)
	}
	fmt.Fprintf(w, "\r  ▶ %-*s\n", width, s.Winner())
}

// prompt offers accept or spin again. It reports true when the user spent a re-spin.
func (c *SpinCmd) prompt(ctx *cli.Context, ctrl *session.Controller, in *bufio.Reader) (bool, error) {
	label := "Accept & Save"
	if _, ok := ctrl.CurrentDay(); !ok {
		label = "Accept (Weekend)"
	}

	for {
		ctx.Printf("[a] %s   [s] Spin Again (%d left)   [q] Quit: ", label, ctrl.Respins())
		line, err := in.ReadString('\n')
		if err != nil && err != io.EOF {
			return false, err
		}
		choice := strings.ToLower(strings.TrimSpace(line))

		switch choice {
		case "a", "accept":
			return false, accept(ctx, ctrl)
		case "s", "spin", "again":
			if err := ctrl.SpinAgain(); err != nil {
				ctx.Printf("%s\n", errors.Format(err))
				continue
			}
			ctx.Println()
			return true, nil
		case "q", "quit":
			ctrl.Reset()
			ctx.Println("Nothing saved.")
			return false, nil
		}

		if err == io.EOF {
			ctrl.Reset()
			return false, nil
		}
	}
}

func accept(ctx *cli.Context, ctrl *session.Controller) error {
	item, err := ctrl.Accept()
	if err != nil {
		return err
	}
	if day, ok := ctrl.CurrentDay(); ok {
		ctx.Printf("✓ Saved %s for %s\n", item.ItemName, day)
	} else {
		ctx.Printf("✓ Logged %s (%s, weekend)\n", item.ItemName, utils.DayName(item.Date))
	}
	return nil
}
