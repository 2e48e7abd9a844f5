package lunches

import (
	"github.com/julianstephens/lunchwheel/internal/cli"
	"github.com/julianstephens/lunchwheel/internal/history"
	"github.com/julianstephens/lunchwheel/internal/utils"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	ctrl, err := ctx.Session(nil, 0)
	if err != nil {
		return err
	}

	now := ctrl.Now()
	ctx.Printf("Today is %s (%s)\n", utils.DayName(now), utils.DayStamp(now))
	ctx.Printf("Re-spins left: %d/%d\n", ctrl.Respins(), ctrl.MaxRespins())

	day, weekday := ctrl.CurrentDay()
	switch {
	case !weekday:
		ctx.Println("It's the weekend. Picks are logged but not added to the weekly menu.")
	case ctrl.Locked():
		v, _ := ctrl.Weekly().Get(day)
		ctx.Printf("Today's lunch: %s\n", v)
	default:
		ctx.Println("Today's lunch: not decided yet")
	}

	ctx.Println()
	ctx.Println("This week:")
	for _, row := range history.WeekRows(ctrl.Weekly(), day, weekday) {
		marker := ""
		if row.Current {
			marker = "  ← today"
		}
		ctx.Printf("  %-4s %s%s\n", row.Day, row.Value, marker)
	}
	return nil
}
