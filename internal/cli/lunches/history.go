package lunches

import (
	"fmt"

	"github.com/julianstephens/lunchwheel/internal/cli"
	"github.com/julianstephens/lunchwheel/internal/history"
)

type HistoryCmd struct {
	Show  HistoryShowCmd  `cmd:"" help:"Show this week's menu and the full history." default:"1"`
	Clear HistoryClearCmd `cmd:"" help:"Clear the full history. The weekly menu is kept."`
	Share HistoryShareCmd `cmd:"" help:"Print this week's menu with a QR code."`
}

type HistoryShowCmd struct {
	Raw   bool `help:"Print the markdown source instead of rendering it."`
	Width int  `help:"Wrap rendered output at this width." default:"80"`
}

func (c *HistoryShowCmd) Run(ctx *cli.Context) error {
	ctrl, err := ctx.Session(nil, 0)
	if err != nil {
		return err
	}

	day, ok := ctrl.CurrentDay()
	md := history.Markdown(ctrl.Weekly(), ctrl.FullHistory(), day, ok)
	if c.Raw {
		ctx.Println(md)
		return nil
	}

	out, err := history.Render(md, c.Width)
	if err != nil {
		return err
	}
	ctx.Printf("%s", out)
	return nil
}

type HistoryClearCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *HistoryClearCmd) Run(ctx *cli.Context) error {
	ctrl, err := ctx.Session(nil, 0)
	if err != nil {
		return err
	}

	n := len(ctrl.FullHistory())
	if n == 0 {
		ctx.Println("No history yet.")
		return nil
	}

	if !c.Yes {
		ok, err := ctx.Confirm(fmt.Sprintf("Clear %d history entries?", n))
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Cancelled.")
			return nil
		}
	}

	if err := ctrl.ClearHistory(); err != nil {
		return err
	}
	ctx.Printf("✓ Cleared %d entries\n", n)
	return nil
}

type HistoryShareCmd struct {
	PNG  string `help:"Also write the QR code to this PNG file." type:"path"`
	Size int    `help:"PNG size in pixels." default:"256"`
	NoQR bool   `name:"no-qr" help:"Print the text only."`
}

func (c *HistoryShareCmd) Run(ctx *cli.Context) error {
	ctrl, err := ctx.Session(nil, 0)
	if err != nil {
		return err
	}

	text := history.ShareText(ctrl.Weekly())
	ctx.Println(text)

	if !c.NoQR {
		qr, err := history.QR(text)
		if err != nil {
			return err
		}
		ctx.Println()
		ctx.Printf("%s", qr)
	}

	if c.PNG != "" {
		if err := history.WriteQRPNG(text, c.PNG, c.Size); err != nil {
			return err
		}
		ctx.Printf("✓ Wrote %s\n", c.PNG)
	}
	return nil
}
