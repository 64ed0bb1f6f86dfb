// Command termcore runs a program headlessly inside the emulator and
// prints the resulting screen, styled for the hosting terminal. It is a
// driver for the library, not a full terminal frontend.
package main

import (
	"flag"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/lmittmann/tint"
	"github.com/muesli/termenv"
	"golang.org/x/exp/slog"

	termcore "git.sr.ht/~mglyn/termcore"
	"git.sr.ht/~mglyn/termcore/log"
	"git.sr.ht/~mglyn/termcore/term"
)

func main() {
	var (
		rows    = flag.Int("rows", 24, "terminal rows")
		cols    = flag.Int("cols", 80, "terminal columns")
		wait    = flag.Duration("wait", 10*time.Second, "how long to wait for the command to finish")
		verbose = flag.Bool("v", false, "debug logging to stderr")
	)
	flag.Parse()

	if *verbose {
		log.SetHandler(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}))
	}

	args := flag.Args()
	if len(args) == 0 {
		shell := os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/sh"
		}
		args = []string{shell}
	}

	vt := termcore.New()
	if err := vt.Resize(term.Size{Rows: *rows, Cols: *cols}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	done := make(chan termcore.EventClosed, 1)
	vt.Attach(func(ev termcore.Event) {
		switch ev := ev.(type) {
		case termcore.EventClosed:
			select {
			case done <- ev:
			default:
			}
		case termcore.EventTitle:
			slog.Debug("title changed", "title", string(ev))
		}
	})

	cmd := exec.Command(args[0], args[1:]...)
	if err := vt.Start(cmd); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	status := 0
	select {
	case ev := <-done:
		status = ev.Status
	case <-time.After(*wait):
		vt.Close()
		<-done
	}

	render(vt.Snapshot())
	os.Exit(status)
}

// render prints the snapshot to stdout with the host terminal's own
// styling capabilities.
func render(sn *termcore.Snapshot) {
	out := termenv.NewOutput(os.Stdout)
	p := out.ColorProfile()
	for _, row := range sn.Cells {
		line := ""
		for _, cell := range row {
			if cell.Width == 0 {
				continue
			}
			g := cell.Grapheme
			if g == "" {
				g = " "
			}
			s := out.String(g)
			if !cell.Style.Foreground.IsDefault() {
				s = s.Foreground(convert(p, cell.Style.Foreground))
			}
			if !cell.Style.Background.IsDefault() {
				s = s.Background(convert(p, cell.Style.Background))
			}
			if cell.Style.Attribute&termcore.AttrBold != 0 {
				s = s.Bold()
			}
			if cell.Style.Attribute&termcore.AttrItalic != 0 {
				s = s.Italic()
			}
			if cell.Style.Attribute&termcore.AttrReverse != 0 {
				s = s.Reverse()
			}
			if cell.Style.UnderlineStyle != termcore.UnderlineOff {
				s = s.Underline()
			}
			line += s.String()
		}
		fmt.Println(line)
	}
}

func convert(p termenv.Profile, c termcore.Color) termenv.Color {
	if c.IsIndexed() {
		params := c.Params()
		return p.Convert(termenv.ANSI256Color(params[0]))
	}
	r, g, b := c.RGB()
	return p.Convert(termenv.RGBColor(fmt.Sprintf("#%02x%02x%02x", r, g, b)))
}
