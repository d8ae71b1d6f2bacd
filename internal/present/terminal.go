package present

import (
	"fmt"
	"io"
	"strings"
)

// Terminal is a View that prints to a terminal. Progress and errors go to
// errOut, results to out.
type Terminal struct {
	out    io.Writer
	errOut io.Writer
}

// NewTerminal creates a terminal view
func NewTerminal(out, errOut io.Writer) *Terminal {
	return &Terminal{out: out, errOut: errOut}
}

func (t *Terminal) ShowLoading() {
	fmt.Fprintln(t.errOut, "Fetching weather...")
}

func (t *Terminal) HideLoading() {}

func (t *Terminal) ShowError(message string) {
	fmt.Fprintf(t.errOut, "Error: %s\n", message)
}

func (t *Terminal) HideError() {}

func (t *Terminal) Render(current CurrentView, cards []Card) {
	fmt.Fprintf(t.out, "%s\n%s\n\n", current.Location, current.Date)
	fmt.Fprintf(t.out, "  %s  %s\n", current.Temp, current.Description)
	fmt.Fprintf(t.out, "  Feels like %s · Humidity %s · Wind %s · Pressure %s\n\n",
		current.FeelsLike, current.Humidity, current.Wind, current.Pressure)

	if len(cards) == 0 {
		return
	}

	fmt.Fprintf(t.out, "%-4s %-7s %6s  %-24s %9s %8s\n", "DAY", "DATE", "TEMP", "CONDITIONS", "WIND", "HUMIDITY")
	fmt.Fprintln(t.out, strings.Repeat("-", 64))
	for _, c := range cards {
		fmt.Fprintf(t.out, "%-4s %-7s %6s  %-24s %9s %8s\n",
			c.Day, c.Date, c.Temp, c.Description, c.Wind, c.Humidity)
	}
}

var _ View = (*Terminal)(nil)
