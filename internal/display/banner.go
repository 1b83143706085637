package display

import (
	"fmt"
	"os"

	"github.com/carvekit/carvepipe/internal/term"
)

// PrintBanner prints the ASCII art banner; uses Magenta if colors are enabled.
func PrintBanner() {
	if term.Enabled() {
		fmt.Fprint(os.Stdout, term.Magenta)
	}
	fmt.Fprint(os.Stdout, `                             _
  ___ __ _ _ ____   _____ _ __ (_)_ __   ___
 / __/ _`+"`"+` | '__\ \ / / _ \ '_ \| | '_ \ / _ \
| (_| (_| | |   \ V /  __/ |_) | | |_) |  __/
 \___\__,_|_|    \_/ \___| .__/|_| .__/ \___|
                         |_|     |_|
`)
	if term.Enabled() {
		fmt.Fprintln(os.Stdout, term.NC)
	}
}
