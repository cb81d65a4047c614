// ktalk - Chat Export Analyzer
//
// ktalk is a batch analysis tool for chat export files. It parses an
// exported transcript (including multi-part exports) and reports message
// activity statistics as text, JSON or terminal charts.
package main

import (
	"os"

	"github.com/graup/kakaotalk-analyzer/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
