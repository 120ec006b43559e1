package core

import (
	"io"
	"os"

	"github.com/huangsam/covidash/internal/outwriter"
)

var (
	// outWriter prints every derived view in the configured output format
	outWriter = outwriter.NewOutWriter()

	// headerOut receives the dataset header printed before text output
	headerOut io.Writer = os.Stdout

	// statusOut receives progress lines of commands that write files
	statusOut io.Writer = os.Stderr
)
