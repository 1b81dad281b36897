// Command termctl inspects translation memories and exports term reports
// from local TMX files without the API server.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/custodio78/termsuite-core/internal/app"
)

// CLI is the command tree.
var CLI struct {
	Languages LanguagesCmd `cmd:"" help:"List the languages declared in a TMX file."`
	Terms     TermsCmd     `cmd:"" help:"Print the distinct segments of one language with their frequency."`
	Pairs     PairsCmd     `cmd:"" help:"Print source/target pairs for a source language."`
	Export    ExportCmd    `cmd:"" help:"Export a term report as xlsx, csv or json."`
	Version   VersionCmd   `cmd:"" help:"Print the build version."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("termctl"),
		kong.Description("Translation memory term extraction and reporting."),
		kong.UsageOnError(),
		kong.BindTo(os.Stdout, (*io.Writer)(nil)),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// VersionCmd prints the build version.
type VersionCmd struct{}

func (c *VersionCmd) Run(out io.Writer) error {
	_, err := fmt.Fprintf(out, "termctl %s\n", app.BuildVersion())
	return err
}
