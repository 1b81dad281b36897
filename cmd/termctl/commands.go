package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/custodio78/termsuite-core/internal/report"
	"github.com/custodio78/termsuite-core/internal/report/export"
	"github.com/custodio78/termsuite-core/internal/terms"
	"github.com/custodio78/termsuite-core/internal/tmx"
	"github.com/custodio78/termsuite-core/internal/translation"
)

// LanguagesCmd lists declared languages.
type LanguagesCmd struct {
	File string `arg:"" type:"existingfile" help:"TMX file."`
}

func (c *LanguagesCmd) Run(out io.Writer) error {
	doc, err := tmx.ParseFile(c.File)
	if err != nil {
		return err
	}
	for _, lang := range doc.Languages() {
		if _, err := fmt.Fprintln(out, lang); err != nil {
			return err
		}
	}
	return nil
}

// TermsCmd prints distinct segments with their frequency.
type TermsCmd struct {
	File     string `arg:"" type:"existingfile" help:"TMX file."`
	Language string `short:"l" help:"Language tag; empty selects every variant."`
}

func (c *TermsCmd) Run(out io.Writer) error {
	doc, err := tmx.ParseFile(c.File)
	if err != nil {
		return err
	}

	freq := terms.Frequencies(doc, c.Language)
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, term := range terms.TermSet(doc, c.Language) {
		fmt.Fprintf(tw, "%d\t%s\n", freq[term], term)
	}
	fmt.Fprintf(tw, "\n%d terms, %d occurrences\n", len(freq), freq.Sum())
	return tw.Flush()
}

// PairsCmd prints source/target couples.
type PairsCmd struct {
	File   string `arg:"" type:"existingfile" help:"TMX file."`
	Source string `short:"s" required:"" help:"Source language tag."`
}

func (c *PairsCmd) Run(out io.Writer) error {
	doc, err := tmx.ParseFile(c.File)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, p := range doc.Pairs(c.Source) {
		fmt.Fprintf(tw, "%s\t%s\n", p.Source, p.Target)
	}
	return tw.Flush()
}

// ExportCmd runs the report pipeline over a TMX file.
type ExportCmd struct {
	File     string `arg:"" type:"existingfile" help:"TMX file."`
	Language string `short:"l" help:"Target language tag; empty selects every variant."`
	Format   string `short:"f" default:"xlsx" enum:"xlsx,excel,csv,json" help:"Output format (${enum})."`
	Out      string `short:"o" help:"Output path, '-' for stdout. Defaults to terminos_tmx_<language>.<ext>."`

	MinFrequency   int      `help:"Drop rows below this frequency."`
	MinWords       int      `help:"Drop rows with fewer words."`
	MaxWords       int      `help:"Drop rows with more words."`
	ExcludeNumbers bool     `help:"Drop terms containing any digit."`
	Contains       string   `help:"Keep rows containing this text (case-insensitive)."`
	SortBy         string   `default:"frequency" enum:"frequency,alphabetical,length,word_count" help:"Sort key (${enum})."`
	Order          string   `default:"desc" enum:"asc,desc" help:"Sort order."`
	TopN           int      `help:"Keep the first N rows; 0 keeps all."`
	Columns        []string `help:"Columns to include, by key or label."`
	Strict         bool     `help:"Fail on unknown columns instead of ignoring them."`

	IncludeTranslation bool   `short:"t" help:"Add a translation column resolved from the same file."`
	SourceLanguage     string `help:"Source language for translation lookup; defaults to --language."`
}

func (c *ExportCmd) options() report.Options {
	return report.Options{
		Filter: report.FilterOptions{
			MinFrequency:   c.MinFrequency,
			MinWords:       c.MinWords,
			MaxWords:       c.MaxWords,
			ExcludeNumbers: c.ExcludeNumbers,
			Contains:       c.Contains,
		},
		SortBy:  report.SortKey(c.SortBy),
		Order:   report.Order(c.Order),
		TopN:    c.TopN,
		Columns: c.Columns,
		Strict:  c.Strict,
	}
}

func (c *ExportCmd) Run(out io.Writer) error {
	format, err := export.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	opts := c.options()
	if err := opts.Validate(); err != nil {
		return err
	}

	doc, err := tmx.ParseFile(c.File)
	if err != nil {
		return err
	}
	art := terms.BuildArtifact(doc, c.Language, time.Now().UTC())

	var enrich *report.Enrichment
	if c.IncludeTranslation {
		source := c.SourceLanguage
		if source == "" {
			source = art.Language
		}
		enrich = &report.Enrichment{Resolver: translation.NewIndex(doc.Pairs(source))}
	}

	table, err := report.Run(report.BuildRows(art), report.MemoryLayout(c.IncludeTranslation), opts, enrich)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := export.Encode(&buf, format, table); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	if c.Out == "-" {
		_, err := out.Write(buf.Bytes())
		return err
	}
	path := c.Out
	if path == "" {
		path = fmt.Sprintf("terminos_tmx_%s.%s", art.LanguageLabel(), format.Extension())
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	_, err = fmt.Fprintf(out, "%d rows written to %s\n", len(table.Rows), path)
	return err
}
