// Command scripture is the CLI for the scripture engine. It parses
// references, looks up passages, searches the corpus, and applies
// sacred-name substitution.
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/asjames18/scripture-engine/core/canon"
	"github.com/asjames18/scripture-engine/core/corpus"
	"github.com/asjames18/scripture-engine/core/engine"
	"github.com/asjames18/scripture-engine/core/search"
	"github.com/asjames18/scripture-engine/internal/logging"
	"github.com/asjames18/scripture-engine/internal/sources/jsonfile"
	"github.com/asjames18/scripture-engine/internal/sources/osis"
	"github.com/asjames18/scripture-engine/internal/sources/sqlitedb"
	"github.com/asjames18/scripture-engine/internal/sqlite"
)

const version = "0.1.0"

// CLI defines the command-line interface for scripture.
var CLI struct {
	// Global flags
	Source    string `name:"source" short:"s" help:"Corpus file (.json, .json.xz, .db, .osis.xml); default is the embedded sampler" type:"path"`
	LogLevel  string `name:"log-level" default:"warn" enum:"debug,info,warn,error" help:"Log level"`
	LogFormat string `name:"log-format" default:"text" enum:"text,json" help:"Log output format"`

	Parse   ParseCmd   `cmd:"" help:"Parse a reference string into its structured form"`
	Lookup  LookupCmd  `cmd:"" help:"Look up the text of a reference"`
	Search  SearchCmd  `cmd:"" help:"Search the corpus"`
	Books   BooksCmd   `cmd:"" help:"List the books of the corpus"`
	Sacred  SacredCmd  `cmd:"" help:"Apply sacred-name substitution to text"`
	Info    InfoCmd    `cmd:"" help:"Print corpus metadata"`
	Version VersionCmd `cmd:"" help:"Print version information"`
}

// newEngine builds an engine over the selected source. The source file
// format is chosen by extension.
func newEngine() (*engine.Engine, error) {
	if CLI.Source == "" {
		return engine.New(), nil
	}

	src, err := sourceFor(CLI.Source)
	if err != nil {
		return nil, err
	}
	return engine.New(engine.WithSource(src)), nil
}

func sourceFor(path string) (corpus.Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".xz":
		return jsonfile.New(path), nil
	case ".db", ".sqlite", ".sqlite3":
		return sqlitedb.New(path), nil
	case ".xml", ".osis":
		return osis.New(path), nil
	default:
		return nil, fmt.Errorf("unrecognized corpus file extension: %s", path)
	}
}

// ParseCmd parses one or more reference strings.
type ParseCmd struct {
	Input string `arg:"" help:"Reference string, compound references separated by , or ;"`
	JSON  bool   `help:"Emit JSON instead of text"`
}

func (c *ParseCmd) Run() error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	refs, failed := eng.ParseReferences(c.Input)
	if len(refs) == 0 {
		return fmt.Errorf("no parseable reference in %q", c.Input)
	}

	if c.JSON {
		return printJSON(map[string]any{"references": refs, "failed": failed})
	}
	for _, r := range refs {
		fmt.Printf("%s  (book=%s chapter=%d", eng.FormatReference(r), r.Book, r.Chapter)
		if r.Verse > 0 {
			fmt.Printf(" verse=%d", r.Verse)
		}
		if r.EndVerse > 0 {
			fmt.Printf(" end=%d", r.EndVerse)
		}
		fmt.Println(")")
	}
	for _, seg := range failed {
		fmt.Fprintf(os.Stderr, "unparsed: %s\n", seg)
	}
	return nil
}

// LookupCmd resolves a reference and prints its text.
type LookupCmd struct {
	Reference string `arg:"" help:"Reference, e.g. 'John 3:16' or '1 Jn 2:3-5'"`
	Sacred    bool   `help:"Apply sacred-name substitution to the text"`
	JSON      bool   `help:"Emit JSON instead of text"`
}

func (c *LookupCmd) Run() error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	r := eng.ParseReference(c.Reference)
	if r == nil {
		return fmt.Errorf("could not parse reference %q", c.Reference)
	}

	book, verses, ok := eng.VersesFor(*r)
	if !ok {
		return fmt.Errorf("%s is not in the corpus", eng.FormatReference(*r))
	}

	if c.JSON {
		text, _ := eng.PassageText(*r, c.Sacred)
		return printJSON(map[string]any{
			"reference": r,
			"display":   eng.FormatReference(*r),
			"book":      book.Name,
			"text":      text,
		})
	}

	fmt.Println(eng.FormatReference(*r))
	for _, v := range verses {
		text := v.Text
		if c.Sacred {
			text = eng.ApplySacredNames(text)
		}
		fmt.Printf("  %d  %s\n", v.Number, text)
	}
	return nil
}

// SearchCmd runs a full-text query.
type SearchCmd struct {
	Query  string `arg:"" help:"Search query"`
	Scope  string `enum:",canon,apocrypha,pseudepigrapha" default:"" help:"Restrict to one corpus group"`
	Book   string `help:"Restrict to one book ID"`
	Limit  int    `default:"25" help:"Page size"`
	Offset int    `default:"0" help:"Page offset"`
	JSON   bool   `help:"Emit JSON instead of text"`
}

func (c *SearchCmd) Run() error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	resp, err := eng.Search(c.Query, search.Options{
		Scope:      canon.Group(c.Scope),
		BookFilter: c.Book,
		Limit:      c.Limit,
		Offset:     c.Offset,
	})
	if err != nil {
		return err
	}

	if c.JSON {
		return printJSON(resp)
	}

	fmt.Printf("%d matches", resp.Total)
	if resp.Total > len(resp.Hits) {
		fmt.Printf(" (showing %d from offset %d)", len(resp.Hits), resp.Offset)
	}
	fmt.Println()
	for _, h := range resp.Hits {
		name := h.BookID
		if b, ok := eng.Book(h.BookID); ok {
			name = b.Name
		}
		fmt.Printf("  %s %d:%d  %s\n", name, h.Chapter, h.Verse, h.Snippet)
	}
	return nil
}

// BooksCmd lists corpus books.
type BooksCmd struct {
	Group string `enum:",canon,apocrypha,pseudepigrapha" default:"" help:"Restrict to one corpus group"`
	JSON  bool   `help:"Emit JSON instead of text"`
}

func (c *BooksCmd) Run() error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	var books []*corpus.Book
	if c.Group != "" {
		books = eng.BooksByGroup(canon.Group(c.Group))
	} else {
		books, err = eng.LoadCorpus()
		if err != nil {
			return err
		}
	}

	if c.JSON {
		return printJSON(books)
	}
	for _, b := range books {
		fmt.Printf("%-16s %-22s %s  (%d chapters)\n", b.ID, b.Name, b.Group, len(b.Chapters))
	}
	return nil
}

// SacredCmd rewrites text with the sacred-name rule table. Text comes
// from the argument or, when absent, from stdin.
type SacredCmd struct {
	Text string `arg:"" optional:"" help:"Text to transform; reads stdin when omitted"`
}

func (c *SacredCmd) Run() error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	if c.Text != "" {
		fmt.Println(eng.ApplySacredNames(c.Text))
		return nil
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fmt.Println(eng.ApplySacredNames(scanner.Text()))
	}
	return scanner.Err()
}

// InfoCmd prints corpus metadata.
type InfoCmd struct {
	JSON bool `help:"Emit JSON instead of text"`
}

func (c *InfoCmd) Run() error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	meta, err := eng.CorpusMetadata()
	if err != nil {
		return err
	}

	if c.JSON {
		return printJSON(map[string]any{
			"metadata":      meta,
			"sqlite_driver": sqlite.DriverType(),
		})
	}

	fmt.Printf("Books:    %d\n", meta.TotalBooks)
	fmt.Printf("Verses:   %d\n", meta.TotalVerses)
	fmt.Printf("Version:  %s\n", meta.Version)
	fmt.Printf("Build:    %s (%s)\n", meta.BuildID, meta.BuiltAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Printf("SQLite:   %s driver\n", sqlite.DriverType())
	return nil
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("scripture version %s\n", version)
	return nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func initLogging() {
	level := logging.LevelWarn
	switch CLI.LogLevel {
	case "debug":
		level = logging.LevelDebug
	case "info":
		level = logging.LevelInfo
	case "error":
		level = logging.LevelError
	}
	format := logging.FormatText
	if CLI.LogFormat == "json" {
		format = logging.FormatJSON
	}
	logging.InitLogger(level, format)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("scripture"),
		kong.Description("Scripture reference parsing, lookup, and search"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)
	initLogging()
	err := ctx.Run(ctx)
	ctx.FatalIfErrorf(err)
}
