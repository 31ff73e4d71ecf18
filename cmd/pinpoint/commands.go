package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/agnivade/levenshtein"
	"github.com/jakopako/pinpoint/internal/config"
	"github.com/jakopako/pinpoint/internal/dom"
	"github.com/jakopako/pinpoint/internal/fetch"
	"github.com/jakopako/pinpoint/internal/history"
	"github.com/jakopako/pinpoint/internal/output"
	"github.com/jakopako/pinpoint/internal/picker"
	"github.com/jakopako/pinpoint/internal/selector"
	"github.com/jakopako/pinpoint/internal/utils"
	"github.com/jakopako/pinpoint/internal/xpatheval"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/net/html"
)

// page bundles the two views of one loaded document: the selector engine's
// tree and the goquery document used to locate targets by CSS.
type page struct {
	ref string
	doc *dom.Document
	gq  *goquery.Document
}

func loadConfig(path string) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if path == "" {
		cfg = config.Default()
	} else if cfg, err = config.NewConfigFromFile(path); err != nil {
		return nil, err
	}
	slog.Debug("effective config", slog.String("config", cfg.String()))
	return cfg, nil
}

// loadPage fetches ref (URL or file path, depending on the fetcher type) and
// parses it into both tree views.
func loadPage(ctx context.Context, fc *fetch.FetcherConfig, ref string) (*page, error) {
	fetcher, err := fetch.NewFetcher(fc)
	if err != nil {
		return nil, fmt.Errorf("error creating fetcher: %v", err)
	}
	defer fetcher.Cancel()

	htmlStr, err := fetcher.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	root, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		return nil, err
	}
	return &page{
		ref: ref,
		doc: dom.NewDocument(root),
		gq:  goquery.NewDocumentFromNode(root),
	}, nil
}

// findTarget locates the element the one-off CSS query matches and
// translates it into the selector engine's tree.
func (p *page) findTarget(css string) (*dom.Node, error) {
	sel := p.gq.Find(css)
	if len(sel.Nodes) == 0 {
		return nil, fmt.Errorf("no element matches %q on %s", css, p.ref)
	}
	if len(sel.Nodes) > 1 {
		slog.Warn(fmt.Sprintf("%q matches %d elements, using the first", css, len(sel.Nodes)))
	}
	n := p.doc.FromHTMLNode(sel.Nodes[0])
	if n == nil {
		return nil, fmt.Errorf("element matched by %q is not part of the parsed tree", css)
	}
	return n, nil
}

type GenerateCmd struct {
	URL         string `short:"u" help:"The URL of the page containing the target element." xor:"source" required:""`
	File        string `short:"f" help:"A local HTML file containing the target element." xor:"source"`
	Css         string `short:"t" name:"css" help:"A one-off CSS selector locating the target element on the current page." required:""`
	Config      string `short:"c" help:"The configuration file to use." completion:"<file>"`
	All         bool   `short:"a" help:"Print the full ranked candidate table instead of only the best selector."`
	Interactive bool   `short:"i" help:"Pick the selector interactively from the ranked candidates."`
	NoHistory   bool   `help:"Do not record the generated selector in the history database."`
}

func (g *GenerateCmd) Run() error {
	cfg, err := loadConfig(g.Config)
	if err != nil {
		slog.Error(fmt.Sprintf("error reading config: %v", err))
		return err
	}
	ref := g.URL
	if g.File != "" {
		ref = g.File
		cfg.Fetcher.Type = fetch.FileFetcherType
	}

	p, err := loadPage(context.Background(), &cfg.Fetcher, ref)
	if err != nil {
		slog.Error(fmt.Sprintf("%v", err))
		return err
	}
	target, err := p.findTarget(g.Css)
	if err != nil {
		slog.Error(fmt.Sprintf("%v", err))
		return err
	}

	gen := selector.NewGenerator(xpatheval.NewEngine(), cfg.Generator)
	sel, score, err := gen.GenerateScored(target)
	if err != nil {
		slog.Error(fmt.Sprintf("%v", err))
		return err
	}
	cands, err := gen.Candidates(target)
	if err != nil {
		return err
	}

	if g.All {
		printCandidateTable(cands)
	}
	if g.Interactive {
		picked, err := picker.Pick(cands)
		if err != nil {
			return err
		}
		if strings.Contains(sel, selector.CompoundSeparator) {
			slog.Warn("target is inside a shadow tree, interactive choice applies to the innermost segment only")
		} else {
			sel = picked.Selector
			score = picked.Score
		}
	}

	record := output.Record{
		PageURL:   ref,
		Target:    g.Css,
		Selector:  sel,
		Score:     score,
		InnerText: utils.ShortenString(dom.NormalizeSpace(target.InnerText()), 100),
	}
	writer, err := output.NewWriter(&cfg.Writer)
	if err != nil {
		slog.Error(err.Error())
		return err
	}
	recordChan := make(chan output.Record, 1)
	recordChan <- record
	close(recordChan)
	writer.Write(recordChan)

	if !g.NoHistory {
		if err := recordHistory(cfg.HistoryDB, record); err != nil {
			slog.Warn(fmt.Sprintf("could not record history: %v", err))
		}
	}
	return nil
}

func recordHistory(dbPath string, r output.Record) error {
	store, err := history.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Add(history.Entry{
		Selector:  r.Selector,
		PageURL:   r.PageURL,
		InnerText: r.InnerText,
	})
}

func printCandidateTable(cands []selector.Candidate) {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Score", "Steps", "Selector")
	for _, c := range cands {
		table.Append([]string{strconv.Itoa(c.Score), strconv.Itoa(c.Steps()), c.Selector})
	}
	table.Render()
}

type ResolveCmd struct {
	URL      string `short:"u" help:"The URL of the page to resolve against." xor:"source" required:""`
	File     string `short:"f" help:"A local HTML file to resolve against." xor:"source"`
	Selector string `short:"s" help:"The selector to resolve, possibly compound (doc|shadowPath|...)." required:""`
	Config   string `short:"c" help:"The configuration file to use." completion:"<file>"`
}

func (r *ResolveCmd) Run() error {
	cfg, err := loadConfig(r.Config)
	if err != nil {
		return err
	}
	ref := r.URL
	if r.File != "" {
		ref = r.File
		cfg.Fetcher.Type = fetch.FileFetcherType
	}

	p, err := loadPage(context.Background(), &cfg.Fetcher, ref)
	if err != nil {
		slog.Error(fmt.Sprintf("%v", err))
		return err
	}

	el, err := selector.Resolve(xpatheval.NewEngine(), p.doc, r.Selector)
	if err != nil {
		slog.Error(fmt.Sprintf("%v", err))
		return err
	}
	fmt.Printf("%s\n", selector.AbsolutePath(el))
	if text := dom.NormalizeSpace(el.InnerText()); text != "" {
		fmt.Printf("text: %s\n", utils.ShortenString(text, 100))
	}
	return nil
}

type CompareCmd struct {
	FileA  string `arg:"" help:"First HTML file." completion:"<file>"`
	FileB  string `arg:"" help:"Second, structurally similar HTML file." completion:"<file>"`
	Css    string `short:"t" name:"css" help:"A one-off CSS selector matching the structurally equivalent target on both pages." required:""`
	Config string `short:"c" help:"The configuration file to use." completion:"<file>"`
}

// Run generates a selector on both pages and reports whether the template
// scenario holds: equivalent targets on similar pages should yield textually
// identical selectors.
func (cc *CompareCmd) Run() error {
	cfg, err := loadConfig(cc.Config)
	if err != nil {
		return err
	}
	cfg.Fetcher.Type = fetch.FileFetcherType

	gen := selector.NewGenerator(xpatheval.NewEngine(), cfg.Generator)
	selectors := make([]string, 2)
	for i, ref := range []string{cc.FileA, cc.FileB} {
		p, err := loadPage(context.Background(), &cfg.Fetcher, ref)
		if err != nil {
			return err
		}
		target, err := p.findTarget(cc.Css)
		if err != nil {
			return err
		}
		if selectors[i], err = gen.Generate(target); err != nil {
			return err
		}
	}

	fmt.Printf("a: %s\nb: %s\n", selectors[0], selectors[1])
	if selectors[0] == selectors[1] {
		fmt.Println("selectors are identical")
		return nil
	}
	dist := levenshtein.ComputeDistance(selectors[0], selectors[1])
	fmt.Printf("selectors differ (levenshtein distance %d)\n", dist)
	return fmt.Errorf("selector is not stable across the two pages")
}

type HistoryCmd struct {
	Config string `short:"c" help:"The configuration file to use." completion:"<file>"`
}

func (h *HistoryCmd) Run() error {
	cfg, err := loadConfig(h.Config)
	if err != nil {
		return err
	}
	store, err := history.Open(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.List()
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Timestamp", "Page", "Selector", "Text")
	for _, e := range entries {
		table.Append([]string{strconv.FormatInt(e.Timestamp, 10), e.PageURL, e.Selector, utils.ShortenString(e.InnerText, 40)})
	}
	table.Render()
	return nil
}
