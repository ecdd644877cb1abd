package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/goliatone/go-batmanform"
	"github.com/goliatone/go-batmanform/internal/slogx"
	"github.com/goliatone/go-batmanform/pkg/model"
	pkgopenapi "github.com/goliatone/go-batmanform/pkg/openapi"
	"github.com/goliatone/go-batmanform/pkg/renderers/tui"
	"github.com/goliatone/go-batmanform/pkg/schema"
)

func main() {
	schemaFile := flag.String("schema", "", "schema file (.json or .yaml) to render")
	schemaID := flag.String("id", "department", "embedded schema id to render when -schema and -openapi are empty")
	document := flag.String("openapi", "", "OpenAPI document path or URL")
	operation := flag.String("operation", "", "operation ID to build the form from, required with -openapi")
	renderer := flag.String("renderer", batmanform.RendererVanilla, "renderer to use (vanilla or tui)")
	format := flag.String("format", string(tui.OutputFormatJSON), "tui output format (json, form or pretty)")
	output := flag.String("output", "", "output file (stdout if empty)")
	list := flag.Bool("list", false, "list embedded schema ids, or the operations of -openapi, and exit")
	debug := flag.Bool("debug", false, "dump the resolved schema to stderr")
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags]\n\nRender a form schema as HTML or as terminal prompts.\n\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slogx.ContextHandler{
		Handler: slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}),
	}))

	ctx := context.Background()

	if *list {
		if err := listSources(ctx, *document); err != nil {
			fail(ctx, "could not list sources", err)
		}
		return
	}

	form, err := resolveSchema(ctx, *schemaFile, *schemaID, *document, *operation)
	if err != nil {
		fail(ctx, "could not resolve schema", err)
	}
	if *debug {
		spew.Fdump(os.Stderr, form)
	}

	registry, err := batmanform.NewRegistry(tui.WithOutputFormat(tui.OutputFormat(*format)))
	if err != nil {
		fail(ctx, "could not configure renderers", err)
	}

	slog.DebugContext(ctx, "rendering form", slog.String("form", form.ID), slog.String("renderer", *renderer))

	out, err := batmanform.RenderSchema(ctx, registry, *renderer, form, batmanform.RenderOptions{})
	if errors.Is(err, tui.ErrNotSubmitted) || errors.Is(err, tui.ErrAborted) {
		slog.InfoContext(ctx, "form not submitted")
		os.Exit(1)
	}
	if err != nil {
		fail(ctx, "could not render form", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			fail(ctx, "could not write output", err)
		}
		slog.InfoContext(ctx, "form written", slog.String("path", *output))
		return
	}
	fmt.Println(string(out))
}

func resolveSchema(ctx context.Context, file, id, document, operation string) (model.FormSchema, error) {
	switch {
	case strings.TrimSpace(file) != "":
		return schema.LoadFile(file)
	case strings.TrimSpace(document) != "":
		if strings.TrimSpace(operation) == "" {
			return model.FormSchema{}, errors.New("-operation is required with -openapi")
		}
		doc, err := loadDocument(ctx, document)
		if err != nil {
			return model.FormSchema{}, err
		}
		return pkgopenapi.FromDocument(ctx, doc, operation)
	default:
		store, err := schema.Embedded()
		if err != nil {
			return model.FormSchema{}, err
		}
		return store.Lookup(id)
	}
}

func listSources(ctx context.Context, document string) error {
	if strings.TrimSpace(document) == "" {
		store, err := schema.Embedded()
		if err != nil {
			return err
		}
		for _, id := range store.IDs() {
			fmt.Println(id)
		}
		return nil
	}

	doc, err := loadDocument(ctx, document)
	if err != nil {
		return err
	}
	refs, err := pkgopenapi.Operations(ctx, doc)
	if err != nil {
		return err
	}
	for _, ref := range refs {
		fmt.Printf("%s\t%s %s\t%s\n", ref.ID, ref.Method, ref.Path, ref.Summary)
	}
	return nil
}

func loadDocument(ctx context.Context, raw string) (pkgopenapi.Document, error) {
	src := parseSource(raw)
	return pkgopenapi.NewLoader(pkgopenapi.WithHTTPFallback(30*time.Second)).Load(ctx, src)
}

func parseSource(raw string) pkgopenapi.Source {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return pkgopenapi.SourceFromURL(path)
	}
	return pkgopenapi.SourceFromFile(path)
}

func fail(ctx context.Context, msg string, err error) {
	slog.ErrorContext(ctx, msg, slogx.Error(errors.WithStack(err)))
	os.Exit(1)
}
