package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/goliatone/go-batmanform/pkg/lint"
	"github.com/goliatone/go-batmanform/pkg/model"
	pkgopenapi "github.com/goliatone/go-batmanform/pkg/openapi"
	"github.com/goliatone/go-batmanform/pkg/schema"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	openapiDoc := flag.Bool("openapi", false, "treat paths as OpenAPI documents and lint every operation form")
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-openapi] [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint form schemas. Without paths the embedded dashboard schemas are checked.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	linter, err := lint.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "configure linter: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	paths := flag.Args()

	var violations []violation
	switch {
	case len(paths) == 0:
		store, err := schema.Embedded()
		if err != nil {
			fmt.Fprintf(os.Stderr, "load embedded schemas: %v\n", err)
			os.Exit(1)
		}
		for _, id := range store.IDs() {
			entry, _ := store.Entry(id)
			violations = append(violations, lintSchema(linter, entry.Source.Location(), entry.Schema)...)
		}
	case *openapiDoc:
		for _, path := range paths {
			linted, err := lintDocument(ctx, linter, path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
				os.Exit(1)
			}
			violations = append(violations, linted...)
		}
	default:
		for _, path := range paths {
			form, err := schema.LoadFile(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
				os.Exit(1)
			}
			violations = append(violations, lintSchema(linter, path, form)...)
		}
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintDocument(ctx context.Context, linter *lint.Linter, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	doc, err := pkgopenapi.NewDocument(pkgopenapi.SourceFromFile(path), raw)
	if err != nil {
		return nil, fmt.Errorf("construct document: %w", err)
	}

	refs, err := pkgopenapi.Operations(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}

	var result []violation
	for _, ref := range refs {
		form, err := pkgopenapi.FromDocument(ctx, doc, ref.ID)
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", ref.ID, err)
		}
		result = append(result, lintSchema(linter, path+"#"+ref.ID, form)...)
	}
	return result, nil
}

func lintSchema(linter *lint.Linter, file string, form model.FormSchema) []violation {
	issues := linter.Lint(form)
	result := make([]violation, 0, len(issues))
	for _, issue := range issues {
		result = append(result, violation{file: file, location: issue.Path, message: issue.Message})
	}
	return result
}
