// Package main provides the entry point for the Picto compiler.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/picto-lang/picto/internal/driver"
	"github.com/picto-lang/picto/internal/errors"
	"github.com/picto-lang/picto/internal/parser"
	"github.com/picto-lang/picto/internal/project"
	"github.com/picto-lang/picto/internal/watch"
)

func main() {
	var (
		showVersion = flag.Bool("version", false, "show version information")
		output      = flag.String("o", "", "write JavaScript to file instead of stdout")
		noOptimize  = flag.Bool("no-optimize", false, "skip the IR optimizer")
		printAST    = flag.Bool("print-ast", false, "parse the input and print the syntax tree")
		watchMode   = flag.Bool("watch", false, "recompile whenever the input file changes")
	)
	flag.Usage = showUsage
	flag.Parse()

	if *showVersion {
		fmt.Printf("Picto Compiler v%s\n", project.Version)
		return
	}

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one input file")
		showUsage()
		os.Exit(1)
	}
	inputFile := args[0]

	opts := driver.Options{Optimize: !*noOptimize}
	outPath := *output
	if path, ok := project.Find(inputFile); ok {
		manifest, err := project.Load(path)
		if err != nil {
			log.Fatalf("Manifest error: %v", err)
		}
		if !manifest.Build.Optimize {
			opts.Optimize = false
		}
		if outPath == "" {
			outPath = manifest.Build.Out
		}
	}

	if *printAST {
		if err := printSyntaxTree(inputFile); err != nil {
			fatal(err)
		}
		return
	}

	if err := compileFile(inputFile, outPath, opts); err != nil {
		fatal(err)
	}

	if *watchMode {
		if err := watchFile(inputFile, outPath, opts); err != nil {
			log.Fatalf("Watch failed: %v", err)
		}
	}
}

func showUsage() {
	fmt.Println("Picto Compiler - emoji in, JavaScript out")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("    pictoc [OPTIONS] <INPUT_FILE>")
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("    -version      Show version information")
	fmt.Println("    -o FILE       Write JavaScript to FILE instead of stdout")
	fmt.Println("    -no-optimize  Skip the IR optimizer")
	fmt.Println("    -print-ast    Parse the input and print the syntax tree")
	fmt.Println("    -watch        Recompile whenever the input file changes")
	fmt.Println()
	fmt.Println("A picto.toml next to the input file configures the output path,")
	fmt.Println("the optimizer, and the accepted compiler versions.")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("    pictoc hello.picto")
	fmt.Println("    pictoc -o hello.js -watch hello.picto")
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, errors.Render(err, os.Stderr))
	os.Exit(1)
}

func compileFile(filename, outPath string, opts driver.Options) error {
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	js, err := driver.Compile(filename, string(source), opts)
	if err != nil {
		return err
	}
	if outPath == "" {
		fmt.Println(js)
		return nil
	}
	if err := os.WriteFile(outPath, []byte(js+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func printSyntaxTree(filename string) error {
	source, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	prog, err := parser.Parse(filename, string(source))
	if err != nil {
		return err
	}
	for _, stmt := range prog.Statements {
		fmt.Println(stmt.String())
	}
	return nil
}

// watchFile recompiles on every write to the input file. The watcher
// observes the directory so editors that replace the file atomically are
// still seen.
func watchFile(filename, outPath string, opts driver.Options) error {
	w, err := watch.New()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(filename)); err != nil {
		return err
	}
	target := filepath.Clean(filename)
	fmt.Fprintf(os.Stderr, "watching %s\n", target)
	for {
		select {
		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Path) != target || ev.Op&(watch.OpWrite|watch.OpCreate) == 0 {
				continue
			}
			if err := compileFile(filename, outPath, opts); err != nil {
				fmt.Fprintln(os.Stderr, errors.Render(err, os.Stderr))
				continue
			}
			fmt.Fprintf(os.Stderr, "recompiled %s\n", strings.TrimPrefix(target, "./"))
		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			return err
		}
	}
}
