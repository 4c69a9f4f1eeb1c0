// Command hashqlcore is a small interactive front end over the type
// lattice core: it loads a named universe of types from YAML and lets
// a user query join/meet/subtype/projection against it, either
// one-shot via a subcommand or interactively via a line-editing REPL.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	bold   = color.New(color.Bold).SprintFunc()
)

func main() {
	var (
		versionFlag = flag.Bool("version", false, "Print version information")
		helpFlag    = flag.Bool("help", false, "Show help")
		universe    = flag.String("universe", "", "Path to a YAML universe file to preload")
	)
	flag.Parse()

	if *versionFlag {
		fmt.Printf("%s %s\n", bold("hashqlcore"), "dev")
		return
	}
	if *helpFlag || flag.NArg() == 0 {
		printHelp()
		return
	}

	switch flag.Arg(0) {
	case "repl":
		runREPL(*universe)
	case "check":
		if flag.NArg() < 2 {
			fmt.Fprintf(os.Stderr, "%s: missing universe file argument\n", red("Error"))
			fmt.Println("Usage: hashqlcore check <universe.yaml>")
			os.Exit(1)
		}
		if err := runCheck(flag.Arg(1)); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", red("Error"), err)
			os.Exit(1)
		}
		fmt.Println(green("ok"))
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", red("Error"), flag.Arg(0))
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Printf("%s - a small front end over the HashQL-style type lattice core\n\n", bold("hashqlcore"))
	fmt.Println("Usage:")
	fmt.Println("  hashqlcore [-universe <file.yaml>] repl   interactive lattice queries")
	fmt.Println("  hashqlcore check <file.yaml>              load and build a universe, report errors")
	fmt.Println()
	fmt.Println("Flags:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Printf("REPL commands once inside %s:\n", cyan("repl"))
	fmt.Println("  join A B | meet A B | subtype A B | equiv A B")
	fmt.Println("  simplify A | project A.field | index A B")
	fmt.Println("  :load <file.yaml> | :list | :help | :quit")
}
