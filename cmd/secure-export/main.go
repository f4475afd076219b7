package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/ebisu-dx/secure-export/commands"
)

var cli = []commands.Command{
	&commands.VersionCmd,
	&commands.ExportCmd,
	&commands.GetCmd,
	&commands.SheetsCmd,
}

var options = commands.Options{
	Debug: false,
}

func main() {
	flag.BoolVar(&options.Debug, "debug", options.Debug, "Enable debugging information")
	flag.Parse()

	args := flag.Args()

	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	if args[0] == "help" {
		if len(args) > 1 {
			if cmd := find(args[1]); cmd != nil {
				cmd.Help()
				return
			}

			fmt.Printf("\nInvalid command '%s'\n", args[1])
		}

		usage()
		return
	}

	cmd := find(args[0])
	if cmd == nil {
		fmt.Printf("\nInvalid command '%s'\n", args[0])
		usage()
		os.Exit(1)
	}

	if err := cmd.FlagSet().Parse(args[1:]); err != nil {
		fmt.Printf("\nError parsing command line: %v\n\n", err)
		os.Exit(1)
	}

	if err := cmd.Execute(&options); err != nil {
		log.Fatalf("%-5s %v", "FATAL", err)
	}
}

func find(name string) commands.Command {
	for _, cmd := range cli {
		if cmd.Name() == name {
			return cmd
		}
	}

	return nil
}

func usage() {
	fmt.Println()
	fmt.Println("  Usage: secure-export [--debug] <command> [options]")
	fmt.Println()
	fmt.Println("  Commands:")

	for _, cmd := range cli {
		fmt.Printf("    %-9s %s\n", cmd.Name(), cmd.Description())
	}

	fmt.Println()
	fmt.Println("  Use 'secure-export help <command>' for command specific information")
	fmt.Println()
}
