package cmdline_test

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jpvetterli/cmdline"
)

func ExampleParse() {
	parsed := cmdline.Parse(&cmdline.CommandLineSettings{
		Program: "greet",
		Options: map[string]*cmdline.OptionDeclaration{
			"loud": {ShortName: "l"},
			"name": {Type: cmdline.StringType, Position: cmdline.Pos(0)},
		},
	}, []string{"-l", "world"})

	fmt.Printf("loud=%v name=%v\n", parsed.Options["loud"], parsed.Options["name"])
	// Output: loud=true name=world
}

func ExampleParse_commands() {
	parsed := cmdline.Parse(&cmdline.CommandLineSettings{
		Program: "vcs",
		Options: map[string]*cmdline.OptionDeclaration{
			"verbose": {ShortName: "v"},
		},
		Commands: map[string]*cmdline.CommandDeclaration{
			"commit": {Options: map[string]*cmdline.OptionDeclaration{
				"message": {Type: cmdline.StringType, ShortName: "m", Required: true},
			}},
		},
	}, []string{"commit", "-m", "initial", "-v"})

	fmt.Println(parsed.CommandName, parsed.Options["message"], parsed.Options["verbose"])
	// Output: commit initial true
}

func ExampleRespond() {
	color.NoColor = true

	resolver := cmdline.NewResolver(&cmdline.CommandLineSettings{
		Program: "tool",
		Options: map[string]*cmdline.OptionDeclaration{
			"out": {Type: cmdline.StringType, Description: "Where to write."},
		},
	})
	parsed := resolver.Parse([]string{"--nope"})
	status := cmdline.Respond(os.Stdout, parsed, resolver)
	fmt.Println("status:", status)

	// Output:
	// Option '--nope' was unrecognized.
	//
	// Usage:
	//   tool [options]
	//
	// Options:
	//   --out <out>  Where to write.
	//   -h, --help   Prints this message.
	// status: 1
}

func ExampleParse_groups() {
	settings := &cmdline.CommandLineSettings{
		Program:      "net",
		DefaultGroup: "client",
		Options: map[string]*cmdline.OptionDeclaration{
			"connect": {Type: cmdline.StringType, Groups: []string{"client"}},
			"listen":  {Type: cmdline.StringType, Groups: []string{"server"}},
		},
	}

	parsed := cmdline.Parse(settings, []string{"--listen", ":8080"})
	fmt.Println(parsed.Group, parsed.Options["listen"])

	parsed = cmdline.Parse(settings, []string{"--connect", "host:8080", "--listen", ":8080"})
	fmt.Println(parsed.Error)
	// Output:
	// server :8080
	// Option '--listen' conflicts with other options.
}
