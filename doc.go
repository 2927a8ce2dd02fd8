/*

Package cmdline is a declarative command-line argument parser and help-text
renderer for console programs. A program describes its options, positional
arguments, sub-commands, groups, and aliases in a static configuration; the
package consumes the raw argument vector, resolves each token against the
configuration, converts and validates values, and produces a single result
with the parsed options, the matched command, the detected option group, and
error/help signaling.

A first example shows a program with a boolean switch and a string option:

    package main

    import (
    	"fmt"
    	"os"
    	"strings"

    	"github.com/jpvetterli/cmdline"
    )

    func main() {
    	resolver := cmdline.NewResolver(&cmdline.CommandLineSettings{
    		Program: "greet",
    		Options: map[string]*cmdline.OptionDeclaration{
    			"loud": {ShortName: "l", Description: "shout the greeting"},
    			"name": {Type: cmdline.StringType, Position: cmdline.Pos(0), Required: true},
    		},
    	})
    	parsed := resolver.Parse(os.Args[1:])
    	if parsed.Error != "" || parsed.Help {
    		os.Exit(cmdline.Respond(os.Stderr, parsed, resolver))
    	}
    	greeting := fmt.Sprintf("hello, %s", parsed.Options["name"])
    	if parsed.Options["loud"] == true {
    		greeting = strings.ToUpper(greeting)
    	}
    	fmt.Println(greeting)
    }

The user can now say any of

    greet world
    greet --name world
    greet -l world
    greet --name=world --loud

and "greet -h" (or "--help", or "-?") prints generated usage text, because a
help option is injected automatically when the configuration declares none.

Declarations

Every option is declared under a unique key, which is also the name used in
the result map. An option with no explicit type is a boolean switch, unless
it is declared passthru, rest, multiple, required, or positional, in which
case it is a string option. Number options yield int64 values. Long names
default to the key, so every option can be written as "--key value"; short
names are single characters; aliases add more long names. Name matching is
case-insensitive and treats underscores as hyphens, while the declared
casing is kept for display.

Positional options bind bare arguments by zero-based position. Two options
may share a position when their group sets are disjoint; the binder then
decides by the groups the other arguments have established, and complains
about an ambiguous argument when it cannot. A rest option collects all
otherwise-unmatched bare arguments, and a passthru option collects
everything after a literal "--" separator, unparsed.

Groups make options mutually exclusive: when group-tagged options are bound,
the set of groups they have in common shrinks, and an option whose groups
are disjoint from the surviving set is a conflict. The surviving group (or
the declared default group) also selects which required options are enforced
and which default values are filled in.

Commands

Commands give a program git-style sub-commands. Each command has its own
options and may nest further commands; options declared in an enclosing
scope stay visible inside ("general" options), while local declarations
shadow them. The first bare argument selects the command, recursively, and
the result reports the resolved command and its path. Option sets (named bundles
of option declarations) can be included by several commands to share
definitions.

Errors

Mistakes in the configuration itself (duplicate names, impossible flag
combinations, colliding positions) panic while the resolver is built: they
are bugs in the program, which cannot continue safely. Mistakes made by the
user never panic; they are reported in the parse result, one message at a
time, with a flag requesting help display and a suggested exit status. The
package performs no I/O and never exits the process; Respond is a
convenience that prints the message and help text and hands back the status.

Arguments of the form "@file" are response files: the file is read line by
line and its lines are spliced into the argument vector before parsing, with
blank lines and #-comments skipped.

*/
package cmdline
