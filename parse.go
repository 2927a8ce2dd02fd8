package cmdline

import (
	"fmt"
	"io"
)

// CommandLineSettings is the static configuration of a command-line parser:
// the top-level options and commands, reusable option sets, and the text
// used when rendering help. Settings are read once by NewResolver and not
// referenced afterwards.
type CommandLineSettings struct {
	Options    map[string]*OptionDeclaration
	Commands   map[string]*CommandDeclaration
	OptionSets map[string]*OptionSetDeclaration

	// Include names option sets added to the top-level scope.
	Include []string

	DefaultGroup string

	Program     string
	Usage       string
	Description string
	Examples    []string
}

// NewResolver builds the lookup tree for the settings. It panics on any
// configuration error (duplicate or malformed names, invalid flag
// combinations, colliding positions): such mistakes are bugs in the calling
// program and must never surface as parse results. The returned resolver is
// immutable and may be shared by concurrent Parse calls.
func NewResolver(settings *CommandLineSettings) *Resolver {
	r := newScope(nil)
	r.optionSets = settings.OptionSets
	r.defaultGroup = settings.DefaultGroup
	r.displayName = settings.Program
	r.usage = settings.Usage
	r.description = settings.Description
	r.examples = settings.Examples

	r.includeOptionSets(settings.Include)
	for _, key := range sortedOptionKeys(settings.Options) {
		r.AddOption(key, settings.Options[key])
	}
	for _, name := range sortedCommandKeys(settings.Commands) {
		r.AddCommand(name, settings.Commands[name])
	}
	r.injectHelpOption()
	return &r
}

// Parse tokenizes args and runs the binder and the evaluator against this
// resolver. A parse allocates all of its own state, so any number of parses
// may run concurrently against one resolver.
func (r *Resolver) Parse(args []string) *ParsedCommandLine {
	tokens, err := Tokenize(args)
	if err != nil {
		return &ParsedCommandLine{
			Options: make(map[string]interface{}),
			Error:   err.Error(),
			Help:    true,
			Status:  -1,
		}
	}
	return evaluate(bind(r, tokens))
}

// Parse builds a resolver for the settings and parses args with it. Programs
// parsing more than once should build the resolver themselves.
func Parse(settings *CommandLineSettings, args []string) *ParsedCommandLine {
	return NewResolver(settings).Parse(args)
}

// Respond writes the recorded error and/or the help text for a parse result
// to w, marks the result handled, and returns the process exit status: the
// result's status, with -1 mapped to 1. It never terminates the process;
// that stays with the caller.
//
//	parsed := resolver.Parse(os.Args[1:])
//	if parsed.Error != "" || parsed.Help {
//		os.Exit(cmdline.Respond(os.Stderr, parsed, resolver))
//	}
func Respond(w io.Writer, parsed *ParsedCommandLine, r *Resolver) int {
	if parsed.Error != "" {
		fmt.Fprintln(w, parsed.Error)
	}
	if parsed.Help {
		scope := r
		if parsed.Command != nil {
			scope = &parsed.Command.Resolver
		}
		if parsed.Error != "" {
			fmt.Fprintln(w)
		}
		PrintHelp(w, scope)
	}
	parsed.Handled = true
	if parsed.Status == -1 {
		return 1
	}
	return parsed.Status
}
