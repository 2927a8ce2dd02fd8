package cmdline

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// PrintHelp renders the help text of a scope: description, a synthesized
// usage line, the visible commands, the visible options with their group
// annotations, and examples. Section headings are bold on capable terminals
// (color output follows the fatih/color global switches) and running text is
// wrapped to the terminal width when w is one, 80 columns otherwise.
//
// PrintHelp only reads resolver metadata; it works for the top-level scope
// and for any Command's embedded Resolver.
func PrintHelp(w io.Writer, r *Resolver) {
	width := helpWidth(w)
	heading := color.New(color.Bold)

	if r.description != "" {
		for _, line := range wordWrap(r.description, width) {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w)
	}

	heading.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", usageLine(r))

	if cmds := visibleCommands(r); len(cmds) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Commands:")
		nameWidth := 0
		for _, c := range cmds {
			if len(c.CommandName) > nameWidth {
				nameWidth = len(c.CommandName)
			}
		}
		for _, c := range cmds {
			summary := c.Summary
			if len(c.Aliases) > 0 {
				summary = strings.TrimSpace(summary + " (alias: " + strings.Join(c.Aliases, ", ") + ")")
			}
			if summary == "" {
				fmt.Fprintf(w, "  %s\n", c.CommandName)
			} else {
				fmt.Fprintf(w, "  %-*s  %s\n", nameWidth, c.CommandName, summary)
			}
		}
	}

	if opts := visibleOptions(r); len(opts) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Options:")
		syntaxWidth := 0
		syntaxes := make([]string, len(opts))
		for i, o := range opts {
			syntaxes[i] = optionSyntax(o)
			if len(syntaxes[i]) > syntaxWidth {
				syntaxWidth = len(syntaxes[i])
			}
		}
		for i, o := range opts {
			desc := o.Description
			if len(o.Groups) > 0 {
				desc = strings.TrimSpace(desc + " (group: " + strings.Join(o.Groups, ", ") + ")")
			}
			if desc == "" {
				fmt.Fprintf(w, "  %s\n", syntaxes[i])
			} else {
				fmt.Fprintf(w, "  %-*s  %s\n", syntaxWidth, syntaxes[i], desc)
			}
		}
	}

	if len(r.examples) > 0 {
		fmt.Fprintln(w)
		heading.Fprintln(w, "Examples:")
		for _, ex := range r.examples {
			fmt.Fprintf(w, "  %s\n", ex)
		}
	}
}

// usageLine synthesizes the one-line usage summary, unless the scope
// declares one explicitly.
func usageLine(r *Resolver) string {
	if r.usage != "" {
		return r.usage
	}
	s := r.displayName
	if s == "" {
		s = "command"
	}
	if r.hasCommands() {
		s += " <command>"
	}
	s += " [options]"

	positional := make([]*Option, 0)
	for _, o := range r.GetOptions("*") {
		if o.Position != nil && !o.Hidden {
			positional = append(positional, o)
		}
	}
	sort.Slice(positional, func(i, j int) bool { return *positional[i].Position < *positional[j].Position })
	for _, o := range positional {
		s += " " + o.UsageString()
	}
	if rest := r.RestOption(); rest != nil && rest.Position == nil && !rest.Hidden {
		s += " " + rest.UsageString()
	}
	if passthru := r.PassthruOption(); passthru != nil && !passthru.Hidden {
		placeholder := passthru.Param
		if placeholder == "" {
			placeholder = passthru.Key
		}
		s += " [-- <" + placeholder + ">]"
	}
	return s
}

// optionSyntax is the left column of an option line: short and long forms,
// value placeholder, multiplicity marker.
func optionSyntax(o *Option) string {
	placeholder := o.Param
	if placeholder == "" {
		placeholder = o.Key
	}
	if o.Position != nil || o.Rest {
		return o.UsageString()
	}

	var parts []string
	if o.ShortName != "" {
		parts = append(parts, "-"+o.ShortName)
	}
	if o.LongName != "" {
		parts = append(parts, "--"+o.LongName)
	}
	s := strings.Join(parts, ", ")
	if o.Type != BooleanType {
		s += " <" + placeholder + ">"
		if o.isList() {
			s += "[]"
		}
	}
	return s
}

func visibleCommands(r *Resolver) []*Command {
	var cmds []*Command
	for _, c := range r.Commands() {
		if !c.Hidden {
			cmds = append(cmds, c)
		}
	}
	return cmds
}

func visibleOptions(r *Resolver) []*Option {
	var opts []*Option
	for _, o := range r.GetOptions("*") {
		if !o.Hidden && !o.Passthru {
			opts = append(opts, o)
		}
	}
	return opts
}

// helpWidth is the wrap width for w: the terminal width when w is one, 80
// columns otherwise.
func helpWidth(w io.Writer) int {
	type fder interface{ Fd() uintptr }
	if f, ok := w.(fder); ok {
		fd := int(f.Fd())
		if term.IsTerminal(fd) {
			if cols, _, err := term.GetSize(fd); err == nil && cols > 20 {
				return cols
			}
		}
	}
	return 80
}

// wordWrap breaks text on spaces so that no line exceeds width.
func wordWrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		if len(line)+1+len(word) > width {
			lines = append(lines, line)
			line = word
			continue
		}
		line += " " + word
	}
	return append(lines, line)
}
