package cmdline

import (
	"fmt"
	"os"
	"strings"
)

// ParsedArgument is one token of the raw argument vector. A token either
// carries a parameter descriptor (it looked like an option switch) or is a
// bare value. Inline values, whether given with "=" or consumed by
// look-ahead, travel in Argument.
type ParsedArgument struct {
	Text      string
	Parameter *ParsedParameter
	Argument  *ParsedArgumentValue
}

// ParsedParameter describes the switch part of a token. ParameterName is the
// switch as written (without any inline value), used verbatim in messages.
// Exactly one of ShortName, LongName, or Passthru is meaningful.
type ParsedParameter struct {
	ParameterName string
	ShortName     string
	LongName      string

	// No is set when the long name starts with "no-". The binder first tries
	// the literal name, so a declared "no-color" option still wins over a
	// negated "color".
	No bool

	// Passthru marks the "--" separator token, which captures every
	// following raw argument as its value set.
	Passthru bool
}

// ParsedArgumentValue is the value part of a token. Value is the raw text;
// Values is set when the text was a comma list ("a,b,c"), with empty
// segments dropped.
type ParsedArgumentValue struct {
	Value  string
	Values []string
}

// maxResponseDepth caps @file nesting so that mutually-including response
// files terminate with an error instead of exhausting the stack.
const maxResponseDepth = 8

// Tokenize turns an argument vector (program name already stripped) into the
// ordered token stream consumed by a Resolver's Parse. Response files
// ("@file") are expanded in place before pattern matching: the file is read
// line by line, surrounding space trimmed, blank lines and lines starting
// with '#' skipped. The only error condition is a response-file problem;
// everything else becomes a token for the binder to judge.
func Tokenize(args []string) ([]*ParsedArgument, error) {
	expanded, err := expandResponseFiles(args, 0)
	if err != nil {
		return nil, err
	}

	tokens := make([]*ParsedArgument, 0, len(expanded))
	for i := 0; i < len(expanded); i++ {
		arg := expanded[i]

		if arg == "--" {
			tok := &ParsedArgument{
				Text:      arg,
				Parameter: &ParsedParameter{ParameterName: "--", Passthru: true},
			}
			if rest := expanded[i+1:]; len(rest) > 0 {
				tok.Argument = &ParsedArgumentValue{
					Value:  rest[0],
					Values: append([]string(nil), rest...),
				}
			}
			tokens = append(tokens, tok)
			break
		}

		// A leading dash marks a switch unless the whole token is a
		// negative number, which is a plausible option value.
		if len(arg) > 1 && arg[0] == '-' && !isNumericText(arg) {
			tokens = append(tokens, parameterToken(arg))
			continue
		}

		tokens = append(tokens, valueToken(arg))
	}
	return tokens, nil
}

// parameterToken splits a switch into its name and optional inline value.
func parameterToken(arg string) *ParsedArgument {
	name := strings.TrimLeft(arg, "-")
	inline := ""
	hasInline := false
	if idx := strings.Index(name, "="); idx >= 0 {
		inline = name[idx+1:]
		name = name[:idx]
		hasInline = true
	}

	dashes := "--"
	if !strings.HasPrefix(arg, "--") {
		dashes = "-"
	}
	param := &ParsedParameter{ParameterName: dashes + name}
	if dashes == "-" && len([]rune(name)) == 1 {
		param.ShortName = name
	} else {
		param.LongName = name
		param.No = strings.HasPrefix(foldName(name), "no-")
	}

	tok := &ParsedArgument{Text: arg, Parameter: param}
	if hasInline {
		tok.Argument = argumentValue(inline)
	}
	return tok
}

// valueToken wraps a bare argument, expanding comma lists.
func valueToken(arg string) *ParsedArgument {
	return &ParsedArgument{Text: arg, Argument: argumentValue(arg)}
}

func argumentValue(text string) *ParsedArgumentValue {
	v := &ParsedArgumentValue{Value: text}
	if strings.Contains(text, ",") {
		var values []string
		for _, part := range strings.Split(text, ",") {
			if part != "" {
				values = append(values, part)
			}
		}
		if len(values) > 1 {
			v.Values = values
		}
	}
	return v
}

// isNumericText reports whether s is a plain decimal number, optionally
// signed, with at most one dot.
func isNumericText(s string) bool {
	start := 0
	if s != "" && (s[0] == '-' || s[0] == '+') {
		start = 1
	}
	digits, dot := false, false
	for i := start; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
			digits = true
		case s[i] == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return digits
}

// expandResponseFiles splices the lines of @file arguments into the vector.
func expandResponseFiles(args []string, depth int) ([]string, error) {
	expanded := make([]string, 0, len(args))
	for _, arg := range args {
		if !strings.HasPrefix(arg, "@") || arg == "@" {
			expanded = append(expanded, arg)
			continue
		}
		if depth >= maxResponseDepth {
			return nil, fmt.Errorf(`response files nested more than %d levels deep at "%s"`, maxResponseDepth, arg)
		}
		data, err := os.ReadFile(arg[1:])
		if err != nil {
			return nil, fmt.Errorf(`cannot read response file "%s": %v`, arg, err)
		}
		var lines []string
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			lines = append(lines, line)
		}
		nested, err := expandResponseFiles(lines, depth+1)
		if err != nil {
			return nil, err
		}
		expanded = append(expanded, nested...)
	}
	return expanded, nil
}
