package cmdline

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// OptionType identifies the value type of an option. The zero value leaves
// the type to be inferred from the declaration: string if the option is
// declared passthru, rest, multiple, required, or positional; boolean
// otherwise.
type OptionType uint8

const (
	UnspecifiedType OptionType = iota
	BooleanType
	NumberType
	StringType
)

func (t OptionType) String() string {
	switch t {
	case BooleanType:
		return "boolean"
	case NumberType:
		return "number"
	case StringType:
		return "string"
	default:
		return "unspecified"
	}
}

// ConvertCallback transforms a raw string value before type conversion. It
// may return a string (converted normally afterwards) or a final typed value.
type ConvertCallback func(value string, parameterName string) (interface{}, error)

// ValidateCallback checks a converted value. A non-nil result (an error, a
// *CommandLineError, or anything else) rejects the value.
type ValidateCallback func(value interface{}, parameterName string, parsed *ParsedArgument) error

// DefaultValueCallback supplies a value for an option absent from the parse
// result. It receives the options accumulated so far and the selected group.
type DefaultValueCallback func(options map[string]interface{}, group string) interface{}

// ErrorCallback may rewrite an error raised for its option, for example to
// adjust the message or the exit status. Returning nil keeps the original.
type ErrorCallback func(err *CommandLineError) *CommandLineError

// OptionDeclaration describes one option of a CommandLineSettings or
// CommandDeclaration. All fields are optional; an empty declaration is a
// boolean option addressed by its key.
type OptionDeclaration struct {
	Type      OptionType
	LongName  string
	ShortName string
	Aliases   []string
	Position  *int

	Required bool
	Single   bool
	Multiple bool
	Passthru bool
	Rest     bool
	Help     bool
	Hidden   bool

	// Groups lists the option groups this option belongs to. An option with
	// no groups is valid in every group.
	Groups []string

	Param       string // value placeholder in help text, defaults to the key
	Description string

	Convert      ConvertCallback
	Validate     ValidateCallback
	Error        ErrorCallback
	DefaultValue DefaultValueCallback

	// Declaration sugar, compiled into the conversion/validation chain:
	// Match requires raw values to match a pattern, In restricts raw values
	// to an allow-list, Map rewrites raw values before conversion.
	// IgnoreCase applies to both In and Map.
	Match      *regexp.Regexp
	In         []string
	Map        map[string]interface{}
	IgnoreCase bool
}

// Pos is a convenience for writing Position fields in declaration literals.
func Pos(position int) *int {
	return &position
}

// Option is the resolved, immutable form of an OptionDeclaration. Options are
// built once by a Resolver and are exclusively owned by their declaring
// scope; they are safe to read from concurrent parses.
type Option struct {
	Key       string
	Type      OptionType
	LongName  string // declared casing, normalized
	ShortName string
	Aliases   []string
	Position  *int

	Required bool
	Single   bool
	Multiple bool
	Passthru bool
	Rest     bool
	Help     bool
	Hidden   bool

	Groups      []string
	Param       string
	Description string

	convert      ConvertCallback
	validate     ValidateCallback
	errorHook    ErrorCallback
	defaultValue DefaultValueCallback

	match      *regexp.Regexp
	in         []string
	mapping    map[string]interface{}
	ignoreCase bool

	hasConverter    bool
	hasValidator    bool
	hasDefaultValue bool
	hasCustomError  bool
}

// newOption validates decl and builds the resolved option. A nil error means
// the declaration is well formed; the caller panics otherwise, since a
// malformed declaration is a bug in the configuring program.
func newOption(key string, decl *OptionDeclaration) (*Option, error) {
	if key == "" {
		return nil, fmt.Errorf("option key must not be empty")
	}
	typ := decl.Type
	if typ == UnspecifiedType {
		if decl.Passthru || decl.Rest || decl.Multiple || decl.Required || decl.Position != nil {
			typ = StringType
		} else {
			typ = BooleanType
		}
	}

	if typ == BooleanType {
		switch {
		case decl.Multiple:
			return nil, fmt.Errorf(`boolean option "%s" cannot be declared multiple`, key)
		case decl.Passthru:
			return nil, fmt.Errorf(`boolean option "%s" cannot be declared passthru`, key)
		case decl.Rest:
			return nil, fmt.Errorf(`boolean option "%s" cannot be declared rest`, key)
		case decl.Convert != nil:
			return nil, fmt.Errorf(`boolean option "%s" cannot have a convert callback`, key)
		}
	}
	if decl.Help && typ != BooleanType {
		return nil, fmt.Errorf(`help option "%s" must be a boolean option`, key)
	}
	if decl.Single && (decl.Multiple || decl.Rest) {
		return nil, fmt.Errorf(`option "%s" cannot be both single and multiple`, key)
	}
	if decl.Help && (decl.Multiple || decl.Rest || decl.Passthru) {
		return nil, fmt.Errorf(`help option "%s" cannot be declared multiple, rest, or passthru`, key)
	}
	if decl.Position != nil && *decl.Position < 0 {
		return nil, fmt.Errorf(`option "%s" has a negative position %d`, key, *decl.Position)
	}

	shortName := strings.TrimSpace(decl.ShortName)
	if decl.ShortName != "" && !validShortName(shortName) {
		return nil, fmt.Errorf(`short name "%s" of option "%s" must be exactly one non-whitespace character`, decl.ShortName, key)
	}

	longName := normalizeName(decl.LongName)
	if decl.LongName != "" && !validName(longName) {
		return nil, fmt.Errorf(`long name "%s" of option "%s" is empty or contains whitespace`, decl.LongName, key)
	}
	// The key doubles as the long name when the declaration names nothing
	// explicitly, so every option can be addressed with explicit syntax.
	if longName == "" && shortName == "" {
		longName = normalizeName(key)
		if !validName(longName) {
			return nil, fmt.Errorf(`key "%s" is not usable as a long name`, key)
		}
	}

	aliases := make([]string, 0, len(decl.Aliases))
	for _, a := range decl.Aliases {
		na := normalizeName(a)
		if !validName(na) {
			return nil, fmt.Errorf(`alias "%s" of option "%s" is empty or contains whitespace`, a, key)
		}
		aliases = append(aliases, na)
	}

	o := &Option{
		Key:       key,
		Type:      typ,
		LongName:  longName,
		ShortName: shortName,
		Aliases:   aliases,
		Position:  decl.Position,

		Required: decl.Required,
		Single:   decl.Single,
		Multiple: decl.Multiple,
		Passthru: decl.Passthru,
		Rest:     decl.Rest,
		Help:     decl.Help,
		Hidden:   decl.Hidden,

		Groups:      append([]string(nil), decl.Groups...),
		Param:       decl.Param,
		Description: decl.Description,

		convert:      decl.Convert,
		validate:     decl.Validate,
		errorHook:    decl.Error,
		defaultValue: decl.DefaultValue,

		match:      decl.Match,
		in:         decl.In,
		mapping:    decl.Map,
		ignoreCase: decl.IgnoreCase,

		hasConverter:    decl.Convert != nil,
		hasValidator:    decl.Validate != nil,
		hasDefaultValue: decl.DefaultValue != nil,
		hasCustomError:  decl.Error != nil,
	}
	return o, nil
}

// isList reports whether the option accumulates a list of values. Passthru
// and rest options are inherently list-valued even when not declared
// multiple.
func (o *Option) isList() bool {
	return o.Multiple || o.Passthru || o.Rest
}

// parameterName returns the name used for the option in messages, preferring
// the explicit command-line syntax.
func (o *Option) parameterName() string {
	if o.LongName != "" {
		return "--" + o.LongName
	}
	if o.ShortName != "" {
		return "-" + o.ShortName
	}
	return o.Key
}

// wrapError routes err through the option's custom error callback, if any.
func (o *Option) wrapError(err *CommandLineError) *CommandLineError {
	if o != nil && o.hasCustomError {
		if rewritten := o.errorHook(err); rewritten != nil {
			return rewritten
		}
	}
	return err
}

// UsageString derives the canonical usage form of the option: required
// options render unbracketed, optional ones bracketed, positional and rest
// options bracketed regardless, with "[]" appended for multi-value options.
func (o *Option) UsageString() string {
	placeholder := o.Param
	if placeholder == "" {
		placeholder = o.Key
	}
	suffix := ""
	if o.isList() {
		suffix = "[]"
	}

	var s string
	switch {
	case o.Position != nil || o.Rest:
		s = "<" + placeholder + ">" + suffix
	case o.Type == BooleanType:
		s = o.parameterName()
	default:
		s = o.parameterName() + " <" + placeholder + ">" + suffix
	}

	if !o.Required || o.Position != nil || o.Rest {
		s = "[" + s + "]"
	}
	return s
}

// name handling

// normalizeName trims surrounding space and replaces underscores with
// hyphens. Declared casing is preserved; lookups fold separately.
func normalizeName(name string) string {
	return strings.ReplaceAll(strings.TrimSpace(name), "_", "-")
}

// foldName is the lookup form of a long name, alias, or command name.
func foldName(name string) string {
	return strings.ToLower(normalizeName(name))
}

// validName reports whether a normalized long name, alias, or command name is
// usable: non-empty and free of whitespace.
func validName(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// validShortName reports whether s is exactly one non-whitespace character.
func validShortName(s string) bool {
	runes := []rune(s)
	return len(runes) == 1 && !unicode.IsSpace(runes[0])
}
