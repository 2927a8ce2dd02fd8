package cmdline

import (
	"strconv"
	"strings"
)

// BoundArgument pairs a token with the option it resolved to and the
// converted value, or with a structured error when binding failed. Bound
// arguments are created once by the binder and consumed exactly once by the
// evaluator, in command-line order.
type BoundArgument struct {
	Parsed *ParsedArgument
	Option *Option
	Value  *BoundArgumentValue
	Error  *CommandLineError
}

// BoundArgumentValue is a converted value: a scalar in Value, or the
// element-wise conversion of a comma list in Values.
type BoundArgumentValue struct {
	Value  interface{}
	Values []interface{}
}

// list returns the value(s) as a slice.
func (v *BoundArgumentValue) list() []interface{} {
	if v == nil {
		return nil
	}
	if v.Values != nil {
		return v.Values
	}
	return []interface{}{v.Value}
}

// BoundCommand is one entry of the resolved command chain, linked from the
// innermost command outwards.
type BoundCommand struct {
	Parsed  *ParsedArgument
	Command *Command
	Parent  *BoundCommand
}

// bindResult is everything the binder hands to the evaluator: the command
// chain, the bound arguments in command-line order, the surviving candidate
// group set (nil when no group-bearing option was bound), and the terminal
// resolver scope.
type bindResult struct {
	command  *BoundCommand
	args     []*BoundArgument
	groups   []string
	resolver *Resolver
}

type binder struct {
	root    *Resolver
	command *BoundCommand
	bound   []*BoundArgument
	groups  []string

	bare          []*ParsedArgument // bare tokens awaiting positional binding
	free          []*ParsedArgument // tokens left for the rest option
	usedPositions map[int]bool
}

// bind runs the four binder phases in order: command descent interleaved
// with named-parameter binding, then positional binding, then free-argument
// disposition.
func bind(root *Resolver, tokens []*ParsedArgument) *bindResult {
	b := &binder{root: root, usedPositions: make(map[int]bool)}
	b.bindTokens(tokens)
	b.bindPositional()
	b.bindFreeArguments()
	return &bindResult{
		command:  b.command,
		args:     b.bound,
		groups:   b.groups,
		resolver: b.scope(),
	}
}

// scope is the resolver of the innermost bound command, or the root.
func (b *binder) scope() *Resolver {
	for c := b.command; c != nil; c = c.Parent {
		if c.Command != nil {
			return &c.Command.Resolver
		}
	}
	return b.root
}

// bindTokens is phases 1 and 2: named parameters bind against the current
// scope as it descends; while the current scope declares commands, each bare
// token is tested as a command name, and the first mismatch records an
// unrecognized-command error and stops the descent. The mismatch travels as
// an entry of the bound sequence, so it keeps its place in token order when
// the evaluator picks the first error.
func (b *binder) bindTokens(tokens []*ParsedArgument) {
	descending := true
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if tok.Parameter != nil {
			i += b.bindParameter(tok, tokens, i)
			continue
		}

		if descending && b.scope().hasCommands() {
			if cmd := b.scope().FromCommandName(tok.Text); cmd != nil {
				b.command = &BoundCommand{Parsed: tok, Command: cmd, Parent: b.command}
			} else {
				b.bound = append(b.bound, &BoundArgument{Parsed: tok, Error: errUnrecognizedCommand(tok.Text)})
				descending = false
			}
			continue
		}
		descending = false

		b.bare = append(b.bare, tok)
	}
}

// bindParameter resolves a named token to an option, acquires its value
// (inline, or by look-ahead for valued options), converts it, and commits
// the group restriction. It returns 1 when the following token was consumed
// as the value.
func (b *binder) bindParameter(tok *ParsedArgument, tokens []*ParsedArgument, i int) int {
	scope := b.scope()
	param := tok.Parameter

	var opt *Option
	invert := false
	switch {
	case param.Passthru:
		opt = scope.PassthruOption()
	case param.ShortName != "":
		opt = scope.FromShortName(param.ShortName)
	default:
		opt = scope.FromLongName(param.LongName)
		if opt == nil && param.No {
			negated := scope.FromLongName(strings.TrimPrefix(foldName(param.LongName), "no-"))
			if negated != nil && negated.Type == BooleanType {
				opt, invert = negated, true
			}
		}
	}
	if opt == nil {
		b.bound = append(b.bound, &BoundArgument{Parsed: tok, Error: errUnrecognizedOption(param.ParameterName)})
		return 0
	}

	arg := tok.Argument
	consumed := 0
	if arg == nil && opt.Type != BooleanType && !param.Passthru {
		// Valued options may consume the next token, but only if it is not
		// itself a switch.
		if i+1 < len(tokens) && tokens[i+1].Parameter == nil {
			arg = tokens[i+1].Argument
			consumed = 1
		} else {
			b.bound = append(b.bound, &BoundArgument{Parsed: tok, Option: opt, Error: opt.wrapError(errExpectsValue(param.ParameterName))})
			return 0
		}
	}

	ba := bindValue(tok, opt, arg, invert)
	b.commitGroups(ba)
	b.bound = append(b.bound, ba)
	if opt.Position != nil {
		b.usedPositions[*opt.Position] = true
	}
	return consumed
}

// bindPositional is phase 3: bare tokens walk an incrementing position
// counter, skipping positions already claimed by name. Positions with a
// single candidate bind directly; positions shared by group-exclusive
// options are resolved by trial binding against the current group state.
func (b *binder) bindPositional() {
	scope := b.scope()
	rest := scope.RestOption()
	position := 0
	for i, tok := range b.bare {
		for b.usedPositions[position] {
			position++
		}
		if rest != nil && rest.Position != nil && position >= *rest.Position {
			b.free = append(b.free, b.bare[i:]...)
			return
		}

		candidates := scope.FromPosition(position)
		switch len(candidates) {
		case 0:
			b.free = append(b.free, tok)
		case 1:
			ba := bindValue(tok, candidates[0], tok.Argument, false)
			b.commitGroups(ba)
			b.bound = append(b.bound, ba)
		default:
			b.bindAmbiguous(tok, position, candidates)
		}
		position++
	}
}

// bindAmbiguous trial-binds every candidate of a shared position without
// touching the committed group state; exactly one survivor commits,
// anything else is an ambiguity error.
func (b *binder) bindAmbiguous(tok *ParsedArgument, position int, candidates []*Option) {
	var survivor *Option
	survivors := 0
	for _, cand := range candidates {
		trial := bindValue(tok, cand, tok.Argument, false)
		if trial.Error != nil {
			continue
		}
		if _, ok := restrictGroups(b.groups, cand); !ok {
			continue
		}
		survivor = cand
		survivors++
	}
	if survivors != 1 {
		b.bound = append(b.bound, &BoundArgument{Parsed: tok, Error: errAmbiguousParameter(tok.Text, position)})
		return
	}
	ba := bindValue(tok, survivor, tok.Argument, false)
	b.commitGroups(ba)
	b.bound = append(b.bound, ba)
}

// bindFreeArguments is phase 4: leftovers go to the rest option as one bound
// argument, or each becomes an unrecognized-option error.
func (b *binder) bindFreeArguments() {
	if len(b.free) == 0 {
		return
	}
	rest := b.scope().RestOption()
	if rest == nil {
		for _, tok := range b.free {
			b.bound = append(b.bound, &BoundArgument{Parsed: tok, Error: errUnrecognizedOption(tok.Text)})
		}
		return
	}

	texts := make([]string, len(b.free))
	for i, tok := range b.free {
		texts[i] = tok.Text
	}
	arg := &ParsedArgumentValue{Value: texts[0]}
	if len(texts) > 1 {
		arg.Values = texts
	}
	ba := bindValue(b.free[0], rest, arg, false)
	b.commitGroups(ba)
	b.bound = append(b.bound, ba)
}

// commitGroups narrows the surviving group set by the bound option. A
// narrowing that would empty the set marks the triggering argument with a
// conflict error and leaves the committed state untouched.
func (b *binder) commitGroups(ba *BoundArgument) {
	if ba.Error != nil || ba.Option == nil {
		return
	}
	narrowed, ok := restrictGroups(b.groups, ba.Option)
	if !ok {
		ba.Error = ba.Option.wrapError(errGroupConflict(ba.Option.parameterName()))
		return
	}
	b.groups = narrowed
}

// restrictGroups returns the candidate set narrowed by the groups of opt.
// The input is never mutated: a nil set (no group-bearing option bound yet)
// is seeded with a copy of the option's groups, a non-nil set is intersected
// into a fresh slice. ok is false when the intersection would be empty.
func restrictGroups(candidates []string, opt *Option) (narrowed []string, ok bool) {
	if len(opt.Groups) == 0 {
		return candidates, true
	}
	if candidates == nil {
		return append([]string(nil), opt.Groups...), true
	}
	narrowed = make([]string, 0, len(candidates))
	for _, g := range candidates {
		if containsString(opt.Groups, g) {
			narrowed = append(narrowed, g)
		}
	}
	if len(narrowed) == 0 {
		return nil, false
	}
	return narrowed, true
}

// value binding

// bindValue converts the raw value(s) of a token according to the option's
// type tag and the declaration sugar (Map, Match, In, Convert). It never
// mutates shared state, so it is safe for trial bindings.
func bindValue(tok *ParsedArgument, opt *Option, arg *ParsedArgumentValue, invert bool) *BoundArgument {
	ba := &BoundArgument{Parsed: tok, Option: opt}

	if opt.Type == BooleanType {
		value, err := bindBoolean(opt, arg, invert)
		if err != nil {
			ba.Error = opt.wrapError(err)
			return ba
		}
		ba.Value = &BoundArgumentValue{Value: value}
		return ba
	}

	var raws []string
	switch {
	case arg == nil:
		// Only passthru and rest options bind without a value; an empty
		// passthru tail is an empty list.
		raws = nil
	case len(arg.Values) > 1:
		raws = arg.Values
	default:
		raws = []string{arg.Value}
	}

	converted := make([]interface{}, 0, len(raws))
	for _, raw := range raws {
		v, err := convertValue(opt, raw)
		if err != nil {
			ba.Error = opt.wrapError(err)
			return ba
		}
		converted = append(converted, v)
	}

	if len(converted) > 1 && !opt.isList() {
		ba.Error = opt.wrapError(errMultipleValues(opt.parameterName()))
		return ba
	}

	value := &BoundArgumentValue{}
	if len(converted) == 1 && (arg == nil || arg.Values == nil) {
		value.Value = converted[0]
	} else {
		value.Values = converted
	}
	ba.Value = value
	return ba
}

// bindBoolean interprets an optional inline value for a boolean option. The
// recognized tokens are 1/true/yes and 0/false/no, case-insensitive; absence
// means true. The "no-" long-name prefix inverts the result.
func bindBoolean(opt *Option, arg *ParsedArgumentValue, invert bool) (bool, *CommandLineError) {
	if arg != nil && arg.Values != nil {
		return false, errMultipleValues(opt.parameterName())
	}
	value := true
	if arg != nil {
		switch {
		case isTruthyToken(arg.Value):
			value = true
		case isFalsyToken(arg.Value):
			value = false
		default:
			return false, errExpectsBoolean(opt.parameterName())
		}
	}
	if invert {
		value = !value
	}
	return value, nil
}

func isTruthyToken(s string) bool {
	switch strings.ToLower(s) {
	case "1", "true", "yes":
		return true
	}
	return false
}

func isFalsyToken(s string) bool {
	switch strings.ToLower(s) {
	case "0", "false", "no":
		return true
	}
	return false
}

// convertValue runs one raw string through the option's conversion chain:
// Map rewrite, Match and In checks, the custom converter, then the type tag.
func convertValue(opt *Option, raw string) (interface{}, *CommandLineError) {
	name := opt.parameterName()

	if opt.mapping != nil {
		if mapped, ok := lookupMapping(opt, raw); ok {
			if s, isString := mapped.(string); isString {
				raw = s
			} else {
				return mapped, nil
			}
		}
	}
	if opt.match != nil && !opt.match.MatchString(raw) {
		return nil, errInvalidValue(name, raw)
	}
	if len(opt.in) > 0 && !inList(opt, raw) {
		return nil, errNotInList(name, raw, opt.in)
	}

	if opt.hasConverter {
		v, err := opt.convert(raw, name)
		if err != nil {
			return nil, toCommandLineError(err)
		}
		if s, isString := v.(string); isString {
			raw = s
		} else {
			return v, nil
		}
	}

	switch opt.Type {
	case NumberType:
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, errExpectsNumber(name)
		}
		return n, nil
	case StringType:
		return raw, nil
	default:
		// The type tags form a closed set; reaching here is a bug.
		panic("cmdline: unhandled option type " + opt.Type.String())
	}
}

func lookupMapping(opt *Option, raw string) (interface{}, bool) {
	if v, ok := opt.mapping[raw]; ok {
		return v, true
	}
	if opt.ignoreCase {
		for k, v := range opt.mapping {
			if strings.EqualFold(k, raw) {
				return v, true
			}
		}
	}
	return nil, false
}

func inList(opt *Option, raw string) bool {
	for _, allowed := range opt.in {
		if allowed == raw || (opt.ignoreCase && strings.EqualFold(allowed, raw)) {
			return true
		}
	}
	return false
}
