package cmdline

// ParsedCommandLine is the result of a parse. Options maps option keys to
// their accumulated values: bool for booleans, int64 for numbers, string for
// strings, []interface{} for multi-value, passthru, and rest options.
//
// Callers must branch on Error and Help before trusting Options: either the
// parse is clean (Error empty, Help false) or the user should be shown the
// message and/or usage text. Status is the suggested exit code; -1 means the
// failure site gave none, and Respond maps it to 1.
type ParsedCommandLine struct {
	Options map[string]interface{}

	CommandName string
	CommandPath []string
	Command     *Command

	Group   string
	Help    bool
	Error   string
	Status  int
	Handled bool
}

// evaluate walks the bound arguments in command-line order and accumulates
// the final result.
//
// Error/help precedence: the first error wins and later errors are
// discarded, but a help option bound with a true value sets Help and clears
// any error recorded before it, reopening the slot for errors bound after
// the help argument. This is the one deterministic rule applied everywhere.
func evaluate(res *bindResult) *ParsedCommandLine {
	parsed := &ParsedCommandLine{Options: make(map[string]interface{})}
	var recorded *CommandLineError
	record := func(e *CommandLineError) {
		if recorded == nil {
			recorded = e
		}
	}

	helpOption := res.resolver.HelpOption()

	for _, ba := range res.args {
		if ba.Error != nil {
			record(ba.Error)
			continue
		}
		opt := ba.Option
		if opt == nil {
			continue
		}

		if helpOption != nil && opt == helpOption && ba.Value != nil && ba.Value.Value == true {
			parsed.Help = true
			recorded = nil
		}

		if opt.hasValidator {
			if err := runValidator(opt, ba); err != nil {
				record(opt.wrapError(err))
				continue
			}
		}

		key := opt.Key
		switch {
		case opt.isList():
			existing, _ := parsed.Options[key].([]interface{})
			parsed.Options[key] = append(existing, ba.Value.list()...)
		case opt.Single:
			if _, ok := parsed.Options[key]; ok {
				record(opt.wrapError(errAlreadySupplied(opt.parameterName())))
				continue
			}
			parsed.Options[key] = ba.Value.Value
		default:
			// last one wins
			parsed.Options[key] = ba.Value.Value
		}
	}

	parsed.Group = selectGroup(res)
	fillDefaults(res.resolver, parsed)

	if recorded == nil {
		recorded = checkRequired(res.resolver, parsed)
	}

	if recorded != nil {
		parsed.Error = recorded.Message
		parsed.Status = recorded.Status
		if recorded.Help {
			parsed.Help = true
		}
	}

	resolveCommand(res, parsed)
	return parsed
}

// runValidator applies the option's validator to every bound value.
func runValidator(opt *Option, ba *BoundArgument) *CommandLineError {
	for _, v := range ba.Value.list() {
		if err := opt.validate(v, opt.parameterName(), ba.Parsed); err != nil {
			return toCommandLineError(err)
		}
	}
	return nil
}

// selectGroup picks the final group: the scope's default group when it is
// among the surviving candidates, else the first candidate, else the default
// group alone.
func selectGroup(res *bindResult) string {
	defaultGroup := res.resolver.DefaultGroup()
	if len(res.groups) > 0 {
		if defaultGroup != "" && containsString(res.groups, defaultGroup) {
			return defaultGroup
		}
		return res.groups[0]
	}
	return defaultGroup
}

// fillDefaults invokes default-value callbacks for options of the selected
// group that are absent from the result.
// Options restricted to groups take part only when their group was
// selected; an empty selected group covers just the group-free options.
func fillDefaults(scope *Resolver, parsed *ParsedCommandLine) {
	for _, opt := range scope.GetDefaultOptions(parsed.Group) {
		if _, ok := parsed.Options[opt.Key]; ok {
			continue
		}
		v := opt.defaultValue(parsed.Options, parsed.Group)
		if v == nil {
			continue
		}
		if opt.isList() {
			if list, ok := v.([]interface{}); ok {
				parsed.Options[opt.Key] = list
			} else {
				parsed.Options[opt.Key] = []interface{}{v}
			}
		} else {
			parsed.Options[opt.Key] = v
		}
	}
}

// checkRequired reports the first required option of the selected group
// missing from the result.
func checkRequired(scope *Resolver, parsed *ParsedCommandLine) *CommandLineError {
	for _, opt := range scope.GetRequiredOptions(parsed.Group) {
		if _, ok := parsed.Options[opt.Key]; !ok {
			return opt.wrapError(errRequired(opt.parameterName()))
		}
	}
	return nil
}

// resolveCommand fills the command metadata from the bound chain, outermost
// to innermost, and turns a bare container command (one that only routes to
// sub-commands) into a help display.
func resolveCommand(res *bindResult, parsed *ParsedCommandLine) {
	var path []string
	for c := res.command; c != nil; c = c.Parent {
		if c.Command != nil {
			path = append([]string{c.Command.CommandName}, path...)
		}
	}
	parsed.CommandPath = path
	if len(path) > 0 {
		parsed.CommandName = path[len(path)-1]
	}
	if res.command != nil && res.command.Command != nil {
		parsed.Command = res.command.Command
		if parsed.Command.hasCommands() && parsed.Error == "" && len(res.args) == 0 {
			parsed.Help = true
		}
	}
}
