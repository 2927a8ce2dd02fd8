package cmdline

import "fmt"

// Resolver indexes one level of the option/command tree for O(1) lookup by
// short name, long name, alias, position, key, and command name. The
// top-level configuration and every Command are resolvers; a command's
// resolver is chained to the scope that declared it, so general options are
// visible from inside any command while local declarations shadow inherited
// ones.
//
// A Resolver is built once from static declarations and is read-only
// afterwards; a single configured resolver may be shared by any number of
// concurrent parses.
type Resolver struct {
	parent *Resolver

	options     []*Option // declaration order
	keys        map[string]*Option
	shortNames  map[string]*Option
	longNames   map[string]*Option // folded long names and aliases
	positions   map[int][]*Option
	commandList []*Command
	commands    map[string]*Command // folded command names and aliases

	groups       []string // group names in first-seen order
	defaultGroup string

	passthruOption *Option
	restOption     *Option
	helpOption     *Option

	optionSets map[string]*OptionSetDeclaration // root only

	// help-rendering metadata
	displayName string
	usage       string
	description string
	examples    []string
}

func newScope(parent *Resolver) Resolver {
	return Resolver{
		parent:     parent,
		keys:       make(map[string]*Option),
		shortNames: make(map[string]*Option),
		longNames:  make(map[string]*Option),
		positions:  make(map[int][]*Option),
		commands:   make(map[string]*Command),
	}
}

// AddOption validates the declaration, builds an Option, and registers it in
// the scope's indexes. It panics on any configuration error: duplicate key,
// short name, long name, or alias; duplicate position without disjoint
// groups; a second passthru or rest option in the resolver chain; or a
// malformed declaration (see newOption). Configuration errors are bugs in
// the calling program and are never reported as parse results.
func (r *Resolver) AddOption(key string, decl *OptionDeclaration) *Option {
	o, err := newOption(key, decl)
	if err != nil {
		panic(err)
	}
	if r.Get(key) != nil {
		panic(fmt.Errorf(`option "%s" is already defined`, key))
	}
	if o.ShortName != "" {
		if _, ok := r.shortNames[o.ShortName]; ok {
			panic(fmt.Errorf(`short name "%s" of option "%s" is already used`, o.ShortName, key))
		}
	}
	if o.LongName != "" {
		if _, ok := r.longNames[foldName(o.LongName)]; ok {
			panic(fmt.Errorf(`long name "%s" of option "%s" is already used`, o.LongName, key))
		}
	}
	for _, a := range o.Aliases {
		if _, ok := r.longNames[foldName(a)]; ok {
			panic(fmt.Errorf(`alias "%s" of option "%s" is already used`, a, key))
		}
		if len([]rune(a)) == 1 {
			if _, ok := r.shortNames[a]; ok {
				panic(fmt.Errorf(`alias "%s" of option "%s" is already used as a short name`, a, key))
			}
		}
	}
	if o.Position != nil {
		for _, other := range r.positions[*o.Position] {
			if groupsOverlap(o.Groups, other.Groups) {
				panic(fmt.Errorf(`options "%s" and "%s" share position %d without disjoint groups`, key, other.Key, *o.Position))
			}
		}
	}
	if o.Passthru && r.PassthruOption() != nil {
		panic(fmt.Errorf(`option "%s" is a second passthru option`, key))
	}
	if o.Rest && r.RestOption() != nil {
		panic(fmt.Errorf(`option "%s" is a second rest option`, key))
	}

	r.options = append(r.options, o)
	r.keys[key] = o
	if o.ShortName != "" {
		r.shortNames[o.ShortName] = o
	}
	if o.LongName != "" {
		r.longNames[foldName(o.LongName)] = o
	}
	for _, a := range o.Aliases {
		r.longNames[foldName(a)] = o
		if len([]rune(a)) == 1 {
			r.shortNames[a] = o
		}
	}
	if o.Position != nil {
		r.positions[*o.Position] = append(r.positions[*o.Position], o)
	}
	if o.Passthru {
		r.passthruOption = o
	}
	if o.Rest {
		r.restOption = o
	}
	if o.Help && r.helpOption == nil {
		r.helpOption = o
	}
	for _, g := range o.Groups {
		r.registerGroup(g)
	}
	return o
}

// AddCommand builds a child Command scope from the declaration and registers
// it under its normalized name and aliases. Duplicate command names are
// configuration errors.
func (r *Resolver) AddCommand(name string, decl *CommandDeclaration) *Command {
	normalized := normalizeName(name)
	if !validName(normalized) {
		panic(fmt.Errorf(`command name "%s" is empty or contains whitespace`, name))
	}
	if _, ok := r.commands[foldName(name)]; ok {
		panic(fmt.Errorf(`command "%s" is already defined`, name))
	}

	cmd := &Command{
		Resolver:    newScope(r),
		CommandName: normalized,
		Hidden:      decl.Hidden,
		Summary:     decl.Summary,
		Description: decl.Description,
		Usage:       decl.Usage,
		Examples:    decl.Examples,
	}
	cmd.Resolver.displayName = r.displayName + " " + normalized
	cmd.Resolver.usage = decl.Usage
	cmd.Resolver.description = decl.Description
	cmd.Resolver.examples = decl.Examples
	cmd.Resolver.defaultGroup = decl.DefaultGroup

	for _, a := range decl.Aliases {
		na := normalizeName(a)
		if !validName(na) {
			panic(fmt.Errorf(`alias "%s" of command "%s" is empty or contains whitespace`, a, name))
		}
		if _, ok := r.commands[foldName(na)]; ok {
			panic(fmt.Errorf(`alias "%s" of command "%s" is already used`, a, name))
		}
		cmd.Aliases = append(cmd.Aliases, na)
	}

	cmd.includeOptionSets(decl.Include)
	for _, key := range sortedOptionKeys(decl.Options) {
		cmd.AddOption(key, decl.Options[key])
	}
	for _, sub := range sortedCommandKeys(decl.Commands) {
		cmd.AddCommand(sub, decl.Commands[sub])
	}

	r.commandList = append(r.commandList, cmd)
	r.commands[foldName(name)] = cmd
	for _, a := range cmd.Aliases {
		r.commands[foldName(a)] = cmd
	}
	return cmd
}

// lookups, local scope first, then the parent scope

// FromShortName resolves a one-character switch name.
func (r *Resolver) FromShortName(name string) *Option {
	if o, ok := r.shortNames[name]; ok {
		return o
	}
	if r.parent != nil {
		return r.parent.FromShortName(name)
	}
	return nil
}

// FromLongName resolves a long name or alias; matching is case-insensitive.
func (r *Resolver) FromLongName(name string) *Option {
	if o, ok := r.longNames[foldName(name)]; ok {
		return o
	}
	if r.parent != nil {
		return r.parent.FromLongName(name)
	}
	return nil
}

// FromPosition returns the options declared at a position. Multiple options
// may share a position when their groups are disjoint. Local declarations
// shadow inherited ones.
func (r *Resolver) FromPosition(position int) []*Option {
	if opts := r.positions[position]; len(opts) > 0 {
		return opts
	}
	if r.parent != nil {
		return r.parent.FromPosition(position)
	}
	return nil
}

// Get resolves an option by its key.
func (r *Resolver) Get(key string) *Option {
	if o, ok := r.keys[key]; ok {
		return o
	}
	if r.parent != nil {
		return r.parent.Get(key)
	}
	return nil
}

// FromCommandName resolves a command declared in this scope. Commands are
// not inherited: a sub-command name is only meaningful in the scope that
// declares it.
func (r *Resolver) FromCommandName(name string) *Command {
	return r.commands[foldName(name)]
}

// hasCommands reports whether this scope declares any commands.
func (r *Resolver) hasCommands() bool {
	return len(r.commandList) > 0
}

// Commands returns the commands declared in this scope, in declaration
// order.
func (r *Resolver) Commands() []*Command {
	return r.commandList
}

// group views

// GetOptions returns the options visible in the given group, inherited ones
// included. Options without groups are always visible; the group "*" selects
// every option.
func (r *Resolver) GetOptions(group string) []*Option {
	opts := r.GetOwnOptions(group)
	if r.parent != nil {
		for _, o := range r.parent.GetOptions(group) {
			if r.keys[o.Key] == nil {
				opts = append(opts, o)
			}
		}
	}
	return opts
}

// GetOwnOptions is GetOptions restricted to options declared directly in
// this scope.
func (r *Resolver) GetOwnOptions(group string) []*Option {
	var opts []*Option
	for _, o := range r.options {
		if optionInGroup(o, group) {
			opts = append(opts, o)
		}
	}
	return opts
}

// GetDefaultOptions returns the visible options of the group that carry a
// default-value callback.
func (r *Resolver) GetDefaultOptions(group string) []*Option {
	var opts []*Option
	for _, o := range r.GetOptions(group) {
		if o.hasDefaultValue {
			opts = append(opts, o)
		}
	}
	return opts
}

// GetRequiredOptions returns the visible required options of the group.
func (r *Resolver) GetRequiredOptions(group string) []*Option {
	var opts []*Option
	for _, o := range r.GetOptions(group) {
		if o.Required {
			opts = append(opts, o)
		}
	}
	return opts
}

// Groups returns the group names declared in this scope and its ancestors,
// in first-seen order.
func (r *Resolver) Groups() []string {
	var all []string
	if r.parent != nil {
		all = append(all, r.parent.Groups()...)
	}
	for _, g := range r.groups {
		if !containsString(all, g) {
			all = append(all, g)
		}
	}
	return all
}

// DefaultGroup returns the scope's default group, or the nearest ancestor's.
func (r *Resolver) DefaultGroup() string {
	if r.defaultGroup != "" {
		return r.defaultGroup
	}
	if r.parent != nil {
		return r.parent.DefaultGroup()
	}
	return ""
}

// PassthruOption returns the single passthru option of the resolver chain,
// if any.
func (r *Resolver) PassthruOption() *Option {
	if r.passthruOption != nil {
		return r.passthruOption
	}
	if r.parent != nil {
		return r.parent.PassthruOption()
	}
	return nil
}

// RestOption returns the single rest option of the resolver chain, if any.
func (r *Resolver) RestOption() *Option {
	if r.restOption != nil {
		return r.restOption
	}
	if r.parent != nil {
		return r.parent.RestOption()
	}
	return nil
}

// HelpOption returns the option marked help, synthetic or declared.
func (r *Resolver) HelpOption() *Option {
	if r.helpOption != nil {
		return r.helpOption
	}
	if r.parent != nil {
		return r.parent.HelpOption()
	}
	return nil
}

func (r *Resolver) registerGroup(name string) {
	if !containsString(r.groups, name) {
		r.groups = append(r.groups, name)
	}
}

// injectHelpOption adds the synthetic help option (-h, --help, alias "?") to
// the top-level scope when no declared option is marked help and none of the
// synthetic names is taken.
func (r *Resolver) injectHelpOption() {
	if r.helpOption != nil {
		return
	}
	if r.Get("help") != nil || r.FromShortName("h") != nil ||
		r.FromLongName("help") != nil || r.FromLongName("?") != nil {
		return
	}
	r.AddOption("help", &OptionDeclaration{
		Type:        BooleanType,
		LongName:    "help",
		ShortName:   "h",
		Aliases:     []string{"?"},
		Help:        true,
		Description: "Prints this message.",
	})
}

// groupsOverlap reports whether two group sets intersect. An empty set means
// "every group" and always overlaps.
func groupsOverlap(a, b []string) bool {
	if len(a) == 0 || len(b) == 0 {
		return true
	}
	for _, g := range a {
		if containsString(b, g) {
			return true
		}
	}
	return false
}

func optionInGroup(o *Option, group string) bool {
	if len(o.Groups) == 0 || group == "*" {
		return true
	}
	return containsString(o.Groups, group)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
