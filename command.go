package cmdline

// CommandDeclaration describes a sub-command: a named scope with its own
// options and, recursively, nested sub-commands. General options declared in
// an enclosing scope remain visible inside the command.
type CommandDeclaration struct {
	Options  map[string]*OptionDeclaration
	Commands map[string]*CommandDeclaration

	// Include names option sets (declared on the CommandLineSettings) whose
	// options are added to this command's scope.
	Include []string

	Aliases      []string
	DefaultGroup string
	Hidden       bool

	Summary     string
	Description string
	Usage       string
	Examples    []string
}

// Command is the resolved form of a CommandDeclaration. It is itself a
// Resolver: lookups check the command's own options first and then delegate
// to the declaring scope. The parent link is used for lookup only; a command
// never owns its parent.
type Command struct {
	Resolver

	CommandName string // declared casing, normalized
	Aliases     []string
	Hidden      bool

	Summary     string
	Description string
	Usage       string
	Examples    []string
}
