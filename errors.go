package cmdline

import "fmt"

// CommandLineError is the uniform shape of every failure surfaced by the
// binder and the evaluator. Message is the user-visible text, Help requests
// that usage information be displayed along with the message, and Status is
// the suggested process exit code. A Status of -1 means the failure site did
// not pick a concrete code; Respond maps it to 1.
//
// CommandLineError values travel as data inside ParsedCommandLine. They are
// never panicked: panics are reserved for configuration mistakes detected
// while building a Resolver, which are bugs in the calling program.
type CommandLineError struct {
	Message string
	Help    bool
	Status  int
}

// Error implements the error interface.
func (e *CommandLineError) Error() string {
	return e.Message
}

// NewCommandLineError returns an error with the given message, requesting
// help display and carrying an unspecified status.
func NewCommandLineError(message string) *CommandLineError {
	return &CommandLineError{Message: message, Help: true, Status: -1}
}

// toCommandLineError coerces any failure representation into the uniform
// shape: a *CommandLineError passes through, an error or a string becomes the
// message of a new error, anything else is formatted with fmt.Sprint. A nil
// input yields nil.
func toCommandLineError(v interface{}) *CommandLineError {
	switch e := v.(type) {
	case nil:
		return nil
	case *CommandLineError:
		return e
	case error:
		return NewCommandLineError(e.Error())
	case string:
		return NewCommandLineError(e)
	default:
		return NewCommandLineError(fmt.Sprint(e))
	}
}

// message constructors used by the binder and the evaluator

func errUnrecognizedOption(name string) *CommandLineError {
	return NewCommandLineError(fmt.Sprintf("Option '%s' was unrecognized.", name))
}

func errUnrecognizedCommand(name string) *CommandLineError {
	return NewCommandLineError(fmt.Sprintf("Command '%s' was unrecognized.", name))
}

func errAmbiguousParameter(text string, position int) *CommandLineError {
	return NewCommandLineError(fmt.Sprintf(
		"Argument '%s' at position %d is ambiguous. Use an explicit option name instead (e.g. '--option %s').",
		text, position, text))
}

func errExpectsValue(name string) *CommandLineError {
	return NewCommandLineError(fmt.Sprintf("Option '%s' expects a value.", name))
}

func errExpectsBoolean(name string) *CommandLineError {
	return NewCommandLineError(fmt.Sprintf("Option '%s' expects a boolean.", name))
}

func errExpectsNumber(name string) *CommandLineError {
	return NewCommandLineError(fmt.Sprintf("Option '%s' expects a number.", name))
}

func errMultipleValues(name string) *CommandLineError {
	return NewCommandLineError(fmt.Sprintf("Option '%s' does not allow multiple values.", name))
}

func errGroupConflict(name string) *CommandLineError {
	return NewCommandLineError(fmt.Sprintf("Option '%s' conflicts with other options.", name))
}

func errAlreadySupplied(name string) *CommandLineError {
	return NewCommandLineError(fmt.Sprintf("Option '%s' was already supplied.", name))
}

func errRequired(name string) *CommandLineError {
	return NewCommandLineError(fmt.Sprintf("Option '%s' is required.", name))
}

func errInvalidValue(name, value string) *CommandLineError {
	return NewCommandLineError(fmt.Sprintf("Option '%s' has an invalid value '%s'.", name, value))
}

func errNotInList(name, value string, allowed []string) *CommandLineError {
	return NewCommandLineError(fmt.Sprintf("Option '%s' has an invalid value '%s'. Expected one of: %s.",
		name, value, joinQuoted(allowed)))
}

func joinQuoted(values []string) string {
	s := ""
	for i, v := range values {
		if i > 0 {
			s += ", "
		}
		s += "'" + v + "'"
	}
	return s
}
