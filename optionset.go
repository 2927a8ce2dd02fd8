package cmdline

import (
	"fmt"
	"sort"
)

// OptionSetDeclaration is a named, reusable bundle of option declarations.
// Sets are declared once on the CommandLineSettings and included by name into
// the top-level scope or into any command via the Include field. Inclusion
// adds the set's options to the including scope; collisions with options
// already in the scope are configuration errors, exactly as if the options
// had been declared directly.
type OptionSetDeclaration struct {
	Options map[string]*OptionDeclaration
}

// includeOptionSets resolves the named sets against the root scope and adds
// their options to r. Panics on an unknown set name, matching the policy for
// all configuration mistakes.
func (r *Resolver) includeOptionSets(names []string) {
	for _, name := range names {
		set := r.optionSet(name)
		if set == nil {
			panic(fmt.Errorf(`option set "%s" is not declared`, name))
		}
		for _, key := range sortedOptionKeys(set.Options) {
			r.AddOption(key, set.Options[key])
		}
	}
}

// optionSet looks up a set by name, delegating to the parent scope; sets are
// declared only on the root.
func (r *Resolver) optionSet(name string) *OptionSetDeclaration {
	if set, ok := r.optionSets[name]; ok {
		return set
	}
	if r.parent != nil {
		return r.parent.optionSet(name)
	}
	return nil
}

// sortedOptionKeys returns the keys of a declaration map in a stable order,
// so that resolver construction is deterministic and idempotent.
func sortedOptionKeys(m map[string]*OptionDeclaration) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedCommandKeys(m map[string]*CommandDeclaration) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
