package cmdline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolverLookups(t *testing.T) {
	r := NewResolver(&CommandLineSettings{
		Options: map[string]*OptionDeclaration{
			"verbose": {ShortName: "v", LongName: "verbose", Aliases: []string{"chatty"}},
			"output":  {Type: StringType, Aliases: []string{"o"}},
			"mode":    {Type: StringType, Position: Pos(0)},
		},
	})

	verbose := r.Get("verbose")
	require.NotNil(t, verbose)
	assert.Same(t, verbose, r.FromShortName("v"))
	assert.Same(t, verbose, r.FromLongName("verbose"))
	assert.Same(t, verbose, r.FromLongName("chatty"))
	assert.Same(t, verbose, r.FromLongName("VERBOSE"), "long name lookup folds case")

	output := r.Get("output")
	require.NotNil(t, output)
	assert.Same(t, output, r.FromLongName("output"), "long name defaults to the key")
	assert.Same(t, output, r.FromShortName("o"), "single character alias doubles as a short name")

	mode := r.Get("mode")
	require.NotNil(t, mode)
	require.Len(t, r.FromPosition(0), 1)
	assert.Same(t, mode, r.FromPosition(0)[0])
	assert.Nil(t, r.FromPosition(1))

	assert.Nil(t, r.Get("nope"))
	assert.Nil(t, r.FromShortName("x"))
	assert.Nil(t, r.FromLongName("nope"))
}

func TestResolverConfigurationPanics(t *testing.T) {
	tests := []struct {
		name     string
		settings *CommandLineSettings
	}{
		{
			"duplicate short name",
			&CommandLineSettings{Options: map[string]*OptionDeclaration{
				"a": {ShortName: "x"},
				"b": {ShortName: "x"},
			}},
		},
		{
			"duplicate long name",
			&CommandLineSettings{Options: map[string]*OptionDeclaration{
				"a": {LongName: "same"},
				"b": {LongName: "same"},
			}},
		},
		{
			"alias collides with a long name",
			&CommandLineSettings{Options: map[string]*OptionDeclaration{
				"a": {LongName: "same"},
				"b": {Aliases: []string{"same"}},
			}},
		},
		{
			"shared position without disjoint groups",
			&CommandLineSettings{Options: map[string]*OptionDeclaration{
				"a": {Position: Pos(0), Groups: []string{"g"}},
				"b": {Position: Pos(0), Groups: []string{"g", "h"}},
			}},
		},
		{
			"shared position with an ungrouped option",
			&CommandLineSettings{Options: map[string]*OptionDeclaration{
				"a": {Position: Pos(0)},
				"b": {Position: Pos(0), Groups: []string{"g"}},
			}},
		},
		{
			"second passthru option",
			&CommandLineSettings{Options: map[string]*OptionDeclaration{
				"a": {Passthru: true},
				"b": {Passthru: true},
			}},
		},
		{
			"second rest option",
			&CommandLineSettings{Options: map[string]*OptionDeclaration{
				"a": {Rest: true},
				"b": {Rest: true},
			}},
		},
		{
			"rest option in a command when the root has one",
			&CommandLineSettings{
				Options: map[string]*OptionDeclaration{"a": {Rest: true}},
				Commands: map[string]*CommandDeclaration{
					"run": {Options: map[string]*OptionDeclaration{"b": {Rest: true}}},
				},
			},
		},
		{
			"command option key collides with an ancestor key",
			&CommandLineSettings{
				Options: map[string]*OptionDeclaration{"verbose": {}},
				Commands: map[string]*CommandDeclaration{
					"run": {Options: map[string]*OptionDeclaration{"verbose": {}}},
				},
			},
		},
		{
			"command name collides with an alias",
			&CommandLineSettings{Commands: map[string]*CommandDeclaration{
				"go":  {Aliases: []string{"run"}},
				"run": {},
			}},
		},
		{
			"unknown option set",
			&CommandLineSettings{Include: []string{"nope"}},
		},
		{
			"unknown option set in a command",
			&CommandLineSettings{Commands: map[string]*CommandDeclaration{
				"run": {Include: []string{"nope"}},
			}},
		},
		{
			"malformed declaration",
			&CommandLineSettings{Options: map[string]*OptionDeclaration{
				"a": {Type: BooleanType, Multiple: true},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Panics(t, func() { NewResolver(tt.settings) })
		})
	}
}

func TestResolverDuplicateKeyPanics(t *testing.T) {
	r := NewResolver(&CommandLineSettings{
		Options: map[string]*OptionDeclaration{"a": {ShortName: "a"}},
	})
	assert.PanicsWithError(t, `option "a" is already defined`, func() {
		r.AddOption("a", &OptionDeclaration{ShortName: "b"})
	})
}

func TestResolverSharedPositionWithDisjointGroups(t *testing.T) {
	assert.NotPanics(t, func() {
		NewResolver(&CommandLineSettings{Options: map[string]*OptionDeclaration{
			"a": {Position: Pos(0), Groups: []string{"g"}},
			"b": {Position: Pos(0), Groups: []string{"h"}},
		}})
	})
}

func TestResolverInheritance(t *testing.T) {
	r := NewResolver(&CommandLineSettings{
		Options: map[string]*OptionDeclaration{
			"verbose": {ShortName: "v"},
			"format":  {Type: StringType},
		},
		Commands: map[string]*CommandDeclaration{
			"run": {
				Options: map[string]*OptionDeclaration{
					"fast":         {},
					"local-format": {LongName: "format", Type: NumberType},
				},
				Commands: map[string]*CommandDeclaration{"again": {}},
			},
		},
	})

	run := r.FromCommandName("run")
	require.NotNil(t, run)

	assert.Same(t, r.Get("verbose"), run.FromShortName("v"), "general options stay visible inside commands")
	assert.Same(t, run.Get("fast"), run.FromLongName("fast"))
	assert.Same(t, run.Get("local-format"), run.FromLongName("format"), "local declarations shadow inherited ones")
	assert.Same(t, r.Get("format"), r.FromLongName("format"))

	assert.Nil(t, r.FromCommandName("again"), "commands are not inherited")
	assert.NotNil(t, run.FromCommandName("again"))
	assert.Nil(t, run.FromCommandName("run"), "a command name is not visible inside itself")
}

func TestResolverCommandAliases(t *testing.T) {
	r := NewResolver(&CommandLineSettings{
		Commands: map[string]*CommandDeclaration{
			"remove": {Aliases: []string{"rm"}},
		},
	})
	remove := r.FromCommandName("remove")
	require.NotNil(t, remove)
	assert.Same(t, remove, r.FromCommandName("rm"))
	assert.Same(t, remove, r.FromCommandName("REMOVE"), "command lookup folds case")
	assert.Equal(t, "remove", remove.CommandName)
}

func TestResolverHelpInjection(t *testing.T) {
	t.Run("injected when names are free", func(t *testing.T) {
		r := NewResolver(&CommandLineSettings{})
		help := r.HelpOption()
		require.NotNil(t, help)
		assert.True(t, help.Help)
		assert.Same(t, help, r.FromShortName("h"))
		assert.Same(t, help, r.FromLongName("help"))
		assert.Same(t, help, r.FromLongName("?"))
	})

	t.Run("suppressed by a declared help option", func(t *testing.T) {
		r := NewResolver(&CommandLineSettings{Options: map[string]*OptionDeclaration{
			"usage": {Help: true, Type: BooleanType, ShortName: "u"},
		}})
		require.NotNil(t, r.HelpOption())
		assert.Equal(t, "usage", r.HelpOption().Key)
		assert.Nil(t, r.FromShortName("h"))
	})

	t.Run("suppressed when a name is taken", func(t *testing.T) {
		r := NewResolver(&CommandLineSettings{Options: map[string]*OptionDeclaration{
			"host": {ShortName: "h", Type: StringType},
		}})
		assert.Nil(t, r.HelpOption())
		assert.Nil(t, r.FromLongName("help"))
	})
}

func TestResolverOptionSets(t *testing.T) {
	r := NewResolver(&CommandLineSettings{
		OptionSets: map[string]*OptionSetDeclaration{
			"common": {Options: map[string]*OptionDeclaration{
				"verbose": {ShortName: "v"},
			}},
		},
		Commands: map[string]*CommandDeclaration{
			"pull": {Include: []string{"common"}},
			"push": {Include: []string{"common"}},
		},
	})

	pull := r.FromCommandName("pull")
	push := r.FromCommandName("push")
	require.NotNil(t, pull.Get("verbose"))
	require.NotNil(t, push.Get("verbose"))
	assert.NotSame(t, pull.Get("verbose"), push.Get("verbose"), "each inclusion builds its own option")
	assert.Nil(t, r.keys["verbose"], "sets are not added to scopes that do not include them")
}

func TestResolverGroupViews(t *testing.T) {
	r := NewResolver(&CommandLineSettings{
		DefaultGroup: "client",
		Options: map[string]*OptionDeclaration{
			"host":   {Type: StringType, Groups: []string{"client"}},
			"listen": {Type: StringType, Groups: []string{"server"}},
			"trace":  {},
		},
	})

	keysOf := func(opts []*Option) []string {
		keys := make([]string, len(opts))
		for i, o := range opts {
			keys[i] = o.Key
		}
		return keys
	}

	assert.ElementsMatch(t, []string{"host", "trace", "help"}, keysOf(r.GetOptions("client")))
	assert.ElementsMatch(t, []string{"listen", "trace", "help"}, keysOf(r.GetOptions("server")))
	assert.ElementsMatch(t, []string{"host", "listen", "trace", "help"}, keysOf(r.GetOptions("*")))
	assert.ElementsMatch(t, []string{"trace", "help"}, keysOf(r.GetOptions("")))

	assert.Equal(t, []string{"client", "server"}, r.Groups())
	assert.Equal(t, "client", r.DefaultGroup())
}

func TestResolverConstructionIsDeterministic(t *testing.T) {
	settings := &CommandLineSettings{
		Options: map[string]*OptionDeclaration{
			"alpha": {}, "beta": {}, "gamma": {}, "delta": {},
		},
	}
	want := []string{"alpha", "beta", "delta", "gamma", "help"}
	for i := 0; i < 10; i++ {
		r := NewResolver(settings)
		keys := make([]string, len(r.options))
		for j, o := range r.options {
			keys[j] = o.Key
		}
		require.Equal(t, want, keys)
	}
}
