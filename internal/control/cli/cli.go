// Package cli provides the command-line interface for edkeys.
package cli

type CommandLineOpts struct {
	Version bool `short:"v" long:"version" description:"Show the program version"`

	RunCommand      RunCommand      `command:"run" subcommands-optional:"true" description:"run the interactive editor input loop"`
	KeysCommand     KeysCommand     `command:"keys" subcommands-optional:"true" description:"print every decoded key event"`
	BindingsCommand BindingsCommand `command:"bindings" subcommands-optional:"true" description:"list the commands and their shortcuts"`
	VersionCommand  VersionCommand  `command:"version" subcommands-optional:"true"`
}

var Opts CommandLineOpts
