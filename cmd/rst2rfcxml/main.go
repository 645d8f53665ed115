package main

import (
	"fmt"
	"os"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	os.Exit(runMain(os.Args[1:], DefaultEnv()))
}

// runMain runs the command with args (program name excluded) and returns
// the process exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args)
	if err != nil {
		fmt.Fprintln(env.Stderr, err)
		printUsage(env.Stderr)
		return exitCodeFor(err)
	}

	switch {
	case flags.help:
		printUsage(env.Stdout)
		return ExitSuccess
	case flags.version:
		fmt.Fprintf(env.Stdout, "rst2rfcxml %s\n", Version)
		return ExitSuccess
	}

	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	if err := runConvert(positional, flags, env); err != nil {
		fmt.Fprintln(env.Stderr, err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
