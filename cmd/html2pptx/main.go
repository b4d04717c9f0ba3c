package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	env := DefaultEnv()

	if err := loadDotEnv(".env"); err != nil {
		fmt.Fprintln(env.Stderr, err)
		os.Exit(ExitUsage)
	}

	// Configure GOMAXPROCS, logging only in verbose mode.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	logger := newLogger(env.Stderr, levelFor(hasVerboseFlag(os.Args[1:]), false), env.IsTerminal(env.Stderr))
	_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...interface{}) {
		logger.Debug(fmt.Sprintf(format, args...))
	}))

	ctx, stop := notifyContext(context.Background())
	code := run(ctx, os.Args[1:], env)
	stop()
	os.Exit(code)
}

// loadDotEnv loads KEY=value pairs from name into the process environment.
// A missing file is not an error; variables already set are not overridden.
func loadDotEnv(name string) error {
	if err := godotenv.Load(name); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: %s: %v", ErrEnvFile, name, err)
	}
	return nil
}

// hasVerboseFlag reports whether -v or --verbose appears before "--".
func hasVerboseFlag(args []string) bool {
	for _, a := range args {
		if a == "--" {
			return false
		}
		if a == "-v" || a == "--verbose" {
			return true
		}
	}
	return false
}

// run dispatches to a command and returns the process exit code.
// With no command, or when the first argument is a flag, it converts.
func run(ctx context.Context, args []string, env *Environment) int {
	cmd, rest := "convert", args
	if len(args) > 0 && !isFlag(args[0]) {
		cmd, rest = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "convert":
		err = runConvert(ctx, rest, env)
	case "inspect":
		err = runInspect(rest, env)
	case "doctor":
		return runDoctorCmd(rest, env)
	case "version":
		fmt.Fprintf(env.Stdout, "html2pptx %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(rest, env)
		return ExitSuccess
	default:
		err = fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
		printUsage(env.Stderr)
	}

	if err != nil {
		if errors.Is(err, errHelpShown) {
			return ExitSuccess
		}
		fmt.Fprintln(env.Stderr, "Error:", err)
	}
	return exitCodeFor(err)
}

func isFlag(s string) bool {
	return len(s) > 1 && s[0] == '-'
}
