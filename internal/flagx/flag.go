// Package flagx lets several components share os.Args: each one parses only
// the flags it owns and ignores the rest.
package flagx

import (
	"flag"
	"io"
	"os"
	"strings"
)

// FilterArgs keeps the arguments naming one of allowedFlags together with
// their values. A flag may be given as "-f value" or "-f=value"; a following
// argument that starts with '-' is never taken as a value. The result is
// never nil.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if name, _, ok := strings.Cut(arg, "="); ok && strings.HasPrefix(arg, "-") {
			if _, keep := allowed[name]; keep {
				filtered = append(filtered, arg)
			}
			continue
		}

		if _, keep := allowed[arg]; !keep {
			continue
		}
		filtered = append(filtered, arg)
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// Parse defines flags on a fresh FlagSet and parses the part of args that
// names them. Usage output is discarded; the caller decides how to report err.
func Parse(args []string, allowedFlags []string, define func(fs *flag.FlagSet)) error {
	fs := flag.NewFlagSet("flagx", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	define(fs)
	return fs.Parse(FilterArgs(args, allowedFlags))
}

// ConfigPath returns the JSON config file named by -c or -config in args,
// falling back to the envVar environment variable. The last flag wins.
// An empty result means no file was requested.
func ConfigPath(args []string, envVar string) string {
	var path string

	_ = Parse(args, []string{"-c", "-config"}, func(fs *flag.FlagSet) {
		fs.StringVar(&path, "config", "", "path to config file")
		fs.StringVar(&path, "c", "", "path to config file (short)")
	})

	if path == "" && envVar != "" {
		path = os.Getenv(envVar)
	}
	return path
}
