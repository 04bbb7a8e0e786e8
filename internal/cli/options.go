package cli

import (
	"io"

	"github.com/runoshun/taskline/internal/app"
	"github.com/spf13/pflag"
)

// addGlobalFlags registers the flags that are needed before the container exists.
func addGlobalFlags(fs *pflag.FlagSet, o *app.Options) {
	fs.StringVar(&o.ConfigPath, "config", "", "Config file loaded after the global config")
	fs.StringVar(&o.BaseURL, "api-url", "", "Task Line API origin (overrides config and TASKLINE_API_URL)")
}

// ParseGlobalOptions extracts --config and --api-url from args.
// Unknown flags and parse errors are ignored; cobra reports them later.
func ParseGlobalOptions(args []string) app.Options {
	var o app.Options
	fs := pflag.NewFlagSet("taskline", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	addGlobalFlags(fs, &o)
	_ = fs.Parse(args)
	return o
}
