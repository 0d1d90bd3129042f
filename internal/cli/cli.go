package cli

import (
	"strings"

	"github.com/spf13/pflag"

	"hancompose/internal/config"
	"hancompose/internal/layout"
)

type Options struct {
	ConfigPath  string
	LayoutName  string
	KeypairPath string
	LogLevel    string
	SocketPath  string
	Mode        string
	Decompose   bool
	Remote      bool
	NoColor     bool
}

// Bind registers the global flags on fs. Defaults are left empty so Merge can
// tell an explicit flag from the config file value.
func Bind(fs *pflag.FlagSet, opts *Options) {
	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "path to hancompose.ini")
	fs.StringVarP(&opts.LayoutName, "layout", "l", "", "keyboard layout ("+strings.Join(layout.AvailableLayouts(), ", ")+")")
	fs.StringVar(&opts.KeypairPath, "keypairs", "", "JSON file describing custom keypairs to merge into the layout")
	fs.StringVar(&opts.LogLevel, "log-level", "", "log level (debug, info, warn, error)")
	fs.StringVar(&opts.SocketPath, "socket", "", "unix socket of the compose server")
	fs.StringVarP(&opts.Mode, "mode", "m", "", "line transform (compose, decompose, annotate)")
	fs.BoolVar(&opts.NoColor, "no-color", false, "disable colored log output")
}

// BindCompose registers the flags of the compose command.
func BindCompose(fs *pflag.FlagSet, opts *Options) {
	fs.BoolVarP(&opts.Decompose, "decompose", "d", false, "also print the jamo spelling of the composed text (--mode annotate)")
	fs.BoolVar(&opts.Remote, "remote", false, "compose through the server socket, falling back to local composition")
}

// Merge overlays the flags that were set on fs onto cfg. An explicit --mode
// wins over --decompose.
func Merge(cfg config.Config, fs *pflag.FlagSet, opts Options) config.Config {
	if fs.Changed("layout") {
		cfg.Layout = opts.LayoutName
	}
	if fs.Changed("keypairs") {
		cfg.KeypairPath = opts.KeypairPath
	}
	if fs.Changed("log-level") {
		cfg.LogLevel = strings.ToLower(opts.LogLevel)
	}
	if fs.Changed("socket") {
		cfg.SocketPath = opts.SocketPath
	}
	if fs.Changed("decompose") && opts.Decompose {
		cfg.Mode = "annotate"
	}
	if fs.Changed("mode") {
		cfg.Mode = strings.ToLower(strings.TrimSpace(opts.Mode))
	}
	return cfg
}

func Usage() string {
	return `hancompose - Hangul jamo composer
Usage: hancompose [command] [options]

Commands:
  compose [TEXT...]       Compose typed keys (or stdin lines) into Hangul
  decompose [TEXT...]     Spell syllables as the jamo that type them
  interactive             Type in the terminal with live composition
  serve                   Answer compose requests on a unix socket
  layouts                 List available layouts

Options:
  -c, --config PATH       Path to hancompose.ini (default: $HANCOMPOSE_CONFIG or the user config dir)
  -l, --layout NAME       Keyboard layout (default: dubeolsik)
      --keypairs PATH     JSON file describing custom keypairs to merge into the layout
      --log-level LEVEL   Log level: debug, info, warn, error (default: info)
      --socket PATH       Unix socket of the compose server (default: $XDG_RUNTIME_DIR/hancompose.sock)
  -m, --mode MODE         Line transform: compose, decompose, annotate (default: compose)
      --no-color          Disable colored log output
  -h, --help              Show this help message`
}
