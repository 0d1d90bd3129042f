package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hancompose/internal/app"
	"hancompose/internal/cli"
	"hancompose/internal/common"
	"hancompose/internal/config"
	"hancompose/internal/layout"
)

// state is filled by the root command before any subcommand runs.
type state struct {
	opts   cli.Options
	cfg    config.Config
	layout *layout.Layout
	mode   app.Mode
	logger *slog.Logger
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "hancompose: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	st := &state{}
	root := &cobra.Command{
		Use:           "hancompose",
		Short:         "Compose Hangul syllables from typed jamo",
		Long:          cli.Usage(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.prepare(cmd)
		},
	}
	cli.Bind(root.PersistentFlags(), &st.opts)

	root.AddCommand(
		newComposeCommand(st),
		newDecomposeCommand(st),
		newInteractiveCommand(st),
		newServeCommand(st),
		newLayoutsCommand(),
	)
	return root
}

func (st *state) prepare(cmd *cobra.Command) error {
	path := st.opts.ConfigPath
	if path == "" {
		path = common.DefaultConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	st.cfg = cli.Merge(cfg, cmd.Flags(), st.opts)

	logger, err := app.NewLogger(cmd.ErrOrStderr(), st.cfg.LogLevel, st.opts.NoColor)
	if err != nil {
		return err
	}
	st.logger = logger

	st.mode, err = app.ParseMode(st.cfg.Mode)
	if err != nil {
		return err
	}
	st.layout, err = app.ResolveLayout(st.cfg.Layout, st.cfg.KeypairPath)
	if err != nil {
		return err
	}
	logger.Debug("configuration loaded", "config", path, "layout", st.layout.Name(), "mode", st.mode)
	return nil
}

func newComposeCommand(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose [TEXT...]",
		Short: "Compose typed keys (or stdin lines) into Hangul",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := inputLines(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if st.opts.Remote {
				replies, err := app.ComposeViaSocket(cmd.Context(), st.cfg.SocketPath, lines)
				if err == nil {
					return writeLines(cmd.OutOrStdout(), replies)
				}
				st.logger.Warn("falling back to local composition", "socket", st.cfg.SocketPath, "err", err)
			}
			return transformLines(cmd.OutOrStdout(), st, st.mode, lines)
		},
	}
	cli.BindCompose(cmd.Flags(), &st.opts)
	return cmd
}

func newDecomposeCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "decompose [TEXT...]",
		Short: "Spell syllables as the jamo that type them",
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := inputLines(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			return transformLines(cmd.OutOrStdout(), st, app.ModeDecompose, lines)
		},
	}
}

func newInteractiveCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Type in the terminal with live composition (Esc or Ctrl-C quits)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.RunInteractive(cmd.Context(), st.layout, cmd.OutOrStdout(), st.mode, st.logger, nil)
		},
	}
}

func newServeCommand(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Answer compose requests on a unix socket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			server, err := app.StartTranslationServer(st.cfg.SocketPath, st.layout, st.mode, st.logger)
			if err != nil {
				return err
			}
			if server == nil {
				return fmt.Errorf("serve: no socket path configured")
			}
			defer server.Close()

			select {
			case <-cmd.Context().Done():
				st.logger.Info("compose server stopping")
				return nil
			case err := <-server.Err():
				if err != nil {
					return fmt.Errorf("translation server: %w", err)
				}
				return nil
			}
		},
	}
}

func newLayoutsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "layouts",
		Short: "List available layouts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeLines(cmd.OutOrStdout(), layout.AvailableLayouts())
		},
	}
}

// inputLines returns args when given, else every line of in.
func inputLines(in io.Reader, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), 1024*1024)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return lines, nil
}

func transformLines(out io.Writer, st *state, mode app.Mode, lines []string) error {
	converted := make([]string, 0, len(lines))
	for i, line := range lines {
		result, err := mode.Apply(st.layout, line)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		converted = append(converted, result)
	}
	return writeLines(out, converted)
}

func writeLines(out io.Writer, lines []string) error {
	writer := bufio.NewWriter(out)
	for _, line := range lines {
		if _, err := writer.WriteString(line); err != nil {
			return err
		}
		if err := writer.WriteByte('\n'); err != nil {
			return err
		}
	}
	return writer.Flush()
}
