package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/nfrund/sigboard/cmd/sigboard/internal/output"
	"github.com/nfrund/sigboard/internal/apiclient"
	"github.com/nfrund/sigboard/internal/app"
	"github.com/nfrund/sigboard/internal/auth"
	"github.com/nfrund/sigboard/internal/config"
	"github.com/nfrund/sigboard/internal/domain"
	"github.com/nfrund/sigboard/internal/guard"
	"github.com/nfrund/sigboard/internal/logging"
	"github.com/nfrund/sigboard/internal/session"
)

// errNotSignedIn is returned by commands that need a stored token.
var errNotSignedIn = errors.New("not signed in; run 'sigboard login' first")

// Options lets tests run commands against their own configuration,
// filesystem, transport and terminal.
type Options struct {
	Config     *config.Config
	Fs         afero.Fs
	HTTPClient apiclient.HTTPClient
	In         io.Reader
	Out        io.Writer
	Err        io.Writer
	// ReadPassword reads a secret without echoing it. It defaults to the
	// terminal behind In, when In is one.
	ReadPassword func() ([]byte, error)
}

// cli is the state shared by every command of one invocation.
type cli struct {
	opts   Options
	format string
	in     *bufio.Reader

	application *app.App
}

// NewRootCmd builds the command tree.
func NewRootCmd(opts Options) *cobra.Command {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.ReadPassword == nil {
		if f, ok := opts.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			opts.ReadPassword = func() ([]byte, error) { return term.ReadPassword(int(f.Fd())) }
		}
	}
	c := &cli{opts: opts, in: bufio.NewReader(opts.In)}

	root := &cobra.Command{
		Use:   "sigboard",
		Short: "Manage your email signatures from the terminal",
		Long: `sigboard signs in to the signature API and manages signatures and
their tracked links. The session token is kept in a file between runs.

Use "sigboard [command] --help" for more information about a command.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	root.PersistentFlags().StringVar(&c.format, "format", output.FormatTable, "output format: table or json")

	root.AddCommand(
		newVersionCmd(),
		newLoginCmd(c),
		newRegisterCmd(c),
		newLogoutCmd(c),
		newDashboardCmd(c),
		newSignaturesCmd(c),
		newLinksCmd(c),
	)
	return root
}

// Execute runs the CLI and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd(Options{}).ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// app builds the service container on first use, so commands that never
// reach the API do not need it configured.
func (c *cli) app() (*app.App, error) {
	if c.application != nil {
		return c.application, nil
	}
	cfg := c.opts.Config
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(false); err != nil {
		return nil, err
	}
	logger := logging.Setup(c.opts.Err, cfg.GetLogFormat(), cfg.GetLogLevel())
	c.application = app.New(cfg, logger, app.Options{
		Version:    version,
		Fs:         c.opts.Fs,
		HTTPClient: c.opts.HTTPClient,
	})
	return c.application, nil
}

// run wraps a command so the container is released however it ends.
func (c *cli) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		err := fn(cmd, args)
		return errors.Join(err, c.close())
	}
}

func (c *cli) close() error {
	if c.application == nil {
		return nil
	}
	err := c.application.Close()
	c.application = nil
	return err
}

func (c *cli) printer() (*output.Printer, error) {
	return output.New(c.opts.Out, c.format)
}

// tokens returns the token file and the auth service.
func (c *cli) tokens() (*session.FileStore, *auth.Service, error) {
	a, err := c.app()
	if err != nil {
		return nil, nil, err
	}
	tokens, err := a.TokenFile()
	if err != nil {
		return nil, nil, err
	}
	svc, err := a.Auth()
	if err != nil {
		return nil, nil, err
	}
	return tokens, svc, nil
}

// signedIn returns an API client carrying the stored token. It fails without
// touching the network when there is none.
func (c *cli) signedIn() (*apiclient.Client, error) {
	tokens, _, err := c.tokens()
	if err != nil {
		return nil, err
	}
	if guard.CanEnter(tokens, true) != guard.Allow {
		return nil, errNotSignedIn
	}
	api, err := c.application.API()
	if err != nil {
		return nil, err
	}
	return api.WithSession(tokens), nil
}

// checkSession ends the stored session when the API rejected its token.
func (c *cli) checkSession(ctx context.Context, err error) error {
	if err == nil || !errors.Is(err, domain.ErrUnauthorized) {
		return err
	}
	tokens, svc, terr := c.tokens()
	if terr != nil {
		return errors.Join(err, terr)
	}
	svc.SignOut(ctx, tokens, true)
	return errors.New(domain.GenericMessage(domain.KindUnauthorized))
}

// prompt reads one line from the terminal.
func (c *cli) prompt(label string) (string, error) {
	fmt.Fprint(c.opts.Err, label)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("read %s: %w", label, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// promptSecret reads a password. On a terminal nothing is echoed; piped input
// is read as a plain line.
func (c *cli) promptSecret(label string) (string, error) {
	if c.opts.ReadPassword == nil {
		return c.prompt(label)
	}
	fmt.Fprint(c.opts.Err, label)
	secret, err := c.opts.ReadPassword()
	fmt.Fprintln(c.opts.Err)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", label, err)
	}
	return strings.TrimRight(string(secret), "\r\n"), nil
}
