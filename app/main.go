package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chzyer/readline"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/portfolio-shell/psh/internal/config"
	"github.com/portfolio-shell/psh/internal/content"
	"github.com/portfolio-shell/psh/internal/logging"
	"github.com/portfolio-shell/psh/internal/prefs"
	"github.com/portfolio-shell/psh/internal/session"
	"github.com/portfolio-shell/psh/internal/vfs"
	"github.com/portfolio-shell/psh/internal/viewer"
	"go.uber.org/zap"
)

const (
	EXIT string = "exit"
	QUIT string = "quit"
)

type options struct {
	configPath string
	logLevel   string
	command    string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:          "psh",
		Short:        "Browse the portfolio through a simulated shell",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	cmd.Flags().StringVarP(&opts.command, "command", "c", "", "run one command and exit")
	cmd.AddCommand(newPrefsCmd(opts))
	return cmd
}

func setup(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.logLevel != "" {
		cfg.LogLevel = opts.logLevel
	}
	err = logging.Init(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, OutputPath: cfg.LogOutput})
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return cfg, nil
}

// openPrefs falls back to memory when the preference file is unusable, so a
// locked or unwritable file never stops the shell.
func openPrefs(cfg *config.Config) prefs.Store {
	store, err := prefs.Open(cfg.PrefsPath)
	if err != nil {
		logging.L().Warn("preferences unavailable, using memory", zap.Error(err))
		return prefs.NewMemStore()
	}
	return store
}

func run(opts *options, in io.Reader, out io.Writer) error {
	cfg, err := setup(opts)
	if err != nil {
		return err
	}
	defer logging.Sync()

	store := openPrefs(cfg)
	defer store.Close()
	root := content.Default()

	if opts.command == "" && isTerminal(in) && isTerminal(out) {
		return runInteractive(root, cfg, store)
	}

	var termOpts []viewer.Option
	if !isTerminal(out) {
		termOpts = append(termOpts, viewer.WithPlain())
	}
	term := viewer.New(out, append(termOpts, viewer.WithWrap(cfg.Wrap))...)
	defer term.HideMatrix()
	sess := newSession(root, cfg, store, term)

	if opts.command != "" {
		printEntries(out, sess.Execute(opts.command))
		return nil
	}
	return runLines(sess, in, out)
}

func newSession(root *vfs.Node, cfg *config.Config, store prefs.Store, term *viewer.Terminal) *session.Session {
	sess := session.New(root,
		session.WithViewer(term),
		session.WithHost(term),
		session.WithPrefs(store),
		session.WithLogger(logging.L()),
		session.WithMatrixDuration(cfg.MatrixDuration),
	)
	term.SetDark(sess.DarkMode())
	return sess
}

// runLines executes one command per input line until EOF or exit.
func runLines(sess *session.Session, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if isExit(line) {
			return nil
		}
		printEntries(out, sess.Execute(line))
	}
	return scanner.Err()
}

func runInteractive(root *vfs.Node, cfg *config.Config, store prefs.Store) error {
	completer := &tabCompleter{}
	keys := &keyHandler{}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:              "$ ",
		AutoComplete:        completer,
		Listener:            keys,
		FuncFilterInputRune: keys.filter,
		HistoryLimit:        cfg.HistoryLimit,
		InterruptPrompt:     "^C",
		EOFPrompt:           EXIT,
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	term := viewer.New(rl.Stdout(), viewer.WithWrap(cfg.Wrap))
	defer term.HideMatrix()
	sess := newSession(root, cfg, store, term)
	completer.session, completer.screen = sess, rl
	keys.session, keys.term = sess, term

	printEntries(rl.Stdout(), sess.Boot())
	fmt.Fprintln(rl.Stdout(), lipgloss.NewStyle().Faint(true).Render(sess.Hint()))

	for {
		rl.SetPrompt(prompt(sess))
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil { // EOF or Ctrl+D
			return nil
		}
		if isExit(line) {
			return nil
		}
		printEntries(rl.Stdout(), sess.Execute(line))
	}
}

func prompt(sess *session.Session) string {
	user := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	if !sess.DarkMode() {
		user = lipgloss.NewStyle().Foreground(lipgloss.Color("22"))
	}
	mode := ""
	if sess.NoPopup() {
		mode = "[i] "
	}
	return mode + user.Render("guest@portfolio") + ":" + sess.Path() + "$ "
}

func printEntries(w io.Writer, entries []session.Entry) {
	for _, e := range entries {
		if e.Output != "" {
			fmt.Fprintln(w, e.Output)
		}
	}
}

func isExit(line string) bool {
	switch strings.TrimSpace(line) {
	case EXIT, QUIT:
		return true
	}
	return false
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
