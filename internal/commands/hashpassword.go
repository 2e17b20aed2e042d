package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"cloudeng.io/logging/ctxlog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/klabast/wb-services/feiertage/internal/app"
)

// HashPasswordOptions holds the flags of the hash-password command.
type HashPasswordOptions struct {
	Overwrite      bool
	InsecureUnmask bool
}

// NewHashPasswordCommand creates the hash-password command.
func NewHashPasswordCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HashPasswordOptions{}
	cmd := &cobra.Command{
		Use:   "hash-password",
		Short: "Create the auth file for the admin endpoints",
		Long: `Creates an auth file with username and hashed password (Argon2id).

Environment Variables:
  AUTH_FILE    Path to auth file (default: auth.secret next to the binary)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rootOpts.loadConfig()
			if err != nil {
				return err
			}
			authFile, err := app.AuthFilePath(cfg.AuthFile)
			if err != nil {
				return err
			}
			p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err := runHashPassword(p, authFile, opts); err != nil {
				return err
			}
			ctxlog.Logger(cmd.Context()).Info("auth file created", "file", authFile)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.Overwrite, "overwrite", false, "Overwrite existing auth file without asking")
	cmd.Flags().BoolVar(&opts.InsecureUnmask, "insecure-unmask-password", false, "Show password as plain text (INSECURE!)")
	return cmd
}

func runHashPassword(p *prompter, authFile string, opts *HashPasswordOptions) error {
	username, err := p.readLine("Enter username: ")
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}
	if username == "" {
		return errors.New("username cannot be empty")
	}
	if strings.Contains(username, ":") {
		return errors.New("username must not contain ':'")
	}

	readPassword := p.readPassword
	if opts.InsecureUnmask {
		fmt.Fprintln(p.errOut, "⚠️  WARNING: Password will be visible on screen!")
		readPassword = p.readLine
	}
	password, err := readPassword("Enter password:   ")
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}
	confirm, err := readPassword("Confirm password: ")
	if err != nil {
		return fmt.Errorf("reading password confirmation: %w", err)
	}
	if password == "" {
		return errors.New("password cannot be empty")
	}
	if password != confirm {
		return errors.New("passwords do not match")
	}

	overwrite := opts.Overwrite
	if _, err := os.Stat(authFile); err == nil && !overwrite {
		fmt.Fprintf(p.out, "Auth file already exists: %s\n", authFile)
		answer, err := p.readLine("Overwrite? (y/N): ")
		if err != nil {
			return err
		}
		answer = strings.ToLower(answer)
		if answer != "y" && answer != "yes" {
			return errors.New("aborted")
		}
		overwrite = true
	}

	if err := app.CreateAuthFile(authFile, username, password, overwrite); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "✅ Auth file created: %s (mode: 0400 read-only)\n", authFile)
	fmt.Fprintf(p.out, "   Username: %s\n", username)
	return nil
}

// prompter reads answers from a terminal or, for scripts, from plain lines
// of input.
type prompter struct {
	in     *bufio.Reader
	fd     int
	tty    bool
	out    io.Writer
	errOut io.Writer
}

func newPrompter(in io.Reader, out, errOut io.Writer) *prompter {
	p := &prompter{in: bufio.NewReader(in), fd: -1, out: out, errOut: errOut}
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		p.fd, p.tty = int(f.Fd()), true
	}
	return p
}

func (p *prompter) readLine(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads a password and displays asterisks.
func (p *prompter) readPassword(prompt string) (string, error) {
	if !p.tty {
		return p.readLine(prompt)
	}
	fmt.Fprint(p.out, prompt)

	oldState, err := term.MakeRaw(p.fd)
	if err != nil {
		// Fallback to hidden input without asterisks
		password, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		return string(password), err
	}
	defer term.Restore(p.fd, oldState)

	var password []rune
	for {
		char, _, err := p.in.ReadRune()
		if err != nil {
			fmt.Fprint(p.out, "\r\n")
			return string(password), err
		}
		switch char {
		case '\n', '\r':
			fmt.Fprint(p.out, "\r\n")
			return string(password), nil
		case 127, 8: // Backspace or Delete
			if len(password) > 0 {
				password = password[:len(password)-1]
				fmt.Fprint(p.out, "\b \b")
			}
		case 3: // Ctrl+C
			fmt.Fprint(p.out, "\r\n")
			return "", errors.New("aborted")
		default:
			if char >= 32 && char != 127 {
				password = append(password, char)
				fmt.Fprint(p.out, "*")
			}
		}
	}
}
