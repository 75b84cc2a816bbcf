package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zx06/credkeep/internal/errors"
	"github.com/zx06/credkeep/internal/output"
)

// SaveFlags holds the flags for the save command
type SaveFlags struct {
	Stdin bool
}

// GetFlags holds the flags for the get command
type GetFlags struct {
	Raw bool
}

// NewSaveCommand creates the save command
func NewSaveCommand(w *output.Writer) *cobra.Command {
	flags := &SaveFlags{}
	cmd := &cobra.Command{
		Use:   "save <account>",
		Short: "Save a password for an account (create or overwrite)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSave(cmd, args, flags, w)
		},
	}
	cmd.Flags().BoolVar(&flags.Stdin, "stdin", false, "Read the secret from stdin (all input, one trailing newline stripped) instead of prompting")
	return cmd
}

func runSave(cmd *cobra.Command, args []string, flags *SaveFlags, w *output.Writer) error {
	format, err := parseOutputFormat(GlobalConfig.FormatStr)
	if err != nil {
		return err
	}
	account := args[0]

	secret, err := readSecret(cmd.InOrStdin(), w.Err, flags.Stdin)
	if err != nil {
		return err
	}

	store, xe := openStore()
	if xe != nil {
		return xe
	}
	if err := store.Save(cmd.Context(), account, secret); err != nil {
		return err
	}
	return w.WriteOK(format, map[string]any{"account": account, "service": store.Service(), "saved": true})
}

// readSecret reads the secret from stdin (--stdin) or an echo-off TTY prompt.
func readSecret(in io.Reader, prompt io.Writer, fromStdin bool) (string, error) {
	if fromStdin {
		b, err := io.ReadAll(in)
		if err != nil {
			return "", errors.Wrap(errors.CodeInvalidArgument, "failed to read secret from stdin", nil, err)
		}
		// 只去掉一个结尾换行，多行 secret 原样保留
		s := string(b)
		if strings.HasSuffix(s, "\r\n") {
			return strings.TrimSuffix(s, "\r\n"), nil
		}
		return strings.TrimSuffix(s, "\n"), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New(errors.CodeInvalidArgument, "stdin is not a terminal; use --stdin to pipe the secret", nil)
	}
	_, _ = fmt.Fprint(prompt, "Password: ")
	first, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(prompt)
	if err != nil {
		return "", errors.Wrap(errors.CodeInvalidArgument, "failed to read password", nil, err)
	}
	_, _ = fmt.Fprint(prompt, "Confirm password: ")
	second, err := term.ReadPassword(fd)
	_, _ = fmt.Fprintln(prompt)
	if err != nil {
		return "", errors.Wrap(errors.CodeInvalidArgument, "failed to read password", nil, err)
	}
	if string(first) != string(second) {
		return "", errors.New(errors.CodeInvalidArgument, "passwords do not match", nil)
	}
	return string(first), nil
}

// NewGetCommand creates the get command
func NewGetCommand(w *output.Writer) *cobra.Command {
	flags := &GetFlags{}
	cmd := &cobra.Command{
		Use:   "get <account>",
		Short: "Retrieve the password for an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, args, flags, w)
		},
	}
	cmd.Flags().BoolVar(&flags.Raw, "raw", false, "Print only the secret, without the envelope")
	return cmd
}

func runGet(cmd *cobra.Command, args []string, flags *GetFlags, w *output.Writer) error {
	format, err := parseOutputFormat(GlobalConfig.FormatStr)
	if err != nil {
		return err
	}
	account := args[0]

	store, xe := openStore()
	if xe != nil {
		return xe
	}
	secret, err := store.Retrieve(cmd.Context(), account)
	if err != nil {
		return err
	}
	if flags.Raw {
		return w.WriteRaw(secret)
	}
	return w.WriteOK(format, map[string]any{"account": account, "service": store.Service(), "secret": secret})
}

// NewDeleteCommand creates the delete command
func NewDeleteCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <account>",
		Short: "Delete the password for an account (absent is not an error)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(cmd, args, w)
		},
	}
}

func runDelete(cmd *cobra.Command, args []string, w *output.Writer) error {
	format, err := parseOutputFormat(GlobalConfig.FormatStr)
	if err != nil {
		return err
	}
	account := args[0]

	store, xe := openStore()
	if xe != nil {
		return xe
	}
	if err := store.Delete(cmd.Context(), account); err != nil {
		return err
	}
	return w.WriteOK(format, map[string]any{"account": account, "service": store.Service(), "deleted": true})
}
