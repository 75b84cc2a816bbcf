package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/zx06/credkeep/internal/errors"
	"github.com/zx06/credkeep/internal/keychain"
	"github.com/zx06/credkeep/internal/output"
)

// NewStatusCommand creates the status command
func NewStatusCommand(w *output.Writer) *cobra.Command {
	return &cobra.Command{
		Use:   "status <code>",
		Short: "Describe a platform status code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := parseOutputFormat(GlobalConfig.FormatStr)
			if err != nil {
				return err
			}
			n, err := strconv.ParseInt(args[0], 10, 32)
			if err != nil {
				return errors.Wrap(errors.CodeInvalidArgument, "status code must be an integer", map[string]any{"code": args[0]}, err)
			}
			st := keychain.Status(n)
			return w.WriteOK(format, map[string]any{"status": n, "message": st.String()})
		},
	}
}
