package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zx06/credkeep/internal/dockerhelper"
)

// NewDockerHelperCommand creates the docker credential helper command.
// Symlink the binary as docker-credential-credkeep, or call it directly.
func NewDockerHelperCommand() *cobra.Command {
	return &cobra.Command{
		Use:       "docker-helper <store|get|erase|list|version>",
		Short:     "Docker credential helper backed by the credential store",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"store", "get", "erase", "list", "version"},
		RunE: func(cmd *cobra.Command, args []string) error {
			store, xe := openStore()
			if xe != nil {
				return xe
			}
			h := dockerhelper.New(cmd.Context(), store)
			if err := dockerhelper.Run(h, args[0], cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				// 协议要求错误以纯文本写到 stdout
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), err.Error())
				return &reportedError{err: normalizeErr(err)}
			}
			return nil
		},
	}
}
