package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// addGlobalFlags adds the persistent flags shared by the
// kubernetes-facing subcommands.
func addGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("command", "c", "oc", "kubectl or oc command")
	cmd.PersistentFlags().StringP("kubeconfig", "k", "", "kubernetes configuration")
	cmd.PersistentFlags().BoolP("debug", "d", false, "log commands and their output")
}

// kubeCommand reads and validates the --command flag. Only kubectl and
// oc are supported as the toolbox exec transport.
func kubeCommand(cmd *cobra.Command) (string, error) {
	command, _ := cmd.Root().PersistentFlags().GetString("command")
	if command != "kubectl" && command != "oc" {
		return "", fmt.Errorf("%s command not supported", command)
	}
	return command, nil
}
