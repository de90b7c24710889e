package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"cephcsi-tools/src/gh"
)

// NewRootCmd returns the root cobra command for the cephcsi-tools CLI.
func NewRootCmd(stdout, stderr io.Writer) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cephcsi-tools",
		Short:         "Diagnostic and CI helpers for ceph-csi deployments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			configureLogging(cmd)
		},
	}

	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	addGlobalFlags(cmd)

	// Subcommands
	cmd.AddCommand(newVersionCmd(stdout))
	cmd.AddCommand(newTraceCmd(stdout))
	cmd.AddCommand(newLabelsCmd(stdout))
	cmd.AddCommand(newPatchReleaseCmd(stdout))
	cmd.AddCommand(newRetestCmd())

	return cmd
}

// Execute runs the CLI with the process stdio.
func Execute() int {
	root := NewRootCmd(os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		// a missing label is a signalling condition for CI, not a failure
		if errors.Is(err, gh.ErrLabelNotSet) {
			return 2
		}
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// configureLogging raises the klog verbosity when --debug is set, so
// per-check failure reasons and executed commands become visible.
func configureLogging(cmd *cobra.Command) {
	fs := flag.NewFlagSet("klog", flag.ContinueOnError)
	klog.InitFlags(fs)
	if debug, _ := cmd.Root().PersistentFlags().GetBool("debug"); debug {
		_ = fs.Set("v", "1")
	}
}
