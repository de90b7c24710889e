package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"cephcsi-tools/src/ceph"
	"cephcsi-tools/src/kube"
	"cephcsi-tools/src/trace"
)

func newTraceCmd(stdout io.Writer) *cobra.Command {
	var (
		pvcName            string
		namespace          string
		rookNamespace      string
		userID             string
		userKey            string
		configMap          string
		configMapNamespace string
		toolbox            bool
	)

	cmd := &cobra.Command{
		Use:   "tracevol",
		Short: "Trace backend RBD images and CephFS subvolumes from PVCs",
		Long: "Cross-references PersistentVolumeClaims against the ceph backend:\n" +
			"the csi omap metadata (forward and reverse entries) and the live\n" +
			"image/subvolume inventory, and reports one table row per claim.",
		RunE: func(cmd *cobra.Command, args []string) error {
			command, err := kubeCommand(cmd)
			if err != nil {
				return err
			}
			kubeconfig, _ := cmd.Root().PersistentFlags().GetString("kubeconfig")

			cfg := trace.Config{
				Command:            command,
				Kubeconfig:         kubeconfig,
				Namespace:          namespace,
				PVCName:            pvcName,
				RookNamespace:      rookNamespace,
				UserID:             userID,
				UserKey:            userKey,
				ConfigMap:          configMap,
				ConfigMapNamespace: configMapNamespace,
				Toolbox:            toolbox,
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			kc, err := kube.New(cfg.Kubeconfig)
			if err != nil {
				return err
			}
			conn := &ceph.ExecConn{
				Command:       cfg.Command,
				Kubeconfig:    cfg.Kubeconfig,
				RookNamespace: cfg.RookNamespace,
				UserID:        cfg.UserID,
				UserKey:       cfg.UserKey,
				Toolbox:       cfg.Toolbox,
				ToolboxPod: func(ctx context.Context) (string, error) {
					return kc.ToolboxPodName(ctx, cfg.RookNamespace)
				},
			}

			report, err := trace.New(cfg, kc, conn).Run(ctx)
			if err != nil {
				return err
			}
			return report.Render(stdout)
		},
	}

	cmd.Flags().StringVarP(&pvcName, "pvcname", "p", "", "PVC name, empty traces every PVC in the namespace")
	cmd.Flags().StringVarP(&namespace, "namespace", "n", "default", "namespace in which the PVCs were created")
	cmd.Flags().StringVar(&rookNamespace, "rook-namespace", "rook-ceph", "namespace where rook runs")
	cmd.Flags().StringVar(&userID, "id", "admin", "user ID to connect to the ceph cluster")
	cmd.Flags().StringVar(&userKey, "key", "", "user key to connect to the ceph cluster")
	cmd.Flags().StringVar(&configMap, "configmap", "ceph-csi-config", "configmap holding the cephcsi configuration")
	cmd.Flags().StringVar(&configMapNamespace, "configmap-namespace", "default", "namespace where the configmap exists")
	cmd.Flags().BoolVarP(&toolbox, "toolbox", "t", true, "run ceph commands inside the rook toolbox pod")

	return cmd
}
