package kube

import (
	"context"

	corev1 "k8s.io/api/core/v1"
)

// ToolboxLabelSelector identifies the rook toolbox pod used to run ceph
// commands inside the cluster.
const ToolboxLabelSelector = "app=rook-ceph-tools"

// Client is a narrow interface over the Kubernetes API used by the tracer.
// Keep it small and focused on what we actually need so it stays mockable.
type Client interface {
	// Claims
	ListPVCs(ctx context.Context, namespace string) ([]corev1.PersistentVolumeClaim, error)
	GetPVC(ctx context.Context, namespace, name string) (*corev1.PersistentVolumeClaim, error)

	// Volumes
	GetPV(ctx context.Context, name string) (*corev1.PersistentVolume, error)

	// Operator configuration
	GetConfigMap(ctx context.Context, namespace, name string) (*corev1.ConfigMap, error)

	// ToolboxPodName returns the name of the rook toolbox pod in the
	// given namespace.
	ToolboxPodName(ctx context.Context, namespace string) (string, error)
}
