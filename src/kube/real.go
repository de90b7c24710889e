package kube

import (
	"context"
	"fmt"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/tools/clientcmd"
)

type client struct {
	cs kubernetes.Interface
}

// New builds a Client from a kubeconfig path. An empty path falls back
// to the default loading rules (KUBECONFIG, ~/.kube/config, in-cluster).
func New(kubeconfig string) (Client, error) {
	rules := clientcmd.NewDefaultClientConfigLoadingRules()
	if kubeconfig != "" {
		rules.ExplicitPath = kubeconfig
	}
	cfg, err := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(rules, &clientcmd.ConfigOverrides{}).ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load kubernetes configuration: %w", err)
	}
	cs, err := kubernetes.NewForConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("create kubernetes client: %w", err)
	}
	return &client{cs: cs}, nil
}

// NewFromClientset wraps an existing clientset. Tests use it with the
// fake clientset from k8s.io/client-go/kubernetes/fake.
func NewFromClientset(cs kubernetes.Interface) Client {
	return &client{cs: cs}
}

func (c *client) ListPVCs(ctx context.Context, namespace string) ([]corev1.PersistentVolumeClaim, error) {
	list, err := c.cs.CoreV1().PersistentVolumeClaims(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list pvcs in %s: %w", namespace, err)
	}
	return list.Items, nil
}

func (c *client) GetPVC(ctx context.Context, namespace, name string) (*corev1.PersistentVolumeClaim, error) {
	pvc, err := c.cs.CoreV1().PersistentVolumeClaims(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get pvc %s/%s: %w", namespace, name, err)
	}
	return pvc, nil
}

func (c *client) GetPV(ctx context.Context, name string) (*corev1.PersistentVolume, error) {
	pv, err := c.cs.CoreV1().PersistentVolumes().Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get pv %s: %w", name, err)
	}
	return pv, nil
}

func (c *client) GetConfigMap(ctx context.Context, namespace, name string) (*corev1.ConfigMap, error) {
	cm, err := c.cs.CoreV1().ConfigMaps(namespace).Get(ctx, name, metav1.GetOptions{})
	if err != nil {
		return nil, fmt.Errorf("get configmap %s/%s: %w", namespace, name, err)
	}
	return cm, nil
}

func (c *client) ToolboxPodName(ctx context.Context, namespace string) (string, error) {
	pods, err := c.cs.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{LabelSelector: ToolboxLabelSelector})
	if err != nil {
		return "", fmt.Errorf("list toolbox pods in %s: %w", namespace, err)
	}
	if len(pods.Items) == 0 {
		return "", fmt.Errorf("no toolbox pod found in namespace %s", namespace)
	}
	return pods.Items[0].Name, nil
}
