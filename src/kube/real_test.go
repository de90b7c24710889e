package kube

import (
	"context"
	"testing"

	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/client-go/kubernetes/fake"
)

func TestListPVCs(t *testing.T) {
	cs := fake.NewSimpleClientset(
		&corev1.PersistentVolumeClaim{ObjectMeta: metav1.ObjectMeta{Name: "a", Namespace: "default"}},
		&corev1.PersistentVolumeClaim{ObjectMeta: metav1.ObjectMeta{Name: "b", Namespace: "default"}},
		&corev1.PersistentVolumeClaim{ObjectMeta: metav1.ObjectMeta{Name: "c", Namespace: "other"}},
	)
	client := NewFromClientset(cs)

	pvcs, err := client.ListPVCs(context.Background(), "default")
	if err != nil {
		t.Fatalf("ListPVCs: %v", err)
	}
	if len(pvcs) != 2 {
		t.Fatalf("expected 2 claims in default, got %d", len(pvcs))
	}
}

func TestGetPVCMissing(t *testing.T) {
	client := NewFromClientset(fake.NewSimpleClientset())
	if _, err := client.GetPVC(context.Background(), "default", "nope"); err == nil {
		t.Fatal("expected an error for a missing claim")
	}
}

func TestToolboxPodName(t *testing.T) {
	cs := fake.NewSimpleClientset(
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{
			Name:      "rook-ceph-tools-abc",
			Namespace: "rook-ceph",
			Labels:    map[string]string{"app": "rook-ceph-tools"},
		}},
		&corev1.Pod{ObjectMeta: metav1.ObjectMeta{
			Name:      "rook-ceph-operator-xyz",
			Namespace: "rook-ceph",
			Labels:    map[string]string{"app": "rook-ceph-operator"},
		}},
	)
	client := NewFromClientset(cs)

	name, err := client.ToolboxPodName(context.Background(), "rook-ceph")
	if err != nil {
		t.Fatalf("ToolboxPodName: %v", err)
	}
	if name != "rook-ceph-tools-abc" {
		t.Fatalf("expected the labelled toolbox pod, got %q", name)
	}
}

func TestToolboxPodNameMissing(t *testing.T) {
	client := NewFromClientset(fake.NewSimpleClientset())
	if _, err := client.ToolboxPodName(context.Background(), "rook-ceph"); err == nil {
		t.Fatal("expected an error when no toolbox pod exists")
	}
}
