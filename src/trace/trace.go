package trace

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	corev1 "k8s.io/api/core/v1"
	"k8s.io/klog/v2"

	"cephcsi-tools/src/ceph"
	"cephcsi-tools/src/kube"
)

// Row is one reconciled claim in the report. The three booleans are
// independent: a claim is only consistent when all of them hold.
type Row struct {
	PVCName       string
	PVName        string
	ImageName     string
	PVNameInOMap  bool
	ImageIDInOMap bool
	InCluster     bool
}

// Report groups rows by backend mode.
type Report struct {
	RBD    []Row
	CephFS []Row
}

// Tracer cross-references PVCs against the ceph backend: the csi omap
// metadata and the live image/subvolume inventory.
type Tracer struct {
	cfg  Config
	kube kube.Client
	ceph ceph.Conn

	subvolGroup string
}

func New(cfg Config, kc kube.Client, conn ceph.Conn) *Tracer {
	return &Tracer{cfg: cfg, kube: kc, ceph: conn}
}

// Run reconciles every claim in the configured namespace, or just the
// named one, one claim at a time. Failures resolving a single claim
// degrade its row to empty/false fields; only malformed responses to
// the globally required lookups abort the run.
func (t *Tracer) Run(ctx context.Context) (*Report, error) {
	var pvcs []corev1.PersistentVolumeClaim
	if t.cfg.PVCName != "" {
		pvc, err := t.kube.GetPVC(ctx, t.cfg.Namespace, t.cfg.PVCName)
		if err != nil {
			return nil, err
		}
		pvcs = []corev1.PersistentVolumeClaim{*pvc}
	} else {
		var err error
		pvcs, err = t.kube.ListPVCs(ctx, t.cfg.Namespace)
		if err != nil {
			return nil, err
		}
	}

	report := &Report{}
	for i := range pvcs {
		if err := t.tracePVC(ctx, &pvcs[i], report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

func (t *Tracer) tracePVC(ctx context.Context, pvc *corev1.PersistentVolumeClaim, report *Report) error {
	var pv *corev1.PersistentVolume
	if pvName := pvc.Spec.VolumeName; pvName != "" {
		var err error
		pv, err = t.kube.GetPV(ctx, pvName)
		if err != nil {
			klog.V(1).Infof("failed to get pv for claim %s: %v", pvc.Name, err)
			pv = nil
		}
	}

	// cephfs PVs carry an fsName volume attribute, rbd ones do not.
	rbd := volumeAttribute(pv, "fsName") == ""

	row, err := t.buildRow(ctx, pvc, pv, rbd)
	if err != nil {
		return err
	}
	if rbd {
		report.RBD = append(report.RBD, row)
	} else {
		report.CephFS = append(report.CephFS, row)
	}
	return nil
}

// buildRow walks one claim through resolution and the three checks.
// Every resolution failure short-circuits to the partially filled row.
func (t *Tracer) buildRow(ctx context.Context, pvc *corev1.PersistentVolumeClaim, pv *corev1.PersistentVolume, rbd bool) (Row, error) {
	row := Row{PVCName: pvc.Name}

	handle := volumeHandle(pv)
	if handle == "" {
		return row, nil
	}
	row.PVName = pv.Name

	uuid := ImageUUID(handle)
	if uuid == "" {
		return row, nil
	}
	pool := t.poolName(ctx, handle, rbd)
	if pool == "" {
		return row, nil
	}

	prefix := volumeAttribute(pv, "volumeNamePrefix")
	if prefix == "" {
		prefix = DefaultVolumePrefix
	}
	row.ImageName = prefix + uuid

	forward := t.checkPVNameInOMap(ctx, uuid, pv.Name, pool, rbd)
	t.debugResult(pvc.Name, "forward omap check", forward)

	reverse := t.checkImageUUIDInOMap(ctx, uuid, pv.Name, pool, rbd)
	t.debugResult(pvc.Name, "reverse omap check", reverse)

	var inventory Result
	if rbd {
		inventory = t.checkImageInCluster(ctx, pool, row.ImageName)
	} else {
		var err error
		inventory, err = t.checkSubvolumeInCluster(ctx, volumeAttribute(pv, "fsName"), row.ImageName)
		if err != nil {
			return Row{}, err
		}
	}
	t.debugResult(pvc.Name, "inventory check", inventory)

	row.PVNameInOMap = forward.OK
	row.ImageIDInOMap = reverse.OK
	row.InCluster = inventory.OK
	return row, nil
}

func (t *Tracer) debugResult(claim, check string, res Result) {
	if !res.OK {
		klog.V(1).Infof("claim %s: %s failed: %s", claim, check, res.Reason)
	}
}

// subvolumeGroup resolves the cephfs subvolume group from the ceph-csi
// configmap, memoized for the run. Rook-created configmaps carry no
// config.json payload and fall back to the default group.
func (t *Tracer) subvolumeGroup(ctx context.Context) (string, error) {
	if t.subvolGroup != "" {
		return t.subvolGroup, nil
	}
	cm, err := t.kube.GetConfigMap(ctx, t.cfg.ConfigMapNamespace, t.cfg.ConfigMap)
	if err != nil {
		return "", err
	}

	group := DefaultSubvolumeGroup
	if data := cm.Data["config.json"]; strings.Contains(data, "subvolumeGroup") {
		var entries []struct {
			CephFS struct {
				SubvolumeGroup string `json:"subvolumeGroup"`
			} `json:"cephFS"`
		}
		if err := json.Unmarshal([]byte(data), &entries); err != nil {
			return "", fmt.Errorf("parse config.json in configmap %s: %w", t.cfg.ConfigMap, err)
		}
		if len(entries) > 0 && entries[0].CephFS.SubvolumeGroup != "" {
			group = entries[0].CephFS.SubvolumeGroup
		}
	}
	t.subvolGroup = group
	return group, nil
}

func volumeHandle(pv *corev1.PersistentVolume) string {
	if pv == nil || pv.Spec.CSI == nil {
		return ""
	}
	return pv.Spec.CSI.VolumeHandle
}

func volumeAttribute(pv *corev1.PersistentVolume, key string) string {
	if pv == nil || pv.Spec.CSI == nil {
		return ""
	}
	return pv.Spec.CSI.VolumeAttributes[key]
}
