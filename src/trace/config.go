package trace

// Defaults applied when the storage class / configmap do not override them.
const (
	// DefaultVolumePrefix is prepended to the image UUID unless the PV
	// carries a volumeNamePrefix attribute.
	DefaultVolumePrefix = "csi-vol-"

	// DefaultSubvolumeGroup is the cephfs subvolume group used when the
	// ceph-csi configmap does not name one.
	DefaultSubvolumeGroup = "csi"
)

// Config carries the options for one trace run. It is built once from
// the command line and never mutated afterwards.
type Config struct {
	// Command is the kubernetes CLI used to exec into the toolbox pod,
	// "kubectl" or "oc".
	Command    string
	Kubeconfig string

	// Namespace holds the PVCs to reconcile; PVCName narrows the run to
	// a single claim when set.
	Namespace string
	PVCName   string

	// RookNamespace is where rook and its toolbox pod run.
	RookNamespace string

	// Ceph credentials, passed on to every backend command when UserKey
	// is set.
	UserID  string
	UserKey string

	// ConfigMap names the ceph-csi configuration object holding the
	// optional subvolume group override.
	ConfigMap          string
	ConfigMapNamespace string

	// Toolbox selects running ceph commands inside the rook toolbox pod
	// instead of on the local host.
	Toolbox bool
}
