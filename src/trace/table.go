package trace

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// Render writes the RBD and CephFS tables, one row per claim.
func (r *Report) Render(w io.Writer) error {
	err := renderTable(w, "RBD", []string{
		"PVC NAME", "PV NAME", "IMAGE NAME",
		"PV NAME IN OMAP", "IMAGE ID IN OMAP", "IMAGE IN CLUSTER",
	}, r.RBD)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	return renderTable(w, "CEPHFS", []string{
		"PVC NAME", "PV NAME", "SUBVOLUME NAME",
		"PV NAME IN OMAP", "SUBVOLUME ID IN OMAP", "SUBVOLUME IN CLUSTER",
	}, r.CephFS)
}

func renderTable(w io.Writer, title string, headers []string, rows []Row) error {
	fmt.Fprintln(w, title)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\t%t\n",
			row.PVCName, row.PVName, row.ImageName,
			row.PVNameInOMap, row.ImageIDInOMap, row.InCluster)
	}
	return tw.Flush()
}
