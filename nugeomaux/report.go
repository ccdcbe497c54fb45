package nugeomaux

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/soypat/nugeom/material"
	"github.com/soypat/nugeom/pathlen"
)

// WriteTable writes pl to w as an aligned table sorted by code.
func WriteTable(w io.Writer, pl pathlen.PathLengths) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "CODE\tA\tZ\tLENGTH\t")
	for _, code := range pl.Codes() {
		A, Z := material.SplitIonCode(code)
		fmt.Fprintf(tw, "%d\t%d\t%d\t%.6g\t\n", code, A, Z, pl[code])
	}
	return tw.Flush()
}
