package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"text/tabwriter"

	"github.com/mesh-intelligence/tabula/pkg/types"
)

// tableView is the JSON shape of one stored table.
type tableView struct {
	types.TableInfo
	Points []pointView `json:"points,omitempty"`
}

// pointView is the JSON shape of a point. encoding/json rejects NaN and
// infinities, so non-finite coordinates become null.
type pointView struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func newPointView(p types.Point) pointView {
	return pointView{X: finite(p.X), Y: finite(p.Y)}
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

func newTableView(info types.TableInfo, t types.TabulatedFunction) tableView {
	v := tableView{TableInfo: info}
	if t != nil {
		v.Count = t.Count()
		for p := range t.All() {
			v.Points = append(v.Points, newPointView(p))
		}
	}
	return v
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

// printTable writes info and, when t is non-nil, its points.
func (a *app) printTable(w io.Writer, info types.TableInfo, t types.TabulatedFunction) error {
	if a.flags.jsonMode {
		return printJSON(w, newTableView(info, t))
	}
	count := info.Count
	if t != nil {
		count = t.Count()
	}
	fmt.Fprintf(w, "%s (%s, %d points)\n", info.Name, info.Backend, count)
	if t == nil {
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tX\tY")
	i := 0
	for p := range t.All() {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", i, types.FormatFloat(p.X), types.FormatFloat(p.Y))
		i++
	}
	return tw.Flush()
}

func parseFloat(what, s string) (float64, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, userError(fmt.Errorf("%s %q is not a number", what, s))
	}
	return f, nil
}

func parseIndex(s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, userError(fmt.Errorf("index %q is not an integer", s))
	}
	return i, nil
}
