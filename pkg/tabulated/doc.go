// Package tabulated is the public entry point for building tabulated
// functions. It holds the process-wide factory that decides which backend new
// tables use, samples arbitrary functions into tables, and wraps tables for
// shared access.
//
// Example:
//
//	tabulated.SetFactory(tabulated.LinkedFactory)
//	tf, err := tabulated.Tabulate(functions.Cos{}, 0, math.Pi, 11)
//	if err != nil {
//	    return err
//	}
//	y := tf.Value(1.0)
package tabulated
