// Package dataset holds the labeled values drawn by the bar chart.
//
//   - [Generate]: fresh random dataset with labels A, B, C, ...
//   - [Sort]: stable reorder by value without touching the input
//   - [Dataset.Validate]: checks the label and range invariants
//
// Values always lie in [[MinValue], [MaxValue]]. Labels are assigned once at
// generation and never change; perturbation and sorting keep the length.
package dataset
