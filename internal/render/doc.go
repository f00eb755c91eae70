// Package render turns a dataset into a flat list of drawing commands.
//
// [Build] is a pure function of the dataset, viewport, padding and the
// previously displayed bar heights. The result is replayed onto a [Surface]
// with [Replay]; surfaces only ever see lines, rects, text and animations,
// so the same list drives the terminal canvas and the SVG writer.
//
// Coordinates are relative to the plot area: x grows right from the y-axis,
// y grows down from the top padding edge.
package render
