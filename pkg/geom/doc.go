// Package geom measures SVG shape geometry.
//
// It computes contour lengths and bounding boxes for the basic shapes (path,
// line, polyline, polygon, rect, circle, ellipse) from their attributes.
// Transforms and stroke widths are ignored, matching what getTotalLength and
// getBBox report for untransformed geometry.
//
// Path data and curved outlines are handled by github.com/tdewolff/canvas.
// Malformed input degrades the way browsers render it: path data is drawn up
// to the first bad command and each bad attribute counts as 0 on its own.
package geom
