// Package svg2gcode converts SVG vector drawings into G-code toolpaths.
//
// A conversion parses the document with package svg, resolves transforms and
// viewports while flattening all curves to tolerance-bounded polylines with
// package geom, optionally recovers circular arcs from those polylines with
// package arcfit, and emits modal G-code commands through a Machine that
// tracks tool and distance state. Package gcode renders the resulting
// commands as text, with optional line numbers and checksums.
//
// The main entry points are Convert and FormatProgram.
package svg2gcode
