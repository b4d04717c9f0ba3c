// Package pptx writes and reads picture-only PresentationML packages.
//
// A Deck has a fixed slide size chosen at construction. Every slide added
// through AddFullBleedPicture holds exactly one picture positioned at (0,0)
// with an extent equal to the slide size. The picture is stretched to that
// extent; no aspect-ratio correction is applied.
//
// Sizes and offsets are in EMU (English Metric Units, 914400 per inch).
//
// Output is deterministic: the same pictures added in the same order produce
// byte-identical packages, because zip entry timestamps are pinned.
//
// Open reads a package back into a Summary of slide size and per-slide
// picture geometry. It understands packages written by this package and any
// other PresentationML file whose pictures live directly in the shape tree.
package pptx
