// Package assets provides the OOXML parts that make up an empty presentation.
//
// # Layout
//
// Parts are embedded at compile time and split by how they are used:
//
//	parts/
//	└── {name}.xml     # copied verbatim into every deck (theme, master, layout, props)
//	templates/
//	└── {name}.xml     # text/template sources rendered per deck or per slide
//
// Names are logical ("theme", "slideMaster", "slide"), never paths. The writer
// in internal/pptx decides where each part lands inside the package.
//
// # Security
//
// Part names are validated to prevent path traversal into the embedded FS.
package assets
