// Package formats provides readers for mesh file formats.
//
// Readers return plain float32 data; conversion to fixed point happens when
// a mesh is built from it.
package formats
