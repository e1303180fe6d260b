// Package image provides Plane, a lazily computed single-channel image built
// on computed.Value, with the arithmetic of the plane kernel module.
package image
