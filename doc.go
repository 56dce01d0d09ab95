// Package debugdraw provides the debug drawing helpers used by simulation
// demos: shader program compilation, planes, bounding boxes, frusta, text,
// cube map textures and tube meshes extruded along a curve.
//
// Drawing goes through a [Device]. The OpenGL implementation lives in
// package gldraw and a software one, rendering into an image, in package
// softdraw. The geometry helpers in this package (BoxLines, FrustumLines,
// PlaneQuad, Extrude, RasterizeText) are backend independent and are what
// both devices draw.
//
// Logging is silent unless [SetLogger] is called.
package debugdraw
