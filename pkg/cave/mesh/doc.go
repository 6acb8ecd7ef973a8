// Package mesh turns an occupancy grid into floor and wall geometry.
//
// The floor is built with marching squares: every 2×2 block of grid cells
// forms a Square whose corner occupancy selects a polygon from Table. The
// polygons are fanned into triangles over a shared vertex list while an
// adjacency list records which triangles use each vertex. Trace then
// follows the edges used by a single triangle into closed outlines, and
// Extrude hangs a strip of quads below each outline.
package mesh
