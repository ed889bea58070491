// Package geometry implements the coordinate model of the crop editor.
//
// Two coordinate spaces are involved:
//   - Display space: pixels as the image is laid out inside its positioning
//     container. The image box starts at (OffsetX, OffsetY) and spans
//     DisplayWidth x DisplayHeight. Crop regions are expressed here,
//     relative to the container, not to the image.
//   - Natural space: the intrinsic raster grid of the decoded image.
//
// Mapper converts between the two. Region holds the mutable crop rectangle
// and enforces its constraints: it never leaves the image box, never drops
// below the minimum size, and keeps its aspect ratio while locked.
//
// # Coordinate System
//
// Origin is the top-left corner of the container, X grows rightward and Y
// grows downward. All values are float64; snapping to the pixel grid
// happens only when the export rasterizes the selection.
//
// # Thread Safety
//
// Geometry and Mapper are immutable values and safe to share. Region is
// mutable and must be driven from a single goroutine (the editor session
// serializes access).
package geometry
