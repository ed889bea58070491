// Package imaging decodes, renders and exports the raster behind a crop
// session.
//
// Two coordinate spaces meet here. Selections arrive in container space
// (display pixels, origin at the container's top-left, image centered
// inside it) and are mapped through geometry.Mapper into natural space
// (source pixels) before any pixel is read. Natural-space rectangles are
// snapped to whole pixels and clipped to the source bounds; (x0,y0) is
// inclusive and (x1,y1) exclusive.
//
// # Export
//
// Export produces a JPEG no larger than the configured cap on either side.
// The downscale factor is shared by both axes, so the crop's aspect ratio
// survives, and a crop that already fits is copied without resampling.
//
// # Rendering
//
// RenderView and RenderOverlay draw what the editor shows: the image at its
// display size with the preview zoom and rotation, and the selection with
// its shading, thirds guides and handles. Neither affects Export.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The remaining functions
// are stateless and never modify their source image.
package imaging
