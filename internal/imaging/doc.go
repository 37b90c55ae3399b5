// Package imaging provides the pixel side of the editor: the PixelBuffer
// raster, the non-destructive adjustment pipeline, and the whole-buffer
// operations the editor commits (crop extraction, rotation, selection
// overlay, color sampling) plus the decode/encode helpers used by the server.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Regions are image.Rectangle values, Min inclusive and Max exclusive
//
// # Pixel Format
//
// PixelBuffer stores 8-bit straight-alpha RGBA, the layout of image.NRGBA.
// Color transforms read and write R, G and B only; alpha always passes
// through unchanged.
//
// # Non-destructive Adjustments
//
// Adjust never modifies its input. Every call recomputes from the buffer it
// is given, so the editor keeps the decoded original and derives the
// displayed buffer from it on each change. Resetting is a copy of the
// original, byte for byte.
//
// # Thread Safety
//
// Functions in this package are stateless and safe to call concurrently on
// distinct buffers. Adjust and DrawSelection split their pixel loop across
// goroutines internally but return only when the result is complete.
// BufferCache is safe for concurrent use.
//
// # Error Handling
//
// Buffers whose size fields disagree with their pixel slice fail with
// ErrInvalidBufferDimensions. Unknown filters fail with ErrUnsupportedFilter.
// Regions outside the buffer and I/O failures return descriptive errors.
package imaging
