// Package editor orchestrates a single image editing session.
//
// An Editor owns the two pixel buffers of the session: the original, which
// only changes when an image is loaded, a crop is committed or the image is
// rotated, and the working buffer shown to the user, which is always derived
// from the original by the adjustment pipeline. It drives the crop selection
// and decides how much work each input needs:
//
//   - pointer events change geometry only and trigger an overlay redraw of
//     the last working buffer, never a pixel recompute
//   - slider and filter changes recompute the working buffer once from the
//     original and trigger a full redraw
//   - confirm, rotate and reset replace buffers and trigger a full redraw
//
// Editors are not safe for concurrent use. The embedding application feeds
// them from one event loop; handlers run to completion before the next event
// is processed.
package editor
