// Package crop implements the interactive selection used to crop an image.
//
// A Session owns a single rectangle in buffer space and the drag currently
// manipulating it. It never sees pixel data: the editor asks it for the
// committed rectangle and performs the extraction itself.
//
// # States
//
//	Inactive -> ActiveIdle -> Dragging(handle) -> ActiveIdle -> Inactive
//
// Start moves an inactive session to ActiveIdle. A pointer-down over one of the
// nine handles begins a drag; pointer-up ends it. Confirm and Cancel both
// return the session to Inactive. Pointer events that arrive in the wrong
// state are ignored and reported as such, never treated as errors.
//
// # Handles
//
// Hit testing uses a tolerance radius around each corner and a band of the
// same width along each edge. When regions overlap, corners win over edges
// and edges win over the interior (move) region.
//
// # Clamping
//
// Every mutation leaves the rectangle inside the buffer and no smaller than
// the minimum size on either axis. A drag past a limit stops at the limit.
// With an aspect ratio locked the rectangle is resized in whole, so a step that
// cannot satisfy the ratio, the minimum size and the bounds together is
// dropped and the rectangle stays as it was.
package crop
