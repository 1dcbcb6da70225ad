package editor

// Artifact identifies a redrawable canvas artifact: a polygon by its index
// in the model set, or the in-progress draw buffer.
type Artifact int

// ArtifactDrawBuffer addresses the transient polyline drawn while creating a
// new polygon.
const ArtifactDrawBuffer Artifact = -1

// RenderSink receives staleness notifications from the editor. A full
// request repaints everything; an incremental request lets the view restore
// a cached background and repaint only the named artifacts, which is the
// fast path used during drags and point placement.
type RenderSink interface {
	RequestFull()
	RequestIncremental(artifacts ...Artifact)
}
