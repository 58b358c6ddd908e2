package sculpt

import "errors"

// Stroke refusal reasons returned by BeginStroke. The engine stays usable
// after any of these.
var (
	ErrNoMesh           = errors.New("sculpt: no active mesh")
	ErrNoFaces          = errors.New("sculpt: mesh has no faces")
	ErrReadOnlyMesh     = errors.New("sculpt: mesh is linked from a library and cannot be edited")
	ErrUnlockedKeyShape = errors.New("sculpt: active key shape must be locked before sculpting")
	ErrKeyShapeMismatch = errors.New("sculpt: active key shape does not match the mesh vertices")
	ErrUnknownKernel    = errors.New("sculpt: unknown brush kernel")
)

// Session errors.
var (
	ErrResourceExhausted = errors.New("sculpt: vertex limit exceeded")
	ErrStrokeActive      = errors.New("sculpt: a stroke is already active")
	ErrNoStroke          = errors.New("sculpt: no active stroke")
	ErrStrokeAborted     = errors.New("sculpt: stroke aborted")
	ErrHiddenMismatch    = errors.New("sculpt: hidden state no longer matches the mesh")
)
