package graph

import "errors"

// ErrRepeatedSuccessor is returned when a successor list contains the
// same node twice; WebGraph-style differential coding cannot
// represent a repeated arc.
var ErrRepeatedSuccessor = errors.New("graph: repeated successor")

// ErrReferenceDepth is returned when a node's reference chain would
// exceed the configured MaxRefCount.
var ErrReferenceDepth = errors.New("graph: reference chain exceeds max ref count")

// ErrOutdegreeMismatch is returned when a decoded successor list's
// length does not match its declared outdegree.
var ErrOutdegreeMismatch = errors.New("graph: decoded list length does not match outdegree")

// ErrNodeOOB is returned when a node id is >= n.
var ErrNodeOOB = errors.New("graph: node id out of bounds")

// ErrTruncated is returned when a read runs past the end of the
// underlying bit stream.
var ErrTruncated = errors.New("graph: truncated stream")

// ErrUnsupportedCode is returned when a properties sidecar names a
// code tag this implementation does not support for a given role.
var ErrUnsupportedCode = errors.New("graph: unsupported code in properties")

// ErrFormat is returned when an encoded stream is internally
// inconsistent, e.g. an offsets file whose first entry does not match
// the graph stream's actual header length.
var ErrFormat = errors.New("graph: format error")
