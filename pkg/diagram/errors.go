package diagram

import "errors"

var (
	// ErrNoSelection is returned by operations that act on the selected
	// shape when nothing is selected.
	ErrNoSelection = errors.New("no selection")

	// ErrSerialization wraps every save/load failure, I/O and parse alike.
	ErrSerialization = errors.New("serialization error")

	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)
