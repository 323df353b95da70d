package diagram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docWith returns a document holding n rectangles.
func docWith(n int) Document {
	doc := NewDocument()
	for i := 0; i < n; i++ {
		doc.AddShape(Shape{Kind: Rectangle, X: float64(i), Y: float64(i), Width: 50, Height: 30})
	}
	return doc
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory()
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, -1, h.Index())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	_, err := h.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
	_, err = h.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestHistoryUndoRedo(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 3; i++ {
		require.NoError(t, h.Snapshot(docWith(i)))
	}
	require.Equal(t, 2, h.Index())

	doc, err := h.Undo()
	require.NoError(t, err)
	assert.Len(t, doc.Shapes, 1)

	doc, err = h.Redo()
	require.NoError(t, err)
	assert.Len(t, doc.Shapes, 2)

	_, err = h.Redo()
	assert.ErrorIs(t, err, ErrNothingToRedo)
	assert.Equal(t, 2, h.Index())
}

func TestHistorySnapshotTruncatesRedo(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 4; i++ {
		require.NoError(t, h.Snapshot(docWith(i)))
	}
	_, err := h.Undo()
	require.NoError(t, err)
	_, err = h.Undo()
	require.NoError(t, err)
	require.Equal(t, 1, h.Index())

	require.NoError(t, h.Snapshot(docWith(7)))
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Index())
	assert.False(t, h.CanRedo())

	cur, ok := h.Current()
	require.True(t, ok)
	assert.Len(t, cur.Shapes, 7)
}

func TestHistoryCapacity(t *testing.T) {
	h := NewHistory()
	for i := 0; i <= MaxHistory; i++ {
		require.NoError(t, h.Snapshot(docWith(i)))
		assert.LessOrEqual(t, h.Len(), MaxHistory)
	}
	require.Equal(t, MaxHistory, h.Len())
	require.Equal(t, MaxHistory-1, h.Index())

	steps := 0
	var oldest Document
	for {
		doc, err := h.Undo()
		if err != nil {
			assert.ErrorIs(t, err, ErrNothingToUndo)
			break
		}
		oldest = doc
		steps++
	}
	assert.Equal(t, MaxHistory-1, steps)
	// the empty first snapshot was evicted
	assert.Len(t, oldest.Shapes, 1)
}

func TestHistorySnapshotIsolation(t *testing.T) {
	h := NewHistory()
	doc := docWith(1)
	require.NoError(t, h.Snapshot(doc))

	doc.Shapes[0].Text = "changed"
	doc.AddShape(Shape{Kind: Star, Width: 50, Height: 30})

	cur, ok := h.Current()
	require.True(t, ok)
	require.Len(t, cur.Shapes, 1)
	assert.Equal(t, "", cur.Shapes[0].Text)
}

func TestHistoryUndecodableSnapshotKeepsIndex(t *testing.T) {
	h := NewHistory()
	for i := 0; i < 3; i++ {
		require.NoError(t, h.Snapshot(docWith(i)))
	}
	h.entries[1] = []byte("not json")

	_, err := h.Undo()
	assert.ErrorIs(t, err, ErrSerialization)
	assert.Equal(t, 2, h.Index())

	h.index = 0
	_, err = h.Redo()
	assert.ErrorIs(t, err, ErrSerialization)
	assert.Equal(t, 0, h.Index())
}
