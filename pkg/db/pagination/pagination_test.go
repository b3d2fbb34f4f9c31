package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	token, err := EncodeCursor(Cursor{ID: "1764026119872513"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	cursor, err := DecodeCursor(token)
	require.NoError(t, err)
	assert.Equal(t, "1764026119872513", cursor.ID)

	_, err = DecodeCursor("not base64!!")
	assert.Error(t, err)
}

func TestBuildCursorPageInfo(t *testing.T) {
	extract := func(v int) string { return "c" }

	info := BuildCursorPageInfo([]int{}, 2, func(int) string { return "" })
	assert.False(t, info.HasMore)
	assert.Empty(t, info.NextPageToken)

	info = BuildCursorPageInfo([]int{1, 2}, 2, extract)
	assert.False(t, info.HasMore)

	info = BuildCursorPageInfo([]int{1, 2, 3}, 2, extract)
	assert.True(t, info.HasMore)
	assert.Equal(t, "c", info.NextPageToken)
}
