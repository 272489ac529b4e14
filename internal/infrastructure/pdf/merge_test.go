package pdf

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_ConcatenatesPagesInOrder(t *testing.T) {
	engine := newTestEngine(t)

	front, err := engine.RenderFrontPage("Acme Co", nil)
	require.NoError(t, err)
	page1, err := engine.ImageToPage(opaquePNG(t, 100, 140))
	require.NoError(t, err)
	page2, err := engine.ImageToPage(opaquePNG(t, 100, 140))
	require.NoError(t, err)

	merged, err := engine.Merge([][]byte{front, page1, page2}, DocumentMeta{
		Title:   "Acme Co - Product Catalog",
		Author:  "Catalog Generator",
		Subject: "construction",
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(merged, []byte("%PDF-")))
	assert.True(t, bytes.Contains(merged, []byte("/Count 3")))
}

func TestMerge_StampsMetadataKeys(t *testing.T) {
	engine := newTestEngine(t)

	page, err := engine.ImageToPage(opaquePNG(t, 80, 80))
	require.NoError(t, err)

	merged, err := engine.Merge([][]byte{page}, DocumentMeta{
		Title:   "Acme Co - Product Catalog",
		Author:  "Catalog Generator",
		Subject: "construction",
	})
	require.NoError(t, err)

	assert.True(t, bytes.Contains(merged, []byte("/Title")))
	assert.True(t, bytes.Contains(merged, []byte("/Author")))
	assert.True(t, bytes.Contains(merged, []byte("/Subject")))
	assert.True(t, bytes.Contains(merged, []byte("/Creator")))
}

func TestMerge_SingleDocumentPassesThrough(t *testing.T) {
	engine := newTestEngine(t)

	front, err := engine.RenderFrontPage("Acme Co", nil)
	require.NoError(t, err)

	merged, err := engine.Merge([][]byte{front}, DocumentMeta{Title: "t"})
	require.NoError(t, err)
	assert.True(t, bytes.Contains(merged, []byte("/Count 1")))
}

func TestMerge_NoDocumentsIsAnError(t *testing.T) {
	engine := newTestEngine(t)

	_, err := engine.Merge(nil, DocumentMeta{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no documents to merge")
}
