package content

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const containerXML = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const packageOPF = `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="2.0" unique-identifier="id">
  <metadata xmlns:dc="http://purl.org/dc/elements/1.1/">
    <dc:title>测试之书</dc:title>
    <dc:creator>某作者</dc:creator>
    <dc:description>一本用于测试的书。</dc:description>
  </metadata>
  <manifest>
    <item id="c1" href="c1.xhtml" media-type="application/xhtml+xml"/>
    <item id="c2" href="c2.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="c1"/>
    <itemref idref="c2"/>
  </spine>
</package>`

const chapterOne = `<html><head><title>c1</title></head><body>
<h1>第一章 开始</h1><p>第一段。</p><p>  </p><p>第二段。</p></body></html>`

const chapterTwo = `<html><head><title>第二章 结束</title></head><body>
<p>最后一段。</p></body></html>`

func writeEPUB(t *testing.T, path string) {
	t.Helper()

	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for _, file := range []struct{ name, body string }{
		{"mimetype", "application/epub+zip"},
		{"META-INF/container.xml", containerXML},
		{"content.opf", packageOPF},
		{"c1.xhtml", chapterOne},
		{"c2.xhtml", chapterTwo},
	} {
		w, err := zw.Create(file.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(file.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
}

func TestEPUBLibrary(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	writeEPUB(t, filepath.Join(dir, "b.epub"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.epub"), []byte("not a zip"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o600))

	lib, err := NewEPUBLibrary(dir)
	require.NoError(t, err)

	all, err := lib.AllNovels(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, 1, all[0].ID)
	assert.Equal(t, "a", all[0].Title)
	assert.True(t, all[0].IsCorrupted)

	book := all[1]
	assert.Equal(t, 2, book.ID)
	assert.Equal(t, "测试之书", book.Title)
	assert.Equal(t, "某作者", book.Author)
	assert.Equal(t, "一本用于测试的书。", book.Summary)
	assert.Equal(t, 2, book.ChapterCount)
	assert.False(t, book.IsCorrupted)

	ch, err := lib.Chapter(ctx, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "第一章 开始", ch.Title)
	assert.Equal(t, "第一段。\n\n第二段。", ch.Content)

	ch, err = lib.Chapter(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, "第二章 结束", ch.Title)

	found, err := lib.Search(ctx, "某作者")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].ID)
}

func TestEPUBLibraryEmptyDir(t *testing.T) {
	lib, err := NewEPUBLibrary(t.TempDir())
	require.NoError(t, err)

	all, err := lib.AllNovels(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
