package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basicDoc = `
document: {
	title: "basic block"
	styles: [
		{selector: "#content", declarations: "width: 100px; height: 200px"},
		{selector: "div", declarations: "color: blue"},
	]
	root: {
		tag: "html"
		children: [{
			tag: "body"
			children: [{
				tag:   "div"
				id:    "content"
				class: "box primary"
				style: "margin-top: 4px"
				text:  "hello"
			}]
		}]
	}
}
`

func TestLoadBytes_ValidDocument(t *testing.T) {
	doc, err := LoadBytes("basic.cue", []byte(basicDoc))
	require.NoError(t, err)

	assert.Equal(t, "basic block", doc.Title)
	require.Len(t, doc.Styles, 2)
	assert.Equal(t, "#content", doc.Styles[0].Selector)
	assert.Equal(t, "width: 100px; height: 200px", doc.Styles[0].Declarations)

	require.NotNil(t, doc.Root)
	assert.Equal(t, "html", doc.Root.Tag)

	content := doc.ByID("content")
	require.NotNil(t, content)
	assert.Equal(t, "div", content.Tag)
	assert.Equal(t, []string{"box", "primary"}, content.Classes())
	assert.Equal(t, "margin-top: 4px", content.Style)

	require.NotNil(t, content.Parent())
	assert.Equal(t, "body", content.Parent().Tag)
	assert.Nil(t, doc.Root.Parent())
}

func TestLoadBytes_UnknownElementField(t *testing.T) {
	src := `
document: {
	root: {
		tag:   "html"
		bogus: "value"
	}
}
`
	_, err := LoadBytes("bad.cue", []byte(src))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeSchema, loadErr.Code)
}

func TestLoadBytes_MissingRoot(t *testing.T) {
	src := `
document: {
	title: "no tree"
}
`
	_, err := LoadBytes("bad.cue", []byte(src))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeSchema, loadErr.Code)
}

func TestLoadBytes_UppercaseTagRejected(t *testing.T) {
	src := `
document: {
	root: {tag: "DIV"}
}
`
	_, err := LoadBytes("bad.cue", []byte(src))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not satisfy schema")
}

func TestLoadBytes_DuplicateID(t *testing.T) {
	src := `
document: {
	root: {
		tag: "html"
		children: [
			{tag: "div", id: "twice"},
			{tag: "span", id: "twice"},
		]
	}
}
`
	_, err := LoadBytes("dup.cue", []byte(src))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeStructure, loadErr.Code)
	assert.Contains(t, loadErr.Message, `duplicate element id "twice"`)
}

func TestLoadBytes_CompileError(t *testing.T) {
	_, err := LoadBytes("broken.cue", []byte(`document: { root: {tag: }`))
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeCompile, loadErr.Code)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load("/nonexistent/document.cue")
	require.Error(t, err)

	var loadErr *LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, ErrCodeRead, loadErr.Code)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "basic.cue")
	require.NoError(t, os.WriteFile(path, []byte(basicDoc), 0644))

	doc, err := Load(path)
	require.NoError(t, err)
	assert.NotNil(t, doc.ByID("content"))
}

func TestWalk_DocumentOrder(t *testing.T) {
	doc, err := LoadBytes("basic.cue", []byte(basicDoc))
	require.NoError(t, err)

	var tags []string
	doc.Walk(func(e *Element) {
		tags = append(tags, e.Tag)
	})
	assert.Equal(t, []string{"html", "body", "div"}, tags)
}

func TestElementRef(t *testing.T) {
	doc, err := LoadBytes("basic.cue", []byte(basicDoc))
	require.NoError(t, err)

	assert.Equal(t, "content", doc.ByID("content").Ref())
	assert.Equal(t, "html", doc.Root.Ref())
}
