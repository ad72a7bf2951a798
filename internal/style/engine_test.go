package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/swatch/internal/document"
)

// buildEngine assembles a document from a tree and stylesheet sources
// and returns the reference oracle for it.
func buildEngine(t *testing.T, styles []document.StyleSource, root *document.Element) *Engine {
	t.Helper()
	doc, err := document.New("test", styles, root)
	require.NoError(t, err)
	eng, err := New(doc)
	require.NoError(t, err)
	return eng
}

// basicTree is html > body > div#content.
func basicTree(divStyle string) *document.Element {
	return &document.Element{
		Tag: "html",
		Children: []*document.Element{{
			Tag: "body",
			ID:  "b",
			Children: []*document.Element{{
				Tag:   "div",
				ID:    "content",
				Class: "box",
				Style: divStyle,
			}},
		}},
	}
}

func resolved(t *testing.T, eng *Engine, ref string) View {
	t.Helper()
	view, err := eng.Resolve(ref)
	require.NoError(t, err)
	return view
}

func TestEngine_InitialValues(t *testing.T) {
	eng := buildEngine(t, nil, basicTree(""))
	view := resolved(t, eng, "content")

	assert.Equal(t, "inline", view.Value("display"))
	assert.Equal(t, "auto", view.Value("width"))
	assert.Equal(t, "auto", view.Value("height"))
	assert.Equal(t, "0px", view.Value("margin-top"))
	assert.Equal(t, "rgb(0, 0, 0)", view.Value("color"))
	assert.Equal(t, "rgba(0, 0, 0, 0)", view.Value("background-color"))
	assert.Equal(t, "16px", view.Value("font-size"))
}

func TestEngine_StylesheetApplies(t *testing.T) {
	styles := []document.StyleSource{
		{Selector: "#content", Declarations: "display: block; width: 100px; height: 200px"},
	}
	eng := buildEngine(t, styles, basicTree(""))
	view := resolved(t, eng, "content")

	assert.Equal(t, "block", view.Value("display"))
	assert.Equal(t, "100px", view.Value("width"))
	assert.Equal(t, "200px", view.Value("height"))
}

func TestEngine_SpecificityWins(t *testing.T) {
	styles := []document.StyleSource{
		{Selector: "#content", Declarations: "color: blue"},
		{Selector: ".box", Declarations: "color: green; width: 40px"},
		{Selector: "div", Declarations: "color: red; width: 10px; height: 30px"},
	}
	eng := buildEngine(t, styles, basicTree(""))
	view := resolved(t, eng, "content")

	// id beats class beats tag; unchallenged declarations still apply.
	assert.Equal(t, "rgb(0, 0, 255)", view.Value("color"))
	assert.Equal(t, "40px", view.Value("width"))
	assert.Equal(t, "30px", view.Value("height"))
}

func TestEngine_SourceOrderBreaksTies(t *testing.T) {
	styles := []document.StyleSource{
		{Selector: "div", Declarations: "color: red"},
		{Selector: "div", Declarations: "color: blue"},
	}
	eng := buildEngine(t, styles, basicTree(""))

	assert.Equal(t, "rgb(0, 0, 255)", resolved(t, eng, "content").Value("color"))
}

func TestEngine_InlineBeatsStylesheet(t *testing.T) {
	styles := []document.StyleSource{
		{Selector: "#content", Declarations: "width: 100px"},
	}
	eng := buildEngine(t, styles, basicTree("width: 50px"))

	assert.Equal(t, "50px", resolved(t, eng, "content").Value("width"))
}

func TestEngine_InheritedProperties(t *testing.T) {
	styles := []document.StyleSource{
		{Selector: "#b", Declarations: "color: red; width: 300px; text-align: center"},
	}
	eng := buildEngine(t, styles, basicTree(""))
	view := resolved(t, eng, "content")

	// color and text-align inherit; width does not.
	assert.Equal(t, "rgb(255, 0, 0)", view.Value("color"))
	assert.Equal(t, "center", view.Value("text-align"))
	assert.Equal(t, "auto", view.Value("width"))
}

func TestEngine_InheritKeyword(t *testing.T) {
	styles := []document.StyleSource{
		{Selector: "#b", Declarations: "width: 300px"},
		{Selector: "#content", Declarations: "width: inherit"},
	}
	eng := buildEngine(t, styles, basicTree(""))

	assert.Equal(t, "300px", resolved(t, eng, "content").Value("width"))
}

func TestEngine_InheritKeywordOnRoot(t *testing.T) {
	root := &document.Element{Tag: "html", ID: "r", Style: "width: inherit"}
	eng := buildEngine(t, nil, root)

	assert.Equal(t, "auto", resolved(t, eng, "r").Value("width"))
}

func TestEngine_InitialKeyword(t *testing.T) {
	styles := []document.StyleSource{
		{Selector: "#b", Declarations: "color: red"},
		{Selector: "#content", Declarations: "color: initial"},
	}
	eng := buildEngine(t, styles, basicTree(""))

	assert.Equal(t, "rgb(0, 0, 0)", resolved(t, eng, "content").Value("color"))
}

func TestEngine_FontRelativeLengths(t *testing.T) {
	styles := []document.StyleSource{
		{Selector: "#b", Declarations: "font-size: 20px"},
		{Selector: "#content", Declarations: "font-size: 2em; width: 2em; margin-top: 1.5em"},
	}
	eng := buildEngine(t, styles, basicTree(""))
	view := resolved(t, eng, "content")

	// font-size em resolves against the parent font; other lengths
	// against the element's own computed font.
	assert.Equal(t, "40px", view.Value("font-size"))
	assert.Equal(t, "80px", view.Value("width"))
	assert.Equal(t, "60px", view.Value("margin-top"))
}

func TestEngine_FontSizePercent(t *testing.T) {
	styles := []document.StyleSource{
		{Selector: "#b", Declarations: "font-size: 20px"},
		{Selector: "#content", Declarations: "font-size: 150%"},
	}
	eng := buildEngine(t, styles, basicTree(""))

	assert.Equal(t, "30px", resolved(t, eng, "content").Value("font-size"))
}

func TestEngine_PercentWidthStaysSpecified(t *testing.T) {
	eng := buildEngine(t, nil, basicTree("width: 50%"))

	assert.Equal(t, "50%", resolved(t, eng, "content").Value("width"))
}

func TestEngine_ColorNormalization(t *testing.T) {
	tests := []struct {
		name string
		decl string
		want string
	}{
		{"named", "color: red", "rgb(255, 0, 0)"},
		{"named_case", "color: BLUE", "rgb(0, 0, 255)"},
		{"hex", "color: #00ff00", "rgb(0, 255, 0)"},
		{"hex_short", "color: #fff", "rgb(255, 255, 255)"},
		{"transparent", "background-color: transparent", "rgba(0, 0, 0, 0)"},
		{"passthrough", "color: rgb(1, 2, 3)", "rgb(1, 2, 3)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng := buildEngine(t, nil, basicTree(tt.decl))
			decls, err := ParseDeclarations(tt.decl)
			require.NoError(t, err)
			assert.Equal(t, tt.want, resolved(t, eng, "content").Value(decls[0].Property))
		})
	}
}

func TestEngine_UnknownPropertyResolvesEmpty(t *testing.T) {
	eng := buildEngine(t, nil, basicTree(""))

	assert.Equal(t, "", resolved(t, eng, "content").Value("border-radius"))
}

func TestResolve_ByTagName(t *testing.T) {
	eng := buildEngine(t, []document.StyleSource{
		{Selector: "html", Declarations: "color: blue"},
	}, basicTree(""))

	// "html" has no id; the ref falls back to the first element in
	// document order with that tag.
	view := resolved(t, eng, "html")
	assert.Equal(t, "rgb(0, 0, 255)", view.Value("color"))
}

func TestResolve_UnknownRef(t *testing.T) {
	eng := buildEngine(t, nil, basicTree(""))

	_, err := eng.Resolve("ghost")
	require.Error(t, err)
	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindNotFound, kind)

	_, err = eng.Declared("ghost")
	require.Error(t, err)
	kind, ok = KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindNotFound, kind)
}

func TestComputedView_ReadOnly(t *testing.T) {
	eng := buildEngine(t, nil, basicTree("width: 100px"))
	view := resolved(t, eng, "content")

	assert.True(t, view.ReadOnly())
	assert.Equal(t, "content", view.Ref())

	err := view.SetValue("width", "50px")
	require.Error(t, err)
	assert.True(t, IsNoModificationAllowed(err))

	err = view.SetBulkText("width: 50px")
	require.Error(t, err)
	assert.True(t, IsNoModificationAllowed(err))

	// The rejected writes must not have changed anything.
	assert.Equal(t, "100px", view.Value("width"))
}

func TestDeclaredView_ReadsInlineAsWritten(t *testing.T) {
	eng := buildEngine(t, nil, basicTree("width: 100px; color: red"))
	view, err := eng.Declared("content")
	require.NoError(t, err)

	assert.False(t, view.ReadOnly())
	assert.Equal(t, "100px", view.Value("width"))
	// Declared values are as written, not normalized.
	assert.Equal(t, "red", view.Value("color"))
	assert.Equal(t, "", view.Value("height"))
}

func TestDeclaredView_MutationVisibleThroughComputedView(t *testing.T) {
	styles := []document.StyleSource{
		{Selector: "#content", Declarations: "width: 100px"},
	}
	eng := buildEngine(t, styles, basicTree(""))

	computed := resolved(t, eng, "content")
	declared, err := eng.Declared("content")
	require.NoError(t, err)

	assert.Equal(t, "100px", computed.Value("width"))

	require.NoError(t, declared.SetValue("width", "50px"))
	assert.Equal(t, "50px", computed.Value("width"))

	// Clearing the inline declaration falls back to the stylesheet.
	require.NoError(t, declared.SetValue("width", ""))
	assert.Equal(t, "100px", computed.Value("width"))
}

func TestDeclaredView_SetBulkText(t *testing.T) {
	eng := buildEngine(t, nil, basicTree("width: 100px; color: red"))
	declared, err := eng.Declared("content")
	require.NoError(t, err)

	require.NoError(t, declared.SetBulkText("height: 10px"))
	assert.Equal(t, "", declared.Value("width"))
	assert.Equal(t, "10px", declared.Value("height"))
	assert.Equal(t, "10px", resolved(t, eng, "content").Value("height"))
}

func TestDeclaredView_SyntaxFaults(t *testing.T) {
	eng := buildEngine(t, nil, basicTree(""))
	declared, err := eng.Declared("content")
	require.NoError(t, err)

	err = declared.SetValue("1bad", "10px")
	require.Error(t, err)
	kind, _ := KindOf(err)
	assert.Equal(t, KindSyntax, kind)

	// A value smuggling in extra declarations is rejected.
	err = declared.SetValue("width", "10px; color: red")
	require.Error(t, err)
	kind, _ = KindOf(err)
	assert.Equal(t, KindSyntax, kind)

	err = declared.SetBulkText("not declarations")
	require.Error(t, err)
	kind, _ = KindOf(err)
	assert.Equal(t, KindSyntax, kind)
}

func TestNew_RejectsBadStylesheet(t *testing.T) {
	doc, err := document.New("test", []document.StyleSource{
		{Selector: "div >", Declarations: "width: 100px"},
	}, basicTree(""))
	require.NoError(t, err)

	_, err = New(doc)
	require.Error(t, err)
	kind, _ := KindOf(err)
	assert.Equal(t, KindSyntax, kind)
}

func TestNew_RejectsBadInlineStyle(t *testing.T) {
	doc, err := document.New("test", nil, basicTree("width"))
	require.NoError(t, err)

	_, err = New(doc)
	require.Error(t, err)
	kind, _ := KindOf(err)
	assert.Equal(t, KindSyntax, kind)
	assert.Contains(t, err.Error(), "content")
}
