package model

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeFile(t *testing.T, f Format, name string) []*Element {
	t.Helper()
	fh, err := os.Open("testdata/" + name)
	require.NoError(t, err)
	defer fh.Close()
	contents, err := f.Decode(fh)
	require.NoError(t, err)
	return contents
}

func TestXMIDecodeWrapper(t *testing.T) {
	contents := decodeFile(t, XMIFormat{}, "OrderModel.uml")
	require.Len(t, contents, 1)

	m := contents[0]
	assert.Equal(t, "shop", m.ID)
	assert.Equal(t, "Model", m.Kind)
	assert.Equal(t, "Shop", m.Name)
	require.Len(t, m.Children, 3)

	order := m.Children[0]
	assert.Equal(t, "Class", order.Kind)
	assert.Equal(t, "Order", order.Name)
	require.Len(t, order.Children, 2)

	total := order.Children[0]
	assert.Equal(t, "ownedAttribute", total.Kind)
	assert.Equal(t, map[string]string{"visibility": "private"}, total.Attributes)
	assert.Equal(t, []Reference{{Name: "type", Target: "decimal"}}, total.References)

	customer := m.Children[1]
	assert.Equal(t, "false", customer.Attributes["isAbstract"])
	assert.Empty(t, customer.References)
}

func TestXMIDecodeRootElement(t *testing.T) {
	contents := decodeFile(t, XMIFormat{}, "Library.ecore")
	require.Len(t, contents, 1)

	pkg := contents[0]
	assert.Equal(t, "EPackage", pkg.Kind)
	assert.Equal(t, "library", pkg.Name)
	assert.Equal(t, "http://example.org/library", pkg.Attributes["nsURI"])
	require.Len(t, pkg.Children, 2)
	assert.Equal(t, "EClass", pkg.Children[0].Kind)
	assert.Equal(t, "EAttribute", pkg.Children[0].Children[0].Kind)
}

func TestXMIDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"empty", ""},
		{"only prolog", `<?xml version="1.0"?>`},
		{"unclosed", `<a><b></a>`},
		{"truncated", `<a><b/>`},
		{"two roots", `<a/><b/>`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := XMIFormat{}.Decode(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed), "got %v", err)
		})
	}
}

func TestXMIPlainIDAttribute(t *testing.T) {
	contents, err := XMIFormat{}.Decode(strings.NewReader(
		`<model id="m"><item id="a" owner="m"/><item id="b" peers="a m" note="a x"/></model>`))
	require.NoError(t, err)

	m := contents[0]
	assert.Equal(t, "m", m.ID)
	a, b := m.Children[0], m.Children[1]
	assert.Equal(t, []Reference{{Name: "owner", Target: "m"}}, a.References)
	assert.Equal(t, []Reference{{Name: "peers", Target: "a"}, {Name: "peers", Target: "m"}}, b.References)
	assert.Equal(t, "a x", b.Attributes["note"])
}
