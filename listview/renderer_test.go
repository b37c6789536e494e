package listview

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopulatedRendersEveryItem(t *testing.T) {
	r, err := NewHTMLRenderer("products", `<div>{{.name}}</div>`)
	require.NoError(t, err)

	html, err := r.Populated([]json.RawMessage{
		json.RawMessage(`{"name":"Trà sữa trân châu"}`),
		json.RawMessage(`{"name":"Trà đào"}`),
	})
	require.NoError(t, err)
	assert.Contains(t, string(html), "Trà sữa trân châu")
	assert.Contains(t, string(html), "Trà đào")
}

func TestPopulatedReturnsTemplateExecutionError(t *testing.T) {
	// .name is a string, so .name.sub only fails once a record is rendered.
	r, err := NewHTMLRenderer("bad", `<div>{{.name.sub}}</div>`)
	require.NoError(t, err)

	html, err := r.Populated([]json.RawMessage{json.RawMessage(`{"name":"x"}`)})
	assert.Error(t, err, "a broken item template must surface, not render blank")
	assert.Empty(t, string(html))
}

func TestPopulatedReturnsDecodeError(t *testing.T) {
	r, err := NewHTMLRenderer("products", `<div>{{.name}}</div>`)
	require.NoError(t, err)

	_, err = r.Populated([]json.RawMessage{json.RawMessage(`not json`)})
	assert.Error(t, err)
}
