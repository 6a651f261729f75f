package scalar_test

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reflow/scalar"
)

func TestDefaultConfigJSON(t *testing.T) {
	b, err := scalar.New(nil).ConfigJSON()
	require.NoError(t, err)

	assert.Equal(t,
		`{"theme":"saturn","isEditable":false,"hideModels":false,"hideClientButton":true,"hideClients":true,"defaultOpenAllTags":false,"showSidebar":true}`,
		string(b))
}

func TestConfigKeys(t *testing.T) {
	b, err := json.Marshal(scalar.DefaultConfig())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))

	assert.Equal(t, map[string]any{
		"theme":              "saturn",
		"isEditable":         false,
		"hideModels":         false,
		"hideClientButton":   true,
		"hideClients":        true,
		"defaultOpenAllTags": false,
		"showSidebar":        true,
	}, got)
}

func TestConfigSetters(t *testing.T) {
	c := scalar.DefaultConfig().
		WithTheme("purple").
		WithEditable(true).
		WithHideModels(true).
		WithHideClientButton(false).
		WithHideClients(false).
		WithDefaultOpenAllTags(true).
		WithShowSidebar(false)

	assert.Equal(t, scalar.Config{
		Theme:              "purple",
		IsEditable:         true,
		HideModels:         true,
		DefaultOpenAllTags: true,
	}, c)

	// setters return copies
	assert.Equal(t, "saturn", scalar.DefaultConfig().Theme)
}

func TestConfigMetaData(t *testing.T) {
	meta := scalar.MetaInfo{}.WithTitle("X").WithOGImage("https://e/x.png")
	c := scalar.DefaultConfig().WithMetaData(meta)

	b, err := scalar.New(nil).WithConfig(c).ConfigJSON()
	require.NoError(t, err)
	assert.Contains(t, string(b),
		`"metaData":{"title":"X","description":"","ogDescription":"","ogTitle":"","ogImage":"https://e/x.png","twitterCard":""}`)
}

func TestMetaInfoSetters(t *testing.T) {
	meta := scalar.MetaInfo{}.
		WithTitle("Todo").
		WithDescription("A todo API").
		WithOGDescription("og description").
		WithOGTitle("og title").
		WithOGImage("https://example.com/og.png").
		WithTwitterCard("summary")

	b, err := json.Marshal(meta)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Todo",
		"description": "A todo API",
		"ogDescription": "og description",
		"ogTitle": "og title",
		"ogImage": "https://example.com/og.png",
		"twitterCard": "summary"
	}`, string(b))
}

func TestWithMetaDataCopiesValue(t *testing.T) {
	meta := scalar.MetaInfo{Title: "before"}
	c := scalar.DefaultConfig().WithMetaData(meta)
	meta.Title = "after"

	require.NotNil(t, c.MetaData)
	assert.Equal(t, "before", c.MetaData.Title)
}
