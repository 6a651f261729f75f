package scalar

// Config holds the display options passed to the viewer through the
// data-configuration attribute. Start from DefaultConfig; the zero value
// hides nothing and has no theme.
type Config struct {
	Theme              string    `json:"theme"`
	IsEditable         bool      `json:"isEditable"`
	HideModels         bool      `json:"hideModels"`
	HideClientButton   bool      `json:"hideClientButton"`
	HideClients        bool      `json:"hideClients"`
	DefaultOpenAllTags bool      `json:"defaultOpenAllTags"`
	ShowSidebar        bool      `json:"showSidebar"`
	MetaData           *MetaInfo `json:"metaData,omitempty"`
}

// DefaultConfig returns the configuration used by New.
func DefaultConfig() Config {
	return Config{
		Theme:            "saturn",
		HideClientButton: true,
		HideClients:      true,
		ShowSidebar:      true,
	}
}

func (c Config) WithTheme(theme string) Config {
	c.Theme = theme
	return c
}

func (c Config) WithEditable(editable bool) Config {
	c.IsEditable = editable
	return c
}

func (c Config) WithHideModels(hide bool) Config {
	c.HideModels = hide
	return c
}

func (c Config) WithHideClientButton(hide bool) Config {
	c.HideClientButton = hide
	return c
}

func (c Config) WithHideClients(hide bool) Config {
	c.HideClients = hide
	return c
}

func (c Config) WithDefaultOpenAllTags(open bool) Config {
	c.DefaultOpenAllTags = open
	return c
}

func (c Config) WithShowSidebar(show bool) Config {
	c.ShowSidebar = show
	return c
}

// WithMetaData attaches site metadata. The MetaInfo is copied, later
// changes to the argument do not leak into the Config.
func (c Config) WithMetaData(meta MetaInfo) Config {
	c.MetaData = &meta
	return c
}

// MetaInfo is optional site metadata rendered by the viewer. Every field is
// always serialized, empty or not.
type MetaInfo struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	OGDescription string `json:"ogDescription"`
	OGTitle       string `json:"ogTitle"`
	OGImage       string `json:"ogImage"`
	TwitterCard   string `json:"twitterCard"`
}

func (m MetaInfo) WithTitle(title string) MetaInfo {
	m.Title = title
	return m
}

func (m MetaInfo) WithDescription(description string) MetaInfo {
	m.Description = description
	return m
}

func (m MetaInfo) WithOGDescription(description string) MetaInfo {
	m.OGDescription = description
	return m
}

func (m MetaInfo) WithOGTitle(title string) MetaInfo {
	m.OGTitle = title
	return m
}

func (m MetaInfo) WithOGImage(image string) MetaInfo {
	m.OGImage = image
	return m
}

func (m MetaInfo) WithTwitterCard(card string) MetaInfo {
	m.TwitterCard = card
	return m
}
