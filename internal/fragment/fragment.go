// Package fragment defines the renderable bundle a block hands back to the
// host: markup plus the style/script resources the client must attach.
package fragment

type Fragment struct {
	Body         string   `json:"body"`
	CSS          []string `json:"css,omitempty"`
	JS           []string `json:"js,omitempty"`
	InitializeJS string   `json:"initialize_js,omitempty"`
}

func (f *Fragment) AddCSS(url string)          { f.CSS = append(f.CSS, url) }
func (f *Fragment) AddJS(url string)           { f.JS = append(f.JS, url) }
func (f *Fragment) InitializeWith(name string) { f.InitializeJS = name }
