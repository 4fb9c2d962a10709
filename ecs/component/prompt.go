package component

// Prompt is an on-screen interaction hint.
type Prompt struct {
	Text    string
	Visible bool
}

func (p *Prompt) Show(text string) {
	p.Text = text
	p.Visible = true
}

func (p *Prompt) Hide() {
	p.Visible = false
}

var PromptComponent = NewComponent[Prompt]()
