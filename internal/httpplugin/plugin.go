package httpplugin

import "projgp/internal/shell"

const Name = "http"

// Plugin は Client を生成してフロントエンドへバインドする。
type Plugin struct {
	opts   Options
	client *Client
}

func New(opts Options) *Plugin { return &Plugin{opts: opts} }

func (p *Plugin) Name() string { return Name }

func (p *Plugin) Register(app *shell.App) error {
	c, err := NewClient(p.opts)
	if err != nil {
		return err
	}
	p.client = c
	app.Bind(c)
	return nil
}

// Client は登録済みのクライアント（Register 前は nil）。
func (p *Plugin) Client() *Client { return p.client }
