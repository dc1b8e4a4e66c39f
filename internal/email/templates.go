package email

import "html/template"

type messageData struct {
	Brand    string
	Title    string
	Intro    string
	Pin      string
	LinkURL  string
	LinkText string
	Detail   string
	Footer   string
}

// One shared layout, themed like the site: dark gradient card, purple accent.
const layoutTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; background: linear-gradient(135deg, #0f0a1a 0%, #1a1a2e 100%); padding: 24px; border-radius: 16px; color: #f0f0f0;">
  <div style="text-align: center; margin-bottom: 32px;">
    <h2 style="background: linear-gradient(135deg, #1B16A8 0%, #7C3AED 100%); -webkit-background-clip: text; -webkit-text-fill-color: transparent; background-clip: text; margin: 0;">{{.Title}}</h2>
  </div>
  <div style="background: rgba(27, 22, 168, 0.1); border: 1px solid rgba(27, 22, 168, 0.2); padding: 20px; border-radius: 8px; margin-bottom: 24px;">
    <p style="margin: 0 0 15px 0; line-height: 1.6;">{{.Intro}}</p>
    {{if .Pin}}<div style="font-size:2.2em;font-weight:800;letter-spacing:0.2em;color:#7C3AED;background:#fff;padding:16px 0;border-radius:8px;margin:16px 0;text-align:center;">{{.Pin}}</div>{{end}}
    {{if .LinkURL}}<p style="margin: 0;"><a href="{{.LinkURL}}" style="color: #1B16A8; text-decoration: underline; font-weight: bold;">{{.LinkText}}</a></p>{{end}}
    {{if .Detail}}<p style="margin: 0; color: #aaa; font-size: 0.9em;">{{.Detail}}</p>{{end}}
  </div>
  <div style="background: rgba(27, 22, 168, 0.05); padding: 15px; border-radius: 8px; margin-bottom: 20px;">
    <p style="margin: 0; color: #bbb; text-align: center;">{{.Footer}}</p>
  </div>
  <div style="text-align: center; color: #666; font-size: 0.8em; padding-top: 20px; border-top: 1px solid rgba(27, 22, 168, 0.1);">
    <p style="margin: 10px 0;">Powered by {{.Brand}}</p>
  </div>
</div>`

var layoutTpl = template.Must(template.New("layout").Parse(layoutTemplate))
