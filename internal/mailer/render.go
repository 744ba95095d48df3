package mailer

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"net/url"
	"strings"
	texttemplate "text/template"
	"time"

	"github.com/dustin/go-humanize"

	"invoicely.app/api/internal/model"
	"invoicely.app/api/internal/service"
)

//go:embed templates/*.gotmpl
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templateFS, "templates/*.html.gotmpl"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templateFS, "templates/*.txt.gotmpl"))
)

// Renderer turns notification payloads into email messages with links back
// to the dashboard.
type Renderer struct {
	dashboardURL string
	now          func() time.Time
}

func NewRenderer(dashboardURL string, now func() time.Time) *Renderer {
	if now == nil {
		now = time.Now
	}
	return &Renderer{
		dashboardURL: strings.TrimRight(dashboardURL, "/"),
		now:          now,
	}
}

type invitationView struct {
	OrganizationName string
	RoleLabel        string
	AcceptURL        string
	ExpiresIn        string
	ExpiresOn        string
}

func (r *Renderer) Invitation(email service.InvitationEmail) (Message, error) {
	view := invitationView{
		OrganizationName: email.OrganizationName,
		RoleLabel:        roleLabel(email.Role),
		AcceptURL:        r.AcceptURL(email.Token),
		ExpiresIn:        humanize.RelTime(email.ExpiresAt, r.now(), "ago", "from now"),
		ExpiresOn:        email.ExpiresAt.UTC().Format("January 2, 2006"),
	}

	return r.render("invitation", view, Message{
		To:      []string{email.Email},
		Subject: fmt.Sprintf("You're invited to join %s on Invoicely", email.OrganizationName),
	})
}

// AcceptURL is the dashboard page that consumes an invitation token.
func (r *Renderer) AcceptURL(token string) string {
	return r.dashboardURL + "/invitations/accept?token=" + url.QueryEscape(token)
}

type memberEventView struct {
	Headline         string
	Email            string
	Verb             string
	OrganizationName string
	RoleLabel        string
	MembersURL       string
}

// MemberEvent renders MEMBER_JOINED and MEMBER_LEFT notifications for the
// email channel.
func (r *Renderer) MemberEvent(to string, org *model.Organization, typ model.NotificationType, data map[string]any) (Message, error) {
	view := memberEventView{
		Email:            fmt.Sprint(data["email"]),
		OrganizationName: org.Name,
		MembersURL:       fmt.Sprintf("%s/organizations/%d/members", r.dashboardURL, org.ID),
	}
	if role, ok := data["role"].(string); ok {
		view.RoleLabel = roleLabel(model.Role(role))
	}

	switch typ {
	case model.NotificationMemberJoined:
		view.Headline = "A new member joined " + org.Name
		view.Verb = "joined"
	case model.NotificationMemberLeft:
		view.Headline = "A member left " + org.Name
		view.Verb = "left"
		view.RoleLabel = ""
	default:
		return Message{}, fmt.Errorf("%w: no email template for %s", ErrPermanent, typ)
	}

	return r.render("member_event", view, Message{
		To:      []string{to},
		Subject: view.Headline,
	})
}

func (r *Renderer) render(name string, view any, msg Message) (Message, error) {
	var html, text bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, name+".html.gotmpl", view); err != nil {
		return Message{}, fmt.Errorf("rendering %s html: %w", name, err)
	}
	if err := textTemplates.ExecuteTemplate(&text, name+".txt.gotmpl", view); err != nil {
		return Message{}, fmt.Errorf("rendering %s text: %w", name, err)
	}
	msg.HTML = html.String()
	msg.Text = text.String()
	return msg, nil
}

func roleLabel(r model.Role) string {
	if r == "" {
		return ""
	}
	s := strings.ToLower(string(r))
	article := "a"
	if strings.ContainsRune("aeiou", rune(s[0])) {
		article = "an"
	}
	return article + " " + s
}
