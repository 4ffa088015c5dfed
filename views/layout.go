package views

import (
	"blogicum/models"
	"blogicum/utils"

	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

const siteName = "Blogicum"

// LayoutProps is what every page needs from the request.
type LayoutProps struct {
	Title       string
	CurrentUser *models.User
	URLs        utils.URLs
}

func NavbarComponent(props LayoutProps) g.Node {
	u := props.URLs
	return Nav(Class("nav"),
		Div(Class("nav-left"),
			Div(Class("brand"), A(Href(u.Index()), g.Text(siteName))),
		),
		Div(Class("nav-links nav-right"),
			g.If(props.CurrentUser == nil,
				Div(
					A(Href(u.Login()), g.Text("Log in")),
					A(Href(u.Registration()), g.Text("Sign up")),
				),
			),
			g.If(props.CurrentUser != nil, loggedInLinks(props)),
		),
	)
}

func loggedInLinks(props LayoutProps) g.Node {
	if props.CurrentUser == nil {
		return nil
	}
	u := props.URLs
	return Div(Class("row"),
		A(Href(u.CreatePost()), g.Text("New post")),
		A(Href(u.Profile(props.CurrentUser.Username)), g.Text(props.CurrentUser.Username)),
		Form(Method("post"), Action(u.Logout()), Class("inline"),
			Button(Type("submit"), g.Text("Log out")),
		),
	)
}

func FooterComponent() g.Node {
	return Footer(Class("footer"),
		P(Small(g.Textf("%s. Posts appear once their publication date has passed.", siteName))),
	)
}

func Layout(props LayoutProps, children ...g.Node) g.Node {
	title := siteName
	if props.Title != "" {
		title = props.Title + " | " + siteName
	}
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				TitleEl(g.Text(title)),
			),
			Body(
				Div(Class("container"),
					NavbarComponent(props),
					Main(
						g.Group(children),
					),
				),
				FooterComponent(),
			),
		),
	)
}
