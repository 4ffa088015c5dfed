package views

import (
	g "github.com/maragudk/gomponents"
	. "github.com/maragudk/gomponents/html"
)

func NotFoundPage(props LayoutProps) g.Node {
	props.Title = "Page not found"
	return Layout(props,
		H1(g.Text("404")),
		P(g.Text("The page you requested does not exist.")),
		A(Href(props.URLs.Index()), g.Text("Back to the feed")),
	)
}

func ErrorPage(props LayoutProps) g.Node {
	props.Title = "Server error"
	return Layout(props,
		H1(g.Text("500")),
		P(g.Text("Something went wrong on our side. Please try again later.")),
	)
}
