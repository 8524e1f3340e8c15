package pages

import (
	cmp "maragu.dev/gomponents"
	g "maragu.dev/gomponents/html"

	"github.com/nfrund/sigboard/internal/view/dto"
)

// Login is the sign-in form.
func Login(data dto.LoginData) cmp.Node {
	return g.Div(
		g.Class("auth"),
		g.H1(cmp.Text("Sign in")),
		g.Form(
			g.Method("post"), g.Action("/login"),
			input("Email", "email", "email", data.Email),
			input("Password", "password", "password", ""),
			g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text("Sign in")),
		),
		g.P(cmp.Text("No account yet? "), g.A(g.Href("/register"), cmp.Text("Create one"))),
	)
}

// Register is the sign-up form.
func Register(data dto.RegisterData) cmp.Node {
	return g.Div(
		g.Class("auth"),
		g.H1(cmp.Text("Create account")),
		g.Form(
			g.Method("post"), g.Action("/register"),
			input("First name", "first_name", "text", data.FirstName),
			input("Last name", "last_name", "text", data.LastName),
			input("Email", "email", "email", data.Email),
			input("Password", "password", "password", ""),
			input("Confirm password", "password_confirm", "password", ""),
			g.Button(g.Type("submit"), g.Class("btn btn-primary"), cmp.Text("Create account")),
		),
		g.P(cmp.Text("Already registered? "), g.A(g.Href("/"), cmp.Text("Sign in"))),
	)
}

func input(label, name, typ, value string) cmp.Node {
	return g.Div(
		g.Class("field"),
		g.Label(g.For(name), cmp.Text(label)),
		g.Input(g.ID(name), g.Name(name), g.Type(typ), g.Value(value), g.Required()),
	)
}
