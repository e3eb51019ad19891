package background

import (
	"fmt"
	"html"
)

// WelcomeMessage is sent after signup.
func WelcomeMessage(email, name string) Message {
	return Message{
		To:      email,
		Name:    name,
		Subject: "Thanks for joining in!",
		Text:    fmt.Sprintf("Welcome to the app, %s. Let me know how you get along with the app.", name),
		HTML: fmt.Sprintf("<p>Welcome to the app, <strong>%s</strong>.</p><p>Let me know how you get along with the app.</p>",
			html.EscapeString(name)),
	}
}

// CancellationMessage is sent after an account is deleted.
func CancellationMessage(email, name string) Message {
	return Message{
		To:      email,
		Name:    name,
		Subject: "Sorry to see you go!",
		Text:    fmt.Sprintf("Goodbye, %s. I hope to see you back sometime soon.", name),
		HTML: fmt.Sprintf("<p>Goodbye, <strong>%s</strong>.</p><p>I hope to see you back sometime soon.</p>",
			html.EscapeString(name)),
	}
}
