package mail

import (
	"fmt"
	"strings"

	"github.com/Impagliazzo/Proyecto-LaColmena/internal/pkg/env"
)

func publicBase() string {
	return strings.TrimRight(env.GetEnv("PUBLIC_DOMAIN", "http://localhost:3000"), "/")
}

// SendActivationMail mails the account activation link after registration.
func SendActivationMail(to, name, token string) error {
	link := fmt.Sprintf("%s/auth/activate?token=%s", publicBase(), token)
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Welcome to La Colmena! Confirm your email address to activate your account:</p>"+
			"<p><a href=\"%s\">Activate my account</a></p>"+
			"<p>If you did not sign up, you can ignore this email.</p>",
		name, link,
	)
	return SendMail(to, "Activate your La Colmena account", body)
}

// SendContactRequestMail tells an owner that a listing got a new contact request.
func SendContactRequestMail(to, name, propertyTitle string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Someone is interested in your listing <strong>%s</strong>.</p>"+
			"<p><a href=\"%s/contacts/inbox\">Open your inbox</a> to answer the request.</p>",
		name, propertyTitle, publicBase(),
	)
	return SendMail(to, "New contact request for your listing", body)
}

// SendSubscriptionExpiringMail warns a subscriber shortly before their plan
// lapses and their extra listings get suspended.
func SendSubscriptionExpiringMail(to, name, planName string, daysLeft int) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p>"+
			"<p>Your <strong>%s</strong> plan expires in %d days. "+
			"Listings above your free slot will be suspended when it lapses.</p>"+
			"<p><a href=\"%s/subscriptions/plans\">Renew your plan</a></p>",
		name, planName, daysLeft, publicBase(),
	)
	return SendMail(to, "Your subscription is about to expire", body)
}
