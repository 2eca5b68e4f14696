package notification

import (
	"fmt"
	"net/smtp"
	"strings"

	"cosmeshop/internal/domain/model"
)

// メール送信の約束。本文の組み立てまで実装側の責務。
type Mailer interface {
	SendOrderConfirmation(user model.User, order model.Order, items []model.OrderItem) error
	SendOrderStatusUpdate(user model.User, order model.Order, previousStatus model.OrderStatus) error
	SendWelcome(user model.User) error
	SendAccountApproved(user model.User) error
	SendAccountRejected(user model.User, reason string) error
}

type SMTPMailer struct {
	addr    string // host:port
	from    string
	appName string
	auth    smtp.Auth
}

func NewSMTPMailer(addr, from, appName string, auth smtp.Auth) *SMTPMailer {
	return &SMTPMailer{addr: addr, from: from, appName: appName, auth: auth}
}

func (m *SMTPMailer) SendOrderConfirmation(user model.User, order model.Order, items []model.OrderItem) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", displayName(user))
	fmt.Fprintf(&b, "Thank you for your order %s.\r\n\r\n", order.OrderNumber)
	for _, it := range items {
		fmt.Fprintf(&b, "  %s x%d  %s\r\n", it.ProductNameSnapshot, it.Quantity, it.Subtotal.StringFixed(2))
	}
	fmt.Fprintf(&b, "\r\nTotal: %s\r\n", order.TotalAmount.StringFixed(2))
	fmt.Fprintf(&b, "Shipping to: %s, %s, %s\r\n", order.ShippingAddress, order.ShippingCity, order.ShippingState)

	subject := "Order Confirmation - " + order.OrderNumber
	return m.send(user.Email, subject, b.String())
}

func (m *SMTPMailer) SendOrderStatusUpdate(user model.User, order model.Order, previousStatus model.OrderStatus) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", displayName(user))
	fmt.Fprintf(&b, "Your order %s changed status: %s -> %s.\r\n", order.OrderNumber, previousStatus, order.Status)

	subject := "Order Update - " + order.OrderNumber
	return m.send(user.Email, subject, b.String())
}

func (m *SMTPMailer) SendWelcome(user model.User) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", displayName(user))
	fmt.Fprintf(&b, "Welcome to %s! Your account is awaiting approval.\r\n", m.appName)

	subject := "Welcome to " + m.appName + "!"
	return m.send(user.Email, subject, b.String())
}

func (m *SMTPMailer) SendAccountApproved(user model.User) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", displayName(user))
	fmt.Fprintf(&b, "Your %s account has been approved. You can now log in.\r\n", m.appName)

	return m.send(user.Email, "Account Approved", b.String())
}

func (m *SMTPMailer) SendAccountRejected(user model.User, reason string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\r\n\r\n", displayName(user))
	fmt.Fprintf(&b, "Your %s registration was not approved.\r\n", m.appName)
	if reason != "" {
		fmt.Fprintf(&b, "Reason: %s\r\n", reason)
	}

	return m.send(user.Email, "Account Registration", b.String())
}

func (m *SMTPMailer) send(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("empty recipient")
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s", m.from, to, subject, body)
	return smtp.SendMail(m.addr, m.auth, m.from, []string{to}, []byte(msg))
}

func displayName(user model.User) string {
	if user.FirstName != "" {
		return user.FirstName
	}
	return user.Username
}
