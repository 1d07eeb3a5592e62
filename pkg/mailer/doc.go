// Package mailer turns form submissions into plain-text emails and sends them.
//
// Compose renders the notification: a fixed subject naming the form and a
// body with one "- key: value" line per submitted field, in submission order.
// Message.WriteTo encodes it as an RFC 5322 text/plain UTF-8 message using
// github.com/emersion/go-message.
//
// Two Sender implementations are provided:
//   - SMTPSender opens one connection per message, upgrades it with STARTTLS,
//     authenticates with AUTH PLAIN and submits the message
//     (github.com/emersion/go-smtp).
//   - DevSender writes .eml files to a directory for local development.
//
// Mailer.Deliver wraps a Sender and reports a typed Result instead of an
// error: sent, skipped (credentials not configured) or failed. Failure
// categories are available through Result.Reason and errors.Is against the
// stage sentinels ErrConnect, ErrStartTLS, ErrAuth and ErrSend.
//
//	m := mailer.New(mailer.NewSMTPSender(cfg), cfg.Sender())
//	res := m.Deliver(ctx, mailer.Notification{
//	    Recipient: "sales@example.com",
//	    FormName:  "Contact Form",
//	    Fields:    submission.Data,
//	})
//	if res.Status == mailer.StatusFailed {
//	    log.Error("delivery failed", "reason", res.Reason(), "error", res.Err)
//	}
package mailer
