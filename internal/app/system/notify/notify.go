// internal/app/system/notify/notify.go

// Package notify implements the one-way notification sink the membership
// engine calls when an approval-gated group receives a join request.
//
// Delivery is fire-and-forget: implementations return nothing, failures
// are logged, and the join request is never rolled back on delivery
// failure. The engine invokes the sink outside any lock.
package notify

import (
	"context"

	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/mailer"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/domain/models"
	"go.uber.org/zap"
)

// LogNotifier records the notification in the application log. Used in
// dev and as the fallback when SMTP is not configured.
type LogNotifier struct {
	Log *zap.Logger
}

// JoinRequested logs the pending request.
func (n *LogNotifier) JoinRequested(ctx context.Context, owner, requester models.User, group models.Group, requestRef string) {
	n.Log.Info("join request pending",
		zap.String("group", group.Name),
		zap.String("owner", owner.Username),
		zap.String("requester", requester.Username),
		zap.String("request_ref", requestRef))
}

// MailNotifier emails the group owner about the pending request.
type MailNotifier struct {
	Sender   *mailer.Sender
	Log      *zap.Logger
	SiteName string
	BaseURL  string
}

// JoinRequested sends the owner notification. Owners without an email
// address on file are skipped with a log line.
func (n *MailNotifier) JoinRequested(ctx context.Context, owner, requester models.User, group models.Group, requestRef string) {
	if owner.Email == "" {
		n.Log.Info("join request notification skipped; owner has no email",
			zap.String("group", group.Name),
			zap.String("owner", owner.Username))
		return
	}

	reviewURL := ""
	if n.BaseURL != "" {
		reviewURL = n.BaseURL + "/groups/" + group.ID.Hex() + "/requests"
	}

	email := mailer.BuildJoinRequestEmail(mailer.JoinRequestEmailData{
		SiteName:   n.SiteName,
		GroupName:  group.Name,
		Requester:  requester.Username,
		RequestRef: requestRef,
		ReviewURL:  reviewURL,
	})
	email.To = owner.Email

	if err := n.Sender.Send(email); err != nil {
		// Best-effort by contract: the request stands even if the owner
		// never hears about it by mail.
		n.Log.Warn("join request notification failed",
			zap.String("group", group.Name),
			zap.String("owner_email", owner.Email),
			zap.Error(err))
	}
}
