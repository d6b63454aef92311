package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"go-hrms/internal/events"
	"go-hrms/internal/mail"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeLeaveNotifications reads leave lifecycle events and dispatches
// the corresponding emails. Malformed messages are committed and
// skipped; mail failures are logged but the offset still advances, so a
// broken SMTP relay cannot wedge the consumer group.
func ConsumeLeaveNotifications(
	ctx context.Context,
	reader *kafkago.Reader,
	mailer mail.Mailer,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.leave")
	log.Info("leave notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, io.EOF) {
				log.Info("leave notification consumer stopped")
				return
			}
			log.Error("fetch message failed", zap.Error(err))
			continue
		}

		handleLeaveMessage(msg, mailer, log)

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit message failed", zap.Error(err))
		}
	}
}

func handleLeaveMessage(msg kafkago.Message, mailer mail.Mailer, log *zap.Logger) {
	switch msg.Topic {
	case events.LeaveRequestedTopic:
		var event events.LeaveRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Warn("skip malformed leave requested event", zap.Error(err))
			return
		}

		data := mail.LeaveEmailData{
			EmployeeName: event.EmployeeName,
			LeaveType:    event.LeaveType,
			FromDate:     event.FromDate,
			ToDate:       event.ToDate,
			Days:         event.Days,
			Reason:       event.Reason,
			ApproveLink:  mailer.DecisionLink(event.ApproveToken),
			RejectLink:   mailer.DecisionLink(event.RejectToken),
		}
		if err := mailer.SendLeaveApprovalRequest(data, event.ApproverEmails); err != nil {
			log.Error("send approval request emails failed",
				zap.String("leave_id", event.LeaveID), zap.Error(err))
			return
		}
		log.Info("approval request emails sent", zap.String("leave_id", event.LeaveID))

	case events.LeaveDecidedTopic:
		var event events.LeaveDecidedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Warn("skip malformed leave decided event", zap.Error(err))
			return
		}

		data := mail.LeaveEmailData{
			EmployeeName: event.EmployeeName,
			LeaveType:    event.LeaveType,
			FromDate:     event.FromDate,
			ToDate:       event.ToDate,
			Days:         event.Days,
			DecidedBy:    event.DecidedBy,
		}

		var err error
		if event.Decision == "approved" {
			err = mailer.SendLeaveApproved(data, event.ApplicantEmail)
		} else {
			err = mailer.SendLeaveRejected(data, event.ApplicantEmail, event.RejectionReason)
		}
		if err != nil {
			log.Error("send decision email failed",
				zap.String("leave_id", event.LeaveID), zap.Error(err))
			return
		}
		log.Info("decision email sent",
			zap.String("leave_id", event.LeaveID), zap.String("decision", event.Decision))

	default:
		log.Warn("unexpected topic", zap.String("topic", msg.Topic))
	}
}
