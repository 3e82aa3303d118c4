package notification

import (
	"context"
	"fmt"
	"strings"

	"firebase.google.com/go/v4/messaging"
	"github.com/wneessen/go-mail"
	"go.uber.org/zap"

	"roomify/config"
	"roomify/models"
	"roomify/utils"
)

// DefaultNotificationService sends booking emails over SMTP and pushes chat
// notifications through FCM (one topic per chat user).
type DefaultNotificationService struct {
	Channels Channels
	FCM      *messaging.Client
}

func NewDefaultNotificationService(channels Channels, fcm *messaging.Client) *DefaultNotificationService {
	return &DefaultNotificationService{Channels: channels, FCM: fcm}
}

func (s *DefaultNotificationService) BookingConfirmed(ctx context.Context, booking *models.Booking, room *models.Room) error {
	subject := fmt.Sprintf("Booking confirmed: %s", booking.BookingNumber)
	body := confirmationBody(booking, room)
	s.dispatch(ctx, booking, subject, body)
	return nil
}

func (s *DefaultNotificationService) BookingCancelled(ctx context.Context, booking *models.Booking) error {
	subject := fmt.Sprintf("Booking cancelled: %s", booking.BookingNumber)
	body := fmt.Sprintf("Your reservation %s for %s on %s has been cancelled.",
		booking.BookingNumber, booking.RoomName, booking.Date)
	s.dispatch(ctx, booking, subject, body)
	return nil
}

// dispatch fans out to every enabled channel. Failures are logged and
// swallowed per channel so one broken channel never blocks another.
func (s *DefaultNotificationService) dispatch(ctx context.Context, booking *models.Booking, subject, body string) {
	logger := utils.GetLogger()
	if s.Channels.EmailEnabled && booking.CustomerEmail != "" {
		if err := s.sendEmail(booking.CustomerEmail, subject, body); err != nil {
			logger.Warn("email dispatch failed",
				zap.String("bookingNumber", booking.BookingNumber), zap.Error(err))
		}
	}
	if s.Channels.PushEnabled && s.FCM != nil && booking.ChatUserID != "" {
		if err := s.sendPush(ctx, booking.ChatUserID, subject, body); err != nil {
			logger.Warn("chat push dispatch failed",
				zap.String("bookingNumber", booking.BookingNumber), zap.Error(err))
		}
	}
}

func (s *DefaultNotificationService) sendEmail(to, subject, body string) error {
	cfg := config.AppConfig
	msg := mail.NewMsg()
	if err := msg.From(cfg.SMTPFrom); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUser),
		mail.WithPassword(cfg.SMTPPassword),
	)
	if err != nil {
		return fmt.Errorf("failed to build SMTP client: %w", err)
	}
	return client.DialAndSend(msg)
}

func (s *DefaultNotificationService) sendPush(ctx context.Context, chatUserID, title, body string) error {
	msg := &messaging.Message{
		Topic: chatTopic(chatUserID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
	}
	_, err := s.FCM.Send(ctx, msg)
	return err
}

// chatTopic derives a per-user FCM topic. Topic names only allow a narrow
// character set, so the user id is sanitized.
func chatTopic(chatUserID string) string {
	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, chatUserID)
	return "chat-user-" + safe
}

func confirmationBody(booking *models.Booking, room *models.Room) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Your reservation is confirmed.\n\n")
	fmt.Fprintf(&sb, "Booking number: %s\n", booking.BookingNumber)
	fmt.Fprintf(&sb, "Room: %s (%s)\n", room.Name, room.RoomType)
	fmt.Fprintf(&sb, "Date: %s\n", booking.Date)
	for _, seg := range booking.Segments {
		fmt.Fprintf(&sb, "Time: %s - %s\n", seg.Start, seg.End)
	}
	fmt.Fprintf(&sb, "Total: %d\n", booking.TotalPrice)
	return sb.String()
}
