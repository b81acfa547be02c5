package notify

import (
	"context"
	"encoding/json"

	"github.com/wb-go/wbf/zlog"

	"campushub/internal/mailer"
	"campushub/internal/rabbit"
)

// Worker drains the notification queue and hands messages to the mailer.
type Worker struct {
	rmq    *rabbit.Client
	mail   *mailer.Mailer
	done   chan struct{}
	cancel context.CancelFunc
}

func NewWorker(rmq *rabbit.Client, mail *mailer.Mailer) *Worker {
	return &Worker{
		rmq:  rmq,
		mail: mail,
		done: make(chan struct{}),
	}
}

func (w *Worker) Start(ctx context.Context) {
	cctx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	zlog.Logger.Info().Msg("notification worker started")

	go func() {
		defer close(w.done)

		handler := func(body []byte) error {
			var msg Message
			if err := json.Unmarshal(body, &msg); err != nil {
				// Requeueing a malformed payload would redeliver it forever.
				zlog.Logger.Error().
					Err(err).
					Msgf("Failed to unmarshal notification, dropping: %s", string(body))
				return nil
			}

			zlog.Logger.Info().
				Str("kind", msg.Kind).
				Str("recipient", msg.Recipient).
				Msg("received notification from queue")

			var err error
			switch msg.Kind {
			case KindRegistrationConfirmed:
				err = w.mail.SendRegistrationConfirmation(msg.Recipient, msg.Name, msg.EventTitle)
			case KindContactReceived:
				err = w.mail.SendContactCopy(msg.Recipient, msg.Name, msg.Subject, msg.Body)
			default:
				zlog.Logger.Warn().Str("kind", msg.Kind).Msg("unknown notification kind, dropping")
				return nil
			}
			if err != nil {
				// Mail failure is terminal for this message; requeueing
				// would loop on a misconfigured SMTP endpoint.
				zlog.Logger.Warn().Err(err).Msg("failed to send notification email")
			}
			return nil
		}

		if err := w.rmq.Consume(handler); err != nil {
			zlog.Logger.Error().Err(err).Msg("failed to start consuming")
			return
		}

		<-cctx.Done()
		zlog.Logger.Info().Msg("notification worker stopped by context")
	}()
}

func (w *Worker) Stop() {
	if w.cancel != nil {
		w.cancel()
		<-w.done
	}
}
