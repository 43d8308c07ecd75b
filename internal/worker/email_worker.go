package worker

// email_worker.go
// Processes email jobs from QueueEmail: onboarding credential mails and
// payment receipts with the PDF attached.

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/GenturixHub/Genturix-sub003/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailPayload is the job envelope sent to QueueEmail.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

// Process sends one email, attaching a PDF when the payload carries a path.
func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) error {
	var payload EmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		// Malformed payloads never succeed; don't retry them.
		return nil
	}
	if payload.To == "" {
		log.Warn().Msg("email_worker: empty recipient, skipping")
		return nil
	}

	if err := w.mailer.Send(payload.To, payload.Subject, payload.Body, payload.PDFPath); err != nil {
		log.Error().Err(err).Str("to", payload.To).Msg("email_worker: failed to send email")
		return errors.New("smtp send failed")
	}
	log.Info().Str("to", payload.To).Msg("email_worker: email sent")
	return nil
}
