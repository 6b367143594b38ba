package worker

// ticket_worker.go
// Processes receipt jobs from QueueTicketEmail: renders the ticket PDF and
// mails it to the client as an attachment.

import (
	"context"
	"encoding/json"

	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/infra"
	"github.com/Davidbuceoespana/divemanagerdefinitivo-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// TicketEmailPayload is the job envelope sent to QueueTicketEmail.
type TicketEmailPayload struct {
	Centro   string `json:"centro"`
	TicketID string `json:"ticket_id"`
	ToEmail  string `json:"to_email"`
}

type TicketEmailWorker struct {
	tickets     repository.TicketRepository
	mailer      *infra.Mailer
	storagePath string
}

func NewTicketEmailWorker(tickets repository.TicketRepository, mailer *infra.Mailer, storagePath string) *TicketEmailWorker {
	return &TicketEmailWorker{tickets: tickets, mailer: mailer, storagePath: storagePath}
}

func (w *TicketEmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload TicketEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("ticket_worker: invalid payload")
		return
	}
	id, err := uuid.Parse(payload.TicketID)
	if err != nil {
		log.Error().Str("ticket_id", payload.TicketID).Msg("ticket_worker: malformed ticket id")
		return
	}

	t, err := w.tickets.FindByID(ctx, payload.Centro, id)
	if err != nil {
		log.Error().Err(err).Str("ticket_id", payload.TicketID).Msg("ticket_worker: ticket not found")
		return
	}

	pdfPath, err := infra.GenerateTicketPDF(t, w.storagePath)
	if err != nil {
		log.Error().Err(err).Int("numero", t.Numero).Msg("ticket_worker: pdf generation failed")
		return
	}

	body := "Adjuntamos el recibo de tu compra. ¡Gracias por confiar en nosotros!"
	subject := "Tu recibo de compra"
	if err := w.mailer.Send(payload.ToEmail, subject, body, pdfPath); err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("ticket_worker: failed to send receipt")
		return
	}
	log.Info().Str("to", payload.ToEmail).Int("numero", t.Numero).Msg("ticket_worker: receipt sent")
}
