package worker

// email_worker.go
// Sends the daily register-closure summary to the administrator.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adrianopessanha/blacksalon/internal/infra"
	"github.com/adrianopessanha/blacksalon/internal/service"

	"github.com/rs/zerolog/log"
)

// FechamentoEmailPayload is the job envelope sent to QueueEmail.
type FechamentoEmailPayload struct {
	LojaID         string `json:"loja_id"`
	DataReferencia string `json:"data_referencia"`
}

type EmailWorker struct {
	mailer     *infra.Mailer
	caixa      service.CaixaService
	adminEmail string
}

func NewEmailWorker(mailer *infra.Mailer, caixa service.CaixaService, adminEmail string) *EmailWorker {
	return &EmailWorker{mailer: mailer, caixa: caixa, adminEmail: adminEmail}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload FechamentoEmailPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // malformed payloads never succeed on retry
	}
	if w.adminEmail == "" {
		log.Warn().Msg("email_worker: admin email not configured — skipping")
		return nil
	}

	fechamento, err := w.caixa.Obter(ctx, payload.LojaID, payload.DataReferencia)
	if err != nil {
		return fmt.Errorf("email_worker: fechamento %s/%s: %w", payload.LojaID, payload.DataReferencia, err)
	}

	subject := fmt.Sprintf("Fechamento de caixa — %s — %s", fechamento.LojaID, fechamento.DataReferencia)
	body := fmt.Sprintf(
		"Fechamento de caixa\n\nLoja: %s\nData: %s\n\n"+
			"Esperado em dinheiro: R$ %s\nInformado em dinheiro: R$ %s\n"+
			"Diferença: R$ %s (%s)\n\n"+
			"Pix: R$ %s\nDébito: R$ %s\nCrédito: R$ %s\nTotal do dia: R$ %s\n",
		fechamento.LojaID,
		fechamento.DataReferencia,
		fechamento.Esperado.Dinheiro.StringFixed(2),
		fechamento.InformadoDinheiro.StringFixed(2),
		fechamento.Diferenca.StringFixed(2),
		fechamento.Status,
		fechamento.Esperado.Pix.StringFixed(2),
		fechamento.Esperado.Debito.StringFixed(2),
		fechamento.Esperado.Credito.StringFixed(2),
		fechamento.Esperado.Total.StringFixed(2),
	)

	if err := w.mailer.Send(w.adminEmail, subject, body, ""); err != nil {
		return fmt.Errorf("email_worker: send: %w", err)
	}
	log.Info().Str("loja_id", payload.LojaID).Str("data", payload.DataReferencia).Msg("email_worker: closure summary sent")
	return nil
}
