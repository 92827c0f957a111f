package notifier

import (
	"context"
	"fmt"
	"time"

	"amlwatch/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// ExternalNotifier forwards a monitored transaction to the downstream
// case-management API. Delivery is at most once: failures are returned to
// the caller for logging and never retried.
type ExternalNotifier struct {
	url     string
	timeout time.Duration
	log     zerolog.Logger
}

func NewExternalNotifier(url string, timeout time.Duration, log zerolog.Logger) *ExternalNotifier {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ExternalNotifier{url: url, timeout: timeout, log: log}
}

// BuildPayload maps tx onto the downstream field names. The API expects an
// array, so a single transaction is wrapped in a one-element slice.
func BuildPayload(tx *models.TransactionData) []fiber.Map {
	entry := fiber.Map{
		"account_number":    tx.AcctNo,
		"account_name":      tx.AcctName,
		"transaction_id":    tx.TranID,
		"account_open_date": tx.AcctOpnDate,
		"branch_code":       tx.Branch,
		"address":           tx.AddressLine,
		"nationality":       tx.Country,
		"phone":             tx.MobileNo,
		"identifier":        tx.NrcNo,
		"tpin_number":       tx.TpinNumber,
		"transaction_date":  tx.TranDate,
		"currency":          tx.TranCrncyCode,
		"transaction_type":  tx.DrCrIndicator,
		"amount":            tx.TranAmt,
		"reference":         tx.TranParticular,
		"empty_field":       "",
		"transaction_code":  tx.TranRmks,
		"photo":             tx.Photo,
		"cif_id":            tx.CifID,
		"corporateid":       tx.Corporateid,
		"entry_date":        tx.EntryDate,
		"value_date":        tx.ValueDate,
	}
	for _, f := range models.LimitFields {
		entry[f.Name] = f.Get(&tx.LimitSet)
	}
	return []fiber.Map{entry}
}

// Notify posts tx and returns an error for transport failures and non-2xx
// responses. The fiber client has no context support, so ctx is only
// checked before sending; the per-request timeout bounds the call.
func (n *ExternalNotifier) Notify(ctx context.Context, tx *models.TransactionData) error {
	if n.url == "" {
		return fmt.Errorf("external sync: no endpoint configured")
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("external sync: %w", err)
	}

	timeout := n.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < timeout {
			timeout = left
		}
	}

	agent := fiber.Post(n.url)
	agent.JSON(BuildPayload(tx))
	agent.Timeout(timeout)
	if err := agent.Parse(); err != nil {
		return fmt.Errorf("external sync: build request: %w", err)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("external sync: %w", errs[0])
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return fmt.Errorf("external sync: unexpected status %d: %s", code, truncate(body, 256))
	}

	n.log.Info().Str("tran_id", tx.TranID).Int("status", code).Msg("transaction synced to external API")
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
