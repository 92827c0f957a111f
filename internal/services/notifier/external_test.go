package notifier

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"amlwatch/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTransaction() *models.TransactionData {
	tx := &models.TransactionData{
		AcctNo:         "0012345",
		AcctName:       "Jane Banda",
		TranID:         "TX-1",
		AcctOpnDate:    "2024-01-15",
		Branch:         "001",
		Country:        "ZM",
		NrcNo:          "123456/10/1",
		TranDate:       "2024-06-01",
		TranCrncyCode:  "ZMW",
		DrCrIndicator:  "D",
		TranAmt:        15000,
		TranParticular: "cash withdrawal",
		TranRmks:       "urgent",
	}
	tx.ACashExcpAmtLim = 10000
	tx.SNewAcctAbnrmlTranAmt = 2500.5
	return tx
}

func TestBuildPayload(t *testing.T) {
	payload := BuildPayload(sampleTransaction())

	require.Len(t, payload, 1)
	entry := payload[0]
	assert.Equal(t, "0012345", entry["account_number"])
	assert.Equal(t, "ZM", entry["nationality"])
	assert.Equal(t, "123456/10/1", entry["identifier"])
	assert.Equal(t, "D", entry["transaction_type"])
	assert.Equal(t, "cash withdrawal", entry["reference"])
	assert.Equal(t, "urgent", entry["transaction_code"])
	assert.Equal(t, "", entry["empty_field"])
	assert.Equal(t, 10000.0, entry["a_cash_excp_amt_lim"])
	assert.Equal(t, 2500.5, entry["s_new_acct_abnrml_tran_amt"])
	assert.Equal(t, 0.0, entry["s_clg_cr_lim"])
	for _, f := range models.LimitFields {
		assert.Contains(t, entry, f.Name)
	}
}

func TestExternalNotifier_Notify(t *testing.T) {
	var (
		contentType string
		body        []map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &body)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewExternalNotifier(srv.URL, time.Second, zerolog.Nop())
	require.NoError(t, n.Notify(context.Background(), sampleTransaction()))

	assert.Contains(t, contentType, "application/json")
	require.Len(t, body, 1)
	assert.Equal(t, "TX-1", body[0]["transaction_id"])
	assert.Equal(t, 15000.0, body[0]["amount"])
}

func TestExternalNotifier_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("upstream down"))
	}))
	defer srv.Close()

	n := NewExternalNotifier(srv.URL, time.Second, zerolog.Nop())
	err := n.Notify(context.Background(), sampleTransaction())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestExternalNotifier_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	n := NewExternalNotifier(srv.URL, 20*time.Millisecond, zerolog.Nop())
	assert.Error(t, n.Notify(context.Background(), sampleTransaction()))
}

func TestExternalNotifier_CancelledContext(t *testing.T) {
	n := NewExternalNotifier("http://127.0.0.1:1", time.Second, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, n.Notify(ctx, sampleTransaction()), context.Canceled)
}

func TestExternalNotifier_NoURL(t *testing.T) {
	n := NewExternalNotifier("", 0, zerolog.Nop())
	assert.Error(t, n.Notify(context.Background(), sampleTransaction()))
}
