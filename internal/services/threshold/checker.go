// Package threshold compares a transaction against the configured
// per-channel limits.
package threshold

import (
	"context"
	"fmt"
	"strings"

	"amlwatch/internal/models"
	"amlwatch/internal/utils"

	"github.com/rs/zerolog"
)

// LimitLookup is the subset of the limit store the checker needs.
type LimitLookup interface {
	FindActive(ctx context.Context, channel, tranType string) (*models.TransactionLimit, error)
}

type Checker struct {
	limits LimitLookup
	log    zerolog.Logger
}

func NewChecker(limits LimitLookup, log zerolog.Logger) *Checker {
	if limits == nil {
		panic("limit lookup is required")
	}
	return &Checker{limits: limits, log: log}
}

// Check reports whether tx exceeds the active limit for its channel and
// type, falling back to the DEFAULT channel. The returned reason is the
// limit's configured flag reason or a generated one. No configured limit
// means no breach.
func (c *Checker) Check(ctx context.Context, tx *models.TransactionData) (bool, *string, error) {
	tranType := strings.ToUpper(strings.TrimSpace(tx.DrCrIndicator))
	channel := DetermineChannel(tx)

	limit, err := c.limits.FindActive(ctx, channel, tranType)
	if err != nil {
		return false, nil, fmt.Errorf("lookup %s/%s limit: %w", channel, tranType, err)
	}
	if limit == nil && channel != models.ChannelDefault {
		limit, err = c.limits.FindActive(ctx, models.ChannelDefault, tranType)
		if err != nil {
			return false, nil, fmt.Errorf("lookup %s/%s limit: %w", models.ChannelDefault, tranType, err)
		}
	}
	if limit == nil || tx.TranAmt <= limit.Limit {
		return false, nil, nil
	}

	reason := fmt.Sprintf("%s transaction exceeds %s limit of %s", tranType, channel, utils.FormatAmount(limit.Limit))
	if limit.FlagReason != nil && *limit.FlagReason != "" {
		reason = *limit.FlagReason
	}
	c.log.Debug().
		Str("acct_no", tx.AcctNo).
		Str("channel", channel).
		Str("type", tranType).
		Float64("limit", limit.Limit).
		Msg("transaction limit exceeded")
	return true, &reason, nil
}

// DetermineChannel derives the channel from the particulars and remarks.
// The first matching keyword group wins: cash, then transfer, then clearing.
func DetermineChannel(tx *models.TransactionData) string {
	particular := strings.ToLower(tx.TranParticular)
	remarks := strings.ToLower(tx.TranRmks)

	switch {
	case containsAny(particular, remarks, "cash"):
		return models.ChannelCash
	case containsAny(particular, remarks, "transfer", "xfer"):
		return models.ChannelTransfer
	case containsAny(particular, remarks, "clearing", "clg"):
		return models.ChannelClearing
	default:
		return models.ChannelDefault
	}
}

func containsAny(a, b string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(a, kw) || strings.Contains(b, kw) {
			return true
		}
	}
	return false
}
