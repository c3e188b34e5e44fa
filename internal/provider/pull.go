package provider

import (
	"context"
	"strings"

	"github.com/nhle/nostlichat/internal/logger"
)

// FormatLine renders a fetched message as a conversation display line.
// The sender label collapses to "Me" when the From header contains the
// user's own address as a substring. An empty selfEmail matches every
// sender; that degenerate case is part of the observed contract and is
// kept as-is.
func FormatLine(msg Message, selfEmail string) string {
	label := msg.From
	if strings.Contains(msg.From, selfEmail) {
		label = "Me"
	}
	return label + ": " + msg.Subject
}

// Pull lists up to limit recent messages and fetches each one's
// headers, returning formatted display lines in list order.
//
// Failures are handled per the skip-on-failure contract: a failed list
// yields no lines, a failed individual fetch drops just that message.
// Nothing retries; partial results are expected.
func Pull(ctx context.Context, c Client, selfEmail string, limit int) []string {
	ids, err := c.ListMessages(ctx, limit)
	if err != nil {
		logger.Warn("listing remote messages failed", "error", err)
		return nil
	}

	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		msg, err := c.GetMessage(ctx, id)
		if err != nil {
			logger.Debug("fetching remote message failed, skipping",
				"id", id, "error", err)
			continue
		}
		lines = append(lines, FormatLine(msg, selfEmail))
	}

	return lines
}
