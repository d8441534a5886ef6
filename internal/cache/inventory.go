package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	QuoteKeyPrefix  = "quote:%d"
	AuthorKeyPrefix = "author:%d"
	DailyQuoteKey   = "daily_quote"
)

const (
	QuoteTTL  = 30 * time.Minute
	AuthorTTL = 10 * time.Minute
	// DailyQuoteTTL is deliberately short: the resolved daily quote
	// embeds counters that toggles change out of band.
	DailyQuoteTTL = 1 * time.Minute
)

func QuoteKey(quoteID uint) string {
	return fmt.Sprintf(QuoteKeyPrefix, quoteID)
}

func AuthorKey(authorID uint) string {
	return fmt.Sprintf(AuthorKeyPrefix, authorID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateQuote(ctx context.Context, quoteID uint) {
	Invalidate(ctx, QuoteKey(quoteID))
}

func InvalidateAuthor(ctx context.Context, authorID uint) {
	Invalidate(ctx, AuthorKey(authorID))
}

func InvalidateDailyQuote(ctx context.Context) {
	Invalidate(ctx, DailyQuoteKey)
}
