package billing

import (
	"fmt"
	"time"
)

// clientCodes maps client names to the short codes used in document numbers.
// Unmapped clients fall back to the generic code.
var clientCodes = map[string]string{
	"株式会社サンライズ企画":   "SUN",
	"グリーンリーフ出版":     "GLP",
	"ホシノデザイン事務所":    "HSN",
	"株式会社あおぞらメディア":  "AOZ",
	"ミナト広告株式会社":     "MNT",
}

// genericClientCode is used for clients without an assigned code.
const genericClientCode = "OTH"

// ClientCode returns the document-number prefix for a client.
func ClientCode(client string) string {
	if code, ok := clientCodes[client]; ok {
		return code
	}
	return genericClientCode
}

// invoiceNumber builds "{prefix}-{YYYYMM}-{seq}". The sequence is derived
// from the clock and is not coordinated across processes, so uniqueness
// holds only within a single process; callers needing strict uniqueness
// must add their own counter.
func invoiceNumber(client string, month time.Time, now time.Time) string {
	seq := now.Unix() % 1000
	return fmt.Sprintf("%s-%s-%03d", ClientCode(client), month.Format("200601"), seq)
}

// quoteNumber builds "Q{YYYYMMDD}-{seq}" with the same clock-derived
// sequence caveat as invoiceNumber.
func quoteNumber(now time.Time) string {
	seq := now.Unix() % 1000
	return fmt.Sprintf("Q%s-%03d", now.Format("20060102"), seq)
}
