package validation

const (
	// Largest transaction or limit amount accepted from the feed
	MaxAmount = 1e15

	// Free-text reasons entered by staff
	MaxReasonLength = 2000
)
