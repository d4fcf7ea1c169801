package stats

// Values of the "result" label on DigestCounter.
const (
	DigestSuccess   = "success"
	DigestOpenError = "openError"
	DigestReadError = "readError"
	DigestCanceled  = "canceled"
)
