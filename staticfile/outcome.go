package staticfile

import "github.com/goflash/serve"

// Disposition values recorded on the request context for every request the
// handler sees. Upstream middleware reads them to log and count how requests
// were disposed of.
const (
	OutcomeServed   = "served"   // a regular file was streamed
	OutcomeRejected = "rejected" // decode or path-safety failure, 400 written
	OutcomePassed   = "passed"   // deferred to the next handler
)

type outcomeKey struct{}

// Outcome reports how the static handler disposed of the request. ok is false
// when the handler never saw the request (e.g. an explicit route claimed it).
func Outcome(c serve.Ctx) (string, bool) {
	s, ok := c.Get(outcomeKey{}).(string)
	return s, ok
}

func recordOutcome(c serve.Ctx, disposition string) {
	c.Set(outcomeKey{}, disposition)
}
