package service

import (
	"context"
	"fmt"

	"github.com/andreypavlenko/jobber/modules/interviews/ports"
)

// ShortlistingCallbackRef breaks the construction-time cycle between this
// engine and modules/shortlisting: this Engine needs a
// ports.ShortlistingCallback at construction time, but the concrete
// shortlisting Engine needs this package's Engine (as its InvitationSender)
// to already exist. main wires an empty ref into Engine.New, builds both
// engines, then assigns the real callback with Set before either is used.
type ShortlistingCallbackRef struct {
	target ports.ShortlistingCallback
}

// Set assigns the real callback. Must be called before the Engine handles
// any reject, cancel, or expiry that needs to promote from the buffer.
func (r *ShortlistingCallbackRef) Set(target ports.ShortlistingCallback) {
	r.target = target
}

func (r *ShortlistingCallbackRef) PromoteFromBuffer(ctx context.Context, jobID string, vacatedRank int) error {
	if r.target == nil {
		return fmt.Errorf("interviews: shortlisting callback not wired yet")
	}
	return r.target.PromoteFromBuffer(ctx, jobID, vacatedRank)
}
