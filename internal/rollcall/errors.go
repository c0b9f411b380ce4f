package rollcall

import "github.com/rotisserie/eris"

// Per-line failure classes. These are recovered locally: the line is
// routed to the exception list and processing continues. Only
// configuration and unexpected faults abort a run.
var (
	ErrNoBranch   = eris.New("no configured branch matches the line")
	ErrNoEntity   = eris.New("branch matched but no configured entity found")
	ErrNoCategory = eris.New("no business category matches the line")
	ErrNoChannel  = eris.New("no configured channel matches the line")
	ErrNoQuantity = eris.New("no quantity could be extracted")
)

// ErrBadPointsPattern reports an invalid configured point-extraction
// pattern. Fatal to the run: a silently dropped pattern would change
// report semantics.
var ErrBadPointsPattern = eris.New("invalid points extraction pattern")
