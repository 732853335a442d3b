package attack

import (
	"fmt"

	"github.com/Taxdi/Random-Number-Generator/pkg/mt19937"
)

var (
	ErrObservationCount = fmt.Errorf("attack: cloning needs exactly %d consecutive outputs", mt19937.N)
)

// CloneMT19937 rebuilds a Mersenne Twister from 624 consecutive
// observed outputs. Tempering is a bijection on 32-bit words, so each
// output unwinds to one state word; the window may start anywhere in
// the victim's stream because the twist advances a sliding recurrence
// over the last 624 words. The returned clone produces exactly the
// outputs the victim will produce next.
func CloneMT19937(outputs []uint32) (*mt19937.MT19937, error) {
	if len(outputs) != mt19937.N {
		return nil, ErrObservationCount
	}

	var state [mt19937.N]uint32
	for i, out := range outputs {
		state[i] = mt19937.Untemper(out)
	}

	clone := new(mt19937.MT19937)
	clone.SetState(state)
	return clone, nil
}
