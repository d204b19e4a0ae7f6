package timeline

import (
	"fmt"
	"strconv"
	"strings"
)

// NextID allocates the next unused identifier of the form "{type}-clip-{n}"
// for the given clip type. Sequences are independent per type. The allocator
// is stateless: it derives n from the ids already present in the snapshot,
// so replayed or concurrent operations against the same snapshot stay
// collision-free.
//
// When one logical step mints more than one id (a split produces two clips),
// the ids already minted in that step must be passed as extra. Without
// them the second allocation would not see the first and both would collide.
func NextID(c Clips, t ClipType, extra ...string) string {
	prefix := string(t) + "-clip-"
	max := 0
	scan := func(id string) {
		if !strings.HasPrefix(id, prefix) {
			return
		}
		// Unparseable suffixes count as 0, matching ids like
		// "video-clip-" or hand-edited documents.
		n, err := strconv.Atoi(id[len(prefix):])
		if err != nil {
			n = 0
		}
		if n > max {
			max = n
		}
	}
	for _, m := range c.Media {
		scan(m.ID)
	}
	for _, tc := range c.Text {
		scan(tc.ID)
	}
	for _, id := range extra {
		scan(id)
	}
	return fmt.Sprintf("%s%d", prefix, max+1)
}
