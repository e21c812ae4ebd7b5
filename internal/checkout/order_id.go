package checkout

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"
)

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// newOrderID formats ORD-<last six digits of unix millis>-<three base36 chars>.
func newOrderID(now time.Time) string {
	var suffix strings.Builder
	for i := 0; i < 3; i++ {
		suffix.WriteByte(base36[rand.IntN(len(base36))])
	}
	return fmt.Sprintf("ORD-%06d-%s", now.UnixMilli()%1_000_000, strings.ToUpper(suffix.String()))
}
