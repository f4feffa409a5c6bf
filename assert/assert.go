package assert

import (
	"fmt"

	"github.com/bloeys/hellotex/logging"
)

// T panics with the formatted message if check is false
func T(check bool, msg string, args ...any) {

	if check {
		return
	}

	formatted := fmt.Sprintf(msg, args...)
	logging.ErrLog.Errorf("Assert failed: %s", formatted)
	panic("Assert failed: " + formatted)
}
