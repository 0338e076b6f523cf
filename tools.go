//go:build tools

package passphrase

import (
	_ "golang.org/x/tools/cmd/stringer"
)
