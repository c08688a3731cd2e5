// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"

	"github.com/buildly-release-management/buildly-react-template-sub002/cmd/productlabs/commands"
	"github.com/buildly-release-management/buildly-react-template-sub002/cmd/productlabs/internal/clierr"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(clierr.ExitCodeOf(err))
	}
}
