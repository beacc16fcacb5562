// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/polyrun/polyrun/cmd/polyrun"

func main() {
	cmd.Execute()
}
