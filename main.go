// SPDX-License-Identifier: MPL-2.0

package main

import cmd "crateforge/cmd/crateforge"

func main() {
	cmd.Execute()
}
