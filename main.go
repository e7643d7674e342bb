// SPDX-License-Identifier: MPL-2.0

package main

import cmd "iambic-setup/cmd/iambicsetup"

func main() {
	cmd.Execute()
}
