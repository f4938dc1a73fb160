// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/ycecilia/mtGasp/cmd/mtgasp"

func main() {
	cmd.Execute()
}
