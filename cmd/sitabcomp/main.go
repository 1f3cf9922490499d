// Command sitabcomp compiles XML table descriptions into binary sections and
// decompiles binary sections back into XML.
package main

import "github.com/arloliu/sitab/cmd/sitabcomp/cmd"

func main() {
	cmd.Execute()
}
