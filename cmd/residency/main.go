// Command residency answers whether a crossing log makes its owner a tax
// resident under the 183-days-in-12-months rule.
package main

import "github.com/oshokin/residency/cmd/residency/cmd"

func main() {
	cmd.Execute()
}
