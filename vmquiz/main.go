// Command vmquiz generates virtual memory sizing problems.
package main

import "github.com/sarchlab/vmquiz/vmquiz/cmd"

func main() {
	cmd.Execute()
}
