package main

import "github.com/Mohsinsiddi/tmbcli/cmd"

func main() {
	cmd.Execute()
}
