package main

import "github.com/datalens/datalens/cmd"

func main() {
	cmd.Execute()
}
