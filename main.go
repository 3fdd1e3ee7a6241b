package main

import "github.com/SafeMPC/subname-gateway/cmd"

func main() {
	cmd.Execute()
}
