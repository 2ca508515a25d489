package main

import "mana-vault/cmd"

func main() {
	cmd.Execute()
}
