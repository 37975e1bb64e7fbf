package main

import (
	"github.com/asaworks/asa-studio/relay/cmd"
)

func main() {
	cmd.Execute()
}
