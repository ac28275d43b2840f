package main

import (
	"os"

	"github.com/openlumify/openlumify-admin/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
