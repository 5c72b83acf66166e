package main

import (
	"fmt"
	"os"

	"jvillar/bankinter-csv/cmd/extract"
	"jvillar/bankinter-csv/cmd/root"
	"jvillar/bankinter-csv/cmd/sync"
	"jvillar/bankinter-csv/cmd/upload"
)

func init() {
	root.Init()

	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(upload.Cmd)
	root.Cmd.AddCommand(sync.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
