package main

import (
	"github.com/spf13/cobra"
)

func main() {
	var root = &cobra.Command{Use: "marketanly"}

	root.AddCommand(serveCMD())
	_ = root.Execute()
}
