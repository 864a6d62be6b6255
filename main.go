// main is the entry point for the appraise CLI.
package main

import (
	"github.com/huangsam/appraise/cmd"
	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/internal/evalstore"
)

func main() {
	cmd.SetStoreManager(evalstore.Manager)
	err := cmd.Execute()
	evalstore.CloseStores()
	if err != nil {
		contract.LogFatal("Command failed", err)
	}
}
