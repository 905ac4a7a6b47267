package main

import (
	"os"

	"github.com/Rakhulsr/go-cosmetics/app/cmd"
	"github.com/Rakhulsr/go-cosmetics/app/configs"
	"github.com/shopspring/decimal"
)

func main() {
	// Money goes over the wire as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true

	env := configs.LoadEnv()
	cmd.RunCli(env, os.Args)
}
