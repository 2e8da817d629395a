package cmd

import (
	"os"
	"strings"

	"github.com/DaevMithran/SignxLit/accs"
	"github.com/DaevMithran/SignxLit/evm"
	"github.com/DaevMithran/SignxLit/sp"
	"github.com/posener/complete"
)

// parseAPIFlags parses the global flags from the line being completed.
func parseAPIFlags() error {
	args := strings.Fields(os.Getenv("COMP_LINE"))
	if len(args) > 0 {
		args = args[1:]
	}
	return apiFlags.Parse(args)
}

// PredictChains predicts the built in chain keys and those of the
// --chains-file, if given.
var PredictChains complete.PredictFunc = func(args complete.Args) []string {
	registry := evm.DefaultRegistry()
	if err := parseAPIFlags(); err == nil {
		if path, _ := apiFlags.GetString("chains-file"); path != "" {
			registry.LoadFile(path)
		}
	}
	return registry.Keys()
}

var PredictLocations = complete.PredictSet(
	sp.OnChain.String(), sp.Arweave.String(), sp.IPFS.String(),
	sp.Custom.String())

var PredictRecipientEncodings = complete.PredictSet(
	string(sp.RecipientString), string(sp.RecipientAddress))

// PredictTemplates predicts the names of the access control condition
// templates.
var PredictTemplates complete.PredictFunc = func(args complete.Args) []string {
	catalog := accs.Catalog()
	names := make([]string, len(catalog))
	for i, t := range catalog {
		names[i] = t.Name
	}
	return names
}
