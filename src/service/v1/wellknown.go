package service

// AlgoAsset is the transfer selector for the native currency.
const AlgoAsset = "algo"

// algoDecimals is the native currency's fixed precision (microalgos).
const algoDecimals uint32 = 6

// wellKnownAsset is a recognized fixed-precision ASA whose amounts may carry
// decimals in the transfer form.
type wellKnownAsset struct {
	ID       uint64
	Decimals uint32
}

// wellKnownAssets maps lowercase unit names to per-network asset ids.
var wellKnownAssets = map[string]map[string]wellKnownAsset{
	"mainnet": {
		"usdc": {ID: 31566704, Decimals: 6},
		"usdt": {ID: 312769, Decimals: 6},
	},
	"testnet": {
		"usdc": {ID: 10458941, Decimals: 6},
		"usdt": {ID: 180447, Decimals: 6},
	},
}

func lookupWellKnown(network, name string) (wellKnownAsset, bool) {
	assets, ok := wellKnownAssets[network]
	if !ok {
		return wellKnownAsset{}, false
	}
	a, ok := assets[name]
	return a, ok
}
