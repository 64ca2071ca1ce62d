package pair

import (
	"log/slog"

	"github.com/mtlprog/krakenboard/internal/domain"
)

// Resolve maps each base asset to its pair quoted in quote. Pairs with any other quote
// are dropped. When an asset has several such pairs the later one wins.
func Resolve(pairs []domain.AssetPair, quote domain.AssetCode) domain.PairMap {
	mapping := make(domain.PairMap)
	for _, p := range pairs {
		if p.Quote != quote {
			continue
		}
		if prev, ok := mapping[p.Base]; ok {
			slog.Debug("pair resolver: overwriting pair", "asset", p.Base, "previous", prev, "pair", p.ID)
		}
		mapping[p.Base] = p.ID
	}
	return mapping
}
